// =============================================================================
// Invoice Report Generator - Grouping Engine
// =============================================================================
//
// Turns the normalized table into typed line items and groups them, first by
// brand, then (within the flattened brand set) by the order id embedded in
// the description text. Report ordering depends on input order, so both
// grouping levels preserve first-seen key order; only order groups within a
// brand are sorted, lexicographically by order id.
//
// =============================================================================

package report

import (
	"regexp"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lv70/tami-csv-to-pdf/internal/csvtable"
)

// Fallback keys for rows that arrive without a brand or invoice number.
// Such rows still flow through aggregation under these labels.
const (
	UnknownBrand   = "Unknown Brand"
	UnknownInvoice = "Unknown Invoice"
)

// orderIDPattern captures the leading "#<digits>" order token of a
// description.
var orderIDPattern = regexp.MustCompile(`^#(\d+)`)

// ExtractOrderID returns the order id embedded at the start of a
// description, or UnknownOrderID when the description carries none.
func ExtractOrderID(description string) string {
	if m := orderIDPattern.FindStringSubmatch(description); m != nil {
		return m[1]
	}
	return UnknownOrderID
}

// =============================================================================
// LINE-ITEM CONSTRUCTION
// =============================================================================

// CollectItems converts every table row into a typed LineItem, applying the
// fallback rules for missing values. Items come out in input row order and
// are not mutated afterwards.
func CollectItems(t *csvtable.Table) []LineItem {
	items := make([]LineItem, 0, t.RowCount())

	for _, row := range t.Rows {
		brand := t.Field(row, "ContactName")
		if brand == "" {
			brand = t.FirstColumn(row)
		}
		if brand == "" {
			brand = UnknownBrand
		}

		invoice := t.Field(row, "InvoiceNumber")
		if invoice == "" {
			invoice = UnknownInvoice
		}

		description := t.Field(row, "Description")

		item := LineItem{
			Brand:         brand,
			InvoiceNumber: invoice,
			Description:   description,
			Quantity:      decimalOr(t.Field(row, "Quantity"), decimal.NewFromInt(1)),
			UnitAmount:    decimalOr(t.Field(row, "UnitAmount"), decimal.Zero),
			TaxType:       t.Field(row, "TaxType"),
			OrderID:       ExtractOrderID(description),
		}
		item.Category = Classify(item)

		items = append(items, item)
	}

	return items
}

// decimalOr parses a decimal value, falling back to a default when the cell
// is empty or non-numeric.
func decimalOr(value string, fallback decimal.Decimal) decimal.Decimal {
	if value == "" {
		return fallback
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return fallback
	}
	return d
}

// =============================================================================
// BRAND GROUPING
// =============================================================================

// BrandBundle is the flattened per-brand slice of the input: every line item
// belonging to one brand, plus the distinct invoice numbers they came from.
type BrandBundle struct {
	// Brand is the grouping key.
	Brand string

	// InvoiceNumbers are the distinct invoice numbers for this brand, in
	// order of first appearance.
	InvoiceNumbers []string

	// Items are the brand's line items, grouped by invoice first-seen order
	// and in input order within each invoice.
	Items []LineItem
}

// GroupByBrand partitions line items by brand, nesting by invoice number and
// then flattening. The invoice level exists only to collect the distinct
// invoice numbers for the report header; rendering is not segmented by it.
// Brands come out in order of first appearance in the input.
func GroupByBrand(items []LineItem) []BrandBundle {
	type brandAcc struct {
		invoiceOrder []string
		byInvoice    map[string][]LineItem
	}

	var brandOrder []string
	byBrand := make(map[string]*brandAcc)

	for _, item := range items {
		acc, ok := byBrand[item.Brand]
		if !ok {
			acc = &brandAcc{byInvoice: make(map[string][]LineItem)}
			byBrand[item.Brand] = acc
			brandOrder = append(brandOrder, item.Brand)
		}
		if _, seen := acc.byInvoice[item.InvoiceNumber]; !seen {
			acc.invoiceOrder = append(acc.invoiceOrder, item.InvoiceNumber)
		}
		acc.byInvoice[item.InvoiceNumber] = append(acc.byInvoice[item.InvoiceNumber], item)
	}

	bundles := make([]BrandBundle, 0, len(brandOrder))
	for _, brand := range brandOrder {
		acc := byBrand[brand]
		bundle := BrandBundle{Brand: brand, InvoiceNumbers: acc.invoiceOrder}
		for _, invoice := range acc.invoiceOrder {
			bundle.Items = append(bundle.Items, acc.byInvoice[invoice]...)
		}
		bundles = append(bundles, bundle)
	}

	return bundles
}

// =============================================================================
// ORDER GROUPING
// =============================================================================

// GroupByOrder partitions one brand's flattened items into order groups,
// sorts the groups lexicographically by order id (a policy constant, not an
// accident: "10" sorts before "9"), and fixes the emission order of items
// within each group.
func GroupByOrder(items []LineItem) []OrderGroup {
	var order []string
	byID := make(map[string][]LineItem)

	for _, item := range items {
		if _, seen := byID[item.OrderID]; !seen {
			order = append(order, item.OrderID)
		}
		byID[item.OrderID] = append(byID[item.OrderID], item)
	}

	sort.Strings(order)

	groups := make([]OrderGroup, 0, len(order))
	for _, id := range order {
		group := OrderGroup{OrderID: id, Items: byID[id]}
		SortGroup(&group)
		groups = append(groups, group)
	}

	return groups
}
