// =============================================================================
// Invoice Report Generator - Report Types
// =============================================================================
//
// Shared types for the aggregation pipeline: the typed line item built from a
// normalized table row, the order grouping computed from it, and the final
// per-brand report handed to the renderer. Line items are immutable once
// built; groups and reports are computed views rebuilt on every run.
//
// =============================================================================

package report

import "github.com/shopspring/decimal"

// =============================================================================
// CATEGORIES
// =============================================================================

// Category classifies a line item for emission ordering within an order.
type Category int

const (
	// CategoryDiscount covers discount lines and anything with a negative
	// quantity.
	CategoryDiscount Category = iota

	// CategoryNormal covers ordinary product lines.
	CategoryNormal

	// CategoryShipping covers carriage lines matched by the shipping
	// keyword pattern.
	CategoryShipping
)

// String returns the human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryDiscount:
		return "Discount"
	case CategoryNormal:
		return "Normal"
	case CategoryShipping:
		return "Shipping"
	default:
		return "Unknown"
	}
}

// =============================================================================
// LINE ITEMS
// =============================================================================

// UnknownOrderID keys the order group that collects items whose description
// carries no leading "#<digits>" token.
const UnknownOrderID = "Unknown"

// LineItem is one invoice line, typed and normalized from an input row.
type LineItem struct {
	// Brand is the customer/contact name, the top-level grouping key.
	Brand string

	// InvoiceNumber is the invoice this line belongs to.
	InvoiceNumber string

	// Description is the free-text line description. May be empty.
	Description string

	// Quantity is the line quantity. Defaults to 1 when absent or
	// non-numeric.
	Quantity decimal.Decimal

	// UnitAmount is the VAT-inclusive unit price. Defaults to 0 when absent
	// or non-numeric.
	UnitAmount decimal.Decimal

	// TaxType is the raw tax category string ("Standard", "No VAT", ...).
	TaxType string

	// OrderID is extracted from the leading "#<digits>" of the description,
	// or UnknownOrderID.
	OrderID string

	// Category is the classification used for emission ordering.
	Category Category
}

// Gross returns quantity * unit amount, VAT-inclusive and unrounded.
func (li LineItem) Gross() decimal.Decimal {
	return li.Quantity.Mul(li.UnitAmount)
}

// =============================================================================
// GROUPS AND REPORTS
// =============================================================================

// OrderGroup is the ordered set of line items sharing one order id within
// one brand. Items are held in emission order once Classify has run.
type OrderGroup struct {
	OrderID string
	Items   []LineItem
}

// Totals holds the brand-level aggregates. Subtotal+VAT and Total are summed
// independently from per-row rounded values and may diverge by rounding;
// that divergence is visible output and deliberately not reconciled.
type Totals struct {
	Subtotal decimal.Decimal
	VAT      decimal.Decimal
	Total    decimal.Decimal
}

// BrandReport is the fully aggregated report for one brand, ready to render.
type BrandReport struct {
	// Brand is the customer name the report is addressed to.
	Brand string

	// InvoiceNumbers are the distinct invoice numbers covered by this
	// report, in order of first appearance in the input.
	InvoiceNumbers []string

	// Groups are the order groups in lexicographic order id order, each with
	// items in emission order.
	Groups []OrderGroup

	// Totals are the brand-level financial aggregates.
	Totals Totals
}

// ItemCount returns the number of line items across all order groups.
func (r BrandReport) ItemCount() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Items)
	}
	return n
}
