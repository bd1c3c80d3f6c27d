package report

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lv70/tami-csv-to-pdf/internal/csvtable"
)

func mustTable(t *testing.T, records [][]string) *csvtable.Table {
	t.Helper()
	table, err := csvtable.FromRecords(records, "test")
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	return table
}

func TestExtractOrderID(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"#123 Widget", "123"},
		{"Widget", UnknownOrderID},
		{"#12ab", "12"},
		{"ref #99 Widget", UnknownOrderID}, // token must lead
		{"", UnknownOrderID},
		{"#007 special", "007"},
	}
	for _, tt := range tests {
		if got := ExtractOrderID(tt.desc); got != tt.want {
			t.Errorf("ExtractOrderID(%q) = %q, want %q", tt.desc, got, tt.want)
		}
	}
}

func TestCollectItemsDefaults(t *testing.T) {
	table := mustTable(t, [][]string{
		{"ContactName", "InvoiceNumber", "Description", "Quantity", "UnitAmount", "TaxType"},
		{"Acme", "INV1", "#1 Widget", "", "abc", "Standard"},
	})

	items := CollectItems(table)
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if !items[0].Quantity.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Quantity default = %s, want 1", items[0].Quantity)
	}
	if !items[0].UnitAmount.IsZero() {
		t.Errorf("UnitAmount default = %s, want 0", items[0].UnitAmount)
	}
	if items[0].OrderID != "1" {
		t.Errorf("OrderID = %q, want %q", items[0].OrderID, "1")
	}
}

func TestCollectItemsFallbacks(t *testing.T) {
	table := mustTable(t, [][]string{
		{"Customer", "ContactName", "InvoiceNumber", "Description"},
		{"FirstCol Ltd", "", "", "Widget"},
	})

	items := CollectItems(table)
	if items[0].Brand != "FirstCol Ltd" {
		t.Errorf("Brand = %q, want first-column fallback", items[0].Brand)
	}
	if items[0].InvoiceNumber != UnknownInvoice {
		t.Errorf("InvoiceNumber = %q, want %q", items[0].InvoiceNumber, UnknownInvoice)
	}

	table = mustTable(t, [][]string{
		{"ContactName", "InvoiceNumber", "Description"},
		{"", "", "Widget"},
	})
	items = CollectItems(table)
	if items[0].Brand != UnknownBrand {
		t.Errorf("Brand = %q, want %q", items[0].Brand, UnknownBrand)
	}
}

func TestGroupByBrandOrdering(t *testing.T) {
	table := mustTable(t, [][]string{
		{"ContactName", "InvoiceNumber", "Description", "Quantity", "UnitAmount", "TaxType"},
		{"Beta", "B1", "#2 Thing", "1", "1", "Standard"},
		{"Acme", "A1", "#1 Widget", "1", "1", "Standard"},
		{"Beta", "B2", "#2 Other", "1", "1", "Standard"},
		{"Beta", "B1", "#3 More", "1", "1", "Standard"},
	})

	bundles := GroupByBrand(CollectItems(table))
	if len(bundles) != 2 {
		t.Fatalf("len(bundles) = %d, want 2", len(bundles))
	}
	if bundles[0].Brand != "Beta" || bundles[1].Brand != "Acme" {
		t.Fatalf("brand order = [%s, %s], want first-seen [Beta, Acme]",
			bundles[0].Brand, bundles[1].Brand)
	}

	beta := bundles[0]
	if len(beta.InvoiceNumbers) != 2 || beta.InvoiceNumbers[0] != "B1" || beta.InvoiceNumbers[1] != "B2" {
		t.Fatalf("Beta invoices = %v, want distinct [B1 B2]", beta.InvoiceNumbers)
	}

	// Flattening groups by invoice first-seen order: both B1 rows precede
	// the B2 row.
	got := []string{beta.Items[0].Description, beta.Items[1].Description, beta.Items[2].Description}
	want := []string{"#2 Thing", "#3 More", "#2 Other"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("flattened order = %v, want %v", got, want)
		}
	}
}

func TestGroupByOrderLexicographic(t *testing.T) {
	table := mustTable(t, [][]string{
		{"ContactName", "InvoiceNumber", "Description", "Quantity", "UnitAmount", "TaxType"},
		{"Acme", "A1", "#9 Widget", "1", "1", "Standard"},
		{"Acme", "A1", "#10 Widget", "1", "1", "Standard"},
		{"Acme", "A1", "no order token", "1", "1", "Standard"},
	})

	groups := GroupByOrder(CollectItems(table))
	if len(groups) != 3 {
		t.Fatalf("len(groups) = %d, want 3", len(groups))
	}
	// Lexicographic on the id string: "10" < "9" < "Unknown".
	want := []string{"10", "9", UnknownOrderID}
	for i, g := range groups {
		if g.OrderID != want[i] {
			t.Fatalf("group order = [%s %s %s], want %v",
				groups[0].OrderID, groups[1].OrderID, groups[2].OrderID, want)
		}
	}
}
