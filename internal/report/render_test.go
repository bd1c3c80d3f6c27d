package report

import (
	"strings"
	"testing"
	"time"
)

func testRenderer() *Renderer {
	r := NewRenderer("£", "02 Jan 2006", NewCalculator(20))
	r.Now = func() time.Time { return time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC) }
	return r
}

func acmeBundle() BrandBundle {
	widget := LineItem{
		Brand: "Acme", InvoiceNumber: "INV1", Description: "#1 Widget",
		Quantity: dec("2"), UnitAmount: dec("10"), TaxType: "Standard",
		OrderID: "1",
	}
	shipping := LineItem{
		Brand: "Acme", InvoiceNumber: "INV1", Description: "#1 Shipping",
		Quantity: dec("1"), UnitAmount: dec("5"), TaxType: "Standard",
		OrderID: "1",
	}
	widget.Category = Classify(widget)
	shipping.Category = Classify(shipping)

	return BrandBundle{
		Brand:          "Acme",
		InvoiceNumbers: []string{"INV1"},
		Items:          []LineItem{widget, shipping},
	}
}

func TestBuildReportAcme(t *testing.T) {
	rep := testRenderer().BuildReport(acmeBundle())

	if len(rep.Groups) != 1 || rep.Groups[0].OrderID != "1" {
		t.Fatalf("groups = %+v, want single group %q", rep.Groups, "1")
	}
	group := rep.Groups[0]
	if group.Items[0].Category != CategoryNormal || group.Items[1].Category != CategoryShipping {
		t.Fatalf("emission order wrong: [%v, %v]", group.Items[0].Category, group.Items[1].Category)
	}
	if rep.Totals.Subtotal.StringFixed(2) != "20.84" ||
		rep.Totals.VAT.StringFixed(2) != "4.16" ||
		rep.Totals.Total.StringFixed(2) != "25.00" {
		t.Fatalf("totals = %s/%s/%s, want 20.84/4.16/25.00",
			rep.Totals.Subtotal, rep.Totals.VAT, rep.Totals.Total)
	}
}

func TestRenderDocumentSubstitution(t *testing.T) {
	r := testRenderer()
	rep := r.BuildReport(acmeBundle())

	template := "To: {{BRAND}} ({{CLIENT_NAME}})\n" +
		"Date: {{CURRENT_DATE}}\n" +
		"Covering: {{INVOICE_NUMBERS}}\n" +
		"{{INVOICES_HTML}}\n" +
		"Untouched: {{NOT_A_TOKEN}}\n"

	body := r.RenderDocument(template, rep)

	for _, want := range []string{
		"To: Acme (Acme)",
		"Date: 14 Mar 2026",
		"Covering: INV1",
		"Order #1",
		"#1 Widget",
		"£20.84",
		"£4.16",
		"£25.00",
		"Untouched: {{NOT_A_TOKEN}}", // unresolved tokens stay verbatim
	} {
		if !strings.Contains(body, want) {
			t.Errorf("rendered body missing %q", want)
		}
	}
	if strings.Contains(body, "{{BRAND}}") {
		t.Error("{{BRAND}} left unsubstituted")
	}
}

func TestRenderDocumentDescriptionNotEscaped(t *testing.T) {
	r := testRenderer()
	bundle := acmeBundle()
	bundle.Items[0].Description = "<b>#1 Widget</b>"
	rep := r.BuildReport(bundle)

	body := r.RenderDocument("{{INVOICES_HTML}}", rep)
	if !strings.Contains(body, "<b>#1 Widget</b>") {
		t.Error("descriptions must be inserted verbatim, without escaping")
	}
}

func TestFormatAmountParentheses(t *testing.T) {
	r := testRenderer()
	if got := r.FormatAmount(dec("-3.5")); got != "(£3.50)" {
		t.Errorf("FormatAmount(-3.5) = %q, want (£3.50)", got)
	}
	if got := r.FormatAmount(dec("1234.5")); got != "£1234.50" {
		t.Errorf("FormatAmount(1234.5) = %q, want £1234.50", got)
	}
}

func TestInvoiceNumbersJoined(t *testing.T) {
	r := testRenderer()
	bundle := acmeBundle()
	bundle.InvoiceNumbers = []string{"INV1", "INV7", "INV2"}
	rep := r.BuildReport(bundle)

	body := r.RenderDocument("{{INVOICE_NUMBERS}}", rep)
	if body != "INV1, INV7, INV2" {
		t.Errorf("joined invoice numbers = %q (insertion order must survive)", body)
	}
}
