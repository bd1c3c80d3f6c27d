// =============================================================================
// Invoice Report Generator - Template Renderer
// =============================================================================
//
// Substitutes the computed report content into the report template. This is
// literal text replacement, not html/template: placeholder tokens the
// template does not carry are simply left alone, and tokens the template
// carries more than once are replaced everywhere.
//
// Placeholder tokens (literal, case-sensitive):
//   {{BRAND}}            brand name
//   {{CLIENT_NAME}}      client name (same value as the brand in this model)
//   {{CURRENT_DATE}}     run date, formatted per configuration
//   {{INVOICE_NUMBERS}}  covered invoice numbers, joined by ", "
//   {{INVOICES_HTML}}    rendered item table and totals block
//
// Descriptions are inserted into the item table verbatim, with no HTML
// escaping. The input is a trusted internal export; see the note on
// itemsHTML before pointing this at anything else.
//
// =============================================================================

package report

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrTemplateLoad is returned when the report template cannot be read.
var ErrTemplateLoad = errors.New("report template could not be loaded")

// LoadTemplate reads the report template from disk.
func LoadTemplate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateLoad, err)
	}
	return string(data), nil
}

// =============================================================================
// RENDERER
// =============================================================================

// Renderer turns brand bundles into BrandReports and substitutes them into
// the report template.
type Renderer struct {
	// CurrencySymbol prefixes every rendered amount.
	CurrencySymbol string

	// DateFormat is the Go reference layout for {{CURRENT_DATE}}.
	DateFormat string

	// Calc computes all financial figures.
	Calc *Calculator

	// Now supplies the report date. Overridable in tests; defaults to
	// time.Now.
	Now func() time.Time
}

// NewRenderer returns a renderer with the given formatting settings.
func NewRenderer(currencySymbol, dateFormat string, calc *Calculator) *Renderer {
	return &Renderer{
		CurrencySymbol: currencySymbol,
		DateFormat:     dateFormat,
		Calc:           calc,
		Now:            time.Now,
	}
}

// BuildReport computes the full per-brand report from a flattened brand
// bundle: order groups in emission order plus the brand totals.
func (r *Renderer) BuildReport(bundle BrandBundle) BrandReport {
	return BrandReport{
		Brand:          bundle.Brand,
		InvoiceNumbers: bundle.InvoiceNumbers,
		Groups:         GroupByOrder(bundle.Items),
		Totals:         r.Calc.Totals(bundle.Items),
	}
}

// RenderDocument substitutes one brand's report into the template and
// returns the assembled document body.
func (r *Renderer) RenderDocument(template string, rep BrandReport) string {
	replacer := strings.NewReplacer(
		"{{BRAND}}", rep.Brand,
		"{{CLIENT_NAME}}", rep.Brand,
		"{{CURRENT_DATE}}", r.Now().Format(r.DateFormat),
		"{{INVOICE_NUMBERS}}", strings.Join(rep.InvoiceNumbers, ", "),
		"{{INVOICES_HTML}}", r.itemsHTML(rep),
	)
	return replacer.Replace(template)
}

// FormatAmount renders a money value with the currency symbol, using
// accounting-style parentheses instead of a minus sign for negatives.
func (r *Renderer) FormatAmount(d decimal.Decimal) string {
	if d.IsNegative() {
		return "(" + r.CurrencySymbol + d.Abs().StringFixed(2) + ")"
	}
	return r.CurrencySymbol + d.StringFixed(2)
}

// itemsHTML builds the item table and totals block for {{INVOICES_HTML}}.
// Descriptions go in unescaped.
func (r *Renderer) itemsHTML(rep BrandReport) string {
	var b strings.Builder

	b.WriteString("<table class=\"invoice-items\">\n")
	b.WriteString("  <tr><th>Description</th><th>Qty</th><th>Unit Price</th><th>Amount</th></tr>\n")

	for _, group := range rep.Groups {
		label := "Order " + group.OrderID
		if group.OrderID != UnknownOrderID {
			label = "Order #" + group.OrderID
		}
		fmt.Fprintf(&b, "  <tr class=\"order-header\"><td colspan=\"4\">%s</td></tr>\n", label)

		for _, item := range group.Items {
			fmt.Fprintf(&b, "  <tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
				item.Description,
				item.Quantity.String(),
				r.FormatAmount(item.UnitAmount),
				r.FormatAmount(r.Calc.GrossRow(item)),
			)
		}
	}

	b.WriteString("</table>\n")
	b.WriteString("<table class=\"invoice-totals\">\n")
	fmt.Fprintf(&b, "  <tr><td>Subtotal</td><td>%s</td></tr>\n", r.FormatAmount(rep.Totals.Subtotal))
	fmt.Fprintf(&b, "  <tr><td>VAT</td><td>%s</td></tr>\n", r.FormatAmount(rep.Totals.VAT))
	fmt.Fprintf(&b, "  <tr class=\"grand-total\"><td>Total</td><td>%s</td></tr>\n", r.FormatAmount(rep.Totals.Total))
	b.WriteString("</table>\n")

	return b.String()
}
