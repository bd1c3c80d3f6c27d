// =============================================================================
// Invoice Report Generator - Financial Aggregator
// =============================================================================
//
// All money math runs on shopspring decimals with a fixed rounding policy:
// round to 2 decimal places, half away from zero, applied independently to
// each intermediate value. No running-total carry of fractional remainders.
//
// Unit amounts are VAT-inclusive. For VAT-able rows the net is gross divided
// by the VAT divisor and the VAT is gross minus net (computed as a
// difference rather than net * rate, so the two halves cannot drift apart
// under independent rounding). Rows whose tax type contains "no vat"
// contribute their full gross to the subtotal and nothing to VAT.
//
// The brand total is summed from per-row rounded gross values, independently
// of subtotal + VAT. The two may diverge under heavy rounding; that
// divergence is long-standing visible output and is not reconciled here.
//
// =============================================================================

package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NoVATMarker identifies tax types exempt from VAT, matched
// case-insensitively as a substring.
const NoVATMarker = "no vat"

// Round2 applies the pipeline's rounding rule: 2 decimal places, half away
// from zero. Round2(10.005) is 10.01, not the banker's 10.00.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// =============================================================================
// CALCULATOR
// =============================================================================

// Calculator computes per-row and per-brand financial figures for a fixed
// VAT rate.
type Calculator struct {
	// divisor converts a VAT-inclusive gross to net: 1 + rate/100.
	divisor decimal.Decimal
}

// NewCalculator returns a calculator for the given VAT percentage
// (20 -> divisor 1.2).
func NewCalculator(vatPercent int) *Calculator {
	return &Calculator{
		divisor: decimal.NewFromInt(1).Add(decimal.NewFromInt(int64(vatPercent)).Div(decimal.NewFromInt(100))),
	}
}

// exempt reports whether a tax type opts the row out of VAT.
func exempt(taxType string) bool {
	return strings.Contains(strings.ToLower(taxType), NoVATMarker)
}

// NetVAT returns the rounded net amount and VAT portion for one line item.
func (c *Calculator) NetVAT(item LineItem) (net, vat decimal.Decimal) {
	gross := item.Gross()
	if exempt(item.TaxType) {
		return Round2(gross), decimal.Zero
	}
	net = Round2(gross.Div(c.divisor))
	vat = Round2(gross.Sub(net))
	return net, vat
}

// GrossRow returns the rounded gross amount for one line item, as shown in
// the rendered item table and summed into the brand total.
func (c *Calculator) GrossRow(item LineItem) decimal.Decimal {
	return Round2(item.Gross())
}

// Totals aggregates one brand's line items. Subtotal and VAT accumulate the
// per-row net/VAT figures; Total accumulates the per-row rounded gross
// directly from the raw rows.
func (c *Calculator) Totals(items []LineItem) Totals {
	t := Totals{Subtotal: decimal.Zero, VAT: decimal.Zero, Total: decimal.Zero}
	for _, item := range items {
		net, vat := c.NetVAT(item)
		t.Subtotal = t.Subtotal.Add(net)
		t.VAT = t.VAT.Add(vat)
		t.Total = t.Total.Add(c.GrossRow(item))
	}
	return t
}
