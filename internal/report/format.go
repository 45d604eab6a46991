package report

import "github.com/shopspring/decimal"

// FormatBRL renders a monetary value as "R$ 123.45": exactly two fractional
// digits, decimal point, no thousands separator. Both the PDF and the HTML
// renders go through this so the two formats never disagree on a value.
func FormatBRL(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}
