package domain

import (
	"html"

	"github.com/shopspring/decimal"
)

// FormatPrice renders an amount as dollars with two decimals, e.g. "$414.17".
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Escape makes catalog text safe to embed in HTML.
func Escape(s string) string {
	return html.EscapeString(s)
}
