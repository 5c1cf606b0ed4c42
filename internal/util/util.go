// Package util holds small shared helpers.
package util

import "github.com/shopspring/decimal"

// FormatPrice renders a price the way the storefront displays it: peso sign
// and exactly two decimal places.
func FormatPrice(price decimal.Decimal) string {
	return "₱" + price.StringFixed(2)
}
