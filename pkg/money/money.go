package money

import "github.com/shopspring/decimal"

// Currency is the storefront's display currency.
const Currency = "PKR"

// Format renders an amount rounded to two decimal places. Rounding happens
// here only; amounts are never rounded while they accumulate.
func Format(amount decimal.Decimal) string {
	return Currency + " " + amount.StringFixed(2)
}

// FormatShipping renders a zero shipping charge as "Free".
func FormatShipping(amount decimal.Decimal) string {
	if amount.IsZero() {
		return "Free"
	}
	return Format(amount)
}

// FormatDiscount renders a discount with a leading minus sign, or an empty
// string when no discount applies.
func FormatDiscount(amount decimal.Decimal) string {
	if amount.IsZero() {
		return ""
	}
	return "-" + Format(amount)
}
