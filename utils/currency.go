package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupees memformat nominal ke gaya struk, mis. 1234.5 -> "Rs 1,234.50".
// Font bawaan PDF tidak punya glyph ₹ sehingga dipakai prefix "Rs".
func FormatRupees(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	formatted := amount.StringFixed(2)
	parts := strings.SplitN(formatted, ".", 2)
	integerPart := parts[0]

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	return "Rs " + sign + strings.Join(groups, ",") + "." + parts[1]
}
