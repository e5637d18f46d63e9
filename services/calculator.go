package services

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-billing/models"
)

var hundred = decimal.NewFromInt(100)

// Compute menghitung subtotal, pajak per baris, diskon, dan total akhir.
// Total tidak pernah negatif walaupun diskon melebihi subtotal + pajak.
func Compute(lines []models.OrderLine, discountPct decimal.Decimal) models.Totals {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal())
		tax = tax.Add(l.LineTax())
	}

	if discountPct.IsNegative() {
		discountPct = decimal.Zero
	}
	discount := discountPct.Mul(subtotal).Div(hundred)

	grand := subtotal.Add(tax).Sub(discount)
	if grand.IsNegative() {
		grand = decimal.Zero
	}

	return models.Totals{
		Subtotal:       subtotal,
		TaxTotal:       tax,
		DiscountAmount: discount,
		GrandTotal:     grand,
	}
}

// ParseDiscount membaca field diskon yang diketik live. Teks kosong atau
// tidak valid dianggap 0, nilai negatif di-clamp ke 0.
func ParseDiscount(text string) decimal.Decimal {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(text)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
