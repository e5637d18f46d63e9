package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Mode string

const (
	ModeDineIn   Mode = "Dine-In"
	ModeTakeaway Mode = "Takeaway"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDineIn, ModeTakeaway:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown order mode %q", s)
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "Cash"
	PaymentCard PaymentMethod = "Card"
	PaymentUPI  PaymentMethod = "UPI"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCard, PaymentUPI:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// OrderLine menyimpan snapshot harga dan pajak saat item ditambahkan ke cart
type OrderLine struct {
	ItemName   string          `json:"item_name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"price"`
	TaxRatePct decimal.Decimal `json:"gst"`
}

func (l OrderLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l OrderLine) LineTax() decimal.Decimal {
	return l.LineTotal().Mul(l.TaxRatePct).Div(decimal.NewFromInt(100))
}

type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxTotal       decimal.Decimal `json:"tax_total"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// Bill adalah catatan transaksi final; setelah dibuat tidak pernah diubah
type Bill struct {
	OrderID       int64
	Mode          Mode
	PaymentMethod PaymentMethod
	Lines         []OrderLine
	DiscountPct   decimal.Decimal
	Totals        Totals
	CreatedAt     time.Time
}

func NewBill(orderID int64, mode Mode, payment PaymentMethod, lines []OrderLine, discountPct decimal.Decimal, totals Totals, createdAt time.Time) Bill {
	copied := make([]OrderLine, len(lines))
	copy(copied, lines)
	return Bill{
		OrderID:       orderID,
		Mode:          mode,
		PaymentMethod: payment,
		Lines:         copied,
		DiscountPct:   discountPct,
		Totals:        totals,
		CreatedAt:     createdAt,
	}
}

func (b Bill) Timestamp() string {
	return b.CreatedAt.Format(TimestampLayout)
}

// ToOrder memetakan bill ke header + baris order_items
func (b Bill) ToOrder() Order {
	items := make([]OrderItem, 0, len(b.Lines))
	for _, l := range b.Lines {
		items = append(items, OrderItem{
			OrderID:  b.OrderID,
			ItemName: l.ItemName,
			Quantity: l.Quantity,
			Price:    l.UnitPrice,
			GST:      l.TaxRatePct,
		})
	}
	return Order{
		OrderID:       b.OrderID,
		Mode:          string(b.Mode),
		PaymentMethod: string(b.PaymentMethod),
		Subtotal:      b.Totals.Subtotal,
		GST:           b.Totals.TaxTotal,
		Discount:      b.DiscountPct,
		Total:         b.Totals.GrandTotal,
		Timestamp:     b.Timestamp(),
		OrderItems:    items,
	}
}
