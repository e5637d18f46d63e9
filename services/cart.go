package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-billing/models"
)

// Cart adalah order yang sedang disusun operator. Tidak aman untuk dipakai
// bersamaan; pemanggil yang memiliki cart bertanggung jawab menserialkan akses.
type Cart struct {
	lines        []models.OrderLine
	mode         models.Mode
	payment      models.PaymentMethod
	discountText string
}

func NewCart() *Cart {
	c := &Cart{}
	c.Clear()
	return c
}

// AddLine menambahkan snapshot harga/pajak item saat ini
func (c *Cart) AddLine(ctx context.Context, finder ItemFinder, itemName string, quantity int) (models.OrderLine, error) {
	if quantity <= 0 {
		return models.OrderLine{}, invalid("quantity", ErrInvalidQuantity)
	}

	item, err := finder.Find(ctx, itemName)
	if errors.Is(err, ErrNotFound) {
		return models.OrderLine{}, invalid("item_name", ErrUnknownItem)
	}
	if err != nil {
		return models.OrderLine{}, err
	}

	line := models.OrderLine{
		ItemName:   item.ItemName,
		Quantity:   quantity,
		UnitPrice:  item.Price,
		TaxRatePct: item.GST,
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// Clear mengosongkan cart dan mengembalikan pilihan ke default
func (c *Cart) Clear() {
	c.lines = nil
	c.mode = models.ModeDineIn
	c.payment = models.PaymentCash
	c.discountText = "0"
}

func (c *Cart) SetMode(mode string) error {
	m, err := models.ParseMode(mode)
	if err != nil {
		return invalid("mode", err)
	}
	c.mode = m
	return nil
}

func (c *Cart) SetPaymentMethod(method string) error {
	p, err := models.ParsePaymentMethod(method)
	if err != nil {
		return invalid("payment_method", err)
	}
	c.payment = p
	return nil
}

// SetDiscountText menyimpan teks apa adanya; nilai efektif lewat ParseDiscount
func (c *Cart) SetDiscountText(text string) {
	c.discountText = text
}

func (c *Cart) Lines() []models.OrderLine {
	out := make([]models.OrderLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

func (c *Cart) Mode() models.Mode { return c.mode }

func (c *Cart) PaymentMethod() models.PaymentMethod { return c.payment }

func (c *Cart) DiscountPct() decimal.Decimal { return ParseDiscount(c.discountText) }

// Totals dihitung ulang setiap dipanggil
func (c *Cart) Totals() models.Totals {
	return Compute(c.lines, c.DiscountPct())
}

type CartView struct {
	Lines         []models.OrderLine   `json:"lines"`
	Mode          models.Mode          `json:"mode"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	DiscountText  string               `json:"discount_text"`
	DiscountPct   decimal.Decimal      `json:"discount_pct"`
	Totals        models.Totals        `json:"totals"`
}

func (c *Cart) Snapshot() CartView {
	return CartView{
		Lines:         c.Lines(),
		Mode:          c.mode,
		PaymentMethod: c.payment,
		DiscountText:  c.discountText,
		DiscountPct:   c.DiscountPct(),
		Totals:        c.Totals(),
	}
}
