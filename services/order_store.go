package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-billing/models"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStore adalah sink relasional: satu header di orders dan N baris di
// order_items, ditulis dalam satu transaksi gorm.
type OrderStore struct {
	DB *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{DB: db}
}

func (s *OrderStore) Name() string { return SinkDatabase }

// Write gagal jika order_id sudah ada; bill tidak pernah ditimpa
func (s *OrderStore) Write(ctx context.Context, bill models.Bill) (string, error) {
	order := bill.ToOrder()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Order{}).Where("order_id = ?", order.OrderID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("order_id %d already exists", order.OrderID)
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return "", fmt.Errorf("save order %d: %w", bill.OrderID, err)
	}
	return "", nil
}

// ListOrders memuat semua header order beserta item, urut order_id
func (s *OrderStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.DB.WithContext(ctx).
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Order("order_id asc").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderStore) ListOrderItems(ctx context.Context) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := s.DB.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	return items, nil
}

func (s *OrderStore) GetOrder(ctx context.Context, orderID int64) (models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Where("order_id = ?", orderID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, fmt.Errorf("order %d: %w", orderID, ErrOrderNotFound)
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("get order %d: %w", orderID, err)
	}
	return order, nil
}

// BillFromOrder membangun ulang Bill dari baris database
func BillFromOrder(order models.Order) (models.Bill, error) {
	created, err := parseTimestamp(order.Timestamp)
	if err != nil {
		return models.Bill{}, fmt.Errorf("order %d: %w", order.OrderID, err)
	}
	lines := make([]models.OrderLine, 0, len(order.OrderItems))
	for _, it := range order.OrderItems {
		lines = append(lines, models.OrderLine{
			ItemName:   it.ItemName,
			Quantity:   it.Quantity,
			UnitPrice:  it.Price,
			TaxRatePct: it.GST,
		})
	}
	totals := models.Totals{
		Subtotal:       order.Subtotal,
		TaxTotal:       order.GST,
		DiscountAmount: order.Discount.Mul(order.Subtotal).Div(hundred),
		GrandTotal:     order.Total,
	}
	return models.NewBill(order.OrderID, models.Mode(order.Mode), models.PaymentMethod(order.PaymentMethod),
		lines, order.Discount, totals, created), nil
}
