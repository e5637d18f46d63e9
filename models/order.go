package models

import "github.com/shopspring/decimal"

// TimestampLayout dipakai di semua sink (database, ledger, JSON)
const TimestampLayout = "2006-01-02 15:04:05"

// Order adalah baris header di tabel orders
type Order struct {
	OrderID       int64           `gorm:"column:order_id;primaryKey;autoIncrement:false" json:"order_id"`
	Mode          string          `gorm:"column:mode;type:varchar(20)" json:"mode"`
	PaymentMethod string          `gorm:"column:payment_method;type:varchar(20)" json:"payment_method"`
	Subtotal      decimal.Decimal `gorm:"column:subtotal;type:decimal(12,2)" json:"subtotal"`
	GST           decimal.Decimal `gorm:"column:gst;type:decimal(12,2)" json:"gst"`
	Discount      decimal.Decimal `gorm:"column:discount;type:decimal(6,2)" json:"discount"`
	Total         decimal.Decimal `gorm:"column:total;type:decimal(12,2)" json:"total"`
	Timestamp     string          `gorm:"column:timestamp;type:varchar(19)" json:"timestamp"`
	OrderItems    []OrderItem     `gorm:"foreignKey:OrderID;references:OrderID" json:"order_items"`
}

func (Order) TableName() string { return "orders" }
