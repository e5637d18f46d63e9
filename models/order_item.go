package models

import "github.com/shopspring/decimal"

type OrderItem struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	OrderID  int64           `gorm:"column:order_id;index" json:"order_id"`
	ItemName string          `gorm:"column:item_name;type:varchar(255)" json:"item_name"`
	Quantity int             `gorm:"column:quantity" json:"quantity"`
	Price    decimal.Decimal `gorm:"column:price;type:decimal(10,2)" json:"price"`
	GST      decimal.Decimal `gorm:"column:gst;type:decimal(5,2);default:0" json:"gst"`
}

func (OrderItem) TableName() string { return "order_items" }
