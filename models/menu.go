package models

import "github.com/shopspring/decimal"

// MenuItem adalah item yang bisa dijual. Identitasnya nama dalam huruf kecil;
// item tidak pernah diubah di tempat (hapus lalu tambah ulang).
type MenuItem struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	ItemName string          `gorm:"column:item_name;type:varchar(255);not null;uniqueIndex" json:"item_name"`
	Category string          `gorm:"column:category;type:varchar(100)" json:"category"`
	Price    decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	GST      decimal.Decimal `gorm:"column:gst;type:decimal(5,2);not null;default:0" json:"gst"`
}

func (MenuItem) TableName() string { return "menu" }
