package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Period string

const (
	PeriodDaily   Period = "Daily"
	PeriodWeekly  Period = "Weekly"
	PeriodMonthly Period = "Monthly"
)

// ParsePeriod menerima "daily", "Weekly", dst.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily":
		return PeriodDaily, nil
	case "weekly":
		return PeriodWeekly, nil
	case "monthly":
		return PeriodMonthly, nil
	}
	return "", fmt.Errorf("unknown report period %q", s)
}

// SalesSummaryRow adalah proyeksi baca, dihitung ulang setiap diminta
type SalesSummaryRow struct {
	BucketKey   string          `json:"bucket_key"`
	OrdersCount int             `json:"orders_count"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	SubtotalSum decimal.Decimal `json:"subtotal_sum"`
	GSTSum      decimal.Decimal `json:"gst_sum"`
}

type ItemSales struct {
	ItemName string `json:"item_name"`
	TotalQty int    `json:"total_qty"`
}

type SalesReport struct {
	Period   Period            `json:"period"`
	Rows     []SalesSummaryRow `json:"rows"`
	TopItems []ItemSales       `json:"top_items"`
}
