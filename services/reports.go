package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-billing/models"
)

const DefaultTopItems = 10

var SalesReportColumns = []string{"bucket_key", "orders_count", "total_sales", "subtotal_sum", "gst_sum"}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(models.TimestampLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
	}
	return t, nil
}

// BucketKey: Daily "2006-01-02", Weekly "2006-W05" (minggu dimulai hari
// Minggu, minggu 00 sebelum Minggu pertama), Monthly "2006-01".
func BucketKey(t time.Time, period models.Period) string {
	switch period {
	case models.PeriodWeekly:
		week := (t.YearDay() - 1 + 7 - int(t.Weekday())) / 7
		return fmt.Sprintf("%04d-W%02d", t.Year(), week)
	case models.PeriodMonthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// Summarize mengelompokkan header order per bucket. Tidak melakukan I/O.
func Summarize(orders []models.Order, period models.Period) ([]models.SalesSummaryRow, error) {
	type bucket struct {
		row models.SalesSummaryRow
		ids map[int64]struct{}
	}
	buckets := make(map[string]*bucket)

	for _, o := range orders {
		ts, err := parseTimestamp(o.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", o.OrderID, err)
		}
		key := BucketKey(ts, period)

		b, ok := buckets[key]
		if !ok {
			b = &bucket{
				row: models.SalesSummaryRow{
					BucketKey:   key,
					TotalSales:  decimal.Zero,
					SubtotalSum: decimal.Zero,
					GSTSum:      decimal.Zero,
				},
				ids: make(map[int64]struct{}),
			}
			buckets[key] = b
		}
		b.ids[o.OrderID] = struct{}{}
		b.row.TotalSales = b.row.TotalSales.Add(o.Total)
		b.row.SubtotalSum = b.row.SubtotalSum.Add(o.Subtotal)
		b.row.GSTSum = b.row.GSTSum.Add(o.GST)
	}

	rows := make([]models.SalesSummaryRow, 0, len(buckets))
	for _, b := range buckets {
		b.row.OrdersCount = len(b.ids)
		rows = append(rows, b.row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].BucketKey < rows[j].BucketKey })
	return rows, nil
}

// TopItems menjumlahkan quantity per nama item, urut menurun. Urutan item
// dengan quantity sama mengikuti kemunculan pertama dan tidak bermakna.
func TopItems(items []models.OrderItem, n int) []models.ItemSales {
	index := make(map[string]int)
	totals := make([]models.ItemSales, 0)
	for _, it := range items {
		i, ok := index[it.ItemName]
		if !ok {
			i = len(totals)
			index[it.ItemName] = i
			totals = append(totals, models.ItemSales{ItemName: it.ItemName})
		}
		totals[i].TotalQty += it.Quantity
	}

	sort.SliceStable(totals, func(i, j int) bool { return totals[i].TotalQty > totals[j].TotalQty })
	if n > 0 && len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

// WriteSummaryCSV menulis baris laporan ke writer mana pun
func WriteSummaryCSV(w io.Writer, rows []models.SalesSummaryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SalesReportColumns); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.BucketKey,
			strconv.Itoa(r.OrdersCount),
			r.TotalSales.String(),
			r.SubtotalSum.String(),
			r.GSTSum.String(),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SalesReporter membaca seluruh order dari database (full scan)
type SalesReporter struct {
	Store *OrderStore
}

func NewSalesReporter(store *OrderStore) *SalesReporter {
	return &SalesReporter{Store: store}
}

// Summary mengembalikan laporan kosong (bukan error) jika belum ada order
func (r *SalesReporter) Summary(ctx context.Context, period models.Period) (models.SalesReport, error) {
	report := models.SalesReport{
		Period:   period,
		Rows:     []models.SalesSummaryRow{},
		TopItems: []models.ItemSales{},
	}

	orders, err := r.Store.ListOrders(ctx)
	if err != nil {
		return report, err
	}
	if len(orders) == 0 {
		return report, nil
	}

	if report.Rows, err = Summarize(orders, period); err != nil {
		return report, err
	}

	items, err := r.Store.ListOrderItems(ctx)
	if err != nil {
		return report, err
	}
	report.TopItems = TopItems(items, DefaultTopItems)
	return report, nil
}

// ExportSummaryCSV menulis laporan ke file dan mengembalikan laporannya
func (r *SalesReporter) ExportSummaryCSV(ctx context.Context, period models.Period, path string) (models.SalesReport, error) {
	report, err := r.Summary(ctx, period)
	if err != nil {
		return report, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return report, err
	}
	f, err := os.Create(path)
	if err != nil {
		return report, err
	}
	defer f.Close()

	if err := WriteSummaryCSV(f, report.Rows); err != nil {
		return report, fmt.Errorf("write sales report: %w", err)
	}
	return report, nil
}

func (r *SalesReporter) AllBills(ctx context.Context) ([]models.Bill, error) {
	orders, err := r.Store.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	bills := make([]models.Bill, 0, len(orders))
	for _, o := range orders {
		b, err := BillFromOrder(o)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, nil
}

// ExportAllBills menulis all_bills.json; mengembalikan jumlah bill
func (r *SalesReporter) ExportAllBills(ctx context.Context, path string) (int, error) {
	bills, err := r.AllBills(ctx)
	if err != nil {
		return 0, err
	}
	if err := WriteAllBills(path, bills); err != nil {
		return 0, fmt.Errorf("export all bills: %w", err)
	}
	return len(bills), nil
}
