package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-billing/models"
)

type BillDocumentItem struct {
	ItemName  string  `json:"item_name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	GST       float64 `json:"gst"`
	LineTotal float64 `json:"line_total"`
}

// BillDocument adalah bentuk JSON satu bill, dipakai untuk file per-order
// maupun ekspor semua bill.
type BillDocument struct {
	OrderID       int64              `json:"order_id"`
	Timestamp     string             `json:"timestamp"`
	Mode          string             `json:"mode"`
	PaymentMethod string             `json:"payment_method"`
	Items         []BillDocumentItem `json:"items"`
	Subtotal      float64            `json:"subtotal"`
	GSTTotal      float64            `json:"gst_total"`
	DiscountPct   float64            `json:"discount_pct"`
	Total         float64            `json:"total"`
}

func NewBillDocument(bill models.Bill) BillDocument {
	items := make([]BillDocumentItem, 0, len(bill.Lines))
	for _, l := range bill.Lines {
		items = append(items, BillDocumentItem{
			ItemName:  l.ItemName,
			Quantity:  l.Quantity,
			Price:     l.UnitPrice.InexactFloat64(),
			GST:       l.TaxRatePct.InexactFloat64(),
			LineTotal: l.LineTotal().InexactFloat64(),
		})
	}
	return BillDocument{
		OrderID:       bill.OrderID,
		Timestamp:     bill.Timestamp(),
		Mode:          string(bill.Mode),
		PaymentMethod: string(bill.PaymentMethod),
		Items:         items,
		Subtotal:      bill.Totals.Subtotal.InexactFloat64(),
		GSTTotal:      bill.Totals.TaxTotal.InexactFloat64(),
		DiscountPct:   bill.DiscountPct.InexactFloat64(),
		Total:         bill.Totals.GrandTotal.InexactFloat64(),
	}
}

// ToBill mengubah dokumen kembali menjadi Bill
func (d BillDocument) ToBill() (models.Bill, error) {
	created, err := parseTimestamp(d.Timestamp)
	if err != nil {
		return models.Bill{}, fmt.Errorf("bill %d: %w", d.OrderID, err)
	}
	lines := make([]models.OrderLine, 0, len(d.Items))
	for _, it := range d.Items {
		lines = append(lines, models.OrderLine{
			ItemName:   it.ItemName,
			Quantity:   it.Quantity,
			UnitPrice:  decimal.NewFromFloat(it.Price),
			TaxRatePct: decimal.NewFromFloat(it.GST),
		})
	}
	subtotal := decimal.NewFromFloat(d.Subtotal)
	discountPct := decimal.NewFromFloat(d.DiscountPct)
	totals := models.Totals{
		Subtotal:       subtotal,
		TaxTotal:       decimal.NewFromFloat(d.GSTTotal),
		DiscountAmount: discountPct.Mul(subtotal).Div(hundred),
		GrandTotal:     decimal.NewFromFloat(d.Total),
	}
	return models.NewBill(d.OrderID, models.Mode(d.Mode), models.PaymentMethod(d.PaymentMethod),
		lines, discountPct, totals, created), nil
}

// BillDocumentWriter menulis bill_<order_id>.json; jalan ulang dengan id sama menimpa file
type BillDocumentWriter struct {
	Dir string
}

func NewBillDocumentWriter(dir string) *BillDocumentWriter {
	return &BillDocumentWriter{Dir: dir}
}

func (w *BillDocumentWriter) Name() string { return SinkJSON }

func (w *BillDocumentWriter) PathFor(orderID int64) string {
	return filepath.Join(w.Dir, fmt.Sprintf("bill_%d.json", orderID))
}

func (w *BillDocumentWriter) Write(_ context.Context, bill models.Bill) (string, error) {
	path := w.PathFor(bill.OrderID)
	if err := writeJSONFile(path, NewBillDocument(bill)); err != nil {
		return "", err
	}
	return path, nil
}

func ReadBillDocument(path string) (BillDocument, error) {
	var doc BillDocument
	raw, err := os.ReadFile(path)
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

// WriteAllBills mengekspor semua bill dalam satu array JSON
func WriteAllBills(path string, bills []models.Bill) error {
	docs := make([]BillDocument, 0, len(bills))
	for _, b := range bills {
		docs = append(docs, NewBillDocument(b))
	}
	return writeJSONFile(path, docs)
}

func writeJSONFile(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, raw, 0o644)
}
