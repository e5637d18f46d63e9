package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-billing/models"
)

// LedgerColumns adalah header ledger; setiap baris memuat total order supaya
// ledger bisa merekonstruksi bill tanpa join.
var LedgerColumns = []string{
	"order_id", "timestamp", "mode", "payment_method",
	"item_name", "quantity", "price", "gst", "line_total",
	"subtotal", "gst_total", "discount_pct", "total",
}

// Ledger adalah file CSV append-only berisi semua baris order
type Ledger struct {
	Path string
}

func NewLedger(path string) *Ledger {
	return &Ledger{Path: path}
}

func (l *Ledger) Name() string { return SinkLedger }

// Write menambahkan satu baris per item. Header hanya ditulis saat file dibuat.
func (l *Ledger) Write(_ context.Context, bill models.Bill) (string, error) {
	if err := os.MkdirAll(filepath.Dir(l.Path), 0o755); err != nil {
		return "", err
	}

	_, statErr := os.Stat(l.Path)
	isNew := errors.Is(statErr, os.ErrNotExist)

	f, err := os.OpenFile(l.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(LedgerColumns); err != nil {
			return "", err
		}
	}

	for _, line := range bill.Lines {
		if err := w.Write(ledgerRow(bill, line)); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write ledger: %w", err)
	}
	return l.Path, nil
}

func ledgerRow(bill models.Bill, line models.OrderLine) []string {
	return []string{
		strconv.FormatInt(bill.OrderID, 10),
		bill.Timestamp(),
		string(bill.Mode),
		string(bill.PaymentMethod),
		line.ItemName,
		strconv.Itoa(line.Quantity),
		line.UnitPrice.String(),
		line.TaxRatePct.String(),
		line.LineTotal().String(),
		bill.Totals.Subtotal.String(),
		bill.Totals.TaxTotal.String(),
		bill.DiscountPct.String(),
		bill.Totals.GrandTotal.String(),
	}
}

// EnsureLedger membuat ledger berisi header saja bila belum ada
func EnsureLedger(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(LedgerColumns); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// ReadLedger merekonstruksi semua bill dari ledger saja, urut kemunculan
func ReadLedger(path string) ([]models.Bill, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(LedgerColumns)

	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read ledger header: %w", err)
	}

	var bills []models.Bill
	index := make(map[int64]int)

	for row := 2; ; row++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ledger row %d: %w", row, err)
		}

		p := ledgerParser{rec: rec}
		orderID := p.intAt(0)
		line := models.OrderLine{
			ItemName:   rec[4],
			Quantity:   int(p.intAt(5)),
			UnitPrice:  p.decimalAt(6),
			TaxRatePct: p.decimalAt(7),
		}
		if p.err != nil {
			return nil, fmt.Errorf("ledger row %d: %w", row, p.err)
		}

		if i, ok := index[orderID]; ok {
			bills[i].Lines = append(bills[i].Lines, line)
			continue
		}

		created, err := parseTimestamp(rec[1])
		if err != nil {
			return nil, fmt.Errorf("ledger row %d: %w", row, err)
		}
		subtotal, discountPct := p.decimalAt(9), p.decimalAt(11)
		totals := models.Totals{
			Subtotal:       subtotal,
			TaxTotal:       p.decimalAt(10),
			DiscountAmount: discountPct.Mul(subtotal).Div(hundred),
			GrandTotal:     p.decimalAt(12),
		}
		if p.err != nil {
			return nil, fmt.Errorf("ledger row %d: %w", row, p.err)
		}

		index[orderID] = len(bills)
		bills = append(bills, models.NewBill(orderID, models.Mode(rec[2]), models.PaymentMethod(rec[3]),
			[]models.OrderLine{line}, discountPct, totals, created))
	}
	return bills, nil
}

// ledgerParser menyimpan error pertama supaya parsing kolom tetap ringkas
type ledgerParser struct {
	rec []string
	err error
}

func (p *ledgerParser) intAt(i int) int64 {
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(p.rec[i], 10, 64)
	if err != nil {
		p.err = fmt.Errorf("column %s: %w", LedgerColumns[i], err)
	}
	return v
}

func (p *ledgerParser) decimalAt(i int) decimal.Decimal {
	if p.err != nil {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(p.rec[i])
	if err != nil {
		p.err = fmt.Errorf("column %s: %w", LedgerColumns[i], err)
	}
	return v
}
