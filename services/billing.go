package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-billing/models"
	"github.com/yeremiapane/restaurant-billing/utils"
)

// BillSink menulis bill final ke satu tujuan dan mengembalikan lokasinya
// (path file, atau kosong untuk database).
type BillSink interface {
	Name() string
	Write(ctx context.Context, bill models.Bill) (string, error)
}

type FinalizeRequest struct {
	// OrderID nol berarti diambil dari generator
	OrderID       int64
	Lines         []models.OrderLine
	Mode          models.Mode
	PaymentMethod models.PaymentMethod
	DiscountPct   decimal.Decimal
	RenderPDF     bool
}

type PersistResult struct {
	Bill      models.Bill
	Locations map[string]string
	Failures  []*SinkWriteError
}

// Err menggabungkan semua kegagalan sink, nil jika semua sukses
func (r PersistResult) Err() error {
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

func (r PersistResult) Succeeded(sink string) bool {
	_, ok := r.Locations[sink]
	return ok
}

// BillingService memfinalisasi order dan menuliskannya ke setiap sink secara
// berurutan. Tidak ada transaksi lintas sink: kegagalan satu sink tidak
// menghentikan atau me-rollback sink lainnya.
type BillingService struct {
	IDs     OrderIDGenerator
	Sinks   []BillSink
	Printer BillSink
	Now     func() time.Time
}

func NewBillingService(ids OrderIDGenerator, printer BillSink, sinks ...BillSink) *BillingService {
	return &BillingService{IDs: ids, Sinks: sinks, Printer: printer, Now: time.Now}
}

// Validate dijalankan sebelum sink mana pun ditulis
func (s *BillingService) Validate(req FinalizeRequest) error {
	if len(req.Lines) == 0 {
		return invalid("items", ErrEmptyOrder)
	}
	for _, l := range req.Lines {
		if l.Quantity <= 0 {
			return invalid("quantity", ErrInvalidQuantity)
		}
		if l.ItemName == "" {
			return invalid("item_name", ErrMissingField)
		}
	}
	if req.Mode == "" {
		return invalid("mode", ErrMissingField)
	}
	if _, err := models.ParseMode(string(req.Mode)); err != nil {
		return invalid("mode", err)
	}
	if req.PaymentMethod == "" {
		return invalid("payment_method", ErrMissingField)
	}
	if _, err := models.ParsePaymentMethod(string(req.PaymentMethod)); err != nil {
		return invalid("payment_method", err)
	}
	return nil
}

// FinalizeAndPersist menghitung total sekali lalu menulis bill yang sama ke
// semua sink. Error validasi dikembalikan tanpa menulis apa pun. Jika ada sink
// yang gagal, result tetap berisi bill dan lokasi sink yang berhasil, dan error
// yang dikembalikan adalah gabungan SinkWriteError.
func (s *BillingService) FinalizeAndPersist(ctx context.Context, req FinalizeRequest) (PersistResult, error) {
	if err := s.Validate(req); err != nil {
		return PersistResult{}, err
	}

	discount := req.DiscountPct
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	orderID := req.OrderID
	if orderID == 0 {
		orderID = s.IDs.Next()
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	totals := Compute(req.Lines, discount)
	bill := models.NewBill(orderID, req.Mode, req.PaymentMethod, req.Lines, discount, totals, now())

	result := PersistResult{Bill: bill, Locations: make(map[string]string)}

	sinks := s.Sinks
	if req.RenderPDF && s.Printer != nil {
		sinks = append(append([]BillSink{}, sinks...), s.Printer)
	}

	for _, sink := range sinks {
		loc, err := sink.Write(ctx, bill)
		if err != nil {
			utils.ErrorLogger.Errorf("Order %d: %s sink failed: %v", bill.OrderID, sink.Name(), err)
			result.Failures = append(result.Failures, &SinkWriteError{Sink: sink.Name(), Err: err})
			continue
		}
		result.Locations[sink.Name()] = loc
	}

	utils.InfoLogger.Printf("Order %d finalized: %d lines, total=%s, sinks ok=%d failed=%d",
		bill.OrderID, len(bill.Lines), bill.Totals.GrandTotal.StringFixed(2), len(result.Locations), len(result.Failures))

	return result, result.Err()
}

// RenderPrintable merender ulang dokumen cetak untuk bill yang sudah final
func (s *BillingService) RenderPrintable(ctx context.Context, bill models.Bill) (string, error) {
	if s.Printer == nil {
		return "", &SinkWriteError{Sink: SinkPDF, Err: errors.New("printable rendering is not configured")}
	}
	loc, err := s.Printer.Write(ctx, bill)
	if err != nil {
		return "", &SinkWriteError{Sink: s.Printer.Name(), Err: err}
	}
	return loc, nil
}
