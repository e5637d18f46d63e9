package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/yeremiapane/restaurant-billing/models"
	"github.com/yeremiapane/restaurant-billing/utils"
)

// ReceiptRenderer membuat bill_<order_id>.pdf dari Bill yang sama dengan sink
// lain, sehingga total tercetak tidak bisa berbeda dari total tersimpan.
type ReceiptRenderer struct {
	Dir        string
	Restaurant string
}

func NewReceiptRenderer(dir string) *ReceiptRenderer {
	return &ReceiptRenderer{Dir: dir, Restaurant: "Restaurant Bill"}
}

func (r *ReceiptRenderer) Name() string { return SinkPDF }

func (r *ReceiptRenderer) PathFor(orderID int64) string {
	return filepath.Join(r.Dir, fmt.Sprintf("bill_%d.pdf", orderID))
}

func (r *ReceiptRenderer) Write(_ context.Context, bill models.Bill) (string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, r.Restaurant, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Order ID: %d", bill.OrderID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Date: %s", bill.Timestamp()), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Mode: %s | Payment: %s", bill.Mode, bill.PaymentMethod), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(80, 8, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(15, 8, "GST%", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, l := range bill.Lines {
		pdf.CellFormat(80, 7, l.ItemName, "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", l.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, utils.FormatRupees(l.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(15, 7, l.TaxRatePct.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, utils.FormatRupees(l.LineTotal()), "", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	summary := []struct{ label, value string }{
		{"Subtotal", utils.FormatRupees(bill.Totals.Subtotal)},
		{"GST", utils.FormatRupees(bill.Totals.TaxTotal)},
		{fmt.Sprintf("Discount (%s%%)", bill.DiscountPct.String()), "-" + utils.FormatRupees(bill.Totals.DiscountAmount)},
	}
	for _, row := range summary {
		pdf.CellFormat(150, 7, row.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, row.value, "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(150, 9, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(30, 9, utils.FormatRupees(bill.Totals.GrandTotal), "T", 1, "R", false, 0, "")

	path := r.PathFor(bill.OrderID)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("render %s: %w", path, err)
	}
	return path, nil
}
