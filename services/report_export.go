package services

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/xuri/excelize/v2"
	"github.com/yeremiapane/restaurant-billing/models"
	"github.com/yeremiapane/restaurant-billing/utils"
)

var ErrNoSalesData = errors.New("no sales data to render")

// RenderSalesPDF menulis laporan penjualan dalam format PDF
func RenderSalesPDF(w io.Writer, report models.SalesReport, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 8, fmt.Sprintf("%s Sales Report", report.Period), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated At: %s", generatedAt.Format(models.TimestampLayout)), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	widths := []float64{40, 30, 40, 40, 40}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range SalesReportColumns {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	if len(report.Rows) == 0 {
		pdf.CellFormat(0, 7, "No orders found.", "1", 1, "L", false, 0, "")
	}
	total := decimal.Zero
	for _, r := range report.Rows {
		pdf.CellFormat(widths[0], 7, r.BucketKey, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, fmt.Sprintf("%d", r.OrdersCount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, utils.FormatRupees(r.TotalSales), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, utils.FormatRupees(r.SubtotalSum), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, utils.FormatRupees(r.GSTSum), "1", 1, "R", false, 0, "")
		total = total.Add(r.TotalSales)
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total Sales: %s", utils.FormatRupees(total)), "", 1, "R", false, 0, "")
	pdf.Ln(3)

	if len(report.TopItems) > 0 {
		pdf.CellFormat(0, 7, "Top Selling Items", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for i, it := range report.TopItems {
			pdf.CellFormat(0, 6, fmt.Sprintf("%d. %s x%d", i+1, it.ItemName, it.TotalQty), "", 1, "L", false, 0, "")
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

// RenderSalesChart menggambar total penjualan per bucket sebagai PNG
func RenderSalesChart(w io.Writer, report models.SalesReport) error {
	if len(report.Rows) == 0 {
		return ErrNoSalesData
	}

	bars := make([]chart.Value, 0, len(report.Rows))
	maxValue := 0.0
	for _, r := range report.Rows {
		v := r.TotalSales.InexactFloat64()
		if v > maxValue {
			maxValue = v
		}
		bars = append(bars, chart.Value{Value: v, Label: r.BucketKey})
	}
	if maxValue <= 0 {
		maxValue = 1
	}

	graph := chart.BarChart{
		Title: fmt.Sprintf("%s Sales", report.Period),
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Width:    1024,
		Height:   512,
		BarWidth: 40,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxValue * 1.1},
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render sales chart: %w", err)
	}
	return nil
}

// WriteSalesWorkbook menulis dua sheet: ringkasan bucket dan item terlaris
func WriteSalesWorkbook(w io.Writer, report models.SalesReport) error {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "Sales"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}

	header := make([]interface{}, len(SalesReportColumns))
	for i, c := range SalesReportColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return err
	}
	for i, r := range report.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.BucketKey,
			r.OrdersCount,
			r.TotalSales.InexactFloat64(),
			r.SubtotalSum.InexactFloat64(),
			r.GSTSum.InexactFloat64(),
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}

	itemsSheet := "Top Items"
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(itemsSheet, "A1", &[]interface{}{"item_name", "total_qty"}); err != nil {
		return err
	}
	for i, it := range report.TopItems {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(itemsSheet, cell, &[]interface{}{it.ItemName, it.TotalQty}); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
