package controllers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-billing/config"
	"github.com/yeremiapane/restaurant-billing/models"
	"github.com/yeremiapane/restaurant-billing/services"
	"github.com/yeremiapane/restaurant-billing/utils"
)

type ReportController struct {
	Reporter *services.SalesReporter
	Config   *config.Config
}

func NewReportController(reporter *services.SalesReporter, cfg *config.Config) *ReportController {
	return &ReportController{Reporter: reporter, Config: cfg}
}

// periodParam -> default Monthly jika kosong
func periodParam(c *gin.Context) (models.Period, error) {
	raw := c.Query("period")
	if raw == "" {
		return models.PeriodMonthly, nil
	}
	return models.ParsePeriod(raw)
}

func (rc *ReportController) summary(c *gin.Context) (models.SalesReport, bool) {
	period, err := periodParam(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return models.SalesReport{}, false
	}
	report, err := rc.Reporter.Summary(c.Request.Context(), period)
	if err != nil {
		respondServiceError(c, err)
		return models.SalesReport{}, false
	}
	return report, true
}

// GetSalesSummary -> ringkasan Daily / Weekly / Monthly
func (rc *ReportController) GetSalesSummary(c *gin.Context) {
	report, ok := rc.summary(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Sales summary", report)
}

// GetTopItems -> item terlaris, default 10
func (rc *ReportController) GetTopItems(c *gin.Context) {
	limit := services.DefaultTopItems
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}

	items, err := rc.Reporter.Store.ListOrderItems(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Top selling items", services.TopItems(items, limit))
}

// ExportOrdersCSV -> pastikan ledger ada (header saja jika belum ada order)
func (rc *ReportController) ExportOrdersCSV(c *gin.Context) {
	path := rc.Config.LedgerPath()
	if err := services.EnsureLedger(path); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders exported to "+path, gin.H{"path": path})
}

func (rc *ReportController) ExportAllBills(c *gin.Context) {
	path := rc.Config.AllBillsPath()
	count, err := rc.Reporter.ExportAllBills(c.Request.Context(), path)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All bills exported to "+path, gin.H{"path": path, "count": count})
}

func (rc *ReportController) ExportSalesCSV(c *gin.Context) {
	period, err := periodParam(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	path := rc.Config.SalesReportPath()
	report, err := rc.Reporter.ExportSummaryCSV(c.Request.Context(), period, path)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Sales report exported to "+path, gin.H{
		"path":   path,
		"period": report.Period,
		"rows":   len(report.Rows),
	})
}

func (rc *ReportController) SalesPDF(c *gin.Context) {
	report, ok := rc.summary(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := services.RenderSalesPDF(&buf, report, time.Now()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="sales_report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// SalesChart -> grafik batang total penjualan per bucket
func (rc *ReportController) SalesChart(c *gin.Context) {
	report, ok := rc.summary(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := services.RenderSalesChart(&buf, report); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (rc *ReportController) SalesWorkbook(c *gin.Context) {
	report, ok := rc.summary(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := services.WriteSalesWorkbook(&buf, report); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="sales_report.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
