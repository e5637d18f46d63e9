package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-billing/display"
	"github.com/yeremiapane/restaurant-billing/services"
	"github.com/yeremiapane/restaurant-billing/utils"
)

type BillController struct {
	Billing *services.BillingService
	Store   *services.OrderStore
	Docs    *services.BillDocumentWriter
	Session *CartSession
	Hub     services.Broadcaster
	// RenderPDF dipakai jika request tidak menentukan render_pdf
	RenderPDF bool
}

func NewBillController(billing *services.BillingService, store *services.OrderStore, docs *services.BillDocumentWriter,
	session *CartSession, hub services.Broadcaster, renderPDF bool) *BillController {
	return &BillController{
		Billing:   billing,
		Store:     store,
		Docs:      docs,
		Session:   session,
		Hub:       hub,
		RenderPDF: renderPDF,
	}
}

type sinkFailure struct {
	Sink  string `json:"sink"`
	Error string `json:"error"`
}

// GenerateBill -> finalisasi cart ke database, ledger CSV, dan file JSON.
// Cart hanya dikosongkan jika semua sink berhasil.
func (bc *BillController) GenerateBill(c *gin.Context) {
	var req struct {
		RenderPDF *bool `json:"render_pdf"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}
	renderPDF := bc.RenderPDF
	if req.RenderPDF != nil {
		renderPDF = *req.RenderPDF
	}

	var (
		result  services.PersistResult
		sinkErr error
	)
	err := bc.Session.With(func(cart *services.Cart) error {
		res, err := bc.Billing.FinalizeAndPersist(c.Request.Context(), services.FinalizeRequest{
			Lines:         cart.Lines(),
			Mode:          cart.Mode(),
			PaymentMethod: cart.PaymentMethod(),
			DiscountPct:   cart.DiscountPct(),
			RenderPDF:     renderPDF,
		})
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			return err
		}
		result, sinkErr = res, err
		if err == nil {
			cart.Clear()
		}
		return nil
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	failures := make([]sinkFailure, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, sinkFailure{Sink: f.Sink, Error: f.Err.Error()})
	}

	data := gin.H{
		"bill":      services.NewBillDocument(result.Bill),
		"locations": result.Locations,
		"failures":  failures,
	}

	if bc.Hub != nil {
		bc.Hub.Broadcast(display.EventBillGenerated, services.NewBillDocument(result.Bill))
		bc.Hub.Broadcast(display.EventCartUpdate, bc.Session.Snapshot())
	}

	if sinkErr != nil {
		utils.ErrorLogger.Warnf("Bill %d saved partially: %v", result.Bill.OrderID, sinkErr)
		utils.RespondJSON(c, http.StatusInternalServerError,
			fmt.Sprintf("Bill %d generated with errors", result.Bill.OrderID), data)
		return
	}

	utils.RespondJSON(c, http.StatusCreated,
		fmt.Sprintf("Bill generated and saved! Order ID: %d", result.Bill.OrderID), data)
}

// GetBill -> buka kembali dokumen JSON bill yang tersimpan
func (bc *BillController) GetBill(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	doc, err := services.ReadBillDocument(bc.Docs.PathFor(orderID))
	if errors.Is(err, os.ErrNotExist) {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("bill %d not found", orderID))
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Bill details", doc)
}

// ExportBillPDF -> render ulang bill dari database lalu kirim file PDF-nya
func (bc *BillController) ExportBillPDF(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := bc.Store.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	bill, err := services.BillFromOrder(order)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	path, err := bc.Billing.RenderPrintable(c.Request.Context(), bill)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}
