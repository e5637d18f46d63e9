package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-billing/config"
	"github.com/yeremiapane/restaurant-billing/controllers"
	"github.com/yeremiapane/restaurant-billing/database"
	"github.com/yeremiapane/restaurant-billing/display"
	"github.com/yeremiapane/restaurant-billing/router"
	"github.com/yeremiapane/restaurant-billing/services"
	"github.com/yeremiapane/restaurant-billing/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// TestEndToEndIntegration menguji flow utama kasir:
// 0. Seed user, login admin & cashier -> token
// 1. Admin menambah menu
// 2. Cashier menyusun cart (item, mode, payment, diskon)
// 3. Generate bill -> cart kosong, file JSON bisa dibuka lagi
// 4. Export PDF bill
// 5. Admin melihat laporan & export
func TestEndToEndIntegration(t *testing.T) {
	r, cfg := setupTestApp(t)

	adminToken := loginTest(t, r, "admin", "admin123")
	cashierToken := loginTest(t, r, "cashier", "cashier123")

	addMenuTest(t, r, adminToken, cashierToken)
	buildCartTest(t, r, cashierToken)

	orderID := generateBillTest(t, r, cashierToken)
	openBillTest(t, r, cashierToken, orderID)
	exportBillPDFTest(t, r, cashierToken, orderID)

	reportsTest(t, r, adminToken, cashierToken, cfg)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := setupTestApp(t)

	w := doRequest(r, http.MethodGet, "/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/admin/reports/sales", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodPost, "/login", "", map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := loginTest(t, r, "cashier", "cashier123")
	w = doRequest(r, http.MethodGet, "/cart", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doRequest(r, http.MethodGet, "/cart", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// setupTestApp -> sqlite di temp dir + seed user + router lengkap
func setupTestApp(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		DBDriver:      "sqlite",
		DBPath:        filepath.Join(dir, "restaurant.db"),
		DataDir:       filepath.Join(dir, "data"),
		OrderIDScheme: "unix",
	}
	require.NoError(t, cfg.EnsureDirs())
	utils.ConfigureJWT("integration-secret", time.Hour)

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedUsers(db, "admin123", "cashier123"))

	ids, err := services.NewOrderIDGenerator(cfg.OrderIDScheme, 0)
	require.NoError(t, err)

	store := services.NewOrderStore(db)
	docs := services.NewBillDocumentWriter(cfg.BillsDir())
	billing := services.NewBillingService(ids, services.NewReceiptRenderer(cfg.BillsDir()),
		store, services.NewLedger(cfg.LedgerPath()), docs)

	hub := display.NewHub()
	t.Cleanup(hub.Close)

	r := router.SetupRouter(router.Deps{
		Config:   cfg,
		DB:       db,
		Hub:      hub,
		Catalog:  services.NewMenuCatalog(db),
		Store:    store,
		Docs:     docs,
		Billing:  billing,
		Reporter: services.NewSalesReporter(store),
		Session:  controllers.NewCartSession(),
	})
	return r, cfg
}

func doRequest(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, data interface{}) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp
}

func loginTest(t *testing.T, r *gin.Engine, username, password string) string {
	w := doRequest(r, http.MethodPost, "/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("loginTest fail: code=%d, body=%s", w.Code, w.Body.String())
	}

	var data struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	resp := decodeResponse(t, w, &data)
	require.True(t, resp.Status)
	require.NotEmpty(t, data.Token)
	assert.Equal(t, username, data.Role)
	return data.Token
}

func addMenuTest(t *testing.T, r *gin.Engine, adminToken, cashierToken string) {
	for _, item := range []map[string]interface{}{
		{"item_name": "Paneer Tikka", "category": "Starters", "price": 180, "gst": 5},
		{"item_name": "Tea", "category": "Beverages", "price": 20, "gst": 5},
	} {
		w := doRequest(r, http.MethodPost, "/admin/menu", adminToken, item)
		if w.Code != http.StatusCreated {
			t.Fatalf("addMenuTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
		}
	}

	w := doRequest(r, http.MethodPost, "/admin/menu", adminToken,
		map[string]interface{}{"item_name": "tea", "category": "Beverages", "price": 25, "gst": 5})
	assert.Equal(t, http.StatusConflict, w.Code)

	// cashier tidak boleh mengubah menu
	w = doRequest(r, http.MethodPost, "/admin/menu", cashierToken,
		map[string]interface{}{"item_name": "Coffee", "price": 30, "gst": 5})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, http.MethodGet, "/menu", cashierToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var menu []struct {
		ItemName string `json:"item_name"`
	}
	decodeResponse(t, w, &menu)
	require.Len(t, menu, 2)
	assert.Equal(t, "Paneer Tikka", menu[0].ItemName)
}

func buildCartTest(t *testing.T, r *gin.Engine, token string) {
	w := doRequest(r, http.MethodPost, "/cart/lines", token, map[string]interface{}{"item_name": "Tea", "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/cart/lines", token, map[string]interface{}{"item_name": "Biryani", "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/cart/lines", token, map[string]interface{}{"item_name": "paneer tikka", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doRequest(r, http.MethodPost, "/cart/lines", token, map[string]interface{}{"item_name": "Tea", "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(r, http.MethodPut, "/cart/options", token, map[string]interface{}{"mode": "Delivery"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPut, "/cart/options", token, map[string]interface{}{
		"mode":           "Takeaway",
		"payment_method": "UPI",
		"discount":       "10",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var view struct {
		Lines []struct {
			ItemName string `json:"item_name"`
			Quantity int    `json:"quantity"`
		} `json:"lines"`
		Mode          string `json:"mode"`
		PaymentMethod string `json:"payment_method"`
		Totals        struct {
			GrandTotal string `json:"grand_total"`
		} `json:"totals"`
	}
	decodeResponse(t, w, &view)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, "Paneer Tikka", view.Lines[0].ItemName)
	assert.Equal(t, "Takeaway", view.Mode)
	assert.Equal(t, "UPI", view.PaymentMethod)
	assert.Equal(t, "361", view.Totals.GrandTotal)
}

// generateBillTest -> POST /bills => 201, cart kembali kosong
func generateBillTest(t *testing.T, r *gin.Engine, token string) int64 {
	w := doRequest(r, http.MethodPost, "/bills", token, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("generateBillTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var data struct {
		Bill     services.BillDocument `json:"bill"`
		Failures []interface{}         `json:"failures"`
	}
	decodeResponse(t, w, &data)
	assert.Empty(t, data.Failures)
	assert.Equal(t, "Takeaway", data.Bill.Mode)
	assert.Equal(t, "UPI", data.Bill.PaymentMethod)
	assert.InDelta(t, 380, data.Bill.Subtotal, 0.001)
	assert.InDelta(t, 19, data.Bill.GSTTotal, 0.001)
	assert.InDelta(t, 361, data.Bill.Total, 0.001)

	w = doRequest(r, http.MethodGet, "/cart", token, nil)
	var view struct {
		Lines         []interface{} `json:"lines"`
		Mode          string        `json:"mode"`
		PaymentMethod string        `json:"payment_method"`
	}
	decodeResponse(t, w, &view)
	assert.Empty(t, view.Lines)
	assert.Equal(t, "Dine-In", view.Mode)
	assert.Equal(t, "Cash", view.PaymentMethod)

	// cart kosong ditolak tanpa menulis apa pun
	w = doRequest(r, http.MethodPost, "/bills", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	return data.Bill.OrderID
}

func openBillTest(t *testing.T, r *gin.Engine, token string, orderID int64) {
	w := doRequest(r, http.MethodGet, "/bills/"+strconv.FormatInt(orderID, 10), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var doc services.BillDocument
	decodeResponse(t, w, &doc)
	assert.Equal(t, orderID, doc.OrderID)
	assert.Len(t, doc.Items, 2)

	w = doRequest(r, http.MethodGet, "/bills/12345", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodGet, "/bills/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func exportBillPDFTest(t *testing.T, r *gin.Engine, token string, orderID int64) {
	w := doRequest(r, http.MethodPost, "/bills/"+strconv.FormatInt(orderID, 10)+"/pdf", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = doRequest(r, http.MethodPost, "/bills/12345/pdf", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func reportsTest(t *testing.T, r *gin.Engine, adminToken, cashierToken string, cfg *config.Config) {
	w := doRequest(r, http.MethodGet, "/admin/reports/sales?period=daily", cashierToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, http.MethodGet, "/admin/reports/sales?period=yearly", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/admin/reports/sales?period=daily", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var report struct {
		Period string `json:"period"`
		Rows   []struct {
			BucketKey   string `json:"bucket_key"`
			OrdersCount int    `json:"orders_count"`
		} `json:"rows"`
	}
	decodeResponse(t, w, &report)
	assert.Equal(t, "Daily", report.Period)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, 1, report.Rows[0].OrdersCount)

	w = doRequest(r, http.MethodGet, "/admin/reports/top-items", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var top []struct {
		ItemName string `json:"item_name"`
		TotalQty int    `json:"total_qty"`
	}
	decodeResponse(t, w, &top)
	require.Len(t, top, 2)
	assert.Equal(t, "Paneer Tikka", top[0].ItemName)
	assert.Equal(t, 2, top[0].TotalQty)

	for _, path := range []string{"/admin/exports/orders-csv", "/admin/exports/all-bills", "/admin/exports/sales-csv"} {
		w = doRequest(r, http.MethodPost, path, adminToken, nil)
		assert.Equal(t, http.StatusOK, w.Code, "%s: %s", path, w.Body.String())
	}
	assert.FileExists(t, cfg.LedgerPath())
	assert.FileExists(t, cfg.AllBillsPath())
	assert.FileExists(t, cfg.SalesReportPath())

	w = doRequest(r, http.MethodGet, "/admin/exports/sales.png?period=monthly", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = doRequest(r, http.MethodGet, "/admin/exports/sales.xlsx", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/admin/exports/sales.pdf", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
}
