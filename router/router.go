package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-billing/config"
	"github.com/yeremiapane/restaurant-billing/controllers"
	"github.com/yeremiapane/restaurant-billing/display"
	"github.com/yeremiapane/restaurant-billing/middlewares"
	"github.com/yeremiapane/restaurant-billing/models"
	"github.com/yeremiapane/restaurant-billing/services"
	"gorm.io/gorm"
)

// Deps berisi service yang sudah dirakit di main
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Hub      *display.Hub
	Catalog  *services.MenuCatalog
	Store    *services.OrderStore
	Docs     *services.BillDocumentWriter
	Billing  *services.BillingService
	Reporter *services.SalesReporter
	Session  *controllers.CartSession
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.LoggerMiddleware())

	if d.Session == nil {
		d.Session = controllers.NewCartSession()
	}

	// Inisialisasi controller
	authCtrl := controllers.NewAuthController(d.DB)
	menuCtrl := controllers.NewMenuController(d.Catalog, d.Hub)
	cartCtrl := controllers.NewCartController(d.Session, d.Catalog, d.Hub)
	billCtrl := controllers.NewBillController(d.Billing, d.Store, d.Docs, d.Session, d.Hub, d.Config.RenderPDF)
	reportCtrl := controllers.NewReportController(d.Reporter, d.Config)
	displayCtrl := controllers.NewDisplayController(d.Hub, d.Session)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login
	r.POST("/login", middlewares.LoginRateLimiter(time.Second, 5), authCtrl.Login)

	// ----------------------------------------------------------------
	//                      KASIR (admin & cashier)
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	auth.Use(middlewares.RequireRole(models.RoleAdmin, models.RoleCashier))
	{
		auth.POST("/logout", authCtrl.Logout)

		auth.GET("/menu", menuCtrl.GetMenu)

		auth.GET("/cart", cartCtrl.GetCart)
		auth.POST("/cart/lines", cartCtrl.AddLine)
		auth.PUT("/cart/options", cartCtrl.UpdateOptions)
		auth.DELETE("/cart", cartCtrl.ClearCart)

		auth.POST("/bills", middlewares.BillLoggerMiddleware(), billCtrl.GenerateBill)
		auth.GET("/bills/:order_id", billCtrl.GetBill)
		auth.POST("/bills/:order_id/pdf", billCtrl.ExportBillPDF)

		// WebSocket layar kasir, token lewat query ?token=
		auth.GET("/ws/display", displayCtrl.DisplayHandler)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware())
	admin.Use(middlewares.RequireRole(models.RoleAdmin))
	{
		admin.POST("/menu", menuCtrl.AddMenuItem)
		admin.DELETE("/menu/:name", menuCtrl.DeleteMenuItem)

		admin.GET("/reports/sales", reportCtrl.GetSalesSummary)
		admin.GET("/reports/top-items", reportCtrl.GetTopItems)

		admin.POST("/exports/orders-csv", reportCtrl.ExportOrdersCSV)
		admin.POST("/exports/all-bills", reportCtrl.ExportAllBills)
		admin.POST("/exports/sales-csv", reportCtrl.ExportSalesCSV)
		admin.GET("/exports/sales.pdf", reportCtrl.SalesPDF)
		admin.GET("/exports/sales.png", reportCtrl.SalesChart)
		admin.GET("/exports/sales.xlsx", reportCtrl.SalesWorkbook)
	}

	return r
}
