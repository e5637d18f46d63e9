package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-billing/config"
	"github.com/yeremiapane/restaurant-billing/controllers"
	"github.com/yeremiapane/restaurant-billing/database"
	"github.com/yeremiapane/restaurant-billing/display"
	"github.com/yeremiapane/restaurant-billing/router"
	"github.com/yeremiapane/restaurant-billing/services"
	"github.com/yeremiapane/restaurant-billing/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	utils.SetLogLevel(cfg.LogLevel)
	utils.ConfigureJWT(cfg.JWTSecret, cfg.JWTTTL)

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := cfg.EnsureDirs(); err != nil {
		utils.ErrorLogger.Fatalf("Failed to prepare data directories: %v", err)
	}

	// Initialize DB
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	if err := database.SeedUsers(db, cfg.AdminPassword, cfg.CashierPassword); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed users: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := services.NewMenuCatalog(db)
	if n, err := catalog.SeedFromCSV(ctx, cfg.MenuSeedCSV); err != nil {
		utils.ErrorLogger.Warnf("Menu seed from %s failed: %v", cfg.MenuSeedCSV, err)
	} else if n > 0 {
		utils.InfoLogger.Printf("Seeded %d menu items from %s", n, cfg.MenuSeedCSV)
	}

	ids, err := services.NewOrderIDGenerator(cfg.OrderIDScheme, cfg.SnowflakeNode)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to create order id generator: %v", err)
	}

	// Urutan sink: database, ledger CSV, dokumen JSON
	store := services.NewOrderStore(db)
	ledger := services.NewLedger(cfg.LedgerPath())
	docs := services.NewBillDocumentWriter(cfg.BillsDir())
	printer := services.NewReceiptRenderer(cfg.BillsDir())
	billing := services.NewBillingService(ids, printer, store, ledger, docs)

	hub := display.NewHub()
	defer hub.Close()

	clock := services.NewClock(hub, cfg.ClockInterval)
	clock.Start()
	defer clock.Stop()

	r := router.SetupRouter(router.Deps{
		Config:   cfg,
		DB:       db,
		Hub:      hub,
		Catalog:  catalog,
		Store:    store,
		Docs:     docs,
		Billing:  billing,
		Reporter: services.NewSalesReporter(store),
		Session:  controllers.NewCartSession(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Errorf("Shutdown error: %v", err)
	}
}
