package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-billing/database"
	"github.com/yeremiapane/restaurant-billing/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB -> sqlite file di temp dir + migrasi
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedMenu(t *testing.T, catalog *MenuCatalog) {
	t.Helper()
	ctx := context.Background()
	for _, it := range []struct{ name, cat, price, gst string }{
		{"Tea", "Beverages", "20", "5"},
		{"Paneer Tikka", "Starters", "180", "5"},
		{"Butter Naan", "Breads", "40", "12"},
	} {
		_, err := catalog.Add(ctx, it.name, it.cat, dec(it.price), dec(it.gst))
		require.NoError(t, err)
	}
}

func line(name string, qty int, price, gst string) models.OrderLine {
	return models.OrderLine{ItemName: name, Quantity: qty, UnitPrice: dec(price), TaxRatePct: dec(gst)}
}

// fixedIDs selalu mengembalikan id yang sama
type fixedIDs int64

func (f fixedIDs) Next() int64 { return int64(f) }
