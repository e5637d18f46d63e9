package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-billing/models"
	"github.com/yeremiapane/restaurant-billing/utils"
	"gorm.io/gorm"
)

// ItemFinder adalah bagian katalog yang dibutuhkan cart
type ItemFinder interface {
	Find(ctx context.Context, name string) (models.MenuItem, error)
}

// MenuCatalog mengelola tabel menu. Pencocokan nama selalu case-insensitive.
type MenuCatalog struct {
	DB *gorm.DB
}

func NewMenuCatalog(db *gorm.DB) *MenuCatalog {
	return &MenuCatalog{DB: db}
}

// List mengembalikan item dalam urutan penyimpanan
func (mc *MenuCatalog) List(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := mc.DB.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	return items, nil
}

func (mc *MenuCatalog) Find(ctx context.Context, name string) (models.MenuItem, error) {
	name = strings.TrimSpace(name)
	var item models.MenuItem
	err := mc.DB.WithContext(ctx).
		Where("lower(item_name) = lower(?)", name).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.MenuItem{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("find menu item: %w", err)
	}
	return item, nil
}

func (mc *MenuCatalog) Add(ctx context.Context, name, category string, price, taxRate decimal.Decimal) (models.MenuItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.MenuItem{}, invalid("item_name", ErrMissingField)
	}
	if price.IsNegative() {
		return models.MenuItem{}, invalid("price", ErrInvalidValue)
	}
	if taxRate.IsNegative() {
		return models.MenuItem{}, invalid("gst", ErrInvalidValue)
	}

	if _, err := mc.Find(ctx, name); err == nil {
		return models.MenuItem{}, fmt.Errorf("%q: %w", name, ErrDuplicateItem)
	} else if !errors.Is(err, ErrNotFound) {
		return models.MenuItem{}, err
	}

	item := models.MenuItem{
		ItemName: name,
		Category: strings.TrimSpace(category),
		Price:    price,
		GST:      taxRate,
	}
	if err := mc.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return models.MenuItem{}, fmt.Errorf("insert menu item: %w", err)
	}

	utils.InfoLogger.Printf("Menu item added: %s (price=%s, gst=%s%%)", item.ItemName, item.Price, item.GST)
	return item, nil
}

// Remove menghapus satu item yang namanya cocok (case-insensitive)
func (mc *MenuCatalog) Remove(ctx context.Context, name string) (models.MenuItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.MenuItem{}, invalid("item_name", ErrMissingField)
	}

	item, err := mc.Find(ctx, name)
	if err != nil {
		return models.MenuItem{}, err
	}

	res := mc.DB.WithContext(ctx).Delete(&models.MenuItem{}, item.ID)
	if res.Error != nil {
		return models.MenuItem{}, fmt.Errorf("delete menu item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.MenuItem{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}

	utils.InfoLogger.Printf("Menu item removed: %s", item.ItemName)
	return item, nil
}

// SeedFromCSV memuat menu awal dari CSV (item_name,category,price,gst).
// Nama yang sudah ada dilewati. File yang tidak ada bukan error.
func (mc *MenuCatalog) SeedFromCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("open menu seed: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read menu seed header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"item_name", "price"} {
		if _, ok := col[required]; !ok {
			return 0, fmt.Errorf("menu seed %s: missing column %q", path, required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	inserted := 0
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return inserted, fmt.Errorf("menu seed line %d: %w", line, err)
		}

		price, err := decimal.NewFromString(field(rec, "price"))
		if err != nil {
			return inserted, fmt.Errorf("menu seed line %d: bad price: %w", line, err)
		}
		gst := decimal.Zero
		if raw := field(rec, "gst"); raw != "" {
			if gst, err = decimal.NewFromString(raw); err != nil {
				return inserted, fmt.Errorf("menu seed line %d: bad gst: %w", line, err)
			}
		}

		_, err = mc.Add(ctx, field(rec, "item_name"), field(rec, "category"), price, gst)
		if errors.Is(err, ErrDuplicateItem) {
			continue
		}
		if err != nil {
			return inserted, fmt.Errorf("menu seed line %d: %w", line, err)
		}
		inserted++
	}
	return inserted, nil
}
