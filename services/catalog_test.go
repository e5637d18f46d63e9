package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogAddAndList(t *testing.T) {
	catalog := NewMenuCatalog(setupTestDB(t))
	seedMenu(t, catalog)

	items, err := catalog.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Tea", items[0].ItemName)
	assert.Equal(t, "Paneer Tikka", items[1].ItemName)
	assert.Equal(t, "Butter Naan", items[2].ItemName)
	assert.True(t, dec("180").Equal(items[1].Price))
	assert.True(t, dec("12").Equal(items[2].GST))
}

func TestCatalogRejectsDuplicateIgnoringCase(t *testing.T) {
	ctx := context.Background()
	catalog := NewMenuCatalog(setupTestDB(t))

	_, err := catalog.Add(ctx, "Tea", "Beverages", dec("20"), dec("5"))
	require.NoError(t, err)

	_, err = catalog.Add(ctx, "tea", "Beverages", dec("25"), dec("5"))
	assert.ErrorIs(t, err, ErrDuplicateItem)

	items, err := catalog.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCatalogAddValidation(t *testing.T) {
	ctx := context.Background()
	catalog := NewMenuCatalog(setupTestDB(t))

	_, err := catalog.Add(ctx, "  ", "Misc", dec("10"), dec("0"))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "item_name", ve.Field)

	_, err = catalog.Add(ctx, "Soup", "Misc", dec("-1"), dec("0"))
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = catalog.Add(ctx, "Soup", "Misc", dec("10"), dec("-5"))
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestCatalogFindIgnoresCase(t *testing.T) {
	catalog := NewMenuCatalog(setupTestDB(t))
	seedMenu(t, catalog)

	item, err := catalog.Find(context.Background(), "paneer TIKKA")
	require.NoError(t, err)
	assert.Equal(t, "Paneer Tikka", item.ItemName)

	_, err = catalog.Find(context.Background(), "Biryani")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogRemove(t *testing.T) {
	ctx := context.Background()
	catalog := NewMenuCatalog(setupTestDB(t))
	seedMenu(t, catalog)

	removed, err := catalog.Remove(ctx, "TEA")
	require.NoError(t, err)
	assert.Equal(t, "Tea", removed.ItemName)

	_, err = catalog.Remove(ctx, "Tea")
	assert.ErrorIs(t, err, ErrNotFound)

	items, err := catalog.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCatalogSeedFromCSV(t *testing.T) {
	ctx := context.Background()
	catalog := NewMenuCatalog(setupTestDB(t))

	path := filepath.Join(t.TempDir(), "menu.csv")
	content := "item_name,category,price,gst\n" +
		"Tea,Beverages,20,5\n" +
		"Masala Dosa,Mains,120,5\n" +
		"tea,Beverages,30,5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	n, err := catalog.SeedFromCSV(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// seed kedua tidak menambah apa pun
	n, err = catalog.SeedFromCSV(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = catalog.SeedFromCSV(ctx, filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
