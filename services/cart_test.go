package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-billing/models"
)

func TestCartAddLineRejectsBadQuantity(t *testing.T) {
	catalog := NewMenuCatalog(setupTestDB(t))
	seedMenu(t, catalog)
	cart := NewCart()

	for _, qty := range []int{0, -1} {
		_, err := cart.AddLine(context.Background(), catalog, "Tea", qty)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	assert.True(t, cart.IsEmpty())
}

func TestCartAddLineUnknownItem(t *testing.T) {
	catalog := NewMenuCatalog(setupTestDB(t))
	seedMenu(t, catalog)
	cart := NewCart()

	_, err := cart.AddLine(context.Background(), catalog, "Biryani", 1)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ErrorIs(t, err, ErrUnknownItem)
	assert.True(t, cart.IsEmpty())
}

func TestCartLineSnapshotSurvivesMenuChange(t *testing.T) {
	ctx := context.Background()
	catalog := NewMenuCatalog(setupTestDB(t))
	seedMenu(t, catalog)
	cart := NewCart()

	added, err := cart.AddLine(ctx, catalog, "tea", 2)
	require.NoError(t, err)
	assert.Equal(t, "Tea", added.ItemName)

	// item dihapus dan dibuat ulang dengan harga baru
	_, err = catalog.Remove(ctx, "Tea")
	require.NoError(t, err)
	_, err = catalog.Add(ctx, "Tea", "Beverages", dec("35"), dec("18"))
	require.NoError(t, err)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.True(t, dec("20").Equal(lines[0].UnitPrice))
	assert.True(t, dec("5").Equal(lines[0].TaxRatePct))
	assert.True(t, dec("40").Equal(cart.Totals().Subtotal))
}

func TestCartLinesReturnsCopy(t *testing.T) {
	catalog := NewMenuCatalog(setupTestDB(t))
	seedMenu(t, catalog)
	cart := NewCart()

	_, err := cart.AddLine(context.Background(), catalog, "Tea", 1)
	require.NoError(t, err)

	lines := cart.Lines()
	lines[0].Quantity = 99
	assert.Equal(t, 1, cart.Lines()[0].Quantity)
}

func TestCartOptionsAndClear(t *testing.T) {
	catalog := NewMenuCatalog(setupTestDB(t))
	seedMenu(t, catalog)
	cart := NewCart()

	assert.Equal(t, models.ModeDineIn, cart.Mode())
	assert.Equal(t, models.PaymentCash, cart.PaymentMethod())

	require.NoError(t, cart.SetMode("Takeaway"))
	require.NoError(t, cart.SetPaymentMethod("UPI"))
	var ve *ValidationError
	assert.ErrorAs(t, cart.SetMode("Delivery"), &ve)
	assert.Equal(t, models.ModeTakeaway, cart.Mode())
	cart.SetDiscountText("12.5")

	_, err := cart.AddLine(context.Background(), catalog, "Butter Naan", 2)
	require.NoError(t, err)

	view := cart.Snapshot()
	assert.Equal(t, models.ModeTakeaway, view.Mode)
	assert.Equal(t, models.PaymentUPI, view.PaymentMethod)
	assert.True(t, dec("12.5").Equal(view.DiscountPct))
	assert.Len(t, view.Lines, 1)

	cart.SetDiscountText("abc")
	assert.True(t, cart.DiscountPct().IsZero())

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, models.ModeDineIn, cart.Mode())
	assert.Equal(t, models.PaymentCash, cart.PaymentMethod())
	assert.True(t, cart.DiscountPct().IsZero())
}
