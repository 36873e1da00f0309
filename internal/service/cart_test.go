package service_test

import (
	"context"
	"testing"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/service"
	"github.com/linemk/storefront/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture(t *testing.T) service.CartService {
	t.Helper()
	store := storage.NewStorage()
	store.AddProduct(models.Product{Name: "Mug", Price: decimal.RequireFromString("9.50"), InStock: true})
	store.AddProduct(models.Product{Name: "Poster", Price: decimal.RequireFromString("4.25"), InStock: true})
	return service.NewCartService(testLogger(), storage.NewCartRepository(store))
}

func TestCartService_AddItem_RejectsBadQuantity(t *testing.T) {
	svc := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 1, 0)
	assert.ErrorIs(t, err, service.ErrInvalidQuantity)
	_, err = svc.AddItem(ctx, 1, 1, -3)
	assert.ErrorIs(t, err, service.ErrInvalidQuantity)

	// невалидная запись не применяется даже частично
	cart, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartService_GetCart_Subtotal(t *testing.T) {
	svc := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 1, 2) // 9.50 x 2
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, 1, 2, 1) // 4.25
	require.NoError(t, err)

	cart, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.True(t, cart.Subtotal.Equal(decimal.RequireFromString("23.25")), "subtotal: %s", cart.Subtotal)
}

// позиция другого пользователя недоступна для изменения и выглядит отсутствующей
func TestCartService_UpdateItem_OwnershipRequired(t *testing.T) {
	svc := newCartFixture(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, 1, 1, 1)
	require.NoError(t, err)

	_, err = svc.UpdateItem(ctx, 2, item.ID, 5)
	assert.ErrorIs(t, err, storage.ErrCartItemNotFound)

	updated, err := svc.UpdateItem(ctx, 1, item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
}

func TestCartService_RemoveItem_AbsentIsNoop(t *testing.T) {
	svc := newCartFixture(t)
	ctx := context.Background()

	assert.NoError(t, svc.RemoveItem(ctx, 1, 12345))
}

// чужая позиция не удаляется
func TestCartService_RemoveItem_OtherUser(t *testing.T) {
	svc := newCartFixture(t)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, 1, 1, 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(ctx, 2, item.ID))

	cart, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1, "item of another user must survive")
}
