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

func newOrderFixture(t *testing.T) service.OrderService {
	t.Helper()
	store := storage.NewStorage()
	store.AddProduct(models.Product{Name: "Lamp", Price: decimal.RequireFromString("25.00"), InStock: true})
	return service.NewOrderService(testLogger(), storage.NewOrderRepository(store))
}

// предусловие: заказ без позиций отклоняется, шапка не создаётся
func TestOrderService_CreateOrder_EmptyItems(t *testing.T) {
	svc := newOrderFixture(t)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, 1, decimal.Zero, nil)
	assert.ErrorIs(t, err, storage.ErrNoOrderItems)

	orders, err := svc.GetOrders(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_GetOrder_OwnershipCheck(t *testing.T) {
	svc := newOrderFixture(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, 1, decimal.RequireFromString("25.00"), []storage.OrderItemInput{
		{ProductID: 1, Quantity: 1, Price: decimal.RequireFromString("25.00")},
	})
	require.NoError(t, err)

	// владелец видит заказ
	detail, err := svc.GetOrder(ctx, 1, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, detail.ID)

	// чужой заказ недоступен
	_, err = svc.GetOrder(ctx, 2, order.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)

	// несуществующий заказ
	_, err = svc.GetOrder(ctx, 1, 999)
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)
}
