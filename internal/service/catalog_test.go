package service_test

import (
	"context"
	"testing"

	"github.com/linemk/storefront/internal/service"
	"github.com/linemk/storefront/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService(t *testing.T) service.CatalogService {
	t.Helper()
	store := storage.NewStorage()
	store.Seed()
	return service.NewCatalogService(testLogger(), storage.NewProductRepository(store), 12, 100)
}

func TestCatalogService_ListProducts_Paging(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	// вся выборка одной страницей
	all, err := svc.ListProducts(ctx, service.ProductQuery{Limit: 100})
	require.NoError(t, err)
	total := all.Total
	require.Greater(t, total, 5)
	assert.Len(t, all.Products, total)
	assert.Equal(t, 1, all.TotalPages)

	// страницы по 5: число страниц округляется вверх
	paged, err := svc.ListProducts(ctx, service.ProductQuery{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, total, paged.Total)
	assert.Len(t, paged.Products, 5)
	assert.Equal(t, (total+4)/5, paged.TotalPages)

	// последняя страница может быть неполной
	last, err := svc.ListProducts(ctx, service.ProductQuery{Page: paged.TotalPages, Limit: 5})
	require.NoError(t, err)
	assert.NotEmpty(t, last.Products)
	assert.LessOrEqual(t, len(last.Products), 5)

	// страницы не пересекаются
	second, err := svc.ListProducts(ctx, service.ProductQuery{Page: 2, Limit: 5})
	require.NoError(t, err)
	for _, p1 := range paged.Products {
		for _, p2 := range second.Products {
			assert.NotEqual(t, p1.ID, p2.ID)
		}
	}
}

func TestCatalogService_ListProducts_Defaults(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	// нулевые page/limit заменяются настройками по умолчанию
	resp, err := svc.ListProducts(ctx, service.ProductQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 12, resp.Limit)

	// limit сверх максимума урезается
	resp, err = svc.ListProducts(ctx, service.ProductQuery{Limit: 100000})
	require.NoError(t, err)
	assert.Equal(t, 100, resp.Limit)
}

func TestCatalogService_ListProducts_FeaturedFilter(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	resp, err := svc.ListProducts(ctx, service.ProductQuery{FeaturedOnly: true, Limit: 100})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Products)
	for _, p := range resp.Products {
		assert.True(t, p.IsFeatured)
	}
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	svc := newCatalogService(t)

	_, err := svc.GetProduct(context.Background(), 424242)
	assert.ErrorIs(t, err, storage.ErrProductNotFound)
}

func TestCatalogService_ListCategories(t *testing.T) {
	svc := newCatalogService(t)

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 5)
}
