package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
)

// CatalogService определяет интерфейс для чтения каталога.
type CatalogService interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context, query ProductQuery) (*ProductListResponse, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

// ProductQuery — параметры списка товаров, как они приходят из транспортного слоя.
// Page и Limit нумеруются с единицы, нулевые значения заменяются настройками по умолчанию.
type ProductQuery struct {
	CategoryID   *int64
	FeaturedOnly bool
	Search       string
	Sort         string
	Page         int
	Limit        int
}

// ProductListResponse — страница каталога вместе с данными для пагинации.
type ProductListResponse struct {
	Products   []*models.Product `json:"products"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

type catalogService struct {
	log          *slog.Logger
	productRepo  storage.ProductStorage
	defaultLimit int
	maxLimit     int
}

func NewCatalogService(log *slog.Logger, productRepo storage.ProductStorage, defaultLimit, maxLimit int) CatalogService {
	return &catalogService{
		log:          log,
		productRepo:  productRepo,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

func (s *catalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	const op = "service.CatalogService.GetProduct"

	product, err := s.productRepo.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

// ListProducts возвращает страницу каталога. Общее число страниц считается
// по CountProducts с тем же фильтром, но без Offset/Limit.
func (s *catalogService) ListProducts(ctx context.Context, query ProductQuery) (*ProductListResponse, error) {
	const op = "service.CatalogService.ListProducts"
	logger := s.log.With(slog.String("op", op))

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	offset := (page - 1) * limit

	filter := storage.ProductFilter{
		CategoryID:   query.CategoryID,
		FeaturedOnly: query.FeaturedOnly,
		Search:       query.Search,
		Sort:         query.Sort,
	}

	total, err := s.productRepo.CountProducts(ctx, filter)
	if err != nil {
		logger.Error("failed to count products", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to count products: %w", op, err)
	}

	filter.Offset = &offset
	filter.Limit = &limit
	products, err := s.productRepo.ListProducts(ctx, filter)
	if err != nil {
		logger.Error("failed to list products", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to list products: %w", op, err)
	}

	totalPages := (total + limit - 1) / limit

	return &ProductListResponse{
		Products:   products,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	const op = "service.CatalogService.ListCategories"

	categories, err := s.productRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return categories, nil
}
