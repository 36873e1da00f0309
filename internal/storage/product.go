package storage

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/linemk/storefront/internal/domain/models"
)

var ErrProductNotFound = errors.New("product not found")

// Ключи сортировки каталога
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNewest    = "newest"
	SortRating    = "rating"
	SortDefault   = "default"
)

// ProductFilter — параметры выборки каталога. Все поля опциональны:
// nil-указатель или нулевое значение означает, что ограничение не применяется.
type ProductFilter struct {
	CategoryID   *int64 // точное совпадение категории
	FeaturedOnly bool   // только товары с флагом featured
	Search       string // подстрока в имени или описании без учета регистра
	Sort         string // один из Sort*-ключей, пустой эквивалентен SortDefault
	Offset       *int
	Limit        *int
}

// ProductStorage описывает методы для работы с каталогом.
type ProductStorage interface {
	// GetProduct возвращает товар по id, ErrProductNotFound если его нет.
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	// ListProducts возвращает товары по фильтру: фильтрация, затем сортировка,
	// затем пагинация — страница всегда режется от уже отсортированного набора.
	ListProducts(ctx context.Context, filter ProductFilter) ([]*models.Product, error)
	// CountProducts возвращает число товаров по фильтру без учета Offset/Limit.
	CountProducts(ctx context.Context, filter ProductFilter) (int, error)
	// ListCategories возвращает все категории.
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

type productRepository struct {
	store *Storage
}

// NewProductRepository создаёт репозиторий каталога.
func NewProductRepository(store *Storage) ProductStorage {
	return &productRepository{store: store}
}

func (r *productRepository) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

// matches — единый предикат фильтрации для ListProducts и CountProducts,
// чтобы счётчик страниц никогда не расходился со списком.
func matches(p *models.Product, filter ProductFilter) bool {
	if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
		return false
	}
	if filter.FeaturedOnly && !p.IsFeatured {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	return true
}

func sortProducts(products []*models.Product, key string) {
	switch key {
	case SortPriceAsc:
		sort.Slice(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case SortPriceDesc:
		sort.Slice(products, func(i, j int) bool {
			return products[j].Price.LessThan(products[i].Price)
		})
	case SortNewest:
		sort.Slice(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	case SortRating:
		sort.Slice(products, func(i, j int) bool {
			return products[j].Rating.LessThan(products[i].Rating)
		})
	default:
		sort.Slice(products, func(i, j int) bool {
			return products[i].ID < products[j].ID
		})
	}
}

func (r *productRepository) ListProducts(ctx context.Context, filter ProductFilter) ([]*models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*models.Product, 0)
	for _, p := range r.store.products {
		if matches(p, filter) {
			cp := *p
			result = append(result, &cp)
		}
	}

	sortProducts(result, filter.Sort)

	// пагинация применяется последней, иначе границы страниц неверны
	if filter.Offset != nil {
		offset := *filter.Offset
		if offset > len(result) {
			offset = len(result)
		}
		result = result[offset:]
	}
	if filter.Limit != nil && *filter.Limit < len(result) {
		result = result[:*filter.Limit]
	}
	return result, nil
}

func (r *productRepository) CountProducts(ctx context.Context, filter ProductFilter) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, p := range r.store.products {
		if matches(p, filter) {
			count++
		}
	}
	return count, nil
}

func (r *productRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*models.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		cp := *c
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
