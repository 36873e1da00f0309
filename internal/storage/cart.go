package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/linemk/storefront/internal/domain/models"
)

var ErrCartItemNotFound = errors.New("cart item not found")

// CartStorage описывает методы для работы с корзиной.
type CartStorage interface {
	// GetCartItems возвращает все позиции корзины пользователя вместе с товарами.
	GetCartItems(ctx context.Context, userID int64) ([]*models.CartItemWithProduct, error)
	// GetCartItem возвращает позицию по составному ключу (userID, productID).
	GetCartItem(ctx context.Context, userID, productID int64) (*models.CartItem, error)
	// AddCartItem добавляет товар в корзину. Если позиция для (userID, productID)
	// уже есть, количество суммируется, новая запись не создаётся.
	AddCartItem(ctx context.Context, userID, productID int64, quantity int) (*models.CartItem, error)
	// UpdateCartItem заменяет количество у позиции, количество валидирует вызывающий.
	UpdateCartItem(ctx context.Context, itemID int64, quantity int) (*models.CartItem, error)
	// RemoveCartItem удаляет позицию, отсутствие позиции не является ошибкой.
	RemoveCartItem(ctx context.Context, itemID int64) error
	// ClearCart удаляет все позиции пользователя.
	ClearCart(ctx context.Context, userID int64) error
}

type cartRepository struct {
	store *Storage
}

// NewCartRepository создаёт репозиторий корзины.
func NewCartRepository(store *Storage) CartStorage {
	return &cartRepository{store: store}
}

// joinProduct — единственное место, где позиция корзины соединяется с товаром,
// чтобы логика JOIN не расходилась между читающими путями.
func (r *cartRepository) joinProduct(item *models.CartItem) (*models.CartItemWithProduct, error) {
	p, ok := r.store.products[item.ProductID]
	if !ok {
		return nil, fmt.Errorf("cart item %d: %w", item.ID, ErrProductNotFound)
	}
	cp := *p
	return &models.CartItemWithProduct{
		CartItem: *item,
		Product:  &cp,
	}, nil
}

func (r *cartRepository) GetCartItems(ctx context.Context, userID int64) ([]*models.CartItemWithProduct, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*models.CartItemWithProduct, 0)
	for _, item := range r.store.cartItems {
		if item.UserID != userID {
			continue
		}
		joined, err := r.joinProduct(item)
		if err != nil {
			return nil, err
		}
		result = append(result, joined)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *cartRepository) GetCartItem(ctx context.Context, userID, productID int64) (*models.CartItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, item := range r.store.cartItems {
		if item.UserID == userID && item.ProductID == productID {
			cp := *item
			return &cp, nil
		}
	}
	return nil, ErrCartItemNotFound
}

func (r *cartRepository) AddCartItem(ctx context.Context, userID, productID int64, quantity int) (*models.CartItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[productID]; !ok {
		return nil, ErrProductNotFound
	}

	// слияние с уже существующей позицией вместо дубликата
	for _, item := range r.store.cartItems {
		if item.UserID == userID && item.ProductID == productID {
			item.Quantity += quantity
			cp := *item
			return &cp, nil
		}
	}

	r.store.nextCartItemID++
	item := &models.CartItem{
		ID:        r.store.nextCartItemID,
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	r.store.cartItems[item.ID] = item
	cp := *item
	return &cp, nil
}

func (r *cartRepository) UpdateCartItem(ctx context.Context, itemID int64, quantity int) (*models.CartItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.cartItems[itemID]
	if !ok {
		return nil, ErrCartItemNotFound
	}
	item.Quantity = quantity
	cp := *item
	return &cp, nil
}

func (r *cartRepository) RemoveCartItem(ctx context.Context, itemID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.cartItems, itemID)
	return nil
}

func (r *cartRepository) ClearCart(ctx context.Context, userID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, item := range r.store.cartItems {
		if item.UserID == userID {
			delete(r.store.cartItems, id)
		}
	}
	return nil
}
