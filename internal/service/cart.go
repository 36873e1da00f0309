package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
	"github.com/shopspring/decimal"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// CartService определяет интерфейс для работы с корзиной пользователя.
type CartService interface {
	GetCart(ctx context.Context, userID int64) (*CartResponse, error)
	AddItem(ctx context.Context, userID, productID int64, quantity int) (*models.CartItem, error)
	UpdateItem(ctx context.Context, userID, itemID int64, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}

// CartResponse — корзина с товарами и промежуточной суммой.
type CartResponse struct {
	Items    []*models.CartItemWithProduct `json:"items"`
	Subtotal decimal.Decimal               `json:"subtotal"`
}

type cartService struct {
	log      *slog.Logger
	cartRepo storage.CartStorage
}

func NewCartService(log *slog.Logger, cartRepo storage.CartStorage) CartService {
	return &cartService{
		log:      log,
		cartRepo: cartRepo,
	}
}

func (s *cartService) GetCart(ctx context.Context, userID int64) (*CartResponse, error) {
	const op = "service.CartService.GetCart"

	items, err := s.cartRepo.GetCartItems(ctx, userID)
	if err != nil {
		s.log.Error("failed to get cart items", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get cart items: %w", op, err)
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return &CartResponse{Items: items, Subtotal: subtotal}, nil
}

// AddItem добавляет товар в корзину. Повторное добавление того же товара
// суммирует количество с уже существующей позицией.
func (s *cartService) AddItem(ctx context.Context, userID, productID int64, quantity int) (*models.CartItem, error) {
	const op = "service.CartService.AddItem"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.Int64("productID", productID))

	if quantity < 1 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidQuantity)
	}

	item, err := s.cartRepo.AddCartItem(ctx, userID, productID, quantity)
	if err != nil {
		logger.Error("failed to add cart item", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to add cart item: %w", op, err)
	}

	logger.Info("item added to cart", slog.Int("quantity", item.Quantity))
	return item, nil
}

// UpdateItem заменяет количество у позиции. Позиция должна принадлежать
// пользователю, чужие позиции выглядят как отсутствующие.
func (s *cartService) UpdateItem(ctx context.Context, userID, itemID int64, quantity int) (*models.CartItem, error) {
	const op = "service.CartService.UpdateItem"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.Int64("itemID", itemID))

	if quantity < 1 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidQuantity)
	}

	if err := s.checkOwnership(ctx, userID, itemID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	item, err := s.cartRepo.UpdateCartItem(ctx, itemID, quantity)
	if err != nil {
		logger.Error("failed to update cart item", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to update cart item: %w", op, err)
	}
	return item, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, itemID int64) error {
	const op = "service.CartService.RemoveItem"

	if err := s.checkOwnership(ctx, userID, itemID); err != nil {
		// удаление отсутствующей позиции не ошибка
		if errors.Is(err, storage.ErrCartItemNotFound) {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cartRepo.RemoveCartItem(ctx, itemID); err != nil {
		return fmt.Errorf("%s: failed to remove cart item: %w", op, err)
	}
	return nil
}

func (s *cartService) Clear(ctx context.Context, userID int64) error {
	const op = "service.CartService.Clear"

	if err := s.cartRepo.ClearCart(ctx, userID); err != nil {
		s.log.Error("failed to clear cart", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: failed to clear cart: %w", op, err)
	}
	return nil
}

func (s *cartService) checkOwnership(ctx context.Context, userID, itemID int64) error {
	items, err := s.cartRepo.GetCartItems(ctx, userID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.ID == itemID {
			return nil
		}
	}
	return storage.ErrCartItemNotFound
}
