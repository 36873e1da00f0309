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

var ErrForbidden = errors.New("access denied")

// OrderService определяет интерфейс для работы с заказами.
type OrderService interface {
	// CreateOrder создаёт заказ с позициями как единое целое. Итоговую сумму
	// считает вызывающий (оформление заказа), здесь она не пересчитывается.
	CreateOrder(ctx context.Context, userID int64, total decimal.Decimal, items []storage.OrderItemInput) (*models.Order, error)
	// GetOrders возвращает историю заказов пользователя, новые первыми.
	GetOrders(ctx context.Context, userID int64) ([]*models.Order, error)
	// GetOrder возвращает заказ с позициями. ErrForbidden, если заказ
	// принадлежит другому пользователю.
	GetOrder(ctx context.Context, userID, orderID int64) (*models.OrderDetail, error)
}

type orderService struct {
	log       *slog.Logger
	orderRepo storage.OrderStorage
}

func NewOrderService(log *slog.Logger, orderRepo storage.OrderStorage) OrderService {
	return &orderService{
		log:       log,
		orderRepo: orderRepo,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, userID int64, total decimal.Decimal, items []storage.OrderItemInput) (*models.Order, error) {
	const op = "service.OrderService.CreateOrder"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	// предусловие проверяется до любой мутации
	if len(items) == 0 {
		logger.Warn("rejected order with no items")
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNoOrderItems)
	}

	order, err := s.orderRepo.CreateOrder(ctx, userID, total, items)
	if err != nil {
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	logger.Info("order created", slog.Int64("orderID", order.ID), slog.String("total", total.String()))
	return order, nil
}

func (s *orderService) GetOrders(ctx context.Context, userID int64) ([]*models.Order, error) {
	const op = "service.OrderService.GetOrders"

	orders, err := s.orderRepo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to get orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get orders: %w", op, err)
	}
	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, userID, orderID int64) (*models.OrderDetail, error) {
	const op = "service.OrderService.GetOrder"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.Int64("orderID", orderID))

	detail, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, storage.ErrOrderNotFound) {
			logger.Error("failed to get order", slog.Any("error", err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if detail.UserID != userID {
		logger.Warn("order belongs to another user")
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}
	return detail, nil
}
