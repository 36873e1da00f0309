package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNoOrderItems  = errors.New("order must contain at least one item")
)

// OrderItemInput — позиция будущего заказа. Цена фиксируется здесь,
// из живого каталога при создании она не перечитывается.
type OrderItemInput struct {
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
}

// OrderStorage описывает методы для работы с заказами.
type OrderStorage interface {
	// CreateOrder создаёт заказ вместе с позициями как единое целое: либо
	// записывается всё, либо ничего. Пустой список позиций отклоняется до
	// какой-либо мутации.
	CreateOrder(ctx context.Context, userID int64, total decimal.Decimal, items []OrderItemInput) (*models.Order, error)
	// GetOrdersByUserID возвращает заказы пользователя, новые первыми.
	GetOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error)
	// GetOrderByID возвращает заказ с позициями и товарами, ErrOrderNotFound если его нет.
	// Проверка принадлежности заказа пользователю остаётся на вызывающем.
	GetOrderByID(ctx context.Context, id int64) (*models.OrderDetail, error)
}

type orderRepository struct {
	store *Storage
}

// NewOrderRepository создаёт репозиторий заказов.
func NewOrderRepository(store *Storage) OrderStorage {
	return &orderRepository{store: store}
}

func (r *orderRepository) CreateOrder(ctx context.Context, userID int64, total decimal.Decimal, items []OrderItemInput) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrNoOrderItems
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// идентификаторы шапки и позиций назначаются под одной блокировкой,
	// читатели не могут увидеть заказ без его позиций
	r.store.nextOrderID++
	order := &models.Order{
		ID:        r.store.nextOrderID,
		UserID:    userID,
		Total:     total,
		Status:    models.OrderStatusPending,
		CreatedAt: time.Now(),
	}

	for _, input := range items {
		r.store.nextOrderItemID++
		item := &models.OrderItem{
			ID:        r.store.nextOrderItemID,
			OrderID:   order.ID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			Price:     input.Price,
		}
		r.store.orderItems[item.ID] = item
	}
	r.store.orders[order.ID] = order

	cp := *order
	return &cp, nil
}

func (r *orderRepository) GetOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*models.Order, 0)
	for _, o := range r.store.orders {
		if o.UserID == userID {
			cp := *o
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.OrderDetail, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	order, ok := r.store.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}

	detail := &models.OrderDetail{
		Order: *order,
		Items: make([]*models.OrderItemWithProduct, 0),
	}
	for _, item := range r.store.orderItems {
		if item.OrderID != id {
			continue
		}
		p, ok := r.store.products[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("order item %d: %w", item.ID, ErrProductNotFound)
		}
		cp := *p
		detail.Items = append(detail.Items, &models.OrderItemWithProduct{
			OrderItem: *item,
			Product:   &cp,
		})
	}
	sort.Slice(detail.Items, func(i, j int) bool { return detail.Items[i].ID < detail.Items[j].ID })
	return detail, nil
}
