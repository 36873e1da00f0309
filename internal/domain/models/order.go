package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Статусы заказа
const (
	OrderStatusPending = "pending"
)

// Order представляет заказ (шапка без позиций)
type Order struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// OrderItem представляет позицию заказа. Цена копируется на момент оформления,
// последующие изменения цены товара на историю заказов не влияют.
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderItemWithProduct — позиция заказа вместе с данными товара
type OrderItemWithProduct struct {
	OrderItem
	Product *Product `json:"product"`
}

// OrderDetail — заказ вместе с позициями для страницы деталей
type OrderDetail struct {
	Order
	Items []*OrderItemWithProduct `json:"items"`
}
