package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product представляет товар каталога. После сидирования товары не изменяются.
type Product struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	OldPrice    *decimal.Decimal `json:"old_price,omitempty"` // старая цена для отображения скидки
	Image       string           `json:"image"`
	CategoryID  int64            `json:"category_id"`
	Rating      decimal.Decimal  `json:"rating"` // от 0.0 до 5.0
	ReviewCount int              `json:"review_count"`
	InStock     bool             `json:"in_stock"`
	IsNew       bool             `json:"is_new"`
	IsFeatured  bool             `json:"is_featured"`
	IsPopular   bool             `json:"is_popular"`
	IsSale      bool             `json:"is_sale"`
	CreatedAt   time.Time        `json:"created_at"`
}

// Category представляет категорию товаров, плоский список без иерархии
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}
