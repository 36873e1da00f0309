package models

// CartItem представляет позицию корзины. Инвариант: на пару (user, product)
// существует не более одной записи, повторное добавление увеличивает количество.
type CartItem struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CartItemWithProduct — позиция корзины вместе с данными товара (JOIN для отображения)
type CartItemWithProduct struct {
	CartItem
	Product *Product `json:"product"`
}
