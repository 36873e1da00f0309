package storage

import (
	"sync"

	"github.com/linemk/storefront/internal/domain/models"
)

// Storage — общее in-memory хранилище: таблицы id -> запись и счетчики
// идентификаторов по каждой сущности. Репозитории получают *Storage так же,
// как получали бы *sql.DB. Один RWMutex сериализует мутации корзины и заказов,
// иначе при параллельной обработке запросов ломаются инварианты
// "слияние дубликатов" и "заказ вместе с позициями".
type Storage struct {
	mu sync.RWMutex

	products   map[int64]*models.Product
	categories map[int64]*models.Category
	cartItems  map[int64]*models.CartItem
	orders     map[int64]*models.Order
	orderItems map[int64]*models.OrderItem
	users      map[int64]*models.User

	nextProductID   int64
	nextCategoryID  int64
	nextCartItemID  int64
	nextOrderID     int64
	nextOrderItemID int64
	nextUserID      int64
}

// NewStorage создаёт пустое хранилище
func NewStorage() *Storage {
	return &Storage{
		products:   make(map[int64]*models.Product),
		categories: make(map[int64]*models.Category),
		cartItems:  make(map[int64]*models.CartItem),
		orders:     make(map[int64]*models.Order),
		orderItems: make(map[int64]*models.OrderItem),
		users:      make(map[int64]*models.User),
	}
}

// AddCategory добавляет категорию с новым идентификатором. Используется
// сидером при старте, после этого категории только читаются.
func (s *Storage) AddCategory(category models.Category) *models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCategoryID++
	category.ID = s.nextCategoryID
	s.categories[category.ID] = &category
	return &category
}

// AddProduct добавляет товар с новым идентификатором. Используется сидером
// при старте, после этого товары только читаются.
func (s *Storage) AddProduct(product models.Product) *models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextProductID++
	product.ID = s.nextProductID
	s.products[product.ID] = &product
	return &product
}
