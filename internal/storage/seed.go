package storage

import (
	"time"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/shopspring/decimal"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func decPtr(value string) *decimal.Decimal {
	d := dec(value)
	return &d
}

type seedProduct struct {
	name        string
	description string
	price       decimal.Decimal
	oldPrice    *decimal.Decimal
	image       string
	categoryID  int64
	rating      decimal.Decimal
	reviewCount int
	inStock     bool
	isNew       bool
	isFeatured  bool
	isPopular   bool
	isSale      bool
}

// Seed наполняет хранилище каталогом. Вызывается один раз при старте процесса,
// после этого товары и категории только читаются.
func (s *Storage) Seed() {
	categories := []models.Category{
		{Name: "Electronics", Icon: "cpu"},
		{Name: "Clothing", Icon: "shirt"},
		{Name: "Home & Kitchen", Icon: "home"},
		{Name: "Sports", Icon: "dumbbell"},
		{Name: "Books", Icon: "book"},
	}
	for _, c := range categories {
		s.AddCategory(c)
	}

	products := []seedProduct{
		{
			name:        "Wireless Headphones",
			description: "Over-ear wireless headphones with active noise cancellation and 30-hour battery life",
			price:       dec("89.99"), oldPrice: decPtr("119.99"),
			image: "/images/headphones.jpg", categoryID: 1,
			rating: dec("4.6"), reviewCount: 214, inStock: true,
			isFeatured: true, isPopular: true, isSale: true,
		},
		{
			name:        "Smart Watch Pro",
			description: "Fitness tracking smart watch with heart-rate monitor and GPS",
			price:       dec("199.99"), oldPrice: decPtr("249.99"),
			image: "/images/smartwatch.jpg", categoryID: 1,
			rating: dec("4.4"), reviewCount: 158, inStock: true,
			isNew: true, isFeatured: true, isSale: true,
		},
		{
			name:        "Bluetooth Speaker",
			description: "Portable waterproof speaker with deep bass and 12-hour playtime",
			price:       dec("49.99"),
			image: "/images/speaker.jpg", categoryID: 1,
			rating: dec("4.2"), reviewCount: 96, inStock: true,
			isPopular: true,
		},
		{
			name:        "Mechanical Keyboard",
			description: "Compact mechanical keyboard with hot-swappable switches and RGB backlight",
			price:       dec("129.99"),
			image: "/images/keyboard.jpg", categoryID: 1,
			rating: dec("4.7"), reviewCount: 342, inStock: true,
			isFeatured: true, isPopular: true,
		},
		{
			name:        "USB-C Charging Hub",
			description: "7-in-1 USB-C hub with HDMI, card reader and 100W passthrough charging",
			price:       dec("39.99"), oldPrice: decPtr("54.99"),
			image: "/images/hub.jpg", categoryID: 1,
			rating: dec("4.0"), reviewCount: 61, inStock: true,
			isSale: true,
		},
		{
			name:        "Classic Cotton T-Shirt",
			description: "Soft 100% cotton t-shirt, regular fit, machine washable",
			price:       dec("19.99"),
			image: "/images/tshirt.jpg", categoryID: 2,
			rating: dec("4.3"), reviewCount: 427, inStock: true,
			isPopular: true,
		},
		{
			name:        "Denim Jacket",
			description: "Medium-wash denim jacket with button front and chest pockets",
			price:       dec("69.99"), oldPrice: decPtr("89.99"),
			image: "/images/jacket.jpg", categoryID: 2,
			rating: dec("4.5"), reviewCount: 183, inStock: true,
			isFeatured: true, isSale: true,
		},
		{
			name:        "Running Sneakers",
			description: "Lightweight breathable running sneakers with cushioned sole",
			price:       dec("94.99"),
			image: "/images/sneakers.jpg", categoryID: 2,
			rating: dec("4.6"), reviewCount: 265, inStock: true,
			isNew: true, isPopular: true,
		},
		{
			name:        "Wool Beanie",
			description: "Warm knitted wool beanie, one size fits most",
			price:       dec("14.99"),
			image: "/images/beanie.jpg", categoryID: 2,
			rating: dec("3.9"), reviewCount: 44, inStock: false,
		},
		{
			name:        "French Press Coffee Maker",
			description: "Borosilicate glass french press with stainless steel filter, 1 liter",
			price:       dec("29.99"),
			image: "/images/frenchpress.jpg", categoryID: 3,
			rating: dec("4.8"), reviewCount: 519, inStock: true,
			isFeatured: true, isPopular: true,
		},
		{
			name:        "Cast Iron Skillet",
			description: "Pre-seasoned 10-inch cast iron skillet for stovetop and oven",
			price:       dec("34.99"), oldPrice: decPtr("44.99"),
			image: "/images/skillet.jpg", categoryID: 3,
			rating: dec("4.7"), reviewCount: 388, inStock: true,
			isSale: true,
		},
		{
			name:        "Ceramic Dinnerware Set",
			description: "16-piece ceramic dinnerware set, dishwasher and microwave safe",
			price:       dec("79.99"),
			image: "/images/dinnerware.jpg", categoryID: 3,
			rating: dec("4.1"), reviewCount: 72, inStock: true,
			isNew: true,
		},
		{
			name:        "Yoga Mat",
			description: "Non-slip yoga mat, 6mm thick, with carrying strap",
			price:       dec("24.99"),
			image: "/images/yogamat.jpg", categoryID: 4,
			rating: dec("4.4"), reviewCount: 203, inStock: true,
			isPopular: true,
		},
		{
			name:        "Adjustable Dumbbell Set",
			description: "Pair of adjustable dumbbells, 2.5 to 25 kg per hand",
			price:       dec("249.99"), oldPrice: decPtr("299.99"),
			image: "/images/dumbbells.jpg", categoryID: 4,
			rating: dec("4.5"), reviewCount: 117, inStock: true,
			isFeatured: true, isSale: true,
		},
		{
			name:        "Insulated Water Bottle",
			description: "Double-wall vacuum insulated bottle, keeps drinks cold for 24 hours",
			price:       dec("22.99"),
			image: "/images/bottle.jpg", categoryID: 4,
			rating: dec("4.6"), reviewCount: 301, inStock: true,
			isNew: true, isPopular: true,
		},
		{
			name:        "The Art of Simple Cooking",
			description: "Hardcover cookbook with 120 everyday recipes and step-by-step photos",
			price:       dec("27.99"),
			image: "/images/cookbook.jpg", categoryID: 5,
			rating: dec("4.3"), reviewCount: 88, inStock: true,
		},
		{
			name:        "Mystery at Blackwood Manor",
			description: "Bestselling detective novel, paperback edition",
			price:       dec("12.99"), oldPrice: decPtr("16.99"),
			image: "/images/novel.jpg", categoryID: 5,
			rating: dec("4.0"), reviewCount: 156, inStock: true,
			isPopular: true, isSale: true,
		},
		{
			name:        "Learning to Draw",
			description: "Illustrated beginner's guide to sketching and drawing",
			price:       dec("18.99"),
			image: "/images/drawing.jpg", categoryID: 5,
			rating: dec("4.2"), reviewCount: 53, inStock: true,
			isNew: true,
		},
	}

	// даты создания разнесены, чтобы сортировка newest была осмысленной
	base := time.Now().Add(-time.Duration(len(products)) * 24 * time.Hour)
	for i, sp := range products {
		s.AddProduct(models.Product{
			Name:        sp.name,
			Description: sp.description,
			Price:       sp.price,
			OldPrice:    sp.oldPrice,
			Image:       sp.image,
			CategoryID:  sp.categoryID,
			Rating:      sp.rating,
			ReviewCount: sp.reviewCount,
			InStock:     sp.inStock,
			IsNew:       sp.isNew,
			IsFeatured:  sp.isFeatured,
			IsPopular:   sp.isPopular,
			IsSale:      sp.isSale,
			CreatedAt:   base.Add(time.Duration(i) * 24 * time.Hour),
		})
	}
}
