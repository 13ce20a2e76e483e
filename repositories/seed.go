package repositories

import (
	"time"

	"burger-shop/models"
)

// SeedCatalog mirrors the catalog inserted by the seed migration, for the in-memory store.
func SeedCatalog() []MemoryOption {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []MemoryOption{
		WithCategories(
			models.Category{ID: 1, Name: "Burger", ImageURL: "https://images.unsplash.com/photo-1571091718767-18b5b1457add", CreatedAt: created},
			models.Category{ID: 2, Name: "Sides", ImageURL: "https://images.unsplash.com/photo-1573016608244-7d5e271367ec", CreatedAt: created},
			models.Category{ID: 3, Name: "Drinks", ImageURL: "https://images.unsplash.com/photo-1581006852262-e4307cf6283a", CreatedAt: created},
		),
		WithProducts(
			models.Product{ID: 1, CategoryID: 1, Name: "NADEA Classic Burger", Description: "Our best seller!", Price: 5500,
				ImageURL: "https://images.unsplash.com/photo-1568901346375-23c9450c58cd", IsActive: true, CreatedAt: created, UpdatedAt: created},
			models.Product{ID: 2, CategoryID: 1, Name: "Double Cheese Burger", Description: "Two patties, two slices of cheddar.", Price: 7500,
				ImageURL: "https://images.unsplash.com/photo-1512152272829-e3139592d56f", IsActive: true, CreatedAt: created, UpdatedAt: created},
			models.Product{ID: 3, CategoryID: 2, Name: "French Fries", Description: "Crispy golden fries.", Price: 2000,
				ImageURL: "https://images.unsplash.com/photo-1573016608244-7d5e271367ec", IsActive: true, CreatedAt: created, UpdatedAt: created},
		),
	}
}
