package services

import (
	"time"

	"burger-shop/models"
	"burger-shop/repositories"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

const (
	classicBurger = 1
	cheeseBurger  = 2
	fries         = 3
	retiredItem   = 4
)

func newTestStore(opts ...repositories.MemoryOption) *repositories.MemoryStore {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	base := []repositories.MemoryOption{
		repositories.WithCategories(models.Category{ID: 1, Name: "Burger"}, models.Category{ID: 2, Name: "Sides"}),
		repositories.WithProducts(
			models.Product{ID: classicBurger, CategoryID: 1, Name: "NADEA Classic Burger", Price: 5500, IsActive: true, CreatedAt: created},
			models.Product{ID: cheeseBurger, CategoryID: 1, Name: "Double Cheese Burger", Price: 7500, IsActive: true, CreatedAt: created.Add(time.Hour)},
			models.Product{ID: fries, CategoryID: 2, Name: "French Fries", Price: 2000, IsActive: true, CreatedAt: created.Add(2 * time.Hour)},
			models.Product{ID: retiredItem, CategoryID: 2, Name: "Onion Rings", Price: 2500, IsActive: false, CreatedAt: created},
		),
	}
	return repositories.NewMemoryStore(append(base, opts...)...)
}

func newTestLogger() (logrus.FieldLogger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}

type cartFixture struct {
	store  *repositories.MemoryStore
	carts  *CartService
	orders *OrderService
	hook   *test.Hook
}

func newCartFixture(opts ...OrderOption) *cartFixture {
	store := newTestStore()
	log, hook := newTestLogger()
	pricing := NewPricingEngine(log)
	return &cartFixture{
		store:  store,
		carts:  NewCartService(store, pricing, log),
		orders: NewOrderService(store, pricing, log, opts...),
		hook:   hook,
	}
}
