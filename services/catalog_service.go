package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"burger-shop/libs"
	"burger-shop/models"
	"burger-shop/repositories"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const catalogKeyPrefix = "catalog:"

type CatalogService struct {
	store repositories.Store
	cache libs.Cache
	ttl   time.Duration
	group singleflight.Group
	log   logrus.FieldLogger
}

func NewCatalogService(store repositories.Store, cache libs.Cache, ttl time.Duration, log logrus.FieldLogger) *CatalogService {
	if cache == nil {
		cache = libs.NoopCache{}
	}
	return &CatalogService{store: store, cache: cache, ttl: ttl, log: log}
}

// cached loads key from the cache, or runs load once per key across concurrent callers and stores the result.
// load runs without the first caller's cancellation since every waiter shares its result.
func cached[T any](ctx context.Context, s *CatalogService, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if b, err := s.cache.Get(ctx, key); err == nil {
		var v T
		if err := json.Unmarshal(b, &v); err == nil {
			return v, nil
		}
	} else if !errors.Is(err, libs.ErrCacheMiss) {
		s.log.WithError(err).WithField("key", key).Warn("catalog cache read failed")
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		loadCtx := context.WithoutCancel(ctx)
		fresh, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		if b, err := json.Marshal(fresh); err == nil {
			if err := s.cache.Set(loadCtx, key, b, s.ttl); err != nil {
				s.log.WithError(err).WithField("key", key).Warn("catalog cache write failed")
			}
		}
		return fresh, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return cached(ctx, s, catalogKeyPrefix+"categories", func(ctx context.Context) ([]models.Category, error) {
		return s.store.Products().ListCategories(ctx)
	})
}

func (s *CatalogService) ListProducts(ctx context.Context, categoryID *int) ([]models.Product, error) {
	key := catalogKeyPrefix + "products:all"
	if categoryID != nil {
		key = fmt.Sprintf("%sproducts:category:%d", catalogKeyPrefix, *categoryID)
	}
	return cached(ctx, s, key, func(ctx context.Context) ([]models.Product, error) {
		return s.store.Products().List(ctx, categoryID)
	})
}

// GetProduct hides inactive products from the storefront.
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	product, err := cached(ctx, s, fmt.Sprintf("%sproduct:%d", catalogKeyPrefix, id), func(ctx context.Context) (*models.Product, error) {
		return s.store.Products().FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, models.ErrNotFound
	}
	return product, nil
}

// Recommendations returns best sellers by ordered quantity, or the newest products when nothing has sold.
func (s *CatalogService) Recommendations(ctx context.Context, limit int) ([]models.Product, error) {
	if limit < 1 {
		limit = 4
	}

	products, err := s.store.Products().BestSellers(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(products) > 0 {
		return products, nil
	}

	products, err = s.store.Products().List(ctx, nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	if req.Price < 0 {
		return nil, models.NewValidationError("price", "price must not be negative")
	}

	product := &models.Product{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if err := s.store.Products().Create(ctx, product); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, models.NewValidationError("price", "price must not be negative")
		}
		product.Price = *req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.store.Products().Update(ctx, product); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return product, nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, catalogKeyPrefix); err != nil {
		s.log.WithError(err).Warn("catalog cache invalidation failed")
	}
}
