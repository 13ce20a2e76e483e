package services

import (
	"context"
	"errors"
	"fmt"

	"burger-shop/models"
	"burger-shop/repositories"

	"github.com/sirupsen/logrus"
)

// MaxLineQuantity bounds one cart line, including quantity merged in by repeated adds and reorders.
const MaxLineQuantity = 1000

func quantityTooLarge() error {
	return models.NewValidationError("quantity", fmt.Sprintf("must not exceed %d per item", MaxLineQuantity))
}

type CartService struct {
	store   repositories.Store
	pricing *PricingEngine
	log     logrus.FieldLogger
}

func NewCartService(store repositories.Store, pricing *PricingEngine, log logrus.FieldLogger) *CartService {
	return &CartService{store: store, pricing: pricing, log: log}
}

// AddItem merges into the existing (user, product) line or creates one. A merged line keeps its options.
func (s *CartService) AddItem(ctx context.Context, userID int, req models.AddCartItemRequest) (*models.CartLine, error) {
	if req.ProductID <= 0 {
		return nil, models.NewValidationError("productId", "product id is required")
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	if quantity > MaxLineQuantity {
		return nil, quantityTooLarge()
	}

	product, err := s.activeProduct(ctx, s.store, req.ProductID)
	if err != nil {
		return nil, err
	}

	raw, err := EncodeOptions(req.Options)
	if err != nil {
		return nil, models.NewValidationError("options", err.Error())
	}

	var line *models.CartLine
	err = s.store.WithTx(ctx, func(tx repositories.Store) error {
		merged, err := tx.Carts().AddOrIncrement(ctx, models.CartLine{
			UserID:     userID,
			ProductID:  product.ID,
			Quantity:   quantity,
			RawOptions: raw,
		})
		if err != nil {
			return err
		}
		if merged.Quantity > MaxLineQuantity {
			return quantityTooLarge()
		}
		line = merged
		return nil
	})
	if err != nil {
		return nil, err
	}

	line.Product = product
	line.Options = decodeLenient(line.RawOptions)
	return line, nil
}

func (s *CartService) activeProduct(ctx context.Context, store repositories.Store, productID int) (*models.Product, error) {
	product, err := store.Products().FindByID(ctx, productID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.NewValidationError("productId", "product not found")
	}
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, models.NewValidationError("productId", "product is not available")
	}
	return product, nil
}

// SetQuantity overwrites a line's quantity. A quantity of zero or less removes the line and returns nil.
func (s *CartService) SetQuantity(ctx context.Context, userID, lineID, quantity int) (*models.CartLine, error) {
	if quantity <= 0 {
		return nil, s.store.Carts().Delete(ctx, userID, lineID)
	}
	if quantity > MaxLineQuantity {
		return nil, quantityTooLarge()
	}

	line, err := s.store.Carts().UpdateQuantity(ctx, userID, lineID, quantity)
	if err != nil {
		return nil, err
	}
	line.Options = decodeLenient(line.RawOptions)
	return line, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, lineID int) error {
	return s.store.Carts().Delete(ctx, userID, lineID)
}

func (s *CartService) Clear(ctx context.Context, userID int) error {
	_, err := s.store.Carts().Clear(ctx, userID)
	return err
}

// View prices the cart at current product prices. The total is an estimate; checkout freezes its own.
func (s *CartService) View(ctx context.Context, userID int) (*models.CartView, error) {
	lines, err := s.store.Carts().List(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &models.CartView{Items: make([]models.CartLineView, 0, len(lines))}
	for _, line := range lines {
		if line.Product == nil {
			continue
		}
		options, _ := s.pricing.ResolveOptions(line)
		unit := s.pricing.UnitPrice(line.Product.Price, options)

		view.Items = append(view.Items, models.CartLineView{
			ID:           line.ID,
			ProductID:    line.ProductID,
			ProductName:  line.Product.Name,
			ProductImage: line.Product.ImageURL,
			BasePrice:    line.Product.Price,
			UnitPrice:    unit,
			Quantity:     line.Quantity,
			LineTotal:    unit * line.Quantity,
			Options:      options,
		})
		view.TotalPrice += unit * line.Quantity
	}
	return view, nil
}
