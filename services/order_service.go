package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"burger-shop/models"
	"burger-shop/repositories"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NewOrderID returns "ORD-" followed by a UUIDv7, unique across concurrent checkouts and time ordered.
func NewOrderID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate order id: %w", err)
	}
	return "ORD-" + id.String(), nil
}

type OrderService struct {
	store    repositories.Store
	pricing  *PricingEngine
	notifier Notifier
	log      logrus.FieldLogger
	now      func() time.Time
	newID    func() (string, error)
}

type OrderOption func(s *OrderService)

func WithNotifier(n Notifier) OrderOption {
	return func(s *OrderService) { s.notifier = n }
}

func WithOrderClock(now func() time.Time) OrderOption {
	return func(s *OrderService) { s.now = now }
}

func WithIDGenerator(fn func() (string, error)) OrderOption {
	return func(s *OrderService) { s.newID = fn }
}

func NewOrderService(store repositories.Store, pricing *PricingEngine, log logrus.FieldLogger, opts ...OrderOption) *OrderService {
	s := &OrderService{
		store:    store,
		pricing:  pricing,
		notifier: noopNotifier{},
		log:      log,
		now:      time.Now,
		newID:    NewOrderID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checkout drains the caller's cart into a Pending order in one transaction. Prices are read
// at this instant and frozen into the order lines. Any failure leaves cart and orders untouched.
func (s *OrderService) Checkout(ctx context.Context, userID int, req models.CheckoutRequest) (*models.Order, error) {
	var order *models.Order

	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		if req.AddressID != nil {
			if _, err := tx.Addresses().FindForUser(ctx, userID, *req.AddressID); err != nil {
				if errors.Is(err, models.ErrNotFound) {
					return models.NewValidationError("addressId", "address not found")
				}
				return err
			}
		}

		cart, err := tx.Carts().LockForCheckout(ctx, userID)
		if err != nil {
			return err
		}
		if len(cart) == 0 {
			return models.ErrEmptyCart
		}

		id, err := s.newID()
		if err != nil {
			return err
		}
		now := s.now().UTC()

		o := &models.Order{
			ID:        id,
			UserID:    userID,
			Status:    models.OrderStatusPending,
			AddressID: req.AddressID,
			Contact:   strings.TrimSpace(req.Contact),
			CreatedAt: now,
			UpdatedAt: now,
		}

		lines := make([]models.OrderLine, 0, len(cart))
		lineIDs := make([]int, 0, len(cart))
		for _, cl := range cart {
			lineIDs = append(lineIDs, cl.ID)
			if cl.Product == nil {
				return models.NewValidationError("productId", fmt.Sprintf("product %d no longer exists", cl.ProductID))
			}
			options, warning := s.pricing.ResolveOptions(cl)
			if warning != "" {
				o.PricingWarnings = append(o.PricingWarnings, warning)
			}
			unit := s.pricing.UnitPrice(cl.Product.Price, options)

			lines = append(lines, models.OrderLine{
				ProductID:   cl.ProductID,
				ProductName: cl.Product.Name,
				Quantity:    cl.Quantity,
				UnitPrice:   unit,
				Options:     options,
				RawOptions:  cl.RawOptions,
			})
			o.TotalPrice += unit * cl.Quantity
		}

		if err := tx.Orders().Create(ctx, o); err != nil {
			return err
		}
		if err := tx.Orders().CreateLines(ctx, o.ID, lines); err != nil {
			return err
		}
		drained, err := tx.Carts().DeleteLines(ctx, userID, lineIDs)
		if err != nil {
			return err
		}
		if drained != int64(len(lineIDs)) {
			return fmt.Errorf("drained %d of %d locked cart lines", drained, len(lineIDs))
		}

		o.Items = lines
		order = o
		return nil
	})
	if err != nil {
		return nil, txError("checkout", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":     userID,
		"order_id":    order.ID,
		"total_price": order.TotalPrice,
		"lines":       len(order.Items),
	}).Info("order placed")

	s.notify(ctx, userID, *order)
	return order, nil
}

func (s *OrderService) notify(ctx context.Context, userID int, order models.Order) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err == nil {
		err = s.notifier.OrderPlaced(ctx, *user, order)
	}
	if err != nil {
		s.log.WithError(err).WithField("order_id", order.ID).Warn("order confirmation not sent")
	}
}

// txError keeps domain failures as they are and reports everything else as a transaction failure.
func txError(op string, err error) error {
	for _, domain := range []error{
		models.ErrValidation, models.ErrNotFound, models.ErrForbidden, models.ErrEmptyCart,
	} {
		if errors.Is(err, domain) {
			return err
		}
	}
	return &models.TransactionError{Op: op, Err: err}
}

func (s *OrderService) ListOrders(ctx context.Context, userID int) ([]models.Order, error) {
	orders, err := s.store.Orders().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		decodeOrderLines(&orders[i])
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID int, orderID string) (*models.Order, error) {
	order, err := s.store.Orders().FindForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	decodeOrderLines(order)
	return order, nil
}

func decodeOrderLines(o *models.Order) {
	for i := range o.Items {
		o.Items[i].Options = decodeLenient(o.Items[i].RawOptions)
	}
}

// Reorder copies a past order's lines back into the cart with the same merge rule as AddItem.
func (s *OrderService) Reorder(ctx context.Context, userID int, orderID string) ([]models.CartLine, error) {
	var merged []models.CartLine

	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		order, err := tx.Orders().FindForUser(ctx, userID, orderID)
		if err != nil {
			return err
		}

		merged = make([]models.CartLine, 0, len(order.Items))
		for _, item := range order.Items {
			product, err := tx.Products().FindByID(ctx, item.ProductID)
			if errors.Is(err, models.ErrNotFound) || (err == nil && !product.IsActive) {
				return models.NewValidationError("productId",
					fmt.Sprintf("%s is no longer available", item.ProductName))
			}
			if err != nil {
				return err
			}

			line, err := tx.Carts().AddOrIncrement(ctx, models.CartLine{
				UserID:     userID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				RawOptions: item.RawOptions,
			})
			if err != nil {
				return err
			}
			if line.Quantity > MaxLineQuantity {
				return quantityTooLarge()
			}
			line.Product = product
			line.Options = decodeLenient(line.RawOptions)
			merged = append(merged, *line)
		}
		return nil
	})
	if err != nil {
		return nil, txError("reorder", err)
	}
	return merged, nil
}

// UpdateStatus overwrites the status. Unknown values change nothing and report Updated=false.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) (*models.StatusUpdateResult, error) {
	status = strings.TrimSpace(status)
	orders := s.store.Orders()

	if !models.IsKnownOrderStatus(status) {
		order, err := orders.FindByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		s.log.WithFields(logrus.Fields{"order_id": orderID, "status": status}).Warn("ignoring unknown order status")
		decodeOrderLines(order)
		return &models.StatusUpdateResult{Order: order, Updated: false}, nil
	}

	if err := orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order, err := orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	decodeOrderLines(order)
	return &models.StatusUpdateResult{Order: order, Updated: true}, nil
}

func (s *OrderService) ListAll(ctx context.Context, status string, page, limit int) (*models.PaginationResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	orders, total, err := s.store.Orders().ListAll(ctx, models.OrderFilter{Status: status, Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}
	for i := range orders {
		decodeOrderLines(&orders[i])
	}

	return &models.PaginationResponse{
		Success: true,
		Message: "Orders retrieved successfully",
		Data:    orders,
		Meta: models.PaginationMeta{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}
