package repositories

import (
	"context"

	"burger-shop/models"
)

// Store is the persistence boundary used by the services. WithTx runs fn against a
// transactional view of the store: every repository obtained from the Store passed to fn
// shares the transaction, which commits when fn returns nil and rolls back otherwise.
type Store interface {
	Carts() CartRepository
	Orders() OrderRepository
	Products() ProductRepository
	Users() UserRepository
	Addresses() AddressRepository
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

type CartRepository interface {
	List(ctx context.Context, userID int) ([]models.CartLine, error)
	// LockForCheckout returns the same rows as List and holds them until the transaction ends.
	LockForCheckout(ctx context.Context, userID int) ([]models.CartLine, error)
	// AddOrIncrement inserts the line or, when (user, product) already exists, adds its quantity.
	AddOrIncrement(ctx context.Context, line models.CartLine) (*models.CartLine, error)
	UpdateQuantity(ctx context.Context, userID, lineID, quantity int) (*models.CartLine, error)
	Delete(ctx context.Context, userID, lineID int) error
	// DeleteLines removes only the listed lines of userID. Lines added since they were read survive.
	DeleteLines(ctx context.Context, userID int, lineIDs []int) (int64, error)
	Clear(ctx context.Context, userID int) (int64, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	CreateLines(ctx context.Context, orderID string, lines []models.OrderLine) error
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	FindForUser(ctx context.Context, userID int, orderID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID int) ([]models.Order, error)
	ListAll(ctx context.Context, filter models.OrderFilter) ([]models.Order, int, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
}

type ProductRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	List(ctx context.Context, categoryID *int) ([]models.Product, error)
	FindByID(ctx context.Context, id int) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	BestSellers(ctx context.Context, limit int) ([]models.Product, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
}

type AddressRepository interface {
	ListByUser(ctx context.Context, userID int) ([]models.Address, error)
	FindForUser(ctx context.Context, userID, id int) (*models.Address, error)
	Create(ctx context.Context, address *models.Address) error
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, userID, id int) error
	SetDefault(ctx context.Context, userID, id int) error
}
