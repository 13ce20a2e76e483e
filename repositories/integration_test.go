//go:build integration

package repositories

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"burger-shop/config"
	"burger-shop/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("burger_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, config.RunMigrations(dsn, "../database/migration"))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return NewPostgresStore(pool)
}

func createUser(t *testing.T, store *PostgresStore, email string) int {
	t.Helper()
	u := &models.User{Email: email, Username: "tester", Password: "x", Role: models.RoleCustomer}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u.ID
}

func TestIntegration_ConcurrentUpsertsSum(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	userID := createUser(t, store, "upsert@test.id")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Carts().AddOrIncrement(ctx, models.CartLine{UserID: userID, ProductID: 1, Quantity: 2, RawOptions: "[]"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	lines, err := store.Carts().List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 40, lines[0].Quantity)
	assert.Equal(t, "NADEA Classic Burger", lines[0].Product.Name)
}

func TestIntegration_CheckoutTransactionRollsBack(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	userID := createUser(t, store, "rollback@test.id")

	_, err := store.Carts().AddOrIncrement(ctx, models.CartLine{UserID: userID, ProductID: 1, Quantity: 2, RawOptions: `["cheddar"]`})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.WithTx(ctx, func(tx Store) error {
		lines, err := tx.Carts().LockForCheckout(ctx, userID)
		if err != nil {
			return err
		}
		now := time.Now()
		order := &models.Order{ID: "ORD-rollback", UserID: userID, TotalPrice: 13000, Status: models.OrderStatusPending, CreatedAt: now, UpdatedAt: now}
		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}
		if err := tx.Orders().CreateLines(ctx, order.ID, []models.OrderLine{{
			ProductID: lines[0].ProductID, ProductName: lines[0].Product.Name, Quantity: 2, UnitPrice: 6500, RawOptions: lines[0].RawOptions,
		}}); err != nil {
			return err
		}
		if _, err := tx.Carts().Clear(ctx, userID); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = store.Orders().FindByID(ctx, "ORD-rollback")
	assert.ErrorIs(t, err, models.ErrNotFound)

	lines, err := store.Carts().List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, `["cheddar"]`, lines[0].RawOptions)
}

func TestIntegration_CheckoutLockBlocksSecondReader(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	userID := createUser(t, store, "lock@test.id")

	_, err := store.Carts().AddOrIncrement(ctx, models.CartLine{UserID: userID, ProductID: 3, Quantity: 1, RawOptions: "[]"})
	require.NoError(t, err)

	locked := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = store.WithTx(ctx, func(tx Store) error {
			if _, err := tx.Carts().LockForCheckout(ctx, userID); err != nil {
				return err
			}
			close(locked)
			<-release
			_, err := tx.Carts().Clear(ctx, userID)
			return err
		})
	}()
	<-locked

	seen := make(chan int, 1)
	go func() {
		_ = store.WithTx(ctx, func(tx Store) error {
			lines, err := tx.Carts().LockForCheckout(ctx, userID)
			seen <- len(lines)
			return err
		})
	}()

	select {
	case <-seen:
		t.Fatal("second checkout read locked rows")
	case <-time.After(200 * time.Millisecond):
	}

	close(release)
	assert.Equal(t, 0, <-seen, "second checkout sees the drained cart")
}

func TestIntegration_OrdersAndAddresses(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	userID := createUser(t, store, "orders@test.id")
	otherID := createUser(t, store, "other@test.id")

	home := &models.Address{UserID: userID, ReceiverName: "A", Phone: "1", AddressLine1: "Home"}
	require.NoError(t, store.Addresses().Create(ctx, home))
	work := &models.Address{UserID: userID, ReceiverName: "A", Phone: "1", AddressLine1: "Work"}
	require.NoError(t, store.Addresses().Create(ctx, work))
	require.NoError(t, store.Addresses().SetDefault(ctx, userID, work.ID))

	list, err := store.Addresses().ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, work.ID, list[0].ID)
	assert.True(t, list[0].IsDefault)
	assert.False(t, list[1].IsDefault)

	_, err = store.Addresses().FindForUser(ctx, otherID, home.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)

	now := time.Now().UTC().Truncate(time.Microsecond)
	order := &models.Order{ID: "ORD-int", UserID: userID, TotalPrice: 5500, Status: models.OrderStatusPending, AddressID: &home.ID, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Orders().Create(ctx, order))
	require.NoError(t, store.Orders().CreateLines(ctx, order.ID, []models.OrderLine{{ProductID: 1, ProductName: "NADEA Classic Burger", Quantity: 1, UnitPrice: 5500, RawOptions: "[]"}}))

	got, err := store.Orders().FindForUser(ctx, userID, "ORD-int")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, home.ID, *got.AddressID)

	require.NoError(t, store.Orders().UpdateStatus(ctx, "ORD-int", models.OrderStatusCompleted))
	page, total, err := store.Orders().ListAll(ctx, models.OrderFilter{Status: models.OrderStatusCompleted, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "ORD-int", page[0].ID)

	best, err := store.Products().BestSellers(ctx, 3)
	require.NoError(t, err)
	require.Len(t, best, 1)
	assert.Equal(t, 1, best[0].ID)
}

func TestIntegration_DrainKeepsLinesAddedAfterLock(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	userID := createUser(t, store, "drain@test.id")

	_, err := store.Carts().AddOrIncrement(ctx, models.CartLine{UserID: userID, ProductID: 1, Quantity: 1, RawOptions: "[]"})
	require.NoError(t, err)

	err = store.WithTx(ctx, func(tx Store) error {
		locked, err := tx.Carts().LockForCheckout(ctx, userID)
		if err != nil {
			return err
		}
		require.Len(t, locked, 1)

		// a new product inserts a fresh row, so no locked row blocks it
		_, err = store.Carts().AddOrIncrement(ctx, models.CartLine{UserID: userID, ProductID: 2, Quantity: 3, RawOptions: "[]"})
		require.NoError(t, err)

		n, err := tx.Carts().DeleteLines(ctx, userID, []int{locked[0].ID})
		if err != nil {
			return err
		}
		assert.EqualValues(t, 1, n)
		return nil
	})
	require.NoError(t, err)

	lines, err := store.Carts().List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].ProductID)
	assert.Equal(t, 3, lines[0].Quantity)
}
