package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"burger-shop/models"
	"burger-shop/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectCartLock(mock pgxmock.PgxPoolIface, userID int) {
	now := time.Now()
	mock.ExpectQuery(`FOR UPDATE OF cl`).WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "product_id", "quantity", "options", "created_at", "updated_at",
			"category_id", "name", "description", "price", "image_url", "is_active",
		}).
			AddRow(10, userID, 1, 2, `["double patty","cheddar"]`, now, now, 1, "Classic", "", 5500, "", true).
			AddRow(11, userID, 3, 3, `[]`, now, now, 2, "Fries", "", 2000, "", true))
}

func newPgxOrderService(t *testing.T) (pgxmock.PgxPoolIface, *OrderService) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	log, _ := newTestLogger()
	svc := NewOrderService(repositories.NewPostgresStore(mock), NewPricingEngine(log), log,
		WithIDGenerator(func() (string, error) { return "ORD-test", nil }))
	return mock, svc
}

func TestCheckoutPostgres_Commits(t *testing.T) {
	mock, svc := newPgxOrderService(t)

	mock.ExpectBegin()
	expectCartLock(mock, 1)
	mock.ExpectExec(`INSERT INTO orders`).
		WithArgs("ORD-test", 1, 26000, models.OrderStatusPending, pgxmock.AnyArg(), "", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`INSERT INTO order_lines`).
		WithArgs("ORD-test", 1, "Classic", 2, 10000, `["double patty","cheddar"]`).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(100))
	mock.ExpectQuery(`INSERT INTO order_lines`).
		WithArgs("ORD-test", 3, "Fries", 3, 2000, `[]`).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(101))
	mock.ExpectExec(`DELETE FROM cart_lines WHERE user_id = \$1 AND id = ANY\(\$2\)`).WithArgs(1, []int{10, 11}).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectCommit()
	mock.ExpectQuery(`FROM users WHERE id`).WithArgs(1).WillReturnError(pgx.ErrNoRows)

	order, err := svc.Checkout(context.Background(), 1, models.CheckoutRequest{})
	require.NoError(t, err)
	assert.Equal(t, 26000, order.TotalPrice)
	assert.Equal(t, 100, order.Items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutPostgres_LineInsertFailureRollsBack(t *testing.T) {
	mock, svc := newPgxOrderService(t)

	mock.ExpectBegin()
	expectCartLock(mock, 1)
	mock.ExpectExec(`INSERT INTO orders`).WithArgs(
		pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
	).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`INSERT INTO order_lines`).WithArgs(
		pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
	).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := svc.Checkout(context.Background(), 1, models.CheckoutRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutPostgres_EmptyCartRollsBack(t *testing.T) {
	mock, svc := newPgxOrderService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE OF cl`).WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "product_id", "quantity", "options", "created_at", "updated_at",
			"category_id", "name", "description", "price", "image_url", "is_active",
		}))
	mock.ExpectRollback()

	_, err := svc.Checkout(context.Background(), 1, models.CheckoutRequest{})
	assert.ErrorIs(t, err, models.ErrEmptyCart)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutPostgres_DrainMismatchRollsBack(t *testing.T) {
	mock, svc := newPgxOrderService(t)

	mock.ExpectBegin()
	expectCartLock(mock, 1)
	mock.ExpectExec(`INSERT INTO orders`).WithArgs(
		pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
	).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for id := 100; id <= 101; id++ {
		mock.ExpectQuery(`INSERT INTO order_lines`).WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(id))
	}
	mock.ExpectExec(`DELETE FROM cart_lines WHERE user_id = \$1 AND id = ANY\(\$2\)`).WithArgs(1, []int{10, 11}).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectRollback()

	_, err := svc.Checkout(context.Background(), 1, models.CheckoutRequest{})
	assert.ErrorIs(t, err, models.ErrTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}
