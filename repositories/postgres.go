package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DBPool matches the methods from *pgxpool.Pool that we use, so tests can swap in pgxmock.
// pgx.Tx satisfies it as well; Begin on a transaction opens a savepoint.
type DBPool interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostgresStore struct {
	db DBPool
}

func NewPostgresStore(db DBPool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Carts() CartRepository        { return &cartRepository{db: s.db} }
func (s *PostgresStore) Orders() OrderRepository      { return &orderRepository{db: s.db} }
func (s *PostgresStore) Products() ProductRepository  { return &productRepository{db: s.db} }
func (s *PostgresStore) Users() UserRepository        { return &userRepository{db: s.db} }
func (s *PostgresStore) Addresses() AddressRepository { return &addressRepository{db: s.db} }

func (s *PostgresStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(&PostgresStore{db: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}
