package repositories

import (
	"context"
	"errors"
	"fmt"

	"burger-shop/models"

	"github.com/jackc/pgx/v5"
)

type addressRepository struct {
	db DBTX
}

const addressColumns = `id, user_id, receiver_name, phone, address_line1, address_line2, is_default, created_at, updated_at`

func scanAddress(row scanner, a *models.Address) error {
	return row.Scan(&a.ID, &a.UserID, &a.ReceiverName, &a.Phone, &a.AddressLine1, &a.AddressLine2, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
}

func (r *addressRepository) ListByUser(ctx context.Context, userID int) ([]models.Address, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("select addresses: %w", err)
	}
	defer rows.Close()

	addresses := []models.Address{}
	for rows.Next() {
		var a models.Address
		if err := scanAddress(rows, &a); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *addressRepository) FindForUser(ctx context.Context, userID, id int) (*models.Address, error) {
	var a models.Address
	err := scanAddress(r.db.QueryRow(ctx, `SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id), &a)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select address: %w", err)
	}
	if a.UserID != userID {
		return nil, models.ErrForbidden
	}
	return &a, nil
}

func (r *addressRepository) Create(ctx context.Context, a *models.Address) error {
	query := `
		INSERT INTO addresses (user_id, receiver_name, phone, address_line1, address_line2, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, a.UserID, a.ReceiverName, a.Phone, a.AddressLine1, a.AddressLine2, a.IsDefault).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}

func (r *addressRepository) Update(ctx context.Context, a *models.Address) error {
	query := `
		UPDATE addresses
		SET receiver_name = $1, phone = $2, address_line1 = $3, address_line2 = $4, is_default = $5, updated_at = now()
		WHERE id = $6 AND user_id = $7
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, a.ReceiverName, a.Phone, a.AddressLine1, a.AddressLine2, a.IsDefault, a.ID, a.UserID).
		Scan(&a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	return nil
}

func (r *addressRepository) Delete(ctx context.Context, userID, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SetDefault marks id as the only default address of the user.
func (r *addressRepository) SetDefault(ctx context.Context, userID, id int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE addresses SET is_default = (id = $2), updated_at = now() WHERE user_id = $1`, userID, id)
	if err != nil {
		return fmt.Errorf("set default address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
