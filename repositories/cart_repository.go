package repositories

import (
	"context"
	"errors"
	"fmt"

	"burger-shop/models"

	"github.com/jackc/pgx/v5"
)

type cartRepository struct {
	db DBTX
}

const cartLineWithProduct = `
	SELECT
		cl.id, cl.user_id, cl.product_id, cl.quantity, cl.options, cl.created_at, cl.updated_at,
		p.category_id, p.name, p.description, p.price, p.image_url, p.is_active
	FROM cart_lines cl
	JOIN products p ON p.id = cl.product_id
	WHERE cl.user_id = $1
	ORDER BY cl.id`

func (r *cartRepository) List(ctx context.Context, userID int) ([]models.CartLine, error) {
	return r.queryLines(ctx, cartLineWithProduct, userID)
}

func (r *cartRepository) LockForCheckout(ctx context.Context, userID int) ([]models.CartLine, error) {
	return r.queryLines(ctx, cartLineWithProduct+"\n\tFOR UPDATE OF cl", userID)
}

func (r *cartRepository) queryLines(ctx context.Context, query string, userID int) ([]models.CartLine, error) {
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("select cart lines: %w", err)
	}
	defer rows.Close()

	lines := []models.CartLine{}
	for rows.Next() {
		var line models.CartLine
		product := &models.Product{}
		if err := rows.Scan(
			&line.ID, &line.UserID, &line.ProductID, &line.Quantity, &line.RawOptions, &line.CreatedAt, &line.UpdatedAt,
			&product.CategoryID, &product.Name, &product.Description, &product.Price, &product.ImageURL, &product.IsActive,
		); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		product.ID = line.ProductID
		line.Product = product
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cart rows: %w", err)
	}
	return lines, nil
}

func (r *cartRepository) AddOrIncrement(ctx context.Context, line models.CartLine) (*models.CartLine, error) {
	// The upsert takes the row lock on conflict, so concurrent increments of one line serialize.
	query := `
		INSERT INTO cart_lines (user_id, product_id, quantity, options, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (user_id, product_id) DO UPDATE
		SET quantity = cart_lines.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING id, user_id, product_id, quantity, options, created_at, updated_at`

	out := &models.CartLine{}
	err := r.db.QueryRow(ctx, query, line.UserID, line.ProductID, line.Quantity, line.RawOptions).Scan(
		&out.ID, &out.UserID, &out.ProductID, &out.Quantity, &out.RawOptions, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert cart line: %w", err)
	}
	return out, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, userID, lineID, quantity int) (*models.CartLine, error) {
	query := `
		UPDATE cart_lines SET quantity = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, product_id, quantity, options, created_at, updated_at`

	out := &models.CartLine{}
	err := r.db.QueryRow(ctx, query, lineID, userID, quantity).Scan(
		&out.ID, &out.UserID, &out.ProductID, &out.Quantity, &out.RawOptions, &out.CreatedAt, &out.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.missingLine(ctx, lineID)
	}
	if err != nil {
		return nil, fmt.Errorf("update cart line: %w", err)
	}
	return out, nil
}

func (r *cartRepository) Delete(ctx context.Context, userID, lineID int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cart_lines WHERE id = $1 AND user_id = $2`, lineID, userID)
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingLine(ctx, lineID)
	}
	return nil
}

func (r *cartRepository) DeleteLines(ctx context.Context, userID int, lineIDs []int) (int64, error) {
	if len(lineIDs) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1 AND id = ANY($2)`, userID, lineIDs)
	if err != nil {
		return 0, fmt.Errorf("delete cart lines: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *cartRepository) Clear(ctx context.Context, userID int) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}
	return tag.RowsAffected(), nil
}

// missingLine tells a line that does not exist apart from one that belongs to someone else.
func (r *cartRepository) missingLine(ctx context.Context, lineID int) error {
	var owner int
	err := r.db.QueryRow(ctx, `SELECT user_id FROM cart_lines WHERE id = $1`, lineID).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup cart line owner: %w", err)
	}
	return models.ErrForbidden
}
