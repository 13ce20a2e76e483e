package repositories

import (
	"context"
	"errors"
	"fmt"

	"burger-shop/models"

	"github.com/jackc/pgx/v5"
)

type productRepository struct {
	db DBTX
}

const productColumns = `p.id, p.category_id, p.name, p.description, p.price, p.image_url, p.is_active, p.created_at, p.updated_at`

func scanProduct(row scanner, p *models.Product) error {
	return row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
}

func (r *productRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, image_url, created_at FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.ImageURL, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *productRepository) List(ctx context.Context, categoryID *int) ([]models.Product, error) {
	if categoryID != nil {
		return r.queryProducts(ctx,
			`SELECT `+productColumns+` FROM products p WHERE p.is_active AND p.category_id = $1 ORDER BY p.id`, *categoryID)
	}
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products p WHERE p.is_active ORDER BY p.id`)
}

func (r *productRepository) FindByID(ctx context.Context, id int) (*models.Product, error) {
	var p models.Product
	err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select product: %w", err)
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (category_id, name, description, price, image_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, true, now(), now())
		RETURNING id, is_active, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, p.CategoryID, p.Name, p.Description, p.Price, p.ImageURL).
		Scan(&p.ID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, p *models.Product) error {
	query := `
		UPDATE products
		SET category_id = $1, name = $2, description = $3, price = $4, image_url = $5, is_active = $6, updated_at = now()
		WHERE id = $7
		RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, p.CategoryID, p.Name, p.Description, p.Price, p.ImageURL, p.IsActive, p.ID).
		Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *productRepository) BestSellers(ctx context.Context, limit int) ([]models.Product, error) {
	return r.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products p
		JOIN order_lines ol ON ol.product_id = p.id
		WHERE p.is_active
		GROUP BY p.id
		ORDER BY SUM(ol.quantity) DESC, p.id
		LIMIT $1`, limit)
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
