package product

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jewelcart/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `
SELECT id, slug, name, description, image_url, price_cents, category, gemstone, created_at
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&p.ID,
		&p.Slug,
		&p.Name,
		&p.Description,
		&p.ImageURL,
		&p.PriceCents,
		&p.Category,
		&p.Gemstone,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	options, err := r.optionsFor(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Options = options
	return &p, nil
}

func (r *postgresRepo) GetOption(ctx context.Context, optionID string) (*domain.ProductOption, error) {
	const q = `
SELECT id::text, product_id, label, price_cents
FROM product_options
WHERE id = $1
`
	var opt domain.ProductOption
	err := r.pool.QueryRow(ctx, q, optionID).Scan(&opt.ID, &opt.ProductID, &opt.Label, &opt.PriceCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &opt, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT id, slug, name, description, image_url, price_cents, category, gemstone, created_at
FROM products
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.Slug,
			&p.Name,
			&p.Description,
			&p.ImageURL,
			&p.PriceCents,
			&p.Category,
			&p.Gemstone,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) optionsFor(ctx context.Context, productID int64) ([]domain.ProductOption, error) {
	const q = `
SELECT id::text, product_id, label, price_cents
FROM product_options
WHERE product_id = $1
ORDER BY label ASC
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []domain.ProductOption
	for rows.Next() {
		var opt domain.ProductOption
		if err := rows.Scan(&opt.ID, &opt.ProductID, &opt.Label, &opt.PriceCents); err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}
