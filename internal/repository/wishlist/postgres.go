package wishlist

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"jewelcart/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.CartLine, error) {
	const q = `
SELECT w.id, w.customer_id, w.product_id, w.option_id::text,
       COALESCE(o.price_cents, p.price_cents),
       p.name, p.image_url, p.slug, w.created_at
FROM wishlist_entries w
JOIN products p ON p.id = w.product_id
LEFT JOIN product_options o ON o.id = w.option_id
WHERE w.customer_id = $1
ORDER BY w.created_at ASC, w.id ASC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.CartLine
	for rows.Next() {
		var e domain.CartLine
		if err := rows.Scan(
			&e.ID,
			&e.CustomerID,
			&e.ProductID,
			&e.OptionID,
			&e.UnitPriceCents,
			&e.Name,
			&e.ImageURL,
			&e.Slug,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Quantity = 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *postgresRepo) Add(ctx context.Context, customerID, productID int64, optionID *string) error {
	const q = `
INSERT INTO wishlist_entries (customer_id, product_id, option_id)
VALUES ($1, $2, $3)
ON CONFLICT (customer_id, product_id, COALESCE(option_id, '00000000-0000-0000-0000-000000000000'::uuid))
DO NOTHING
`
	_, err := r.pool.Exec(ctx, q, customerID, productID, optionID)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, customerID, entryID int64) error {
	const q = `DELETE FROM wishlist_entries WHERE id = $1 AND customer_id = $2`
	tag, err := r.pool.Exec(ctx, q, entryID, customerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
