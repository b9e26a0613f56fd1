package line

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jewelcart/internal/domain"
)

type postgresRepo struct {
	pool  *pgxpool.Pool
	table Table
}

func NewPostgres(pool *pgxpool.Pool, table Table) Repository {
	return &postgresRepo{pool: pool, table: table}
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.CartLine, error) {
	q := fmt.Sprintf(`
SELECT l.id, l.customer_id, l.product_id, l.option_id::text, l.quantity, l.unit_price_cents,
       p.name, p.image_url, p.slug, l.created_at
FROM %s l
JOIN products p ON p.id = l.product_id
WHERE l.customer_id = $1
ORDER BY l.created_at ASC, l.id ASC
`, r.table)

	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(
			&l.ID,
			&l.CustomerID,
			&l.ProductID,
			&l.OptionID,
			&l.Quantity,
			&l.UnitPriceCents,
			&l.Name,
			&l.ImageURL,
			&l.Slug,
			&l.CreatedAt,
		); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *postgresRepo) Get(ctx context.Context, customerID, lineID int64) (*domain.CartLine, error) {
	q := fmt.Sprintf(`
SELECT id, customer_id, product_id, option_id::text, quantity, unit_price_cents, created_at
FROM %s
WHERE id = $1 AND customer_id = $2
`, r.table)

	var l domain.CartLine
	err := r.pool.QueryRow(ctx, q, lineID, customerID).Scan(
		&l.ID,
		&l.CustomerID,
		&l.ProductID,
		&l.OptionID,
		&l.Quantity,
		&l.UnitPriceCents,
		&l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *postgresRepo) Add(ctx context.Context, customerID, productID int64, optionID *string, quantity int, unitPriceCents int64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	selectQ := fmt.Sprintf(`
SELECT id, quantity
FROM %s
WHERE customer_id = $1 AND product_id = $2
  AND COALESCE(option_id, '00000000-0000-0000-0000-000000000000'::uuid)
    = COALESCE($3::uuid, '00000000-0000-0000-0000-000000000000'::uuid)
FOR UPDATE
`, r.table)

	var lineID int64
	var existingQty int
	err = tx.QueryRow(ctx, selectQ, customerID, productID, optionID).Scan(&lineID, &existingQty)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if err == nil {
		updateQ := fmt.Sprintf(`UPDATE %s SET quantity = $1 WHERE id = $2`, r.table)
		if _, err := tx.Exec(ctx, updateQ, existingQty+quantity, lineID); err != nil {
			return err
		}
	} else {
		insertQ := fmt.Sprintf(`
INSERT INTO %s (customer_id, product_id, option_id, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4, $5)
`, r.table)
		if _, err := tx.Exec(ctx, insertQ, customerID, productID, optionID, quantity, unitPriceCents); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) Update(ctx context.Context, customerID, lineID int64, quantity int, optionID *string) error {
	if quantity <= 0 {
		return r.Delete(ctx, customerID, lineID)
	}

	var cmd string
	var args []interface{}
	if optionID != nil {
		cmd = fmt.Sprintf(`UPDATE %s SET quantity = $1, option_id = $2 WHERE id = $3 AND customer_id = $4`, r.table)
		args = []interface{}{quantity, *optionID, lineID, customerID}
	} else {
		cmd = fmt.Sprintf(`UPDATE %s SET quantity = $1 WHERE id = $2 AND customer_id = $3`, r.table)
		args = []interface{}{quantity, lineID, customerID}
	}

	tag, err := r.pool.Exec(ctx, cmd, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, customerID, lineID int64) error {
	cmd := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND customer_id = $2`, r.table)
	tag, err := r.pool.Exec(ctx, cmd, lineID, customerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
