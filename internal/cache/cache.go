package cache

import (
	"context"
	"errors"

	"jewelcart/internal/domain"
)

// CartCache holds a customer's full cart between reads. The cart service
// treats it as best-effort: a miss or a redis failure falls through to the
// database.
type CartCache interface {
	Get(ctx context.Context, customerID int64) ([]domain.CartLine, error)
	Set(ctx context.Context, customerID int64, lines []domain.CartLine) error
	Delete(ctx context.Context, customerID int64) error
}

var ErrCacheMiss = errors.New("cache miss")
