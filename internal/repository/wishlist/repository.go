package wishlist

import (
	"context"

	"jewelcart/internal/domain"
)

type Repository interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.CartLine, error)
	// Add is idempotent: re-adding an entry with the same (product, option)
	// identity leaves the wishlist unchanged.
	Add(ctx context.Context, customerID, productID int64, optionID *string) error
	Delete(ctx context.Context, customerID, entryID int64) error
}
