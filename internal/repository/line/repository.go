// Package line stores customer line items. The cart and the video
// consultation cart share one row shape and merge behavior but live in
// separate tables with independent id sequences; Table selects which one a
// repository instance operates on.
package line

import (
	"context"

	"jewelcart/internal/domain"
)

// Table names a line table. Values are fixed constants, never user input.
type Table string

const (
	CartTable      Table = "cart_lines"
	VideoCartTable Table = "video_cart_lines"
)

type Repository interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.CartLine, error)
	Get(ctx context.Context, customerID, lineID int64) (*domain.CartLine, error)
	// Add merges into an existing line with the same (product, option)
	// identity, incrementing its quantity, or inserts a new line.
	Add(ctx context.Context, customerID, productID int64, optionID *string, quantity int, unitPriceCents int64) error
	// Update sets the quantity and, when optionID is non-nil, the selected
	// option. A quantity of zero or less deletes the line.
	Update(ctx context.Context, customerID, lineID int64, quantity int, optionID *string) error
	Delete(ctx context.Context, customerID, lineID int64) error
}
