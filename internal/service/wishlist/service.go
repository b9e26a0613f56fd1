package wishlist

import (
	"context"
	"errors"

	"jewelcart/internal/domain"
	productrepo "jewelcart/internal/repository/product"
	wishlistrepo "jewelcart/internal/repository/wishlist"
)

type Service struct {
	entries  wishlistrepo.Repository
	products productrepo.Repository
}

func New(entries wishlistrepo.Repository, products productrepo.Repository) *Service {
	return &Service{entries: entries, products: products}
}

type AddInput struct {
	ProductID int64   `json:"product_id"`
	OptionID  *string `json:"product_option_id"`
}

func (s *Service) List(ctx context.Context, customerID int64) ([]domain.CartLine, error) {
	return s.entries.ListByCustomer(ctx, customerID)
}

// Add saves the product; saving it again is a no-op, never a duplicate.
func (s *Service) Add(ctx context.Context, customerID int64, in AddInput) error {
	if in.ProductID == 0 {
		return errors.New("product_id required")
	}

	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errors.New("product not found")
		}
		return err
	}

	if in.OptionID != nil {
		option, err := s.products.GetOption(ctx, *in.OptionID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errors.New("product option not found")
			}
			return err
		}
		if option.ProductID != product.ID {
			return errors.New("option does not belong to product")
		}
	}

	return s.entries.Add(ctx, customerID, product.ID, in.OptionID)
}

func (s *Service) Remove(ctx context.Context, customerID, entryID int64) error {
	return s.entries.Delete(ctx, customerID, entryID)
}
