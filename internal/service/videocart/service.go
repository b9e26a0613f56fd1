package videocart

import (
	"context"
	"errors"

	"jewelcart/internal/domain"
	linerepo "jewelcart/internal/repository/line"
	productrepo "jewelcart/internal/repository/product"
)

// Service owns the video-consultation cart: products a customer wants shown
// during a scheduled video call. Same merge rules as the shopping cart, but
// a separate table and id space, and updates may switch the selected option.
type Service struct {
	lines    linerepo.Repository
	products productrepo.Repository
}

func New(lines linerepo.Repository, products productrepo.Repository) *Service {
	return &Service{lines: lines, products: products}
}

type AddInput struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	OptionID  *string `json:"product_option_id"`
}

type UpdateInput struct {
	Quantity int     `json:"quantity"`
	OptionID *string `json:"product_option_id"`
}

func (s *Service) List(ctx context.Context, customerID int64) ([]domain.CartLine, error) {
	return s.lines.ListByCustomer(ctx, customerID)
}

func (s *Service) Add(ctx context.Context, customerID int64, in AddInput) error {
	if in.ProductID == 0 {
		return errors.New("product_id required")
	}
	quantity := in.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errors.New("product not found")
		}
		return err
	}

	unitPrice := product.PriceCents
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
		unitPrice = option.PriceCents
	}

	return s.lines.Add(ctx, customerID, product.ID, in.OptionID, quantity, unitPrice)
}

func (s *Service) Update(ctx context.Context, customerID, lineID int64, in UpdateInput) error {
	if in.OptionID != nil {
		line, err := s.lines.Get(ctx, customerID, lineID)
		if err != nil {
			return err
		}
		option, err := s.products.GetOption(ctx, *in.OptionID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errors.New("product option not found")
			}
			return err
		}
		if option.ProductID != line.ProductID {
			return errors.New("option does not belong to product")
		}
	}
	return s.lines.Update(ctx, customerID, lineID, in.Quantity, in.OptionID)
}

func (s *Service) Remove(ctx context.Context, customerID, lineID int64) error {
	return s.lines.Delete(ctx, customerID, lineID)
}
