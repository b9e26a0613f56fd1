package cart

import (
	"context"
	"errors"
	"log"

	"jewelcart/internal/cache"
	"jewelcart/internal/domain"
	linerepo "jewelcart/internal/repository/line"
	productrepo "jewelcart/internal/repository/product"
)

// Service owns the authenticated shopping cart. Reads go through the cache
// when one is configured; every write invalidates the customer's entry.
type Service struct {
	lines    linerepo.Repository
	products productrepo.Repository
	cache    cache.CartCache
	logger   *log.Logger
}

func New(lines linerepo.Repository, products productrepo.Repository, cartCache cache.CartCache, logger *log.Logger) *Service {
	return &Service{lines: lines, products: products, cache: cartCache, logger: logger}
}

type AddInput struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	OptionID  *string `json:"product_option_id"`
}

// List returns the customer's cart, preferring the cache. Cache failures
// degrade to the database; they are logged, never surfaced.
func (s *Service) List(ctx context.Context, customerID int64) ([]domain.CartLine, error) {
	if s.cache != nil {
		lines, err := s.cache.Get(ctx, customerID)
		if err == nil {
			return lines, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logf("cart cache get customer=%d: %v", customerID, err)
		}
	}

	lines, err := s.lines.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, customerID, lines); err != nil {
			s.logf("cart cache set customer=%d: %v", customerID, err)
		}
	}
	return lines, nil
}

func (s *Service) Add(ctx context.Context, customerID int64, in AddInput) error {
	if in.ProductID == 0 {
		return errors.New("product_id required")
	}
	if in.Quantity <= 0 {
		return errors.New("quantity must be positive")
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

	if err := s.lines.Add(ctx, customerID, product.ID, in.OptionID, in.Quantity, unitPrice); err != nil {
		return err
	}
	s.invalidate(ctx, customerID)
	return nil
}

// UpdateQuantity sets the line's quantity; zero or less deletes the line.
func (s *Service) UpdateQuantity(ctx context.Context, customerID, lineID int64, quantity int) error {
	if err := s.lines.Update(ctx, customerID, lineID, quantity, nil); err != nil {
		return err
	}
	s.invalidate(ctx, customerID)
	return nil
}

func (s *Service) Remove(ctx context.Context, customerID, lineID int64) error {
	if err := s.lines.Delete(ctx, customerID, lineID); err != nil {
		return err
	}
	s.invalidate(ctx, customerID)
	return nil
}

func (s *Service) invalidate(ctx context.Context, customerID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, customerID); err != nil {
		s.logf("cart cache delete customer=%d: %v", customerID, err)
	}
}

func (s *Service) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
