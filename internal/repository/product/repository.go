package product

import (
	"context"

	"jewelcart/internal/domain"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetOption(ctx context.Context, optionID string) (*domain.ProductOption, error)
	List(ctx context.Context) ([]domain.Product, error)
}
