package product

import (
	"context"

	"retailcore/internal/core/id"
)

// Repository is the persistence contract for the product catalog.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	GetBySKU(ctx context.Context, sku string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, productID id.ID) error
	Exists(ctx context.Context, productID id.ID) (bool, error)
}
