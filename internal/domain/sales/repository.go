package sales

import (
	"context"

	"retailcore/internal/core/id"
)

// Repository persists sales along with their line items.
type Repository interface {
	Create(ctx context.Context, sale *Sale) error
	FindByID(ctx context.Context, saleID id.ID) (*Sale, error)
	FindAll(ctx context.Context) ([]Sale, error)
}
