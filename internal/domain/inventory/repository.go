package inventory

import (
	"context"

	"retailcore/internal/core/id"
)

// Repository persists adjustment records.
type Repository interface {
	Create(ctx context.Context, adj *Adjustment) error
	FindByID(ctx context.Context, adjustmentID id.ID) (*Adjustment, error)
	FindAll(ctx context.Context) ([]Adjustment, error)

	// FindByProduct returns a product's adjustments, newest first.
	FindByProduct(ctx context.Context, productID id.ID) ([]Adjustment, error)
}
