package ledger

import (
	"context"

	"retailcore/internal/core/id"
	"retailcore/internal/domain/catalogs/product"
)

// Repository provides locked access to product stock rows.
type Repository interface {
	// GetByID reads a product without locking.
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)

	// GetForUpdate reads a product with a row-level lock. Must be called
	// inside a transaction; the lock is held until commit or rollback.
	GetForUpdate(ctx context.Context, productID id.ID) (*product.Product, error)

	// UpdateStock writes the new stock quantity for a product.
	UpdateStock(ctx context.Context, productID id.ID, stock int) error
}
