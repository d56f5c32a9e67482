// Package ledger owns product stock quantities. Every stock mutation in
// the system, whether from a sale, a purchase receipt or a manual
// adjustment, flows through this package so that concurrent operations
// serialize on the product row.
package ledger

import (
	"context"

	"retailcore/internal/core/id"
	"retailcore/internal/domain/catalogs/product"
	"retailcore/pkg/logger"
)

// Service mediates stock reads and mutations. Mutating methods assume an
// open transaction in ctx; callers run them inside tx.Manager callbacks.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetStock returns the current on-hand quantity without locking.
func (s *Service) GetStock(ctx context.Context, productID id.ID) (int, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	return p.Stock, nil
}

// Lock acquires a row-level lock on the product and returns its current
// state. Subsequent reads and writes of the row within the same
// transaction see no interleaved changes from other transactions.
func (s *Service) Lock(ctx context.Context, productID id.ID) (*product.Product, error) {
	return s.repo.GetForUpdate(ctx, productID)
}

// AdjustStock applies a signed delta to a product's stock and returns the
// updated product. The delta is applied against the locked row, so a
// negative result is only possible when the caller skipped validation.
func (s *Service) AdjustStock(ctx context.Context, productID id.ID, delta int) (*product.Product, error) {
	p, err := s.repo.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}

	p.Stock += delta
	if err := s.repo.UpdateStock(ctx, productID, p.Stock); err != nil {
		return nil, err
	}

	logger.Debug(ctx, "stock adjusted",
		"product_id", productID,
		"delta", delta,
		"stock", p.Stock,
	)
	return p, nil
}
