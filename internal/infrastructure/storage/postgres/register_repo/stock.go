// Package register_repo provides the PostgreSQL implementation of the
// stock ledger.
package register_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
	"retailcore/internal/domain/catalogs/product"
	"retailcore/internal/domain/ledger"
	"retailcore/internal/infrastructure/storage/postgres"
)

// LedgerRepo implements ledger.Repository on the products table.
type LedgerRepo struct {
	txm *postgres.TxManager
}

var _ ledger.Repository = (*LedgerRepo)(nil)

func NewLedgerRepo(txm *postgres.TxManager) *LedgerRepo {
	return &LedgerRepo{txm: txm}
}

const productSelect = `
	SELECT id, name, sku, price, stock, created_at, updated_at
	FROM products
	WHERE id = $1
`

func (r *LedgerRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	var p product.Product
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, productSelect, productID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("Product", productID)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetForUpdate locks the product row until the surrounding transaction
// ends. Concurrent callers block here, so stock checks made after this
// call stay valid through commit.
func (r *LedgerRepo) GetForUpdate(ctx context.Context, productID id.ID) (*product.Product, error) {
	var p product.Product
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, productSelect+"FOR UPDATE", productID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("Product", productID)
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return &p, nil
}

func (r *LedgerRepo) UpdateStock(ctx context.Context, productID id.ID, stock int) error {
	sql := `UPDATE products SET stock = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, stock, time.Now().UTC(), productID)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("Product", productID)
	}
	return nil
}
