// Package product manages the product catalog. Stock levels are owned
// by the ledger and never mutated through catalog operations.
package product

import (
	"strings"
	"time"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
	"retailcore/internal/core/types"
)

// Product is a sellable catalog item. Stock is the on-hand quantity
// maintained by the stock ledger.
type Product struct {
	ID        id.ID       `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	SKU       string      `json:"sku" db:"sku"`
	Price     types.Money `json:"price" db:"price"`
	Stock     int         `json:"stock" db:"stock"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// Validate checks catalog invariants.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("product name is required")
	}
	if strings.TrimSpace(p.SKU) == "" {
		return apperror.NewValidation("product sku is required")
	}
	if p.Price.IsNegative() {
		return apperror.NewValidation("product price cannot be negative")
	}
	if p.Stock < 0 {
		return apperror.NewValidation("product stock cannot be negative")
	}
	return nil
}
