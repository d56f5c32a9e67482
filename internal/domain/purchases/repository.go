package purchases

import (
	"context"

	"retailcore/internal/core/id"
)

// Repository persists purchase orders with their line items.
type Repository interface {
	Create(ctx context.Context, order *PurchaseOrder) error
	FindByID(ctx context.Context, orderID id.ID) (*PurchaseOrder, error)

	// GetForUpdate reads an order with a row-level lock so that
	// concurrent receive and cancel calls serialize.
	GetForUpdate(ctx context.Context, orderID id.ID) (*PurchaseOrder, error)

	FindAll(ctx context.Context) ([]PurchaseOrder, error)

	// UpdateStatus writes the order's status and received date.
	UpdateStatus(ctx context.Context, order *PurchaseOrder) error
}
