// Package purchases manages the purchase order lifecycle. Orders move
// from pending to exactly one of the terminal states, received or
// cancelled; stock only changes on receipt.
package purchases

import (
	"time"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
	"retailcore/internal/core/types"
)

// Status is the lifecycle state of a purchase order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReceived  Status = "received"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReceived, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusReceived || s == StatusCancelled
}

// PurchaseOrder is an order placed with a supplier for incoming stock.
type PurchaseOrder struct {
	ID           id.ID               `json:"id" db:"id"`
	SupplierID   id.ID               `json:"supplier_id" db:"supplier_id"`
	SupplierName string              `json:"supplier_name" db:"supplier_name"`
	Status       Status              `json:"status" db:"status"`
	TotalAmount  types.Money         `json:"total_amount" db:"total_amount"`
	OrderDate    time.Time           `json:"order_date" db:"order_date"`
	ReceivedDate *time.Time          `json:"received_date" db:"received_date"`
	CreatedAt    time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at" db:"updated_at"`
	Items        []PurchaseOrderItem `json:"items" db:"-"`
}

// PurchaseOrderItem is a single ordered product line.
type PurchaseOrderItem struct {
	ID          id.ID       `json:"id" db:"id"`
	OrderID     id.ID       `json:"purchase_order_id" db:"purchase_order_id"`
	ProductID   id.ID       `json:"product_id" db:"product_id"`
	ProductName string      `json:"product_name" db:"product_name"`
	Quantity    int         `json:"quantity" db:"quantity"`
	UnitPrice   types.Money `json:"unit_price" db:"unit_price"`
	Subtotal    types.Money `json:"subtotal" db:"subtotal"`
}

// Line is one requested item of an order before processing.
type Line struct {
	ProductID id.ID
	Quantity  int
	UnitPrice types.Money
}

// CreateOrderInput holds the fields for placing a purchase order.
type CreateOrderInput struct {
	SupplierID id.ID
	OrderDate  time.Time
	Lines      []Line
}

func (in CreateOrderInput) Validate() error {
	if id.IsNil(in.SupplierID) {
		return apperror.NewValidation("purchase order supplier_id is required")
	}
	if len(in.Lines) == 0 {
		return apperror.NewValidation("purchase order must contain at least one item")
	}
	for i, line := range in.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("purchase order item product_id is required").
				WithDetail("index", i)
		}
		if line.Quantity < 1 {
			return apperror.NewValidation("purchase order item quantity must be at least 1").
				WithDetail("index", i)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("purchase order item unit_price cannot be negative").
				WithDetail("index", i)
		}
	}
	return nil
}
