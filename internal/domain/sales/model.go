// Package sales processes point-of-sale transactions.
package sales

import (
	"time"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
	"retailcore/internal/core/types"
)

// Sale is a completed point-of-sale transaction.
type Sale struct {
	ID            id.ID       `json:"id" db:"id"`
	TotalAmount   types.Money `json:"total_amount" db:"total_amount"`
	CustomerName  string      `json:"customer_name" db:"customer_name"`
	CustomerPhone string      `json:"customer_phone" db:"customer_phone"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	Items         []SaleItem  `json:"items" db:"-"`
}

// SaleItem is a single line of a sale. UnitPrice is the catalog price
// captured at the moment of sale; later price changes do not affect it.
type SaleItem struct {
	ID          id.ID       `json:"id" db:"id"`
	SaleID      id.ID       `json:"sale_id" db:"sale_id"`
	ProductID   id.ID       `json:"product_id" db:"product_id"`
	ProductName string      `json:"product_name" db:"product_name"`
	ProductSKU  string      `json:"product_sku" db:"product_sku"`
	Quantity    int         `json:"quantity" db:"quantity"`
	UnitPrice   types.Money `json:"unit_price" db:"unit_price"`
	Subtotal    types.Money `json:"subtotal" db:"subtotal"`
}

// Line is one requested item of a sale before processing.
type Line struct {
	ProductID id.ID
	Quantity  int
}

// CreateSaleInput holds the customer details and lines of a requested
// sale.
type CreateSaleInput struct {
	CustomerName  string
	CustomerPhone string
	Lines         []Line
}

func (in CreateSaleInput) Validate() error {
	if in.CustomerName == "" {
		return apperror.NewValidation("customer_name is required")
	}
	if in.CustomerPhone == "" {
		return apperror.NewValidation("customer_phone is required")
	}
	if len(in.Lines) == 0 {
		return apperror.NewValidation("sale must contain at least one item")
	}
	for i, line := range in.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("sale item product_id is required").
				WithDetail("index", i)
		}
		if line.Quantity < 1 {
			return apperror.NewValidation("sale item quantity must be at least 1").
				WithDetail("index", i)
		}
	}
	return nil
}
