// Package reports computes read-only aggregates over committed data.
package reports

import (
	"time"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
	"retailcore/internal/core/types"
)

// Products with stock strictly below this level are flagged in the
// inventory report.
const LowStockThreshold = 10

// DateRange is an optional filter over document dates. A nil bound means
// unbounded on that side.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

func (r DateRange) Validate() error {
	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		return apperror.NewInvalidDateRange()
	}
	return nil
}

// SalesReport summarizes sales within a date range.
type SalesReport struct {
	TotalSales  int          `json:"total_sales"`
	TotalAmount types.Money  `json:"total_amount"`
	TopProducts []TopProduct `json:"top_products"`
}

// TopProduct is a best-selling product by quantity sold.
type TopProduct struct {
	ProductID     id.ID       `json:"product_id"`
	ProductName   string      `json:"product_name"`
	TotalQuantity int         `json:"total_quantity"`
	TotalAmount   types.Money `json:"total_amount"`
}

// InventoryReport summarizes current stock levels.
type InventoryReport struct {
	TotalProducts    int               `json:"total_products"`
	TotalStock       int               `json:"total_stock"`
	TotalStockValue  types.Money       `json:"total_stock_value"`
	LowStockProducts []LowStockProduct `json:"low_stock_products"`
}

// LowStockProduct is a product below the low-stock threshold.
type LowStockProduct struct {
	ProductID   id.ID  `json:"product_id"`
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
}

// PurchasesReport summarizes purchase orders within a date range.
type PurchasesReport struct {
	TotalPurchaseOrders int               `json:"total_purchase_orders"`
	TotalAmount         types.Money       `json:"total_amount"`
	PendingOrders       int               `json:"pending_orders"`
	SupplierSummary     []SupplierSummary `json:"supplier_summary"`
}

// SupplierSummary aggregates a supplier's orders within the range.
type SupplierSummary struct {
	SupplierID   id.ID       `json:"supplier_id"`
	SupplierName string      `json:"supplier_name"`
	TotalOrders  int         `json:"total_orders"`
	TotalAmount  types.Money `json:"total_amount"`
}
