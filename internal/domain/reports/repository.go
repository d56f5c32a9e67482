package reports

import (
	"context"

	"retailcore/internal/core/types"
)

// Repository runs the aggregate queries behind each report. All queries
// read committed data only.
type Repository interface {
	SalesTotals(ctx context.Context, r DateRange) (count int, revenue types.Money, err error)
	TopProducts(ctx context.Context, r DateRange, limit int) ([]TopProduct, error)

	InventoryTotals(ctx context.Context) (products, units int, stockValue types.Money, err error)
	LowStockProducts(ctx context.Context, threshold int) ([]LowStockProduct, error)

	PurchaseTotals(ctx context.Context, r DateRange) (count int, amount types.Money, err error)
	PendingOrderCount(ctx context.Context, r DateRange) (int, error)
	SupplierSummaries(ctx context.Context, r DateRange) ([]SupplierSummary, error)
}
