package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/types"
)

type stubRepo struct {
	salesCount   int
	salesRevenue types.Money
	topProducts  []TopProduct

	productCount int
	unitCount    int
	stockValue   types.Money
	lowStock     []LowStockProduct

	orderCount   int
	orderAmount  types.Money
	pendingCount int
	suppliers    []SupplierSummary
}

func (s *stubRepo) SalesTotals(context.Context, DateRange) (int, types.Money, error) {
	return s.salesCount, s.salesRevenue, nil
}

func (s *stubRepo) TopProducts(context.Context, DateRange, int) ([]TopProduct, error) {
	return s.topProducts, nil
}

func (s *stubRepo) InventoryTotals(context.Context) (int, int, types.Money, error) {
	return s.productCount, s.unitCount, s.stockValue, nil
}

func (s *stubRepo) LowStockProducts(context.Context, int) ([]LowStockProduct, error) {
	return s.lowStock, nil
}

func (s *stubRepo) PurchaseTotals(context.Context, DateRange) (int, types.Money, error) {
	return s.orderCount, s.orderAmount, nil
}

func (s *stubRepo) PendingOrderCount(context.Context, DateRange) (int, error) {
	return s.pendingCount, nil
}

func (s *stubRepo) SupplierSummaries(context.Context, DateRange) ([]SupplierSummary, error) {
	return s.suppliers, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestSalesReport_InvalidDateRange(t *testing.T) {
	svc := NewService(&stubRepo{}, passthroughTxManager{})

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.SalesReport(context.Background(), DateRange{Start: &start, End: &end})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start_date cannot be greater than end_date")

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidDateRange, appErr.Code)
}

func TestSalesReport_Totals(t *testing.T) {
	repo := &stubRepo{
		salesCount:   12,
		salesRevenue: types.MustMoney("2400.50"),
		topProducts:  []TopProduct{{ProductName: "Laptop", TotalQuantity: 8}},
	}
	svc := NewService(repo, passthroughTxManager{})

	report, err := svc.SalesReport(context.Background(), DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 12, report.TotalSales)
	assert.True(t, report.TotalAmount.Equal(types.MustMoney("2400.50")))
	require.Len(t, report.TopProducts, 1)
	assert.Equal(t, "Laptop", report.TopProducts[0].ProductName)
}

func TestInventoryReport(t *testing.T) {
	repo := &stubRepo{
		productCount: 3,
		unitCount:    120,
		stockValue:   types.MustMoney("5000.00"),
		lowStock:     []LowStockProduct{{ProductName: "Mouse", Stock: 4}},
	}
	svc := NewService(repo, passthroughTxManager{})

	report, err := svc.InventoryReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalProducts)
	assert.Equal(t, 120, report.TotalStock)
	require.Len(t, report.LowStockProducts, 1)
	assert.Equal(t, "Mouse", report.LowStockProducts[0].ProductName)
}

func TestPurchasesReport(t *testing.T) {
	repo := &stubRepo{
		orderCount:   5,
		orderAmount:  types.MustMoney("1200.00"),
		pendingCount: 2,
		suppliers:    []SupplierSummary{{SupplierName: "Acme", TotalOrders: 3}},
	}
	svc := NewService(repo, passthroughTxManager{})

	report, err := svc.PurchasesReport(context.Background(), DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 5, report.TotalPurchaseOrders)
	assert.Equal(t, 2, report.PendingOrders)
	require.Len(t, report.SupplierSummary, 1)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.PurchasesReport(context.Background(), DateRange{Start: &start, End: &end})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start_date cannot be greater than end_date")
}
