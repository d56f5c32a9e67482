package reports

import (
	"context"

	"retailcore/internal/core/tx"
)

const topProductsLimit = 5

// Service assembles reports. Each report runs inside a read-only
// transaction so its numbers come from one consistent snapshot.
type Service struct {
	repo Repository
	txm  tx.Manager
}

func NewService(repo Repository, txm tx.Manager) *Service {
	return &Service{repo: repo, txm: txm}
}

func (s *Service) SalesReport(ctx context.Context, r DateRange) (*SalesReport, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	report := &SalesReport{}
	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		report.TotalSales, report.TotalAmount, err = s.repo.SalesTotals(ctx, r)
		if err != nil {
			return err
		}
		report.TopProducts, err = s.repo.TopProducts(ctx, r, topProductsLimit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Service) InventoryReport(ctx context.Context) (*InventoryReport, error) {
	report := &InventoryReport{}
	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		report.TotalProducts, report.TotalStock, report.TotalStockValue, err = s.repo.InventoryTotals(ctx)
		if err != nil {
			return err
		}
		report.LowStockProducts, err = s.repo.LowStockProducts(ctx, LowStockThreshold)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Service) PurchasesReport(ctx context.Context, r DateRange) (*PurchasesReport, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	report := &PurchasesReport{}
	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		report.TotalPurchaseOrders, report.TotalAmount, err = s.repo.PurchaseTotals(ctx, r)
		if err != nil {
			return err
		}
		report.PendingOrders, err = s.repo.PendingOrderCount(ctx, r)
		if err != nil {
			return err
		}
		report.SupplierSummary, err = s.repo.SupplierSummaries(ctx, r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
