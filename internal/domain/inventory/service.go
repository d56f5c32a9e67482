package inventory

import (
	"context"
	"time"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
	"retailcore/internal/core/tx"
	"retailcore/internal/domain/audit"
	"retailcore/internal/domain/catalogs/product"
	"retailcore/internal/domain/ledger"
	"retailcore/pkg/logger"
)

// Service applies manual stock adjustments. Validation and the stock
// write happen in one transaction against the locked product row.
type Service struct {
	repo     Repository
	products product.Repository
	ledger   *ledger.Service
	txm      tx.Manager
	auditor  audit.Recorder
}

func NewService(
	repo Repository,
	products product.Repository,
	ledgerSvc *ledger.Service,
	txm tx.Manager,
	auditor audit.Recorder,
) *Service {
	return &Service{
		repo:     repo,
		products: products,
		ledger:   ledgerSvc,
		txm:      txm,
		auditor:  auditor,
	}
}

// CreateAdjustment applies an increase or decrease to a product's stock
// and records the adjustment. Increases are unconditional; decreases
// must not take stock below zero.
func (s *Service) CreateAdjustment(ctx context.Context, input CreateAdjustmentInput) (*Adjustment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	adj := &Adjustment{
		ID:             id.New(),
		ProductID:      input.ProductID,
		AdjustmentType: input.AdjustmentType,
		Quantity:       input.Quantity,
		Reason:         input.Reason,
		CreatedAt:      time.Now().UTC(),
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.ledger.Lock(ctx, input.ProductID)
		if err != nil {
			return err
		}

		delta := input.Quantity
		if input.AdjustmentType == AdjustmentDecrease {
			if p.Stock < input.Quantity {
				return apperror.NewInsufficientDecrease(p.Name, p.Stock, input.Quantity)
			}
			delta = -input.Quantity
		}

		updated, err := s.ledger.AdjustStock(ctx, input.ProductID, delta)
		if err != nil {
			return err
		}

		adj.ProductName = p.Name
		adj.PreviousStock = p.Stock
		adj.NewStock = updated.Stock
		return s.repo.Create(ctx, adj)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "inventory adjusted",
		"adjustment_id", adj.ID,
		"product_id", adj.ProductID,
		"type", adj.AdjustmentType,
		"quantity", adj.Quantity,
	)
	s.recordAudit(ctx, adj)
	return adj, nil
}

func (s *Service) FindByID(ctx context.Context, adjustmentID id.ID) (*Adjustment, error) {
	return s.repo.FindByID(ctx, adjustmentID)
}

func (s *Service) FindAll(ctx context.Context) ([]Adjustment, error) {
	return s.repo.FindAll(ctx)
}

// FindProductHistory returns a product's adjustment history, newest
// first. The product must exist even when it has no adjustments.
func (s *Service) FindProductHistory(ctx context.Context, productID id.ID) ([]Adjustment, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.FindByProduct(ctx, productID)
}

func (s *Service) recordAudit(ctx context.Context, adj *Adjustment) {
	if s.auditor == nil {
		return
	}
	entry := audit.Entry{
		Action:     audit.ActionStockAdjusted,
		EntityType: "inventory_adjustment",
		EntityID:   adj.ID,
		Payload: map[string]any{
			"product_id":     adj.ProductID,
			"type":           adj.AdjustmentType,
			"quantity":       adj.Quantity,
			"previous_stock": adj.PreviousStock,
			"new_stock":      adj.NewStock,
		},
	}
	if err := s.auditor.Record(ctx, entry); err != nil {
		logger.Warn(ctx, "audit record failed", "action", entry.Action, "error", err)
	}
}
