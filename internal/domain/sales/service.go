package sales

import (
	"bytes"
	"context"
	"sort"
	"time"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
	"retailcore/internal/core/tx"
	"retailcore/internal/core/types"
	"retailcore/internal/domain/audit"
	"retailcore/internal/domain/catalogs/product"
	"retailcore/internal/domain/ledger"
	"retailcore/pkg/logger"
)

// Service processes sales. A sale is validated and applied to stock
// inside one transaction; either every line commits or none does.
type Service struct {
	repo    Repository
	ledger  *ledger.Service
	txm     tx.Manager
	auditor audit.Recorder
}

func NewService(repo Repository, ledgerSvc *ledger.Service, txm tx.Manager, auditor audit.Recorder) *Service {
	return &Service{
		repo:    repo,
		ledger:  ledgerSvc,
		txm:     txm,
		auditor: auditor,
	}
}

// CreateSale validates every line against locked stock rows, captures
// current prices, decrements stock and persists the sale atomically.
// Lines are processed in request order; a line referencing a product
// already on the sale validates against the stock remaining after the
// earlier lines.
func (s *Service) CreateSale(ctx context.Context, input CreateSaleInput) (*Sale, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	sale := &Sale{
		ID:            id.New(),
		TotalAmount:   types.ZeroMoney(),
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		CreatedAt:     time.Now().UTC(),
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		// Rows are locked in a fixed order so two concurrent sales over
		// the same products cannot deadlock on each other's row locks.
		locked := make(map[id.ID]*product.Product, len(input.Lines))
		for _, productID := range lockOrder(input.Lines) {
			p, err := s.ledger.Lock(ctx, productID)
			if err != nil {
				return err
			}
			locked[productID] = p
		}

		for _, line := range input.Lines {
			p := locked[line.ProductID]
			if p.Stock < line.Quantity {
				return apperror.NewInsufficientStock(p.Name, p.Stock, line.Quantity)
			}

			subtotal := types.MulQuantity(p.Price, line.Quantity)
			sale.Items = append(sale.Items, SaleItem{
				ID:          id.New(),
				SaleID:      sale.ID,
				ProductID:   p.ID,
				ProductName: p.Name,
				ProductSKU:  p.SKU,
				Quantity:    line.Quantity,
				UnitPrice:   p.Price,
				Subtotal:    subtotal,
			})
			sale.TotalAmount = sale.TotalAmount.Add(subtotal)

			updated, err := s.ledger.AdjustStock(ctx, line.ProductID, -line.Quantity)
			if err != nil {
				return err
			}
			locked[line.ProductID] = updated
		}
		return s.repo.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale created",
		"sale_id", sale.ID,
		"items", len(sale.Items),
		"total", sale.TotalAmount,
	)
	s.recordAudit(ctx, sale)
	return sale, nil
}

// lockOrder returns the distinct product IDs of the lines in byte order.
func lockOrder(lines []Line) []id.ID {
	seen := make(map[id.ID]struct{}, len(lines))
	ids := make([]id.ID, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids
}

func (s *Service) FindByID(ctx context.Context, saleID id.ID) (*Sale, error) {
	return s.repo.FindByID(ctx, saleID)
}

func (s *Service) FindAll(ctx context.Context) ([]Sale, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) recordAudit(ctx context.Context, sale *Sale) {
	if s.auditor == nil {
		return
	}
	lines := make([]map[string]any, 0, len(sale.Items))
	for _, item := range sale.Items {
		lines = append(lines, map[string]any{
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
			"subtotal":   item.Subtotal,
		})
	}
	entry := audit.Entry{
		Action:     audit.ActionSaleCreated,
		EntityType: "sale",
		EntityID:   sale.ID,
		Payload: map[string]any{
			"total_amount": sale.TotalAmount,
			"lines":        lines,
		},
	}
	if err := s.auditor.Record(ctx, entry); err != nil {
		logger.Warn(ctx, "audit record failed", "action", entry.Action, "error", err)
	}
}
