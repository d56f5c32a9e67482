package purchases

import (
	"context"
	"time"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
	"retailcore/internal/core/tx"
	"retailcore/internal/core/types"
	"retailcore/internal/domain/audit"
	"retailcore/internal/domain/catalogs/product"
	"retailcore/internal/domain/catalogs/supplier"
	"retailcore/internal/domain/ledger"
	"retailcore/pkg/logger"
)

// Service manages the purchase order lifecycle.
type Service struct {
	repo      Repository
	suppliers supplier.Repository
	products  product.Repository
	ledger    *ledger.Service
	txm       tx.Manager
	auditor   audit.Recorder
}

func NewService(
	repo Repository,
	suppliers supplier.Repository,
	products product.Repository,
	ledgerSvc *ledger.Service,
	txm tx.Manager,
	auditor audit.Recorder,
) *Service {
	return &Service{
		repo:      repo,
		suppliers: suppliers,
		products:  products,
		ledger:    ledgerSvc,
		txm:       txm,
		auditor:   auditor,
	}
}

// Create places a new pending purchase order. Creation has no effect on
// stock; quantities land on the ledger only when the order is received.
func (s *Service) Create(ctx context.Context, input CreateOrderInput) (*PurchaseOrder, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	sup, err := s.suppliers.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = now
	}

	order := &PurchaseOrder{
		ID:           id.New(),
		SupplierID:   sup.ID,
		SupplierName: sup.Name,
		Status:       StatusPending,
		TotalAmount:  types.ZeroMoney(),
		OrderDate:    orderDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for _, line := range input.Lines {
		p, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		subtotal := types.MulQuantity(line.UnitPrice, line.Quantity)
		order.Items = append(order.Items, PurchaseOrderItem{
			ID:          id.New(),
			OrderID:     order.ID,
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice.Round(2),
			Subtotal:    subtotal,
		})
		order.TotalAmount = order.TotalAmount.Add(subtotal)
	}

	if err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, order)
	}); err != nil {
		return nil, err
	}
	logger.Info(ctx, "purchase order created",
		"order_id", order.ID,
		"supplier_id", order.SupplierID,
		"items", len(order.Items),
	)
	return order, nil
}

// Receive marks a pending order received and adds every ordered quantity
// to stock. The status check and the stock increments run in one
// transaction against the locked order row, so the order can be received
// at most once. A zero receivedDate defaults to the current time.
func (s *Service) Receive(ctx context.Context, orderID id.ID, receivedDate time.Time) (*PurchaseOrder, error) {
	var order *PurchaseOrder
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		switch order.Status {
		case StatusReceived:
			return apperror.NewInvalidStateTransition("Purchase order has already been received")
		case StatusCancelled:
			return apperror.NewInvalidStateTransition("Cannot receive a cancelled purchase order")
		}

		for _, item := range order.Items {
			if _, err := s.ledger.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		received := receivedDate
		if received.IsZero() {
			received = time.Now().UTC()
		}
		order.Status = StatusReceived
		order.ReceivedDate = &received
		order.UpdatedAt = time.Now().UTC()
		return s.repo.UpdateStatus(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase order received", "order_id", order.ID, "items", len(order.Items))
	s.recordAudit(ctx, audit.ActionOrderReceived, order)
	return order, nil
}

// Cancel marks a pending order cancelled. Cancellation never touches
// stock because pending orders have none applied.
func (s *Service) Cancel(ctx context.Context, orderID id.ID) (*PurchaseOrder, error) {
	var order *PurchaseOrder
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		switch order.Status {
		case StatusReceived:
			return apperror.NewInvalidStateTransition("Cannot cancel a received purchase order")
		case StatusCancelled:
			return apperror.NewInvalidStateTransition("Purchase order is already cancelled")
		}

		order.Status = StatusCancelled
		order.UpdatedAt = time.Now().UTC()
		return s.repo.UpdateStatus(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase order cancelled", "order_id", order.ID)
	s.recordAudit(ctx, audit.ActionOrderCancelled, order)
	return order, nil
}

func (s *Service) FindByID(ctx context.Context, orderID id.ID) (*PurchaseOrder, error) {
	return s.repo.FindByID(ctx, orderID)
}

func (s *Service) FindAll(ctx context.Context) ([]PurchaseOrder, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) recordAudit(ctx context.Context, action string, order *PurchaseOrder) {
	if s.auditor == nil {
		return
	}
	entry := audit.Entry{
		Action:     action,
		EntityType: "purchase_order",
		EntityID:   order.ID,
		Payload: map[string]any{
			"supplier_id": order.SupplierID,
			"status":      order.Status,
			"items":       len(order.Items),
		},
	}
	if err := s.auditor.Record(ctx, entry); err != nil {
		logger.Warn(ctx, "audit record failed", "action", action, "error", err)
	}
}
