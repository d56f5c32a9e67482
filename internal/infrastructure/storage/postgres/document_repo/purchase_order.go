package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
	"retailcore/internal/domain/purchases"
	"retailcore/internal/infrastructure/storage/postgres"
)

const (
	purchaseOrdersTable     = "purchase_orders"
	purchaseOrderItemsTable = "purchase_order_items"
)

var (
	purchaseOrderColumns = []string{
		"po.id", "po.supplier_id", "s.name AS supplier_name", "po.status",
		"po.total_amount", "po.order_date", "po.received_date",
		"po.created_at", "po.updated_at",
	}
	purchaseOrderItemColumns = []string{
		"id", "purchase_order_id", "product_id", "product_name", "quantity", "unit_price", "subtotal",
	}
)

// PurchaseOrderRepo implements purchases.Repository.
type PurchaseOrderRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

var _ purchases.Repository = (*PurchaseOrderRepo)(nil)

func NewPurchaseOrderRepo(txm *postgres.TxManager) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *PurchaseOrderRepo) Create(ctx context.Context, order *purchases.PurchaseOrder) error {
	querier := r.txm.GetQuerier(ctx)

	sql, args, err := r.builder.Insert(purchaseOrdersTable).
		Columns("id", "supplier_id", "status", "total_amount", "order_date", "received_date",
			"created_at", "updated_at").
		Values(order.ID, order.SupplierID, order.Status, order.TotalAmount, order.OrderDate,
			order.ReceivedDate, order.CreatedAt, order.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build order insert: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}

	q := r.builder.Insert(purchaseOrderItemsTable).Columns(purchaseOrderItemColumns...)
	for _, item := range order.Items {
		q = q.Values(item.ID, item.OrderID, item.ProductID, item.ProductName,
			item.Quantity, item.UnitPrice, item.Subtotal)
	}
	sql, args, err = q.ToSql()
	if err != nil {
		return fmt.Errorf("build items insert: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert purchase order items: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) FindByID(ctx context.Context, orderID id.ID) (*purchases.PurchaseOrder, error) {
	return r.getByID(ctx, orderID, false)
}

// GetForUpdate locks the order row until the surrounding transaction
// ends, serializing receive and cancel calls for the same order.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, orderID id.ID) (*purchases.PurchaseOrder, error) {
	return r.getByID(ctx, orderID, true)
}

func (r *PurchaseOrderRepo) getByID(ctx context.Context, orderID id.ID, forUpdate bool) (*purchases.PurchaseOrder, error) {
	// The supplier name is resolved in a separate read so that the lock
	// only covers the purchase_orders row.
	sql := `
		SELECT id, supplier_id, status, total_amount, order_date, received_date,
		       created_at, updated_at
		FROM purchase_orders
		WHERE id = $1
	`
	if forUpdate {
		sql += "FOR UPDATE"
	}

	querier := r.txm.GetQuerier(ctx)
	var order purchases.PurchaseOrder
	if err := pgxscan.Get(ctx, querier, &order, sql, orderID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("Purchase order", orderID)
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}

	if err := pgxscan.Get(ctx, querier, &order.SupplierName,
		`SELECT name FROM suppliers WHERE id = $1`, order.SupplierID); err != nil && !pgxscan.NotFound(err) {
		return nil, fmt.Errorf("get supplier name: %w", err)
	}

	items, err := r.loadItems(ctx, []id.ID{orderID})
	if err != nil {
		return nil, err
	}
	order.Items = items[orderID]
	return &order, nil
}

func (r *PurchaseOrderRepo) FindAll(ctx context.Context) ([]purchases.PurchaseOrder, error) {
	sql, args, err := r.builder.Select(purchaseOrderColumns...).
		From(purchaseOrdersTable + " AS po").
		Join("suppliers AS s ON s.id = po.supplier_id").
		OrderBy("po.order_date DESC", "po.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	list := []purchases.PurchaseOrder{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &list, sql, args...); err != nil {
		return nil, fmt.Errorf("select purchase orders: %w", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]id.ID, 0, len(list))
	for _, order := range list {
		ids = append(ids, order.ID)
	}
	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Items = items[list[i].ID]
	}
	return list, nil
}

func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, order *purchases.PurchaseOrder) error {
	sql, args, err := r.builder.Update(purchaseOrdersTable).
		Set("status", order.Status).
		Set("received_date", order.ReceivedDate).
		Set("updated_at", order.UpdatedAt).
		Where(squirrel.Eq{"id": order.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("Purchase order", order.ID)
	}
	return nil
}

func (r *PurchaseOrderRepo) loadItems(ctx context.Context, orderIDs []id.ID) (map[id.ID][]purchases.PurchaseOrderItem, error) {
	sql, args, err := r.builder.Select(purchaseOrderItemColumns...).
		From(purchaseOrderItemsTable).
		Where(squirrel.Eq{"purchase_order_id": orderIDs}).
		OrderBy("purchase_order_id", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	var items []purchases.PurchaseOrderItem
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select purchase order items: %w", err)
	}

	grouped := make(map[id.ID][]purchases.PurchaseOrderItem, len(orderIDs))
	for _, item := range items {
		grouped[item.OrderID] = append(grouped[item.OrderID], item)
	}
	return grouped, nil
}
