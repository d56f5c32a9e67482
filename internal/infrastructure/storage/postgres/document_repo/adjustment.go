package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
	"retailcore/internal/domain/inventory"
	"retailcore/internal/infrastructure/storage/postgres"
)

const adjustmentsTable = "inventory_adjustments"

var adjustmentColumns = []string{
	"id", "product_id", "product_name", "adjustment_type", "quantity", "reason",
	"previous_stock", "new_stock", "created_at",
}

// AdjustmentRepo implements inventory.Repository.
type AdjustmentRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

var _ inventory.Repository = (*AdjustmentRepo)(nil)

func NewAdjustmentRepo(txm *postgres.TxManager) *AdjustmentRepo {
	return &AdjustmentRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *AdjustmentRepo) Create(ctx context.Context, adj *inventory.Adjustment) error {
	sql, args, err := r.builder.Insert(adjustmentsTable).
		Columns(adjustmentColumns...).
		Values(adj.ID, adj.ProductID, adj.ProductName, adj.AdjustmentType, adj.Quantity,
			adj.Reason, adj.PreviousStock, adj.NewStock, adj.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

func (r *AdjustmentRepo) FindByID(ctx context.Context, adjustmentID id.ID) (*inventory.Adjustment, error) {
	sql, args, err := r.builder.Select(adjustmentColumns...).
		From(adjustmentsTable).
		Where(squirrel.Eq{"id": adjustmentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var adj inventory.Adjustment
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &adj, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("Inventory adjustment", adjustmentID)
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return &adj, nil
}

func (r *AdjustmentRepo) FindAll(ctx context.Context) ([]inventory.Adjustment, error) {
	return r.find(ctx, nil)
}

func (r *AdjustmentRepo) FindByProduct(ctx context.Context, productID id.ID) ([]inventory.Adjustment, error) {
	return r.find(ctx, squirrel.Eq{"product_id": productID})
}

func (r *AdjustmentRepo) find(ctx context.Context, where squirrel.Sqlizer) ([]inventory.Adjustment, error) {
	q := r.builder.Select(adjustmentColumns...).
		From(adjustmentsTable).
		OrderBy("created_at DESC")
	if where != nil {
		q = q.Where(where)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	adjustments := []inventory.Adjustment{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &adjustments, sql, args...); err != nil {
		return nil, fmt.Errorf("select adjustments: %w", err)
	}
	return adjustments, nil
}
