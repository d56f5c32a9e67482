// Package report_repo provides the PostgreSQL aggregate queries behind
// the reporting service.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"retailcore/internal/core/types"
	"retailcore/internal/domain/reports"
	"retailcore/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

var _ reports.Repository = (*ReportRepo)(nil)

func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func dateFilter(q squirrel.SelectBuilder, column string, r reports.DateRange) squirrel.SelectBuilder {
	if r.Start != nil {
		q = q.Where(squirrel.GtOrEq{column: *r.Start})
	}
	if r.End != nil {
		q = q.Where(squirrel.LtOrEq{column: *r.End})
	}
	return q
}

func (r *ReportRepo) SalesTotals(ctx context.Context, rng reports.DateRange) (int, types.Money, error) {
	q := r.builder.
		Select("COUNT(*)", "COALESCE(SUM(total_amount), 0)").
		From("sales")
	q = dateFilter(q, "created_at", rng)

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, types.ZeroMoney(), fmt.Errorf("build query: %w", err)
	}

	var (
		count   int
		revenue types.Money
	)
	row := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...)
	if err := row.Scan(&count, &revenue); err != nil {
		return 0, types.ZeroMoney(), fmt.Errorf("scan sales totals: %w", err)
	}
	return count, revenue, nil
}

func (r *ReportRepo) TopProducts(ctx context.Context, rng reports.DateRange, limit int) ([]reports.TopProduct, error) {
	q := r.builder.
		Select(
			"si.product_id",
			"si.product_name",
			"SUM(si.quantity)::int AS total_quantity",
			"COALESCE(SUM(si.subtotal), 0) AS total_amount",
		).
		From("sale_items AS si").
		Join("sales AS s ON s.id = si.sale_id").
		GroupBy("si.product_id", "si.product_name").
		OrderBy("total_quantity DESC").
		Limit(uint64(limit))
	q = dateFilter(q, "s.created_at", rng)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	top := []reports.TopProduct{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &top, sql, args...); err != nil {
		return nil, fmt.Errorf("select top products: %w", err)
	}
	return top, nil
}

func (r *ReportRepo) InventoryTotals(ctx context.Context) (int, int, types.Money, error) {
	sql := `
		SELECT COUNT(*),
		       COALESCE(SUM(stock), 0)::int,
		       COALESCE(SUM(price * stock), 0)
		FROM products
	`

	var (
		products int
		units    int
		value    types.Money
	)
	row := r.txm.GetQuerier(ctx).QueryRow(ctx, sql)
	if err := row.Scan(&products, &units, &value); err != nil {
		return 0, 0, types.ZeroMoney(), fmt.Errorf("scan inventory totals: %w", err)
	}
	return products, units, value, nil
}

func (r *ReportRepo) LowStockProducts(ctx context.Context, threshold int) ([]reports.LowStockProduct, error) {
	sql, args, err := r.builder.
		Select("id AS product_id", "name AS product_name", "stock").
		From("products").
		Where(squirrel.Lt{"stock": threshold}).
		OrderBy("stock", "name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	low := []reports.LowStockProduct{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &low, sql, args...); err != nil {
		return nil, fmt.Errorf("select low stock products: %w", err)
	}
	return low, nil
}

func (r *ReportRepo) PurchaseTotals(ctx context.Context, rng reports.DateRange) (int, types.Money, error) {
	q := r.builder.
		Select("COUNT(*)", "COALESCE(SUM(total_amount), 0)").
		From("purchase_orders")
	q = dateFilter(q, "order_date", rng)

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, types.ZeroMoney(), fmt.Errorf("build query: %w", err)
	}

	var (
		count  int
		amount types.Money
	)
	row := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...)
	if err := row.Scan(&count, &amount); err != nil {
		return 0, types.ZeroMoney(), fmt.Errorf("scan purchase totals: %w", err)
	}
	return count, amount, nil
}

func (r *ReportRepo) PendingOrderCount(ctx context.Context, rng reports.DateRange) (int, error) {
	q := r.builder.
		Select("COUNT(*)").
		From("purchase_orders").
		Where(squirrel.Eq{"status": "pending"})
	q = dateFilter(q, "order_date", rng)

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int
	row := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan pending count: %w", err)
	}
	return count, nil
}

func (r *ReportRepo) SupplierSummaries(ctx context.Context, rng reports.DateRange) ([]reports.SupplierSummary, error) {
	q := r.builder.
		Select(
			"po.supplier_id",
			"s.name AS supplier_name",
			"COUNT(*)::int AS total_orders",
			"COALESCE(SUM(po.total_amount), 0) AS total_amount",
		).
		From("purchase_orders AS po").
		Join("suppliers AS s ON s.id = po.supplier_id").
		GroupBy("po.supplier_id", "s.name").
		OrderBy("total_amount DESC")
	q = dateFilter(q, "po.order_date", rng)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	summaries := []reports.SupplierSummary{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &summaries, sql, args...); err != nil {
		return nil, fmt.Errorf("select supplier summaries: %w", err)
	}
	return summaries, nil
}
