// Package document_repo provides PostgreSQL implementations for
// transactional document repositories.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
	"retailcore/internal/domain/sales"
	"retailcore/internal/infrastructure/storage/postgres"
)

const (
	salesTable     = "sales"
	saleItemsTable = "sale_items"
)

var (
	saleColumns     = []string{"id", "total_amount", "customer_name", "customer_phone", "created_at"}
	saleItemColumns = []string{
		"id", "sale_id", "product_id", "product_name", "product_sku",
		"quantity", "unit_price", "subtotal",
	}
)

// SaleRepo implements sales.Repository.
type SaleRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

var _ sales.Repository = (*SaleRepo)(nil)

func NewSaleRepo(txm *postgres.TxManager) *SaleRepo {
	return &SaleRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts the sale and its items. Sales are immutable once
// written.
func (r *SaleRepo) Create(ctx context.Context, sale *sales.Sale) error {
	querier := r.txm.GetQuerier(ctx)

	sql, args, err := r.builder.Insert(salesTable).
		Columns(saleColumns...).
		Values(sale.ID, sale.TotalAmount, sale.CustomerName, sale.CustomerPhone, sale.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sale insert: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	// Items go in via COPY; CreateSale always runs inside a transaction.
	if _, ok := postgres.GetTx(ctx); ok {
		rows := make([][]any, 0, len(sale.Items))
		for _, item := range sale.Items {
			rows = append(rows, []any{
				item.ID, item.SaleID, item.ProductID, item.ProductName, item.ProductSKU,
				item.Quantity, item.UnitPrice, item.Subtotal,
			})
		}
		if _, err := postgres.NewBatchInserter(r.txm).CopyFromSlice(ctx, saleItemsTable, saleItemColumns, rows); err != nil {
			return fmt.Errorf("copy sale items: %w", err)
		}
		return nil
	}

	q := r.builder.Insert(saleItemsTable).Columns(saleItemColumns...)
	for _, item := range sale.Items {
		q = q.Values(item.ID, item.SaleID, item.ProductID, item.ProductName, item.ProductSKU,
			item.Quantity, item.UnitPrice, item.Subtotal)
	}
	sql, args, err = q.ToSql()
	if err != nil {
		return fmt.Errorf("build items insert: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale items: %w", err)
	}
	return nil
}

func (r *SaleRepo) FindByID(ctx context.Context, saleID id.ID) (*sales.Sale, error) {
	sql, args, err := r.builder.Select(saleColumns...).
		From(salesTable).
		Where(squirrel.Eq{"id": saleID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var sale sales.Sale
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &sale, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("Sale", saleID)
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	items, err := r.loadItems(ctx, []id.ID{saleID})
	if err != nil {
		return nil, err
	}
	sale.Items = items[saleID]
	return &sale, nil
}

func (r *SaleRepo) FindAll(ctx context.Context) ([]sales.Sale, error) {
	sql, args, err := r.builder.Select(saleColumns...).
		From(salesTable).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	list := []sales.Sale{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &list, sql, args...); err != nil {
		return nil, fmt.Errorf("select sales: %w", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]id.ID, 0, len(list))
	for _, sale := range list {
		ids = append(ids, sale.ID)
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

func (r *SaleRepo) loadItems(ctx context.Context, saleIDs []id.ID) (map[id.ID][]sales.SaleItem, error) {
	sql, args, err := r.builder.Select(saleItemColumns...).
		From(saleItemsTable).
		Where(squirrel.Eq{"sale_id": saleIDs}).
		OrderBy("sale_id", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	var items []sales.SaleItem
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select sale items: %w", err)
	}

	grouped := make(map[id.ID][]sales.SaleItem, len(saleIDs))
	for _, item := range items {
		grouped[item.SaleID] = append(grouped[item.SaleID], item)
	}
	return grouped, nil
}
