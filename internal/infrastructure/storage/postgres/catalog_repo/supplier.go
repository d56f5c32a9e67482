package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
	"retailcore/internal/domain/catalogs/supplier"
	"retailcore/internal/infrastructure/storage/postgres"
)

const suppliersTable = "suppliers"

var supplierColumns = []string{
	"id", "name", "contact_name", "contact_email", "contact_phone", "address",
	"created_at", "updated_at",
}

// SupplierRepo implements supplier.Repository.
type SupplierRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

var _ supplier.Repository = (*SupplierRepo)(nil)

func NewSupplierRepo(txm *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *SupplierRepo) Create(ctx context.Context, s *supplier.Supplier) error {
	sql, args, err := r.builder.Insert(suppliersTable).
		Columns(supplierColumns...).
		Values(s.ID, s.Name, s.ContactName, s.ContactEmail, s.ContactPhone, s.Address,
			s.CreatedAt, s.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, supplierID id.ID) (*supplier.Supplier, error) {
	sql, args, err := r.builder.Select(supplierColumns...).
		From(suppliersTable).
		Where(squirrel.Eq{"id": supplierID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var s supplier.Supplier
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("Supplier", supplierID)
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) List(ctx context.Context) ([]supplier.Supplier, error) {
	sql, args, err := r.builder.Select(supplierColumns...).
		From(suppliersTable).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	suppliers := []supplier.Supplier{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &suppliers, sql, args...); err != nil {
		return nil, fmt.Errorf("select suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *supplier.Supplier) error {
	sql, args, err := r.builder.Update(suppliersTable).
		Set("name", s.Name).
		Set("contact_name", s.ContactName).
		Set("contact_email", s.ContactEmail).
		Set("contact_phone", s.ContactPhone).
		Set("address", s.Address).
		Set("updated_at", s.UpdatedAt).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("Supplier", s.ID)
	}
	return nil
}

func (r *SupplierRepo) Delete(ctx context.Context, supplierID id.ID) error {
	sql, args, err := r.builder.Delete(suppliersTable).
		Where(squirrel.Eq{"id": supplierID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("Supplier", supplierID)
	}
	return nil
}
