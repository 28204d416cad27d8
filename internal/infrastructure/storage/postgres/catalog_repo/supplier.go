package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"dukapos/internal/core/apperror"
	"dukapos/internal/domain/catalogs/supplier"
	"dukapos/internal/infrastructure/storage/postgres"
)

const supplierTable = "cat_suppliers"

// SupplierRepo implements supplier.Repository.
type SupplierRepo struct {
	*BaseCatalogRepo[*supplier.Supplier]
}

var _ supplier.Repository = (*SupplierRepo)(nil)

// NewSupplierRepo creates a new supplier repository.
func NewSupplierRepo(txm *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			supplierTable,
			postgres.ExtractDBColumns[supplier.Supplier](),
			func() *supplier.Supplier { return &supplier.Supplier{} },
		),
	}
}

// FindByName retrieves the supplier whose name matches
// case-insensitively. Restocks resolve vendors through this lookup, so
// capitalization drift must not spawn duplicates.
func (r *SupplierRepo) FindByName(ctx context.Context, name string) (*supplier.Supplier, error) {
	sup := &supplier.Supplier{}

	sql, args, err := r.Builder().
		Select(postgres.ExtractDBColumns[supplier.Supplier]()...).
		From(supplierTable).
		Where(squirrel.Expr("lower(name) = lower(?)", name)).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), sup, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(supplierTable, name)
		}
		return nil, fmt.Errorf("find by name: %w", err)
	}
	return sup, nil
}
