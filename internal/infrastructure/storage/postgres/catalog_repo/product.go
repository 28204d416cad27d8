package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"dukapos/internal/core/apperror"
	"dukapos/internal/core/id"
	"dukapos/internal/core/types"
	"dukapos/internal/domain"
	"dukapos/internal/domain/catalogs/product"
	"dukapos/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

var _ product.Repository = (*ProductRepo)(nil)

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// List retrieves products with catalog plus product-specific filters.
func (r *ProductRepo) List(ctx context.Context, filter product.ListFilter) (domain.ListResult[*product.Product], error) {
	var conds []squirrel.Sqlizer
	if filter.Category != "" {
		conds = append(conds, squirrel.Eq{"category": filter.Category})
	}
	if filter.SupplierID != nil {
		conds = append(conds, squirrel.Eq{"supplier_id": *filter.SupplierID})
	}
	if filter.LowStock {
		conds = append(conds, squirrel.Expr("stock_quantity <= low_stock_threshold"))
	}
	return r.ListWhere(ctx, filter.ListFilter, conds)
}

// ApplyRestock increments stock and overwrites cost price and supplier
// in one statement. The increment runs in SQL, never read-modify-write
// in Go, so concurrent restocks serialize on the row.
func (r *ProductRepo) ApplyRestock(ctx context.Context, productID id.ID, quantity int, unitCost types.Money, supplierID id.ID) error {
	sql, args, err := r.Builder().
		Update(productTable).
		Set("stock_quantity", squirrel.Expr("stock_quantity + ?", quantity)).
		Set("cost_price", unitCost).
		Set("supplier_id", supplierID).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": productID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build restock update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("apply restock: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(productTable, productID.String())
	}
	return nil
}

// DeductStock decrements stock for a sale line. The guard in the WHERE
// clause keeps on-hand stock from going negative under concurrency.
func (r *ProductRepo) DeductStock(ctx context.Context, productID id.ID, quantity int) error {
	sql, args, err := r.Builder().
		Update(productTable).
		Set("stock_quantity", squirrel.Expr("stock_quantity - ?", quantity)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": productID}).
		Where(squirrel.Expr("stock_quantity >= ?", quantity)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build stock deduction: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("deduct stock: %w", err)
	}
	if result.RowsAffected() == 0 {
		exists, existsErr := r.Exists(ctx, productID)
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return apperror.NewNotFound(productTable, productID.String())
		}
		return apperror.NewBusinessRule("INSUFFICIENT_STOCK", "insufficient stock").
			WithDetail("productId", productID.String()).
			WithDetail("requested", quantity)
	}
	return nil
}
