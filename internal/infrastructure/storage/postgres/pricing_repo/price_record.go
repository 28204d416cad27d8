// Package pricing_repo provides the PostgreSQL implementation of the
// price history repository.
package pricing_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"dukapos/internal/core/id"
	"dukapos/internal/domain/pricing"
	"dukapos/internal/infrastructure/storage/postgres"
)

const priceTable = "product_supplier_prices"

// readCols are the record columns plus the joined supplier name.
var readCols = []string{
	"p.id", "p.version", "p.created_at", "p.updated_at",
	"p.product_id", "p.supplier_id",
	"s.name AS supplier_name",
	"p.unit_cost", "p.quantity_restocked", "p.total_cost",
	"p.restock_date", "p.expense_id", "p.notes",
}

// PriceRecordRepo implements pricing.Repository.
type PriceRecordRepo struct {
	txm *postgres.TxManager
}

var _ pricing.Repository = (*PriceRecordRepo)(nil)

// NewPriceRecordRepo creates a new price record repository.
func NewPriceRecordRepo(txm *postgres.TxManager) *PriceRecordRepo {
	return &PriceRecordRepo{txm: txm}
}

func (r *PriceRecordRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create appends a price history record.
func (r *PriceRecordRepo) Create(ctx context.Context, rec *pricing.Record) error {
	sql, args, err := r.builder().
		Insert(priceTable).
		Columns("id", "version", "created_at", "updated_at",
			"product_id", "supplier_id", "unit_cost", "quantity_restocked",
			"total_cost", "restock_date", "expense_id", "notes").
		Values(rec.ID, rec.Version, rec.CreatedAt, rec.UpdatedAt,
			rec.ProductID, rec.SupplierID, rec.UnitCost, rec.QuantityRestocked,
			rec.TotalCost, rec.RestockDate, rec.ExpenseID, rec.Notes).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert price record: %w", err)
	}
	return nil
}

func (r *PriceRecordRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(readCols...).
		From(priceTable + " p").
		LeftJoin("cat_suppliers s ON s.id = p.supplier_id").
		OrderBy("p.restock_date DESC", "p.created_at DESC")
}

// ListByProduct returns all records for the product, newest first.
func (r *PriceRecordRepo) ListByProduct(ctx context.Context, productID id.ID) ([]pricing.Record, error) {
	sql, args, err := r.baseSelect().
		Where(squirrel.Eq{"p.product_id": productID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var records []pricing.Record
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &records, sql, args...); err != nil {
		return nil, fmt.Errorf("list price records: %w", err)
	}
	return records, nil
}

// ListBySupplier returns up to limit records for the product/supplier
// pair, newest first.
func (r *PriceRecordRepo) ListBySupplier(ctx context.Context, productID, supplierID id.ID, limit int) ([]pricing.Record, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"p.product_id": productID}).
		Where(squirrel.Eq{"p.supplier_id": supplierID})
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var records []pricing.Record
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &records, sql, args...); err != nil {
		return nil, fmt.Errorf("list supplier price records: %w", err)
	}
	return records, nil
}
