package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"dukapos/internal/core/apperror"
	"dukapos/internal/core/id"
	"dukapos/internal/domain"
	"dukapos/internal/domain/documents/sale"
	"dukapos/internal/infrastructure/storage/postgres"
)

const (
	saleTable     = "doc_sales"
	saleLineTable = "doc_sale_lines"
)

// SaleRepo implements sale.Repository.
type SaleRepo struct {
	*BaseDocumentRepo[*sale.Sale]
}

var _ sale.Repository = (*SaleRepo)(nil)

// NewSaleRepo creates a new sale repository.
func NewSaleRepo(txm *postgres.TxManager) *SaleRepo {
	return &SaleRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txm,
			saleTable,
			postgres.ExtractDBColumns[sale.Sale](),
			func() *sale.Sale { return &sale.Sale{} },
		),
	}
}

// GetByNumber retrieves a sale by its human-readable number.
func (r *SaleRepo) GetByNumber(ctx context.Context, number string) (*sale.Sale, error) {
	s := &sale.Sale{}

	sql, args, err := r.Builder().
		Select(postgres.ExtractDBColumns[sale.Sale]()...).
		From(saleTable).
		Where(squirrel.Eq{"number": number}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(saleTable, number)
		}
		return nil, fmt.Errorf("get by number: %w", err)
	}
	return s, nil
}

// ExistsByNumber reports whether a sale already carries the number.
// Backs the number generator's verify loop.
func (r *SaleRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	sql, args, err := r.Builder().
		Select("1").
		From(saleTable).
		Where(squirrel.Eq{"number": number}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists by number: %w", err)
	}
	return true, nil
}

// GetLines retrieves sale lines in document order.
func (r *SaleRepo) GetLines(ctx context.Context, saleID id.ID) ([]sale.Line, error) {
	sql, args, err := r.Builder().
		Select("line_id", "product_id", "product_name", "quantity", "unit_price", "subtotal").
		From(saleLineTable).
		Where(squirrel.Eq{"sale_id": saleID}).
		OrderBy("line_no ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []sale.Line
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get sale lines: %w", err)
	}
	return lines, nil
}

// SaveLines replaces the sale's lines.
func (r *SaleRepo) SaveLines(ctx context.Context, saleID id.ID, lines []sale.Line) error {
	querier := r.Querier(ctx)

	delSQL, delArgs, err := r.Builder().
		Delete(saleLineTable).
		Where(squirrel.Eq{"sale_id": saleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := querier.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("clear sale lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(saleLineTable).
		Columns("line_id", "sale_id", "line_no", "product_id", "product_name", "quantity", "unit_price", "subtotal")
	for i, line := range lines {
		q = q.Values(line.LineID, saleID, i+1, line.ProductID, line.ProductName, line.Quantity, line.UnitPrice, line.Subtotal)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("save sale lines: %w", err)
	}
	return nil
}

// List retrieves sales with filtering.
func (r *SaleRepo) List(ctx context.Context, filter sale.ListFilter) (domain.ListResult[*sale.Sale], error) {
	var conds []squirrel.Sqlizer
	if filter.PaymentMethod != "" {
		conds = append(conds, squirrel.Eq{"payment_method": filter.PaymentMethod})
	}
	if filter.DateFrom != nil {
		conds = append(conds, squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		conds = append(conds, squirrel.LtOrEq{"date": *filter.DateTo})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"number": pattern},
			squirrel.ILike{"customer_name": pattern},
		})
	}
	return r.ListWhere(ctx, filter.ListFilter, conds)
}
