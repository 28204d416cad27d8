package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"dukapos/internal/core/id"
	"dukapos/internal/domain"
	"dukapos/internal/domain/documents/expense"
	"dukapos/internal/infrastructure/storage/postgres"
)

const (
	expenseTable     = "doc_expenses"
	expenseLineTable = "doc_expense_lines"
)

// ExpenseRepo implements expense.Repository.
type ExpenseRepo struct {
	*BaseDocumentRepo[*expense.Expense]
}

var _ expense.Repository = (*ExpenseRepo)(nil)

// NewExpenseRepo creates a new expense repository.
func NewExpenseRepo(txm *postgres.TxManager) *ExpenseRepo {
	return &ExpenseRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txm,
			expenseTable,
			postgres.ExtractDBColumns[expense.Expense](),
			func() *expense.Expense { return &expense.Expense{} },
		),
	}
}

// GetLines retrieves expense lines in document order.
func (r *ExpenseRepo) GetLines(ctx context.Context, expenseID id.ID) ([]expense.Line, error) {
	sql, args, err := r.Builder().
		Select("line_id", "product_id", "product_name", "quantity", "unit_cost").
		From(expenseLineTable).
		Where(squirrel.Eq{"expense_id": expenseID}).
		OrderBy("line_no ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []expense.Line
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get expense lines: %w", err)
	}
	return lines, nil
}

// SaveLines replaces the expense's lines. Lines are immutable after
// posting, so in practice this runs once, right after Create.
func (r *ExpenseRepo) SaveLines(ctx context.Context, expenseID id.ID, lines []expense.Line) error {
	querier := r.Querier(ctx)

	delSQL, delArgs, err := r.Builder().
		Delete(expenseLineTable).
		Where(squirrel.Eq{"expense_id": expenseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := querier.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("clear expense lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(expenseLineTable).
		Columns("line_id", "expense_id", "line_no", "product_id", "product_name", "quantity", "unit_cost")
	for i, line := range lines {
		q = q.Values(line.LineID, expenseID, i+1, line.ProductID, line.ProductName, line.Quantity, line.UnitCost)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("save expense lines: %w", err)
	}
	return nil
}

// List retrieves expenses with filtering.
func (r *ExpenseRepo) List(ctx context.Context, filter expense.ListFilter) (domain.ListResult[*expense.Expense], error) {
	var conds []squirrel.Sqlizer
	if filter.Category != "" {
		conds = append(conds, squirrel.Eq{"category": filter.Category})
	}
	if filter.Status != nil {
		conds = append(conds, squirrel.Eq{"status": *filter.Status})
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
			squirrel.ILike{"description": pattern},
			squirrel.ILike{"vendor": pattern},
		})
	}
	return r.ListWhere(ctx, filter.ListFilter, conds)
}
