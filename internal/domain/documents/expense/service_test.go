package expense

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"dukapos/internal/core/apperror"
	"dukapos/internal/core/id"
	"dukapos/internal/core/tx"
	"dukapos/internal/core/types"
	"dukapos/internal/domain"
)

type memExpenseRepo struct {
	expenses map[id.ID]*Expense
	lines    map[id.ID][]Line
	updates  int
}

func newMemExpenseRepo() *memExpenseRepo {
	return &memExpenseRepo{
		expenses: map[id.ID]*Expense{},
		lines:    map[id.ID][]Line{},
	}
}

func (r *memExpenseRepo) Create(ctx context.Context, e *Expense) error {
	r.expenses[e.ID] = e
	return nil
}

func (r *memExpenseRepo) GetByID(ctx context.Context, expenseID id.ID) (*Expense, error) {
	e, ok := r.expenses[expenseID]
	if !ok {
		return nil, apperror.NewNotFound("expense", expenseID.String())
	}
	return e, nil
}

func (r *memExpenseRepo) Update(ctx context.Context, e *Expense) error {
	r.updates++
	r.expenses[e.ID] = e
	return nil
}

func (r *memExpenseRepo) GetLines(ctx context.Context, expenseID id.ID) ([]Line, error) {
	return r.lines[expenseID], nil
}

func (r *memExpenseRepo) SaveLines(ctx context.Context, expenseID id.ID, lines []Line) error {
	r.lines[expenseID] = lines
	return nil
}

func (r *memExpenseRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Expense], error) {
	items := make([]*Expense, 0, len(r.expenses))
	for _, e := range r.expenses {
		items = append(items, e)
	}
	return domain.ListResult[*Expense]{Items: items, TotalCount: len(items)}, nil
}

func TestDeriveStatus(t *testing.T) {
	require.Equal(t, StatusPaid, DeriveStatus("cash"))
	require.Equal(t, StatusPaid, DeriveStatus("mobile_money"))
	require.Equal(t, StatusNotPaid, DeriveStatus("credit"))
	require.Equal(t, StatusNotPaid, DeriveStatus("bank_transfer"))
}

func TestAddLine_RollsIntoAmount(t *testing.T) {
	e := New("restock from Bidco", "inventory", "cash")
	e.AddLine(id.New(), "Sugar 1kg", 10, types.NewMoney(95.50))
	e.AddLine(id.New(), "Flour 2kg", 4, types.NewMoney(120))

	require.True(t, e.Amount.Equal(types.NewMoney(1435)))
	require.Len(t, e.Lines, 2)
}

func TestCreate_StandaloneExpense(t *testing.T) {
	repo := newMemExpenseRepo()
	svc := NewService(repo, &tx.MockManager{})

	e := New("October rent", "rent", "bank_transfer")
	e.Amount = types.NewMoney(15000)

	require.NoError(t, svc.Create(context.Background(), e))
	require.Equal(t, StatusNotPaid, e.Status)
	require.Contains(t, repo.expenses, e.ID)
	require.Empty(t, repo.lines[e.ID])
}

func TestCreate_RejectsMissingCategory(t *testing.T) {
	repo := newMemExpenseRepo()
	svc := NewService(repo, &tx.MockManager{})

	e := New("October rent", "", "cash")
	err := svc.Create(context.Background(), e)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperror.CodeValidation, appErr.Code)
	require.Empty(t, repo.expenses)
}

func TestMarkPaid(t *testing.T) {
	repo := newMemExpenseRepo()
	svc := NewService(repo, &tx.MockManager{})

	e := New("supplier invoice", "inventory", "credit")
	e.Amount = types.NewMoney(3200)
	require.NoError(t, svc.Create(context.Background(), e))
	require.Equal(t, StatusNotPaid, e.Status)

	require.NoError(t, svc.MarkPaid(context.Background(), e.ID))
	require.Equal(t, StatusPaid, repo.expenses[e.ID].Status)
	require.Equal(t, 1, repo.updates)

	// Already paid is a no-op, not an error.
	require.NoError(t, svc.MarkPaid(context.Background(), e.ID))
	require.Equal(t, 1, repo.updates)
}

func TestMarkPaid_UnknownExpense(t *testing.T) {
	repo := newMemExpenseRepo()
	svc := NewService(repo, &tx.MockManager{})

	err := svc.MarkPaid(context.Background(), id.New())
	require.Error(t, err)
	require.True(t, apperror.IsNotFound(err))
}
