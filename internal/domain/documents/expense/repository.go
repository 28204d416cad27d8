package expense

import (
	"context"
	"time"

	"dukapos/internal/core/id"
	"dukapos/internal/domain"
)

// Repository defines operations for expense documents.
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, expenseID id.ID) (*Expense, error)
	Update(ctx context.Context, e *Expense) error

	GetLines(ctx context.Context, expenseID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, expenseID id.ID, lines []Line) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Expense], error)
}

// ListFilter for filtering expenses.
type ListFilter struct {
	domain.ListFilter

	Category string
	Status   *Status
	DateFrom *time.Time
	DateTo   *time.Time
}
