package expense

import (
	"context"
	"fmt"

	appctx "dukapos/internal/core/context"
	"dukapos/internal/core/id"
	"dukapos/internal/core/tx"
	"dukapos/internal/domain"
	"dukapos/pkg/logger"
)

// Service provides business operations for expense documents.
// Restock-driven expenses are created by the restock coordinator; this
// service covers standalone expenses (rent, utilities) and reads.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new expense service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create records a standalone expense.
func (s *Service) Create(ctx context.Context, e *Expense) error {
	if err := e.Validate(ctx); err != nil {
		return err
	}
	e.CreatedBy = appctx.UserID(ctx)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, e); err != nil {
			return fmt.Errorf("create expense: %w", err)
		}
		if len(e.Lines) > 0 {
			if err := s.repo.SaveLines(ctx, e.ID, e.Lines); err != nil {
				return fmt.Errorf("save lines: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "expense created",
		"id", e.ID,
		"category", e.Category,
		"amount", e.Amount,
		"status", e.Status)
	return nil
}

// GetByID retrieves an expense with lines.
func (s *Service) GetByID(ctx context.Context, expenseID id.ID) (*Expense, error) {
	e, err := s.repo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	e.Lines = lines

	return e, nil
}

// MarkPaid flips a not_paid expense to paid.
func (s *Service) MarkPaid(ctx context.Context, expenseID id.ID) error {
	e, err := s.repo.GetByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if e.Status == StatusPaid {
		return nil
	}
	e.Status = StatusPaid
	e.Touch()

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, e)
	})
}

// List retrieves expenses with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Expense], error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultListFilter().Limit
	}
	return s.repo.List(ctx, filter)
}
