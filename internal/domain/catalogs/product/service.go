package product

import (
	"context"
	"fmt"

	"dukapos/internal/core/apperror"
	appctx "dukapos/internal/core/context"
	"dukapos/internal/core/id"
	"dukapos/internal/core/tx"
	"dukapos/internal/domain"
	"dukapos/pkg/logger"
)

// Service provides business operations for the product catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new product service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create creates a new product.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	p.CreatedBy = appctx.UserID(ctx)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "product created", "id", p.ID, "name", p.Name)
	return nil
}

// GetByID retrieves a product.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// Update updates a product. Stock and cost changes flow through the
// restock coordinator, not through here.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	p.UpdatedBy = appctx.UserID(ctx)
	p.Touch()

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, p)
	})
}

// Delete soft-deletes a product.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, productID)
}

// List retrieves products with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Product], error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultListFilter().Limit
	}
	result, err := s.repo.List(ctx, filter)
	if err != nil {
		return result, apperror.NewInternal(err).WithDetail("entity", "product")
	}
	return result, nil
}
