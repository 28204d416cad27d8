package supplier

import (
	"context"
	"fmt"
	"strings"

	"dukapos/internal/core/apperror"
	appctx "dukapos/internal/core/context"
	"dukapos/internal/core/id"
	"dukapos/internal/core/tx"
	"dukapos/internal/domain"
	"dukapos/pkg/logger"
)

// Service provides business operations for the supplier catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new supplier service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create creates a new supplier, rejecting duplicate names.
func (s *Service) Create(ctx context.Context, sup *Supplier) error {
	if err := sup.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.FindByName(ctx, sup.Name)
	if err != nil && !apperror.IsNotFound(err) {
		return err
	}
	if existing != nil {
		return apperror.NewDuplicate("supplier", "name", sup.Name)
	}

	sup.CreatedBy = appctx.UserID(ctx)
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, sup)
	})
}

// ResolveByName finds the supplier matching name (case-insensitive) or
// creates a minimal record for it. Used by the restock coordinator,
// always inside the caller's transaction.
//
// Matching is case-insensitive so that capitalization drift in vendor
// strings ("acme" vs "Acme") does not spawn duplicate suppliers.
func (s *Service) ResolveByName(ctx context.Context, name string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewValidation("vendor name is required").
			WithDetail("field", "vendor")
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, fmt.Errorf("find supplier %q: %w", name, err)
	}

	created := New(name)
	created.CreatedBy = appctx.UserID(ctx)
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("create supplier %q: %w", name, err)
	}

	logger.Info(ctx, "supplier created from vendor string", "id", created.ID, "name", created.Name)
	return created, nil
}

// GetByID retrieves a supplier.
func (s *Service) GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error) {
	return s.repo.GetByID(ctx, supplierID)
}

// Update updates a supplier.
func (s *Service) Update(ctx context.Context, sup *Supplier) error {
	if err := sup.Validate(ctx); err != nil {
		return err
	}
	sup.UpdatedBy = appctx.UserID(ctx)
	sup.Touch()

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, sup)
	})
}

// Delete soft-deletes a supplier.
func (s *Service) Delete(ctx context.Context, supplierID id.ID) error {
	if _, err := s.repo.GetByID(ctx, supplierID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, supplierID)
}

// List retrieves suppliers with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Supplier], error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultListFilter().Limit
	}
	return s.repo.List(ctx, filter)
}
