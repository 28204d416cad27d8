package sale

import (
	"context"
	"fmt"

	appctx "dukapos/internal/core/context"
	"dukapos/internal/core/id"
	"dukapos/internal/core/sequence"
	"dukapos/internal/core/tx"
	"dukapos/internal/domain"
	"dukapos/internal/domain/catalogs/product"
	"dukapos/pkg/logger"
)

// Service provides business operations for sale documents.
type Service struct {
	repo      Repository
	products  product.Repository
	numbers   sequence.NumberGenerator
	txManager tx.Manager
}

// NewService creates a new sale service.
func NewService(
	repo Repository,
	products product.Repository,
	numbers sequence.NumberGenerator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		numbers:   numbers,
		txManager: txManager,
	}
}

// Create records a sale: mints a unique sale number, persists the
// document with its lines and deducts stock, all in one transaction.
func (s *Service) Create(ctx context.Context, doc *Sale) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}
	doc.CreatedBy = appctx.UserID(ctx)

	if doc.Number == "" {
		number, err := s.numbers.Generate(ctx, NumberPrefix, NumberWidth, s.repo.ExistsByNumber)
		if err != nil {
			return fmt.Errorf("generate sale number: %w", err)
		}
		doc.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, line := range doc.Lines {
			if err := s.products.DeductStock(ctx, line.ProductID, line.Quantity); err != nil {
				return fmt.Errorf("deduct stock for %s: %w", line.ProductID, err)
			}
		}

		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "sale created",
		"id", doc.ID,
		"number", doc.Number,
		"total", doc.TotalAmount)
	return nil
}

// GetByID retrieves a sale with lines.
func (s *Service) GetByID(ctx context.Context, saleID id.ID) (*Sale, error) {
	doc, err := s.repo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// GetByNumber retrieves a sale by its human-readable number.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Sale, error) {
	doc, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// List retrieves sales with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Sale], error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultListFilter().Limit
	}
	return s.repo.List(ctx, filter)
}
