package sale

import (
	"context"
	"time"

	"dukapos/internal/core/id"
	"dukapos/internal/domain"
)

// Repository defines operations for sale documents.
type Repository interface {
	Create(ctx context.Context, s *Sale) error
	GetByID(ctx context.Context, saleID id.ID) (*Sale, error)
	GetByNumber(ctx context.Context, number string) (*Sale, error)

	// ExistsByNumber backs the number generator's verify loop.
	ExistsByNumber(ctx context.Context, number string) (bool, error)

	GetLines(ctx context.Context, saleID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, saleID id.ID, lines []Line) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Sale], error)
}

// ListFilter for filtering sales.
type ListFilter struct {
	domain.ListFilter

	PaymentMethod string
	DateFrom      *time.Time
	DateTo        *time.Time
}
