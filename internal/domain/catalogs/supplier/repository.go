package supplier

import (
	"context"

	"dukapos/internal/core/id"
	"dukapos/internal/domain"
)

// Repository defines operations for the supplier catalog.
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error)

	// FindByName matches the supplier name case-insensitively, so
	// "Acme" and "ACME" resolve to the same record.
	FindByName(ctx context.Context, name string) (*Supplier, error)

	Update(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, supplierID id.ID) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Supplier], error)
}
