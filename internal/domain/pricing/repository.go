package pricing

import (
	"context"

	"dukapos/internal/core/id"
)

// Repository persists price history records. Records are append-only:
// Create is the only write.
type Repository interface {
	Create(ctx context.Context, rec *Record) error

	// ListByProduct returns all records for the product, newest first,
	// with SupplierName populated.
	ListByProduct(ctx context.Context, productID id.ID) ([]Record, error)

	// ListBySupplier returns up to limit records for the
	// product/supplier pair, newest first.
	ListBySupplier(ctx context.Context, productID, supplierID id.ID, limit int) ([]Record, error)
}
