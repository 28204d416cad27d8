package product

import (
	"context"

	"dukapos/internal/core/id"
	"dukapos/internal/core/types"
	"dukapos/internal/domain"
)

// Repository defines operations for the product catalog.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, productID id.ID) error
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Product], error)

	// ApplyRestock increments stock and overwrites cost/supplier in one
	// atomic statement (stock_quantity = stock_quantity + qty), so
	// concurrent restocks of the same product serialize correctly.
	ApplyRestock(ctx context.Context, productID id.ID, quantity int, unitCost types.Money, supplierID id.ID) error

	// DeductStock atomically decrements stock for a sale line; fails
	// when on-hand stock would go negative.
	DeductStock(ctx context.Context, productID id.ID, quantity int) error
}

// ListFilter for filtering products.
type ListFilter struct {
	domain.ListFilter

	Category   string
	SupplierID *id.ID
	LowStock   bool
}
