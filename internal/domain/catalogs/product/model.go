// Package product provides the product catalog.
package product

import (
	"context"

	"dukapos/internal/core/apperror"
	"dukapos/internal/core/entity"
	"dukapos/internal/core/id"
	"dukapos/internal/core/types"
)

// Product represents a sellable item with on-hand stock.
type Product struct {
	entity.Catalog

	// SKU is an optional merchant-assigned code
	SKU string `db:"sku" json:"sku,omitempty"`

	Category    string `db:"category" json:"category"`
	Description string `db:"description" json:"description,omitempty"`

	// SellingPrice is what the customer pays per unit
	SellingPrice types.Money `db:"selling_price" json:"sellingPrice"`

	// CostPrice is what the shop last paid per unit; overwritten by restocks
	CostPrice types.Money `db:"cost_price" json:"costPrice"`

	// StockQuantity is the on-hand count. Never negative: restocks only
	// increment, and sales are rejected when stock is short.
	StockQuantity int `db:"stock_quantity" json:"stockQuantity"`

	// LowStockThreshold triggers the low-stock flag in listings
	LowStockThreshold int `db:"low_stock_threshold" json:"lowStockThreshold"`

	// SupplierID references the supplier of the latest restock
	SupplierID *id.ID `db:"supplier_id" json:"supplierId,omitempty"`
}

// New creates a product with generated ID.
func New(name, category string) *Product {
	return &Product{
		Catalog:  entity.NewCatalog(name),
		Category: category,
	}
}

// IsLowStock reports whether on-hand stock fell to the threshold.
func (p *Product) IsLowStock() bool {
	return p.LowStockThreshold > 0 && p.StockQuantity <= p.LowStockThreshold
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if p.SellingPrice.IsNegative() {
		return apperror.NewValidation("selling price must not be negative").
			WithDetail("field", "sellingPrice")
	}
	if p.CostPrice.IsNegative() {
		return apperror.NewValidation("cost price must not be negative").
			WithDetail("field", "costPrice")
	}
	if p.StockQuantity < 0 {
		return apperror.NewValidation("stock quantity must not be negative").
			WithDetail("field", "stockQuantity")
	}
	return nil
}
