package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"dukapos/internal/core/id"
	"dukapos/internal/domain/catalogs/product"
)

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Name              string          `json:"name" binding:"required"`
	SKU               string          `json:"sku"`
	Category          string          `json:"category"`
	Description       string          `json:"description"`
	SellingPrice      decimal.Decimal `json:"sellingPrice"`
	CostPrice         decimal.Decimal `json:"costPrice"`
	StockQuantity     int             `json:"stockQuantity"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	SupplierID        *string         `json:"supplierId"`
}

// ToEntity converts the DTO to a domain entity.
func (r *CreateProductRequest) ToEntity() (*product.Product, error) {
	p := product.New(r.Name, r.Category)
	p.SKU = r.SKU
	p.Description = r.Description
	p.SellingPrice = r.SellingPrice
	p.CostPrice = r.CostPrice
	p.StockQuantity = r.StockQuantity
	p.LowStockThreshold = r.LowStockThreshold
	if r.SupplierID != nil && *r.SupplierID != "" {
		supplierID, err := id.Parse(*r.SupplierID)
		if err != nil {
			return nil, err
		}
		p.SupplierID = &supplierID
	}
	return p, nil
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Name              string          `json:"name" binding:"required"`
	SKU               string          `json:"sku"`
	Category          string          `json:"category"`
	Description       string          `json:"description"`
	SellingPrice      decimal.Decimal `json:"sellingPrice"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	IsActive          *bool           `json:"isActive"`
	Version           int             `json:"version" binding:"required"`
}

// ApplyTo applies the update to an existing entity. Stock and cost
// price are owned by restock and sale flows, never by plain updates.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Name = r.Name
	p.SKU = r.SKU
	p.Category = r.Category
	p.Description = r.Description
	p.SellingPrice = r.SellingPrice
	p.LowStockThreshold = r.LowStockThreshold
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	p.Version = r.Version
}

// ProductResponse is the response body for a product.
type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	SKU               string          `json:"sku,omitempty"`
	Category          string          `json:"category,omitempty"`
	Description       string          `json:"description,omitempty"`
	SellingPrice      decimal.Decimal `json:"sellingPrice"`
	CostPrice         decimal.Decimal `json:"costPrice"`
	StockQuantity     int             `json:"stockQuantity"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	LowStock          bool            `json:"lowStock"`
	SupplierID        *string         `json:"supplierId,omitempty"`
	IsActive          bool            `json:"isActive"`
	Version           int             `json:"version"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// FromProduct creates a response DTO from a domain entity.
func FromProduct(p *product.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:                p.ID.String(),
		Name:              p.Name,
		SKU:               p.SKU,
		Category:          p.Category,
		Description:       p.Description,
		SellingPrice:      p.SellingPrice,
		CostPrice:         p.CostPrice,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		LowStock:          p.IsLowStock(),
		IsActive:          p.IsActive,
		Version:           p.Version,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if p.SupplierID != nil {
		s := p.SupplierID.String()
		resp.SupplierID = &s
	}
	return resp
}
