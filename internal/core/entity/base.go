// Package entity defines the base types shared by catalogs and documents.
package entity

import (
	"context"
	"time"

	"dukapos/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants without database access.
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Base contains the fields every persisted entity carries.
type Base struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewBase creates a Base with a generated ID and current timestamps.
func NewBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        id.New(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch refreshes the updated timestamp.
func (b *Base) Touch() {
	b.UpdatedAt = time.Now().UTC()
}

// Catalog is the base type for reference data (products, suppliers).
type Catalog struct {
	Base

	// Name is the display name, unique per catalog by convention
	Name string `db:"name" json:"name"`

	// IsActive false hides the record from normal listings (soft delete)
	IsActive bool `db:"is_active" json:"isActive"`

	CreatedBy string `db:"created_by" json:"createdBy,omitempty"`
	UpdatedBy string `db:"updated_by" json:"updatedBy,omitempty"`
}

// NewCatalog creates a catalog record with generated ID.
func NewCatalog(name string) Catalog {
	return Catalog{
		Base:     NewBase(),
		Name:     name,
		IsActive: true,
	}
}

// Document is the base type for dated business records
// (expenses, sales).
type Document struct {
	Base

	// Date is the business date of the document, distinct from CreatedAt
	Date time.Time `db:"date" json:"date"`

	CreatedBy string `db:"created_by" json:"createdBy,omitempty"`
}

// NewDocument creates a document dated now.
func NewDocument() Document {
	return Document{
		Base: NewBase(),
		Date: time.Now().UTC(),
	}
}
