// Package supplier provides the supplier catalog.
// Suppliers are canonical records keyed by name; restocks resolve the
// vendor string against this catalog or create a new record.
package supplier

import (
	"context"
	"strings"

	"dukapos/internal/core/apperror"
	"dukapos/internal/core/entity"
)

// Supplier represents a vendor the shop buys stock from.
type Supplier struct {
	entity.Catalog

	ContactPerson string `db:"contact_person" json:"contactPerson,omitempty"`
	Phone         string `db:"phone" json:"phone,omitempty"`
	Email         string `db:"email" json:"email,omitempty"`
	Address       string `db:"address" json:"address,omitempty"`
	Notes         string `db:"notes" json:"notes,omitempty"`
}

// New creates a supplier with generated ID.
func New(name string) *Supplier {
	return &Supplier{
		Catalog: entity.NewCatalog(strings.TrimSpace(name)),
	}
}

// Validate implements entity.Validatable.
func (s *Supplier) Validate(ctx context.Context) error {
	if strings.TrimSpace(s.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
