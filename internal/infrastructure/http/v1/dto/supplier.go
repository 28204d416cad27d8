package dto

import (
	"time"

	"dukapos/internal/domain/catalogs/supplier"
)

// CreateSupplierRequest is the request body for creating a supplier.
type CreateSupplierRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// ToEntity converts the DTO to a domain entity.
func (r *CreateSupplierRequest) ToEntity() *supplier.Supplier {
	s := supplier.New(r.Name)
	s.ContactPerson = r.ContactPerson
	s.Phone = r.Phone
	s.Email = r.Email
	s.Address = r.Address
	s.Notes = r.Notes
	return s
}

// UpdateSupplierRequest is the request body for updating a supplier.
type UpdateSupplierRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
	IsActive      *bool  `json:"isActive"`
	Version       int    `json:"version" binding:"required"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateSupplierRequest) ApplyTo(s *supplier.Supplier) {
	s.Name = r.Name
	s.ContactPerson = r.ContactPerson
	s.Phone = r.Phone
	s.Email = r.Email
	s.Address = r.Address
	s.Notes = r.Notes
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
	s.Version = r.Version
}

// SupplierResponse is the response body for a supplier.
type SupplierResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	IsActive      bool      `json:"isActive"`
	Version       int       `json:"version"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FromSupplier creates a response DTO from a domain entity.
func FromSupplier(s *supplier.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:            s.ID.String(),
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		Notes:         s.Notes,
		IsActive:      s.IsActive,
		Version:       s.Version,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
