package handlers

import (
	"github.com/gin-gonic/gin"

	"dukapos/internal/domain/catalogs/supplier"
	"dukapos/internal/infrastructure/http/v1/dto"
)

// SupplierHandler serves the supplier catalog.
type SupplierHandler struct {
	*BaseHandler
	service *supplier.Service
}

// NewSupplierHandler creates a new supplier handler.
func NewSupplierHandler(base *BaseHandler, service *supplier.Service) *SupplierHandler {
	return &SupplierHandler{BaseHandler: base, service: service}
}

// List handles GET /suppliers.
func (h *SupplierHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), h.listFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.SupplierResponse, len(result.Items))
	for i, s := range result.Items {
		items[i] = dto.FromSupplier(s)
	}
	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /suppliers/:id.
func (h *SupplierHandler) Get(c *gin.Context) {
	supplierID, ok := h.ParseID(c)
	if !ok {
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), supplierID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSupplier(s))
}

// Create handles POST /suppliers.
func (h *SupplierHandler) Create(c *gin.Context) {
	var req dto.CreateSupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}

	s := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), s); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, s.ID)
}

// Update handles PUT /suppliers/:id.
func (h *SupplierHandler) Update(c *gin.Context) {
	supplierID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateSupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), supplierID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(s)

	if err := h.service.Update(c.Request.Context(), s); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSupplier(s))
}

// Delete handles DELETE /suppliers/:id.
func (h *SupplierHandler) Delete(c *gin.Context) {
	supplierID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), supplierID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
