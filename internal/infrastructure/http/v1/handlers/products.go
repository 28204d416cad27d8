package handlers

import (
	"github.com/gin-gonic/gin"

	"dukapos/internal/core/apperror"
	"dukapos/internal/core/id"
	"dukapos/internal/domain"
	"dukapos/internal/domain/catalogs/product"
	"dukapos/internal/domain/pricing"
	"dukapos/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the product catalog and its pricing view.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
	pricing *pricing.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service, pricingSvc *pricing.Service) *ProductHandler {
	return &ProductHandler{BaseHandler: base, service: service, pricing: pricingSvc}
}

// List handles GET /products.
func (h *ProductHandler) List(c *gin.Context) {
	filter := product.ListFilter{ListFilter: h.listFilter(c)}
	filter.Category = c.Query("category")
	filter.LowStock = c.Query("lowStock") == "true"
	if supplierID := c.Query("supplierId"); supplierID != "" {
		parsed, err := id.Parse(supplierID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid supplier id"))
			return
		}
		filter.SupplierID = &parsed
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.ProductResponse, len(result.Items))
	for i, p := range result.Items {
		items[i] = dto.FromProduct(p)
	}
	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseID(c)
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProduct(p))
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := req.ToEntity()
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid supplier id"))
		return
	}

	if err := h.service.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, p.ID)
}

// Update handles PUT /products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(p)

	if err := h.service.Update(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProduct(p))
}

// Delete handles DELETE /products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// PricingHistory handles GET /products/:id/pricing. It serves the
// per-supplier pricing view built from price history records.
func (h *ProductHandler) PricingHistory(c *gin.Context) {
	productID, ok := h.ParseID(c)
	if !ok {
		return
	}

	history, err := h.pricing.HistoryForProduct(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, history)
}

// SupplierPricing handles GET /products/:id/pricing/:supplierId.
func (h *ProductHandler) SupplierPricing(c *gin.Context) {
	productID, ok := h.ParseID(c)
	if !ok {
		return
	}
	supplierID, err := id.Parse(c.Param("supplierId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid supplier id"))
		return
	}

	records, err := h.pricing.SupplierHistory(c.Request.Context(), productID, supplierID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"records": records})
}

func (h *BaseHandler) listFilter(c *gin.Context) domain.ListFilter {
	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", filter.Limit)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.Query("orderBy")
	filter.IncludeInactive = c.Query("includeInactive") == "true"
	return filter
}
