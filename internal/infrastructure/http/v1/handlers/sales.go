package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dukapos/internal/domain/documents/sale"
	"dukapos/internal/infrastructure/http/v1/dto"
	"dukapos/internal/infrastructure/storage/postgres"
	"dukapos/pkg/logger"
)

// SaleHandler serves sale documents.
type SaleHandler struct {
	*BaseHandler
	service  *sale.Service
	activity *postgres.ActivityLog
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(base *BaseHandler, service *sale.Service, activity *postgres.ActivityLog) *SaleHandler {
	return &SaleHandler{BaseHandler: base, service: service, activity: activity}
}

// Create handles POST /sales. The sale number is minted server-side.
func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	if h.activity != nil {
		if err := h.activity.RecordChange(c.Request.Context(), "sale", doc.ID, postgres.ActivitySale, doc); err != nil {
			logger.Warn(c.Request.Context(), "record sale activity failed", "sale_id", doc.ID, "error", err)
		}
	}

	c.JSON(http.StatusCreated, dto.FromSale(doc))
}

// Get handles GET /sales/:id.
func (h *SaleHandler) Get(c *gin.Context) {
	saleID, ok := h.ParseID(c)
	if !ok {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), saleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSale(doc))
}

// GetByNumber handles GET /sales/number/:number.
func (h *SaleHandler) GetByNumber(c *gin.Context) {
	doc, err := h.service.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSale(doc))
}

// List handles GET /sales.
func (h *SaleHandler) List(c *gin.Context) {
	filter := sale.ListFilter{ListFilter: h.listFilter(c)}
	filter.PaymentMethod = c.Query("paymentMethod")
	if from := c.Query("dateFrom"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.DateFrom = &t
		}
	}
	if to := c.Query("dateTo"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.DateTo = &t
		}
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.SaleResponse, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromSale(doc)
	}
	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
