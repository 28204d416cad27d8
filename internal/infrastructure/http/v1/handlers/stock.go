package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dukapos/internal/core/apperror"
	"dukapos/internal/domain/restock"
	"dukapos/internal/infrastructure/http/v1/dto"
	"dukapos/internal/infrastructure/storage/postgres"
	"dukapos/pkg/logger"
)

// StockHandler serves stock mutation endpoints.
type StockHandler struct {
	*BaseHandler
	restock  *restock.Service
	activity *postgres.ActivityLog
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, svc *restock.Service, activity *postgres.ActivityLog) *StockHandler {
	return &StockHandler{BaseHandler: base, restock: svc, activity: activity}
}

// Restock handles POST /stock/restock. All lines commit in a single
// transaction, so a partial restock is never visible.
func (h *StockHandler) Restock(c *gin.Context) {
	var req dto.RestockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid product id"))
		return
	}

	res, err := h.restock.Restock(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}

	if h.activity != nil {
		if err := h.activity.RecordChange(c.Request.Context(), "expense", res.ExpenseID, postgres.ActivityRestock, res); err != nil {
			logger.Warn(c.Request.Context(), "record restock activity failed", "expense_id", res.ExpenseID, "error", err)
		}
	}

	c.JSON(http.StatusCreated, dto.FromRestockResult(res))
}
