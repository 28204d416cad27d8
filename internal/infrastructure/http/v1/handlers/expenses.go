package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"dukapos/internal/domain/documents/expense"
	"dukapos/internal/infrastructure/http/v1/dto"
)

// ExpenseHandler serves expense documents.
type ExpenseHandler struct {
	*BaseHandler
	service *expense.Service
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(base *BaseHandler, service *expense.Service) *ExpenseHandler {
	return &ExpenseHandler{BaseHandler: base, service: service}
}

// List handles GET /expenses.
func (h *ExpenseHandler) List(c *gin.Context) {
	filter := expense.ListFilter{ListFilter: h.listFilter(c)}
	filter.Category = c.Query("category")
	if status := c.Query("status"); status != "" {
		s := expense.Status(status)
		filter.Status = &s
	}
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

	items := make([]*dto.ExpenseResponse, len(result.Items))
	for i, e := range result.Items {
		items[i] = dto.FromExpense(e)
	}
	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /expenses/:id, lines included.
func (h *ExpenseHandler) Get(c *gin.Context) {
	expenseID, ok := h.ParseID(c)
	if !ok {
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), expenseID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromExpense(e))
}

// Create handles POST /expenses for standalone expenses.
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), e); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, e.ID)
}

// MarkPaid handles POST /expenses/:id/pay.
func (h *ExpenseHandler) MarkPaid(c *gin.Context) {
	expenseID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.MarkPaid(c.Request.Context(), expenseID); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "expense marked as paid")
}
