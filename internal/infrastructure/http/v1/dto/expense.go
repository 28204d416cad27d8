package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"dukapos/internal/domain/documents/expense"
)

// CreateExpenseRequest is the request body for a standalone expense
// (rent, utilities). Inventory purchases go through the restock flow.
type CreateExpenseRequest struct {
	Description   string          `json:"description" binding:"required"`
	Category      string          `json:"category" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"paymentMethod" binding:"required"`
	Vendor        string          `json:"vendor"`
	Notes         string          `json:"notes"`
	Date          *time.Time      `json:"date"`
}

// ToEntity converts the DTO to a domain entity.
func (r *CreateExpenseRequest) ToEntity() *expense.Expense {
	e := expense.New(r.Description, r.Category, r.PaymentMethod)
	e.Amount = r.Amount
	e.Vendor = r.Vendor
	e.Notes = r.Notes
	if r.Date != nil {
		e.Date = *r.Date
	}
	return e
}

// ExpenseLineResponse is one product line of an expense.
type ExpenseLineResponse struct {
	LineID      string          `json:"lineId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
}

// ExpenseResponse is the response body for an expense.
type ExpenseResponse struct {
	ID            string                `json:"id"`
	Description   string                `json:"description"`
	Category      string                `json:"category"`
	Amount        decimal.Decimal       `json:"amount"`
	PaymentMethod string                `json:"paymentMethod"`
	Vendor        string                `json:"vendor,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	Status        string                `json:"status"`
	Date          time.Time             `json:"date"`
	Lines         []ExpenseLineResponse `json:"lines,omitempty"`
	Version       int                   `json:"version"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// FromExpense creates a response DTO from a domain entity.
func FromExpense(e *expense.Expense) *ExpenseResponse {
	resp := &ExpenseResponse{
		ID:            e.ID.String(),
		Description:   e.Description,
		Category:      e.Category,
		Amount:        e.Amount,
		PaymentMethod: e.PaymentMethod,
		Vendor:        e.Vendor,
		Notes:         e.Notes,
		Status:        string(e.Status),
		Date:          e.Date,
		Version:       e.Version,
		CreatedAt:     e.CreatedAt,
	}
	for _, line := range e.Lines {
		resp.Lines = append(resp.Lines, ExpenseLineResponse{
			LineID:      line.LineID.String(),
			ProductID:   line.ProductID.String(),
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitCost:    line.UnitCost,
		})
	}
	return resp
}
