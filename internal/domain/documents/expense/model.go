// Package expense provides the expense document.
// One expense records one purchase event: a restock creates exactly
// one expense embedding its line items.
package expense

import (
	"context"

	"dukapos/internal/core/apperror"
	"dukapos/internal/core/entity"
	"dukapos/internal/core/id"
	"dukapos/internal/core/types"
)

// Status of an expense.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusNotPaid Status = "not_paid"
)

// Payment methods considered settled on receipt.
var paidOnReceiptMethods = map[string]bool{
	"cash":         true,
	"mobile_money": true,
}

// DeriveStatus returns paid for payment methods that settle on
// receipt (cash, mobile money), not_paid otherwise.
func DeriveStatus(paymentMethod string) Status {
	if paidOnReceiptMethods[paymentMethod] {
		return StatusPaid
	}
	return StatusNotPaid
}

// Expense represents one purchase event.
type Expense struct {
	entity.Document

	Description   string      `db:"description" json:"description"`
	Category      string      `db:"category" json:"category"`
	Amount        types.Money `db:"amount" json:"amount"`
	PaymentMethod string      `db:"payment_method" json:"paymentMethod"`
	Vendor        string      `db:"vendor" json:"vendor,omitempty"`
	Notes         string      `db:"notes" json:"notes,omitempty"`
	Status        Status      `db:"status" json:"status"`

	// Lines are the product line references embedded in the expense.
	// Immutable after creation.
	Lines []Line `db:"-" json:"lines,omitempty"`
}

// Line is one product reference inside an expense.
type Line struct {
	LineID      id.ID       `db:"line_id" json:"lineId"`
	ProductID   id.ID       `db:"product_id" json:"productId"`
	ProductName string      `db:"product_name" json:"productName"`
	Quantity    int         `db:"quantity" json:"quantity"`
	UnitCost    types.Money `db:"unit_cost" json:"unitCost"`
}

// New creates an expense document.
func New(description, category, paymentMethod string) *Expense {
	return &Expense{
		Document:      entity.NewDocument(),
		Description:   description,
		Category:      category,
		PaymentMethod: paymentMethod,
		Status:        DeriveStatus(paymentMethod),
	}
}

// AddLine appends a product line and rolls its cost into the amount.
func (e *Expense) AddLine(productID id.ID, productName string, quantity int, unitCost types.Money) {
	e.Lines = append(e.Lines, Line{
		LineID:      id.New(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitCost:    unitCost,
	})
	e.Amount = e.Amount.Add(unitCost.Mul(types.NewMoney(float64(quantity))))
}

// Validate implements entity.Validatable.
func (e *Expense) Validate(ctx context.Context) error {
	if e.Description == "" {
		return apperror.NewValidation("description is required").
			WithDetail("field", "description")
	}
	if e.Category == "" {
		return apperror.NewValidation("category is required").
			WithDetail("field", "category")
	}
	if e.PaymentMethod == "" {
		return apperror.NewValidation("payment method is required").
			WithDetail("field", "paymentMethod")
	}
	if e.Amount.IsNegative() {
		return apperror.NewValidation("amount must not be negative").
			WithDetail("field", "amount")
	}
	for i, line := range e.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.UnitCost.IsNegative() {
			return apperror.NewValidation("unit cost must not be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}
	return nil
}
