// Package sale provides the sale document.
package sale

import (
	"context"

	"dukapos/internal/core/apperror"
	"dukapos/internal/core/entity"
	"dukapos/internal/core/id"
	"dukapos/internal/core/types"
)

// NumberPrefix and NumberWidth define the sale number format,
// e.g. SALE-000042.
const (
	NumberPrefix = "SALE-"
	NumberWidth  = 6
)

// Sale represents one completed point-of-sale transaction.
type Sale struct {
	entity.Document

	// Number is the unique human-readable identifier, minted by the
	// number generator at creation time.
	Number string `db:"number" json:"number"`

	CustomerName  string      `db:"customer_name" json:"customerName,omitempty"`
	PaymentMethod string      `db:"payment_method" json:"paymentMethod"`
	TotalAmount   types.Money `db:"total_amount" json:"totalAmount"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one sold item.
type Line struct {
	LineID      id.ID       `db:"line_id" json:"lineId"`
	ProductID   id.ID       `db:"product_id" json:"productId"`
	ProductName string      `db:"product_name" json:"productName"`
	Quantity    int         `db:"quantity" json:"quantity"`
	UnitPrice   types.Money `db:"unit_price" json:"unitPrice"`
	Subtotal    types.Money `db:"subtotal" json:"subtotal"`
}

// New creates a sale document without a number; the service assigns one.
func New(paymentMethod string) *Sale {
	return &Sale{
		Document:      entity.NewDocument(),
		PaymentMethod: paymentMethod,
	}
}

// AddLine appends a sold item and rolls it into the total.
func (s *Sale) AddLine(productID id.ID, productName string, quantity int, unitPrice types.Money) {
	subtotal := unitPrice.Mul(types.NewMoney(float64(quantity)))
	s.Lines = append(s.Lines, Line{
		LineID:      id.New(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Subtotal:    subtotal,
	})
	s.TotalAmount = s.TotalAmount.Add(subtotal)
}

// Validate implements entity.Validatable.
func (s *Sale) Validate(ctx context.Context) error {
	if s.PaymentMethod == "" {
		return apperror.NewValidation("payment method is required").
			WithDetail("field", "paymentMethod")
	}
	if len(s.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	for i, line := range s.Lines {
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
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price must not be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}
	return nil
}
