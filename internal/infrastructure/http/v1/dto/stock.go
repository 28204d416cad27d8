package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"dukapos/internal/core/id"
	"dukapos/internal/domain/restock"
)

// RestockLineRequest is one product line of a restock request.
type RestockLineRequest struct {
	ProductID string          `json:"productId" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unitCost"`
}

// RestockRequest is the request body for a restock operation.
type RestockRequest struct {
	Lines         []RestockLineRequest `json:"lines" binding:"required"`
	Vendor        string               `json:"vendor" binding:"required"`
	PaymentMethod string               `json:"paymentMethod" binding:"required"`
	Description   string               `json:"description"`
	Category      string               `json:"category"`
	Notes         string               `json:"notes"`
	ExpenseDate   *time.Time           `json:"expenseDate"`
}

// ToInput converts the DTO to coordinator input.
func (r *RestockRequest) ToInput() (restock.Input, error) {
	in := restock.Input{
		Vendor:        r.Vendor,
		PaymentMethod: r.PaymentMethod,
		Description:   r.Description,
		Category:      r.Category,
		Notes:         r.Notes,
	}
	if r.ExpenseDate != nil {
		in.ExpenseDate = *r.ExpenseDate
	}
	for _, line := range r.Lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			return restock.Input{}, err
		}
		in.Lines = append(in.Lines, restock.Line{
			ProductID: productID,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
		})
	}
	return in, nil
}

// RestockResponse reports the outcome of a committed restock.
type RestockResponse struct {
	ExpenseID         string          `json:"expenseId"`
	SupplierID        string          `json:"supplierId"`
	SupplierName      string          `json:"supplierName"`
	Status            string          `json:"status"`
	TotalCost         decimal.Decimal `json:"totalCost"`
	UpdatedProductIDs []string        `json:"updatedProductIds"`
}

// FromRestockResult creates a response DTO from a coordinator result.
func FromRestockResult(res *restock.Result) *RestockResponse {
	resp := &RestockResponse{
		ExpenseID:    res.ExpenseID.String(),
		SupplierID:   res.SupplierID.String(),
		SupplierName: res.SupplierName,
		Status:       string(res.Status),
		TotalCost:    res.TotalCost,
	}
	for _, pid := range res.UpdatedProductIDs {
		resp.UpdatedProductIDs = append(resp.UpdatedProductIDs, pid.String())
	}
	return resp
}
