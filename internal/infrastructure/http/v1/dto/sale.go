package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"dukapos/internal/core/id"
	"dukapos/internal/domain/documents/sale"
)

// SaleLineRequest is one sold item.
type SaleLineRequest struct {
	ProductID string          `json:"productId" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreateSaleRequest is the request body for recording a sale.
type CreateSaleRequest struct {
	Lines         []SaleLineRequest `json:"lines" binding:"required"`
	CustomerName  string            `json:"customerName"`
	PaymentMethod string            `json:"paymentMethod" binding:"required"`
	Date          *time.Time        `json:"date"`
}

// ToEntity converts the DTO to a domain entity. Product names are
// resolved by the service.
func (r *CreateSaleRequest) ToEntity() (*sale.Sale, error) {
	s := sale.New(r.PaymentMethod)
	s.CustomerName = r.CustomerName
	if r.Date != nil {
		s.Date = *r.Date
	}
	for _, line := range r.Lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			return nil, err
		}
		s.AddLine(productID, "", line.Quantity, line.UnitPrice)
	}
	return s, nil
}

// SaleLineResponse is one sold item in a response.
type SaleLineResponse struct {
	LineID      string          `json:"lineId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse is the response body for a sale.
type SaleResponse struct {
	ID            string             `json:"id"`
	Number        string             `json:"number"`
	CustomerName  string             `json:"customerName,omitempty"`
	PaymentMethod string             `json:"paymentMethod"`
	TotalAmount   decimal.Decimal    `json:"totalAmount"`
	Date          time.Time          `json:"date"`
	Lines         []SaleLineResponse `json:"lines,omitempty"`
	Version       int                `json:"version"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// FromSale creates a response DTO from a domain entity.
func FromSale(s *sale.Sale) *SaleResponse {
	resp := &SaleResponse{
		ID:            s.ID.String(),
		Number:        s.Number,
		CustomerName:  s.CustomerName,
		PaymentMethod: s.PaymentMethod,
		TotalAmount:   s.TotalAmount,
		Date:          s.Date,
		Version:       s.Version,
		CreatedAt:     s.CreatedAt,
	}
	for _, line := range s.Lines {
		resp.Lines = append(resp.Lines, SaleLineResponse{
			LineID:      line.LineID.String(),
			ProductID:   line.ProductID.String(),
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal,
		})
	}
	return resp
}
