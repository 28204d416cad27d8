// Package restock coordinates the multi-entity restock operation:
// one expense document, supplier resolution, price history records and
// atomic stock increments, all inside a single transaction.
package restock

import (
	"context"
	"fmt"
	"time"

	"dukapos/internal/core/apperror"
	appctx "dukapos/internal/core/context"
	"dukapos/internal/core/id"
	"dukapos/internal/core/tx"
	"dukapos/internal/core/types"
	"dukapos/internal/domain/catalogs/product"
	"dukapos/internal/domain/catalogs/supplier"
	"dukapos/internal/domain/documents/expense"
	"dukapos/internal/domain/pricing"
	"dukapos/pkg/logger"
)

// DefaultCategory is used when the caller does not classify the expense.
const DefaultCategory = "inventory"

// SupplierResolver finds or creates a supplier for a vendor string.
// Satisfied by supplier.Service; called inside the restock transaction.
type SupplierResolver interface {
	ResolveByName(ctx context.Context, name string) (*supplier.Supplier, error)
}

var _ SupplierResolver = (*supplier.Service)(nil)

// Line is one product being restocked.
type Line struct {
	ProductID id.ID       `json:"productId"`
	Quantity  int         `json:"quantity"`
	UnitCost  types.Money `json:"unitCost"`
}

// Input describes a restock request.
type Input struct {
	Lines         []Line    `json:"lines"`
	Vendor        string    `json:"vendor"`
	PaymentMethod string    `json:"paymentMethod"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	ExpenseDate   time.Time `json:"expenseDate,omitempty"`
}

// Result reports what one committed restock produced.
type Result struct {
	ExpenseID         id.ID          `json:"expenseId"`
	SupplierID        id.ID          `json:"supplierId"`
	SupplierName      string         `json:"supplierName"`
	Status            expense.Status `json:"status"`
	TotalCost         types.Money    `json:"totalCost"`
	UpdatedProductIDs []id.ID        `json:"updatedProductIds"`
}

// Service is the restock coordinator.
type Service struct {
	products  product.Repository
	suppliers SupplierResolver
	expenses  expense.Repository
	prices    pricing.Repository
	txManager tx.Manager
}

func NewService(
	products product.Repository,
	suppliers SupplierResolver,
	expenses expense.Repository,
	prices pricing.Repository,
	txManager tx.Manager,
) *Service {
	return &Service{
		products:  products,
		suppliers: suppliers,
		expenses:  expenses,
		prices:    prices,
		txManager: txManager,
	}
}

// Restock executes a restock as one transaction. Either every effect
// commits (expense, supplier, price records, stock increments) or none
// does; a failure writing any price record aborts the stock updates
// with it. Validation happens before the transaction opens, so invalid
// input never touches storage.
func (s *Service) Restock(ctx context.Context, in Input) (*Result, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	result := &Result{}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Resolve every product before writing anything: an unknown
		// product aborts the whole restock, not just its line.
		loaded := make([]*product.Product, len(in.Lines))
		for i, line := range in.Lines {
			p, err := s.products.GetByID(ctx, line.ProductID)
			if err != nil {
				if apperror.IsNotFound(err) {
					return apperror.NewNotFound("product", line.ProductID.String()).
						WithDetail("lineNo", i+1)
				}
				return fmt.Errorf("load product %s: %w", line.ProductID, err)
			}
			loaded[i] = p
		}

		sup, err := s.suppliers.ResolveByName(ctx, in.Vendor)
		if err != nil {
			return err
		}

		exp := expense.New(s.description(in), s.category(in), in.PaymentMethod)
		exp.Vendor = sup.Name
		exp.Notes = in.Notes
		exp.CreatedBy = appctx.UserID(ctx)
		if !in.ExpenseDate.IsZero() {
			exp.Date = in.ExpenseDate
		}
		for i, line := range in.Lines {
			exp.AddLine(line.ProductID, loaded[i].Name, line.Quantity, line.UnitCost)
		}
		if err := exp.Validate(ctx); err != nil {
			return err
		}

		if err := s.expenses.Create(ctx, exp); err != nil {
			return fmt.Errorf("create expense: %w", err)
		}
		if err := s.expenses.SaveLines(ctx, exp.ID, exp.Lines); err != nil {
			return fmt.Errorf("save expense lines: %w", err)
		}

		for _, line := range in.Lines {
			// Zero-cost lines (samples, promotions) still move stock
			// but leave no price history.
			if line.UnitCost.IsPositive() {
				rec := pricing.NewRecord(line.ProductID, sup.ID, line.UnitCost, line.Quantity, exp.Date)
				rec.ExpenseID = &exp.ID
				rec.Notes = in.Notes
				if err := s.prices.Create(ctx, rec); err != nil {
					return apperror.NewTransactionAborted(
						fmt.Errorf("create price record for product %s: %w", line.ProductID, err))
				}
			}

			if err := s.products.ApplyRestock(ctx, line.ProductID, line.Quantity, line.UnitCost, sup.ID); err != nil {
				return fmt.Errorf("apply restock to product %s: %w", line.ProductID, err)
			}
		}

		result.ExpenseID = exp.ID
		result.SupplierID = sup.ID
		result.SupplierName = sup.Name
		result.Status = exp.Status
		result.TotalCost = exp.Amount
		result.UpdatedProductIDs = make([]id.ID, 0, len(in.Lines))
		for _, line := range in.Lines {
			result.UpdatedProductIDs = append(result.UpdatedProductIDs, line.ProductID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "restock committed",
		"expense_id", result.ExpenseID,
		"supplier_id", result.SupplierID,
		"status", result.Status,
		"products", len(result.UpdatedProductIDs),
		"total", result.TotalCost)

	return result, nil
}

func (s *Service) validate(in Input) error {
	if len(in.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	if in.Vendor == "" {
		return apperror.NewValidation("vendor is required").
			WithDetail("field", "vendor")
	}
	if in.PaymentMethod == "" {
		return apperror.NewValidation("payment method is required").
			WithDetail("field", "paymentMethod")
	}
	for i, line := range in.Lines {
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

func (s *Service) description(in Input) string {
	if in.Description != "" {
		return in.Description
	}
	return fmt.Sprintf("Restock: %d item(s) from %s", len(in.Lines), in.Vendor)
}

func (s *Service) category(in Input) string {
	if in.Category != "" {
		return in.Category
	}
	return DefaultCategory
}
