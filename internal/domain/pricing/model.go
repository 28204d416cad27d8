// Package pricing provides supplier price history: append-only records
// of what was paid per product and supplier, and the read-side
// aggregation shown in the product pricing view.
package pricing

import (
	"time"

	"dukapos/internal/core/entity"
	"dukapos/internal/core/id"
	"dukapos/internal/core/types"
)

// Record is one append-only price history entry, written when a
// restock line carries a positive unit cost and a resolved supplier.
// Never mutated or deleted by normal operation.
type Record struct {
	entity.Base

	ProductID  id.ID `db:"product_id" json:"productId"`
	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// SupplierName is populated by the repository on reads (join);
	// not a column of the price record itself.
	SupplierName string `db:"supplier_name" json:"supplierName,omitempty"`

	UnitCost          types.Money `db:"unit_cost" json:"unitCost"`
	QuantityRestocked int         `db:"quantity_restocked" json:"quantityRestocked"`

	// TotalCost = UnitCost * QuantityRestocked, fixed at write time
	TotalCost types.Money `db:"total_cost" json:"totalCost"`

	RestockDate time.Time `db:"restock_date" json:"restockDate"`

	// ExpenseID references the expense produced by the same restock
	ExpenseID *id.ID `db:"expense_id" json:"expenseId,omitempty"`

	Notes string `db:"notes" json:"notes,omitempty"`
}

// NewRecord creates a price record for a restock line.
func NewRecord(productID, supplierID id.ID, unitCost types.Money, quantity int, restockDate time.Time) *Record {
	return &Record{
		Base:              entity.NewBase(),
		ProductID:         productID,
		SupplierID:        supplierID,
		UnitCost:          unitCost,
		QuantityRestocked: quantity,
		TotalCost:         unitCost.Mul(types.NewMoney(float64(quantity))),
		RestockDate:       restockDate,
	}
}

// HistoryEntry is one row of a supplier's recent history.
type HistoryEntry struct {
	UnitCost    types.Money `json:"unitCost"`
	Quantity    int         `json:"quantity"`
	TotalCost   types.Money `json:"totalCost"`
	RestockDate time.Time   `json:"restockDate"`
}

// SupplierSummary aggregates one supplier's pricing for a product.
type SupplierSummary struct {
	SupplierID   id.ID  `json:"supplierId"`
	SupplierName string `json:"supplierName"`

	// IsCurrent marks the supplier of the product's latest restock
	IsCurrent bool `json:"isCurrent"`

	LatestPrice       types.Money `json:"latestPrice"`
	LatestRestockDate time.Time   `json:"latestRestockDate"`

	// AveragePrice is the mean unit cost, rounded to 2 decimal places
	AveragePrice types.Money `json:"averagePrice"`

	TotalRestocks int `json:"totalRestocks"`
	TotalQuantity int `json:"totalQuantity"`

	// PriceHistory holds at most the 5 most recent entries, newest first
	PriceHistory []HistoryEntry `json:"priceHistory"`
}

// PriceRange spans the suppliers' latest prices.
type PriceRange struct {
	Min types.Money `json:"min"`
	Max types.Money `json:"max"`
}

// ProductHistory is the full pricing view for one product.
type ProductHistory struct {
	ProductID        id.ID       `json:"productId"`
	ProductName      string      `json:"productName"`
	CurrentSupplier  *id.ID      `json:"currentSupplierId,omitempty"`
	CurrentCostPrice types.Money `json:"currentCostPrice"`

	Suppliers      []SupplierSummary `json:"suppliers"`
	TotalSuppliers int               `json:"totalSuppliers"`
	Range          PriceRange        `json:"priceRange"`
}
