package pricing

import (
	"context"

	"dukapos/internal/core/id"
	"dukapos/internal/core/types"
	"dukapos/internal/domain/catalogs/product"
	"dukapos/pkg/logger"
)

// historyCap bounds the per-supplier recent history returned to clients.
const historyCap = 5

// Service is the read-side aggregator over price history records.
type Service struct {
	repo     Repository
	products product.Repository
}

func NewService(repo Repository, products product.Repository) *Service {
	return &Service{repo: repo, products: products}
}

// HistoryForProduct builds the per-supplier pricing view for a product.
// Suppliers are ordered by their latest restock date, newest first, and
// aggregation is computed from all records even though the returned
// history per supplier is capped.
func (s *Service) HistoryForProduct(ctx context.Context, productID id.ID) (*ProductHistory, error) {
	prod, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	history := &ProductHistory{
		ProductID:        prod.ID,
		ProductName:      prod.Name,
		CurrentSupplier:  prod.SupplierID,
		CurrentCostPrice: prod.CostPrice,
		Suppliers:        []SupplierSummary{},
	}

	// Records arrive newest first, so the first record seen for a
	// supplier is its latest and fixes the supplier ordering.
	index := make(map[id.ID]int)
	sums := make(map[id.ID]types.Money)

	for i := range records {
		rec := &records[i]
		if id.IsNil(rec.SupplierID) || rec.UnitCost.IsNegative() {
			logger.Warn(ctx, "skipping malformed price record",
				"record_id", rec.ID, "product_id", productID)
			continue
		}

		pos, seen := index[rec.SupplierID]
		if !seen {
			pos = len(history.Suppliers)
			index[rec.SupplierID] = pos
			history.Suppliers = append(history.Suppliers, SupplierSummary{
				SupplierID:        rec.SupplierID,
				SupplierName:      rec.SupplierName,
				IsCurrent:         prod.SupplierID != nil && *prod.SupplierID == rec.SupplierID,
				LatestPrice:       rec.UnitCost,
				LatestRestockDate: rec.RestockDate,
				PriceHistory:      []HistoryEntry{},
			})
		}

		sum := &history.Suppliers[pos]
		sum.TotalRestocks++
		sum.TotalQuantity += rec.QuantityRestocked
		sums[rec.SupplierID] = sums[rec.SupplierID].Add(rec.UnitCost)

		if len(sum.PriceHistory) < historyCap {
			sum.PriceHistory = append(sum.PriceHistory, HistoryEntry{
				UnitCost:    rec.UnitCost,
				Quantity:    rec.QuantityRestocked,
				TotalCost:   rec.TotalCost,
				RestockDate: rec.RestockDate,
			})
		}
	}

	for i := range history.Suppliers {
		sum := &history.Suppliers[i]
		sum.AveragePrice = sums[sum.SupplierID].
			Div(types.NewMoney(float64(sum.TotalRestocks))).
			Round(2)
	}

	history.TotalSuppliers = len(history.Suppliers)
	history.Range = priceRange(history.Suppliers)

	return history, nil
}

// LatestSupplierPrice returns the most recent unit cost paid to the
// supplier for the product, or nil if no record exists.
func (s *Service) LatestSupplierPrice(ctx context.Context, productID, supplierID id.ID) (*Record, error) {
	records, err := s.repo.ListBySupplier(ctx, productID, supplierID, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// SupplierHistory returns the recent records for a product/supplier
// pair, newest first, capped like the aggregated view.
func (s *Service) SupplierHistory(ctx context.Context, productID, supplierID id.ID) ([]Record, error) {
	return s.repo.ListBySupplier(ctx, productID, supplierID, historyCap)
}

// priceRange spans the suppliers' latest prices. No suppliers means a
// zero range, not an error.
func priceRange(suppliers []SupplierSummary) PriceRange {
	if len(suppliers) == 0 {
		return PriceRange{Min: types.ZeroMoney(), Max: types.ZeroMoney()}
	}
	r := PriceRange{Min: suppliers[0].LatestPrice, Max: suppliers[0].LatestPrice}
	for _, sum := range suppliers[1:] {
		if sum.LatestPrice.LessThan(r.Min) {
			r.Min = sum.LatestPrice
		}
		if sum.LatestPrice.GreaterThan(r.Max) {
			r.Max = sum.LatestPrice
		}
	}
	return r
}
