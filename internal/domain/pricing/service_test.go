package pricing

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dukapos/internal/core/apperror"
	"dukapos/internal/core/id"
	"dukapos/internal/core/types"
	"dukapos/internal/domain"
	"dukapos/internal/domain/catalogs/product"
)

type memPriceRepo struct {
	records []Record
}

func (r *memPriceRepo) Create(ctx context.Context, rec *Record) error {
	r.records = append(r.records, *rec)
	return nil
}

func (r *memPriceRepo) ListByProduct(ctx context.Context, productID id.ID) ([]Record, error) {
	var out []Record
	for _, rec := range r.records {
		if rec.ProductID == productID {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RestockDate.After(out[j].RestockDate)
	})
	return out, nil
}

func (r *memPriceRepo) ListBySupplier(ctx context.Context, productID, supplierID id.ID, limit int) ([]Record, error) {
	all, _ := r.ListByProduct(ctx, productID)
	var out []Record
	for _, rec := range all {
		if rec.SupplierID == supplierID {
			out = append(out, rec)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type memProductRepo struct {
	products map[id.ID]*product.Product
}

func (r *memProductRepo) Create(ctx context.Context, p *product.Product) error { return nil }

func (r *memProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return p, nil
}

func (r *memProductRepo) Update(ctx context.Context, p *product.Product) error { return nil }

func (r *memProductRepo) Delete(ctx context.Context, productID id.ID) error { return nil }

func (r *memProductRepo) List(ctx context.Context, filter product.ListFilter) (domain.ListResult[*product.Product], error) {
	return domain.ListResult[*product.Product]{}, nil
}

func (r *memProductRepo) ApplyRestock(ctx context.Context, productID id.ID, quantity int, unitCost types.Money, supplierID id.ID) error {
	return nil
}

func (r *memProductRepo) DeductStock(ctx context.Context, productID id.ID, quantity int) error {
	return nil
}

func day(n int) time.Time {
	return time.Date(2026, time.March, n, 0, 0, 0, 0, time.UTC)
}

func record(productID, supplierID id.ID, name, cost string, qty, dayNo int) Record {
	unitCost := types.MustMoney(cost)
	return Record{
		ProductID:         productID,
		SupplierID:        supplierID,
		SupplierName:      name,
		UnitCost:          unitCost,
		QuantityRestocked: qty,
		TotalCost:         unitCost.Mul(types.NewMoney(float64(qty))),
		RestockDate:       day(dayNo),
	}
}

func newAggregator(prod *product.Product, records ...Record) *Service {
	products := &memProductRepo{products: map[id.ID]*product.Product{prod.ID: prod}}
	repo := &memPriceRepo{records: records}
	return NewService(repo, products)
}

func TestHistoryForProduct_Aggregation(t *testing.T) {
	prod := product.New("Maize Flour 2kg", "staples")
	supA, supB := id.New(), id.New()
	prod.SupplierID = &supA

	svc := newAggregator(prod,
		record(prod.ID, supA, "Alpha Mills", "100", 10, 1),
		record(prod.ID, supA, "Alpha Mills", "120", 5, 3),
		record(prod.ID, supB, "Bravo Traders", "95.50", 8, 2),
	)

	h, err := svc.HistoryForProduct(context.Background(), prod.ID)
	require.NoError(t, err)

	require.Equal(t, prod.ID, h.ProductID)
	require.Equal(t, 2, h.TotalSuppliers)
	require.Len(t, h.Suppliers, 2)

	// Newest restock first: Alpha's day-3 record precedes Bravo's day-2.
	alpha, bravo := h.Suppliers[0], h.Suppliers[1]
	require.Equal(t, supA, alpha.SupplierID)
	require.Equal(t, supB, bravo.SupplierID)

	require.True(t, alpha.IsCurrent)
	require.True(t, alpha.LatestPrice.Equal(types.MustMoney("120")))
	require.Equal(t, day(3), alpha.LatestRestockDate)
	require.True(t, alpha.AveragePrice.Equal(types.MustMoney("110")))
	require.Equal(t, 2, alpha.TotalRestocks)
	require.Equal(t, 15, alpha.TotalQuantity)
	require.Len(t, alpha.PriceHistory, 2)
	require.True(t, alpha.PriceHistory[0].UnitCost.Equal(types.MustMoney("120")))

	require.False(t, bravo.IsCurrent)
	require.True(t, bravo.LatestPrice.Equal(types.MustMoney("95.50")))
	require.Equal(t, 1, bravo.TotalRestocks)

	require.True(t, h.Range.Min.Equal(types.MustMoney("95.50")))
	require.True(t, h.Range.Max.Equal(types.MustMoney("120")))
}

func TestHistoryForProduct_AverageRoundsToTwoPlaces(t *testing.T) {
	prod := product.New("Tea Bags", "beverages")
	sup := id.New()

	svc := newAggregator(prod,
		record(prod.ID, sup, "Highland Tea", "10", 1, 1),
		record(prod.ID, sup, "Highland Tea", "10", 1, 2),
		record(prod.ID, sup, "Highland Tea", "11", 1, 3),
	)

	h, err := svc.HistoryForProduct(context.Background(), prod.ID)
	require.NoError(t, err)

	// (10+10+11)/3 = 10.333... -> 10.33
	require.True(t, h.Suppliers[0].AveragePrice.Equal(types.MustMoney("10.33")),
		"got %s", h.Suppliers[0].AveragePrice)
}

func TestHistoryForProduct_HistoryCappedAtFive(t *testing.T) {
	prod := product.New("Matches", "household")
	sup := id.New()

	records := make([]Record, 0, 8)
	for i := 1; i <= 8; i++ {
		records = append(records, record(prod.ID, sup, "Fireside", "5", 2, i))
	}
	svc := newAggregator(prod, records...)

	h, err := svc.HistoryForProduct(context.Background(), prod.ID)
	require.NoError(t, err)

	sum := h.Suppliers[0]
	require.Len(t, sum.PriceHistory, 5)
	// Aggregates still cover every record, not just the visible window.
	require.Equal(t, 8, sum.TotalRestocks)
	require.Equal(t, 16, sum.TotalQuantity)
	require.Equal(t, day(8), sum.PriceHistory[0].RestockDate)
	require.Equal(t, day(4), sum.PriceHistory[4].RestockDate)
}

func TestHistoryForProduct_NoRecords(t *testing.T) {
	prod := product.New("New Product", "misc")
	svc := newAggregator(prod)

	h, err := svc.HistoryForProduct(context.Background(), prod.ID)
	require.NoError(t, err)

	require.Zero(t, h.TotalSuppliers)
	require.Empty(t, h.Suppliers)
	require.True(t, h.Range.Min.IsZero())
	require.True(t, h.Range.Max.IsZero())
}

func TestHistoryForProduct_SkipsMalformedRecords(t *testing.T) {
	prod := product.New("Candles", "household")
	sup := id.New()

	bad := record(prod.ID, id.Nil(), "", "20", 1, 5)
	svc := newAggregator(prod,
		record(prod.ID, sup, "Waxworks", "18", 3, 1),
		bad,
	)

	h, err := svc.HistoryForProduct(context.Background(), prod.ID)
	require.NoError(t, err)

	require.Equal(t, 1, h.TotalSuppliers)
	require.Equal(t, sup, h.Suppliers[0].SupplierID)
}

func TestHistoryForProduct_UnknownProduct(t *testing.T) {
	prod := product.New("Known", "misc")
	svc := newAggregator(prod)

	_, err := svc.HistoryForProduct(context.Background(), id.New())
	require.True(t, apperror.IsNotFound(err))
}

func TestLatestSupplierPrice(t *testing.T) {
	prod := product.New("Salt 1kg", "staples")
	sup := id.New()

	svc := newAggregator(prod,
		record(prod.ID, sup, "Coast Salt", "30", 10, 1),
		record(prod.ID, sup, "Coast Salt", "32", 10, 4),
	)

	rec, err := svc.LatestSupplierPrice(context.Background(), prod.ID, sup)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.True(t, rec.UnitCost.Equal(types.MustMoney("32")))

	none, err := svc.LatestSupplierPrice(context.Background(), prod.ID, id.New())
	require.NoError(t, err)
	require.Nil(t, none)
}
