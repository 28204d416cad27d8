package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"dukapos/internal/core/apperror"
	appctx "dukapos/internal/core/context"
	"dukapos/internal/core/id"
	"dukapos/internal/core/tx"
	"dukapos/internal/core/types"
	"dukapos/internal/domain"
)

type memRepo struct {
	products map[id.ID]*Product
	deleted  map[id.ID]bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		products: map[id.ID]*Product{},
		deleted:  map[id.ID]bool{},
	}
}

func (r *memRepo) Create(ctx context.Context, p *Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	p, ok := r.products[productID]
	if !ok || r.deleted[productID] {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return p, nil
}

func (r *memRepo) Update(ctx context.Context, p *Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memRepo) Delete(ctx context.Context, productID id.ID) error {
	r.deleted[productID] = true
	return nil
}

func (r *memRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Product], error) {
	items := make([]*Product, 0, len(r.products))
	for _, p := range r.products {
		if !r.deleted[p.ID] {
			items = append(items, p)
		}
	}
	return domain.ListResult[*Product]{Items: items, TotalCount: len(items)}, nil
}

func (r *memRepo) ApplyRestock(ctx context.Context, productID id.ID, quantity int, unitCost types.Money, supplierID id.ID) error {
	p := r.products[productID]
	p.StockQuantity += quantity
	p.CostPrice = unitCost
	p.SupplierID = &supplierID
	return nil
}

func (r *memRepo) DeductStock(ctx context.Context, productID id.ID, quantity int) error {
	p := r.products[productID]
	p.StockQuantity -= quantity
	return nil
}

func TestCreate_SetsCreatedBy(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &tx.MockManager{})

	p := New("Sugar 1kg", "groceries")
	p.SellingPrice = types.NewMoney(120)

	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{UserID: "u1"})
	require.NoError(t, svc.Create(ctx, p))
	require.Equal(t, "u1", p.CreatedBy)
	require.Contains(t, repo.products, p.ID)
}

func TestCreate_RejectsNegativePrice(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &tx.MockManager{})

	p := New("Sugar 1kg", "groceries")
	p.SellingPrice = types.NewMoney(-1)

	err := svc.Create(context.Background(), p)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperror.CodeValidation, appErr.Code)
	require.Empty(t, repo.products)
}

func TestDelete_UnknownProduct(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &tx.MockManager{})

	err := svc.Delete(context.Background(), id.New())
	require.True(t, apperror.IsNotFound(err))
}

func TestIsLowStock(t *testing.T) {
	p := New("Sugar 1kg", "groceries")
	p.StockQuantity = 3
	p.LowStockThreshold = 5
	require.True(t, p.IsLowStock())

	p.StockQuantity = 6
	require.False(t, p.IsLowStock())

	// Zero threshold disables the flag entirely.
	p.LowStockThreshold = 0
	p.StockQuantity = 0
	require.False(t, p.IsLowStock())
}
