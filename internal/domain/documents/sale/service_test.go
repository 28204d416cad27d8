package sale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"dukapos/internal/core/apperror"
	appctx "dukapos/internal/core/context"
	"dukapos/internal/core/id"
	"dukapos/internal/core/sequence"
	"dukapos/internal/core/tx"
	"dukapos/internal/core/types"
	"dukapos/internal/domain"
	"dukapos/internal/domain/catalogs/product"
)

type memSaleRepo struct {
	sales map[id.ID]*Sale
	lines map[id.ID][]Line

	createErr error
}

func newMemSaleRepo() *memSaleRepo {
	return &memSaleRepo{
		sales: map[id.ID]*Sale{},
		lines: map[id.ID][]Line{},
	}
}

func (r *memSaleRepo) Create(ctx context.Context, s *Sale) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.sales[s.ID] = s
	return nil
}

func (r *memSaleRepo) GetByID(ctx context.Context, saleID id.ID) (*Sale, error) {
	s, ok := r.sales[saleID]
	if !ok {
		return nil, apperror.NewNotFound("sale", saleID.String())
	}
	return s, nil
}

func (r *memSaleRepo) GetByNumber(ctx context.Context, number string) (*Sale, error) {
	for _, s := range r.sales {
		if s.Number == number {
			return s, nil
		}
	}
	return nil, apperror.NewNotFound("sale", number)
}

func (r *memSaleRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	for _, s := range r.sales {
		if s.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *memSaleRepo) GetLines(ctx context.Context, saleID id.ID) ([]Line, error) {
	return r.lines[saleID], nil
}

func (r *memSaleRepo) SaveLines(ctx context.Context, saleID id.ID, lines []Line) error {
	r.lines[saleID] = lines
	return nil
}

func (r *memSaleRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Sale], error) {
	items := make([]*Sale, 0, len(r.sales))
	for _, s := range r.sales {
		items = append(items, s)
	}
	return domain.ListResult[*Sale]{Items: items, TotalCount: len(items)}, nil
}

type stockTracker struct {
	memProductStock map[id.ID]int
	deductCalls     int
	deductErr       error
}

func (r *stockTracker) DeductStock(ctx context.Context, productID id.ID, quantity int) error {
	if r.deductErr != nil {
		return r.deductErr
	}
	r.deductCalls++
	have := r.memProductStock[productID]
	if have < quantity {
		return apperror.NewBusinessRule("INSUFFICIENT_STOCK", "insufficient stock")
	}
	r.memProductStock[productID] = have - quantity
	return nil
}

// productRepoStub satisfies product.Repository; only DeductStock matters
// for sale tests.
type productRepoStub struct {
	stock *stockTracker
}

func (r *productRepoStub) Create(ctx context.Context, p *product.Product) error { return nil }

func (r *productRepoStub) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	return nil, apperror.NewNotFound("product", productID.String())
}

func (r *productRepoStub) Update(ctx context.Context, p *product.Product) error { return nil }

func (r *productRepoStub) Delete(ctx context.Context, productID id.ID) error { return nil }

func (r *productRepoStub) List(ctx context.Context, filter product.ListFilter) (domain.ListResult[*product.Product], error) {
	return domain.ListResult[*product.Product]{}, nil
}

func (r *productRepoStub) ApplyRestock(ctx context.Context, productID id.ID, quantity int, unitCost types.Money, supplierID id.ID) error {
	return nil
}

func (r *productRepoStub) DeductStock(ctx context.Context, productID id.ID, quantity int) error {
	return r.stock.DeductStock(ctx, productID, quantity)
}

func newService(repo *memSaleRepo, stock *stockTracker) (*Service, *tx.MockManager) {
	txm := &tx.MockManager{}
	svc := NewService(repo, &productRepoStub{stock: stock}, &sequence.MockNumberGenerator{}, txm)
	return svc, txm
}

func saleWithLine(quantity int) *Sale {
	doc := New("cash")
	doc.AddLine(id.New(), "Sugar 1kg", quantity, types.NewMoney(120))
	return doc
}

func TestCreate_MintsNumberAndDeductsStock(t *testing.T) {
	repo := newMemSaleRepo()
	productID := id.New()
	stock := &stockTracker{memProductStock: map[id.ID]int{productID: 10}}
	svc, _ := newService(repo, stock)

	doc := New("cash")
	doc.AddLine(productID, "Sugar 1kg", 3, types.NewMoney(120))

	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{UserID: "u1", Role: appctx.RoleSales})
	require.NoError(t, svc.Create(ctx, doc))

	require.Equal(t, "SALE-000001", doc.Number)
	require.Equal(t, "u1", doc.CreatedBy)
	require.Equal(t, 7, stock.memProductStock[productID])
	require.True(t, doc.TotalAmount.Equal(types.NewMoney(360)))

	stored, err := svc.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Len(t, stored.Lines, 1)
	require.Equal(t, doc.Number, stored.Number)
}

func TestCreate_NumbersAreSequential(t *testing.T) {
	repo := newMemSaleRepo()
	stock := &stockTracker{memProductStock: map[id.ID]int{}}
	svc, _ := newService(repo, stock)

	var numbers []string
	for i := 0; i < 3; i++ {
		doc := saleWithLine(1)
		stock.memProductStock[doc.Lines[0].ProductID] = 5
		require.NoError(t, svc.Create(context.Background(), doc))
		numbers = append(numbers, doc.Number)
	}

	require.Equal(t, []string{"SALE-000001", "SALE-000002", "SALE-000003"}, numbers)
}

func TestCreate_KeepsProvidedNumber(t *testing.T) {
	repo := newMemSaleRepo()
	productID := id.New()
	stock := &stockTracker{memProductStock: map[id.ID]int{productID: 5}}
	svc, _ := newService(repo, stock)

	doc := New("cash")
	doc.AddLine(productID, "Sugar 1kg", 1, types.NewMoney(120))
	doc.Number = "SALE-999999"

	require.NoError(t, svc.Create(context.Background(), doc))
	require.Equal(t, "SALE-999999", doc.Number)
}

func TestCreate_ValidationRejectsEmptySale(t *testing.T) {
	repo := newMemSaleRepo()
	stock := &stockTracker{memProductStock: map[id.ID]int{}}
	svc, txm := newService(repo, stock)

	err := svc.Create(context.Background(), New("cash"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperror.CodeValidation, appErr.Code)
	require.Zero(t, txm.Calls)
}

func TestCreate_InsufficientStockFailsSale(t *testing.T) {
	repo := newMemSaleRepo()
	productID := id.New()
	stock := &stockTracker{memProductStock: map[id.ID]int{productID: 1}}
	svc, _ := newService(repo, stock)

	doc := New("mobile_money")
	doc.AddLine(productID, "Sugar 1kg", 5, types.NewMoney(120))

	err := svc.Create(context.Background(), doc)
	require.Error(t, err)
	require.Empty(t, repo.sales)
}

func TestCreate_ExhaustedNumberRetriesSurface(t *testing.T) {
	repo := newMemSaleRepo()
	productID := id.New()
	stock := &stockTracker{memProductStock: map[id.ID]int{productID: 5}}

	txm := &tx.MockManager{}
	gen := &sequence.MockNumberGenerator{
		GenerateFunc: func(ctx context.Context, prefix string, width int, exists sequence.ExistsFunc) (string, error) {
			return "", apperror.NewExhaustedRetries(prefix, 10)
		},
	}
	svc := NewService(repo, &productRepoStub{stock: stock}, gen, txm)

	doc := New("cash")
	doc.AddLine(productID, "Sugar 1kg", 1, types.NewMoney(120))

	err := svc.Create(context.Background(), doc)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperror.CodeExhaustedRetries, appErr.Code)
	require.Zero(t, txm.Calls)
}
