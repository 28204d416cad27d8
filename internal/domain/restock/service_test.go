package restock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"dukapos/internal/core/apperror"
	"dukapos/internal/core/id"
	"dukapos/internal/core/tx"
	"dukapos/internal/core/types"
	"dukapos/internal/domain"
	"dukapos/internal/domain/catalogs/product"
	"dukapos/internal/domain/catalogs/supplier"
	"dukapos/internal/domain/documents/expense"
	"dukapos/internal/domain/pricing"
)

type memProductRepo struct {
	products map[id.ID]*product.Product

	restockErr   error
	restockCalls int
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
	if r.restockErr != nil {
		return r.restockErr
	}
	r.restockCalls++
	p := r.products[productID]
	p.StockQuantity += quantity
	p.CostPrice = unitCost
	p.SupplierID = &supplierID
	return nil
}

func (r *memProductRepo) DeductStock(ctx context.Context, productID id.ID, quantity int) error {
	return nil
}

type memResolver struct {
	suppliers  map[string]*supplier.Supplier
	resolveErr error
}

func (r *memResolver) ResolveByName(ctx context.Context, name string) (*supplier.Supplier, error) {
	if r.resolveErr != nil {
		return nil, r.resolveErr
	}
	if r.suppliers == nil {
		r.suppliers = map[string]*supplier.Supplier{}
	}
	if sup, ok := r.suppliers[name]; ok {
		return sup, nil
	}
	sup := supplier.New(name)
	r.suppliers[name] = sup
	return sup, nil
}

type memExpenseRepo struct {
	created   []*expense.Expense
	lines     map[id.ID][]expense.Line
	createErr error
}

func (r *memExpenseRepo) Create(ctx context.Context, e *expense.Expense) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, e)
	return nil
}

func (r *memExpenseRepo) GetByID(ctx context.Context, expenseID id.ID) (*expense.Expense, error) {
	return nil, apperror.NewNotFound("expense", expenseID.String())
}

func (r *memExpenseRepo) Update(ctx context.Context, e *expense.Expense) error { return nil }

func (r *memExpenseRepo) GetLines(ctx context.Context, expenseID id.ID) ([]expense.Line, error) {
	return r.lines[expenseID], nil
}

func (r *memExpenseRepo) SaveLines(ctx context.Context, expenseID id.ID, lines []expense.Line) error {
	if r.lines == nil {
		r.lines = map[id.ID][]expense.Line{}
	}
	r.lines[expenseID] = lines
	return nil
}

func (r *memExpenseRepo) List(ctx context.Context, filter expense.ListFilter) (domain.ListResult[*expense.Expense], error) {
	return domain.ListResult[*expense.Expense]{}, nil
}

type memPriceRepo struct {
	records   []*pricing.Record
	createErr error
}

func (r *memPriceRepo) Create(ctx context.Context, rec *pricing.Record) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *memPriceRepo) ListByProduct(ctx context.Context, productID id.ID) ([]pricing.Record, error) {
	return nil, nil
}

func (r *memPriceRepo) ListBySupplier(ctx context.Context, productID, supplierID id.ID, limit int) ([]pricing.Record, error) {
	return nil, nil
}

type fixture struct {
	products  *memProductRepo
	suppliers *memResolver
	expenses  *memExpenseRepo
	prices    *memPriceRepo
	txm       *tx.MockManager
	svc       *Service
}

func newFixture(products ...*product.Product) *fixture {
	f := &fixture{
		products:  &memProductRepo{products: map[id.ID]*product.Product{}},
		suppliers: &memResolver{},
		expenses:  &memExpenseRepo{},
		prices:    &memPriceRepo{},
		txm:       &tx.MockManager{},
	}
	for _, p := range products {
		f.products.products[p.ID] = p
	}
	f.svc = NewService(f.products, f.suppliers, f.expenses, f.prices, f.txm)
	return f
}

func newProduct(name string, stock int) *product.Product {
	p := product.New(name, "drinks")
	p.StockQuantity = stock
	p.SellingPrice = types.MustMoney("1500")
	return p
}

func TestRestock_SingleLine(t *testing.T) {
	p := newProduct("Soda 500ml", 10)
	f := newFixture(p)
	ctx := context.Background()

	res, err := f.svc.Restock(ctx, Input{
		Lines:         []Line{{ProductID: p.ID, Quantity: 5, UnitCost: types.MustMoney("1000")}},
		Vendor:        "Coastal Beverages",
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	require.Equal(t, 15, p.StockQuantity)
	require.True(t, p.CostPrice.Equal(types.MustMoney("1000")))
	require.NotNil(t, p.SupplierID)

	require.Equal(t, expense.StatusPaid, res.Status)
	require.True(t, res.TotalCost.Equal(types.MustMoney("5000")))
	require.Equal(t, []id.ID{p.ID}, res.UpdatedProductIDs)

	require.Len(t, f.expenses.created, 1)
	exp := f.expenses.created[0]
	require.Equal(t, "Coastal Beverages", exp.Vendor)
	require.Len(t, f.expenses.lines[exp.ID], 1)

	require.Len(t, f.prices.records, 1)
	rec := f.prices.records[0]
	require.Equal(t, p.ID, rec.ProductID)
	require.Equal(t, res.SupplierID, rec.SupplierID)
	require.Equal(t, 5, rec.QuantityRestocked)
	require.True(t, rec.TotalCost.Equal(types.MustMoney("5000")))
	require.NotNil(t, rec.ExpenseID)
	require.Equal(t, exp.ID, *rec.ExpenseID)
}

func TestRestock_StatusNotPaidOnCredit(t *testing.T) {
	p := newProduct("Rice 5kg", 0)
	f := newFixture(p)

	res, err := f.svc.Restock(context.Background(), Input{
		Lines:         []Line{{ProductID: p.ID, Quantity: 2, UnitCost: types.MustMoney("450.50")}},
		Vendor:        "Grain Wholesalers",
		PaymentMethod: "credit",
	})
	require.NoError(t, err)
	require.Equal(t, expense.StatusNotPaid, res.Status)
}

func TestRestock_MultiLineSharesSupplierAndExpense(t *testing.T) {
	p1 := newProduct("Soap Bar", 3)
	p2 := newProduct("Detergent 1kg", 7)
	f := newFixture(p1, p2)

	res, err := f.svc.Restock(context.Background(), Input{
		Lines: []Line{
			{ProductID: p1.ID, Quantity: 10, UnitCost: types.MustMoney("50")},
			{ProductID: p2.ID, Quantity: 4, UnitCost: types.MustMoney("320")},
		},
		Vendor:        "Hygiene Supplies Ltd",
		PaymentMethod: "mobile_money",
	})
	require.NoError(t, err)

	require.Equal(t, 13, p1.StockQuantity)
	require.Equal(t, 11, p2.StockQuantity)
	require.Len(t, f.expenses.created, 1)
	require.Len(t, f.prices.records, 2)
	require.Equal(t, res.SupplierID, f.prices.records[0].SupplierID)
	require.Equal(t, res.SupplierID, f.prices.records[1].SupplierID)
	require.True(t, res.TotalCost.Equal(types.MustMoney("1780")))
}

func TestRestock_ZeroCostLineSkipsPriceRecord(t *testing.T) {
	p := newProduct("Promo Sample", 0)
	f := newFixture(p)

	_, err := f.svc.Restock(context.Background(), Input{
		Lines:         []Line{{ProductID: p.ID, Quantity: 20, UnitCost: types.ZeroMoney()}},
		Vendor:        "Brand Rep",
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	require.Equal(t, 20, p.StockQuantity)
	require.Empty(t, f.prices.records)
}

func TestRestock_ValidationBeforeAnyWrite(t *testing.T) {
	p := newProduct("Sugar 1kg", 5)

	cases := []struct {
		name  string
		input Input
	}{
		{"no lines", Input{Vendor: "V", PaymentMethod: "cash"}},
		{"zero quantity", Input{
			Lines:         []Line{{ProductID: p.ID, Quantity: 0, UnitCost: types.MustMoney("10")}},
			Vendor:        "V",
			PaymentMethod: "cash",
		}},
		{"negative cost", Input{
			Lines:         []Line{{ProductID: p.ID, Quantity: 1, UnitCost: types.MustMoney("-1")}},
			Vendor:        "V",
			PaymentMethod: "cash",
		}},
		{"missing vendor", Input{
			Lines:         []Line{{ProductID: p.ID, Quantity: 1, UnitCost: types.MustMoney("10")}},
			PaymentMethod: "cash",
		}},
		{"missing payment method", Input{
			Lines:  []Line{{ProductID: p.ID, Quantity: 1, UnitCost: types.MustMoney("10")}},
			Vendor: "V",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(p)
			_, err := f.svc.Restock(context.Background(), tc.input)
			require.True(t, apperror.IsValidation(err), "want validation error, got %v", err)
			require.Zero(t, f.txm.Calls, "validation must happen before the transaction opens")
			require.Empty(t, f.expenses.created)
		})
	}
}

func TestRestock_UnknownProductAborts(t *testing.T) {
	known := newProduct("Bread", 2)
	f := newFixture(known)

	_, err := f.svc.Restock(context.Background(), Input{
		Lines: []Line{
			{ProductID: known.ID, Quantity: 1, UnitCost: types.MustMoney("60")},
			{ProductID: id.New(), Quantity: 1, UnitCost: types.MustMoney("60")},
		},
		Vendor:        "Bakery Direct",
		PaymentMethod: "cash",
	})
	require.True(t, apperror.IsNotFound(err))

	require.Empty(t, f.expenses.created)
	require.Empty(t, f.prices.records)
	require.Equal(t, 2, known.StockQuantity)
}

func TestRestock_PriceRecordFailureAbortsStockUpdate(t *testing.T) {
	p := newProduct("Cooking Oil 1L", 8)
	f := newFixture(p)
	f.prices.createErr = errors.New("price table unavailable")

	_, err := f.svc.Restock(context.Background(), Input{
		Lines:         []Line{{ProductID: p.ID, Quantity: 6, UnitCost: types.MustMoney("230")}},
		Vendor:        "Oil Importers",
		PaymentMethod: "cash",
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperror.CodeTransactionAborted, appErr.Code)

	// The stock increment for the failed line never ran.
	require.Zero(t, f.products.restockCalls)
	require.Equal(t, 8, p.StockQuantity)
}

func TestRestock_SupplierResolutionFailureAborts(t *testing.T) {
	p := newProduct("Milk 500ml", 4)
	f := newFixture(p)
	f.suppliers.resolveErr = errors.New("supplier lookup failed")

	_, err := f.svc.Restock(context.Background(), Input{
		Lines:         []Line{{ProductID: p.ID, Quantity: 3, UnitCost: types.MustMoney("55")}},
		Vendor:        "Dairy Co",
		PaymentMethod: "cash",
	})
	require.Error(t, err)
	require.Empty(t, f.expenses.created)
	require.Equal(t, 4, p.StockQuantity)
}

func TestRestock_DefaultsDescriptionAndCategory(t *testing.T) {
	p := newProduct("Batteries AA", 0)
	f := newFixture(p)

	_, err := f.svc.Restock(context.Background(), Input{
		Lines:         []Line{{ProductID: p.ID, Quantity: 12, UnitCost: types.MustMoney("35")}},
		Vendor:        "Electro Traders",
		PaymentMethod: "bank_transfer",
	})
	require.NoError(t, err)

	exp := f.expenses.created[0]
	require.Equal(t, DefaultCategory, exp.Category)
	require.Contains(t, exp.Description, "Electro Traders")
	require.Equal(t, expense.StatusNotPaid, exp.Status)
}
