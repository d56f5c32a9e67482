package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
	"retailcore/internal/core/types"
	"retailcore/internal/domain/catalogs/product"
	"retailcore/internal/domain/catalogs/supplier"
	"retailcore/internal/domain/inventory"
	"retailcore/internal/domain/ledger"
	"retailcore/internal/domain/purchases"
	"retailcore/internal/domain/sales"
)

type stubProductRepo struct {
	products map[id.ID]*product.Product
}

func newStubProductRepo(products ...*product.Product) *stubProductRepo {
	repo := &stubProductRepo{products: make(map[id.ID]*product.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *stubProductRepo) Create(_ context.Context, p *product.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("Product", productID)
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) GetBySKU(_ context.Context, sku string) (*product.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("Product", sku)
}

func (r *stubProductRepo) List(_ context.Context) ([]product.Product, error) {
	out := make([]product.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *product.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, productID id.ID) error {
	delete(r.products, productID)
	return nil
}

func (r *stubProductRepo) Exists(_ context.Context, productID id.ID) (bool, error) {
	_, ok := r.products[productID]
	return ok, nil
}

// stubProductRepo doubles as the ledger repository.
func (r *stubProductRepo) GetForUpdate(ctx context.Context, productID id.ID) (*product.Product, error) {
	return r.GetByID(ctx, productID)
}

func (r *stubProductRepo) UpdateStock(_ context.Context, productID id.ID, stock int) error {
	p, ok := r.products[productID]
	if !ok {
		return apperror.NewNotFound("Product", productID)
	}
	p.Stock = stock
	return nil
}

type stubSupplierRepo struct {
	suppliers map[id.ID]*supplier.Supplier
}

func newStubSupplierRepo(suppliers ...*supplier.Supplier) *stubSupplierRepo {
	repo := &stubSupplierRepo{suppliers: make(map[id.ID]*supplier.Supplier)}
	for _, s := range suppliers {
		repo.suppliers[s.ID] = s
	}
	return repo
}

func (r *stubSupplierRepo) Create(_ context.Context, s *supplier.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) GetByID(_ context.Context, supplierID id.ID) (*supplier.Supplier, error) {
	s, ok := r.suppliers[supplierID]
	if !ok {
		return nil, apperror.NewNotFound("Supplier", supplierID)
	}
	return s, nil
}

func (r *stubSupplierRepo) List(_ context.Context) ([]supplier.Supplier, error) {
	return nil, nil
}

func (r *stubSupplierRepo) Update(_ context.Context, s *supplier.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) Delete(_ context.Context, supplierID id.ID) error {
	delete(r.suppliers, supplierID)
	return nil
}

type stubSaleRepo struct {
	sales []*sales.Sale
}

func (r *stubSaleRepo) Create(_ context.Context, sale *sales.Sale) error {
	r.sales = append(r.sales, sale)
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, saleID id.ID) (*sales.Sale, error) {
	for _, s := range r.sales {
		if s.ID == saleID {
			return s, nil
		}
	}
	return nil, apperror.NewNotFound("Sale", saleID)
}

func (r *stubSaleRepo) FindAll(_ context.Context) ([]sales.Sale, error) {
	out := make([]sales.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, nil
}

type stubOrderRepo struct {
	orders map[id.ID]*purchases.PurchaseOrder
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[id.ID]*purchases.PurchaseOrder)}
}

func (r *stubOrderRepo) Create(_ context.Context, order *purchases.PurchaseOrder) error {
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, orderID id.ID) (*purchases.PurchaseOrder, error) {
	order, ok := r.orders[orderID]
	if !ok {
		return nil, apperror.NewNotFound("Purchase order", orderID)
	}
	cp := *order
	return &cp, nil
}

func (r *stubOrderRepo) GetForUpdate(ctx context.Context, orderID id.ID) (*purchases.PurchaseOrder, error) {
	return r.FindByID(ctx, orderID)
}

func (r *stubOrderRepo) FindAll(_ context.Context) ([]purchases.PurchaseOrder, error) {
	out := make([]purchases.PurchaseOrder, 0, len(r.orders))
	for _, order := range r.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, order *purchases.PurchaseOrder) error {
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

type stubAdjustmentRepo struct {
	adjustments []*inventory.Adjustment
}

func (r *stubAdjustmentRepo) Create(_ context.Context, adj *inventory.Adjustment) error {
	r.adjustments = append(r.adjustments, adj)
	return nil
}

func (r *stubAdjustmentRepo) FindByID(_ context.Context, adjustmentID id.ID) (*inventory.Adjustment, error) {
	for _, adj := range r.adjustments {
		if adj.ID == adjustmentID {
			return adj, nil
		}
	}
	return nil, apperror.NewNotFound("Inventory adjustment", adjustmentID)
}

func (r *stubAdjustmentRepo) FindAll(_ context.Context) ([]inventory.Adjustment, error) {
	out := make([]inventory.Adjustment, 0, len(r.adjustments))
	for _, adj := range r.adjustments {
		out = append(out, *adj)
	}
	return out, nil
}

func (r *stubAdjustmentRepo) FindByProduct(_ context.Context, productID id.ID) ([]inventory.Adjustment, error) {
	var out []inventory.Adjustment
	for _, adj := range r.adjustments {
		if adj.ProductID == productID {
			out = append(out, *adj)
		}
	}
	return out, nil
}

type stubTxManager struct{}

func (stubTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (stubTxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Every stock mutation flows through the ledger, so after any mix of
// receipts, sales and manual adjustments the on-hand quantity must equal
// the opening stock plus the signed sum of every recorded movement.
func TestStockEqualsSumOfAllMovements(t *testing.T) {
	const openingStock = 40
	widget := &product.Product{
		ID:    id.New(),
		Name:  "Widget",
		SKU:   "WID-1",
		Price: types.MustMoney("25.00"),
		Stock: openingStock,
	}
	sup := &supplier.Supplier{ID: id.New(), Name: "Acme Wholesale"}

	products := newStubProductRepo(widget)
	ledgerSvc := ledger.NewService(products)
	txm := stubTxManager{}

	saleRepo := &stubSaleRepo{}
	salesSvc := sales.NewService(saleRepo, ledgerSvc, txm, nil)

	orderRepo := newStubOrderRepo()
	purchaseSvc := purchases.NewService(orderRepo, newStubSupplierRepo(sup), products, ledgerSvc, txm, nil)

	adjRepo := &stubAdjustmentRepo{}
	inventorySvc := inventory.NewService(adjRepo, products, ledgerSvc, txm, nil)

	receive := func(qty int) {
		t.Helper()
		order, err := purchaseSvc.Create(context.Background(), purchases.CreateOrderInput{
			SupplierID: sup.ID,
			Lines:      []purchases.Line{{ProductID: widget.ID, Quantity: qty, UnitPrice: types.MustMoney("10.00")}},
		})
		require.NoError(t, err)
		_, err = purchaseSvc.Receive(context.Background(), order.ID, time.Time{})
		require.NoError(t, err)
	}
	sell := func(qty int) {
		t.Helper()
		_, err := salesSvc.CreateSale(context.Background(), sales.CreateSaleInput{
			CustomerName:  "Jane Doe",
			CustomerPhone: "+1234567890",
			Lines:         []sales.Line{{ProductID: widget.ID, Quantity: qty}},
		})
		require.NoError(t, err)
	}
	adjust := func(adjType inventory.AdjustmentType, qty int) {
		t.Helper()
		_, err := inventorySvc.CreateAdjustment(context.Background(), inventory.CreateAdjustmentInput{
			ProductID:      widget.ID,
			AdjustmentType: adjType,
			Quantity:       qty,
			Reason:         "cycle count",
		})
		require.NoError(t, err)
	}

	receive(25)
	sell(12)
	adjust(inventory.AdjustmentIncrease, 6)
	sell(3)
	adjust(inventory.AdjustmentDecrease, 9)
	receive(10)

	// Re-derive the expected stock from the recorded documents.
	movements := 0
	for _, order := range orderRepo.orders {
		if order.Status != purchases.StatusReceived {
			continue
		}
		for _, item := range order.Items {
			movements += item.Quantity
		}
	}
	for _, s := range saleRepo.sales {
		for _, item := range s.Items {
			movements -= item.Quantity
		}
	}
	for _, adj := range adjRepo.adjustments {
		if adj.AdjustmentType == inventory.AdjustmentIncrease {
			movements += adj.Quantity
		} else {
			movements -= adj.Quantity
		}
	}

	stock, err := ledgerSvc.GetStock(context.Background(), widget.ID)
	require.NoError(t, err)
	assert.Equal(t, openingStock+movements, stock)
	assert.Equal(t, 57, stock)
}
