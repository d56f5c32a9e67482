package purchases

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
	"retailcore/internal/domain/ledger"
)

type fakeProductRepo struct {
	products map[id.ID]*product.Product
}

func newFakeProductRepo(products ...*product.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[id.ID]*product.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(_ context.Context, p *product.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("Product", productID)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*product.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("Product", sku)
}

func (r *fakeProductRepo) List(_ context.Context) ([]product.Product, error) {
	out := make([]product.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *product.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, productID id.ID) error {
	delete(r.products, productID)
	return nil
}

func (r *fakeProductRepo) Exists(_ context.Context, productID id.ID) (bool, error) {
	_, ok := r.products[productID]
	return ok, nil
}

// fakeProductRepo doubles as the ledger repository in tests.
func (r *fakeProductRepo) GetForUpdate(ctx context.Context, productID id.ID) (*product.Product, error) {
	return r.GetByID(ctx, productID)
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, productID id.ID, stock int) error {
	p, ok := r.products[productID]
	if !ok {
		return apperror.NewNotFound("Product", productID)
	}
	p.Stock = stock
	return nil
}

type fakeSupplierRepo struct {
	suppliers map[id.ID]*supplier.Supplier
}

func newFakeSupplierRepo(suppliers ...*supplier.Supplier) *fakeSupplierRepo {
	repo := &fakeSupplierRepo{suppliers: make(map[id.ID]*supplier.Supplier)}
	for _, s := range suppliers {
		repo.suppliers[s.ID] = s
	}
	return repo
}

func (r *fakeSupplierRepo) Create(_ context.Context, s *supplier.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *fakeSupplierRepo) GetByID(_ context.Context, supplierID id.ID) (*supplier.Supplier, error) {
	s, ok := r.suppliers[supplierID]
	if !ok {
		return nil, apperror.NewNotFound("Supplier", supplierID)
	}
	return s, nil
}

func (r *fakeSupplierRepo) List(_ context.Context) ([]supplier.Supplier, error) {
	return nil, nil
}

func (r *fakeSupplierRepo) Update(_ context.Context, s *supplier.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *fakeSupplierRepo) Delete(_ context.Context, supplierID id.ID) error {
	delete(r.suppliers, supplierID)
	return nil
}

type fakeOrderRepo struct {
	orders map[id.ID]*PurchaseOrder
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[id.ID]*PurchaseOrder)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *PurchaseOrder) error {
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, orderID id.ID) (*PurchaseOrder, error) {
	order, ok := r.orders[orderID]
	if !ok {
		return nil, apperror.NewNotFound("Purchase order", orderID)
	}
	cp := *order
	return &cp, nil
}

func (r *fakeOrderRepo) GetForUpdate(ctx context.Context, orderID id.ID) (*PurchaseOrder, error) {
	return r.FindByID(ctx, orderID)
}

func (r *fakeOrderRepo) FindAll(_ context.Context) ([]PurchaseOrder, error) {
	out := make([]PurchaseOrder, 0, len(r.orders))
	for _, order := range r.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, order *PurchaseOrder) error {
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testSupplier(name string) *supplier.Supplier {
	return &supplier.Supplier{ID: id.New(), Name: name}
}

func testProduct(name, sku, price string, stock int) *product.Product {
	return &product.Product{
		ID:    id.New(),
		Name:  name,
		SKU:   sku,
		Price: types.MustMoney(price),
		Stock: stock,
	}
}

func newTestService(sup *supplier.Supplier, products ...*product.Product) (*Service, *fakeProductRepo, *fakeOrderRepo) {
	productRepo := newFakeProductRepo(products...)
	orderRepo := newFakeOrderRepo()
	svc := NewService(
		orderRepo,
		newFakeSupplierRepo(sup),
		productRepo,
		ledger.NewService(productRepo),
		passthroughTxManager{},
		nil,
	)
	return svc, productRepo, orderRepo
}

func TestCreate_PendingOrderDoesNotTouchStock(t *testing.T) {
	sup := testSupplier("Acme Wholesale")
	chair := testProduct("Office Chair", "CHR-1", "120.00", 50)
	svc, productRepo, _ := newTestService(sup, chair)

	order, err := svc.Create(context.Background(), CreateOrderInput{
		SupplierID: sup.ID,
		Lines:      []Line{{ProductID: chair.ID, Quantity: 10, UnitPrice: types.MustMoney("80.00")}},
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, order.Status)
	assert.Nil(t, order.ReceivedDate)
	assert.True(t, order.TotalAmount.Equal(types.MustMoney("800.00")))
	assert.Equal(t, 50, productRepo.products[chair.ID].Stock)
}

func TestCreate_UnknownSupplierOrProduct(t *testing.T) {
	sup := testSupplier("Acme Wholesale")
	chair := testProduct("Office Chair", "CHR-1", "120.00", 50)
	svc, _, _ := newTestService(sup, chair)

	_, err := svc.Create(context.Background(), CreateOrderInput{
		SupplierID: id.New(),
		Lines:      []Line{{ProductID: chair.ID, Quantity: 1, UnitPrice: types.MustMoney("80.00")}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Contains(t, err.Error(), "Supplier with ID")

	_, err = svc.Create(context.Background(), CreateOrderInput{
		SupplierID: sup.ID,
		Lines:      []Line{{ProductID: id.New(), Quantity: 1, UnitPrice: types.MustMoney("80.00")}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Contains(t, err.Error(), "Product with ID")
}

func TestReceive_AddsStockOnce(t *testing.T) {
	sup := testSupplier("Acme Wholesale")
	chair := testProduct("Office Chair", "CHR-1", "120.00", 50)
	svc, productRepo, _ := newTestService(sup, chair)

	order, err := svc.Create(context.Background(), CreateOrderInput{
		SupplierID: sup.ID,
		Lines:      []Line{{ProductID: chair.ID, Quantity: 10, UnitPrice: types.MustMoney("80.00")}},
	})
	require.NoError(t, err)

	received, err := svc.Receive(context.Background(), order.ID, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, StatusReceived, received.Status)
	require.NotNil(t, received.ReceivedDate)
	assert.WithinDuration(t, time.Now().UTC(), *received.ReceivedDate, 5*time.Second)
	assert.Equal(t, 60, productRepo.products[chair.ID].Stock)

	// A second receive must fail and must not add stock again.
	_, err = svc.Receive(context.Background(), order.ID, time.Time{})
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidStateTransition(err))
	assert.Contains(t, err.Error(), "Purchase order has already been received")
	assert.Equal(t, 60, productRepo.products[chair.ID].Stock)
}

func TestReceive_ProductDeletedAfterOrdering(t *testing.T) {
	sup := testSupplier("Acme Wholesale")
	chair := testProduct("Office Chair", "CHR-1", "120.00", 50)
	desk := testProduct("Standing Desk", "DSK-1", "340.00", 20)
	svc, productRepo, _ := newTestService(sup, chair, desk)

	order, err := svc.Create(context.Background(), CreateOrderInput{
		SupplierID: sup.ID,
		Lines: []Line{
			{ProductID: chair.ID, Quantity: 10, UnitPrice: types.MustMoney("80.00")},
			{ProductID: desk.ID, Quantity: 5, UnitPrice: types.MustMoney("250.00")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, productRepo.Delete(context.Background(), chair.ID))

	_, err = svc.Receive(context.Background(), order.ID, time.Time{})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Contains(t, err.Error(), "Product with ID "+chair.ID.String()+" not found")

	got, err := svc.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)
	assert.Nil(t, got.ReceivedDate)
	assert.Equal(t, 20, productRepo.products[desk.ID].Stock)
}

func TestReceive_CancelledOrder(t *testing.T) {
	sup := testSupplier("Acme Wholesale")
	chair := testProduct("Office Chair", "CHR-1", "120.00", 50)
	svc, productRepo, _ := newTestService(sup, chair)

	order, err := svc.Create(context.Background(), CreateOrderInput{
		SupplierID: sup.ID,
		Lines:      []Line{{ProductID: chair.ID, Quantity: 10, UnitPrice: types.MustMoney("80.00")}},
	})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), order.ID)
	require.NoError(t, err)

	_, err = svc.Receive(context.Background(), order.ID, time.Time{})
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidStateTransition(err))
	assert.Contains(t, err.Error(), "Cannot receive a cancelled purchase order")
	assert.Equal(t, 50, productRepo.products[chair.ID].Stock)
}

func TestCancel_ReceivedOrder(t *testing.T) {
	sup := testSupplier("Acme Wholesale")
	chair := testProduct("Office Chair", "CHR-1", "120.00", 50)
	svc, _, _ := newTestService(sup, chair)

	order, err := svc.Create(context.Background(), CreateOrderInput{
		SupplierID: sup.ID,
		Lines:      []Line{{ProductID: chair.ID, Quantity: 10, UnitPrice: types.MustMoney("80.00")}},
	})
	require.NoError(t, err)

	_, err = svc.Receive(context.Background(), order.ID, time.Time{})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), order.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidStateTransition(err))
	assert.Contains(t, err.Error(), "Cannot cancel a received purchase order")

	got, err := svc.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusReceived, got.Status)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	sup := testSupplier("Acme Wholesale")
	chair := testProduct("Office Chair", "CHR-1", "120.00", 50)
	svc, _, _ := newTestService(sup, chair)

	order, err := svc.Create(context.Background(), CreateOrderInput{
		SupplierID: sup.ID,
		Lines:      []Line{{ProductID: chair.ID, Quantity: 1, UnitPrice: types.MustMoney("80.00")}},
	})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), order.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), order.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Purchase order is already cancelled")
}
