package sales

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
	"retailcore/internal/core/types"
	"retailcore/internal/domain/catalogs/product"
	"retailcore/internal/domain/ledger"
)

type fakeLedgerRepo struct {
	products map[id.ID]*product.Product
	locks    []id.ID
}

func newFakeLedgerRepo(products ...*product.Product) *fakeLedgerRepo {
	repo := &fakeLedgerRepo{products: make(map[id.ID]*product.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeLedgerRepo) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("Product", productID)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeLedgerRepo) GetForUpdate(ctx context.Context, productID id.ID) (*product.Product, error) {
	r.locks = append(r.locks, productID)
	return r.GetByID(ctx, productID)
}

func (r *fakeLedgerRepo) UpdateStock(_ context.Context, productID id.ID, stock int) error {
	p, ok := r.products[productID]
	if !ok {
		return apperror.NewNotFound("Product", productID)
	}
	p.Stock = stock
	return nil
}

func (r *fakeLedgerRepo) snapshot() map[id.ID]int {
	stocks := make(map[id.ID]int, len(r.products))
	for pid, p := range r.products {
		stocks[pid] = p.Stock
	}
	return stocks
}

func (r *fakeLedgerRepo) restore(stocks map[id.ID]int) {
	for pid, stock := range stocks {
		r.products[pid].Stock = stock
	}
}

type fakeSaleRepo struct {
	sales []*Sale
}

func (r *fakeSaleRepo) Create(_ context.Context, sale *Sale) error {
	r.sales = append(r.sales, sale)
	return nil
}

func (r *fakeSaleRepo) FindByID(_ context.Context, saleID id.ID) (*Sale, error) {
	for _, s := range r.sales {
		if s.ID == saleID {
			return s, nil
		}
	}
	return nil, apperror.NewNotFound("Sale", saleID)
}

func (r *fakeSaleRepo) FindAll(_ context.Context) ([]Sale, error) {
	out := make([]Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, nil
}

// fakeTxManager mimics rollback by restoring stock levels and the sale
// list when the callback returns an error.
type fakeTxManager struct {
	ledger *fakeLedgerRepo
	sales  *fakeSaleRepo
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	stocks := m.ledger.snapshot()
	saleCount := len(m.sales.sales)
	if err := fn(ctx); err != nil {
		m.ledger.restore(stocks)
		m.sales.sales = m.sales.sales[:saleCount]
		return err
	}
	return nil
}

func (m *fakeTxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(products ...*product.Product) (*Service, *fakeLedgerRepo, *fakeSaleRepo) {
	ledgerRepo := newFakeLedgerRepo(products...)
	saleRepo := &fakeSaleRepo{}
	txm := &fakeTxManager{ledger: ledgerRepo, sales: saleRepo}
	svc := NewService(saleRepo, ledger.NewService(ledgerRepo), txm, nil)
	return svc, ledgerRepo, saleRepo
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

func TestCreateSale_CapturesPriceAndDecrementsStock(t *testing.T) {
	laptop := testProduct("Laptop", "LAP-1", "999.99", 50)
	svc, ledgerRepo, saleRepo := newTestService(laptop)

	sale, err := svc.CreateSale(context.Background(), CreateSaleInput{
		CustomerName:  "Jane Doe",
		CustomerPhone: "+1234567890",
		Lines:         []Line{{ProductID: laptop.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	require.Len(t, sale.Items, 1)
	item := sale.Items[0]
	assert.True(t, item.UnitPrice.Equal(types.MustMoney("999.99")))
	assert.True(t, item.Subtotal.Equal(types.MustMoney("1999.98")))
	assert.True(t, sale.TotalAmount.Equal(types.MustMoney("1999.98")))
	assert.Equal(t, 48, ledgerRepo.products[laptop.ID].Stock)
	assert.Len(t, saleRepo.sales, 1)
}

func TestCreateSale_InsufficientStock(t *testing.T) {
	mouse := testProduct("Mouse", "MOU-1", "19.99", 3)
	svc, ledgerRepo, saleRepo := newTestService(mouse)

	_, err := svc.CreateSale(context.Background(), CreateSaleInput{
		CustomerName:  "Jane Doe",
		CustomerPhone: "+1234567890",
		Lines:         []Line{{ProductID: mouse.ID, Quantity: 5}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Contains(t, err.Error(), "Insufficient stock for product Mouse. Available: 3, Requested: 5")

	assert.Equal(t, 3, ledgerRepo.products[mouse.ID].Stock)
	assert.Empty(t, saleRepo.sales)
}

func TestCreateSale_MultiLineFailureRollsBackEverything(t *testing.T) {
	keyboard := testProduct("Keyboard", "KEY-1", "49.99", 5)
	webcam := testProduct("Webcam", "CAM-1", "89.99", 0)
	svc, ledgerRepo, saleRepo := newTestService(keyboard, webcam)

	_, err := svc.CreateSale(context.Background(), CreateSaleInput{
		CustomerName:  "Jane Doe",
		CustomerPhone: "+1234567890",
		Lines:         []Line{
			{ProductID: keyboard.ID, Quantity: 2},
			{ProductID: webcam.ID, Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	assert.Equal(t, 5, ledgerRepo.products[keyboard.ID].Stock)
	assert.Equal(t, 0, ledgerRepo.products[webcam.ID].Stock)
	assert.Empty(t, saleRepo.sales)
}

func TestCreateSale_DuplicateLinesValidateAgainstRemainingStock(t *testing.T) {
	monitor := testProduct("Monitor", "MON-1", "299.00", 50)
	svc, ledgerRepo, _ := newTestService(monitor)

	_, err := svc.CreateSale(context.Background(), CreateSaleInput{
		CustomerName:  "Jane Doe",
		CustomerPhone: "+1234567890",
		Lines:         []Line{
			{ProductID: monitor.ID, Quantity: 30},
			{ProductID: monitor.ID, Quantity: 30},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available: 20, Requested: 30")
	assert.Equal(t, 50, ledgerRepo.products[monitor.ID].Stock)
}

func TestCreateSale_LocksProductsInByteOrder(t *testing.T) {
	first := testProduct("Desk", "DSK-1", "150.00", 10)
	second := testProduct("Lamp", "LMP-1", "35.00", 10)
	if bytes.Compare(second.ID[:], first.ID[:]) < 0 {
		first, second = second, first
	}
	svc, ledgerRepo, _ := newTestService(first, second)

	// Lines listed against the lock order on purpose.
	_, err := svc.CreateSale(context.Background(), CreateSaleInput{
		CustomerName:  "Jane Doe",
		CustomerPhone: "+1234567890",
		Lines:         []Line{
			{ProductID: second.ID, Quantity: 1},
			{ProductID: first.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(ledgerRepo.locks), 2)
	assert.Equal(t, first.ID, ledgerRepo.locks[0])
	assert.Equal(t, second.ID, ledgerRepo.locks[1])
}

func TestCreateSale_UnknownProduct(t *testing.T) {
	svc, _, _ := newTestService()

	missing := id.New()
	_, err := svc.CreateSale(context.Background(), CreateSaleInput{
		CustomerName:  "Jane Doe",
		CustomerPhone: "+1234567890",
		Lines:         []Line{{ProductID: missing, Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Contains(t, err.Error(), "Product with ID "+missing.String()+" not found")
}

func TestCreateSale_InputValidation(t *testing.T) {
	laptop := testProduct("Laptop", "LAP-1", "999.99", 50)
	svc, _, _ := newTestService(laptop)

	_, err := svc.CreateSale(context.Background(), CreateSaleInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer_name is required")

	_, err = svc.CreateSale(context.Background(), CreateSaleInput{
		CustomerName:  "Jane Doe",
		CustomerPhone: "+1234567890",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one item")

	_, err = svc.CreateSale(context.Background(), CreateSaleInput{
		CustomerName:  "Jane Doe",
		CustomerPhone: "+1234567890",
		Lines:         []Line{{ProductID: laptop.ID, Quantity: 0}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity must be at least 1")
}
