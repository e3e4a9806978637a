package sales_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-system/internal/application/inventory"
	"github.com/jhoicas/inventory-system/internal/application/sales"
	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	domaininv "github.com/jhoicas/inventory-system/internal/domain/inventory"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
	"github.com/jhoicas/inventory-system/internal/infrastructure/bolt"
)

type fakeReceipt struct {
	lines   []sales.ReceiptLine
	company *entity.CompanySettings
}

func (f *fakeReceipt) GenerateReceipt(
	_ context.Context,
	_ *entity.Sale,
	lines []sales.ReceiptLine,
	_ *entity.Customer,
	company *entity.CompanySettings,
) ([]byte, error) {
	f.lines, f.company = lines, company
	return []byte("%PDF-fake"), nil
}

type fixture struct {
	store *bolt.Store
	uc    *sales.SaleUseCase
	gen   *fakeReceipt
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := bolt.Open(filepath.Join(t.TempDir(), "sales.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	gen := &fakeReceipt{}
	ledger := inventory.NewRegisterMovementUseCase(store.TxRunner(), domaininv.NewStockPolicy(2), nil, nil)
	uc := sales.NewSaleUseCase(sales.Deps{
		TxRunner:     store.TxRunner(),
		Ledger:       ledger,
		SaleRepo:     store.Sales(),
		ProductRepo:  store.Products(),
		CustomerRepo: store.Customers(),
		SettingsRepo: store.Settings(),
		Generator:    gen,
		TaxRate:      decimal.NewFromInt(10),
	})
	return &fixture{store: store, uc: uc, gen: gen}
}

func (f *fixture) product(t *testing.T, sku string, stock int, price int64) *entity.Product {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{
		ID:           "p-" + sku,
		SKU:          sku,
		Name:         "Producto " + sku,
		CostPrice:    decimal.NewFromInt(price / 2),
		SellingPrice: decimal.NewFromInt(price),
		CurrentStock: stock,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, f.store.Products().Create(context.Background(), p))
	return p
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func (f *fixture) movements(t *testing.T) []*entity.StockMovement {
	t.Helper()
	list, err := f.store.Movements().List(context.Background(), repository.MovementFilter{})
	require.NoError(t, err)
	return list
}

// ── Create ────────────────────────────────────────────────────────────────────

func TestSaleCreate_DeductsStockAndComputesTotals(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "A", 10, 100)
	b := f.product(t, "B", 5, 40)

	sale, err := f.uc.Create(context.Background(), "vendedor-1", sales.CreateSaleInput{
		InvoiceNumber: "INV-001",
		Items: []sales.CreateSaleItem{
			{ProductID: a.ID, Quantity: 2, DiscountPercentage: decimal.NewFromInt(10)},
			{ProductID: b.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPending, sale.PaymentStatus)
	assert.Equal(t, "vendedor-1", sale.SalespersonID)
	assert.True(t, decimal.NewFromInt(250).Equal(sale.Subtotal), "subtotal %s", sale.Subtotal)
	assert.True(t, decimal.NewFromInt(20).Equal(sale.DiscountAmount), "descuento %s", sale.DiscountAmount)
	assert.True(t, decimal.NewFromInt(23).Equal(sale.TaxAmount), "impuesto %s", sale.TaxAmount)
	assert.True(t, decimal.NewFromInt(253).Equal(sale.TotalAmount), "total %s", sale.TotalAmount)

	assert.Equal(t, 8, f.stock(t, a.ID))
	assert.Equal(t, 4, f.stock(t, b.ID))

	movs := f.movements(t)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeOutgoing, m.Type)
		assert.Equal(t, "INV-001", m.Reference)
		assert.Equal(t, sales.ReasonSale, m.Reason)
	}

	got, err := f.uc.Get(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
}

func TestSaleCreate_InsufficientStockRollsBackEverything(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "A", 10, 100)
	b := f.product(t, "B", 1, 40)

	_, err := f.uc.Create(context.Background(), "u", sales.CreateSaleInput{
		InvoiceNumber: "INV-002",
		Items: []sales.CreateSaleItem{
			{ProductID: a.ID, Quantity: 3},
			{ProductID: b.ID, Quantity: 2},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	assert.Equal(t, 10, f.stock(t, a.ID), "la primera línea también se deshace")
	assert.Equal(t, 1, f.stock(t, b.ID))
	assert.Empty(t, f.movements(t))

	s, err := f.store.Sales().GetByInvoiceNumber(context.Background(), "INV-002")
	require.NoError(t, err)
	assert.Nil(t, s, "la venta no se guarda")
}

func TestSaleCreate_Validation(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "A", 10, 100)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, "u", sales.CreateSaleInput{InvoiceNumber: "X"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "sin líneas")

	_, err = f.uc.Create(ctx, "u", sales.CreateSaleInput{
		InvoiceNumber: "X", Items: []sales.CreateSaleItem{{ProductID: a.ID, Quantity: 0}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))

	_, err = f.uc.Create(ctx, "u", sales.CreateSaleInput{
		InvoiceNumber: "X", PaymentStatus: "refunded", Items: []sales.CreateSaleItem{{ProductID: a.ID, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.uc.Create(ctx, "u", sales.CreateSaleInput{
		InvoiceNumber: "X", CustomerID: "no-existe", Items: []sales.CreateSaleItem{{ProductID: a.ID, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.uc.Create(ctx, "u", sales.CreateSaleInput{
		InvoiceNumber: "X", Items: []sales.CreateSaleItem{{ProductID: "no-existe", Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.Equal(t, 10, f.stock(t, a.ID))
}

func TestSaleCreate_DuplicateInvoice(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "A", 10, 100)
	in := sales.CreateSaleInput{InvoiceNumber: "INV-DUP", Items: []sales.CreateSaleItem{{ProductID: a.ID, Quantity: 1}}}

	_, err := f.uc.Create(context.Background(), "u", in)
	require.NoError(t, err)
	_, err = f.uc.Create(context.Background(), "u", in)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	assert.Equal(t, 9, f.stock(t, a.ID))
}

// ── Delete / pago ─────────────────────────────────────────────────────────────

func TestSaleDelete_RestoresStock(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "A", 10, 100)
	b := f.product(t, "B", 5, 40)
	ctx := context.Background()

	sale, err := f.uc.Create(ctx, "u", sales.CreateSaleInput{
		InvoiceNumber: "INV-003",
		Items: []sales.CreateSaleItem{
			{ProductID: a.ID, Quantity: 4},
			{ProductID: b.ID, Quantity: 5},
		},
	})
	require.NoError(t, err)
	require.NoError(t, f.store.Products().Delete(ctx, b.ID))

	require.NoError(t, f.uc.Delete(ctx, "u", sale.ID))
	assert.Equal(t, 10, f.stock(t, a.ID))

	incoming, err := f.store.Movements().List(ctx, repository.MovementFilter{Type: entity.MovementTypeIncoming})
	require.NoError(t, err)
	require.Len(t, incoming, 1, "el producto eliminado no genera movimiento")
	assert.Equal(t, sales.ReasonSaleDeleted, incoming[0].Reason)

	_, err = f.uc.Get(ctx, sale.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, errors.Is(f.uc.Delete(ctx, "u", sale.ID), domain.ErrNotFound))
}

func TestSaleUpdatePayment(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "A", 10, 100)
	ctx := context.Background()
	sale, err := f.uc.Create(ctx, "u", sales.CreateSaleInput{
		InvoiceNumber: "INV-004", Items: []sales.CreateSaleItem{{ProductID: a.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	got, err := f.uc.UpdatePayment(ctx, sale.ID, entity.PaymentStatusPaid, "cash")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, got.PaymentStatus)
	assert.Equal(t, "cash", got.PaymentMethod)

	_, err = f.uc.UpdatePayment(ctx, sale.ID, "refunded", "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = f.uc.UpdatePayment(ctx, "no-existe", entity.PaymentStatusPaid, "")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSaleReceipt(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "A", 10, 100)
	ctx := context.Background()
	require.NoError(t, f.store.Settings().Upsert(ctx, &entity.CompanySettings{CompanyName: "Tienda"}))
	sale, err := f.uc.Create(ctx, "u", sales.CreateSaleInput{
		InvoiceNumber: "INV-005", Items: []sales.CreateSaleItem{{ProductID: a.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	pdf, name, err := f.uc.Receipt(ctx, sale.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "recibo_INV-005.pdf", name)
	require.Len(t, f.gen.lines, 1)
	assert.Equal(t, "A", f.gen.lines[0].SKU)
	require.NotNil(t, f.gen.company)
	assert.Equal(t, "Tienda", f.gen.company.CompanyName)
}
