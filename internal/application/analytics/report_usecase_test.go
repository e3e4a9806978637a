package analytics_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-system/internal/application/analytics"
	"github.com/jhoicas/inventory-system/internal/application/dto"
	appinventory "github.com/jhoicas/inventory-system/internal/application/inventory"
	"github.com/jhoicas/inventory-system/internal/application/usecase"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/inventory"
	"github.com/jhoicas/inventory-system/internal/domain/report"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
	"github.com/jhoicas/inventory-system/internal/infrastructure/bolt"
	"github.com/jhoicas/inventory-system/internal/infrastructure/cache"
)

type env struct {
	store   *bolt.Store
	reports *analytics.ReportUseCase
	ledger  *appinventory.RegisterMovementUseCase
	inv     appinventory.ReportInvalidator
}

func newEnv(t *testing.T, withCache bool) *env {
	t.Helper()
	store, err := bolt.Open(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	policy := inventory.NewStockPolicy(2)
	deps := analytics.Deps{
		Products:   store.Products(),
		Categories: store.Categories(),
		Suppliers:  store.Suppliers(),
		Customers:  store.Customers(),
		Movements:  store.Movements(),
		Sales:      store.Sales(),
		Policy:     policy,
	}
	var inv appinventory.ReportInvalidator
	if withCache {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		rc := cache.NewReportCache(client, time.Minute, nil)
		deps.Cache, inv = rc, rc
	}
	return &env{
		store:   store,
		reports: analytics.NewReportUseCase(deps),
		ledger:  appinventory.NewRegisterMovementUseCase(store.TxRunner(), policy, inv, nil),
		inv:     inv,
	}
}

func (e *env) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, e.store.Categories().Create(ctx, &entity.Category{ID: "c1", Name: "Herramientas", CreatedAt: now}))
	products := []*entity.Product{
		{ID: "p1", SKU: "MART", Name: "Martillo", CategoryID: "c1", CostPrice: decimal.NewFromInt(10), SellingPrice: decimal.NewFromInt(20), CurrentStock: 10, MinStock: 5},
		{ID: "p2", SKU: "CLAV", Name: "Clavos", CategoryID: "borrada", CostPrice: decimal.NewFromInt(1), SellingPrice: decimal.NewFromInt(2), CurrentStock: 0, MinStock: 100},
	}
	for _, p := range products {
		p.CreatedAt, p.UpdatedAt = now, now
		require.NoError(t, e.store.Products().Create(ctx, p))
	}
	sale := &entity.Sale{
		ID: "s1", InvoiceNumber: "INV-1", SaleDate: now, PaymentStatus: entity.PaymentStatusPending,
		TotalAmount: decimal.NewFromInt(44), CreatedAt: now, UpdatedAt: now,
		Items: []entity.SaleItem{{ID: "i1", SaleID: "s1", ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(20), LineTotal: decimal.NewFromInt(40)}},
	}
	require.NoError(t, e.store.Sales().Create(ctx, sale))
}

func TestReports_FoldStoreData(t *testing.T) {
	e := newEnv(t, false)
	e.seed(t)
	ctx := context.Background()

	dash, err := e.reports.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, dash.TotalProducts)
	assert.Equal(t, 1, dash.LowStockProducts)
	assert.Equal(t, 1, dash.OutOfStockProducts)
	assert.Equal(t, 10, dash.TotalStockUnits)
	assert.True(t, decimal.NewFromInt(100).Equal(dash.TotalStockValue))
	assert.Equal(t, 1, dash.TotalCategories)
	assert.True(t, decimal.NewFromInt(44).Equal(dash.PendingPayments))

	cats, err := e.reports.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Herramientas", cats[0].CategoryName)
	assert.Equal(t, report.UnknownLabel, cats[1].CategoryName, "referencia colgante va a Unknown")

	low, err := e.reports.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, 200, low[0].ReorderQty)

	profit, err := e.reports.Profit(ctx, report.Period{})
	require.NoError(t, err)
	require.Len(t, profit.Products, 1)
	assert.True(t, decimal.NewFromInt(20).Equal(profit.TotalProfit))

	top, err := e.reports.TopProducts(ctx, report.Period{}, 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 2, top[0].QuantitySold)

	days, err := e.reports.SalesByDay(ctx, report.Period{})
	require.NoError(t, err)
	require.Len(t, days, 1)

	out, err := e.reports.Outstanding(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, "Walk-in", out.Sales[0].CustomerName)

	future := report.Period{From: time.Now().Add(48 * time.Hour)}
	empty, err := e.reports.Profit(ctx, future)
	require.NoError(t, err)
	assert.Empty(t, empty.Products)
}

func TestReports_CacheInvalidatedByLedgerWrite(t *testing.T) {
	e := newEnv(t, true)
	e.seed(t)
	ctx := context.Background()

	first, err := e.reports.InventoryValue(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(first.TotalValue))

	// escritura directa al repo: no pasa por el libro, la caché sigue vigente
	require.NoError(t, e.store.Products().UpdateStock(ctx, "p1", 20))
	cachedRep, err := e.reports.InventoryValue(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(cachedRep.TotalValue), "sale de la caché")

	_, err = e.ledger.RegisterMovement(ctx, appinventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeIncoming, Quantity: 5})
	require.NoError(t, err)
	fresh, err := e.reports.InventoryValue(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(250).Equal(fresh.TotalValue), "el movimiento invalida la caché")
}

func TestReports_CacheInvalidatedByCatalogWrites(t *testing.T) {
	e := newEnv(t, true)
	e.seed(t)
	ctx := context.Background()
	categories := usecase.NewCategoryUseCase(e.store.Categories(), e.inv)
	customers := usecase.NewCustomerUseCase(e.store.Customers(), e.inv)

	before, err := e.reports.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, before, 2)
	assert.Equal(t, "Herramientas", before[0].CategoryName)

	_, err = categories.Update(ctx, "c1", dto.CategoryRequest{Name: "Ferretería"})
	require.NoError(t, err)
	renamed, err := e.reports.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, renamed, 2)
	assert.Equal(t, "Ferretería", renamed[0].CategoryName, "el renombre invalida la caché")

	require.NoError(t, categories.Delete(ctx, "c1"))
	deleted, err := e.reports.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 1, "ambos productos quedan sin categoría")
	assert.Equal(t, report.UnknownLabel, deleted[0].CategoryName)
	assert.Equal(t, 2, deleted[0].ProductCount)

	dash, err := e.reports.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, dash.TotalCategories)

	_, err = customers.Create(ctx, dto.CustomerRequest{Name: "Ana"})
	require.NoError(t, err)
	dash, err = e.reports.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.TotalCustomers, "alta de cliente invalida la caché")
}

func TestReports_MovementLines(t *testing.T) {
	e := newEnv(t, false)
	e.seed(t)
	ctx := context.Background()

	_, err := e.ledger.RegisterMovement(ctx, appinventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeOutgoing, Quantity: 1})
	require.NoError(t, err)

	lines, err := e.reports.MovementLines(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Martillo", lines[0].ProductName)
	assert.Equal(t, "MART", lines[0].SKU)
}
