package inventory_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/inventory-system/internal/application/inventory"
	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/inventory"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
	"github.com/jhoicas/inventory-system/internal/infrastructure/bolt"
)

type countingInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (c *countingInvalidator) Invalidate(context.Context) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
}

func newStore(t *testing.T) *bolt.Store {
	t.Helper()
	store, err := bolt.Open(filepath.Join(t.TempDir(), "inventory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedProduct(t *testing.T, store *bolt.Store, sku string, stock, minStock int) *entity.Product {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{
		ID:           "p-" + sku,
		SKU:          sku,
		Name:         "Producto " + sku,
		CostPrice:    decimal.NewFromInt(10),
		SellingPrice: decimal.NewFromInt(15),
		CurrentStock: stock,
		MinStock:     minStock,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, store.Products().Create(context.Background(), p))
	return p
}

func stockOf(t *testing.T, store *bolt.Store, id string) int {
	t.Helper()
	p, err := store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func movementsOf(t *testing.T, store *bolt.Store, id string) []*entity.StockMovement {
	t.Helper()
	list, err := store.Movements().List(context.Background(), repository.MovementFilter{ProductID: id})
	require.NoError(t, err)
	return list
}

func newUseCase(store *bolt.Store, inv appinventory.ReportInvalidator) *appinventory.RegisterMovementUseCase {
	return appinventory.NewRegisterMovementUseCase(store.TxRunner(), inventory.NewStockPolicy(2), inv, nil)
}

// ── RegisterMovement ──────────────────────────────────────────────────────────

func TestRegisterMovement_Incoming(t *testing.T) {
	store := newStore(t)
	p := seedProduct(t, store, "A1", 10, 5)
	inv := &countingInvalidator{}
	uc := newUseCase(store, inv)

	res, err := uc.RegisterMovement(context.Background(), appinventory.MovementInput{
		ProductID: p.ID, Type: entity.MovementTypeIncoming, Quantity: 5, UserID: "u1", Reference: "OC-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Movement.PreviousStock)
	assert.Equal(t, 15, res.Movement.NewStock)
	assert.Equal(t, "u1", res.Movement.UserID)
	assert.False(t, res.LowStock)
	assert.Equal(t, 15, stockOf(t, store, p.ID))
	assert.Len(t, movementsOf(t, store, p.ID), 1)
	assert.Equal(t, 1, inv.calls, "se debe invalidar la caché después del commit")
}

func TestRegisterMovement_IncomingWithUnitCost(t *testing.T) {
	store := newStore(t)
	p := seedProduct(t, store, "A2", 10, 0)
	uc := newUseCase(store, nil)

	cost := decimal.NewFromInt(20)
	_, err := uc.RegisterMovement(context.Background(), appinventory.MovementInput{
		ProductID: p.ID, Type: entity.MovementTypeIncoming, Quantity: 10, UnitCost: &cost,
	})
	require.NoError(t, err)

	got, err := store.Products().GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(15).Equal(got.CostPrice), "promedio ponderado (10*10 + 10*20) / 20")
}

func TestRegisterMovement_Outgoing(t *testing.T) {
	store := newStore(t)
	p := seedProduct(t, store, "B1", 10, 5)
	uc := newUseCase(store, nil)

	res, err := uc.RegisterMovement(context.Background(), appinventory.MovementInput{
		ProductID: p.ID, Type: entity.MovementTypeOutgoing, Quantity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, res.Movement.NewStock)
	assert.Equal(t, 7, stockOf(t, store, p.ID))
}

func TestRegisterMovement_InsufficientStockWritesNothing(t *testing.T) {
	store := newStore(t)
	p := seedProduct(t, store, "B2", 4, 0)
	inv := &countingInvalidator{}
	uc := newUseCase(store, inv)

	_, err := uc.RegisterMovement(context.Background(), appinventory.MovementInput{
		ProductID: p.ID, Type: entity.MovementTypeOutgoing, Quantity: 5,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, 4, stockOf(t, store, p.ID), "el stock no cambia")
	assert.Empty(t, movementsOf(t, store, p.ID), "no se agrega entrada al libro")
	assert.Zero(t, inv.calls)
}

func TestRegisterMovement_Adjustment(t *testing.T) {
	store := newStore(t)
	p := seedProduct(t, store, "C1", 10, 5)
	uc := newUseCase(store, nil)

	res, err := uc.RegisterMovement(context.Background(), appinventory.MovementInput{
		ProductID: p.ID, Type: entity.MovementTypeAdjustment, Quantity: 0, Reason: "conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Movement.PreviousStock)
	assert.Equal(t, 0, res.Movement.NewStock)
	assert.True(t, res.LowStock)
	assert.Equal(t, 0, stockOf(t, store, p.ID))
}

func TestRegisterMovement_ValidationBeforeIO(t *testing.T) {
	store := newStore(t)
	p := seedProduct(t, store, "D1", 10, 0)
	uc := newUseCase(store, nil)
	ctx := context.Background()

	_, err := uc.RegisterMovement(ctx, appinventory.MovementInput{ProductID: p.ID, Type: entity.MovementTypeIncoming, Quantity: 0})
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))

	_, err = uc.RegisterMovement(ctx, appinventory.MovementInput{ProductID: p.ID, Type: entity.MovementTypeOutgoing, Quantity: -2})
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))

	_, err = uc.RegisterMovement(ctx, appinventory.MovementInput{ProductID: p.ID, Type: "transfer", Quantity: 1})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.RegisterMovement(ctx, appinventory.MovementInput{ProductID: p.ID, Type: entity.MovementTypeInitial, Quantity: 1})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "initial solo se genera al crear el producto")

	_, err = uc.RegisterMovement(ctx, appinventory.MovementInput{ProductID: "no-existe", Type: entity.MovementTypeIncoming, Quantity: 1})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.Equal(t, 10, stockOf(t, store, p.ID))
	assert.Empty(t, movementsOf(t, store, p.ID))
}

func TestRegisterMovement_ReplayedRequestsAreIndependent(t *testing.T) {
	store := newStore(t)
	p := seedProduct(t, store, "E1", 0, 0)
	uc := newUseCase(store, nil)
	in := appinventory.MovementInput{ProductID: p.ID, Type: entity.MovementTypeIncoming, Quantity: 2, Reference: "OC-9"}

	for i := 0; i < 3; i++ {
		_, err := uc.RegisterMovement(context.Background(), in)
		require.NoError(t, err)
	}
	assert.Equal(t, 6, stockOf(t, store, p.ID))
	assert.Len(t, movementsOf(t, store, p.ID), 3)
}

func TestRegisterMovement_ConcurrentOutgoingDrainsExactly(t *testing.T) {
	const n = 25
	store := newStore(t)
	p := seedProduct(t, store, "F1", n, 0)
	uc := newUseCase(store, nil)

	var wg sync.WaitGroup
	errs := make(chan error, n+5)
	for i := 0; i < n+5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RegisterMovement(context.Background(), appinventory.MovementInput{
				ProductID: p.ID, Type: entity.MovementTypeOutgoing, Quantity: 1,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, n, ok)
	assert.Equal(t, 5, insufficient)
	assert.Equal(t, 0, stockOf(t, store, p.ID))

	movs := movementsOf(t, store, p.ID)
	require.Len(t, movs, n)
	seen := map[int]bool{}
	for _, m := range movs {
		assert.Equal(t, m.PreviousStock-1, m.NewStock)
		assert.False(t, seen[m.NewStock], "cada entrada parte de un stock distinto")
		seen[m.NewStock] = true
	}
}

func TestRegisterMovement_LowStockScenario(t *testing.T) {
	store := newStore(t)
	p := seedProduct(t, store, "G1", 10, 5)
	uc := newUseCase(store, nil)
	ctx := context.Background()
	out := func(q int) (*appinventory.MovementResult, error) {
		return uc.RegisterMovement(ctx, appinventory.MovementInput{ProductID: p.ID, Type: entity.MovementTypeOutgoing, Quantity: q})
	}

	res, err := out(3)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Movement.NewStock)
	assert.False(t, res.LowStock)

	res, err = out(5)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Movement.NewStock)
	assert.True(t, res.LowStock)

	_, err = out(10)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, 2, stockOf(t, store, p.ID))
	assert.Len(t, movementsOf(t, store, p.ID), 2)
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func TestMovementQuery_ListAndGet(t *testing.T) {
	store := newStore(t)
	p := seedProduct(t, store, "H1", 10, 0)
	uc := newUseCase(store, nil)
	ctx := context.Background()

	_, err := uc.RegisterMovement(ctx, appinventory.MovementInput{ProductID: p.ID, Type: entity.MovementTypeIncoming, Quantity: 1})
	require.NoError(t, err)
	res, err := uc.RegisterMovement(ctx, appinventory.MovementInput{ProductID: p.ID, Type: entity.MovementTypeOutgoing, Quantity: 2})
	require.NoError(t, err)

	q := appinventory.NewMovementQueryUseCase(store.Movements())
	list, err := q.List(ctx, repository.MovementFilter{ProductID: p.ID, Type: entity.MovementTypeOutgoing})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, res.Movement.ID, list[0].ID)

	got, err := q.Get(ctx, res.Movement.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, got.NewStock)

	_, err = q.Get(ctx, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = q.List(ctx, repository.MovementFilter{Type: "transfer"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestAlerts_LowStock(t *testing.T) {
	store := newStore(t)
	seedProduct(t, store, "OK", 50, 5)
	seedProduct(t, store, "LOW", 3, 5)
	seedProduct(t, store, "OUT", 0, 5)

	alerts := appinventory.NewAlertsUseCase(store.Products(), store.Categories(), store.Suppliers(), inventory.NewStockPolicy(2))
	items, err := alerts.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "OUT", items[0].SKU, "sin stock primero")
	assert.Equal(t, "LOW", items[1].SKU)
	assert.Equal(t, 7, items[1].ReorderQty)
}
