package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-system/internal/application/dto"
	"github.com/jhoicas/inventory-system/internal/application/usecase"
	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/inventory"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
	"github.com/jhoicas/inventory-system/internal/infrastructure/bolt"
)

func newStore(t *testing.T) *bolt.Store {
	t.Helper()
	store, err := bolt.Open(filepath.Join(t.TempDir(), "usecase.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func intPtr(v int) *int { return &v }

func newProductUseCase(store *bolt.Store) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(
		store.Products(), store.Categories(), store.Suppliers(),
		store.TxRunner(), inventory.NewStockPolicy(2), nil,
	)
}

// ── Productos ─────────────────────────────────────────────────────────────────

func TestProductCreate_WritesOpeningMovement(t *testing.T) {
	store := newStore(t)
	uc := newProductUseCase(store)
	ctx := context.Background()

	p, err := uc.Create(ctx, "admin", dto.ProductRequest{
		SKU:           "SKU-1",
		Name:          "Tornillo",
		CostPrice:     decimal.NewFromInt(2),
		SellingPrice:  decimal.NewFromInt(3),
		StockQuantity: intPtr(12),
		MinStockLevel: intPtr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, 12, p.CurrentStock, "alias stock_quantity")
	assert.Equal(t, 4, p.MinStock, "alias min_stock_level")
	assert.Equal(t, inventory.StatusInStock, p.StockStatus)
	assert.True(t, decimal.NewFromInt(24).Equal(p.StockValue))

	movs, err := store.Movements().List(ctx, repository.MovementFilter{ProductID: p.ID})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeInitial, movs[0].Type)
	assert.Equal(t, 0, movs[0].PreviousStock)
	assert.Equal(t, 12, movs[0].NewStock)
	assert.Equal(t, "admin", movs[0].UserID)
}

func TestProductCreate_ZeroStockHasNoMovement(t *testing.T) {
	store := newStore(t)
	uc := newProductUseCase(store)
	ctx := context.Background()

	p, err := uc.Create(ctx, "admin", dto.ProductRequest{SKU: "SKU-0", Name: "Vacío"})
	require.NoError(t, err)
	assert.Equal(t, inventory.StatusOutOfStock, p.StockStatus)

	movs, err := store.Movements().List(ctx, repository.MovementFilter{ProductID: p.ID})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestProductCreate_Rejections(t *testing.T) {
	store := newStore(t)
	uc := newProductUseCase(store)
	ctx := context.Background()

	_, err := uc.Create(ctx, "", dto.ProductRequest{SKU: "DUP", Name: "Uno"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, "", dto.ProductRequest{SKU: "dup", Name: "Dos"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate), "SKU único sin distinguir mayúsculas")

	_, err = uc.Create(ctx, "", dto.ProductRequest{SKU: "NEG", Name: "Neg", CostPrice: decimal.NewFromInt(-1)})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Create(ctx, "", dto.ProductRequest{SKU: "NEG2", Name: "Neg", CurrentStock: intPtr(-3)})
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))

	_, err = uc.Create(ctx, "", dto.ProductRequest{SKU: "CAT", Name: "Cat", CategoryID: "no-existe"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProductUpdate_IgnoresStock(t *testing.T) {
	store := newStore(t)
	uc := newProductUseCase(store)
	ctx := context.Background()

	p, err := uc.Create(ctx, "", dto.ProductRequest{SKU: "U1", Name: "Original", CurrentStock: intPtr(5)})
	require.NoError(t, err)

	got, err := uc.Update(ctx, p.ID, dto.ProductRequest{SKU: "U1", Name: "Renombrado", CurrentStock: intPtr(500)})
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", got.Name)
	assert.Equal(t, 5, got.CurrentStock, "el stock solo cambia por movimientos")

	_, err = uc.Update(ctx, "no-existe", dto.ProductRequest{SKU: "X", Name: "X"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProductListAndDelete(t *testing.T) {
	store := newStore(t)
	uc := newProductUseCase(store)
	ctx := context.Background()

	_, err := uc.Create(ctx, "", dto.ProductRequest{SKU: "L1", Name: "Bajo", CurrentStock: intPtr(1), MinStock: intPtr(5), Barcode: "779000"})
	require.NoError(t, err)
	ok, err := uc.Create(ctx, "", dto.ProductRequest{SKU: "L2", Name: "Normal", CurrentStock: intPtr(50), MinStock: intPtr(5)})
	require.NoError(t, err)

	low, err := uc.List(ctx, dto.ProductListRequest{LowStock: true})
	require.NoError(t, err)
	require.Len(t, low.Items, 1)
	assert.Equal(t, "L1", low.Items[0].SKU)
	assert.Equal(t, 20, low.Page.Limit)

	byCode, err := uc.GetByBarcode(ctx, "779000")
	require.NoError(t, err)
	assert.Equal(t, "L1", byCode.SKU)
	_, err = uc.GetByBarcode(ctx, "000")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, uc.Delete(ctx, ok.ID))
	_, err = uc.GetByID(ctx, ok.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, errors.Is(uc.Delete(ctx, ok.ID), domain.ErrNotFound))
}

// ── Catálogos ─────────────────────────────────────────────────────────────────

func TestCategoryUseCase(t *testing.T) {
	store := newStore(t)
	uc := usecase.NewCategoryUseCase(store.Categories(), nil)
	ctx := context.Background()

	c, err := uc.Create(ctx, dto.CategoryRequest{Name: " Ferretería "})
	require.NoError(t, err)
	assert.Equal(t, "Ferretería", c.Name)

	_, err = uc.Create(ctx, dto.CategoryRequest{Name: "ferretería"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	other, err := uc.Create(ctx, dto.CategoryRequest{Name: "Pinturas"})
	require.NoError(t, err)
	_, err = uc.Update(ctx, other.ID, dto.CategoryRequest{Name: "Ferretería"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate), "renombrar a un nombre usado")

	updated, err := uc.Update(ctx, c.ID, dto.CategoryRequest{Name: "Herramientas", Description: "manuales"})
	require.NoError(t, err)
	assert.Equal(t, "manuales", updated.Description)
	assert.Equal(t, c.CreatedAt.Unix(), updated.CreatedAt.Unix())

	list, err := uc.List(ctx, dto.ListRequest{Search: "herr"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	require.NoError(t, uc.Delete(ctx, c.ID))
	_, err = uc.GetByID(ctx, c.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSupplierUseCase(t *testing.T) {
	store := newStore(t)
	uc := usecase.NewSupplierUseCase(store.Suppliers(), nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.SupplierRequest{Name: "  "})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	s, err := uc.Create(ctx, dto.SupplierRequest{Name: "Acme", ContactPerson: "Ana"})
	require.NoError(t, err)

	got, err := uc.Update(ctx, s.ID, dto.SupplierRequest{Name: "Acme SA", Phone: "555"})
	require.NoError(t, err)
	assert.Equal(t, "Acme SA", got.Name)
	assert.Empty(t, got.ContactPerson, "PUT reemplaza todos los campos")

	_, err = uc.Update(ctx, "no-existe", dto.SupplierRequest{Name: "X"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCustomerUseCase(t *testing.T) {
	store := newStore(t)
	uc := usecase.NewCustomerUseCase(store.Customers(), nil)
	ctx := context.Background()

	c, err := uc.Create(ctx, dto.CustomerRequest{Name: "Cliente"})
	require.NoError(t, err)
	assert.Equal(t, entity.CustomerTypeRetail, c.CustomerType)
	assert.True(t, c.IsActive)

	_, err = uc.Create(ctx, dto.CustomerRequest{Name: "Otro", CustomerType: "vip"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Create(ctx, dto.CustomerRequest{Name: "Otro", CreditLimit: decimal.NewFromInt(-5)})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	inactive := false
	got, err := uc.Update(ctx, c.ID, dto.CustomerRequest{Name: "Cliente", CustomerType: entity.CustomerTypeWholesale, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, entity.CustomerTypeWholesale, got.CustomerType)
	assert.False(t, got.IsActive)
}

// ── Usuarios / empresa ────────────────────────────────────────────────────────

func TestUserUseCase(t *testing.T) {
	store := newStore(t)
	uc := usecase.NewUserUseCase(store.Users()).WithHashCost(bcrypt.MinCost)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.UserRequest{Email: "a@b.com", Name: "A", Role: entity.RoleUser})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "password requerido al crear")

	u, err := uc.Create(ctx, dto.UserRequest{Email: "A@B.com ", Password: "secreto123", Name: "A", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", u.Email)

	_, err = uc.Create(ctx, dto.UserRequest{Email: "a@b.com", Password: "secreto123", Name: "B", Role: entity.RoleUser})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	okPass, err := uc.VerifyPassword(ctx, "a@b.com", "secreto123")
	require.NoError(t, err)
	assert.True(t, okPass)

	_, err = uc.Update(ctx, u.ID, dto.UserRequest{Email: "a@b.com", Name: "A2", Role: entity.RoleManager})
	require.NoError(t, err)
	okPass, err = uc.VerifyPassword(ctx, "a@b.com", "secreto123")
	require.NoError(t, err)
	assert.True(t, okPass, "password vacío conserva el hash")

	_, err = uc.Update(ctx, u.ID, dto.UserRequest{Email: "a@b.com", Password: "nuevo-secreto", Name: "A2", Role: entity.RoleManager})
	require.NoError(t, err)
	okPass, err = uc.VerifyPassword(ctx, "a@b.com", "secreto123")
	require.NoError(t, err)
	assert.False(t, okPass)

	stored, err := store.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotContains(t, stored.PasswordHash, "nuevo-secreto")

	_, err = uc.Update(ctx, u.ID, dto.UserRequest{Email: "a@b.com", Name: "A2", Role: "root"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSettingsUseCase(t *testing.T) {
	store := newStore(t)
	uc := usecase.NewSettingsUseCase(store.Settings())
	ctx := context.Background()

	empty, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.CompanyName)

	_, err = uc.Update(ctx, dto.SettingsRequest{CompanyName: ""})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Update(ctx, dto.SettingsRequest{CompanyName: "Ferretería Central", TaxNumber: "900-1"})
	require.NoError(t, err)
	got, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ferretería Central", got.CompanyName)
	assert.Equal(t, "900-1", got.TaxNumber)
}
