package inventory

import (
	"context"

	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/inventory"
	"github.com/jhoicas/inventory-system/internal/domain/report"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura sobre el libro de movimientos.
type MovementQueryUseCase struct {
	movRepo repository.StockMovementRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(movRepo repository.StockMovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo}
}

// Get devuelve un movimiento o ErrNotFound.
func (uc *MovementQueryUseCase) Get(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// List devuelve los movimientos filtrados, más recientes primero.
func (uc *MovementQueryUseCase) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	if filter.Type != "" && !entity.ValidMovementType(filter.Type) {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.List(ctx, filter)
}

// AlertsUseCase genera la lista de productos en stock bajo con la cantidad sugerida de reposición.
type AlertsUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	policy       inventory.StockPolicy
}

// NewAlertsUseCase construye el caso de uso de alertas.
func NewAlertsUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	policy inventory.StockPolicy,
) *AlertsUseCase {
	return &AlertsUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		policy:       policy,
	}
}

// LowStock devuelve los productos con current_stock <= min_stock, agotados primero.
func (uc *AlertsUseCase) LowStock(ctx context.Context) ([]report.LowStockItem, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{LowStockOnly: true})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []report.LowStockItem{}, nil
	}
	categories, err := uc.categoryRepo.List(ctx, repository.ListParams{})
	if err != nil {
		return nil, err
	}
	suppliers, err := uc.supplierRepo.List(ctx, repository.ListParams{})
	if err != nil {
		return nil, err
	}
	return report.LowStock(products, report.CategoryNames(categories), report.SupplierNames(suppliers), uc.policy), nil
}
