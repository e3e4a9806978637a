package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-system/internal/application/dto"
	appinventory "github.com/jhoicas/inventory-system/internal/application/inventory"
	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/inventory"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo cambia vía movimientos;
// el stock de apertura se registra como movimiento initial en la misma tx del alta.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	txRunner     appinventory.TxRunner
	policy       inventory.StockPolicy
	invalidator  appinventory.ReportInvalidator
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	txRunner appinventory.TxRunner,
	policy inventory.StockPolicy,
	invalidator appinventory.ReportInvalidator,
) *ProductUseCase {
	if invalidator == nil {
		invalidator = appinventory.NoopInvalidator
	}
	return &ProductUseCase{
		repo:         repo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		txRunner:     txRunner,
		policy:       policy,
		invalidator:  invalidator,
	}
}

// Create crea un producto con su stock de apertura.
func (uc *ProductUseCase) Create(ctx context.Context, actorID string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	in.Normalize()
	if err := uc.validate(ctx, in); err != nil {
		return nil, err
	}
	if existing, err := uc.repo.GetBySKU(ctx, in.SKU); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("sku %s: %w", in.SKU, domain.ErrDuplicate)
	}

	now := time.Now().UTC()
	product := &entity.Product{ID: uuid.New().String(), IsActive: true, CreatedAt: now}
	applyProductRequest(product, in, now)
	if in.CurrentStock != nil {
		product.CurrentStock = *in.CurrentStock
	}

	err := uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if product.CurrentStock == 0 {
			return nil
		}
		return movRepo.Create(ctx, &entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     product.ID,
			Type:          entity.MovementTypeInitial,
			Quantity:      product.CurrentStock,
			PreviousStock: 0,
			NewStock:      product.CurrentStock,
			Reason:        "opening stock",
			UserID:        actorID,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx)
	out := dto.ProductFrom(product, uc.policy)
	return &out, nil
}

// GetByID obtiene un producto por ID o ErrNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	return uc.found(uc.repo.GetByID(ctx, id))
}

// GetByBarcode obtiene un producto por código de barras o ErrNotFound.
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	return uc.found(uc.repo.GetByBarcode(ctx, barcode))
}

func (uc *ProductUseCase) found(p *entity.Product, err error) (*dto.ProductResponse, error) {
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ProductFrom(p, uc.policy)
	return &out, nil
}

// Update reemplaza los campos editables. current_stock del request se ignora.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	in.Normalize()
	if err := uc.validate(ctx, in); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	applyProductRequest(product, in, time.Now().UTC())
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx)
	return uc.GetByID(ctx, id)
}

// List lista productos filtrados con paginación.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ListResponse[dto.ProductResponse], error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		ListParams:   repository.ListParams{Search: in.Search, Limit: in.Limit, Offset: in.Offset},
		CategoryID:   in.CategoryID,
		SupplierID:   in.SupplierID,
		LowStockOnly: in.LowStock,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ProductFrom(p, uc.policy))
	}
	return &dto.ListResponse[dto.ProductResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Delete elimina un producto por ID. Sus movimientos quedan en el libro.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidator.Invalidate(ctx)
	return nil
}

func (uc *ProductUseCase) validate(ctx context.Context, in dto.ProductRequest) error {
	if strings.TrimSpace(in.SKU) == "" || strings.TrimSpace(in.Name) == "" {
		return domain.ErrInvalidInput
	}
	if in.CostPrice.IsNegative() || in.SellingPrice.IsNegative() {
		return fmt.Errorf("precios negativos: %w", domain.ErrInvalidInput)
	}
	if (in.CurrentStock != nil && *in.CurrentStock < 0) || (in.MinStock != nil && *in.MinStock < 0) {
		return domain.ErrInvalidQuantity
	}
	if in.CategoryID != "" {
		c, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("categoría %s: %w", in.CategoryID, domain.ErrNotFound)
		}
	}
	if in.SupplierID != "" {
		s, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("proveedor %s: %w", in.SupplierID, domain.ErrNotFound)
		}
	}
	return nil
}

func applyProductRequest(p *entity.Product, in dto.ProductRequest, now time.Time) {
	p.SKU = strings.TrimSpace(in.SKU)
	p.Barcode = strings.TrimSpace(in.Barcode)
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.CategoryID = in.CategoryID
	p.SupplierID = in.SupplierID
	p.CostPrice = in.CostPrice
	p.SellingPrice = in.SellingPrice
	if in.MinStock != nil {
		p.MinStock = *in.MinStock
	}
	p.Location = in.Location
	p.Manufacturer = in.Manufacturer
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	p.UpdatedAt = now
}
