package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-system/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID / GetBySKU / GetByBarcode devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueándolo hasta el fin de la transacción actual.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update reemplaza los campos editables; nunca toca current_stock.
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, productID string, newStock int) error
	UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
