package repository

import (
	"context"

	"github.com/jhoicas/inventory-system/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	List(ctx context.Context, params ListParams) ([]*entity.Supplier, error)
	Delete(ctx context.Context, id string) error
}
