package repository

import (
	"context"

	"github.com/jhoicas/inventory-system/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer (ventas).
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, params ListParams) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
}
