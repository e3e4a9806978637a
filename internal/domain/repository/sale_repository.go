package repository

import (
	"context"

	"github.com/jhoicas/inventory-system/internal/domain/entity"
)

// SaleRepository puerto de persistencia de ventas con sus líneas.
// Create y Delete operan sobre cabecera y líneas juntas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*entity.Sale, error)
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
	UpdatePayment(ctx context.Context, id, status, method string) error
	Delete(ctx context.Context, id string) error
}
