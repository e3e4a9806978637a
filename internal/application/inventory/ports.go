package inventory

import (
	"context"

	"github.com/jhoicas/inventory-system/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza atomicidad del libro de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ReportInvalidator recibe aviso después de cada commit que cambia stock o ventas.
type ReportInvalidator interface {
	Invalidate(ctx context.Context)
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context) {}

// NoopInvalidator se usa cuando no hay caché de reportes.
var NoopInvalidator ReportInvalidator = noopInvalidator{}
