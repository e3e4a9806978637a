package bolt

import (
	"context"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/inventory-system/internal/application/inventory"
	"github.com/jhoicas/inventory-system/internal/application/sales"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ sales.TxRunner     = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción de escritura de bbolt.
// Si fn devuelve error, bbolt descarta todos los cambios de la tx.
type TxRunner struct {
	db *bbolt.DB
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(tx *bbolt.Tx) error {
		sc := scope{db: r.db, tx: tx}
		return fn(&MovementRepo{sc}, &ProductRepo{sc})
	})
}

// RunSales igual que Run, agregando el repositorio de ventas (crear / anular venta).
func (r *TxRunner) RunSales(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(tx *bbolt.Tx) error {
		sc := scope{db: r.db, tx: tx}
		return fn(&MovementRepo{sc}, &ProductRepo{sc}, &SaleRepo{sc})
	})
}
