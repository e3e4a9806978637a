package sales

import (
	"context"

	"github.com/jhoicas/inventory-system/internal/application/inventory"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye repos de inventario y ventas.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// StockLedger integra ventas con el libro de stock usando los repositorios del caller (misma transacción).
// Si retorna error (ej: ErrInsufficientStock), el caller debe hacer rollback.
type StockLedger interface {
	RegisterOutgoingInTx(
		ctx context.Context,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		input inventory.MovementInput,
	) (*entity.StockMovement, error)
	RegisterIncomingInTx(
		ctx context.Context,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		input inventory.MovementInput,
	) (*entity.StockMovement, error)
}

// ReceiptLine línea de venta con los datos del producto para imprimir.
type ReceiptLine struct {
	entity.SaleItem
	SKU         string
	ProductName string
}

// ReceiptGenerator genera el recibo PDF de una venta. customer y company pueden ser nil.
type ReceiptGenerator interface {
	GenerateReceipt(
		ctx context.Context,
		sale *entity.Sale,
		lines []ReceiptLine,
		customer *entity.Customer,
		company *entity.CompanySettings,
	) ([]byte, error)
}
