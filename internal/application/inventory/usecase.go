package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/inventory"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
	"github.com/jhoicas/inventory-system/pkg/logger"
)

// RegisterMovementUseCase registra movimientos de stock de forma transaccional
// (incoming, outgoing, adjustment) con bloqueo de fila y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	policy      inventory.StockPolicy
	invalidator ReportInvalidator
	log         *logger.Logger
	now         func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. invalidator y log pueden ser nil.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	policy inventory.StockPolicy,
	invalidator ReportInvalidator,
	log *logger.Logger,
) *RegisterMovementUseCase {
	if invalidator == nil {
		invalidator = NoopInvalidator
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{
		txRunner:    txRunner,
		policy:      policy,
		invalidator: invalidator,
		log:         log,
		now:         time.Now,
	}
}

// MovementInput entrada para registrar un movimiento.
// Para incoming/outgoing Quantity es el delta; para adjustment es el stock absoluto.
// UnitCost opcional en incoming: recalcula cost_price por promedio ponderado.
type MovementInput struct {
	ProductID string
	Type      string
	Quantity  int
	UnitCost  *decimal.Decimal
	UserID    string
	Reference string
	Reason    string
	Notes     string
}

// MovementResult movimiento persistido y bandera de stock bajo evaluada sobre el nuevo stock.
type MovementResult struct {
	Movement *entity.StockMovement
	LowStock bool
}

// RegisterMovement valida la entrada antes de cualquier I/O, inicia una transacción, bloquea el
// producto (GetForUpdate), calcula el nuevo stock, agrega la entrada al libro y actualiza el stock.
// Ante ErrNotFound / ErrInsufficientStock no hay escrituras.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	if input.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := inventory.ValidateMovement(input.Type, input.Quantity); err != nil {
		return nil, err
	}
	if input.UnitCost != nil && input.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var (
		mov      *entity.StockMovement
		minStock int
	)
	err := uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		minStock = product.MinStock
		mov, err = uc.apply(ctx, movRepo, productRepo, product, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx)

	uc.log.Info().
		Str("product_id", mov.ProductID).
		Str("movement_type", mov.Type).
		Int("quantity", mov.Quantity).
		Int("previous_stock", mov.PreviousStock).
		Int("new_stock", mov.NewStock).
		Msg("movimiento de stock registrado")

	return &MovementResult{Movement: mov, LowStock: uc.policy.IsLowStock(mov.NewStock, minStock)}, nil
}

// RegisterOutgoingInTx ejecuta una salida con los repositorios de la transacción del caller
// (ventas). Bloquea el producto y devuelve ErrInsufficientStock sin escribir si no alcanza.
func (uc *RegisterMovementUseCase) RegisterOutgoingInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	input MovementInput,
) (*entity.StockMovement, error) {
	input.Type = entity.MovementTypeOutgoing
	return uc.registerInTx(ctx, movRepo, productRepo, input)
}

// RegisterIncomingInTx ejecuta una entrada con los repositorios de la transacción del caller
// (anulación de ventas).
func (uc *RegisterMovementUseCase) RegisterIncomingInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	input MovementInput,
) (*entity.StockMovement, error) {
	input.Type = entity.MovementTypeIncoming
	return uc.registerInTx(ctx, movRepo, productRepo, input)
}

func (uc *RegisterMovementUseCase) registerInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	input MovementInput,
) (*entity.StockMovement, error) {
	if err := inventory.ValidateMovement(input.Type, input.Quantity); err != nil {
		return nil, err
	}
	product, err := productRepo.GetForUpdate(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.apply(ctx, movRepo, productRepo, product, input)
}

// apply calcula el nuevo stock; si es válido guarda el movimiento y actualiza el producto.
// product debe venir bloqueado por la transacción actual.
func (uc *RegisterMovementUseCase) apply(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	input MovementInput,
) (*entity.StockMovement, error) {
	newStock, err := inventory.ComputeNewStock(input.Type, product.CurrentStock, input.Quantity)
	if err != nil {
		return nil, err
	}

	if input.Type == entity.MovementTypeIncoming && input.UnitCost != nil {
		cost := inventory.WeightedAverageCost(product.CurrentStock, product.CostPrice, input.Quantity, *input.UnitCost)
		if err := productRepo.UpdateCost(ctx, product.ID, cost); err != nil {
			return nil, err
		}
	}

	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		Type:          input.Type,
		Quantity:      input.Quantity,
		PreviousStock: product.CurrentStock,
		NewStock:      newStock,
		Reference:     input.Reference,
		Reason:        input.Reason,
		Notes:         input.Notes,
		UserID:        input.UserID,
		CreatedAt:     uc.now().UTC(),
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	if err := productRepo.UpdateStock(ctx, product.ID, newStock); err != nil {
		return nil, err
	}
	product.CurrentStock = newStock
	return mov, nil
}
