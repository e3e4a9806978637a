// Package inventory contiene las reglas puras del libro de stock: cálculo del nuevo stock,
// costo promedio ponderado y la política de stock bajo / reorden.
package inventory

import (
	"math"

	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MaxStock es el tope de current_stock (columna INTEGER en Postgres).
const MaxStock = math.MaxInt32

// ValidateMovement valida tipo y cantidad antes de cualquier lectura o escritura.
//   - incoming/outgoing: quantity > 0 (delta)
//   - adjustment: quantity >= 0 (stock absoluto; 0 es válido)
func ValidateMovement(movementType string, quantity int) error {
	switch movementType {
	case entity.MovementTypeIncoming, entity.MovementTypeOutgoing:
		if quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
	case entity.MovementTypeAdjustment:
		if quantity < 0 {
			return domain.ErrInvalidQuantity
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// ComputeNewStock calcula el stock resultante de aplicar un movimiento sobre previous.
// Una salida que deje el stock en negativo devuelve ErrInsufficientStock sin efectos.
// Un resultado por encima de MaxStock devuelve ErrInvalidQuantity.
func ComputeNewStock(movementType string, previous, quantity int) (int, error) {
	if err := ValidateMovement(movementType, quantity); err != nil {
		return previous, err
	}
	switch movementType {
	case entity.MovementTypeIncoming:
		if quantity > MaxStock-previous {
			return previous, domain.ErrInvalidQuantity
		}
		return previous + quantity, nil
	case entity.MovementTypeOutgoing:
		next := previous - quantity
		if next < 0 {
			return previous, domain.ErrInsufficientStock
		}
		return next, nil
	default: // adjustment
		if quantity > MaxStock {
			return previous, domain.ErrInvalidQuantity
		}
		return quantity, nil
	}
}

// WeightedAverageCost implementa el costo promedio ponderado tras una entrada.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedAverageCost(currentStock int, currentCost decimal.Decimal, incomingQty int, incomingCost decimal.Decimal) decimal.Decimal {
	sum := currentStock + incomingQty
	if sum <= 0 {
		return decimal.Zero
	}
	num := decimal.NewFromInt(int64(currentStock)).Mul(currentCost).
		Add(decimal.NewFromInt(int64(incomingQty)).Mul(incomingCost))
	return num.Div(decimal.NewFromInt(int64(sum))).Round(4)
}
