package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIncoming   = "incoming"   // entrada
	MovementTypeOutgoing   = "outgoing"   // salida
	MovementTypeAdjustment = "adjustment" // ajuste a valor absoluto
	MovementTypeInitial    = "initial"    // stock de apertura al crear el producto
)

// StockMovement representa una entrada inmutable del libro de stock.
// Para incoming/outgoing Quantity es el delta (positivo); para adjustment es el nuevo stock absoluto.
type StockMovement struct {
	ID            string
	ProductID     string
	Type          string
	Quantity      int
	PreviousStock int
	NewStock      int
	Reference     string // número de factura de venta, orden, etc.
	Reason        string
	Notes         string
	UserID        string // actor que registró el movimiento
	CreatedAt     time.Time
}

// ValidMovementType indica si t es un tipo de movimiento conocido (incluye initial).
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIncoming, MovementTypeOutgoing, MovementTypeAdjustment, MovementTypeInitial:
		return true
	}
	return false
}
