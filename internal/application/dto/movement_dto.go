package dto

import (
	"encoding/json"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest entrada para POST /api/stock-movements.
// quantity llega como número JSON; los no enteros se rechazan como cantidad inválida.
type RegisterMovementRequest struct {
	ProductID    string           `json:"product_id" validate:"required"`
	MovementType string           `json:"movement_type" validate:"required"`
	Quantity     json.Number      `json:"quantity" validate:"required"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	Reference    string           `json:"reference" validate:"omitempty,max=100"`
	Reason       string           `json:"reason" validate:"omitempty,max=200"`
	Notes        string           `json:"notes"`
}

// IntQuantity convierte quantity a entero; ok=false si no es un entero representable.
func (r RegisterMovementRequest) IntQuantity() (int, bool) {
	if n, err := r.Quantity.Int64(); err == nil {
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	}
	f, err := r.Quantity.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// MovementResponse salida de un movimiento del libro de stock.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	MovementType  string    `json:"movement_type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	Reference     string    `json:"reference,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	UserID        string    `json:"user_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	LowStock      *bool     `json:"low_stock,omitempty"` // solo en la respuesta del registro
}

// MovementListRequest filtros de GET /api/stock-movements. Fechas YYYY-MM-DD o RFC3339.
type MovementListRequest struct {
	PageRequest
	ProductID string `query:"product_id"`
	Type      string `query:"type"`
	From      string `query:"from"`
	To        string `query:"to"`
}
