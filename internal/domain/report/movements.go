package report

import (
	"time"

	"github.com/jhoicas/inventory-system/internal/domain/entity"
)

// MovementLine movimiento con los datos del producto resueltos.
type MovementLine struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	SKU           string    `json:"sku"`
	Type          string    `json:"movement_type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	Reference     string    `json:"reference"`
	Reason        string    `json:"reason"`
	Notes         string    `json:"notes"`
	UserID        string    `json:"user_id"`
}

// MovementLines une cada movimiento con su producto; productos borrados quedan como UnknownLabel.
func MovementLines(movements []*entity.StockMovement, products []*entity.Product) []MovementLine {
	idx := IndexProducts(products)
	out := make([]MovementLine, 0, len(movements))
	for _, m := range movements {
		line := MovementLine{
			ID:            m.ID,
			CreatedAt:     m.CreatedAt,
			ProductID:     m.ProductID,
			ProductName:   UnknownLabel,
			Type:          m.Type,
			Quantity:      m.Quantity,
			PreviousStock: m.PreviousStock,
			NewStock:      m.NewStock,
			Reference:     m.Reference,
			Reason:        m.Reason,
			Notes:         m.Notes,
			UserID:        m.UserID,
		}
		if p, ok := idx[m.ProductID]; ok {
			line.ProductName, line.SKU = p.Name, p.SKU
		}
		out = append(out, line)
	}
	return out
}
