package inventory

import "github.com/jhoicas/inventory-system/internal/domain/entity"

// DefaultReorderMultiplier factor por defecto sobre min_stock para sugerir reposición.
const DefaultReorderMultiplier = 2

// Estados de alerta de stock.
const (
	StatusOutOfStock = "Out of Stock"
	StatusLowStock   = "Low Stock"
	StatusInStock    = "In Stock"
)

// StockPolicy agrupa las reglas configurables de stock bajo y reposición.
type StockPolicy struct {
	// ReorderMultiplier: cantidad sugerida = max(ReorderMultiplier*min_stock - current_stock, 0).
	ReorderMultiplier int
}

// NewStockPolicy construye la política; multiplicadores no positivos usan el valor por defecto.
func NewStockPolicy(multiplier int) StockPolicy {
	if multiplier <= 0 {
		multiplier = DefaultReorderMultiplier
	}
	return StockPolicy{ReorderMultiplier: multiplier}
}

// IsLowStock: stock actual en o por debajo del mínimo configurado.
func (p StockPolicy) IsLowStock(currentStock, minStock int) bool {
	return currentStock <= minStock
}

// ReorderQuantity cantidad sugerida de pedido (nunca negativa).
func (p StockPolicy) ReorderQuantity(currentStock, minStock int) int {
	m := p.ReorderMultiplier
	if m <= 0 {
		m = DefaultReorderMultiplier
	}
	qty := m*minStock - currentStock
	if qty < 0 {
		return 0
	}
	return qty
}

// Status devuelve la etiqueta de alerta para un producto.
func (p StockPolicy) Status(product *entity.Product) string {
	switch {
	case product.CurrentStock == 0:
		return StatusOutOfStock
	case p.IsLowStock(product.CurrentStock, product.MinStock):
		return StatusLowStock
	default:
		return StatusInStock
	}
}
