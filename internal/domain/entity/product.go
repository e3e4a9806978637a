package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// CurrentStock solo cambia a través del libro de movimientos (StockMovement).
type Product struct {
	ID           string
	SKU          string // código único
	Barcode      string // opcional, único si se informa
	Name         string
	Description  string
	CategoryID   string // vacío si no tiene categoría
	SupplierID   string // vacío si no tiene proveedor
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	CurrentStock int // nunca negativo
	MinStock     int // umbral de stock mínimo
	Location     string
	Manufacturer string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockValue devuelve el valor del stock actual a precio de costo.
func (p *Product) StockValue() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.CurrentStock)))
}
