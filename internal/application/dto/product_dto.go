package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o reemplazar un producto.
// current_stock solo se usa al crear (stock de apertura); en update se ignora.
// stock_quantity y min_stock_level son nombres heredados, aceptados como alias.
type ProductRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Barcode      string          `json:"barcode" validate:"omitempty,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description"`
	CategoryID   string          `json:"category_id"`
	SupplierID   string          `json:"supplier_id"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CurrentStock *int            `json:"current_stock" validate:"omitempty,min=0"`
	MinStock     *int            `json:"min_stock" validate:"omitempty,min=0"`
	Location     string          `json:"location"`
	Manufacturer string          `json:"manufacturer"`
	IsActive     *bool           `json:"is_active"`

	StockQuantity *int `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	MinStockLevel *int `json:"min_stock_level,omitempty" validate:"omitempty,min=0"`
}

// Normalize traduce los alias heredados a los nombres canónicos (el canónico gana si vienen ambos).
func (r *ProductRequest) Normalize() {
	if r.CurrentStock == nil && r.StockQuantity != nil {
		r.CurrentStock = r.StockQuantity
	}
	if r.MinStock == nil && r.MinStockLevel != nil {
		r.MinStock = r.MinStockLevel
	}
	r.StockQuantity, r.MinStockLevel = nil, nil
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Barcode      string          `json:"barcode,omitempty"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CategoryID   string          `json:"category_id,omitempty"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	CurrentStock int             `json:"current_stock"`
	MinStock     int             `json:"min_stock"`
	StockValue   decimal.Decimal `json:"stock_value"`
	StockStatus  string          `json:"stock_status"`
	Location     string          `json:"location"`
	Manufacturer string          `json:"manufacturer"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListRequest filtros de GET /api/products.
type ProductListRequest struct {
	PageRequest
	Search     string `query:"search"`
	CategoryID string `query:"category_id"`
	SupplierID string `query:"supplier_id"`
	LowStock   bool   `query:"low_stock"`
}
