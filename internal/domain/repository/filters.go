package repository

import "time"

// ListParams paginación y búsqueda libre comunes a los listados. Limit 0 = sin límite.
type ListParams struct {
	Search string
	Limit  int
	Offset int
}

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	ListParams
	CategoryID   string
	SupplierID   string
	LowStockOnly bool // current_stock <= min_stock
}

// MovementFilter filtros del listado de movimientos (más recientes primero).
type MovementFilter struct {
	ProductID string
	Type      string
	From, To  *time.Time
	Limit     int
	Offset    int
}

// SaleFilter filtros del listado de ventas (más recientes primero).
type SaleFilter struct {
	CustomerID    string
	PaymentStatus string
	From, To      *time.Time
	Limit         int
	Offset        int
}
