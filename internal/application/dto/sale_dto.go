package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de una venta. unit_price 0 = precio de venta del producto.
type SaleItemRequest struct {
	ProductID          string          `json:"product_id" validate:"required"`
	Quantity           int             `json:"quantity" validate:"gt=0"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// CreateSaleRequest entrada para POST /api/sales.
type CreateSaleRequest struct {
	InvoiceNumber string            `json:"invoice_number" validate:"required,max=50"`
	CustomerID    string            `json:"customer_id"`
	SaleDate      *time.Time        `json:"sale_date"`
	PaymentStatus string            `json:"payment_status" validate:"omitempty,oneof=pending paid partial overdue"`
	PaymentMethod string            `json:"payment_method" validate:"omitempty,max=50"`
	Notes         string            `json:"notes"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdatePaymentRequest entrada para PATCH /api/sales/:id/payment.
type UpdatePaymentRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=pending paid partial overdue"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,max=50"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ID                 string          `json:"id"`
	ProductID          string          `json:"product_id"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	LineTotal          decimal.Decimal `json:"line_total"`
}

// SaleResponse salida de una venta con sus líneas.
type SaleResponse struct {
	ID             string             `json:"id"`
	InvoiceNumber  string             `json:"invoice_number"`
	CustomerID     string             `json:"customer_id,omitempty"`
	SaleDate       time.Time          `json:"sale_date"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	PaymentStatus  string             `json:"payment_status"`
	PaymentMethod  string             `json:"payment_method,omitempty"`
	SalespersonID  string             `json:"salesperson_id,omitempty"`
	Notes          string             `json:"notes,omitempty"`
	Items          []SaleItemResponse `json:"items"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// SaleListRequest filtros de GET /api/sales. Fechas YYYY-MM-DD o RFC3339.
type SaleListRequest struct {
	PageRequest
	CustomerID string `query:"customer_id"`
	Status     string `query:"status"`
	From       string `query:"from"`
	To         string `query:"to"`
}

// PeriodRequest rango de fechas para reportes.
type PeriodRequest struct {
	From  string `query:"from"`
	To    string `query:"to"`
	Limit int    `query:"limit"`
}
