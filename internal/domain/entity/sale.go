package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una venta.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusPartial = "partial"
	PaymentStatusOverdue = "overdue"
)

// Sale representa una venta. Los totales se calculan una sola vez al crearla y se guardan.
type Sale struct {
	ID             string
	InvoiceNumber  string // único
	CustomerID     string // vacío = venta de mostrador
	SaleDate       time.Time
	Subtotal       decimal.Decimal // Σ cantidad × precio unitario
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
	PaymentStatus  string
	PaymentMethod  string
	SalespersonID  string
	Notes          string
	Items          []SaleItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SaleItem línea de una venta.
type SaleItem struct {
	ID                 string
	SaleID             string
	ProductID          string
	Quantity           int
	UnitPrice          decimal.Decimal
	DiscountPercentage decimal.Decimal // 0..100
	DiscountAmount     decimal.Decimal
	LineTotal          decimal.Decimal // cantidad × precio − descuento
	CreatedAt          time.Time
}

// ValidPaymentStatus indica si s es un estado de pago soportado.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusPartial, PaymentStatusOverdue:
		return true
	}
	return false
}
