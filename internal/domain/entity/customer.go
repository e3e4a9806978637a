package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cliente.
const (
	CustomerTypeRetail      = "retail"
	CustomerTypeWholesale   = "wholesale"
	CustomerTypeDistributor = "distributor"
)

// Customer representa un cliente (ventas).
type Customer struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Address      string
	City         string
	State        string
	ZipCode      string
	TaxNumber    string
	CustomerType string // retail, wholesale, distributor
	CreditLimit  decimal.Decimal
	PaymentTerms string
	Notes        string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidCustomerType indica si t es un tipo de cliente soportado.
func ValidCustomerType(t string) bool {
	switch t {
	case CustomerTypeRetail, CustomerTypeWholesale, CustomerTypeDistributor:
		return true
	}
	return false
}
