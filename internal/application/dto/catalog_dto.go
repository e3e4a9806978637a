package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Categorías ────────────────────────────────────────────────────────────────

// CategoryRequest entrada para crear o reemplazar una categoría.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// SupplierRequest entrada para crear o reemplazar un proveedor.
type SupplierRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	ContactPerson string `json:"contact_person" validate:"omitempty,max=200"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"omitempty,max=50"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ── Clientes ──────────────────────────────────────────────────────────────────

// CustomerRequest entrada para crear o reemplazar un cliente.
type CustomerRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Email        string          `json:"email" validate:"omitempty,email"`
	Phone        string          `json:"phone" validate:"omitempty,max=50"`
	Address      string          `json:"address"`
	City         string          `json:"city"`
	State        string          `json:"state"`
	ZipCode      string          `json:"zip_code"`
	TaxNumber    string          `json:"tax_number"`
	CustomerType string          `json:"customer_type" validate:"omitempty,oneof=retail wholesale distributor"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	PaymentTerms string          `json:"payment_terms"`
	Notes        string          `json:"notes"`
	IsActive     *bool           `json:"is_active"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	City         string          `json:"city"`
	State        string          `json:"state"`
	ZipCode      string          `json:"zip_code"`
	TaxNumber    string          `json:"tax_number"`
	CustomerType string          `json:"customer_type"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	PaymentTerms string          `json:"payment_terms"`
	Notes        string          `json:"notes"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ListRequest paginación y búsqueda de catálogos.
type ListRequest struct {
	PageRequest
	Search string `query:"search"`
}

// ── Empresa ───────────────────────────────────────────────────────────────────

// SettingsRequest entrada para PUT /api/settings.
type SettingsRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=1,max=200"`
	Address     string `json:"address"`
	Phone       string `json:"phone" validate:"omitempty,max=50"`
	Email       string `json:"email" validate:"omitempty,email"`
	TaxNumber   string `json:"tax_number" validate:"omitempty,max=50"`
}

// SettingsResponse salida de la configuración de empresa.
type SettingsResponse struct {
	CompanyName string    `json:"company_name"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	TaxNumber   string    `json:"tax_number"`
	UpdatedAt   time.Time `json:"updated_at"`
}
