package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/inventory"
)

// ProductFrom convierte un producto a su salida, con el estado de stock según la política.
func ProductFrom(p *entity.Product, policy inventory.StockPolicy) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Barcode:      p.Barcode,
		Name:         p.Name,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		SupplierID:   p.SupplierID,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		StockValue:   p.StockValue().Round(2),
		StockStatus:  policy.Status(p),
		Location:     p.Location,
		Manufacturer: p.Manufacturer,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// MovementFrom convierte un movimiento a su salida.
func MovementFrom(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		MovementType:  m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reference:     m.Reference,
		Reason:        m.Reason,
		Notes:         m.Notes,
		UserID:        m.UserID,
		CreatedAt:     m.CreatedAt,
	}
}

// CategoryFrom convierte una categoría a su salida.
func CategoryFrom(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

// SupplierFrom convierte un proveedor a su salida.
func SupplierFrom(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID: s.ID, Name: s.Name, ContactPerson: s.ContactPerson, Email: s.Email, Phone: s.Phone,
		Address: s.Address, Notes: s.Notes, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	}
}

// CustomerFrom convierte un cliente a su salida.
func CustomerFrom(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address, City: c.City,
		State: c.State, ZipCode: c.ZipCode, TaxNumber: c.TaxNumber, CustomerType: c.CustomerType,
		CreditLimit: c.CreditLimit, PaymentTerms: c.PaymentTerms, Notes: c.Notes, IsActive: c.IsActive,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

// UserFrom convierte un usuario a su salida (nunca incluye el hash).
func UserFrom(u *entity.User) UserResponse {
	return UserResponse{
		ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, IsActive: u.IsActive,
		CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

// SettingsFrom convierte la configuración de empresa a su salida.
func SettingsFrom(s *entity.CompanySettings) SettingsResponse {
	return SettingsResponse{
		CompanyName: s.CompanyName, Address: s.Address, Phone: s.Phone, Email: s.Email,
		TaxNumber: s.TaxNumber, UpdatedAt: s.UpdatedAt,
	}
}

// SaleFrom convierte una venta con sus líneas a su salida.
func SaleFrom(s *entity.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			ID:                 it.ID,
			ProductID:          it.ProductID,
			Quantity:           it.Quantity,
			UnitPrice:          it.UnitPrice,
			DiscountPercentage: it.DiscountPercentage,
			DiscountAmount:     it.DiscountAmount,
			LineTotal:          it.LineTotal,
		})
	}
	return SaleResponse{
		ID:             s.ID,
		InvoiceNumber:  s.InvoiceNumber,
		CustomerID:     s.CustomerID,
		SaleDate:       s.SaleDate,
		Subtotal:       s.Subtotal,
		DiscountAmount: s.DiscountAmount,
		TaxAmount:      s.TaxAmount,
		TotalAmount:    s.TotalAmount,
		PaymentStatus:  s.PaymentStatus,
		PaymentMethod:  s.PaymentMethod,
		SalespersonID:  s.SalespersonID,
		Notes:          s.Notes,
		Items:          items,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// ParseDate acepta YYYY-MM-DD o RFC3339. Con endOfDay, una fecha sin hora se lleva a 23:59:59.999.
// Cadena vacía devuelve nil.
func ParseDate(s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("fecha %q: %w", s, domain.ErrInvalidInput)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return &t, nil
}
