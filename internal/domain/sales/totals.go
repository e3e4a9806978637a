// Package sales calcula los totales de una venta a partir de sus líneas.
package sales

import (
	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate porcentaje de impuesto aplicado si no se configura otro.
var DefaultTaxRate = decimal.NewFromInt(10)

var hundred = decimal.NewFromInt(100)

// Totals resultado del cálculo; se guarda en la venta y no se recalcula al leer.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
}

// ValidateItem verifica cantidad, precio y porcentaje de descuento de una línea.
func ValidateItem(item entity.SaleItem) error {
	if item.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if item.UnitPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	if item.DiscountPercentage.IsNegative() || item.DiscountPercentage.GreaterThan(hundred) {
		return domain.ErrInvalidInput
	}
	return nil
}

// ComputeTotals completa DiscountAmount y LineTotal de cada línea y devuelve los totales.
//
//	bruto       = cantidad × precio
//	descuento   = bruto × pct / 100
//	impuesto    = (subtotal − descuento) × taxRate / 100
//	total       = subtotal − descuento + impuesto
//
// Todos los montos se redondean a 2 decimales.
func ComputeTotals(items []entity.SaleItem, taxRate decimal.Decimal) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, domain.ErrInvalidInput
	}
	if taxRate.IsNegative() {
		return Totals{}, domain.ErrInvalidInput
	}
	subtotal := decimal.Zero
	discount := decimal.Zero
	for i := range items {
		if err := ValidateItem(items[i]); err != nil {
			return Totals{}, err
		}
		gross := items[i].UnitPrice.Mul(decimal.NewFromInt(int64(items[i].Quantity)))
		lineDiscount := gross.Mul(items[i].DiscountPercentage).Div(hundred).Round(2)
		items[i].DiscountAmount = lineDiscount
		items[i].LineTotal = gross.Sub(lineDiscount).Round(2)
		subtotal = subtotal.Add(gross)
		discount = discount.Add(lineDiscount)
	}
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(taxRate).Div(hundred).Round(2)
	return Totals{
		Subtotal:       subtotal.Round(2),
		DiscountAmount: discount.Round(2),
		TaxAmount:      tax,
		TotalAmount:    taxable.Add(tax).Round(2),
	}, nil
}
