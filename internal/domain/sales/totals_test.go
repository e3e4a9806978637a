package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/sales"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ─────────────────────────────────────────────────────────────────────────────
// Caso base: dos líneas, una con descuento, impuesto 10 %
//
//	línea 1: 2 × 50.00           = 100.00, desc 0
//	línea 2: 3 × 20.00 (10 %)    =  60.00, desc 6.00 → 54.00
//	subtotal 160.00, descuento 6.00, impuesto 15.40, total 169.40
// ─────────────────────────────────────────────────────────────────────────────

func TestComputeTotals_DosLineasConDescuento(t *testing.T) {
	items := []entity.SaleItem{
		{ProductID: "p1", Quantity: 2, UnitPrice: dec("50.00")},
		{ProductID: "p2", Quantity: 3, UnitPrice: dec("20.00"), DiscountPercentage: dec("10")},
	}

	got, err := sales.ComputeTotals(items, sales.DefaultTaxRate)
	require.NoError(t, err)

	assert.True(t, got.Subtotal.Equal(dec("160")), "subtotal: %s", got.Subtotal)
	assert.True(t, got.DiscountAmount.Equal(dec("6")), "descuento: %s", got.DiscountAmount)
	assert.True(t, got.TaxAmount.Equal(dec("15.4")), "impuesto: %s", got.TaxAmount)
	assert.True(t, got.TotalAmount.Equal(dec("169.4")), "total: %s", got.TotalAmount)

	assert.True(t, items[0].LineTotal.Equal(dec("100")), "line_total 1: %s", items[0].LineTotal)
	assert.True(t, items[1].DiscountAmount.Equal(dec("6")), "descuento línea 2: %s", items[1].DiscountAmount)
	assert.True(t, items[1].LineTotal.Equal(dec("54")), "line_total 2: %s", items[1].LineTotal)
}

func TestComputeTotals_SinImpuesto(t *testing.T) {
	items := []entity.SaleItem{{ProductID: "p1", Quantity: 1, UnitPrice: dec("9.99")}}
	got, err := sales.ComputeTotals(items, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(dec("9.99")))
	assert.True(t, got.TaxAmount.IsZero())
}

func TestComputeTotals_Invalidos(t *testing.T) {
	_, err := sales.ComputeTotals(nil, sales.DefaultTaxRate)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "venta sin líneas")

	_, err = sales.ComputeTotals([]entity.SaleItem{{Quantity: 0, UnitPrice: dec("1")}}, sales.DefaultTaxRate)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = sales.ComputeTotals([]entity.SaleItem{{Quantity: 1, UnitPrice: dec("1"), DiscountPercentage: dec("101")}}, sales.DefaultTaxRate)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "descuento mayor a 100")

	_, err = sales.ComputeTotals([]entity.SaleItem{{Quantity: 1, UnitPrice: dec("-1")}}, sales.DefaultTaxRate)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
