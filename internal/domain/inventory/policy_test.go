package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/inventory"
)

func TestStockPolicy_ReorderQuantity(t *testing.T) {
	p := inventory.NewStockPolicy(0)
	assert.Equal(t, inventory.DefaultReorderMultiplier, p.ReorderMultiplier)

	assert.Equal(t, 8, p.ReorderQuantity(2, 5), "2×5 − 2")
	assert.Equal(t, 0, p.ReorderQuantity(20, 5), "nunca negativa")
	assert.Equal(t, 10, p.ReorderQuantity(0, 5))

	triple := inventory.NewStockPolicy(3)
	assert.Equal(t, 13, triple.ReorderQuantity(2, 5), "3×5 − 2")
}

func TestStockPolicy_Status(t *testing.T) {
	p := inventory.NewStockPolicy(2)

	assert.Equal(t, inventory.StatusOutOfStock, p.Status(&entity.Product{CurrentStock: 0, MinStock: 5}))
	assert.Equal(t, inventory.StatusLowStock, p.Status(&entity.Product{CurrentStock: 5, MinStock: 5}), "en el mínimo ya es stock bajo")
	assert.Equal(t, inventory.StatusInStock, p.Status(&entity.Product{CurrentStock: 6, MinStock: 5}))

	assert.True(t, p.IsLowStock(2, 5))
	assert.False(t, p.IsLowStock(7, 5))
}
