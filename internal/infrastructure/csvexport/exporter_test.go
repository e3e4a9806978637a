package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-system/internal/domain/report"
)

func readAll(t *testing.T, raw []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestInventory_QuotesSpecialCharacters(t *testing.T) {
	raw, err := Inventory([]report.ProductValue{{
		SKU:          "A-1",
		Name:         `Martillo 16" de carpintero`,
		CategoryName: "Herramientas, manuales",
		CurrentStock: 3,
		MinStock:     1,
		CostPrice:    decimal.NewFromFloat(10.5),
		SellingPrice: decimal.NewFromInt(20),
		StockValue:   decimal.NewFromFloat(31.5),
		Location:     "Pasillo 3\nEstante B",
	}})
	require.NoError(t, err)

	text := string(raw)
	assert.Contains(t, text, `"Martillo 16"" de carpintero"`, "comillas internas duplicadas")
	assert.Contains(t, text, `"Herramientas, manuales"`)

	records := readAll(t, raw)
	require.Len(t, records, 2)
	assert.Equal(t, []string{
		"SKU", "Name", "Category", "Current Stock", "Min Stock",
		"Cost Price", "Selling Price", "Stock Value", "Manufacturer", "Location",
	}, records[0])
	assert.Equal(t, `Martillo 16" de carpintero`, records[1][1], "ida y vuelta sin pérdida")
	assert.Equal(t, "10.50", records[1][5])
	assert.Equal(t, "Pasillo 3\nEstante B", records[1][9])
}

func TestLowStock(t *testing.T) {
	raw, err := LowStock([]report.LowStockItem{
		{SKU: "X", Name: "Clavos", CategoryName: report.UnknownLabel, CurrentStock: 0, MinStock: 50, Status: "Out of Stock", ReorderQty: 100},
	})
	require.NoError(t, err)
	records := readAll(t, raw)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"SKU", "Name", "Category", "Current Stock", "Min Stock", "Status", "Reorder Qty"}, records[0])
	assert.Equal(t, []string{"X", "Clavos", "Unknown", "0", "50", "Out of Stock", "100"}, records[1])
}

func TestMovements(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	raw, err := Movements([]report.MovementLine{
		{CreatedAt: at, ProductName: "Martillo", SKU: "A-1", Type: "outgoing", Quantity: 2, PreviousStock: 5, NewStock: 3, Reason: "sale", Notes: `dijo "urgente"`},
	})
	require.NoError(t, err)
	records := readAll(t, raw)
	require.Len(t, records, 2)
	assert.Equal(t, "Date", records[0][0])
	assert.Equal(t, []string{"2024-03-01T10:00:00Z", "Martillo", "A-1", "outgoing", "2", "5", "3", "sale", `dijo "urgente"`}, records[1])
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "inventory_20240301.csv", Filename("inventory", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
}
