// Package csvexport serializa reportes a CSV (RFC 4180: campos con coma, comillas o saltos de
// línea van entre comillas y las comillas internas se duplican).
package csvexport

import (
	"fmt"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/jhoicas/inventory-system/internal/domain/report"
)

// Content-Type de las descargas.
const ContentType = "text/csv; charset=utf-8"

type inventoryRow struct {
	SKU          string `csv:"SKU"`
	Name         string `csv:"Name"`
	Category     string `csv:"Category"`
	CurrentStock int    `csv:"Current Stock"`
	MinStock     int    `csv:"Min Stock"`
	CostPrice    string `csv:"Cost Price"`
	SellingPrice string `csv:"Selling Price"`
	StockValue   string `csv:"Stock Value"`
	Manufacturer string `csv:"Manufacturer"`
	Location     string `csv:"Location"`
}

type lowStockRow struct {
	SKU          string `csv:"SKU"`
	Name         string `csv:"Name"`
	Category     string `csv:"Category"`
	CurrentStock int    `csv:"Current Stock"`
	MinStock     int    `csv:"Min Stock"`
	Status       string `csv:"Status"`
	ReorderQty   int    `csv:"Reorder Qty"`
}

type movementRow struct {
	Date          string `csv:"Date"`
	Product       string `csv:"Product"`
	SKU           string `csv:"SKU"`
	Type          string `csv:"Type"`
	Quantity      int    `csv:"Quantity"`
	PreviousStock int    `csv:"Previous Stock"`
	NewStock      int    `csv:"New Stock"`
	Reason        string `csv:"Reason"`
	Notes         string `csv:"Notes"`
}

// Inventory exporta la valorización del inventario.
func Inventory(items []report.ProductValue) ([]byte, error) {
	rows := make([]*inventoryRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, &inventoryRow{
			SKU:          it.SKU,
			Name:         it.Name,
			Category:     it.CategoryName,
			CurrentStock: it.CurrentStock,
			MinStock:     it.MinStock,
			CostPrice:    it.CostPrice.StringFixed(2),
			SellingPrice: it.SellingPrice.StringFixed(2),
			StockValue:   it.StockValue.StringFixed(2),
			Manufacturer: it.Manufacturer,
			Location:     it.Location,
		})
	}
	return marshal("inventario", rows)
}

// LowStock exporta las alertas de stock bajo.
func LowStock(items []report.LowStockItem) ([]byte, error) {
	rows := make([]*lowStockRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, &lowStockRow{
			SKU:          it.SKU,
			Name:         it.Name,
			Category:     it.CategoryName,
			CurrentStock: it.CurrentStock,
			MinStock:     it.MinStock,
			Status:       it.Status,
			ReorderQty:   it.ReorderQty,
		})
	}
	return marshal("stock bajo", rows)
}

// Movements exporta el libro de movimientos.
func Movements(lines []report.MovementLine) ([]byte, error) {
	rows := make([]*movementRow, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, &movementRow{
			Date:          l.CreatedAt.UTC().Format(time.RFC3339),
			Product:       l.ProductName,
			SKU:           l.SKU,
			Type:          l.Type,
			Quantity:      l.Quantity,
			PreviousStock: l.PreviousStock,
			NewStock:      l.NewStock,
			Reason:        l.Reason,
			Notes:         l.Notes,
		})
	}
	return marshal("movimientos", rows)
}

// Filename nombre sugerido para la descarga, con la fecha del día.
func Filename(kind string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", kind, now.Format("20060102"))
}

func marshal(what string, rows any) ([]byte, error) {
	out, err := gocsv.MarshalBytes(rows)
	if err != nil {
		return nil, fmt.Errorf("csv %s: %w", what, err)
	}
	return out, nil
}
