// Package report contiene los pliegues de solo lectura sobre productos, movimientos y ventas
// que alimentan el dashboard, los reportes y las exportaciones CSV.
package report

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/inventory"
)

// UnknownLabel etiqueta para referencias vacías o colgantes (categoría o proveedor borrado).
const UnknownLabel = "Unknown"

// Names resuelve ids a nombres legibles.
type Names map[string]string

// CategoryNames indexa categorías por id.
func CategoryNames(categories []*entity.Category) Names {
	n := make(Names, len(categories))
	for _, c := range categories {
		n[c.ID] = c.Name
	}
	return n
}

// SupplierNames indexa proveedores por id.
func SupplierNames(suppliers []*entity.Supplier) Names {
	n := make(Names, len(suppliers))
	for _, s := range suppliers {
		n[s.ID] = s.Name
	}
	return n
}

// Resolve devuelve el nombre para id o UnknownLabel.
func (n Names) Resolve(id string) string {
	if name, ok := n[id]; ok && id != "" {
		return name
	}
	return UnknownLabel
}

// CategoryStats agregado por categoría.
type CategoryStats struct {
	CategoryID   string          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name"`
	ProductCount int             `json:"product_count"`
	TotalStock   int             `json:"total_stock"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// CategoryBreakdown agrupa productos por categoría. Los productos sin categoría o con una
// categoría inexistente caen en el grupo UnknownLabel, que va al final.
func CategoryBreakdown(products []*entity.Product, categories []*entity.Category) []CategoryStats {
	names := CategoryNames(categories)
	byKey := make(map[string]*CategoryStats)
	order := make([]string, 0)
	for _, p := range products {
		key := p.CategoryID
		if _, ok := names[key]; !ok || key == "" {
			key = ""
		}
		st, ok := byKey[key]
		if !ok {
			st = &CategoryStats{CategoryID: key, CategoryName: names.Resolve(key), TotalValue: decimal.Zero}
			byKey[key] = st
			order = append(order, key)
		}
		st.ProductCount++
		st.TotalStock += p.CurrentStock
		st.TotalValue = st.TotalValue.Add(p.StockValue())
	}
	out := make([]CategoryStats, 0, len(order))
	for _, k := range order {
		s := *byKey[k]
		s.TotalValue = s.TotalValue.Round(2)
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if (out[i].CategoryID == "") != (out[j].CategoryID == "") {
			return out[j].CategoryID == ""
		}
		return strings.ToLower(out[i].CategoryName) < strings.ToLower(out[j].CategoryName)
	})
	return out
}

// ProductValue valor de stock de un producto.
type ProductValue struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	CategoryName string          `json:"category_name"`
	SupplierName string          `json:"supplier_name"`
	CurrentStock int             `json:"current_stock"`
	MinStock     int             `json:"min_stock"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	StockValue   decimal.Decimal `json:"stock_value"`
	Manufacturer string          `json:"manufacturer"`
	Location     string          `json:"location"`
}

// InventoryValueReport valorización del inventario a costo.
type InventoryValueReport struct {
	Items      []ProductValue  `json:"items"`
	TotalUnits int             `json:"total_units"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// InventoryValue valoriza cada producto (stock × costo) y suma el total. Orden por nombre.
func InventoryValue(products []*entity.Product, categories Names, suppliers Names) InventoryValueReport {
	rep := InventoryValueReport{Items: make([]ProductValue, 0, len(products)), TotalValue: decimal.Zero}
	for _, p := range products {
		v := p.StockValue().Round(2)
		rep.Items = append(rep.Items, ProductValue{
			ProductID:    p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			CategoryName: categories.Resolve(p.CategoryID),
			SupplierName: suppliers.Resolve(p.SupplierID),
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
			CostPrice:    p.CostPrice,
			SellingPrice: p.SellingPrice,
			StockValue:   v,
			Manufacturer: p.Manufacturer,
			Location:     p.Location,
		})
		rep.TotalUnits += p.CurrentStock
		rep.TotalValue = rep.TotalValue.Add(v)
	}
	sort.SliceStable(rep.Items, func(i, j int) bool {
		return strings.ToLower(rep.Items[i].Name) < strings.ToLower(rep.Items[j].Name)
	})
	return rep
}

// LowStockItem producto en alerta con la cantidad sugerida de reposición.
type LowStockItem struct {
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	CategoryName  string          `json:"category_name"`
	SupplierName  string          `json:"supplier_name"`
	CurrentStock  int             `json:"current_stock"`
	MinStock      int             `json:"min_stock"`
	Status        string          `json:"status"`
	ReorderQty    int             `json:"reorder_quantity"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

// LowStock lista los productos con current_stock <= min_stock. Primero los agotados,
// luego por mayor déficit relativo al mínimo.
func LowStock(products []*entity.Product, categories, suppliers Names, policy inventory.StockPolicy) []LowStockItem {
	out := make([]LowStockItem, 0)
	for _, p := range products {
		if !policy.IsLowStock(p.CurrentStock, p.MinStock) {
			continue
		}
		qty := policy.ReorderQuantity(p.CurrentStock, p.MinStock)
		out = append(out, LowStockItem{
			ProductID:     p.ID,
			SKU:           p.SKU,
			Name:          p.Name,
			CategoryName:  categories.Resolve(p.CategoryID),
			SupplierName:  suppliers.Resolve(p.SupplierID),
			CurrentStock:  p.CurrentStock,
			MinStock:      p.MinStock,
			Status:        policy.Status(p),
			ReorderQty:    qty,
			EstimatedCost: p.CostPrice.Mul(decimal.NewFromInt(int64(qty))).Round(2),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.CurrentStock == 0) != (b.CurrentStock == 0) {
			return a.CurrentStock == 0
		}
		defA, defB := a.MinStock-a.CurrentStock, b.MinStock-b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		return a.SKU < b.SKU
	})
	return out
}
