package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-system/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Period rango de fechas inclusivo; un extremo en cero no acota.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains indica si t cae dentro del período.
func (p Period) Contains(t time.Time) bool {
	if !p.From.IsZero() && t.Before(p.From) {
		return false
	}
	if !p.To.IsZero() && t.After(p.To) {
		return false
	}
	return true
}

// FilterSales devuelve las ventas cuya fecha cae en el período.
func FilterSales(sales []*entity.Sale, period Period) []*entity.Sale {
	out := make([]*entity.Sale, 0, len(sales))
	for _, s := range sales {
		if period.Contains(s.SaleDate) {
			out = append(out, s)
		}
	}
	return out
}

// ProductProfit rentabilidad de un producto en el período.
type ProductProfit struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
	MarginPct    decimal.Decimal `json:"margin_pct"`
}

// ProfitReport análisis de rentabilidad con totales.
type ProfitReport struct {
	Period       Period          `json:"period"`
	Products     []ProductProfit `json:"products"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	MarginPct    decimal.Decimal `json:"margin_pct"`
}

// marginPct = (revenue − cost) / revenue × 100; 0 cuando no hay ingresos.
func marginPct(revenue, cost decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return revenue.Sub(cost).Div(revenue).Mul(hundred).Round(2)
}

// aggregateLines acumula cantidad e ingreso (Σ line_total) por producto.
func aggregateLines(sales []*entity.Sale, products map[string]*entity.Product) map[string]*ProductProfit {
	acc := make(map[string]*ProductProfit)
	for _, s := range sales {
		for _, it := range s.Items {
			pp, ok := acc[it.ProductID]
			if !ok {
				pp = &ProductProfit{ProductID: it.ProductID, Name: UnknownLabel, Revenue: decimal.Zero, Cost: decimal.Zero}
				if p, found := products[it.ProductID]; found {
					pp.SKU, pp.Name = p.SKU, p.Name
				}
				acc[it.ProductID] = pp
			}
			pp.QuantitySold += it.Quantity
			pp.Revenue = pp.Revenue.Add(it.LineTotal)
		}
	}
	return acc
}

// IndexProducts indexa productos por id.
func IndexProducts(products []*entity.Product) map[string]*entity.Product {
	m := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}

// ProfitAnalysis calcula ingresos, costo (cantidad × cost_price actual), utilidad y margen
// por producto vendido en el período, ordenado por utilidad descendente.
func ProfitAnalysis(sales []*entity.Sale, products []*entity.Product, period Period) ProfitReport {
	idx := IndexProducts(products)
	acc := aggregateLines(FilterSales(sales, period), idx)

	rep := ProfitReport{Period: period, Products: make([]ProductProfit, 0, len(acc)),
		TotalRevenue: decimal.Zero, TotalCost: decimal.Zero}
	for id, pp := range acc {
		if p, ok := idx[id]; ok {
			pp.Cost = p.CostPrice.Mul(decimal.NewFromInt(int64(pp.QuantitySold)))
		}
		pp.Revenue = pp.Revenue.Round(2)
		pp.Cost = pp.Cost.Round(2)
		pp.Profit = pp.Revenue.Sub(pp.Cost)
		pp.MarginPct = marginPct(pp.Revenue, pp.Cost)
		rep.Products = append(rep.Products, *pp)
		rep.TotalRevenue = rep.TotalRevenue.Add(pp.Revenue)
		rep.TotalCost = rep.TotalCost.Add(pp.Cost)
	}
	rep.TotalProfit = rep.TotalRevenue.Sub(rep.TotalCost)
	rep.MarginPct = marginPct(rep.TotalRevenue, rep.TotalCost)
	sort.SliceStable(rep.Products, func(i, j int) bool {
		a, b := rep.Products[i], rep.Products[j]
		if !a.Profit.Equal(b.Profit) {
			return a.Profit.GreaterThan(b.Profit)
		}
		return a.ProductID < b.ProductID
	})
	return rep
}

// TopProduct producto por unidades vendidas.
type TopProduct struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// TopProducts los limit productos más vendidos por cantidad (desempate: ingreso). limit <= 0 = todos.
func TopProducts(sales []*entity.Sale, products []*entity.Product, period Period, limit int) []TopProduct {
	acc := aggregateLines(FilterSales(sales, period), IndexProducts(products))
	out := make([]TopProduct, 0, len(acc))
	for _, pp := range acc {
		out = append(out, TopProduct{
			ProductID:    pp.ProductID,
			SKU:          pp.SKU,
			Name:         pp.Name,
			QuantitySold: pp.QuantitySold,
			Revenue:      pp.Revenue.Round(2),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.QuantitySold != b.QuantitySold {
			return a.QuantitySold > b.QuantitySold
		}
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.ProductID < b.ProductID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// DailySales ventas agregadas por día calendario.
type DailySales struct {
	Date      string          `json:"date"` // YYYY-MM-DD
	SaleCount int             `json:"sale_count"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// SalesByDay agrupa las ventas del período por día (zona de la fecha de venta), en orden ascendente.
func SalesByDay(sales []*entity.Sale, period Period) []DailySales {
	byDay := make(map[string]*DailySales)
	for _, s := range FilterSales(sales, period) {
		day := s.SaleDate.Format("2006-01-02")
		d, ok := byDay[day]
		if !ok {
			d = &DailySales{Date: day, Revenue: decimal.Zero}
			byDay[day] = d
		}
		d.SaleCount++
		d.Revenue = d.Revenue.Add(s.TotalAmount)
	}
	out := make([]DailySales, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// OutstandingSale venta con pago pendiente.
type OutstandingSale struct {
	SaleID        string          `json:"sale_id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	SaleDate      time.Time       `json:"sale_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentStatus string          `json:"payment_status"`
	DaysOpen      int             `json:"days_open"`
}

// OutstandingReport cuentas por cobrar.
type OutstandingReport struct {
	Sales       []OutstandingSale `json:"sales"`
	Count       int               `json:"count"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
}

// Outstanding lista las ventas cuyo estado de pago no es paid, de la más antigua a la más reciente.
func Outstanding(sales []*entity.Sale, customers Names, now time.Time) OutstandingReport {
	rep := OutstandingReport{Sales: make([]OutstandingSale, 0), TotalAmount: decimal.Zero}
	for _, s := range sales {
		if s.PaymentStatus == entity.PaymentStatusPaid {
			continue
		}
		days := int(now.Sub(s.SaleDate).Hours() / 24)
		if days < 0 {
			days = 0
		}
		name := "Walk-in"
		if s.CustomerID != "" {
			name = customers.Resolve(s.CustomerID)
		}
		rep.Sales = append(rep.Sales, OutstandingSale{
			SaleID:        s.ID,
			InvoiceNumber: s.InvoiceNumber,
			CustomerName:  name,
			SaleDate:      s.SaleDate,
			TotalAmount:   s.TotalAmount,
			PaymentStatus: s.PaymentStatus,
			DaysOpen:      days,
		})
		rep.TotalAmount = rep.TotalAmount.Add(s.TotalAmount)
	}
	rep.Count = len(rep.Sales)
	sort.SliceStable(rep.Sales, func(i, j int) bool { return rep.Sales[i].SaleDate.Before(rep.Sales[j].SaleDate) })
	return rep
}
