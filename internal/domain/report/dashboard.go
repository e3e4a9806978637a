package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/inventory"
)

// RecentMovementsWindow ventana de "movimientos recientes" del dashboard.
const RecentMovementsWindow = 7 * 24 * time.Hour

// DashboardInput datos ya cargados que alimentan el dashboard.
type DashboardInput struct {
	Products        []*entity.Product
	Movements       []*entity.StockMovement
	Sales           []*entity.Sale
	TotalCategories int
	TotalSuppliers  int
	TotalCustomers  int
	Policy          inventory.StockPolicy
	Now             time.Time
}

// DashboardStats KPIs del panel principal.
type DashboardStats struct {
	TotalProducts      int             `json:"total_products"`
	LowStockProducts   int             `json:"low_stock_products"`
	OutOfStockProducts int             `json:"out_of_stock_products"`
	TotalStockUnits    int             `json:"total_stock_units"`
	TotalStockValue    decimal.Decimal `json:"total_stock_value"`
	RecentMovements    int             `json:"recent_movements"`
	TotalCategories    int             `json:"total_categories"`
	TotalSuppliers     int             `json:"total_suppliers"`
	TotalCustomers     int             `json:"total_customers"`
	TotalSales         int             `json:"total_sales"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	PendingPayments    decimal.Decimal `json:"pending_payments"`
}

// Dashboard pliega los datos de entrada en los KPIs del panel.
func Dashboard(in DashboardInput) DashboardStats {
	st := DashboardStats{
		TotalProducts:   len(in.Products),
		TotalCategories: in.TotalCategories,
		TotalSuppliers:  in.TotalSuppliers,
		TotalCustomers:  in.TotalCustomers,
		TotalSales:      len(in.Sales),
		TotalStockValue: decimal.Zero,
		TotalRevenue:    decimal.Zero,
		PendingPayments: decimal.Zero,
	}
	for _, p := range in.Products {
		if p.CurrentStock == 0 {
			st.OutOfStockProducts++
		}
		if in.Policy.IsLowStock(p.CurrentStock, p.MinStock) {
			st.LowStockProducts++
		}
		st.TotalStockUnits += p.CurrentStock
		st.TotalStockValue = st.TotalStockValue.Add(p.StockValue())
	}
	since := in.Now.Add(-RecentMovementsWindow)
	for _, m := range in.Movements {
		if !m.CreatedAt.Before(since) {
			st.RecentMovements++
		}
	}
	for _, s := range in.Sales {
		st.TotalRevenue = st.TotalRevenue.Add(s.TotalAmount)
		if s.PaymentStatus != entity.PaymentStatusPaid {
			st.PendingPayments = st.PendingPayments.Add(s.TotalAmount)
		}
	}
	st.TotalStockValue = st.TotalStockValue.Round(2)
	st.TotalRevenue = st.TotalRevenue.Round(2)
	st.PendingPayments = st.PendingPayments.Round(2)
	return st
}
