// Package analytics contiene los casos de uso de reportes: tablero, valorización del inventario,
// stock bajo, rentabilidad y cuentas por cobrar.
package analytics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/inventory"
	"github.com/jhoicas/inventory-system/internal/domain/report"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
)

const (
	defaultTopProducts = 10
	maxTopProducts     = 100
)

// ReportCache guarda reportes ya calculados. La implementación con Redis invalida por versión.
type ReportCache interface {
	BuildKey(ctx context.Context, parts ...string) (string, error)
	FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error
}

// Deps repositorios de solo lectura usados por los reportes.
type Deps struct {
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Suppliers  repository.SupplierRepository
	Customers  repository.CustomerRepository
	Movements  repository.StockMovementRepository
	Sales      repository.SaleRepository
	Cache      ReportCache // nil = sin caché
	Policy     inventory.StockPolicy
}

// ReportUseCase arma los reportes a partir de los repositorios.
//
// Los datos se cargan en paralelo (errgroup) y se pliegan con las funciones puras de domain/report.
type ReportUseCase struct {
	d   Deps
	now func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(d Deps) *ReportUseCase {
	return &ReportUseCase{d: d, now: time.Now}
}

// snapshot datos cargados para un reporte; solo se llenan las partes pedidas.
type snapshot struct {
	products   []*entity.Product
	categories []*entity.Category
	suppliers  []*entity.Supplier
	customers  []*entity.Customer
	movements  []*entity.StockMovement
	sales      []*entity.Sale
}

type part int

const (
	partProducts part = iota
	partCategories
	partSuppliers
	partCustomers
	partMovements
	partSales
)

// load trae en paralelo las partes pedidas. movFilter y saleFilter acotan movimientos y ventas.
func (uc *ReportUseCase) load(
	ctx context.Context,
	movFilter repository.MovementFilter,
	saleFilter repository.SaleFilter,
	parts ...part,
) (*snapshot, error) {
	var s snapshot
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range parts {
		switch p {
		case partProducts:
			g.Go(func() (err error) {
				s.products, err = uc.d.Products.List(ctx, repository.ProductFilter{})
				return wrap("productos", err)
			})
		case partCategories:
			g.Go(func() (err error) {
				s.categories, err = uc.d.Categories.List(ctx, repository.ListParams{})
				return wrap("categorías", err)
			})
		case partSuppliers:
			g.Go(func() (err error) {
				s.suppliers, err = uc.d.Suppliers.List(ctx, repository.ListParams{})
				return wrap("proveedores", err)
			})
		case partCustomers:
			g.Go(func() (err error) {
				s.customers, err = uc.d.Customers.List(ctx, repository.ListParams{})
				return wrap("clientes", err)
			})
		case partMovements:
			g.Go(func() (err error) {
				s.movements, err = uc.d.Movements.List(ctx, movFilter)
				return wrap("movimientos", err)
			})
		case partSales:
			g.Go(func() (err error) {
				s.sales, err = uc.d.Sales.List(ctx, saleFilter)
				return wrap("ventas", err)
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("reporte: cargar %s: %w", what, err)
	}
	return nil
}

// cached resuelve el reporte desde la caché o lo calcula con build.
func cached[T any](ctx context.Context, c ReportCache, build func(context.Context) (T, error), keyParts ...string) (T, error) {
	var out T
	if c == nil {
		return build(ctx)
	}
	key, err := c.BuildKey(ctx, keyParts...)
	if err != nil {
		return build(ctx)
	}
	err = c.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) { return build(ctx) })
	return out, err
}

// Dashboard KPIs del panel principal.
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*report.DashboardStats, error) {
	now := uc.now().UTC()
	st, err := cached(ctx, uc.d.Cache, func(ctx context.Context) (report.DashboardStats, error) {
		since := now.Add(-report.RecentMovementsWindow)
		s, err := uc.load(ctx, repository.MovementFilter{From: &since}, repository.SaleFilter{},
			partProducts, partCategories, partSuppliers, partCustomers, partMovements, partSales)
		if err != nil {
			return report.DashboardStats{}, err
		}
		return report.Dashboard(report.DashboardInput{
			Products:        s.products,
			Movements:       s.movements,
			Sales:           s.sales,
			TotalCategories: len(s.categories),
			TotalSuppliers:  len(s.suppliers),
			TotalCustomers:  len(s.customers),
			Policy:          uc.d.Policy,
			Now:             now,
		}), nil
	}, "dashboard", now.Format("2006-01-02T15"))
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Categories desglose por categoría.
func (uc *ReportUseCase) Categories(ctx context.Context) ([]report.CategoryStats, error) {
	return cached(ctx, uc.d.Cache, func(ctx context.Context) ([]report.CategoryStats, error) {
		s, err := uc.load(ctx, repository.MovementFilter{}, repository.SaleFilter{}, partProducts, partCategories)
		if err != nil {
			return nil, err
		}
		return report.CategoryBreakdown(s.products, s.categories), nil
	}, "categories")
}

// InventoryValue valorización del inventario a costo.
func (uc *ReportUseCase) InventoryValue(ctx context.Context) (*report.InventoryValueReport, error) {
	rep, err := cached(ctx, uc.d.Cache, func(ctx context.Context) (report.InventoryValueReport, error) {
		s, err := uc.load(ctx, repository.MovementFilter{}, repository.SaleFilter{}, partProducts, partCategories, partSuppliers)
		if err != nil {
			return report.InventoryValueReport{}, err
		}
		return report.InventoryValue(s.products, report.CategoryNames(s.categories), report.SupplierNames(s.suppliers)), nil
	}, "inventory-value")
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// LowStock productos en o bajo el mínimo con la cantidad sugerida de reposición.
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]report.LowStockItem, error) {
	return cached(ctx, uc.d.Cache, func(ctx context.Context) ([]report.LowStockItem, error) {
		s, err := uc.load(ctx, repository.MovementFilter{}, repository.SaleFilter{}, partProducts, partCategories, partSuppliers)
		if err != nil {
			return nil, err
		}
		return report.LowStock(s.products, report.CategoryNames(s.categories), report.SupplierNames(s.suppliers), uc.d.Policy), nil
	}, "low-stock", strconv.Itoa(uc.d.Policy.ReorderMultiplier))
}

// Profit rentabilidad por producto en el período.
func (uc *ReportUseCase) Profit(ctx context.Context, period report.Period) (*report.ProfitReport, error) {
	rep, err := cached(ctx, uc.d.Cache, func(ctx context.Context) (report.ProfitReport, error) {
		s, err := uc.load(ctx, repository.MovementFilter{}, saleFilter(period), partProducts, partSales)
		if err != nil {
			return report.ProfitReport{}, err
		}
		return report.ProfitAnalysis(s.sales, s.products, period), nil
	}, append([]string{"profit"}, periodKey(period)...)...)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// TopProducts productos más vendidos por cantidad. limit fuera de 1..100 usa 10.
func (uc *ReportUseCase) TopProducts(ctx context.Context, period report.Period, limit int) ([]report.TopProduct, error) {
	if limit <= 0 || limit > maxTopProducts {
		limit = defaultTopProducts
	}
	key := append([]string{"top-products", strconv.Itoa(limit)}, periodKey(period)...)
	return cached(ctx, uc.d.Cache, func(ctx context.Context) ([]report.TopProduct, error) {
		s, err := uc.load(ctx, repository.MovementFilter{}, saleFilter(period), partProducts, partSales)
		if err != nil {
			return nil, err
		}
		return report.TopProducts(s.sales, s.products, period, limit), nil
	}, key...)
}

// SalesByDay ventas agrupadas por día.
func (uc *ReportUseCase) SalesByDay(ctx context.Context, period report.Period) ([]report.DailySales, error) {
	return cached(ctx, uc.d.Cache, func(ctx context.Context) ([]report.DailySales, error) {
		s, err := uc.load(ctx, repository.MovementFilter{}, saleFilter(period), partSales)
		if err != nil {
			return nil, err
		}
		return report.SalesByDay(s.sales, period), nil
	}, append([]string{"sales-by-day"}, periodKey(period)...)...)
}

// Outstanding ventas con pago pendiente.
func (uc *ReportUseCase) Outstanding(ctx context.Context) (*report.OutstandingReport, error) {
	now := uc.now().UTC()
	rep, err := cached(ctx, uc.d.Cache, func(ctx context.Context) (report.OutstandingReport, error) {
		s, err := uc.load(ctx, repository.MovementFilter{}, repository.SaleFilter{}, partCustomers, partSales)
		if err != nil {
			return report.OutstandingReport{}, err
		}
		names := make(report.Names, len(s.customers))
		for _, c := range s.customers {
			names[c.ID] = c.Name
		}
		return report.Outstanding(s.sales, names, now), nil
	}, "outstanding", now.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// MovementLines movimientos filtrados con nombre y SKU del producto (exportación CSV). Sin caché.
func (uc *ReportUseCase) MovementLines(ctx context.Context, filter repository.MovementFilter) ([]report.MovementLine, error) {
	s, err := uc.load(ctx, filter, repository.SaleFilter{}, partProducts, partMovements)
	if err != nil {
		return nil, err
	}
	return report.MovementLines(s.movements, s.products), nil
}

// InventorySnapshot productos con nombres de categoría/proveedor resueltos (exportación CSV). Sin caché.
func (uc *ReportUseCase) InventorySnapshot(ctx context.Context) (*report.InventoryValueReport, error) {
	s, err := uc.load(ctx, repository.MovementFilter{}, repository.SaleFilter{}, partProducts, partCategories, partSuppliers)
	if err != nil {
		return nil, err
	}
	rep := report.InventoryValue(s.products, report.CategoryNames(s.categories), report.SupplierNames(s.suppliers))
	return &rep, nil
}

func saleFilter(p report.Period) repository.SaleFilter {
	var f repository.SaleFilter
	if !p.From.IsZero() {
		from := p.From
		f.From = &from
	}
	if !p.To.IsZero() {
		to := p.To
		f.To = &to
	}
	return f
}

func periodKey(p report.Period) []string {
	stamp := func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return strconv.FormatInt(t.Unix(), 10)
	}
	return []string{stamp(p.From), stamp(p.To)}
}
