package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventory-system/internal/application/analytics"
	"github.com/jhoicas/inventory-system/internal/application/dto"
	"github.com/jhoicas/inventory-system/internal/domain/report"
)

// ReportHandler maneja los reportes agregados (/api/reports/*).
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      KPIs del panel principal
// @Description  Totales de catálogo, valor del inventario, stock bajo/agotado, movimientos de los últimos 7 días y ventas.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  report.DashboardStats
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	return respond(c)(h.uc.Dashboard(c.Context()))
}

// Categories godoc
// @Summary      Desglose por categoría
// @Tags         reports
// @Produce      json
// @Success      200  {array}  report.CategoryStats
// @Router       /api/reports/categories [get]
func (h *ReportHandler) Categories(c *fiber.Ctx) error {
	return respond(c)(h.uc.Categories(c.Context()))
}

// InventoryValue godoc
// @Summary      Valorización del inventario a costo
// @Tags         reports
// @Produce      json
// @Success      200  {object}  report.InventoryValueReport
// @Router       /api/reports/inventory-value [get]
func (h *ReportHandler) InventoryValue(c *fiber.Ctx) error {
	return respond(c)(h.uc.InventoryValue(c.Context()))
}

// LowStock godoc
// @Summary      Reporte de stock bajo
// @Tags         reports
// @Produce      json
// @Success      200  {array}  report.LowStockItem
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	return respond(c)(h.uc.LowStock(c.Context()))
}

// Profit godoc
// @Summary      Rentabilidad por producto
// @Tags         reports
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to    query  string  false  "Hasta (inclusive)"
// @Success      200  {object}  report.ProfitReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/profit [get]
func (h *ReportHandler) Profit(c *fiber.Ctx) error {
	period, _, err := parsePeriod(c)
	if err != nil {
		return fail(c, err)
	}
	return respond(c)(h.uc.Profit(c.Context(), period))
}

// TopProducts godoc
// @Summary      Productos más vendidos
// @Tags         reports
// @Produce      json
// @Param        from   query  string  false  "Desde"
// @Param        to     query  string  false  "Hasta (inclusive)"
// @Param        limit  query  int     false  "Máximo de productos (1..100)"  default(10)
// @Success      200  {array}  report.TopProduct
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/top-products [get]
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	period, limit, err := parsePeriod(c)
	if err != nil {
		return fail(c, err)
	}
	return respond(c)(h.uc.TopProducts(c.Context(), period, limit))
}

// Sales godoc
// @Summary      Ventas por día
// @Tags         reports
// @Produce      json
// @Param        from  query  string  false  "Desde"
// @Param        to    query  string  false  "Hasta (inclusive)"
// @Success      200  {array}  report.DailySales
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	period, _, err := parsePeriod(c)
	if err != nil {
		return fail(c, err)
	}
	return respond(c)(h.uc.SalesByDay(c.Context(), period))
}

// Outstanding godoc
// @Summary      Cuentas por cobrar
// @Tags         reports
// @Produce      json
// @Success      200  {object}  report.OutstandingReport
// @Router       /api/reports/outstanding [get]
func (h *ReportHandler) Outstanding(c *fiber.Ctx) error {
	return respond(c)(h.uc.Outstanding(c.Context()))
}

// respond serializa el resultado de un reporte o el error mapeado.
func respond(c *fiber.Ctx) func(any, error) error {
	return func(out any, err error) error {
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(out)
	}
}

func parsePeriod(c *fiber.Ctx) (report.Period, int, error) {
	var in dto.PeriodRequest
	if err := c.QueryParser(&in); err != nil {
		return report.Period{}, 0, err
	}
	var p report.Period
	from, err := dto.ParseDate(in.From, false)
	if err != nil {
		return p, 0, err
	}
	to, err := dto.ParseDate(in.To, true)
	if err != nil {
		return p, 0, err
	}
	if from != nil {
		p.From = *from
	}
	if to != nil {
		p.To = *to
	}
	return p, in.Limit, nil
}
