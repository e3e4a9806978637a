package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventory-system/internal/application/analytics"
	"github.com/jhoicas/inventory-system/internal/application/dto"
	appinventory "github.com/jhoicas/inventory-system/internal/application/inventory"
	"github.com/jhoicas/inventory-system/internal/infrastructure/csvexport"
)

// ExportHandler descargas CSV. Se leen siempre del almacenamiento, sin caché.
type ExportHandler struct {
	reports *appanalytics.ReportUseCase
	alerts  *appinventory.AlertsUseCase
	now     func() time.Time
}

// NewExportHandler construye el handler.
func NewExportHandler(reports *appanalytics.ReportUseCase, alerts *appinventory.AlertsUseCase) *ExportHandler {
	return &ExportHandler{reports: reports, alerts: alerts, now: time.Now}
}

// Inventory godoc
// @Summary      Exportar inventario (CSV)
// @Tags         exports
// @Produce      text/csv
// @Success      200  {file}  binary
// @Router       /api/exports/inventory.csv [get]
func (h *ExportHandler) Inventory(c *fiber.Ctx) error {
	rep, err := h.reports.InventorySnapshot(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return h.send(c, "inventory")(csvexport.Inventory(rep.Items))
}

// LowStock godoc
// @Summary      Exportar stock bajo (CSV)
// @Tags         exports
// @Produce      text/csv
// @Success      200  {file}  binary
// @Router       /api/exports/low-stock.csv [get]
func (h *ExportHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.alerts.LowStock(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return h.send(c, "low_stock")(csvexport.LowStock(items))
}

// Movements godoc
// @Summary      Exportar movimientos (CSV)
// @Description  Acepta los mismos filtros que GET /api/stock-movements; sin limit exporta todo.
// @Tags         exports
// @Produce      text/csv
// @Param        product_id  query  string  false  "Producto"
// @Param        type        query  string  false  "Tipo de movimiento"
// @Param        from        query  string  false  "Desde"
// @Param        to          query  string  false  "Hasta (inclusive)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/exports/movements.csv [get]
func (h *ExportHandler) Movements(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	limit := in.Limit
	filter, err := movementFilter(in)
	if err != nil {
		return fail(c, err)
	}
	if limit <= 0 {
		filter.Limit, filter.Offset = 0, 0
	}
	lines, err := h.reports.MovementLines(c.Context(), filter)
	if err != nil {
		return fail(c, err)
	}
	return h.send(c, "movements")(csvexport.Movements(lines))
}

func (h *ExportHandler) send(c *fiber.Ctx, kind string) func([]byte, error) error {
	return func(body []byte, err error) error {
		if err != nil {
			return fail(c, err)
		}
		c.Set(fiber.HeaderContentType, csvexport.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", csvexport.Filename(kind, h.now())))
		return c.Send(body)
	}
}
