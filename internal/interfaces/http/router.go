package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventory-system/internal/application/analytics"
	"github.com/jhoicas/inventory-system/internal/application/dto"
	"github.com/jhoicas/inventory-system/internal/application/inventory"
	"github.com/jhoicas/inventory-system/internal/application/sales"
	"github.com/jhoicas/inventory-system/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	CategoryUC       *usecase.CategoryUseCase
	SupplierUC       *usecase.SupplierUseCase
	CustomerUC       *usecase.CustomerUseCase
	UserUC           *usecase.UserUseCase
	SettingsUC       *usecase.SettingsUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementQuery    *inventory.MovementQueryUseCase
	Alerts           *inventory.AlertsUseCase
	SaleUC           *sales.SaleUseCase
	ReportUC         *appanalytics.ReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", ActorMiddleware())

	// Products (las rutas fijas van antes de /:id)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Alerts)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/barcode/:barcode", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Catálogos
	NewCatalogHandler[dto.CategoryRequest, dto.CategoryResponse](deps.CategoryUC).Register(api.Group("/categories"))
	NewCatalogHandler[dto.SupplierRequest, dto.SupplierResponse](deps.SupplierUC).Register(api.Group("/suppliers"))
	NewCatalogHandler[dto.CustomerRequest, dto.CustomerResponse](deps.CustomerUC).Register(api.Group("/customers"))
	NewCatalogHandler[dto.UserRequest, dto.UserResponse](deps.UserUC).Register(api.Group("/users"))

	// Libro de stock
	movements := api.Group("/stock-movements")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.MovementQuery)
	movements.Get("/", inventoryHandler.ListMovements)
	movements.Post("/", inventoryHandler.RegisterMovement)
	movements.Get("/:id", inventoryHandler.GetMovement)

	// Ventas
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Delete("/:id", saleHandler.Delete)
	salesGroup.Patch("/:id/payment", saleHandler.UpdatePayment)
	salesGroup.Get("/:id/pdf", saleHandler.Receipt)

	// Empresa
	companyHandler := NewCompanyHandler(deps.SettingsUC)
	api.Get("/settings", companyHandler.Get)
	api.Put("/settings", companyHandler.Update)

	// Reportes
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/dashboard", reportHandler.Dashboard)
	reports.Get("/categories", reportHandler.Categories)
	reports.Get("/inventory-value", reportHandler.InventoryValue)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/profit", reportHandler.Profit)
	reports.Get("/top-products", reportHandler.TopProducts)
	reports.Get("/sales", reportHandler.Sales)
	reports.Get("/outstanding", reportHandler.Outstanding)

	// Exportaciones CSV
	exports := api.Group("/exports")
	exportHandler := NewExportHandler(deps.ReportUC, deps.Alerts)
	exports.Get("/inventory.csv", exportHandler.Inventory)
	exports.Get("/low-stock.csv", exportHandler.LowStock)
	exports.Get("/movements.csv", exportHandler.Movements)
}

// NewApp crea la aplicación fiber con el log de peticiones, el manejo de pánicos y /health.
func NewApp(name string, deps RouterDeps, opts ...AppOption) *fiber.App {
	cfg := appConfig{name: name}
	for _, o := range opts {
		o(&cfg)
	}
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  cfg.readTimeout,
		WriteTimeout: cfg.writeTimeout,
		IdleTimeout:  cfg.idleTimeout,
		ErrorHandler: errorHandler,
	})
	if cfg.log != nil {
		app.Use(RequestLog(cfg.log))
	}
	app.Use(recoverer())
	for _, m := range cfg.middleware {
		app.Use(m)
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		if cfg.health != nil {
			if err := cfg.health(c.Context()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": name, "error": err.Error()})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": name})
	})
	Router(app, deps)
	return app
}
