package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	appanalytics "github.com/jhoicas/inventory-system/internal/application/analytics"
	"github.com/jhoicas/inventory-system/internal/application/inventory"
	"github.com/jhoicas/inventory-system/internal/application/sales"
	"github.com/jhoicas/inventory-system/internal/application/usecase"
	domaininv "github.com/jhoicas/inventory-system/internal/domain/inventory"
	"github.com/jhoicas/inventory-system/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/inventory-system/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/inventory-system/internal/interfaces/http"
	"github.com/jhoicas/inventory-system/pkg/config"
	"github.com/jhoicas/inventory-system/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})
	defer log.Close()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.close()

	policy := domaininv.NewStockPolicy(cfg.Inventory.ReorderMultiplier)

	// Caché de reportes: opcional; sin Redis los reportes se calculan en cada petición.
	var (
		reportCache appanalytics.ReportCache
		invalidator inventory.ReportInvalidator
	)
	if cfg.Redis.Addr != "" {
		client, err := cache.New(ctx, cache.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, reportes sin caché")
		} else {
			defer client.Close()
			rc := cache.NewReportCache(client, cfg.Redis.ReportTTL, log)
			reportCache, invalidator = rc, rc
			log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.ReportTTL).Msg("caché de reportes activa")
		}
	}

	registerMovementUC := inventory.NewRegisterMovementUseCase(store.tx, policy, invalidator, log)
	saleUC := sales.NewSaleUseCase(sales.Deps{
		TxRunner:     store.tx,
		Ledger:       registerMovementUC,
		SaleRepo:     store.sales,
		ProductRepo:  store.products,
		CustomerRepo: store.customers,
		SettingsRepo: store.settings,
		Generator:    infrapdf.NewReceiptGenerator("es"),
		TaxRate:      cfg.Sales.TaxRate,
		Invalidator:  invalidator,
		Log:          log,
	})
	reportUC := appanalytics.NewReportUseCase(appanalytics.Deps{
		Products:   store.products,
		Categories: store.categories,
		Suppliers:  store.suppliers,
		Customers:  store.customers,
		Movements:  store.movements,
		Sales:      store.sales,
		Cache:      reportCache,
		Policy:     policy,
	})

	deps := httpRouter.RouterDeps{
		ProductUC:        usecase.NewProductUseCase(store.products, store.categories, store.suppliers, store.tx, policy, invalidator),
		CategoryUC:       usecase.NewCategoryUseCase(store.categories, invalidator),
		SupplierUC:       usecase.NewSupplierUseCase(store.suppliers, invalidator),
		CustomerUC:       usecase.NewCustomerUseCase(store.customers, invalidator),
		UserUC:           usecase.NewUserUseCase(store.users),
		SettingsUC:       usecase.NewSettingsUseCase(store.settings),
		RegisterMovement: registerMovementUC,
		MovementQuery:    inventory.NewMovementQueryUseCase(store.movements),
		Alerts:           inventory.NewAlertsUseCase(store.products, store.categories, store.suppliers, policy),
		SaleUC:           saleUC,
		ReportUC:         reportUC,
	}

	opts := []httpRouter.AppOption{
		httpRouter.WithLogger(log),
		httpRouter.WithTimeouts(10*time.Second, 10*time.Second, 60*time.Second),
		httpRouter.WithHealthCheck(store.ping),
	}
	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		opts = append(opts, httpRouter.WithMiddleware(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventory System API",
		})))
	}
	app := httpRouter.NewApp(cfg.App.Name, deps, opts...)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
