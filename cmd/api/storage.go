package main

import (
	"context"

	appinventory "github.com/jhoicas/inventory-system/internal/application/inventory"
	"github.com/jhoicas/inventory-system/internal/application/sales"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
	"github.com/jhoicas/inventory-system/internal/infrastructure/bolt"
	"github.com/jhoicas/inventory-system/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-system/pkg/config"
	"github.com/jhoicas/inventory-system/pkg/logger"
)

// txRunner transacciones del libro de stock y de ventas.
type txRunner interface {
	appinventory.TxRunner
	sales.TxRunner
}

// storage repositorios del backend elegido por STORAGE_DRIVER.
type storage struct {
	products   repository.ProductRepository
	movements  repository.StockMovementRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	customers  repository.CustomerRepository
	users      repository.UserRepository
	sales      repository.SaleRepository
	settings   repository.SettingsRepository
	tx         txRunner
	ping       func(context.Context) error
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverBolt {
		store, err := bolt.Open(cfg.Storage.BoltPath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.Storage.BoltPath).Msg("almacenamiento bbolt abierto")
		return &storage{
			products:   store.Products(),
			movements:  store.Movements(),
			categories: store.Categories(),
			suppliers:  store.Suppliers(),
			customers:  store.Customers(),
			users:      store.Users(),
			sales:      store.Sales(),
			settings:   store.Settings(),
			tx:         store.TxRunner(),
			ping:       store.Ping,
			close:      func() { _ = store.Close() },
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	log.Info().Msg("PostgreSQL conectado y migrado")
	return &storage{
		products:   postgres.NewProductRepository(pool),
		movements:  postgres.NewStockMovementRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		suppliers:  postgres.NewSupplierRepository(pool),
		customers:  postgres.NewCustomerRepository(pool),
		users:      postgres.NewUserRepository(pool),
		sales:      postgres.NewSaleRepository(pool),
		settings:   postgres.NewSettingsRepository(pool),
		tx:         postgres.NewTxRunner(pool),
		ping:       pool.Ping,
		close:      pool.Close,
	}, nil
}
