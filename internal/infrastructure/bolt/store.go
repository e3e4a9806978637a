// Package bolt implementa los puertos de persistencia sobre un archivo bbolt embebido
// (modo servidor local, sin base de datos externa). Cada entidad vive en su bucket como JSON;
// las claves naturales únicas (sku, barcode, nombre de categoría, email, factura) tienen su
// bucket índice. bbolt admite un único escritor a la vez: cada transacción de escritura
// serializa el libro de stock completo.
package bolt

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var (
	bucketProducts   = []byte("products")
	bucketSKU        = []byte("idx_product_sku")
	bucketBarcode    = []byte("idx_product_barcode")
	bucketMovements  = []byte("stock_movements")
	bucketCategories = []byte("categories")
	bucketCatName    = []byte("idx_category_name")
	bucketSuppliers  = []byte("suppliers")
	bucketCustomers  = []byte("customers")
	bucketUsers      = []byte("users")
	bucketUserEmail  = []byte("idx_user_email")
	bucketSales      = []byte("sales")
	bucketInvoice    = []byte("idx_sale_invoice")
	bucketSettings   = []byte("company_settings")
)

var allBuckets = [][]byte{
	bucketProducts, bucketSKU, bucketBarcode, bucketMovements,
	bucketCategories, bucketCatName, bucketSuppliers, bucketCustomers,
	bucketUsers, bucketUserEmail, bucketSales, bucketInvoice, bucketSettings,
}

// Store agrupa el archivo bbolt y construye repositorios sobre él.
type Store struct {
	db *bbolt.DB
}

// Open abre (o crea) el archivo y asegura que existan todos los buckets.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close libera el archivo.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifica que el archivo siga accesible.
func (s *Store) Ping(ctx context.Context) error {
	return s.root().view(ctx, func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketProducts) == nil {
			return fmt.Errorf("bolt: bucket %s ausente", bucketProducts)
		}
		return nil
	})
}

func (s *Store) root() scope { return scope{db: s.db} }

// Repositorios fuera de transacción (cada llamada abre su propia tx).
func (s *Store) Products() *ProductRepo { return &ProductRepo{s.root()} }
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s.root()} }
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s.root()} }
func (s *Store) Suppliers() *SupplierRepo { return &SupplierRepo{s.root()} }
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s.root()} }
func (s *Store) Users() *UserRepo { return &UserRepo{s.root()} }
func (s *Store) Sales() *SaleRepo { return &SaleRepo{s.root()} }
func (s *Store) Settings() *SettingsRepo { return &SettingsRepo{s.root()} }
func (s *Store) TxRunner() *TxRunner { return &TxRunner{db: s.db} }

// scope ejecuta sobre la tx del llamador si existe; si no, abre una propia.
type scope struct {
	db *bbolt.DB
	tx *bbolt.Tx
}

func (s scope) view(ctx context.Context, fn func(tx *bbolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.tx != nil {
		return fn(s.tx)
	}
	return s.db.View(fn)
}

func (s scope) update(ctx context.Context, fn func(tx *bbolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.tx != nil {
		return fn(s.tx)
	}
	return s.db.Update(fn)
}
