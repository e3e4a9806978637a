package bolt

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.etcd.io/bbolt"

	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre bbolt.
type ProductRepo struct {
	sc scope
}

// Create persiste un producto reservando sku y barcode.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.sc.update(ctx, func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketProducts).Get([]byte(product.ID)) != nil {
			return domain.ErrDuplicate
		}
		if err := claim(tx, bucketSKU, product.SKU, product.ID); err != nil {
			return err
		}
		if err := claim(tx, bucketBarcode, product.Barcode, product.ID); err != nil {
			return err
		}
		return putJSON(tx, bucketProducts, product.ID, product)
	})
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var p *entity.Product
	err := r.sc.view(ctx, func(tx *bbolt.Tx) error {
		var err error
		p, err = getJSON[entity.Product](tx, bucketProducts, id)
		return err
	})
	return p, err
}

// GetBySKU obtiene un producto por SKU (sin distinguir mayúsculas).
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	var p *entity.Product
	err := r.sc.view(ctx, func(tx *bbolt.Tx) error {
		var err error
		p, err = lookup[entity.Product](tx, bucketSKU, bucketProducts, sku)
		return err
	})
	return p, err
}

// GetByBarcode obtiene un producto por código de barras.
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	var p *entity.Product
	err := r.sc.view(ctx, func(tx *bbolt.Tx) error {
		var err error
		p, err = lookup[entity.Product](tx, bucketBarcode, bucketProducts, barcode)
		return err
	})
	return p, err
}

// GetForUpdate en bbolt el bloqueo lo da la transacción de escritura del TxRunner (escritor único).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// Update reemplaza los campos editables; current_stock y created_at se conservan.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return r.sc.update(ctx, func(tx *bbolt.Tx) error {
		current, err := getJSON[entity.Product](tx, bucketProducts, product.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if err := reindex(tx, bucketSKU, current.SKU, product.SKU, product.ID); err != nil {
			return err
		}
		if err := reindex(tx, bucketBarcode, current.Barcode, product.Barcode, product.ID); err != nil {
			return err
		}
		next := *product
		next.CurrentStock = current.CurrentStock
		next.CreatedAt = current.CreatedAt
		return putJSON(tx, bucketProducts, next.ID, &next)
	})
}

// UpdateStock fija current_stock (solo lo usa el libro de stock).
func (r *ProductRepo) UpdateStock(ctx context.Context, productID string, newStock int) error {
	return r.mutate(ctx, productID, func(p *entity.Product) { p.CurrentStock = newStock })
}

// UpdateCost fija cost_price (promedio ponderado tras una entrada).
func (r *ProductRepo) UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error {
	return r.mutate(ctx, productID, func(p *entity.Product) { p.CostPrice = cost })
}

func (r *ProductRepo) mutate(ctx context.Context, productID string, fn func(p *entity.Product)) error {
	return r.sc.update(ctx, func(tx *bbolt.Tx) error {
		p, err := getJSON[entity.Product](tx, bucketProducts, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		fn(p)
		p.UpdatedAt = time.Now().UTC()
		return putJSON(tx, bucketProducts, p.ID, p)
	})
}

// List filtra, ordena por nombre y pagina.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.sc.view(ctx, func(tx *bbolt.Tx) error {
		all, err := allJSON[entity.Product](tx, bucketProducts)
		if err != nil {
			return err
		}
		for _, p := range all {
			if f.CategoryID != "" && p.CategoryID != f.CategoryID {
				continue
			}
			if f.SupplierID != "" && p.SupplierID != f.SupplierID {
				continue
			}
			if f.LowStockOnly && p.CurrentStock > p.MinStock {
				continue
			}
			if !matches(f.Search, p.Name, p.SKU, p.Barcode, p.Description, p.Manufacturer) {
				continue
			}
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].SKU < out[j].SKU
	})
	return page(out, f.Limit, f.Offset), nil
}

// Delete elimina el producto y libera sus índices. Los movimientos históricos se conservan.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.sc.update(ctx, func(tx *bbolt.Tx) error {
		p, err := getJSON[entity.Product](tx, bucketProducts, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := release(tx, bucketSKU, p.SKU); err != nil {
			return err
		}
		if err := release(tx, bucketBarcode, p.Barcode); err != nil {
			return err
		}
		return tx.Bucket(bucketProducts).Delete([]byte(id))
	})
}
