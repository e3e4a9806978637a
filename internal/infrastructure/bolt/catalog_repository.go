package bolt

import (
	"context"
	"sort"
	"strings"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
)

// ── Categorías ────────────────────────────────────────────────────────────────

// CategoryRepo categorías con nombre único.
type CategoryRepo struct {
	sc scope
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	return r.sc.update(ctx, func(tx *bbolt.Tx) error {
		if err := claim(tx, bucketCatName, c.Name, c.ID); err != nil {
			return err
		}
		return putJSON(tx, bucketCategories, c.ID, c)
	})
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var c *entity.Category
	err := r.sc.view(ctx, func(tx *bbolt.Tx) error {
		var err error
		c, err = getJSON[entity.Category](tx, bucketCategories, id)
		return err
	})
	return c, err
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var c *entity.Category
	err := r.sc.view(ctx, func(tx *bbolt.Tx) error {
		var err error
		c, err = lookup[entity.Category](tx, bucketCatName, bucketCategories, name)
		return err
	})
	return c, err
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	return r.sc.update(ctx, func(tx *bbolt.Tx) error {
		current, err := getJSON[entity.Category](tx, bucketCategories, c.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if err := reindex(tx, bucketCatName, current.Name, c.Name, c.ID); err != nil {
			return err
		}
		next := *c
		next.CreatedAt = current.CreatedAt
		return putJSON(tx, bucketCategories, c.ID, &next)
	})
}

func (r *CategoryRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.sc.view(ctx, func(tx *bbolt.Tx) error {
		all, err := allJSON[entity.Category](tx, bucketCategories)
		for _, c := range all {
			if matches(p.Search, c.Name, c.Description) {
				out = append(out, c)
			}
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return page(out, p.Limit, p.Offset), nil
}

// Delete borra la categoría; los productos que la referencian quedan con una referencia colgante.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return r.sc.update(ctx, func(tx *bbolt.Tx) error {
		c, err := getJSON[entity.Category](tx, bucketCategories, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if err := release(tx, bucketCatName, c.Name); err != nil {
			return err
		}
		return tx.Bucket(bucketCategories).Delete([]byte(id))
	})
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// SupplierRepo proveedores.
type SupplierRepo struct {
	sc scope
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	return createPlain(ctx, r.sc, bucketSuppliers, s.ID, s)
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	return getPlain[entity.Supplier](ctx, r.sc, bucketSuppliers, id)
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	return r.sc.update(ctx, func(tx *bbolt.Tx) error {
		current, err := getJSON[entity.Supplier](tx, bucketSuppliers, s.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		next := *s
		next.CreatedAt = current.CreatedAt
		return putJSON(tx, bucketSuppliers, s.ID, &next)
	})
}

func (r *SupplierRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.Supplier, error) {
	out, err := listPlain[entity.Supplier](ctx, r.sc, bucketSuppliers, func(s *entity.Supplier) bool {
		return matches(p.Search, s.Name, s.ContactPerson, s.Email, s.Phone)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return page(out, p.Limit, p.Offset), nil
}

// Delete borra el proveedor; los productos conservan la referencia colgante.
func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	return deletePlain(ctx, r.sc, bucketSuppliers, id)
}

// ── Clientes ──────────────────────────────────────────────────────────────────

// CustomerRepo clientes.
type CustomerRepo struct {
	sc scope
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	return createPlain(ctx, r.sc, bucketCustomers, c.ID, c)
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return getPlain[entity.Customer](ctx, r.sc, bucketCustomers, id)
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	return r.sc.update(ctx, func(tx *bbolt.Tx) error {
		current, err := getJSON[entity.Customer](tx, bucketCustomers, c.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		next := *c
		next.CreatedAt = current.CreatedAt
		return putJSON(tx, bucketCustomers, c.ID, &next)
	})
}

func (r *CustomerRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.Customer, error) {
	out, err := listPlain[entity.Customer](ctx, r.sc, bucketCustomers, func(c *entity.Customer) bool {
		return matches(p.Search, c.Name, c.Email, c.Phone, c.TaxNumber, c.City)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return page(out, p.Limit, p.Offset), nil
}

func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	return deletePlain(ctx, r.sc, bucketCustomers, id)
}

// ── helpers para entidades sin índices ───────────────────────────────────────

func createPlain(ctx context.Context, sc scope, bucket []byte, id string, v any) error {
	return sc.update(ctx, func(tx *bbolt.Tx) error {
		if tx.Bucket(bucket).Get([]byte(id)) != nil {
			return domain.ErrDuplicate
		}
		return putJSON(tx, bucket, id, v)
	})
}

func getPlain[T any](ctx context.Context, sc scope, bucket []byte, id string) (*T, error) {
	var v *T
	err := sc.view(ctx, func(tx *bbolt.Tx) error {
		var err error
		v, err = getJSON[T](tx, bucket, id)
		return err
	})
	return v, err
}

func listPlain[T any](ctx context.Context, sc scope, bucket []byte, keep func(*T) bool) ([]*T, error) {
	var out []*T
	err := sc.view(ctx, func(tx *bbolt.Tx) error {
		all, err := allJSON[T](tx, bucket)
		for _, v := range all {
			if keep(v) {
				out = append(out, v)
			}
		}
		return err
	})
	return out, err
}

func deletePlain(ctx context.Context, sc scope, bucket []byte, id string) error {
	return sc.update(ctx, func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b.Get([]byte(id)) == nil {
			return domain.ErrNotFound
		}
		return b.Delete([]byte(id))
	})
}
