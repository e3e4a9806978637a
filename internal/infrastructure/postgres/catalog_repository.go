package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
)

// execAffecting ejecuta un UPDATE/DELETE y traduce 0 filas a ErrNotFound y 23505 a ErrDuplicate.
func execAffecting(ctx context.Context, q Querier, what, query string, args ...any) error {
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("%s: %w", what, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// collect recorre rows con scan.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	defer rows.Close()
	var out []*T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// one traduce pgx.ErrNoRows a (nil, nil).
func one[T any](v *T, err error, what string) (*T, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return v, nil
}

// ── Categorías ────────────────────────────────────────────────────────────────

const categoryColumns = `id, name, description, created_at, updated_at`

// CategoryRepo categorías (nombre único sin distinguir mayúsculas).
type CategoryRepo struct {
	q Querier
}

func NewCategoryRepository(q Querier) *CategoryRepo { return &CategoryRepo{q: q} }

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `INSERT INTO categories (`+categoryColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	return one(c, err, "get category")
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE lower(name) = lower($1)`, name))
	return one(c, err, "get category by name")
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	return execAffecting(ctx, r.q, "update category",
		`UPDATE categories SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		c.ID, c.Name, c.Description, c.UpdatedAt)
}

func (r *CategoryRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.Category, error) {
	var w where
	w.search(p.Search, "name", "description")
	query := `SELECT `+categoryColumns+` FROM categories`+w.sql()+` ORDER BY lower(name)`+w.page(p.Limit, p.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return collect(rows, scanCategory)
}

// Delete borra la categoría; los productos que la referencian quedan con una referencia colgante.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return execAffecting(ctx, r.q, "delete category", `DELETE FROM categories WHERE id = $1`, id)
}

// ── Proveedores ───────────────────────────────────────────────────────────────

const supplierColumns = `id, name, contact_person, email, phone, address, notes, created_at, updated_at`

// SupplierRepo proveedores.
type SupplierRepo struct {
	q Querier
}

func NewSupplierRepository(q Querier) *SupplierRepo { return &SupplierRepo{q: q} }

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(&s.ID, &s.Name, &s.ContactPerson, &s.Email, &s.Phone, &s.Address, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `INSERT INTO suppliers (`+supplierColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.Name, s.ContactPerson, s.Email, s.Phone, s.Address, s.Notes, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	return one(s, err, "get supplier")
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	return execAffecting(ctx, r.q, "update supplier", `
		UPDATE suppliers SET name = $2, contact_person = $3, email = $4, phone = $5, address = $6,
			notes = $7, updated_at = $8
		WHERE id = $1`,
		s.ID, s.Name, s.ContactPerson, s.Email, s.Phone, s.Address, s.Notes, s.UpdatedAt)
}

func (r *SupplierRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.Supplier, error) {
	var w where
	w.search(p.Search, "name", "contact_person", "email", "phone")
	query := `SELECT `+supplierColumns+` FROM suppliers`+w.sql()+` ORDER BY lower(name)`+w.page(p.Limit, p.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return collect(rows, scanSupplier)
}

func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	return execAffecting(ctx, r.q, "delete supplier", `DELETE FROM suppliers WHERE id = $1`, id)
}

// ── Clientes ──────────────────────────────────────────────────────────────────

const customerColumns = `id, name, email, phone, address, city, state, zip_code, tax_number, customer_type,
	credit_limit, payment_terms, notes, is_active, created_at, updated_at`

// CustomerRepo clientes.
type CustomerRepo struct {
	q Querier
}

func NewCustomerRepository(q Querier) *CustomerRepo { return &CustomerRepo{q: q} }

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.City, &c.State, &c.ZipCode,
		&c.TaxNumber, &c.CustomerType, &c.CreditLimit, &c.PaymentTerms, &c.Notes, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		c.ID, c.Name, c.Email, c.Phone, c.Address, c.City, c.State, c.ZipCode, c.TaxNumber,
		c.CustomerType, c.CreditLimit, c.PaymentTerms, c.Notes, c.IsActive, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	return one(c, err, "get customer")
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	return execAffecting(ctx, r.q, "update customer", `
		UPDATE customers SET name = $2, email = $3, phone = $4, address = $5, city = $6, state = $7,
			zip_code = $8, tax_number = $9, customer_type = $10, credit_limit = $11, payment_terms = $12,
			notes = $13, is_active = $14, updated_at = $15
		WHERE id = $1`,
		c.ID, c.Name, c.Email, c.Phone, c.Address, c.City, c.State, c.ZipCode, c.TaxNumber,
		c.CustomerType, c.CreditLimit, c.PaymentTerms, c.Notes, c.IsActive, c.UpdatedAt)
}

func (r *CustomerRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.Customer, error) {
	var w where
	w.search(p.Search, "name", "email", "phone", "tax_number", "city")
	query := `SELECT `+customerColumns+` FROM customers`+w.sql()+` ORDER BY lower(name)`+w.page(p.Limit, p.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return collect(rows, scanCustomer)
}

func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	return execAffecting(ctx, r.q, "delete customer", `DELETE FROM customers WHERE id = $1`, id)
}
