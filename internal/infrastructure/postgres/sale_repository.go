package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
)

var (
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ repository.SettingsRepository = (*SettingsRepo)(nil)
)

const (
	saleColumns = `id, invoice_number, customer_id, sale_date, subtotal, discount_amount, tax_amount,
	total_amount, payment_status, payment_method, salesperson_id, notes, created_at, updated_at`
	saleItemColumns = `id, sale_id, product_id, quantity, unit_price, discount_percentage,
	discount_amount, line_total, created_at`
)

// SaleRepo ventas con sus líneas (sale_items).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el repositorio sobre pool o tx.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.InvoiceNumber, &s.CustomerID, &s.SaleDate, &s.Subtotal, &s.DiscountAmount,
		&s.TaxAmount, &s.TotalAmount, &s.PaymentStatus, &s.PaymentMethod, &s.SalespersonID, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSaleItem(row pgx.Row) (*entity.SaleItem, error) {
	var it entity.SaleItem
	err := row.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.DiscountPercentage,
		&it.DiscountAmount, &it.LineTotal, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create inserta la cabecera y todas las líneas en un solo batch.
// Llamar dentro de RunSales para que sea atómico con los movimientos de stock.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	batch := &pgx.Batch{}
	batch.Queue(`INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		s.ID, s.InvoiceNumber, s.CustomerID, s.SaleDate, s.Subtotal, s.DiscountAmount, s.TaxAmount,
		s.TotalAmount, s.PaymentStatus, s.PaymentMethod, s.SalespersonID, s.Notes, s.CreatedAt, s.UpdatedAt)
	for _, it := range s.Items {
		batch.Queue(`INSERT INTO sale_items (`+saleItemColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, s.ID, it.ProductID, it.Quantity, it.UnitPrice, it.DiscountPercentage,
			it.DiscountAmount, it.LineTotal, it.CreatedAt)
	}

	br := r.q.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert sale: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene la venta con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	s, err = one(s, err, "get sale")
	if err != nil || s == nil {
		return s, err
	}
	return s, r.attachItems(ctx, []*entity.Sale{s})
}

// GetByInvoiceNumber busca por número de factura (sin distinguir mayúsculas).
func (r *SaleRepo) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE lower(invoice_number) = lower($1)`, invoiceNumber))
	s, err = one(s, err, "get sale by invoice")
	if err != nil || s == nil {
		return s, err
	}
	return s, r.attachItems(ctx, []*entity.Sale{s})
}

// List lista ventas filtradas con sus líneas, más recientes primero.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	var w where
	if f.CustomerID != "" {
		w.add("customer_id = " + w.arg(f.CustomerID))
	}
	if f.PaymentStatus != "" {
		w.add("payment_status = " + w.arg(f.PaymentStatus))
	}
	if f.From != nil {
		w.add("sale_date >= " + w.arg(*f.From))
	}
	if f.To != nil {
		w.add("sale_date <= " + w.arg(*f.To))
	}
	query := `SELECT ` + saleColumns + ` FROM sales` + w.sql() + ` ORDER BY sale_date DESC, id` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	list, err := collect(rows, scanSale)
	if err != nil {
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	return list, r.attachItems(ctx, list)
}

// attachItems carga las líneas de todas las ventas con una sola consulta.
func (r *SaleRepo) attachItems(ctx context.Context, list []*entity.Sale) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, 0, len(list))
	byID := make(map[string]*entity.Sale, len(list))
	for _, s := range list {
		ids = append(ids, s.ID)
		byID[s.ID] = s
		s.Items = []entity.SaleItem{}
	}
	rows, err := r.q.Query(ctx, `SELECT `+saleItemColumns+` FROM sale_items WHERE sale_id = ANY($1) ORDER BY created_at, id`, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	items, err := collect(rows, scanSaleItem)
	if err != nil {
		return fmt.Errorf("scan sale item: %w", err)
	}
	for _, it := range items {
		if s, ok := byID[it.SaleID]; ok {
			s.Items = append(s.Items, *it)
		}
	}
	return nil
}

// UpdatePayment cambia estado y, si method no es vacío, método de pago.
func (r *SaleRepo) UpdatePayment(ctx context.Context, id, status, method string) error {
	return execAffecting(ctx, r.q, "update sale payment", `
		UPDATE sales SET payment_status = $2,
			payment_method = CASE WHEN $3::text = '' THEN payment_method ELSE $3 END,
			updated_at = now()
		WHERE id = $1`, id, status, method)
}

// Delete borra la venta; las líneas se borran en cascada.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	return execAffecting(ctx, r.q, "delete sale", `DELETE FROM sales WHERE id = $1`, id)
}

// ── Empresa ───────────────────────────────────────────────────────────────────

// SettingsRepo registro único de datos de la empresa (id = 1).
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el repositorio.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve la configuración o nil si aún no se cargó.
func (r *SettingsRepo) Get(ctx context.Context) (*entity.CompanySettings, error) {
	var s entity.CompanySettings
	err := r.q.QueryRow(ctx, `SELECT company_name, address, phone, email, tax_number, updated_at
		FROM company_settings WHERE id = 1`).Scan(&s.CompanyName, &s.Address, &s.Phone, &s.Email, &s.TaxNumber, &s.UpdatedAt)
	return one(&s, err, "get settings")
}

// Upsert crea o reemplaza la configuración.
func (r *SettingsRepo) Upsert(ctx context.Context, s *entity.CompanySettings) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO company_settings (id, company_name, address, phone, email, tax_number, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET company_name = EXCLUDED.company_name, address = EXCLUDED.address,
			phone = EXCLUDED.phone, email = EXCLUDED.email, tax_number = EXCLUDED.tax_number,
			updated_at = EXCLUDED.updated_at`,
		s.CompanyName, s.Address, s.Phone, s.Email, s.TaxNumber, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
