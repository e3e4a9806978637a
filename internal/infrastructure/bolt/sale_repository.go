package bolt

import (
	"context"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
)

var (
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ repository.SettingsRepository = (*SettingsRepo)(nil)
)

// SaleRepo ventas; las líneas se guardan dentro del documento de la venta.
type SaleRepo struct {
	sc scope
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	return r.sc.update(ctx, func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketSales).Get([]byte(s.ID)) != nil {
			return domain.ErrDuplicate
		}
		if err := claim(tx, bucketInvoice, s.InvoiceNumber, s.ID); err != nil {
			return err
		}
		return putJSON(tx, bucketSales, s.ID, s)
	})
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return getPlain[entity.Sale](ctx, r.sc, bucketSales, id)
}

func (r *SaleRepo) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*entity.Sale, error) {
	var s *entity.Sale
	err := r.sc.view(ctx, func(tx *bbolt.Tx) error {
		var err error
		s, err = lookup[entity.Sale](tx, bucketInvoice, bucketSales, invoiceNumber)
		return err
	})
	return s, err
}

// List filtra por cliente, estado y fecha de venta; más recientes primero.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	out, err := listPlain[entity.Sale](ctx, r.sc, bucketSales, func(s *entity.Sale) bool {
		switch {
		case f.CustomerID != "" && s.CustomerID != f.CustomerID:
			return false
		case f.PaymentStatus != "" && s.PaymentStatus != f.PaymentStatus:
			return false
		case f.From != nil && s.SaleDate.Before(*f.From):
			return false
		case f.To != nil && s.SaleDate.After(*f.To):
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].SaleDate.Equal(out[j].SaleDate) {
			return out[i].SaleDate.After(out[j].SaleDate)
		}
		return out[i].InvoiceNumber > out[j].InvoiceNumber
	})
	return page(out, f.Limit, f.Offset), nil
}

func (r *SaleRepo) UpdatePayment(ctx context.Context, id, status, method string) error {
	return r.sc.update(ctx, func(tx *bbolt.Tx) error {
		s, err := getJSON[entity.Sale](tx, bucketSales, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		s.PaymentStatus = status
		if method != "" {
			s.PaymentMethod = method
		}
		s.UpdatedAt = time.Now().UTC()
		return putJSON(tx, bucketSales, id, s)
	})
}

func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	return r.sc.update(ctx, func(tx *bbolt.Tx) error {
		s, err := getJSON[entity.Sale](tx, bucketSales, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		if err := release(tx, bucketInvoice, s.InvoiceNumber); err != nil {
			return err
		}
		return tx.Bucket(bucketSales).Delete([]byte(id))
	})
}

// ── Configuración de empresa ──────────────────────────────────────────────────

const settingsKey = "company"

// SettingsRepo registro único de datos de la empresa.
type SettingsRepo struct {
	sc scope
}

func (r *SettingsRepo) Get(ctx context.Context) (*entity.CompanySettings, error) {
	return getPlain[entity.CompanySettings](ctx, r.sc, bucketSettings, settingsKey)
}

func (r *SettingsRepo) Upsert(ctx context.Context, s *entity.CompanySettings) error {
	return r.sc.update(ctx, func(tx *bbolt.Tx) error {
		return putJSON(tx, bucketSettings, settingsKey, s)
	})
}
