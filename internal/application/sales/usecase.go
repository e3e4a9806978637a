// Package sales contiene los casos de uso de ventas: cada venta descuenta stock por línea
// dentro de una sola transacción y su anulación lo devuelve.
package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-system/internal/application/inventory"
	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
	domainsales "github.com/jhoicas/inventory-system/internal/domain/sales"
	"github.com/jhoicas/inventory-system/pkg/logger"
)

// Motivos registrados en el libro de stock.
const (
	ReasonSale        = "sale"
	ReasonSaleDeleted = "sale deleted"
)

// SaleUseCase crea, consulta, cobra y anula ventas.
type SaleUseCase struct {
	txRunner     TxRunner
	ledger       StockLedger
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	settingsRepo repository.SettingsRepository
	generator    ReceiptGenerator
	taxRate      decimal.Decimal
	invalidator  inventory.ReportInvalidator
	log          *logger.Logger
	now          func() time.Time
}

// Deps dependencias del caso de uso de ventas.
type Deps struct {
	TxRunner     TxRunner
	Ledger       StockLedger
	SaleRepo     repository.SaleRepository
	ProductRepo  repository.ProductRepository
	CustomerRepo repository.CustomerRepository
	SettingsRepo repository.SettingsRepository
	Generator    ReceiptGenerator
	TaxRate      decimal.Decimal // porcentaje
	Invalidator  inventory.ReportInvalidator
	Log          *logger.Logger
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(d Deps) *SaleUseCase {
	if d.Invalidator == nil {
		d.Invalidator = inventory.NoopInvalidator
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return &SaleUseCase{
		txRunner:     d.TxRunner,
		ledger:       d.Ledger,
		saleRepo:     d.SaleRepo,
		productRepo:  d.ProductRepo,
		customerRepo: d.CustomerRepo,
		settingsRepo: d.SettingsRepo,
		generator:    d.Generator,
		taxRate:      d.TaxRate,
		invalidator:  d.Invalidator,
		log:          d.Log,
		now:          time.Now,
	}
}

// CreateSaleItem línea pedida. UnitPrice cero = precio de venta del producto.
type CreateSaleItem struct {
	ProductID          string
	Quantity           int
	UnitPrice          decimal.Decimal
	DiscountPercentage decimal.Decimal
}

// CreateSaleInput datos de una venta nueva.
type CreateSaleInput struct {
	InvoiceNumber string
	CustomerID    string
	SaleDate      time.Time // cero = ahora
	PaymentStatus string    // vacío = pending
	PaymentMethod string
	SalespersonID string
	Notes         string
	Items         []CreateSaleItem
}

// Create valida, calcula totales y registra una salida por línea junto con la venta, todo en una tx.
// Un ErrInsufficientStock en cualquier línea deshace la venta completa.
func (uc *SaleUseCase) Create(ctx context.Context, actorID string, in CreateSaleInput) (*entity.Sale, error) {
	in.InvoiceNumber = strings.TrimSpace(in.InvoiceNumber)
	if in.InvoiceNumber == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentStatus == "" {
		in.PaymentStatus = entity.PaymentStatusPending
	}
	if !entity.ValidPaymentStatus(in.PaymentStatus) {
		return nil, domain.ErrInvalidInput
	}
	if in.SalespersonID == "" {
		in.SalespersonID = actorID
	}

	if existing, err := uc.saleRepo.GetByInvoiceNumber(ctx, in.InvoiceNumber); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, fmt.Errorf("cliente %s: %w", in.CustomerID, domain.ErrNotFound)
		}
	}

	now := uc.now().UTC()
	saleID := uuid.New().String()
	items := make([]entity.SaleItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		price := it.UnitPrice
		if price.IsZero() {
			product, err := uc.productRepo.GetByID(ctx, it.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, fmt.Errorf("producto %s: %w", it.ProductID, domain.ErrNotFound)
			}
			price = product.SellingPrice
		}
		items = append(items, entity.SaleItem{
			ID:                 uuid.New().String(),
			SaleID:             saleID,
			ProductID:          it.ProductID,
			Quantity:           it.Quantity,
			UnitPrice:          price,
			DiscountPercentage: it.DiscountPercentage,
			CreatedAt:          now,
		})
	}

	totals, err := domainsales.ComputeTotals(items, uc.taxRate)
	if err != nil {
		return nil, err
	}

	saleDate := in.SaleDate
	if saleDate.IsZero() {
		saleDate = now
	}
	sale := &entity.Sale{
		ID:             saleID,
		InvoiceNumber:  in.InvoiceNumber,
		CustomerID:     in.CustomerID,
		SaleDate:       saleDate.UTC(),
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		TaxAmount:      totals.TaxAmount,
		TotalAmount:    totals.TotalAmount,
		PaymentStatus:  in.PaymentStatus,
		PaymentMethod:  in.PaymentMethod,
		SalespersonID:  in.SalespersonID,
		Notes:          in.Notes,
		Items:          items,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.RunSales(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		for _, it := range sale.Items {
			if _, err := uc.ledger.RegisterOutgoingInTx(ctx, movRepo, productRepo, inventory.MovementInput{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UserID:    actorID,
				Reference: sale.InvoiceNumber,
				Reason:    ReasonSale,
			}); err != nil {
				return fmt.Errorf("producto %s: %w", it.ProductID, err)
			}
		}
		return saleRepo.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx)

	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("invoice_number", sale.InvoiceNumber).
		Int("items", len(sale.Items)).
		Str("total", sale.TotalAmount.StringFixed(2)).
		Msg("venta registrada")
	return sale, nil
}

// Get devuelve la venta con sus líneas o ErrNotFound.
func (uc *SaleUseCase) Get(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// List lista ventas filtradas.
func (uc *SaleUseCase) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	if filter.PaymentStatus != "" && !entity.ValidPaymentStatus(filter.PaymentStatus) {
		return nil, domain.ErrInvalidInput
	}
	return uc.saleRepo.List(ctx, filter)
}

// UpdatePayment cambia el estado (y opcionalmente el método) de pago.
func (uc *SaleUseCase) UpdatePayment(ctx context.Context, id, status, method string) (*entity.Sale, error) {
	if !entity.ValidPaymentStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.saleRepo.UpdatePayment(ctx, id, status, method); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx)
	return uc.Get(ctx, id)
}

// Delete anula la venta: registra una entrada por línea y borra la venta en la misma tx.
// Las líneas de productos ya eliminados no generan movimiento.
func (uc *SaleUseCase) Delete(ctx context.Context, actorID, id string) error {
	err := uc.txRunner.RunSales(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		for _, it := range sale.Items {
			product, err := productRepo.GetForUpdate(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				continue
			}
			if _, err := uc.ledger.RegisterIncomingInTx(ctx, movRepo, productRepo, inventory.MovementInput{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UserID:    actorID,
				Reference: sale.InvoiceNumber,
				Reason:    ReasonSaleDeleted,
			}); err != nil {
				return err
			}
		}
		return saleRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.invalidator.Invalidate(ctx)
	uc.log.Info().Str("sale_id", id).Msg("venta anulada, stock devuelto")
	return nil
}

// Receipt genera el PDF de la venta. Devuelve bytes y nombre de archivo sugerido.
func (uc *SaleUseCase) Receipt(ctx context.Context, id string) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("recibo: generador PDF no configurado")
	}
	sale, err := uc.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	var customer *entity.Customer
	if sale.CustomerID != "" {
		if customer, err = uc.customerRepo.GetByID(ctx, sale.CustomerID); err != nil {
			return nil, "", fmt.Errorf("recibo: obtener cliente: %w", err)
		}
	}
	company, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener empresa: %w", err)
	}

	lines := make([]ReceiptLine, 0, len(sale.Items))
	for _, it := range sale.Items {
		line := ReceiptLine{SaleItem: it, ProductName: "Producto " + it.ProductID}
		if p, pErr := uc.productRepo.GetByID(ctx, it.ProductID); pErr == nil && p != nil {
			line.ProductName, line.SKU = p.Name, p.SKU
		}
		lines = append(lines, line)
	}

	pdf, err := uc.generator.GenerateReceipt(ctx, sale, lines, customer, company)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("recibo_%s.pdf", sale.InvoiceNumber), nil
}
