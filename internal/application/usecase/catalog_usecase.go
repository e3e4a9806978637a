package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-system/internal/application/dto"
	appinventory "github.com/jhoicas/inventory-system/internal/application/inventory"
	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
)

// ── Categorías ────────────────────────────────────────────────────────────────

// CategoryUseCase CRUD de categorías (nombre único).
type CategoryUseCase struct {
	repo        repository.CategoryRepository
	invalidator appinventory.ReportInvalidator
}

// NewCategoryUseCase construye el caso de uso. invalidator puede ser nil.
func NewCategoryUseCase(repo repository.CategoryRepository, invalidator appinventory.ReportInvalidator) *CategoryUseCase {
	if invalidator == nil {
		invalidator = appinventory.NoopInvalidator
	}
	return &CategoryUseCase{repo: repo, invalidator: invalidator}
}

// Create registra una categoría; el nombre no puede repetirse.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.repo.GetByName(ctx, name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("categoría %q: %w", name, domain.ErrDuplicate)
	}
	now := time.Now().UTC()
	c := &entity.Category{ID: uuid.New().String(), Name: name, Description: in.Description, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx)
	out := dto.CategoryFrom(c)
	return &out, nil
}

// GetByID devuelve ErrNotFound si la categoría no existe.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.CategoryFrom(c)
	return &out, nil
}

// Update renombra la categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Category{ID: id, Name: name, Description: in.Description, UpdatedAt: time.Now().UTC()}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx)
	return uc.GetByID(ctx, id)
}

// List lista categorías filtrando por nombre.
func (uc *CategoryUseCase) List(ctx context.Context, in dto.ListRequest) (*dto.ListResponse[dto.CategoryResponse], error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ListParams{Search: in.Search, Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.CategoryFrom(c))
	}
	return &dto.ListResponse[dto.CategoryResponse]{Items: items, Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset}}, nil
}

// Delete borra la categoría; los productos que la usan se reportan como "Unknown".
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidator.Invalidate(ctx)
	return nil
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	repo        repository.SupplierRepository
	invalidator appinventory.ReportInvalidator
}

// NewSupplierUseCase construye el caso de uso. invalidator puede ser nil.
func NewSupplierUseCase(repo repository.SupplierRepository, invalidator appinventory.ReportInvalidator) *SupplierUseCase {
	if invalidator == nil {
		invalidator = appinventory.NoopInvalidator
	}
	return &SupplierUseCase{repo: repo, invalidator: invalidator}
}

// Create registra un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	s := &entity.Supplier{ID: uuid.New().String(), CreatedAt: now}
	applySupplierRequest(s, in, now)
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx)
	out := dto.SupplierFrom(s)
	return &out, nil
}

// GetByID devuelve ErrNotFound si el proveedor no existe.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.SupplierFrom(s)
	return &out, nil
}

// Update reemplaza los datos del proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	s := &entity.Supplier{ID: id}
	applySupplierRequest(s, in, time.Now().UTC())
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx)
	return uc.GetByID(ctx, id)
}

// List lista proveedores paginados.
func (uc *SupplierUseCase) List(ctx context.Context, in dto.ListRequest) (*dto.ListResponse[dto.SupplierResponse], error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ListParams{Search: in.Search, Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.SupplierFrom(s))
	}
	return &dto.ListResponse[dto.SupplierResponse]{Items: items, Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset}}, nil
}

// Delete borra el proveedor; sus productos quedan como "Unknown" en reportes.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidator.Invalidate(ctx)
	return nil
}

func applySupplierRequest(s *entity.Supplier, in dto.SupplierRequest, now time.Time) {
	s.Name = strings.TrimSpace(in.Name)
	s.ContactPerson = in.ContactPerson
	s.Email = strings.TrimSpace(in.Email)
	s.Phone = in.Phone
	s.Address = in.Address
	s.Notes = in.Notes
	s.UpdatedAt = now
}

// ── Clientes ──────────────────────────────────────────────────────────────────

// CustomerUseCase CRUD de clientes.
type CustomerUseCase struct {
	repo        repository.CustomerRepository
	invalidator appinventory.ReportInvalidator
}

// NewCustomerUseCase construye el caso de uso. invalidator puede ser nil.
func NewCustomerUseCase(repo repository.CustomerRepository, invalidator appinventory.ReportInvalidator) *CustomerUseCase {
	if invalidator == nil {
		invalidator = appinventory.NoopInvalidator
	}
	return &CustomerUseCase{repo: repo, invalidator: invalidator}
}

// Create registra un cliente activo; customer_type por defecto es retail.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	now := time.Now().UTC()
	c := &entity.Customer{ID: uuid.New().String(), IsActive: true, CreatedAt: now}
	if err := applyCustomerRequest(c, in, now); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx)
	out := dto.CustomerFrom(c)
	return &out, nil
}

// GetByID devuelve ErrNotFound si el cliente no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.CustomerFrom(c)
	return &out, nil
}

// Update aplica la petición sobre el cliente existente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyCustomerRequest(current, in, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	uc.invalidator.Invalidate(ctx)
	out := dto.CustomerFrom(current)
	return &out, nil
}

// List lista clientes paginados.
func (uc *CustomerUseCase) List(ctx context.Context, in dto.ListRequest) (*dto.ListResponse[dto.CustomerResponse], error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ListParams{Search: in.Search, Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.CustomerFrom(c))
	}
	return &dto.ListResponse[dto.CustomerResponse]{Items: items, Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset}}, nil
}

// Delete borra el cliente. Las ventas conservan su customer_id.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidator.Invalidate(ctx)
	return nil
}

func applyCustomerRequest(c *entity.Customer, in dto.CustomerRequest, now time.Time) error {
	if strings.TrimSpace(in.Name) == "" || in.CreditLimit.IsNegative() {
		return domain.ErrInvalidInput
	}
	kind := in.CustomerType
	if kind == "" {
		kind = entity.CustomerTypeRetail
	}
	if !entity.ValidCustomerType(kind) {
		return domain.ErrInvalidInput
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = in.Phone
	c.Address = in.Address
	c.City = in.City
	c.State = in.State
	c.ZipCode = in.ZipCode
	c.TaxNumber = in.TaxNumber
	c.CustomerType = kind
	c.CreditLimit = in.CreditLimit
	c.PaymentTerms = in.PaymentTerms
	c.Notes = in.Notes
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = now
	return nil
}
