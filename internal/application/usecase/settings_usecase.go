package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/inventory-system/internal/application/dto"
	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
)

// SettingsUseCase lectura y actualización de los datos de la empresa.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Get devuelve la configuración; si aún no existe devuelve valores vacíos.
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	s, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &entity.CompanySettings{}
	}
	out := dto.SettingsFrom(s)
	return &out, nil
}

// Update reemplaza la configuración completa.
func (uc *SettingsUseCase) Update(ctx context.Context, in dto.SettingsRequest) (*dto.SettingsResponse, error) {
	if strings.TrimSpace(in.CompanyName) == "" {
		return nil, domain.ErrInvalidInput
	}
	s := &entity.CompanySettings{
		CompanyName: strings.TrimSpace(in.CompanyName),
		Address:     in.Address,
		Phone:       in.Phone,
		Email:       strings.TrimSpace(in.Email),
		TaxNumber:   in.TaxNumber,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := uc.repo.Upsert(ctx, s); err != nil {
		return nil, err
	}
	out := dto.SettingsFrom(s)
	return &out, nil
}
