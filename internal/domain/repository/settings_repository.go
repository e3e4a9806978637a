package repository

import (
	"context"

	"github.com/jhoicas/inventory-system/internal/domain/entity"
)

// SettingsRepository registro único con los datos de la empresa. Get devuelve (nil, nil) si aún no existe.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.CompanySettings, error)
	Upsert(ctx context.Context, settings *entity.CompanySettings) error
}
