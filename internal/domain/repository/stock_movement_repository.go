package repository

import (
	"context"

	"github.com/jhoicas/inventory-system/internal/domain/entity"
)

// StockMovementRepository puerto del libro de movimientos. Solo se agregan entradas:
// no hay Update ni Delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
}
