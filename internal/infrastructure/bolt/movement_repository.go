package bolt

import (
	"context"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/inventory-system/internal/domain"
	"github.com/jhoicas/inventory-system/internal/domain/entity"
	"github.com/jhoicas/inventory-system/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos sobre bbolt (solo inserción).
type MovementRepo struct {
	sc scope
}

// Create agrega una entrada al libro.
func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	return r.sc.update(ctx, func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketMovements).Get([]byte(m.ID)) != nil {
			return domain.ErrDuplicate
		}
		return putJSON(tx, bucketMovements, m.ID, m)
	})
}

// GetByID obtiene un movimiento; (nil, nil) si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	var m *entity.StockMovement
	err := r.sc.view(ctx, func(tx *bbolt.Tx) error {
		var err error
		m, err = getJSON[entity.StockMovement](tx, bucketMovements, id)
		return err
	})
	return m, err
}

// List filtra por producto, tipo y fechas; más recientes primero.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.sc.view(ctx, func(tx *bbolt.Tx) error {
		all, err := allJSON[entity.StockMovement](tx, bucketMovements)
		if err != nil {
			return err
		}
		for _, m := range all {
			if f.ProductID != "" && m.ProductID != f.ProductID {
				continue
			}
			if f.Type != "" && m.Type != f.Type {
				continue
			}
			if f.From != nil && m.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && m.CreatedAt.After(*f.To) {
				continue
			}
			out = append(out, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, f.Limit, f.Offset), nil
}
