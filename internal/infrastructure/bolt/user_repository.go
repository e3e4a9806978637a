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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios con email único.
type UserRepo struct {
	sc scope
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	return r.sc.update(ctx, func(tx *bbolt.Tx) error {
		if err := claim(tx, bucketUserEmail, u.Email, u.ID); err != nil {
			return err
		}
		return putJSON(tx, bucketUsers, u.ID, u)
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return getPlain[entity.User](ctx, r.sc, bucketUsers, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u *entity.User
	err := r.sc.view(ctx, func(tx *bbolt.Tx) error {
		var err error
		u, err = lookup[entity.User](tx, bucketUserEmail, bucketUsers, email)
		return err
	})
	return u, err
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	return r.sc.update(ctx, func(tx *bbolt.Tx) error {
		current, err := getJSON[entity.User](tx, bucketUsers, u.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if err := reindex(tx, bucketUserEmail, current.Email, u.Email, u.ID); err != nil {
			return err
		}
		next := *u
		next.CreatedAt = current.CreatedAt
		return putJSON(tx, bucketUsers, u.ID, &next)
	})
}

func (r *UserRepo) List(ctx context.Context, p repository.ListParams) ([]*entity.User, error) {
	out, err := listPlain[entity.User](ctx, r.sc, bucketUsers, func(u *entity.User) bool {
		return matches(p.Search, u.Name, u.Email)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Email) < strings.ToLower(out[j].Email) })
	return page(out, p.Limit, p.Offset), nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.sc.update(ctx, func(tx *bbolt.Tx) error {
		u, err := getJSON[entity.User](tx, bucketUsers, id)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrNotFound
		}
		if err := release(tx, bucketUserEmail, u.Email); err != nil {
			return err
		}
		return tx.Bucket(bucketUsers).Delete([]byte(id))
	})
}
