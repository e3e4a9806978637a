package bolt

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/inventory-system/internal/domain"
)

func getJSON[T any](tx *bbolt.Tx, bucket []byte, id string) (*T, error) {
	if id == "" {
		return nil, nil
	}
	raw := tx.Bucket(bucket).Get([]byte(id))
	if raw == nil {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", bucket, id, err)
	}
	return &v, nil
}

func putJSON(tx *bbolt.Tx, bucket []byte, id string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", bucket, id, err)
	}
	return tx.Bucket(bucket).Put([]byte(id), raw)
}

func allJSON[T any](tx *bbolt.Tx, bucket []byte) ([]*T, error) {
	var out []*T
	err := tx.Bucket(bucket).ForEach(func(k, raw []byte) error {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("decode %s/%s: %w", bucket, k, err)
		}
		out = append(out, &v)
		return nil
	})
	return out, err
}

// lookup resuelve un índice único a la entidad apuntada.
func lookup[T any](tx *bbolt.Tx, index, bucket []byte, key string) (*T, error) {
	key = normKey(key)
	if key == "" {
		return nil, nil
	}
	id := tx.Bucket(index).Get([]byte(key))
	if id == nil {
		return nil, nil
	}
	return getJSON[T](tx, bucket, string(id))
}

// claim reserva key en el índice para id; ErrDuplicate si lo tiene otra entidad.
func claim(tx *bbolt.Tx, index []byte, key, id string) error {
	key = normKey(key)
	if key == "" {
		return nil
	}
	b := tx.Bucket(index)
	if owner := b.Get([]byte(key)); owner != nil && string(owner) != id {
		return domain.ErrDuplicate
	}
	return b.Put([]byte(key), []byte(id))
}

func release(tx *bbolt.Tx, index []byte, key string) error {
	key = normKey(key)
	if key == "" {
		return nil
	}
	return tx.Bucket(index).Delete([]byte(key))
}

// reindex mueve la reserva de oldKey a newKey para id.
func reindex(tx *bbolt.Tx, index []byte, oldKey, newKey, id string) error {
	if normKey(oldKey) == normKey(newKey) {
		return nil
	}
	if err := claim(tx, index, newKey, id); err != nil {
		return err
	}
	return release(tx, index, oldKey)
}

func normKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// matches búsqueda libre sin distinguir mayúsculas.
func matches(search string, fields ...string) bool {
	search = normKey(search)
	if search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// page aplica offset/limit en memoria. limit <= 0 = sin límite.
func page[T any](items []*T, limit, offset int) []*T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []*T{}
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
