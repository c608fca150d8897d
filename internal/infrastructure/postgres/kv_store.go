package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/silogtran-api/internal/domain"
	"github.com/jhoicas/silogtran-api/internal/domain/repository"
)

var _ repository.KVStore = (*KVStore)(nil)

// KVStore almacenamiento de sesiones de consola sobre la tabla console_storage
// (namespace, key, value, updated_at).
type KVStore struct {
	q Querier
}

// NewKVStore construye el adaptador. Acepta pool o tx (Querier).
func NewKVStore(q Querier) *KVStore {
	return &KVStore{q: q}
}

func (s *KVStore) Get(ctx context.Context, namespace, key string) (string, error) {
	query := `SELECT value FROM console_storage WHERE namespace = $1 AND key = $2`
	var value string
	err := s.q.QueryRow(ctx, query, namespace, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrKeyNotFound
		}
		return "", storageErr("get "+key, err)
	}
	return value, nil
}

func (s *KVStore) Set(ctx context.Context, namespace, key, value string) error {
	query := `
		INSERT INTO console_storage (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	if _, err := s.q.Exec(ctx, query, namespace, key, value); err != nil {
		return storageErr("set "+key, err)
	}
	return nil
}

func (s *KVStore) Remove(ctx context.Context, namespace string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query := `DELETE FROM console_storage WHERE namespace = $1 AND key = ANY($2)`
	if _, err := s.q.Exec(ctx, query, namespace, keys); err != nil {
		return storageErr("remove", err)
	}
	return nil
}
