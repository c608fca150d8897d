// Package storage implementa repository.KVStore en memoria, en archivos JSON y en Redis.
// La implementación sobre PostgreSQL vive en el paquete postgres junto al pool.
package storage

import (
	"context"
	"sync"

	"github.com/jhoicas/silogtran-api/internal/domain"
	"github.com/jhoicas/silogtran-api/internal/domain/repository"
)

var _ repository.KVStore = (*MemoryStore)(nil)

// MemoryStore almacenamiento volátil, seguro para uso concurrente.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string // [namespace][key]value
}

// NewMemoryStore construye un almacenamiento vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, namespace, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[namespace][key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(_ context.Context, namespace, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[namespace] == nil {
		m.data[namespace] = make(map[string]string)
	}
	m.data[namespace][key] = value
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, namespace string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ns := m.data[namespace]
	for _, k := range keys {
		delete(ns, k)
	}
	if len(ns) == 0 {
		delete(m.data, namespace)
	}
	return nil
}
