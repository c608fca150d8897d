// Package historial mantiene la actividad reciente de cada sesión de consola: una lista acotada
// de pares (módulo, opción), sin duplicados y ordenada de la más reciente a la más antigua.
package historial

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/silogtran-api/internal/domain"
	"github.com/jhoicas/silogtran-api/internal/domain/entity"
	"github.com/jhoicas/silogtran-api/internal/domain/repository"
	"github.com/jhoicas/silogtran-api/pkg/logger"
)

// StorageKey clave bajo la que se persiste el historial en el namespace de la sesión.
const StorageKey = "user_historial"

// lockStripes cantidad de candados entre los que se reparten los namespaces.
const lockStripes = 64

// Store historial persistido en un repository.KVStore.
// Las escrituras de un mismo namespace se serializan dentro del proceso.
type Store struct {
	kv    repository.KVStore
	log   *logger.Logger
	now   func() time.Time
	locks [lockStripes]sync.Mutex
}

// NewStore construye el historial. now nil usa time.Now.
func NewStore(kv repository.KVStore, log *logger.Logger, now func() time.Time) *Store {
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &Store{kv: kv, log: log.Component("historial"), now: now}
}

// List devuelve el historial, el más reciente primero. Nunca falla: si el valor persistido
// no se puede leer o interpretar, registra el problema y devuelve una lista vacía.
func (s *Store) List(ctx context.Context, namespace string) []entity.HistorialEntry {
	items, err := s.load(ctx, namespace)
	if err != nil {
		s.log.Warn().Err(err).Str("namespace", namespace).Msg("historial ilegible, se usa vacío")
		return []entity.HistorialEntry{}
	}
	return items
}

// RecordVisit registra una visita: elimina la entrada previa del mismo par, inserta la nueva al
// frente con la hora actual y conserva solo las entity.MaxHistorialItems más recientes.
func (s *Store) RecordVisit(ctx context.Context, namespace, module, option string) ([]entity.HistorialEntry, error) {
	module, option = strings.TrimSpace(module), strings.TrimSpace(option)
	if module == "" || option == "" {
		return nil, fmt.Errorf("historial: módulo y opción son obligatorios: %w", domain.ErrInvalidInput)
	}
	unlock := s.lock(namespace)
	defer unlock()
	current := s.List(ctx, namespace)

	now := s.now()
	id := now.UnixMilli()
	for _, it := range current {
		if it.ID >= id {
			id = it.ID + 1
		}
	}

	next := make([]entity.HistorialEntry, 0, entity.MaxHistorialItems)
	next = append(next, entity.HistorialEntry{Module: module, Option: option, Timestamp: now.UTC(), ID: id})
	for _, it := range current {
		if it.SameTarget(module, option) {
			continue
		}
		if len(next) == entity.MaxHistorialItems {
			break
		}
		next = append(next, it)
	}

	if err := s.save(ctx, namespace, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Seed guarda defaults solo si el historial está vacío; con datos previos no hace nada.
// Devuelve el historial resultante.
func (s *Store) Seed(ctx context.Context, namespace string, defaults []entity.HistorialEntry) ([]entity.HistorialEntry, error) {
	unlock := s.lock(namespace)
	defer unlock()
	current := s.List(ctx, namespace)
	if len(current) > 0 {
		return current, nil
	}
	if len(defaults) > entity.MaxHistorialItems {
		defaults = defaults[:entity.MaxHistorialItems]
	}
	seed := make([]entity.HistorialEntry, len(defaults))
	copy(seed, defaults)
	if err := s.save(ctx, namespace, seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// Clear elimina el historial persistido (cierre de sesión).
func (s *Store) Clear(ctx context.Context, namespace string) error {
	unlock := s.lock(namespace)
	defer unlock()
	if err := s.kv.Remove(ctx, namespace, StorageKey); err != nil {
		return fmt.Errorf("historial: borrar: %w: %v", domain.ErrStorage, err)
	}
	return nil
}

// DefaultEntries historial de ejemplo con el que arranca el dashboard, espaciado cada 30 minutos
// hacia atrás desde now.
func DefaultEntries(now time.Time) []entity.HistorialEntry {
	pairs := []entity.NavTarget{
		{Module: "Despacho", Option: "Manifiesto"},
		{Module: "Básicos", Option: "Autorización"},
		{Module: "Maestros", Option: "Centro de costos"},
		{Module: "Calidad", Option: "Auditoría"},
		{Module: "Mantenimiento", Option: "Orden de trabajo"},
	}
	out := make([]entity.HistorialEntry, len(pairs))
	for i, p := range pairs {
		ts := now.Add(-time.Duration(i+1) * 30 * time.Minute).UTC()
		out[i] = entity.HistorialEntry{Module: p.Module, Option: p.Option, Timestamp: ts, ID: ts.UnixMilli()}
	}
	return out
}

func (s *Store) lock(namespace string) (unlock func()) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(namespace))
	mu := &s.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}

func (s *Store) load(ctx context.Context, namespace string) ([]entity.HistorialEntry, error) {
	raw, err := s.kv.Get(ctx, namespace, StorageKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return []entity.HistorialEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("historial: leer: %w", err)
	}
	var items []entity.HistorialEntry
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("historial: parsear: %w: %v", domain.ErrStorage, err)
	}
	if items == nil {
		items = []entity.HistorialEntry{}
	}
	return items, nil
}

func (s *Store) save(ctx context.Context, namespace string, items []entity.HistorialEntry) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("historial: serializar: %w: %v", domain.ErrStorage, err)
	}
	if err := s.kv.Set(ctx, namespace, StorageKey, string(raw)); err != nil {
		return fmt.Errorf("historial: guardar: %w: %v", domain.ErrStorage, err)
	}
	return nil
}
