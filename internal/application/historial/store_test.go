package historial_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/silogtran-api/internal/application/historial"
	"github.com/jhoicas/silogtran-api/internal/domain"
	"github.com/jhoicas/silogtran-api/internal/domain/entity"
	"github.com/jhoicas/silogtran-api/internal/infrastructure/storage"
)

const ns = "sesion-historial"

// stepClock reloj que avanza un segundo en cada lectura.
func stepClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newStore(t *testing.T) (*historial.Store, *storage.MemoryStore) {
	t.Helper()
	kv := storage.NewMemoryStore()
	return historial.NewStore(kv, nil, stepClock(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))), kv
}

// failingKV almacenamiento cuyas escrituras siempre fallan.
type failingKV struct {
	*storage.MemoryStore
}

func (failingKV) Set(context.Context, string, string, string) error { return errors.New("quota") }
func (failingKV) Remove(context.Context, string, ...string) error   { return errors.New("quota") }

// ─── RecordVisit ─────────────────────────────────────────────────────────────

func TestRecordVisit_InsertaAlFrente(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	_, err := s.RecordVisit(ctx, ns, "Despacho", "Manifiesto")
	require.NoError(t, err)
	items, err := s.RecordVisit(ctx, ns, "Básicos", "Autorización")
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "Básicos", items[0].Module)
	assert.Equal(t, "Despacho", items[1].Module)
	assert.Equal(t, items, s.List(ctx, ns), "la lectura posterior observa la escritura")
}

func TestRecordVisit_DeduplicaYMueveAlFrente(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	for _, m := range []string{"A", "B", "C"} {
		_, err := s.RecordVisit(ctx, ns, m, "x")
		require.NoError(t, err)
	}
	items, err := s.RecordVisit(ctx, ns, "A", "x")
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, []string{"A", "C", "B"}, modules(items))
}

func TestRecordVisit_RepetidaConservaUnaEntradaConLaHoraNueva(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	first, err := s.RecordVisit(ctx, ns, "Despacho", "Manifiesto")
	require.NoError(t, err)
	second, err := s.RecordVisit(ctx, ns, "Despacho", "Manifiesto")
	require.NoError(t, err)

	require.Len(t, second, 1)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 0, 2, 0, time.UTC), second[0].Timestamp)
	assert.True(t, second[0].Timestamp.After(first[0].Timestamp))
	assert.Greater(t, second[0].ID, first[0].ID)
	assert.Equal(t, second, s.List(ctx, ns))
}

// slowKV demora cada lectura para que escrituras concurrentes se intercalen.
type slowKV struct {
	*storage.MemoryStore
}

func (k slowKV) Get(ctx context.Context, namespace, key string) (string, error) {
	time.Sleep(10 * time.Millisecond)
	return k.MemoryStore.Get(ctx, namespace, key)
}

func TestRecordVisit_ConcurrenteNoPierdeVisitas(t *testing.T) {
	s := historial.NewStore(slowKV{storage.NewMemoryStore()}, nil, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, m := range []string{"A", "B", "C", "D"} {
		wg.Add(1)
		go func(module string) {
			defer wg.Done()
			_, err := s.RecordVisit(ctx, ns, module, "x")
			assert.NoError(t, err)
		}(m)
	}
	wg.Wait()

	assert.ElementsMatch(t, []string{"A", "B", "C", "D"}, modules(s.List(ctx, ns)))
}

func TestRecordVisit_AcotaAlMaximo(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	for _, m := range []string{"A", "B", "C", "D", "E", "F"} {
		_, err := s.RecordVisit(ctx, ns, m, "x")
		require.NoError(t, err)
	}
	items := s.List(ctx, ns)
	require.Len(t, items, entity.MaxHistorialItems)
	assert.Equal(t, []string{"F", "E", "D", "C", "B"}, modules(items), "se descarta la más antigua")
}

func TestRecordVisit_IDsEstrictamenteCrecientes(t *testing.T) {
	kv := storage.NewMemoryStore()
	fixed := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	s := historial.NewStore(kv, nil, func() time.Time { return fixed })
	ctx := context.Background()

	_, err := s.RecordVisit(ctx, ns, "A", "x")
	require.NoError(t, err)
	items, err := s.RecordVisit(ctx, ns, "B", "x")
	require.NoError(t, err)

	assert.Greater(t, items[0].ID, items[1].ID, "con el mismo instante el id debe seguir creciendo")
}

func TestRecordVisit_ValidaEntrada(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.RecordVisit(context.Background(), ns, " ", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordVisit_FalloDeEscrituraEsErrStorage(t *testing.T) {
	s := historial.NewStore(failingKV{storage.NewMemoryStore()}, nil, nil)
	_, err := s.RecordVisit(context.Background(), ns, "A", "x")
	assert.ErrorIs(t, err, domain.ErrStorage)
}

// ─── List ────────────────────────────────────────────────────────────────────

func TestList_VacioSinDatos(t *testing.T) {
	s, _ := newStore(t)
	items := s.List(context.Background(), ns)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestList_ValorCorruptoDevuelveVacio(t *testing.T) {
	s, kv := newStore(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, ns, historial.StorageKey, "{no es json"))

	assert.Empty(t, s.List(ctx, ns))

	items, err := s.RecordVisit(ctx, ns, "A", "x")
	require.NoError(t, err, "una visita posterior reemplaza el valor corrupto")
	assert.Len(t, items, 1)
}

// ─── Seed / Clear ────────────────────────────────────────────────────────────

func TestSeed_SoloSiVacioEIdempotente(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	defaults := historial.DefaultEntries(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))

	first, err := s.Seed(ctx, ns, defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, first)

	_, err = s.RecordVisit(ctx, ns, "Despacho", "Remesa")
	require.NoError(t, err)

	again, err := s.Seed(ctx, ns, defaults)
	require.NoError(t, err)
	assert.Equal(t, "Remesa", again[0].Option, "con datos previos Seed no sobrescribe")
	assert.Len(t, again, entity.MaxHistorialItems)
}

func TestDefaultEntries_EspaciadoYOrden(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	d := historial.DefaultEntries(now)
	require.Len(t, d, 5)
	assert.Equal(t, "Despacho", d[0].Module)
	assert.Equal(t, "Manifiesto", d[0].Option)
	assert.Equal(t, "Orden de trabajo", d[4].Option)
	assert.Equal(t, now.Add(-30*time.Minute), d[0].Timestamp)
	assert.Equal(t, now.Add(-150*time.Minute), d[4].Timestamp)
	for i := 1; i < len(d); i++ {
		assert.Greater(t, d[i-1].ID, d[i].ID)
	}
}

func TestClear_BorraElHistorial(t *testing.T) {
	s, kv := newStore(t)
	ctx := context.Background()
	_, err := s.RecordVisit(ctx, ns, "A", "x")
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx, ns))
	_, err = kv.Get(ctx, ns, historial.StorageKey)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	assert.Empty(t, s.List(ctx, ns))
}

func modules(items []entity.HistorialEntry) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Module
	}
	return out
}
