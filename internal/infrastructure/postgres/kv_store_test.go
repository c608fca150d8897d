package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/silogtran-api/internal/domain"
)

// fakeQuerier guarda las sentencias recibidas y devuelve respuestas fijas.
type fakeQuerier struct {
	execSQL  []string
	execArgs [][]any
	execTag  string
	execErr  error
	rowValue string
	rowErr   error
}

type fakeRow struct {
	value string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.value
	return nil
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	f.execArgs = append(f.execArgs, args)
	return pgconn.NewCommandTag(f.execTag), f.execErr
}

func (f *fakeQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("no implementado")
}

func (f *fakeQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return fakeRow{value: f.rowValue, err: f.rowErr}
}

func TestKVStore_Get(t *testing.T) {
	q := &fakeQuerier{rowValue: `{"username":"admin"}`}
	s := NewKVStore(q)

	v, err := s.Get(context.Background(), "ns", "user")
	require.NoError(t, err)
	assert.Equal(t, `{"username":"admin"}`, v)
}

func TestKVStore_Get_SinFilaEsClaveNoEncontrada(t *testing.T) {
	s := NewKVStore(&fakeQuerier{rowErr: pgx.ErrNoRows})

	_, err := s.Get(context.Background(), "ns", "user")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestKVStore_Get_ErrorDeConexionEsErrStorage(t *testing.T) {
	s := NewKVStore(&fakeQuerier{rowErr: errors.New("conn reset")})

	_, err := s.Get(context.Background(), "ns", "user")
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Contains(t, err.Error(), "conn reset")
}

func TestKVStore_Set_Upsert(t *testing.T) {
	q := &fakeQuerier{execTag: "INSERT 0 1"}
	s := NewKVStore(q)

	require.NoError(t, s.Set(context.Background(), "ns", "costCenter", "Centro Principal - Bogotá"))
	require.Len(t, q.execSQL, 1)
	assert.True(t, strings.Contains(q.execSQL[0], "ON CONFLICT (namespace, key)"))
	assert.Equal(t, []any{"ns", "costCenter", "Centro Principal - Bogotá"}, q.execArgs[0])
}

func TestKVStore_Remove(t *testing.T) {
	q := &fakeQuerier{execTag: "DELETE 2"}
	s := NewKVStore(q)

	require.NoError(t, s.Remove(context.Background(), "ns"))
	assert.Empty(t, q.execSQL, "sin claves no hay sentencia")

	require.NoError(t, s.Remove(context.Background(), "ns", "user", "costCenter"))
	require.Len(t, q.execArgs, 1)
	assert.Equal(t, []string{"user", "costCenter"}, q.execArgs[0][1])
}

func TestManifestRepo_Delete_SinFilasEsNotFound(t *testing.T) {
	r := NewManifestRepository(&fakeQuerier{execTag: "DELETE 0"})

	err := r.Delete(context.Background(), "MF-999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemesaRepo_Delete(t *testing.T) {
	q := &fakeQuerier{execTag: "DELETE 1"}
	r := NewRemesaRepository(q)

	require.NoError(t, r.Delete(context.Background(), "RM-001234"))
	assert.Equal(t, []any{"RM-001234"}, q.execArgs[0])
}

func TestRecordRepos_FallosDeLaBaseSonErrStorage(t *testing.T) {
	ctx := context.Background()
	down := errors.New("conexión rechazada")
	q := &fakeQuerier{execErr: down, rowErr: down}

	_, err := NewManifestRepository(q).List(ctx)
	assert.ErrorIs(t, err, domain.ErrStorage)
	_, err = NewManifestRepository(q).GetByCode(ctx, "MF-000001")
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, NewManifestRepository(q).Delete(ctx, "MF-000001"), domain.ErrStorage)

	_, err = NewRemesaRepository(q).List(ctx)
	assert.ErrorIs(t, err, domain.ErrStorage)
	_, err = NewRemesaRepository(q).GetByCode(ctx, "RM-000001")
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, NewRemesaRepository(q).Delete(ctx, "RM-000001"), domain.ErrStorage)
}

func TestManifestRepo_GetByCode_SinFilaEsNotFound(t *testing.T) {
	_, err := NewManifestRepository(&fakeQuerier{rowErr: pgx.ErrNoRows}).GetByCode(context.Background(), "MF-999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrStorage)
}

func TestParseStatus_AceptaAlias(t *testing.T) {
	st, err := parseStatus("en_proceso")
	require.NoError(t, err)
	assert.Equal(t, "in_progress", string(st))

	_, err = parseStatus("archivado")
	assert.Error(t, err)
}
