package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/silogtran-api/internal/domain"
	"github.com/jhoicas/silogtran-api/internal/domain/entity"
	"github.com/jhoicas/silogtran-api/internal/domain/repository"
)

var (
	_ repository.ManifestRepository = (*ManifestRepo)(nil)
	_ repository.RemesaRepository   = (*RemesaRepo)(nil)
)

// ManifestRepo implementación del puerto ManifestRepository sobre PostgreSQL.
type ManifestRepo struct {
	q Querier
}

// NewManifestRepository construye el adaptador de persistencia para manifiestos.
func NewManifestRepository(q Querier) *ManifestRepo {
	return &ManifestRepo{q: q}
}

const manifestColumns = `id, code, client, date, origin, destination, status, created_at`

// List devuelve los manifiestos en el orden de la consola (fecha y código ascendentes).
func (r *ManifestRepo) List(ctx context.Context) ([]*entity.Manifest, error) {
	query := `SELECT ` + manifestColumns + ` FROM manifests ORDER BY date, code`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storageErr("list manifests", err)
	}
	defer rows.Close()
	list := make([]*entity.Manifest, 0)
	for rows.Next() {
		m, err := scanManifest(rows)
		if err != nil {
			return nil, storageErr("scan manifest", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate rows", err)
	}
	return list, nil
}

// GetByCode obtiene un manifiesto por código. domain.ErrNotFound si no existe.
func (r *ManifestRepo) GetByCode(ctx context.Context, code string) (*entity.Manifest, error) {
	query := `SELECT ` + manifestColumns + ` FROM manifests WHERE code = $1`
	m, err := scanManifest(r.q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("get manifest "+code, err)
	}
	return m, nil
}

// Delete elimina un manifiesto por código.
func (r *ManifestRepo) Delete(ctx context.Context, code string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM manifests WHERE code = $1`, code)
	if err != nil {
		return storageErr("delete manifest "+code, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanManifest(row pgx.Row) (*entity.Manifest, error) {
	var m entity.Manifest
	var status string
	if err := row.Scan(&m.ID, &m.Code, &m.Client, &m.Date, &m.Origin, &m.Destination, &status, &m.CreatedAt); err != nil {
		return nil, err
	}
	st, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	m.Status = st
	m.Date = m.Date.UTC()
	return &m, nil
}

// RemesaRepo implementación del puerto RemesaRepository sobre PostgreSQL.
// weight_kg y declared_value son NUMERIC y se leen como decimal.Decimal (codec registrado en NewPool).
type RemesaRepo struct {
	q Querier
}

// NewRemesaRepository construye el adaptador de persistencia para remesas.
func NewRemesaRepository(q Querier) *RemesaRepo {
	return &RemesaRepo{q: q}
}

const remesaColumns = `id, code, client, date, origin, destination, status, weight_kg, declared_value, created_at`

func (r *RemesaRepo) List(ctx context.Context) ([]*entity.Remesa, error) {
	query := `SELECT ` + remesaColumns + ` FROM remesas ORDER BY date, code`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storageErr("list remesas", err)
	}
	defer rows.Close()
	list := make([]*entity.Remesa, 0)
	for rows.Next() {
		rm, err := scanRemesa(rows)
		if err != nil {
			return nil, storageErr("scan remesa", err)
		}
		list = append(list, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate rows", err)
	}
	return list, nil
}

func (r *RemesaRepo) GetByCode(ctx context.Context, code string) (*entity.Remesa, error) {
	query := `SELECT ` + remesaColumns + ` FROM remesas WHERE code = $1`
	rm, err := scanRemesa(r.q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("get remesa "+code, err)
	}
	return rm, nil
}

func (r *RemesaRepo) Delete(ctx context.Context, code string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM remesas WHERE code = $1`, code)
	if err != nil {
		return storageErr("delete remesa "+code, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanRemesa(row pgx.Row) (*entity.Remesa, error) {
	var rm entity.Remesa
	var status string
	if err := row.Scan(&rm.ID, &rm.Code, &rm.Client, &rm.Date, &rm.Origin, &rm.Destination, &status,
		&rm.WeightKg, &rm.DeclaredValue, &rm.CreatedAt); err != nil {
		return nil, err
	}
	st, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	rm.Status = st
	rm.Date = rm.Date.UTC()
	return &rm, nil
}

// parseStatus acepta también los valores heredados en español que pueda traer una importación.
func parseStatus(s string) (entity.Status, error) {
	st, ok := entity.ParseStatus(s)
	if !ok {
		return "", fmt.Errorf("estado %q desconocido", s)
	}
	return st, nil
}
