package repository

import (
	"context"

	"github.com/jhoicas/silogtran-api/internal/domain/entity"
)

// RecordRepository puerto de persistencia de registros de despacho (DIP).
// GetByCode y Delete devuelven domain.ErrNotFound si el código no existe.
type RecordRepository[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByCode(ctx context.Context, code string) (T, error)
	Delete(ctx context.Context, code string) error
}

// ManifestRepository repositorio de manifiestos.
type ManifestRepository = RecordRepository[*entity.Manifest]

// RemesaRepository repositorio de remesas.
type RemesaRepository = RecordRepository[*entity.Remesa]
