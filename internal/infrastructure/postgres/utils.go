package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/silogtran-api/internal/domain"
)

// Querier subconjunto de pgxpool.Pool y pgx.Tx que usan los adaptadores.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// storageErr envuelve un error de la base como domain.ErrStorage conservando el detalle.
func storageErr(op string, err error) error {
	return fmt.Errorf("postgres: %s: %v: %w", op, err, domain.ErrStorage)
}
