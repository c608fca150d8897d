package historial_test

import (
	"context"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/jhoicas/silogtran-api/internal/application/historial"
	"github.com/jhoicas/silogtran-api/internal/domain/entity"
	"github.com/jhoicas/silogtran-api/internal/infrastructure/storage"
)

// TestHistorialProperties cualquier secuencia de visitas deja un historial acotado, sin pares
// repetidos y con la última visita al frente.
func TestHistorialProperties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	visits := gen.SliceOf(gen.IntRange(0, 7))

	properties.Property("acotado, sin duplicados y último al frente", prop.ForAll(
		func(seq []int) bool {
			s := historial.NewStore(storage.NewMemoryStore(), nil, stepClock(time.Unix(1700000000, 0)))
			ctx := context.Background()
			for _, v := range seq {
				if _, err := s.RecordVisit(ctx, ns, "M", string(rune('a'+v))); err != nil {
					return false
				}
			}
			items := s.List(ctx, ns)
			if len(items) > entity.MaxHistorialItems {
				return false
			}
			seen := map[string]bool{}
			for i, it := range items {
				if seen[it.Option] {
					return false
				}
				seen[it.Option] = true
				if i > 0 && items[i-1].ID <= it.ID {
					return false
				}
			}
			if len(seq) == 0 {
				return len(items) == 0
			}
			return items[0].Option == string(rune('a'+seq[len(seq)-1]))
		},
		visits,
	))

	properties.TestingRun(t)
}
