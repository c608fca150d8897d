package records_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/jhoicas/silogtran-api/internal/domain/entity"
	"github.com/jhoicas/silogtran-api/internal/domain/records"
)

func manifestsGen() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, len(entity.Statuses)-1)).Map(func(idx []int) []*entity.Manifest {
		out := make([]*entity.Manifest, 0, len(idx))
		for i, s := range idx {
			out = append(out, &entity.Manifest{
				Code:   "MF-" + string(rune('A'+i%26)),
				Client: "cliente",
				Date:   day("2024-01-01").AddDate(0, 0, i),
				Status: entity.Statuses[s],
			})
		}
		return out
	})
}

func TestSummarizeProperty_TotalesCuadran(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("total == len y suma(countByStatus) == len", prop.ForAll(
		func(ms []*entity.Manifest) bool {
			s := records.Summarize(ms)
			sum := 0
			for _, n := range s.CountByStatus {
				sum += n
			}
			return s.Total == len(ms) && sum == len(ms)
		},
		manifestsGen(),
	))

	properties.TestingRun(t)
}

func TestPaginateProperty_PaginasCubrenLaColeccion(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("concatenar todas las páginas reproduce la colección", prop.ForAll(
		func(ms []*entity.Manifest, size int) bool {
			first, err := records.Paginate(ms, 1, size)
			if err != nil {
				return false
			}
			var joined []*entity.Manifest
			for page := 1; page <= first.TotalPages; page++ {
				p, err := records.Paginate(ms, page, size)
				if err != nil || len(p.Items) == 0 || len(p.Items) > size {
					return false
				}
				joined = append(joined, p.Items...)
			}
			if len(joined) != len(ms) {
				return false
			}
			for i := range ms {
				if joined[i] != ms[i] {
					return false
				}
			}
			return true
		},
		manifestsGen(),
		gen.IntRange(1, 15),
	))

	properties.TestingRun(t)
}

func TestApplyProperty_FiltroPorEstadoEsSubsecuencia(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("apply(status) devuelve exactamente los de ese estado, en orden", prop.ForAll(
		func(ms []*entity.Manifest, s int) bool {
			status := entity.Statuses[s]
			f := records.NewFilter[*entity.Manifest]()
			f.Configure(records.Criteria{Status: status})
			out := f.Apply(ms)
			j := 0
			for _, m := range ms {
				if m.Status != status {
					continue
				}
				if j >= len(out) || out[j] != m {
					return false
				}
				j++
			}
			return j == len(out)
		},
		manifestsGen(),
		gen.IntRange(0, len(entity.Statuses)-1),
	))

	properties.TestingRun(t)
}
