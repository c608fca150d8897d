// Package records filtra, pagina y resume colecciones de registros de despacho
// (manifiestos, remesas). Es genérico sobre el tipo de registro.
package records

import (
	"strings"
	"time"

	"github.com/jhoicas/silogtran-api/internal/domain/entity"
)

// Record contrato de un registro filtrable: id, código, cliente, fecha, origen, destino y estado.
type Record interface {
	RecordID() string
	RecordCode() string
	RecordClient() string
	RecordDate() time.Time
	RecordOrigin() string
	RecordDestination() string
	RecordStatus() entity.Status
}

// DateLayout formato de fecha civil usado en filtros y respuestas.
const DateLayout = "2006-01-02"

// Criteria criterios de filtrado. Un criterio vacío o nil no restringe.
type Criteria struct {
	Search   string
	Status   entity.Status
	DateFrom *time.Time
	DateTo   *time.Time
}

// Empty informa si ningún criterio restringe.
func (c Criteria) Empty() bool {
	return c.Search == "" && c.Status == "" && c.DateFrom == nil && c.DateTo == nil
}

// Matches aplica los cuatro criterios combinados con AND.
func (c Criteria) Matches(r Record) bool {
	if c.Search != "" {
		q := strings.ToLower(c.Search)
		if !strings.Contains(strings.ToLower(r.RecordCode()), q) &&
			!strings.Contains(strings.ToLower(r.RecordClient()), q) {
			return false
		}
	}
	if c.Status != "" && r.RecordStatus() != c.Status {
		return false
	}
	d := civilDate(r.RecordDate())
	if c.DateFrom != nil && d.Before(civilDate(*c.DateFrom)) {
		return false
	}
	if c.DateTo != nil && d.After(civilDate(*c.DateTo)) {
		return false
	}
	return true
}

// civilDate descarta la hora: los filtros comparan días de calendario.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate interpreta una fecha civil YYYY-MM-DD. Vacío devuelve nil sin error.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Filter filtro configurable de registros. Se instancia uno por vista o petición.
type Filter[T Record] struct {
	criteria Criteria
}

// NewFilter construye un filtro sin criterios.
func NewFilter[T Record]() *Filter[T] {
	return &Filter[T]{}
}

// Configure reemplaza los criterios. La búsqueda se recorta de espacios.
func (f *Filter[T]) Configure(c Criteria) {
	c.Search = strings.TrimSpace(c.Search)
	f.criteria = c
}

// Criteria criterios vigentes.
func (f *Filter[T]) Criteria() Criteria { return f.criteria }

// Apply devuelve los registros que cumplen los criterios, en su orden original.
func (f *Filter[T]) Apply(in []T) []T {
	out := make([]T, 0, len(in))
	for _, r := range in {
		if f.criteria.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
