package records

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/silogtran-api/internal/domain"
	"github.com/jhoicas/silogtran-api/internal/domain/entity"
)

// Page porción de una colección filtrada.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// Paginate devuelve la página solicitada. La página no se acota: pedir una página más allá
// del final devuelve Items vacío; el llamador vuelve a la página 1 al cambiar el filtro.
func Paginate[T any](in []T, page, pageSize int) (Page[T], error) {
	if page < 1 || pageSize < 1 {
		return Page[T]{}, fmt.Errorf("paginar (page=%d, page_size=%d): %w", page, pageSize, domain.ErrInvalidInput)
	}
	total := len(in)
	p := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}
	start := (page - 1) * pageSize
	if start >= total {
		return p, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	p.Items = append(p.Items, in[start:end]...)
	return p, nil
}

// Range posiciones (1-based) del primer y último elemento de la página, para el texto
// "Mostrando a-b de n". Una página vacía devuelve 0, 0.
func (p Page[T]) Range() (from, to int) {
	if len(p.Items) == 0 {
		return 0, 0
	}
	from = (p.Page-1)*p.PageSize + 1
	return from, from + len(p.Items) - 1
}

// Summary agregados de una colección.
type Summary struct {
	Total         int
	CountByStatus map[entity.Status]int
}

// Summarize cuenta registros por estado. Los cuatro estados conocidos siempre aparecen.
func Summarize[T Record](in []T) Summary {
	s := Summary{Total: len(in), CountByStatus: make(map[entity.Status]int, len(entity.Statuses))}
	for _, st := range entity.Statuses {
		s.CountByStatus[st] = 0
	}
	for _, r := range in {
		s.CountByStatus[r.RecordStatus()]++
	}
	return s
}

// Measured registro con peso y valor declarado (remesas).
type Measured interface {
	RecordWeight() decimal.Decimal
	RecordValue() decimal.Decimal
}

// Totals suma peso y valor de los registros que los tengan. ok=false si ninguno los tiene.
func Totals[T Record](in []T) (weight, value decimal.Decimal, ok bool) {
	for _, r := range in {
		m, is := any(r).(Measured)
		if !is {
			continue
		}
		ok = true
		weight = weight.Add(m.RecordWeight())
		value = value.Add(m.RecordValue())
	}
	return weight, value, ok
}
