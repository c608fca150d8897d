package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/silogtran-api/internal/domain/entity"
)

// MinQueryLength longitud mínima (en caracteres, sin espacios alrededor) de una búsqueda activa.
const MinQueryLength = 2

// Marcas con las que Highlight rodea cada coincidencia.
const (
	MarkOpen  = "<mark>"
	MarkClose = "</mark>"
)

// Result resultado de una búsqueda. Active=false significa "no hay búsqueda activa"
// (consulta demasiado corta), que la UI distingue de "sin coincidencias" ocultando el panel.
type Result struct {
	Query   string
	Filter  entity.Kind
	Active  bool
	Entries []entity.CatalogEntry
}

// Engine motor de consulta sobre un catálogo. Se instancia uno por vista.
type Engine struct {
	catalog *Catalog
}

// NewEngine construye el motor para el catálogo dado.
func NewEngine(catalog *Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Catalog catálogo sobre el que opera el motor.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// Search devuelve, en orden de catálogo, las entradas cuyo nombre, módulo o descripción
// contienen la consulta sin distinguir mayúsculas.
func (e *Engine) Search(query string, filter entity.Kind) Result {
	q := strings.TrimSpace(query)
	res := Result{Query: q, Filter: filter}
	if utf8.RuneCountInString(q) < MinQueryLength {
		return res
	}
	res.Active = true
	needle := fold(q)
	for _, entry := range e.catalog.EntriesFor(filter) {
		if Matches(entry, needle) {
			res.Entries = append(res.Entries, entry)
		}
	}
	return res
}

// Matches informa si la entrada contiene needle (ya normalizado con fold) en alguno de sus campos.
func Matches(entry entity.CatalogEntry, needle string) bool {
	return strings.Contains(fold(entry.Name), needle) ||
		strings.Contains(fold(entry.Module), needle) ||
		strings.Contains(fold(entry.Description), needle)
}

// fold normaliza a NFC y pasa a minúsculas runa por runa, de modo que el texto plegado
// conserve una runa por cada runa del original.
func fold(s string) string {
	return strings.Map(unicode.ToLower, norm.NFC.String(s))
}

// Segment tramo de texto; Match indica si corresponde a una coincidencia de la consulta.
type Segment struct {
	Text  string
	Match bool
}

// Segments parte text en tramos alternando texto normal y coincidencias de query
// (literal, sin distinguir mayúsculas, de izquierda a derecha y sin solaparse).
// La comparación se hace sobre la forma NFC, pero cada tramo es un corte del text original.
// Con query vacía devuelve un único tramo con el texto intacto.
func Segments(text, query string) []Segment {
	if query == "" {
		return []Segment{{Text: text}}
	}
	needle := []rune(fold(query))
	lower, spans := foldSpans(text)
	if len(needle) == 0 || len(needle) > len(lower) {
		return []Segment{{Text: text}}
	}

	var out []Segment
	start := 0
	for i := 0; i+len(needle) <= len(lower); {
		if !equalRunes(lower[i:i+len(needle)], needle) {
			i++
			continue
		}
		from := max(spans[i].from, start)
		to := spans[i+len(needle)-1].to
		if from > start {
			out = append(out, Segment{Text: text[start:from]})
		}
		out = append(out, Segment{Text: text[from:to], Match: true})
		i += len(needle)
		start = to
		for i < len(lower) && spans[i].from < start {
			i++
		}
	}
	if len(out) == 0 {
		return []Segment{{Text: text}}
	}
	if start < len(text) {
		out = append(out, Segment{Text: text[start:]})
	}
	return out
}

// span rango de bytes del texto original del que proviene una runa normalizada.
type span struct{ from, to int }

// foldSpans devuelve las runas de text en NFC y minúsculas junto con el rango de bytes
// del tramo original que produjo cada una. Cada tramo va de un límite de normalización
// al siguiente, así que normalizarlo por separado da el mismo resultado que normalizar todo.
func foldSpans(text string) ([]rune, []span) {
	var (
		runes []rune
		spans []span
	)
	flush := func(from, to int) {
		for _, r := range norm.NFC.String(text[from:to]) {
			runes = append(runes, unicode.ToLower(r))
			spans = append(spans, span{from: from, to: to})
		}
	}
	from := 0
	for i := range text {
		if i > from && norm.NFC.PropertiesString(text[i:]).BoundaryBefore() {
			flush(from, i)
			from = i
		}
	}
	if from < len(text) {
		flush(from, len(text))
	}
	return runes, spans
}

// Highlight rodea con MarkOpen/MarkClose cada coincidencia de query en text.
// La consulta se trata como subcadena literal; caracteres como ( o * no tienen significado especial.
func Highlight(text, query string) string {
	segs := Segments(text, query)
	if len(segs) == 1 && !segs[0].Match {
		return segs[0].Text
	}
	var sb strings.Builder
	for _, s := range segs {
		if s.Match {
			sb.WriteString(MarkOpen)
			sb.WriteString(s.Text)
			sb.WriteString(MarkClose)
			continue
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func equalRunes(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
