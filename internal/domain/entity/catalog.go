package entity

// Kind categoría de una entrada del catálogo de búsqueda.
type Kind string

const (
	KindPage      Kind = "pages"
	KindProcedure Kind = "procedures"
	KindReport    Kind = "reports"
)

// KindAll filtro que abarca las tres categorías.
const KindAll Kind = "all"

// Kinds orden de concatenación para el filtro "all".
var Kinds = []Kind{KindPage, KindProcedure, KindReport}

// ParseKind valida un filtro de categoría; vacío equivale a "all".
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case "", KindAll:
		return KindAll, true
	case KindPage, KindProcedure, KindReport:
		return Kind(s), true
	}
	return "", false
}

// Label nombre singular para el mensaje de selección.
func (k Kind) Label() string {
	switch k {
	case KindPage:
		return "Página"
	case KindProcedure:
		return "Procedimiento"
	case KindReport:
		return "Informe"
	default:
		return "Elemento"
	}
}

// GroupLabel nombre plural para el badge del resultado.
func (k Kind) GroupLabel() string {
	switch k {
	case KindPage:
		return "Páginas"
	case KindProcedure:
		return "Procedimientos"
	case KindReport:
		return "Informes"
	default:
		return "Elemento"
	}
}

// CatalogEntry elemento buscable (página, procedimiento o informe).
type CatalogEntry struct {
	Name        string `yaml:"name"`
	Module      string `yaml:"module"`
	Description string `yaml:"description"`
	Kind        Kind   `yaml:"-"`
	Action      string `yaml:"action,omitempty"` // id de acción de navegación, si existe
}
