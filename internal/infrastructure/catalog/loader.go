// Package catalog carga los catálogos de búsqueda de cada vista y el mapa de navegación
// (id de acción -> módulo, opción) desde YAML. Por defecto usa el archivo embebido.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/silogtran-api/internal/domain/entity"
	"github.com/jhoicas/silogtran-api/internal/domain/search"
)

//go:embed catalogs.yaml
var embedded []byte

type fileEntry struct {
	entity.CatalogEntry `yaml:",inline"`
	Target              *entity.NavTarget `yaml:"target"`
}

type fileContext struct {
	Pages      []fileEntry `yaml:"pages"`
	Procedures []fileEntry `yaml:"procedures"`
	Reports    []fileEntry `yaml:"reports"`
}

type fileDoc struct {
	Contexts map[string]fileContext `yaml:"contexts"`
}

// Set catálogos por vista y mapa de navegación compartido.
type Set struct {
	Catalogs   map[string]*search.Catalog
	Navigation search.Navigation
}

// Default catálogos embebidos en el binario.
func Default() (*Set, error) {
	return Parse(embedded)
}

// LoadFile lee los catálogos desde un archivo YAML con el mismo formato que el embebido.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: leer %s: %w", path, err)
	}
	return Parse(data)
}

// Parse interpreta el YAML. Toda entrada necesita nombre y módulo; una acción no puede
// declararse dos veces con destinos distintos.
func Parse(data []byte) (*Set, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: yaml: %w", err)
	}
	if len(doc.Contexts) == 0 {
		return nil, fmt.Errorf("catalog: sin vistas definidas")
	}
	set := &Set{Catalogs: make(map[string]*search.Catalog, len(doc.Contexts)), Navigation: search.Navigation{}}
	for view, fc := range doc.Contexts {
		groups := [3][]entity.CatalogEntry{}
		for i, src := range [3][]fileEntry{fc.Pages, fc.Procedures, fc.Reports} {
			entries, err := set.collect(view, src)
			if err != nil {
				return nil, err
			}
			groups[i] = entries
		}
		set.Catalogs[view] = search.NewCatalog(view, groups[0], groups[1], groups[2])
	}
	return set, nil
}

func (s *Set) collect(view string, src []fileEntry) ([]entity.CatalogEntry, error) {
	out := make([]entity.CatalogEntry, 0, len(src))
	for _, fe := range src {
		e := fe.CatalogEntry
		if strings.TrimSpace(e.Name) == "" || strings.TrimSpace(e.Module) == "" {
			return nil, fmt.Errorf("catalog: vista %s: entrada sin nombre o módulo", view)
		}
		if e.Action != "" && fe.Target != nil {
			if prev, dup := s.Navigation[e.Action]; dup && prev != *fe.Target {
				return nil, fmt.Errorf("catalog: acción %q con destinos distintos", e.Action)
			}
			s.Navigation[e.Action] = *fe.Target
		}
		out = append(out, e)
	}
	return out, nil
}

// Engines un motor de búsqueda por vista.
func (s *Set) Engines() map[string]*search.Engine {
	out := make(map[string]*search.Engine, len(s.Catalogs))
	for view, c := range s.Catalogs {
		out[view] = search.NewEngine(c)
	}
	return out
}

// Views nombres de las vistas, en orden alfabético.
func (s *Set) Views() []string {
	out := make([]string, 0, len(s.Catalogs))
	for v := range s.Catalogs {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
