// Package search contiene el catálogo buscable de cada vista de la consola y el motor de
// consulta sobre él. Todo es en memoria y sin efectos laterales.
package search

import "github.com/jhoicas/silogtran-api/internal/domain/entity"

// Catalog catálogo inmutable de páginas, procedimientos e informes de una vista
// (dashboard, manifiesto, remesa). Se construye una vez al iniciar.
type Catalog struct {
	view   string
	groups map[entity.Kind][]entity.CatalogEntry
}

// NewCatalog construye el catálogo copiando las listas y etiquetando cada entrada con su categoría.
func NewCatalog(view string, pages, procedures, reports []entity.CatalogEntry) *Catalog {
	return &Catalog{
		view: view,
		groups: map[entity.Kind][]entity.CatalogEntry{
			entity.KindPage:      tagged(pages, entity.KindPage),
			entity.KindProcedure: tagged(procedures, entity.KindProcedure),
			entity.KindReport:    tagged(reports, entity.KindReport),
		},
	}
}

func tagged(in []entity.CatalogEntry, kind entity.Kind) []entity.CatalogEntry {
	out := make([]entity.CatalogEntry, len(in))
	for i, e := range in {
		e.Kind = kind
		out[i] = e
	}
	return out
}

// View nombre de la vista dueña del catálogo.
func (c *Catalog) View() string { return c.view }

// EntriesFor devuelve las entradas de una categoría, o de todas para entity.KindAll
// (páginas, luego procedimientos, luego informes). Categoría desconocida: nil.
// El slice devuelto es una copia; el catálogo no se puede mutar desde fuera.
func (c *Catalog) EntriesFor(kind entity.Kind) []entity.CatalogEntry {
	if kind == entity.KindAll {
		var total int
		for _, k := range entity.Kinds {
			total += len(c.groups[k])
		}
		out := make([]entity.CatalogEntry, 0, total)
		for _, k := range entity.Kinds {
			out = append(out, c.groups[k]...)
		}
		return out
	}
	group, ok := c.groups[kind]
	if !ok {
		return nil
	}
	return append([]entity.CatalogEntry(nil), group...)
}

// Len número total de entradas.
func (c *Catalog) Len() int {
	n := 0
	for _, g := range c.groups {
		n += len(g)
	}
	return n
}
