package usecase

import (
	"fmt"
	"sort"

	"github.com/jhoicas/silogtran-api/internal/application/dto"
	"github.com/jhoicas/silogtran-api/internal/domain"
	"github.com/jhoicas/silogtran-api/internal/domain/entity"
	"github.com/jhoicas/silogtran-api/internal/domain/search"
)

// DefaultSearchContext vista cuyo catálogo se usa si la petición no indica contexto.
const DefaultSearchContext = "dashboard"

// SearchUseCase búsqueda sobre el catálogo de cada vista (dashboard, manifest, remesa).
// Cada vista tiene su propio motor; no hay estado compartido entre vistas.
type SearchUseCase struct {
	engines    map[string]*search.Engine
	navigation search.Navigation
}

// NewSearchUseCase construye el caso de uso con un motor por vista.
func NewSearchUseCase(engines map[string]*search.Engine, navigation search.Navigation) *SearchUseCase {
	return &SearchUseCase{engines: engines, navigation: navigation}
}

// Contexts vistas con catálogo, en orden alfabético.
func (uc *SearchUseCase) Contexts() []string {
	out := make([]string, 0, len(uc.engines))
	for k := range uc.engines {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Search ejecuta la consulta en el catálogo de la vista y resalta las coincidencias.
// Devuelve domain.ErrNotFound si la vista no existe y un error de validación si el filtro no es válido.
func (uc *SearchUseCase) Search(req dto.SearchRequest) (*dto.SearchResponse, error) {
	view := req.Context
	if view == "" {
		view = DefaultSearchContext
	}
	engine, ok := uc.engines[view]
	if !ok {
		return nil, fmt.Errorf("search: vista %q: %w", view, domain.ErrNotFound)
	}
	kind, ok := entity.ParseKind(req.Filter)
	if !ok {
		return nil, domain.NewValidationError("filtro inválido: use all, pages, procedures o reports")
	}

	res := engine.Search(req.Query, kind)
	out := &dto.SearchResponse{
		Context: view,
		Query:   res.Query,
		Filter:  string(res.Filter),
		Active:  res.Active,
		Total:   len(res.Entries),
		Entries: make([]dto.SearchEntryDTO, 0, len(res.Entries)),
		Groups:  []dto.SearchGroupDTO{},
	}
	groups := map[entity.Kind]*dto.SearchGroupDTO{}
	for _, e := range res.Entries {
		item := toSearchEntryDTO(e, res.Query)
		out.Entries = append(out.Entries, item)
		g, ok := groups[e.Kind]
		if !ok {
			g = &dto.SearchGroupDTO{Kind: string(e.Kind), Label: e.Kind.GroupLabel()}
			groups[e.Kind] = g
		}
		g.Entries = append(g.Entries, item)
	}
	for _, k := range entity.Kinds {
		if g, ok := groups[k]; ok {
			out.Groups = append(out.Groups, *g)
		}
	}
	return out, nil
}

// Resolve destino (módulo, opción) de un id de acción del catálogo.
func (uc *SearchUseCase) Resolve(action string) (entity.NavTarget, bool) {
	return uc.navigation.Resolve(action)
}

func toSearchEntryDTO(e entity.CatalogEntry, query string) dto.SearchEntryDTO {
	return dto.SearchEntryDTO{
		Name:                e.Name,
		Module:              e.Module,
		Description:         e.Description,
		Kind:                string(e.Kind),
		KindLabel:           e.Kind.Label(),
		Action:              e.Action,
		HighlightedName:     search.Highlight(e.Name, query),
		HighlightedModule:   search.Highlight(e.Module, query),
		HighlightedDesc:     search.Highlight(e.Description, query),
		NameSegments:        toSegmentDTOs(search.Segments(e.Name, query)),
		DescriptionSegments: toSegmentDTOs(search.Segments(e.Description, query)),
	}
}

func toSegmentDTOs(in []search.Segment) []dto.SegmentDTO {
	out := make([]dto.SegmentDTO, len(in))
	for i, s := range in {
		out[i] = dto.SegmentDTO{Text: s.Text, Match: s.Match}
	}
	return out
}
