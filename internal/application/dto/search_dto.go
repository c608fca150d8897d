package dto

// SearchRequest parámetros de GET /api/search.
type SearchRequest struct {
	Context string `query:"context"`
	Query   string `query:"q"`
	Filter  string `query:"filter"`
}

// SegmentDTO tramo de texto resaltado; Match=true si coincide con la consulta.
type SegmentDTO struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}

// SearchEntryDTO entrada del catálogo que coincide con la consulta.
type SearchEntryDTO struct {
	Name                string       `json:"name"`
	Module              string       `json:"module"`
	Description         string       `json:"description"`
	Kind                string       `json:"kind"`
	KindLabel           string       `json:"kind_label"`
	Action              string       `json:"action,omitempty"`
	HighlightedName     string       `json:"highlighted_name"`
	HighlightedModule   string       `json:"highlighted_module"`
	HighlightedDesc     string       `json:"highlighted_description"`
	NameSegments        []SegmentDTO `json:"name_segments"`
	DescriptionSegments []SegmentDTO `json:"description_segments"`
}

// SearchGroupDTO resultados de un tipo (Páginas, Procesos, Reportes).
type SearchGroupDTO struct {
	Kind    string           `json:"kind"`
	Label   string           `json:"label"`
	Entries []SearchEntryDTO `json:"entries"`
}

// SearchResponse resultado de una búsqueda. Active=false: no hay búsqueda activa (consulta corta).
type SearchResponse struct {
	Context string           `json:"context"`
	Query   string           `json:"query"`
	Filter  string           `json:"filter"`
	Active  bool             `json:"active"`
	Total   int              `json:"total"`
	Entries []SearchEntryDTO `json:"entries"`
	Groups  []SearchGroupDTO `json:"groups"`
}
