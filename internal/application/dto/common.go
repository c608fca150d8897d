package dto

// PageRequest paginación de listados de la consola (page empieza en 1).
type PageRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

// DefaultPageSize tamaño de página de los listados de manifiestos y remesas.
const DefaultPageSize = 10

// DefaultPage aplica valores por defecto si Page/PageSize son cero.
func (p *PageRequest) DefaultPage() {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
}

// PageResponse metadatos de página en respuestas. From/To son posiciones 1-based ("Mostrando 11-20 de 25").
type PageResponse struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
	From       int `json:"from"`
	To         int `json:"to"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SessionStepResponse la sesión no completó un paso previo; Redirect es la vista a mostrar.
type SessionStepResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

// MessageResponse acuse simple.
type MessageResponse struct {
	Message string `json:"message"`
}
