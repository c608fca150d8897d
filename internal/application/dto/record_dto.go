package dto

import "github.com/shopspring/decimal"

// RecordFilterRequest filtros y paginación de GET /api/{manifests,remesas}.
type RecordFilterRequest struct {
	Search   string `query:"search"`
	Status   string `query:"status"`
	DateFrom string `query:"date_from"` // YYYY-MM-DD
	DateTo   string `query:"date_to"`   // YYYY-MM-DD
	PageRequest
}

// RecordDTO fila de manifiesto o remesa. WeightKg y DeclaredValue solo vienen en remesas.
type RecordDTO struct {
	ID            string           `json:"id"`
	Code          string           `json:"code"`
	Client        string           `json:"client"`
	Date          string           `json:"date"`
	Origin        string           `json:"origin"`
	Destination   string           `json:"destination"`
	Status        string           `json:"status"`
	StatusLabel   string           `json:"status_label"`
	StatusColor   string           `json:"status_color"`
	WeightKg      *decimal.Decimal `json:"weight_kg,omitempty"`
	DeclaredValue *decimal.Decimal `json:"declared_value,omitempty"`
}

// RecordListResponse página de registros filtrados.
type RecordListResponse struct {
	Items []RecordDTO  `json:"items"`
	Page  PageResponse `json:"page"`
}

// StatusCountDTO cantidad de registros en un estado.
type StatusCountDTO struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Color  string `json:"color"`
	Count  int    `json:"count"`
}

// SummaryResponse estadísticas de los registros filtrados.
type SummaryResponse struct {
	Total              int              `json:"total"`
	ByStatus           []StatusCountDTO `json:"by_status"`
	TotalWeightKg      *decimal.Decimal `json:"total_weight_kg,omitempty"`
	TotalDeclaredValue *decimal.Decimal `json:"total_declared_value,omitempty"`
}
