package dto

import "time"

// HistorialEntryDTO visita reciente a una opción de un módulo.
type HistorialEntryDTO struct {
	ID        int64     `json:"id"`
	Module    string    `json:"module"`
	Option    string    `json:"option"`
	Label     string    `json:"label"` // "Módulo → Opción"
	Timestamp time.Time `json:"timestamp"`
}

// HistorialResponse historial de la sesión, el más reciente primero.
type HistorialResponse struct {
	Count int                 `json:"count"`
	Items []HistorialEntryDTO `json:"items"`
}

// RecordVisitRequest visita por par explícito o por id de acción del catálogo.
type RecordVisitRequest struct {
	Module string `json:"module"`
	Option string `json:"option"`
	Action string `json:"action"`
}
