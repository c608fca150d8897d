package entity

import "strings"

// Status estado de un manifiesto o remesa.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses en el orden en que se muestran las tarjetas de estadísticas.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// statusAliases valores heredados de la consola (en español).
var statusAliases = map[string]Status{
	"pendiente":  StatusPending,
	"en_proceso": StatusInProgress,
	"completado": StatusCompleted,
	"completada": StatusCompleted,
	"cancelado":  StatusCancelled,
	"cancelada":  StatusCancelled,
}

// ParseStatus acepta el valor canónico o su alias en español. ok=false si no es un estado conocido.
func ParseStatus(s string) (Status, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch Status(v) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(v), true
	}
	st, ok := statusAliases[v]
	return st, ok
}

// Valid informa si el estado pertenece al enum.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Label texto visible del estado.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pendiente"
	case StatusInProgress:
		return "En Proceso"
	case StatusCompleted:
		return "Completado"
	case StatusCancelled:
		return "Cancelado"
	default:
		return "Desconocido"
	}
}

// Color color del badge del estado.
func (s Status) Color() string {
	switch s {
	case StatusPending:
		return "#f59e0b"
	case StatusInProgress:
		return "#3b82f6"
	case StatusCompleted:
		return "#22c55e"
	case StatusCancelled:
		return "#ef4444"
	default:
		return "#6b7280"
	}
}
