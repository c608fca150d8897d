package entity

import "time"

// MaxHistorialItems tamaño máximo del historial de actividad reciente.
const MaxHistorialItems = 5

// HistorialEntry visita a una opción de un módulo. La clave de unicidad es (Module, Option).
type HistorialEntry struct {
	Module    string    `json:"module"`
	Option    string    `json:"option"`
	Timestamp time.Time `json:"timestamp"`
	ID        int64     `json:"id"`
}

// SameTarget informa si ambas entradas apuntan al mismo (módulo, opción).
func (h HistorialEntry) SameTarget(module, option string) bool {
	return h.Module == module && h.Option == option
}

// NavTarget destino de navegación asociado a un id de acción de la UI.
type NavTarget struct {
	Module string `yaml:"module"`
	Option string `yaml:"option"`
}
