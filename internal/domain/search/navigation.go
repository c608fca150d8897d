package search

import "github.com/jhoicas/silogtran-api/internal/domain/entity"

// Navigation mapa explícito de ids de acción de la UI a (módulo, opción) del historial.
type Navigation map[string]entity.NavTarget

// Resolve devuelve el destino registrado para la acción.
func (n Navigation) Resolve(action string) (entity.NavTarget, bool) {
	t, ok := n[action]
	return t, ok
}
