package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// ErrStorage fallo de lectura/escritura o de parseo del almacenamiento de sesión.
	// Nunca llega al usuario: quien lo recibe lo sustituye por un valor vacío.
	ErrStorage = errors.New("almacenamiento no disponible o corrupto")

	// ErrKeyNotFound la clave no existe en el almacenamiento (no es un fallo).
	ErrKeyNotFound = errors.New("clave no encontrada")

	// ErrSessionStep la sesión no completó un paso previo (login, 2FA o centro de costos).
	ErrSessionStep = errors.New("paso de sesión pendiente")
)

// ValidationError entrada inválida con un mensaje apto para mostrar al usuario.
// errors.Is(err, ErrInvalidInput) es verdadero.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
