package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, reintente la operación")
	ErrLedgerIntegrity     = errors.New("inconsistencia en el libro de movimientos")
)

// ValidationError señala entrada inválida indicando el campo ofensor.
// Envuelve ErrInvalidInput para que errors.Is(err, ErrInvalidInput) siga funcionando.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "entrada inválida: " + e.Field + ": " + e.Reason
}

// Unwrap permite tratar cualquier ValidationError como ErrInvalidInput.
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un error de validación con el campo y la razón.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
