package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrPageNotFound = errors.New("la página solicitada no existe")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// Violation describe un campo que no cumple una restricción de validación.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa las violaciones de una petición. errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, "campo "+v.Field+": "+v.Message)
	}
	return "datos inválidos: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
