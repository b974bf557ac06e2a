// Package validation convierte las restricciones de go-playground/validator en violaciones de dominio.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/catalogo-api/internal/domain"
)

// Validator envuelve validator.Validate reportando los campos por su nombre JSON.
type Validator struct {
	v *validator.Validate
}

// New construye el validador.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Struct valida s según sus tags `validate` y devuelve la lista de violaciones (vacía si es válido).
func (val *Validator) Struct(s any) []domain.Violation {
	return toViolations("", val.v.Struct(s))
}

// Var valida un valor suelto; field es el nombre con el que se reporta.
func (val *Validator) Var(field string, value any, tag string) []domain.Violation {
	return toViolations(field, val.v.Var(value, tag))
}

// Check devuelve *domain.ValidationError si hay violaciones.
func Check(violations []domain.Violation) error {
	if len(violations) == 0 {
		return nil
	}
	return &domain.ValidationError{Violations: violations}
}

func toViolations(field string, err error) []domain.Violation {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []domain.Violation{{Field: field, Message: err.Error()}}
	}
	out := make([]domain.Violation, 0, len(ve))
	for _, fe := range ve {
		name := fe.Field()
		if field != "" {
			// Var reporta "" o "[i]" para elementos de listas.
			name = field + name
		}
		out = append(out, domain.Violation{Field: name, Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "email":
		return "debe ser un email válido"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener como máximo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fmt.Sprintf("no cumple la restricción %s", fe.Tag())
	}
}
