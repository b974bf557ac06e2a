package dto

import "encoding/json"

// Optional distingue un campo ausente del JSON, un null explícito y un valor.
type Optional[T any] struct {
	Value T
	Set   bool // el campo apareció en el cuerpo
	Null  bool // el campo apareció como null
}

// Some construye un Optional presente con valor.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Present es true si el campo vino con un valor distinto de null.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

// UnmarshalJSON solo se invoca cuando la clave existe en el objeto.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// MarshalJSON serializa null cuando el valor no está presente.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
