package repository

// Filter restricciones de igualdad columna -> valor aplicadas a un listado.
// Cada repositorio define qué claves acepta; una clave desconocida es un error.
type Filter map[string]any

// Claves de filtro soportadas.
const (
	FilterClientID = "client_id"
	FilterBrand    = "brand"
)
