package entity

import "time"

// Client representa un cliente (tenant). Agrupa usuarios y delimita su visibilidad.
type Client struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
