package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo público. No pertenece a ningún cliente.
type Product struct {
	ID          int64
	Name        string
	Brand       string
	Description string
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
