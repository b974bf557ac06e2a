package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia de clientes (tenants).
type ClientRepository interface {
	// Create persiste el cliente y asigna client.ID.
	Create(ctx context.Context, client *entity.Client) error
	// GetByID y GetByName devuelven nil, nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	GetByName(ctx context.Context, name string) (*entity.Client, error)
}
