package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create persiste el usuario y asigna user.ID. Devuelve domain.ErrDuplicate si el username existe.
	Create(ctx context.Context, user *entity.User) error
	// GetByID y GetByUserName devuelven nil, nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUserName(ctx context.Context, userName string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context, filter Filter) (int, error)
	List(ctx context.Context, filter Filter, limit, offset int) ([]*entity.User, error)
}
