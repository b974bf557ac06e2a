package repository

import "context"

// Repositories repositorios atados a una misma unidad de trabajo.
type Repositories struct {
	Products ProductRepository
	Users    UserRepository
	Clients  ClientRepository
}

// UnitOfWork ejecuta fn en una transacción: commit si fn retorna nil, rollback en caso contrario.
type UnitOfWork interface {
	Run(ctx context.Context, fn func(tx Repositories) error) error
}
