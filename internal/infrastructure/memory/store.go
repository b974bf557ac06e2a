// Package memory implementa los repositorios en memoria (DB_DRIVER=memory y tests).
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.UnitOfWork = (*Store)(nil)

type data struct {
	products  map[int64]entity.Product
	users     map[int64]entity.User
	clients   map[int64]entity.Client
	productSq int64
	userSq    int64
	clientSq  int64
}

func (d *data) clone() *data {
	c := *d
	c.products = maps.Clone(d.products)
	c.users = maps.Clone(d.users)
	c.clients = maps.Clone(d.clients)
	return &c
}

// Store guarda productos, usuarios y clientes. Es seguro para uso concurrente.
type Store struct {
	mu sync.Mutex
	d  *data
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{d: &data{
		products: map[int64]entity.Product{},
		users:    map[int64]entity.User{},
		clients:  map[int64]entity.Client{},
	}}
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Users repositorio de usuarios fuera de transacción.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }

// Clients repositorio de clientes fuera de transacción.
func (s *Store) Clients() repository.ClientRepository { return &clientRepo{s: s} }

// AddClient registra un cliente y lo devuelve con su ID.
func (s *Store) AddClient(name string) *entity.Client {
	c := &entity.Client{Name: name, CreatedAt: time.Now()}
	_ = s.Clients().Create(context.Background(), c)
	return c
}

// Run ejecuta fn con el almacén bloqueado; si fn falla se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(tx repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.d.clone()
	err := fn(repository.Repositories{
		Products: &productRepo{s: s, inTx: true},
		Users:    &userRepo{s: s, inTx: true},
		Clients:  &clientRepo{s: s, inTx: true},
	})
	if err != nil {
		s.d = snapshot
		return err
	}
	return nil
}

// lock toma el mutex salvo dentro de Run, que ya lo tiene.
func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func checkFilter(filter repository.Filter, allowed ...string) error {
	for k := range filter {
		if !slices.Contains(allowed, k) {
			return fmt.Errorf("filtro no soportado: %q", k)
		}
	}
	return nil
}

func window[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	return all[offset:min(offset+limit, len(all))]
}
