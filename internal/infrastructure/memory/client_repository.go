package memory

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*clientRepo)(nil)

type clientRepo struct {
	s    *Store
	inTx bool
}

func (r *clientRepo) Create(_ context.Context, client *entity.Client) error {
	defer r.s.lock(r.inTx)()
	r.s.d.clientSq++
	client.ID = r.s.d.clientSq
	r.s.d.clients[client.ID] = *client
	return nil
}

func (r *clientRepo) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	defer r.s.lock(r.inTx)()
	c, ok := r.s.d.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *clientRepo) GetByName(_ context.Context, name string) (*entity.Client, error) {
	defer r.s.lock(r.inTx)()
	var found *entity.Client
	for _, c := range r.s.d.clients {
		if c.Name == name && (found == nil || c.ID < found.ID) {
			found = &c
		}
	}
	return found, nil
}
