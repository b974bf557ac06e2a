package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.UserRepository = (*userRepo)(nil)

type userRepo struct {
	s    *Store
	inTx bool
}

func cloneUser(u entity.User) *entity.User {
	u.Roles = slices.Clone(u.Roles)
	return &u
}

func (r *userRepo) takenBy(userName string) int64 {
	for id, u := range r.s.d.users {
		if u.UserName == userName {
			return id
		}
	}
	return 0
}

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	defer r.s.lock(r.inTx)()
	if r.takenBy(user.UserName) != 0 {
		return domain.ErrDuplicate
	}
	r.s.d.userSq++
	user.ID = r.s.d.userSq
	r.s.d.users[user.ID] = *cloneUser(*user)
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	defer r.s.lock(r.inTx)()
	u, ok := r.s.d.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *userRepo) GetByUserName(_ context.Context, userName string) (*entity.User, error) {
	defer r.s.lock(r.inTx)()
	id := r.takenBy(userName)
	if id == 0 {
		return nil, nil
	}
	return cloneUser(r.s.d.users[id]), nil
}

func (r *userRepo) Update(_ context.Context, user *entity.User) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.d.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	if owner := r.takenBy(user.UserName); owner != 0 && owner != user.ID {
		return domain.ErrDuplicate
	}
	r.s.d.users[user.ID] = *cloneUser(*user)
	return nil
}

func (r *userRepo) Delete(_ context.Context, id int64) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.d.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.d.users, id)
	return nil
}

func (r *userRepo) Count(_ context.Context, filter repository.Filter) (int, error) {
	defer r.s.lock(r.inTx)()
	all, err := r.matching(filter)
	return len(all), err
}

func (r *userRepo) List(_ context.Context, filter repository.Filter, limit, offset int) ([]*entity.User, error) {
	defer r.s.lock(r.inTx)()
	all, err := r.matching(filter)
	if err != nil {
		return nil, err
	}
	return window(all, limit, offset), nil
}

func (r *userRepo) matching(filter repository.Filter) ([]*entity.User, error) {
	if err := checkFilter(filter, repository.FilterClientID); err != nil {
		return nil, err
	}
	var out []*entity.User
	for _, u := range r.s.d.users {
		if clientID, ok := filter[repository.FilterClientID]; ok && u.ClientID != clientID {
			continue
		}
		out = append(out, cloneUser(u))
	}
	slices.SortFunc(out, func(a, b *entity.User) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}
