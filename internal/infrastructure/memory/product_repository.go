package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*productRepo)(nil)

type productRepo struct {
	s    *Store
	inTx bool
}

func (r *productRepo) Create(_ context.Context, product *entity.Product) error {
	defer r.s.lock(r.inTx)()
	r.s.d.productSq++
	product.ID = r.s.d.productSq
	r.s.d.products[product.ID] = *product
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	defer r.s.lock(r.inTx)()
	p, ok := r.s.d.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) Update(_ context.Context, product *entity.Product) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.d.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.d.products[product.ID] = *product
	return nil
}

func (r *productRepo) Delete(_ context.Context, id int64) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.d.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.d.products, id)
	return nil
}

func (r *productRepo) Count(_ context.Context, filter repository.Filter) (int, error) {
	defer r.s.lock(r.inTx)()
	all, err := r.matching(filter)
	return len(all), err
}

func (r *productRepo) List(_ context.Context, filter repository.Filter, limit, offset int) ([]*entity.Product, error) {
	defer r.s.lock(r.inTx)()
	all, err := r.matching(filter)
	if err != nil {
		return nil, err
	}
	return window(all, limit, offset), nil
}

// matching devuelve copias ordenadas por ID.
func (r *productRepo) matching(filter repository.Filter) ([]*entity.Product, error) {
	if err := checkFilter(filter, repository.FilterBrand); err != nil {
		return nil, err
	}
	var out []*entity.Product
	for _, p := range r.s.d.products {
		if brand, ok := filter[repository.FilterBrand]; ok && p.Brand != brand {
			continue
		}
		out = append(out, &p)
	}
	slices.SortFunc(out, func(a, b *entity.Product) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}
