// Package pagination corta el resultado de un repositorio en páginas de tamaño fijo.
package pagination

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// Source es la consulta paginable que expone un repositorio.
type Source[T any] interface {
	Count(ctx context.Context, filter repository.Filter) (int, error)
	List(ctx context.Context, filter repository.Filter, limit, offset int) ([]T, error)
}

// Page resultado de una página. Total y Pages son nil si no se pidió el conteo.
type Page[T any] struct {
	Number int
	Size   int
	Total  *int
	Pages  *int
	Items  []T
}

// Paginator calcula páginas sobre un Source con tamaño fijo.
type Paginator[T any] struct {
	src  Source[T]
	size int
}

// New construye el paginador. size debe ser positivo.
func New[T any](src Source[T], size int) *Paginator[T] {
	if size <= 0 {
		panic(fmt.Sprintf("pagination: tamaño de página inválido %d", size))
	}
	return &Paginator[T]{src: src, size: size}
}

// Size devuelve el tamaño de página configurado.
func (p *Paginator[T]) Size() int {
	return p.size
}

// GetPage devuelve la página number (base 1) aplicando filter.
// Retorna domain.ErrPageNotFound si la página supera las disponibles; la página 1 de un
// conjunto vacío es una página vacía válida.
func (p *Paginator[T]) GetPage(ctx context.Context, number int, includeTotal bool, filter repository.Filter) (*Page[T], error) {
	if number < 1 {
		number = 1
	}
	page := &Page[T]{Number: number, Size: p.size}

	if includeTotal {
		total, err := p.src.Count(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("contar elementos: %w", err)
		}
		pages := (total + p.size - 1) / p.size
		if number > max(pages, 1) {
			return nil, domain.ErrPageNotFound
		}
		page.Total = &total
		page.Pages = &pages
		if total == 0 {
			page.Items = []T{}
			return page, nil
		}
	}

	items, err := p.src.List(ctx, filter, p.size, (number-1)*p.size)
	if err != nil {
		return nil, fmt.Errorf("listar elementos: %w", err)
	}
	if len(items) == 0 && number > 1 {
		return nil, domain.ErrPageNotFound
	}
	if items == nil {
		items = []T{}
	}
	page.Items = items
	return page, nil
}

// Map convierte los elementos de una página conservando sus metadatos.
func Map[T, R any](page *Page[T], fn func(T) R) *Page[R] {
	out := &Page[R]{
		Number: page.Number,
		Size:   page.Size,
		Total:  page.Total,
		Pages:  page.Pages,
		Items:  make([]R, 0, len(page.Items)),
	}
	for _, it := range page.Items {
		out.Items = append(out.Items, fn(it))
	}
	return out
}
