package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/pagination"
	"github.com/jhoicas/catalogo-api/internal/application/validation"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para el catálogo público de productos.
type ProductUseCase struct {
	repo      repository.ProductRepository
	uow       repository.UnitOfWork
	pager     *pagination.Paginator[*entity.Product]
	validator *validation.Validator
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, uow repository.UnitOfWork, v *validation.Validator, pageSize int) *ProductUseCase {
	return &ProductUseCase{
		repo:      repo,
		uow:       uow,
		pager:     pagination.New[*entity.Product](repo, pageSize),
		validator: v,
	}
}

// List devuelve la página pedida con el total de productos. brand vacío no filtra.
func (uc *ProductUseCase) List(ctx context.Context, page int, brand string) (*dto.ProductListResponse, error) {
	var filter repository.Filter
	if brand != "" {
		filter = repository.Filter{repository.FilterBrand: brand}
	}
	p, err := uc.pager.GetPage(ctx, page, true, filter)
	if err != nil {
		return nil, err
	}
	out := pagination.Map(p, toProductResponse)
	return &dto.ProductListResponse{Items: out.Items, Page: toPageResponse(out)}, nil
}

// GetByID obtiene un producto por ID. domain.ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := toProductResponse(product)
	return &out, nil
}

// Create crea un producto. El ID del cuerpo se ignora.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := validation.Check(uc.validate(in)); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		Name:        in.Name,
		Brand:       in.Brand,
		Description: in.Description,
		Price:       in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.uow.Run(ctx, func(tx repository.Repositories) error {
		return tx.Products.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	out := toProductResponse(product)
	return &out, nil
}

// Edit hace upsert con el ID del cuerpo: sin ID crea, con ID existente reemplaza,
// con ID inexistente devuelve domain.ErrNotFound.
func (uc *ProductUseCase) Edit(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if in.ID <= 0 {
		return uc.Create(ctx, in)
	}
	if err := validation.Check(uc.validate(in)); err != nil {
		return nil, err
	}
	var product *entity.Product
	err := uc.uow.Run(ctx, func(tx repository.Repositories) error {
		existing, err := tx.Products.GetByID(ctx, in.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		existing.Name = in.Name
		existing.Brand = in.Brand
		existing.Description = in.Description
		existing.Price = in.Price
		existing.UpdatedAt = time.Now()
		product = existing
		return tx.Products.Update(ctx, existing)
	})
	if err != nil {
		return nil, err
	}
	out := toProductResponse(product)
	return &out, nil
}

// Delete elimina un producto por ID. domain.ErrNotFound si no existe.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.uow.Run(ctx, func(tx repository.Repositories) error {
		existing, err := tx.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return tx.Products.Delete(ctx, id)
	})
}

func (uc *ProductUseCase) validate(in dto.ProductRequest) []domain.Violation {
	violations := uc.validator.Struct(in)
	if in.Price.IsNegative() {
		violations = append(violations, domain.Violation{Field: "price", Message: "debe ser mayor o igual a 0"})
	}
	return violations
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Description: p.Description,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPageResponse[T any](p *pagination.Page[T]) dto.PageResponse {
	return dto.PageResponse{Page: p.Number, PageSize: p.Size, Total: p.Total, Pages: p.Pages}
}
