package auth

import (
	"context"
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// BootstrapInput datos iniciales. Los campos vacíos se omiten.
type BootstrapInput struct {
	ClientName         string
	SuperAdminUser     string
	SuperAdminPassword string
	SuperAdminEmail    string
}

// BootstrapResult qué se creó en esta ejecución.
type BootstrapResult struct {
	ClientID          int64
	ClientCreated     bool
	SuperAdminCreated bool
}

// Bootstrapper da de alta el cliente inicial y el super admin al arrancar. Es idempotente.
type Bootstrapper struct {
	uow    repository.UnitOfWork
	hasher domain.PasswordHasher
}

// NewBootstrapper construye el bootstrapper.
func NewBootstrapper(uow repository.UnitOfWork, hasher domain.PasswordHasher) *Bootstrapper {
	return &Bootstrapper{uow: uow, hasher: hasher}
}

// Run crea lo que falte en una sola transacción.
func (b *Bootstrapper) Run(ctx context.Context, in BootstrapInput) (BootstrapResult, error) {
	var res BootstrapResult
	var hash string
	if in.SuperAdminUser != "" {
		h, err := b.hasher.Hash(in.SuperAdminPassword)
		if err != nil {
			return res, err
		}
		hash = h
	}

	err := b.uow.Run(ctx, func(tx repository.Repositories) error {
		now := time.Now()
		if in.ClientName != "" {
			c, err := tx.Clients.GetByName(ctx, in.ClientName)
			if err != nil {
				return err
			}
			if c == nil {
				c = &entity.Client{Name: in.ClientName, CreatedAt: now}
				if err := tx.Clients.Create(ctx, c); err != nil {
					return err
				}
				res.ClientCreated = true
			}
			res.ClientID = c.ID
		}

		if in.SuperAdminUser == "" {
			return nil
		}
		existing, err := tx.Users.GetByUserName(ctx, in.SuperAdminUser)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
		if err := tx.Users.Create(ctx, &entity.User{
			UserName:     in.SuperAdminUser,
			PasswordHash: hash,
			Email:        in.SuperAdminEmail,
			Roles:        []string{entity.RoleSuperAdmin},
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return err
		}
		res.SuperAdminCreated = true
		return nil
	})
	if err != nil {
		return BootstrapResult{}, err
	}
	return res, nil
}
