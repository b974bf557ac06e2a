// Package authz resuelve quién llama y decide el alcance por cliente (tenant).
package authz

import (
	"context"
	"fmt"
	"slices"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// Principal identidad autenticada tal como llega en el token.
type Principal struct {
	UserID   int64
	UserName string
	Roles    []string
}

// HasRole indica si el principal tiene el rol dado.
func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

// Caller capacidades efectivas de quien llama.
type Caller struct {
	UserName   string
	SuperAdmin bool
	ClientID   int64
}

// CanReach es el único punto de decisión del aislamiento por cliente.
func (c Caller) CanReach(clientID int64) bool {
	if c.SuperAdmin {
		return true
	}
	return c.ClientID != 0 && c.ClientID == clientID
}

// noClient no coincide con ningún client_id; los ids de cliente empiezan en 1.
const noClient int64 = -1

// Scope filtro a aplicar en listados: nil para super admins, el cliente propio para el resto.
// Sin cliente el filtro no coincide con nada, igual que CanReach.
func (c Caller) Scope() repository.Filter {
	if c.SuperAdmin {
		return nil
	}
	if c.ClientID == 0 {
		return repository.Filter{repository.FilterClientID: noClient}
	}
	return repository.Filter{repository.FilterClientID: c.ClientID}
}

type userFinder interface {
	GetByUserName(ctx context.Context, userName string) (*entity.User, error)
}

// Resolve construye el Caller. Un super admin no necesita consultar su registro; el resto
// se resuelve por username para obtener su cliente. Un token de un usuario borrado es ErrUnauthorized.
func Resolve(ctx context.Context, users userFinder, p Principal) (Caller, error) {
	if p.HasRole(entity.RoleSuperAdmin) {
		return Caller{UserName: p.UserName, SuperAdmin: true}, nil
	}
	u, err := users.GetByUserName(ctx, p.UserName)
	if err != nil {
		return Caller{}, fmt.Errorf("resolver usuario autenticado: %w", err)
	}
	if u == nil {
		return Caller{}, domain.ErrUnauthorized
	}
	return Caller{UserName: u.UserName, ClientID: u.ClientID}, nil
}
