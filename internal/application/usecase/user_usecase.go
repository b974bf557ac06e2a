package usecase

import (
	"context"
	"slices"
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/authz"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/pagination"
	"github.com/jhoicas/catalogo-api/internal/application/validation"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

const rolesTag = "dive,oneof=ROLE_USER ROLE_ADMIN ROLE_SUPER_ADMIN"

// UserUseCase aplica las reglas de visibilidad y modificación de usuarios por cliente.
// Solo un super admin ignora el alcance por cliente.
type UserUseCase struct {
	users     repository.UserRepository
	uow       repository.UnitOfWork
	pager     *pagination.Paginator[*entity.User]
	validator *validation.Validator
	hasher    domain.PasswordHasher
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(users repository.UserRepository, uow repository.UnitOfWork, v *validation.Validator, hasher domain.PasswordHasher, pageSize int) *UserUseCase {
	return &UserUseCase{
		users:     users,
		uow:       uow,
		pager:     pagination.New[*entity.User](users, pageSize),
		validator: v,
		hasher:    hasher,
	}
}

// List pagina los usuarios visibles para p, siempre con total.
func (uc *UserUseCase) List(ctx context.Context, p authz.Principal, page int) (*dto.UserListResponse, error) {
	caller, err := authz.Resolve(ctx, uc.users, p)
	if err != nil {
		return nil, err
	}
	res, err := uc.pager.GetPage(ctx, page, true, caller.Scope())
	if err != nil {
		return nil, err
	}
	out := pagination.Map(res, toUserResponse)
	return &dto.UserListResponse{Items: out.Items, Page: toPageResponse(out)}, nil
}

// GetByID devuelve el usuario si p puede alcanzar su cliente.
func (uc *UserUseCase) GetByID(ctx context.Context, p authz.Principal, id int64) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	caller, err := authz.Resolve(ctx, uc.users, p)
	if err != nil {
		return nil, err
	}
	if !caller.CanReach(user.ClientID) {
		return nil, domain.ErrForbidden
	}
	out := toUserResponse(user)
	return &out, nil
}

// Create valida la entrada antes de cualquier otra regla. Quien no es super admin
// solo crea usuarios ROLE_USER en su propio cliente.
func (uc *UserUseCase) Create(ctx context.Context, p authz.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := validation.Check(uc.validator.Struct(in)); err != nil {
		return nil, err
	}
	caller, err := authz.Resolve(ctx, uc.users, p)
	if err != nil {
		return nil, err
	}

	roles, clientID := in.Roles, in.ClientID
	if !caller.SuperAdmin {
		roles, clientID = []string{entity.RoleUser}, caller.ClientID
	}
	if len(roles) == 0 {
		roles = []string{entity.RoleUser}
	}
	if err := requireClientUnlessSuperAdmin(roles, clientID); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		UserName:     in.UserName,
		PasswordHash: hash,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		Roles:        slices.Clone(roles),
		ClientID:     clientID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.uow.Run(ctx, func(tx repository.Repositories) error {
		if caller.SuperAdmin && clientID != 0 {
			if err := requireClient(ctx, tx.Clients, clientID); err != nil {
				return err
			}
		}
		return tx.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	out := toUserResponse(user)
	return &out, nil
}

// Update aplica una actualización parcial: solo cambian los campos presentes y no vacíos.
// Para quien no es super admin los roles quedan en ROLE_USER y el cliente no se modifica.
func (uc *UserUseCase) Update(ctx context.Context, p authz.Principal, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := validation.Check(uc.validateUpdate(in)); err != nil {
		return nil, err
	}
	caller, err := authz.Resolve(ctx, uc.users, p)
	if err != nil {
		return nil, err
	}

	var user *entity.User
	err = uc.uow.Run(ctx, func(tx repository.Repositories) error {
		var err error
		user, err = tx.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNotFound
		}

		if !caller.SuperAdmin {
			if !caller.CanReach(user.ClientID) {
				return domain.ErrForbidden
			}
			user.Roles = []string{entity.RoleUser}
		} else {
			if in.Roles.Present() && len(in.Roles.Value) > 0 {
				user.Roles = slices.Clone(in.Roles.Value)
			}
			if in.ClientID.Present() && in.ClientID.Value != 0 {
				if err := requireClient(ctx, tx.Clients, in.ClientID.Value); err != nil {
					return err
				}
				user.ClientID = in.ClientID.Value
			}
		}
		if err := requireClientUnlessSuperAdmin(user.Roles, user.ClientID); err != nil {
			return err
		}

		if v, ok := nonEmpty(in.UserName); ok {
			user.UserName = v
		}
		if v, ok := nonEmpty(in.Password); ok {
			hash, err := uc.hasher.Hash(v)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}
		if v, ok := nonEmpty(in.Email); ok {
			user.Email = v
		}
		if v, ok := nonEmpty(in.PhoneNumber); ok {
			user.PhoneNumber = v
		}
		user.UpdatedAt = time.Now()
		return tx.Users.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	out := toUserResponse(user)
	return &out, nil
}

// Delete elimina el usuario si p puede alcanzar su cliente.
func (uc *UserUseCase) Delete(ctx context.Context, p authz.Principal, id int64) error {
	caller, err := authz.Resolve(ctx, uc.users, p)
	if err != nil {
		return err
	}
	return uc.uow.Run(ctx, func(tx repository.Repositories) error {
		user, err := tx.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNotFound
		}
		if !caller.CanReach(user.ClientID) {
			return domain.ErrForbidden
		}
		return tx.Users.Delete(ctx, id)
	})
}

// validateUpdate valida únicamente los valores que se van a aplicar.
func (uc *UserUseCase) validateUpdate(in dto.UpdateUserRequest) []domain.Violation {
	var out []domain.Violation
	if v, ok := nonEmpty(in.UserName); ok {
		out = append(out, uc.validator.Var("username", v, "min=3,max=50")...)
	}
	if v, ok := nonEmpty(in.Password); ok {
		out = append(out, uc.validator.Var("password", v, "min=8,max=72")...)
	}
	if v, ok := nonEmpty(in.Email); ok {
		out = append(out, uc.validator.Var("email", v, "email,max=180")...)
	}
	if v, ok := nonEmpty(in.PhoneNumber); ok {
		out = append(out, uc.validator.Var("phone_number", v, "max=20")...)
	}
	if in.Roles.Present() && len(in.Roles.Value) > 0 {
		out = append(out, uc.validator.Var("roles", in.Roles.Value, rolesTag)...)
	}
	if in.ClientID.Present() && in.ClientID.Value < 0 {
		out = append(out, domain.Violation{Field: "client_id", Message: "debe ser mayor o igual a 1"})
	}
	return out
}

// requireClientUnlessSuperAdmin: todo usuario que no es super admin pertenece a un cliente.
func requireClientUnlessSuperAdmin(roles []string, clientID int64) error {
	if clientID == 0 && !slices.Contains(roles, entity.RoleSuperAdmin) {
		return validation.Check([]domain.Violation{{Field: "client_id", Message: "es requerido salvo para ROLE_SUPER_ADMIN"}})
	}
	return nil
}

func requireClient(ctx context.Context, clients repository.ClientRepository, id int64) error {
	c, err := clients.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return validation.Check([]domain.Violation{{Field: "client_id", Message: "el cliente no existe"}})
	}
	return nil
}

// nonEmpty: ausente, null y "" significan "no modificar".
func nonEmpty(o dto.Optional[string]) (string, bool) {
	if !o.Present() || o.Value == "" {
		return "", false
	}
	return o.Value, true
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		UserName:    u.UserName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Roles:       u.Roles,
		ClientID:    u.ClientID,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
