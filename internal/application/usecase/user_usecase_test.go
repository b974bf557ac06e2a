package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/catalogo-api/internal/application/authz"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/application/validation"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/security"
)

type userFixture struct {
	uc      *usecase.UserUseCase
	store   *memory.Store
	clientA int64
	clientB int64
	adminA  authz.Principal
	adminB  authz.Principal
	root    authz.Principal
}

func seedUser(t *testing.T, store *memory.Store, name string, clientID int64, roles ...string) *entity.User {
	t.Helper()
	u := &entity.User{UserName: name, PasswordHash: "x", Email: name + "@example.com", Roles: roles, ClientID: clientID}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func principalOf(u *entity.User) authz.Principal {
	return authz.Principal{UserID: u.ID, UserName: u.UserName, Roles: u.Roles}
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	store := memory.NewStore()
	a := store.AddClient("Cliente A")
	b := store.AddClient("Cliente B")

	adminA := seedUser(t, store, "admin_a", a.ID, entity.RoleAdmin)
	adminB := seedUser(t, store, "admin_b", b.ID, entity.RoleAdmin)
	root := seedUser(t, store, "root", 0, entity.RoleSuperAdmin)
	seedUser(t, store, "user_a", a.ID, entity.RoleUser)
	seedUser(t, store, "user_b", b.ID, entity.RoleUser)

	uc := usecase.NewUserUseCase(store.Users(), store, validation.New(), security.NewBcryptHasher(bcrypt.MinCost), 10)
	return &userFixture{
		uc: uc, store: store,
		clientA: a.ID, clientB: b.ID,
		adminA: principalOf(adminA), adminB: principalOf(adminB), root: principalOf(root),
	}
}

func (f *userFixture) idOf(t *testing.T, name string) int64 {
	t.Helper()
	u, err := f.store.Users().GetByUserName(context.Background(), name)
	require.NoError(t, err)
	require.NotNil(t, u, name)
	return u.ID
}

func TestUserList_AdminSoloVeSuCliente(t *testing.T) {
	f := newUserFixture(t)

	out, err := f.uc.List(context.Background(), f.adminA, 1)
	require.NoError(t, err)

	require.NotNil(t, out.Page.Total)
	assert.Equal(t, 2, *out.Page.Total)
	for _, u := range out.Items {
		assert.Equal(t, f.clientA, u.ClientID, u.UserName)
	}
}

func TestUserList_SuperAdminVeTodos(t *testing.T) {
	f := newUserFixture(t)

	out, err := f.uc.List(context.Background(), f.root, 1)
	require.NoError(t, err)
	require.NotNil(t, out.Page.Total)
	assert.Equal(t, 5, *out.Page.Total)
	assert.Len(t, out.Items, 5)
}

func TestUserList_PaginaFueraDeRango(t *testing.T) {
	f := newUserFixture(t)
	_, err := f.uc.List(context.Background(), f.adminA, 3)
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
}

func TestUserGet_OtroClienteEsForbidden(t *testing.T) {
	f := newUserFixture(t)

	_, err := f.uc.GetByID(context.Background(), f.adminA, f.idOf(t, "user_b"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := f.uc.GetByID(context.Background(), f.adminA, f.idOf(t, "user_a"))
	require.NoError(t, err)
	assert.Equal(t, "user_a", got.UserName)
}

func TestUserGet_InexistenteEsNotFound(t *testing.T) {
	f := newUserFixture(t)
	_, err := f.uc.GetByID(context.Background(), f.adminA, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserGet_TokenDeUsuarioBorrado(t *testing.T) {
	f := newUserFixture(t)
	ghost := authz.Principal{UserID: 77, UserName: "fantasma", Roles: []string{entity.RoleAdmin}}
	_, err := f.uc.GetByID(context.Background(), ghost, f.idOf(t, "user_a"))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUserCreate_AdminFijaClienteYRol(t *testing.T) {
	f := newUserFixture(t)

	out, err := f.uc.Create(context.Background(), f.adminA, dto.CreateUserRequest{
		UserName: "nuevo",
		Password: "password123",
		Email:    "nuevo@example.com",
		Roles:    []string{entity.RoleSuperAdmin},
		ClientID: f.clientB,
	})
	require.NoError(t, err)
	assert.Equal(t, f.clientA, out.ClientID)
	assert.Equal(t, []string{entity.RoleUser}, out.Roles)

	stored, err := f.store.Users().GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
}

func TestUserCreate_SuperAdminSinRolesAsignaRoleUser(t *testing.T) {
	f := newUserFixture(t)

	out, err := f.uc.Create(context.Background(), f.root, dto.CreateUserRequest{
		UserName: "nuevo",
		Password: "password123",
		Email:    "nuevo@example.com",
		ClientID: f.clientB,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleUser}, out.Roles)
	assert.Equal(t, f.clientB, out.ClientID)
}

func TestUserCreate_SuperAdminClienteInexistente(t *testing.T) {
	f := newUserFixture(t)

	_, err := f.uc.Create(context.Background(), f.root, dto.CreateUserRequest{
		UserName: "nuevo",
		Password: "password123",
		Email:    "nuevo@example.com",
		ClientID: 999,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	u, err := f.store.Users().GetByUserName(context.Background(), "nuevo")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserCreate_SuperAdminSinClienteRequiereRolSuperAdmin(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, f.root, dto.CreateUserRequest{
		UserName: "huerfano", Password: "password123", Email: "h@example.com",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := f.uc.Create(ctx, f.root, dto.CreateUserRequest{
		UserName: "otro_root", Password: "password123", Email: "r@example.com",
		Roles: []string{entity.RoleSuperAdmin},
	})
	require.NoError(t, err)
	assert.Zero(t, out.ClientID)
}

func TestUserCreate_ValidacionAntesQueAutorizacion(t *testing.T) {
	f := newUserFixture(t)
	ghost := authz.Principal{UserName: "fantasma", Roles: []string{entity.RoleAdmin}}

	_, err := f.uc.Create(context.Background(), ghost, dto.CreateUserRequest{UserName: "x", Email: "no-es-email"})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "se esperaba error de validación, got %v", err)
	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "email")
}

func TestUserCreate_UsernameDuplicado(t *testing.T) {
	f := newUserFixture(t)
	_, err := f.uc.Create(context.Background(), f.adminA, dto.CreateUserRequest{
		UserName: "user_b", Password: "password123", Email: "dup@example.com",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserUpdate_SoloEmail(t *testing.T) {
	f := newUserFixture(t)
	id := f.idOf(t, "user_a")
	before, err := f.store.Users().GetByID(context.Background(), id)
	require.NoError(t, err)

	out, err := f.uc.Update(context.Background(), f.root, id, dto.UpdateUserRequest{
		Email: dto.Some("cambiado@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "cambiado@example.com", out.Email)
	assert.Equal(t, "user_a", out.UserName)
	assert.Equal(t, f.clientA, out.ClientID)
	assert.Equal(t, []string{entity.RoleUser}, out.Roles)

	after, err := f.store.Users().GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
}

func TestUserUpdate_AdminNoCambiaClienteNiRoles(t *testing.T) {
	f := newUserFixture(t)
	id := f.idOf(t, "user_a")

	out, err := f.uc.Update(context.Background(), f.adminA, id, dto.UpdateUserRequest{
		Roles:    dto.Some([]string{entity.RoleAdmin}),
		ClientID: dto.Some(f.clientB),
	})
	require.NoError(t, err)
	assert.Equal(t, f.clientA, out.ClientID)
	assert.Equal(t, []string{entity.RoleUser}, out.Roles)
}

func TestUserUpdate_OtroClienteEsForbidden(t *testing.T) {
	f := newUserFixture(t)
	id := f.idOf(t, "user_a")

	_, err := f.uc.Update(context.Background(), f.adminB, id, dto.UpdateUserRequest{Email: dto.Some("x@example.com")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	u, err := f.store.Users().GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "user_a@example.com", u.Email)
}

func TestUserUpdate_SuperAdminCambiaClienteYRoles(t *testing.T) {
	f := newUserFixture(t)
	id := f.idOf(t, "user_a")

	out, err := f.uc.Update(context.Background(), f.root, id, dto.UpdateUserRequest{
		Roles:    dto.Some([]string{entity.RoleAdmin}),
		ClientID: dto.Some(f.clientB),
	})
	require.NoError(t, err)
	assert.Equal(t, f.clientB, out.ClientID)
	assert.Equal(t, []string{entity.RoleAdmin}, out.Roles)
}

func TestUserUpdate_QuitarSuperAdminSinClienteEsInvalido(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	root2 := seedUser(t, f.store, "root2", 0, entity.RoleSuperAdmin)

	_, err := f.uc.Update(ctx, f.root, root2.ID, dto.UpdateUserRequest{
		Roles: dto.Some([]string{entity.RoleAdmin}),
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "se esperaba error de validación, got %v", err)
	assert.Equal(t, "client_id", verr.Violations[0].Field)

	stored, err := f.store.Users().GetByID(ctx, root2.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleSuperAdmin}, stored.Roles)

	out, err := f.uc.Update(ctx, f.root, root2.ID, dto.UpdateUserRequest{
		Roles:    dto.Some([]string{entity.RoleAdmin}),
		ClientID: dto.Some(f.clientA),
	})
	require.NoError(t, err)
	assert.Equal(t, f.clientA, out.ClientID)
	assert.Equal(t, []string{entity.RoleAdmin}, out.Roles)
}

func TestUserList_AdminSinClienteNoVeNada(t *testing.T) {
	f := newUserFixture(t)
	orphan := seedUser(t, f.store, "huerfano", 0, entity.RoleAdmin)

	out, err := f.uc.List(context.Background(), principalOf(orphan), 1)
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	require.NotNil(t, out.Page.Total)
	assert.Zero(t, *out.Page.Total)
}

func TestUserUpdate_PasswordSeRehashea(t *testing.T) {
	f := newUserFixture(t)
	id := f.idOf(t, "user_a")

	_, err := f.uc.Update(context.Background(), f.adminA, id, dto.UpdateUserRequest{Password: dto.Some("nuevaclave1")})
	require.NoError(t, err)

	u, err := f.store.Users().GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.NoError(t, security.NewBcryptHasher(bcrypt.MinCost).Compare(u.PasswordHash, "nuevaclave1"))
}

func TestUserUpdate_ValorInvalido(t *testing.T) {
	f := newUserFixture(t)
	_, err := f.uc.Update(context.Background(), f.adminA, 999, dto.UpdateUserRequest{
		Email: dto.Some("no-es-email"),
		Roles: dto.Some([]string{"ROLE_ROOT"}),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la validación corre antes de buscar el usuario")
}

func TestUserUpdate_InexistenteEsNotFound(t *testing.T) {
	f := newUserFixture(t)
	_, err := f.uc.Update(context.Background(), f.root, 999, dto.UpdateUserRequest{Email: dto.Some("x@example.com")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserDelete_AislamientoPorCliente(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	id := f.idOf(t, "user_a")

	assert.ErrorIs(t, f.uc.Delete(ctx, f.adminB, id), domain.ErrForbidden)
	require.NoError(t, f.uc.Delete(ctx, f.adminA, id))
	assert.ErrorIs(t, f.uc.Delete(ctx, f.adminA, id), domain.ErrNotFound)
}
