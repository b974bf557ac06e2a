package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var userCols = []string{"id", "username", "password_hash", "email", "phone_number", "roles", "client_id", "created_at", "updated_at"}

func TestUserRepo_CreateSinClienteGuardaNull(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	u := &entity.User{UserName: "root", PasswordHash: "h", Email: "r@example.com", Roles: []string{entity.RoleSuperAdmin}}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("root", "h", "r@example.com", "", []string{entity.RoleSuperAdmin}, nil, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, int64(1), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_CreateUsernameDuplicado(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &entity.User{UserName: "ana", ClientID: 5})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserRepo_GetByUserName(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("ana").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(int64(2), "ana", "h", "ana@example.com", "", []string{entity.RoleAdmin}, int64(5), now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("nadie").
		WillReturnError(pgx.ErrNoRows)

	u, err := repo.GetByUserName(context.Background(), "ana")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, int64(5), u.ClientID)
	assert.Equal(t, []string{entity.RoleAdmin}, u.Roles)

	none, err := repo.GetByUserName(context.Background(), "nadie")
	require.NoError(t, err)
	assert.Nil(t, none)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_ListPorCliente(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE client_id = $1 ORDER BY id LIMIT $2 OFFSET $3")).
		WithArgs(int64(5), 10, 10).
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(int64(11), "u11", "h", "u11@example.com", "", []string{entity.RoleUser}, int64(5), now, now))

	list, err := repo.List(context.Background(), repository.Filter{repository.FilterClientID: int64(5)}, 10, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "u11", list[0].UserName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_UpdateYDelete(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	ctx := context.Background()
	u := &entity.User{ID: 3, UserName: "ana", PasswordHash: "h", Email: "a@example.com", Roles: []string{entity.RoleUser}, ClientID: 5}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET")).
		WithArgs(int64(3), "ana", "h", "a@example.com", "", []string{entity.RoleUser}, int64(5), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.Update(ctx, u))
	assert.ErrorIs(t, repo.Delete(ctx, 3), domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
