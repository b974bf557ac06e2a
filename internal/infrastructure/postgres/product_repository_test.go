package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var productCols = []string{"id", "name", "brand", "description", "price", "created_at", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestProductRepo_CreateAsignaID(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)
	now := time.Now()
	p := &entity.Product{Name: "X", Price: decimal.RequireFromString("9.99"), CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs("X", "", "", p.Price, now, now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, int64(7), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_GetByID(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow(int64(3), "Lumia", "Nokia", "", decimal.RequireFromString("120.00"), now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Nokia", got.Brand)
	assert.True(t, decimal.NewFromInt(120).Equal(got.Price))

	missing, err := repo.GetByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_UpdateSinFilasEsNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET")).
		WithArgs(int64(9), "X", "", "", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &entity.Product{ID: 9, Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_Delete(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnError(errors.New("conexión cerrada"))

	require.NoError(t, repo.Delete(context.Background(), 2))
	err := repo.Delete(context.Background(), 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete product")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_CountYListConFiltro(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)
	ctx := context.Background()
	now := time.Now()
	filter := repository.Filter{repository.FilterBrand: "Nokia"}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM products WHERE brand = $1")).
		WithArgs("Nokia").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE brand = $1 ORDER BY id LIMIT $2 OFFSET $3")).
		WithArgs("Nokia", 10, 0).
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow(int64(1), "3310", "Nokia", "", decimal.Zero, now, now).
			AddRow(int64(5), "Lumia", "Nokia", "", decimal.Zero, now, now))

	n, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err := repo.List(ctx, filter, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(5), list[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_FiltroDesconocido(t *testing.T) {
	mock := newMock(t)
	repo := NewProductRepository(mock)

	_, err := repo.Count(context.Background(), repository.Filter{repository.FilterClientID: int64(1)})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet(), "no debe llegar a la base de datos")
}
