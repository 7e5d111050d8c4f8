package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-streaming-service/internal/models"
)

var movieCols = []string{
	"id", "title", "cover", "categories", "region_id", "year", "duration", "rating",
	"is_free", "price", "actors", "trailer_url", "play_count", "created_at", "updated_at",
}

func TestMovieRepository_GetMovie(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewMovieRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM movies WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(movieCols).AddRow(
			7, "Heat", "heat.jpg", "{Action,Crime}", int64(2), 1995, 170, 8.3,
			false, "30.00", "{Pacino,De Niro}", nil, 12, now, now,
		))

	m, err := repo.GetMovie(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Heat", m.Title)
	assert.Equal(t, []string{"Action", "Crime"}, m.Categories)
	assert.Equal(t, []string{"Pacino", "De Niro"}, m.Actors)
	require.NotNil(t, m.RegionID)
	assert.Equal(t, int64(2), *m.RegionID)
	require.NotNil(t, m.Price)
	assert.Equal(t, 30.0, *m.Price)
	assert.Empty(t, m.TrailerURL)
}

func TestMovieRepository_GetMovie_NotFound(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewMovieRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM movies WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(movieCols))

	_, err := repo.GetMovie(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMovieRepository_CreateMovie(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewMovieRepository(db)
	now := time.Now()
	price := 30.0

	mock.ExpectQuery(`INSERT INTO movies`).
		WithArgs("Heat", "", sqlmock.AnyArg(), nil, 1995, 170, nil, false, &price, sqlmock.AnyArg(), "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "play_count", "created_at", "updated_at"}).AddRow(1, 0, now, now))

	m := &models.Movie{Title: "Heat", Categories: []string{"Action"}, Year: 1995, Duration: 170, Price: &price}
	require.NoError(t, repo.CreateMovie(context.Background(), m))
	assert.Equal(t, int64(1), m.ID)
	assert.Equal(t, now, m.CreatedAt)
}

func TestMovieRepository_DeleteMovie_NotFound(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewMovieRepository(db)

	mock.ExpectExec(`DELETE FROM movies WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.DeleteMovie(context.Background(), 5), ErrNotFound)
}

func TestMovieRepository_IncrementPlayCount(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewMovieRepository(db)

	mock.ExpectExec(`UPDATE movies SET play_count = play_count \+ 1 WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.IncrementPlayCount(context.Background(), 3))
}

func TestNamedRepository_CreateDuplicate(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewNamedRepository(db, TableCategories)

	mock.ExpectQuery(`INSERT INTO categories \(name\) VALUES \(\$1\) RETURNING id`).
		WithArgs("Action").
		WillReturnError(&pqUniqueViolation)

	_, err := repo.Create(context.Background(), "Action")
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestNewNamedRepository_RejectsUnknownTable(t *testing.T) {
	assert.Panics(t, func() { NewNamedRepository(nil, "users; DROP TABLE users") })
}
