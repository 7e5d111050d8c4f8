package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository/memory"
	"movie-streaming-service/internal/tmdb"
)

type fakeTMDB struct {
	pages   map[int][]tmdb.Movie
	runtime map[int]int
}

func (f *fakeTMDB) GetGenres(context.Context) ([]tmdb.Genre, error) {
	return []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 18, Name: "Drama"}}, nil
}

func (f *fakeTMDB) DiscoverMovies(_ context.Context, page int) (*tmdb.DiscoverResponse, error) {
	results, ok := f.pages[page]
	if !ok {
		return nil, errors.New("page unavailable")
	}
	return &tmdb.DiscoverResponse{Page: page, Results: results}, nil
}

func (f *fakeTMDB) GetMovieDetail(_ context.Context, id int) (*tmdb.MovieDetail, error) {
	rt, ok := f.runtime[id]
	if !ok {
		return nil, errors.New("no detail")
	}
	return &tmdb.MovieDetail{ID: id, Runtime: rt}, nil
}

func TestCreateMovie_Pricing(t *testing.T) {
	store := memory.New()
	svc := NewMovieService(store, store.Regions(), nil, NewCache(nil))
	ctx := context.Background()

	free, err := svc.CreateMovie(ctx, models.MovieRequest{Title: "Free", Year: 2020, Duration: 90, IsFree: true, Price: ptr(12.0)})
	require.NoError(t, err)
	require.NotNil(t, free.Price)
	assert.Zero(t, *free.Price)

	_, err = svc.CreateMovie(ctx, models.MovieRequest{Title: "Paid", Year: 2020, Duration: 90})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.CreateMovie(ctx, models.MovieRequest{Title: "Paid", Year: 2020, Duration: 90, Price: ptr(0.0)})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	paid, err := svc.CreateMovie(ctx, models.MovieRequest{
		Title: "Paid", Year: 2020, Duration: 90, Price: ptr(9.999),
		Categories: []string{" Action ", "Action", "Drama"},
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, *paid.Price)
	assert.Equal(t, []string{"Action", "Drama"}, paid.Categories)
}

func TestCreateMovie_Validation(t *testing.T) {
	store := memory.New()
	svc := NewMovieService(store, store.Regions(), nil, NewCache(nil))
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.MovieRequest
	}{
		{"blank title", models.MovieRequest{Title: "  ", Year: 2020, Duration: 90, IsFree: true}},
		{"zero year", models.MovieRequest{Title: "T", Duration: 90, IsFree: true}},
		{"rating too high", models.MovieRequest{Title: "T", Year: 2020, Duration: 90, IsFree: true, Rating: ptr(11.0)}},
		{"unknown region", models.MovieRequest{Title: "T", Year: 2020, Duration: 90, IsFree: true, RegionID: ptr(int64(5))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateMovie(ctx, tt.req)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestMovieCRUD(t *testing.T) {
	store := memory.New()
	svc := NewMovieService(store, store.Regions(), nil, NewCache(nil))
	ctx := context.Background()
	region, err := store.Regions().Create(ctx, "Europe")
	require.NoError(t, err)

	m, err := svc.CreateMovie(ctx, models.MovieRequest{Title: "T", Year: 2020, Duration: 90, IsFree: true, RegionID: &region.ID})
	require.NoError(t, err)

	updated, err := svc.UpdateMovie(ctx, m.ID, models.MovieRequest{Title: "T2", Year: 2021, Duration: 95, Price: ptr(3.5)})
	require.NoError(t, err)
	assert.False(t, updated.IsFree)

	got, err := svc.GetMovie(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "T2", got.Title)

	_, err = svc.UpdateMovie(ctx, 999, models.MovieRequest{Title: "X", Year: 2020, Duration: 1, IsFree: true})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.DeleteMovie(ctx, m.ID))
	assert.ErrorIs(t, svc.DeleteMovie(ctx, m.ID), ErrNotFound)

	all, err := svc.ListMovies(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImportFromTMDB(t *testing.T) {
	store := memory.New()
	src := &fakeTMDB{
		pages: map[int][]tmdb.Movie{
			1: {
				{ID: 10, Title: "Imported", ReleaseDate: "2019-06-01", GenreIDs: []int{28, 99}, VoteAverage: 7.5, PosterPath: "/p.jpg"},
				{ID: 11, Title: "No date"},
			},
		},
		runtime: map[int]int{10: 121},
	}
	svc := NewMovieService(store, store.Regions(), src, NewCache(nil))
	ctx := context.Background()

	n, err := svc.ImportFromTMDB(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// A second import updates in place.
	_, err = svc.ImportFromTMDB(ctx, 1)
	require.NoError(t, err)

	movies, err := svc.ListMovies(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	m := movies[0]
	assert.Equal(t, "Imported", m.Title)
	assert.True(t, m.IsFree)
	assert.Equal(t, 2019, m.Year)
	assert.Equal(t, 121, m.Duration)
	assert.Equal(t, []string{"Action"}, m.Categories)
	assert.Equal(t, tmdb.ImageBaseW500+"/p.jpg", m.Cover)
}

func TestImportFromTMDB_NotConfigured(t *testing.T) {
	store := memory.New()
	svc := NewMovieService(store, store.Regions(), nil, NewCache(nil))
	_, err := svc.ImportFromTMDB(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}
