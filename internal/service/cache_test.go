package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository/memory"
	"movie-streaming-service/internal/tmdb"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCache(rdb), mr
}

func TestCache_GetSetDelete(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	var got []int
	assert.False(t, cache.Get(ctx, "nums", &got))

	cache.Set(ctx, "nums", []int{1, 2, 3}, time.Minute)
	require.True(t, cache.Get(ctx, "nums", &got))
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, time.Minute, mr.TTL("nums"))

	mr.FastForward(2 * time.Minute)
	assert.False(t, cache.Get(ctx, "nums", &got))

	cache.Set(ctx, "a", 1, time.Minute)
	cache.Set(ctx, "b", 2, time.Minute)
	cache.Delete(ctx, "a", "b")
	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
}

func TestCache_UndecodableEntryMisses(t *testing.T) {
	cache, mr := newTestCache(t)
	require.NoError(t, mr.Set("movie:detail:1", "not json"))

	var m models.Movie
	assert.False(t, cache.Get(context.Background(), "movie:detail:1", &m))
}

func TestCache_DeletePattern(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	for _, k := range []string{"recommend:1:a", "recommend:1:b", "recommend:2:a", "movies:list"} {
		cache.Set(ctx, k, true, time.Minute)
	}

	cache.DeletePattern(ctx, recommendCachePattern(1))
	assert.ElementsMatch(t, []string{"movies:list", "recommend:2:a"}, mr.Keys())

	cache.DeletePattern(ctx, recommendCacheAll)
	assert.Equal(t, []string{"movies:list"}, mr.Keys())
}

func TestMovieService_ServesFromCache(t *testing.T) {
	cache, mr := newTestCache(t)
	store := memory.New()
	svc := NewMovieService(store, store.Regions(), nil, cache)
	ctx := context.Background()
	a := seedMovie(t, store, freeMovie("A"))

	list, err := svc.ListMovies(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	got, err := svc.GetMovie(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
	assert.True(t, mr.Exists(movieListCacheKey))
	assert.True(t, mr.Exists(movieDetailCacheKey(a.ID)))

	// Writes that bypass the service are invisible until the entries go.
	seedMovie(t, store, freeMovie("B"))
	a.Title = "A2"
	require.NoError(t, store.UpdateMovie(ctx, a))

	list, err = svc.ListMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	got, err = svc.GetMovie(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)

	_, err = svc.CreateMovie(ctx, models.MovieRequest{Title: "C", Year: 2021, Duration: 90, IsFree: true})
	require.NoError(t, err)
	assert.False(t, mr.Exists(movieListCacheKey))

	list, err = svc.ListMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestRecommend_CachedUntilInteraction(t *testing.T) {
	cache, mr := newTestCache(t)
	store := memory.New()
	recs := NewRecommendationService(store, store, cache)
	interactions := NewInteractionService(store, store, cache)
	ctx := context.Background()
	a := seedMovie(t, store, freeMovie("A", "Action"))

	first, err := recs.Recommend(ctx, 7, models.RecommendFilter{})
	require.NoError(t, err)
	require.Len(t, first, 1)
	key := recommendCacheKey(7, models.RecommendFilter{})
	assert.True(t, mr.Exists(key))

	seedMovie(t, store, freeMovie("B", "Drama"))
	cached, err := recs.Recommend(ctx, 7, models.RecommendFilter{})
	require.NoError(t, err)
	assert.Equal(t, titles(first), titles(cached))

	// Another user's interaction leaves user 7's entry alone.
	_, err = interactions.UpsertInteraction(ctx, 8, a.ID, models.InteractionPatch{Liked: ptr(true)})
	require.NoError(t, err)
	assert.True(t, mr.Exists(key))

	_, err = interactions.UpsertInteraction(ctx, 7, a.ID, models.InteractionPatch{Liked: ptr(true)})
	require.NoError(t, err)
	assert.False(t, mr.Exists(key))

	_, err = recs.Recommend(ctx, 7, models.RecommendFilter{})
	require.NoError(t, err)
	require.True(t, mr.Exists(key))
	_, err = interactions.RecordPlay(ctx, 7, a.ID)
	require.NoError(t, err)
	assert.False(t, mr.Exists(key))
	assert.False(t, mr.Exists(movieDetailCacheKey(a.ID)))
}

func TestRecommend_InvalidatedByCatalogChanges(t *testing.T) {
	cache, mr := newTestCache(t)
	store := memory.New()
	recs := NewRecommendationService(store, store, cache)
	movies := NewMovieService(store, store.Regions(), &fakeTMDB{
		pages: map[int][]tmdb.Movie{1: {{ID: 10, Title: "Imported", ReleaseDate: "2019-06-01", GenreIDs: []int{28}}}},
	}, cache)
	ctx := context.Background()
	a := seedMovie(t, store, paidMovie("A", 10, "Action"))

	got, err := recs.Recommend(ctx, 7, models.RecommendFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{"A"}, titles(got))

	require.NoError(t, movies.DeleteMovie(ctx, a.ID))
	got, err = recs.Recommend(ctx, 7, models.RecommendFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)

	created, err := movies.CreateMovie(ctx, models.MovieRequest{Title: "B", Year: 2020, Duration: 90, Price: ptr(5.0)})
	require.NoError(t, err)
	got, err = recs.Recommend(ctx, 7, models.RecommendFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{"B"}, titles(got))

	_, err = movies.UpdateMovie(ctx, created.ID, models.MovieRequest{Title: "B", Year: 2020, Duration: 90, Price: ptr(8.0)})
	require.NoError(t, err)
	got, err = recs.Recommend(ctx, 7, models.RecommendFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 8.0, got[0].PriceValue())

	_, err = movies.ImportFromTMDB(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, mr.Keys())
	got, err = recs.Recommend(ctx, 7, models.RecommendFilter{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"B", "Imported"}, titles(got))
}
