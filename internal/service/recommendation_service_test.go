package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository/memory"
)

func titles(movies []models.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

func rated(m models.Movie, rating float64) models.Movie {
	m.Rating = ptr(rating)
	return m
}

func TestRecommend_SharedCategory(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	a := seedMovie(t, store, rated(paidMovie("A", 30, "Action", "Drama"), 7))
	b := seedMovie(t, store, rated(freeMovie("B", "Action"), 9))
	seedMovie(t, store, rated(freeMovie("C", "Comedy"), 8))
	_, err := store.UpsertInteraction(ctx, 1, b.ID, models.InteractionPatch{Liked: ptr(true)})
	require.NoError(t, err)

	svc := NewRecommendationService(store, store, NewCache(nil))
	got, err := svc.Recommend(ctx, 1, models.RecommendFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
}

func TestRecommend_NoEngagementReturnsCatalog(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	seedMovie(t, store, rated(freeMovie("Low", "Drama"), 5))
	seedMovie(t, store, freeMovie("Unrated", "Drama"))
	seedMovie(t, store, rated(freeMovie("High", "Action"), 9))
	m := seedMovie(t, store, rated(freeMovie("Disliked", "Action"), 6))
	// A dislike is not engagement.
	_, err := store.UpsertInteraction(ctx, 1, m.ID, models.InteractionPatch{Liked: ptr(false)})
	require.NoError(t, err)

	svc := NewRecommendationService(store, store, NewCache(nil))
	got, err := svc.Recommend(ctx, 1, models.RecommendFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"High", "Disliked", "Low", "Unrated"}, titles(got))
}

func TestRankMovies_Filters(t *testing.T) {
	region := int64(2)
	movies := []models.Movie{
		{ID: 1, Title: "Old", Year: 1999, Categories: []string{"Action"}, Price: ptr(0.0), IsFree: true},
		{ID: 2, Title: "Combo", Year: 2020, Categories: []string{"Action Comedy"}, Price: ptr(5.0)},
		{ID: 3, Title: "Pricey", Year: 2020, Categories: []string{"Action"}, Price: ptr(50.0)},
		{ID: 4, Title: "Fit", Year: 2020, Categories: []string{"Action"}, Price: ptr(10.0), RegionID: &region},
		{ID: 5, Title: "NoPrice", Year: 2020, Categories: []string{"Action"}},
	}

	tests := []struct {
		name   string
		filter models.RecommendFilter
		want   []string
	}{
		{"none", models.RecommendFilter{}, []string{"Old", "Combo", "Pricey", "Fit", "NoPrice"}},
		{"exact category", models.RecommendFilter{Category: ptr("Action")}, []string{"Old", "Pricey", "Fit", "NoPrice"}},
		{"year", models.RecommendFilter{Year: ptr(1999)}, []string{"Old"}},
		{"region", models.RecommendFilter{RegionID: &region}, []string{"Fit"}},
		{"max price", models.RecommendFilter{MaxPrice: ptr(10.0)}, []string{"Old", "Combo", "Fit"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(rankMovies(movies, nil, tt.filter)))
		})
	}
}

func TestRankMovies_ExcludesEngaged(t *testing.T) {
	movies := []models.Movie{
		{ID: 1, Title: "Played", Categories: []string{"Drama"}},
		{ID: 2, Title: "Same", Categories: []string{"Drama", "War"}, Rating: ptr(6.0)},
		{ID: 3, Title: "Other", Categories: []string{"Horror"}, Rating: ptr(9.0)},
		{ID: 4, Title: "AlsoSame", Categories: []string{"War"}, Rating: ptr(6.0)},
	}
	interactions := []models.Interaction{{UserID: 1, MovieID: 1, PlayCount: 1}}

	got := rankMovies(movies, interactions, models.RecommendFilter{})
	assert.Equal(t, []string{"Same"}, titles(got))
}

func TestRecommendCacheKey(t *testing.T) {
	assert.Equal(t, "recommend:7:-:-:-:-", recommendCacheKey(7, models.RecommendFilter{}))
	assert.Equal(t, `recommend:7:"Sci-Fi":3:2001:9.50`, recommendCacheKey(7, models.RecommendFilter{
		Category: ptr("Sci-Fi"), RegionID: ptr(int64(3)), Year: ptr(2001), MaxPrice: ptr(9.5),
	}))
}
