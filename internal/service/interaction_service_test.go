package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository/memory"
)

func setupInteractionService(t *testing.T) (*InteractionService, *memory.Store, *models.Movie) {
	t.Helper()
	store := memory.New()
	movie := seedMovie(t, store, freeMovie("Movie", "Action"))
	return NewInteractionService(store, store, NewCache(nil)), store, movie
}

func TestUpsertInteraction_RatingRange(t *testing.T) {
	svc, _, movie := setupInteractionService(t)
	ctx := context.Background()

	_, err := svc.UpsertInteraction(ctx, 1, movie.ID, models.InteractionPatch{Rating: ptr(6)})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.UpsertInteraction(ctx, 1, movie.ID, models.InteractionPatch{Rating: ptr(0)})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	got, err := svc.GetInteraction(ctx, 1, movie.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "rejected patch must not create a row")

	saved, err := svc.UpsertInteraction(ctx, 1, movie.ID, models.InteractionPatch{Rating: ptr(3)})
	require.NoError(t, err)
	require.NotNil(t, saved.Rating)
	assert.Equal(t, 3, *saved.Rating)

	again, err := svc.UpsertInteraction(ctx, 1, movie.ID, models.InteractionPatch{})
	require.NoError(t, err)
	require.NotNil(t, again.Rating)
	assert.Equal(t, 3, *again.Rating)
	assert.Equal(t, saved.ID, again.ID)
}

func TestUpsertInteraction_MergesFields(t *testing.T) {
	svc, _, movie := setupInteractionService(t)
	ctx := context.Background()

	_, err := svc.UpsertInteraction(ctx, 1, movie.ID, models.InteractionPatch{Liked: ptr(true)})
	require.NoError(t, err)
	got, err := svc.UpsertInteraction(ctx, 1, movie.ID, models.InteractionPatch{Comment: ptr("  great film  ")})
	require.NoError(t, err)

	require.NotNil(t, got.Liked)
	assert.True(t, *got.Liked)
	require.NotNil(t, got.Comment)
	assert.Equal(t, "great film", *got.Comment)
	assert.Nil(t, got.Rating)
}

func TestUpsertInteraction_Errors(t *testing.T) {
	svc, _, movie := setupInteractionService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		movieID int64
		patch   models.InteractionPatch
		want    error
	}{
		{"blank comment", movie.ID, models.InteractionPatch{Comment: ptr("   ")}, ErrInvalidArgument},
		{"long comment", movie.ID, models.InteractionPatch{Comment: ptr(strings.Repeat("x", MaxCommentLength+1))}, ErrInvalidArgument},
		{"unknown movie", 999, models.InteractionPatch{Liked: ptr(true)}, ErrNotFound},
		{"invalid before missing movie", 999, models.InteractionPatch{Rating: ptr(9)}, ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpsertInteraction(ctx, 1, tt.movieID, tt.patch)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRecordPlay(t *testing.T) {
	svc, store, movie := setupInteractionService(t)
	ctx := context.Background()

	_, err := svc.RecordPlay(ctx, 1, movie.ID)
	require.NoError(t, err)
	got, err := svc.RecordPlay(ctx, 1, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.PlayCount)

	m, err := store.GetMovie(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, m.PlayCount)

	_, err = svc.RecordPlay(ctx, 1, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListMovieComments(t *testing.T) {
	svc, _, movie := setupInteractionService(t)
	ctx := context.Background()

	_, err := svc.UpsertInteraction(ctx, 1, movie.ID, models.InteractionPatch{Comment: ptr("first")})
	require.NoError(t, err)
	_, err = svc.UpsertInteraction(ctx, 2, movie.ID, models.InteractionPatch{Liked: ptr(true)})
	require.NoError(t, err)

	comments, err := svc.ListMovieComments(ctx, movie.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, int64(1), comments[0].UserID)
}
