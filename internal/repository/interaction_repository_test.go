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

var interactionCols = []string{"id", "user_id", "movie_id", "liked", "rating", "comment", "play_count", "created_at", "updated_at"}

func TestInteractionRepository_UpsertKeepsUnsetFields(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewInteractionRepository(db)
	now := time.Now()
	rating := 4

	mock.ExpectQuery(`INSERT INTO movie_interactions (.+) ON CONFLICT \(user_id, movie_id\) DO UPDATE SET\s+liked = COALESCE`).
		WithArgs(int64(1), int64(2), nil, &rating, nil).
		WillReturnRows(sqlmock.NewRows(interactionCols).AddRow(5, 1, 2, true, 4, "great", 3, now, now))

	i, err := repo.UpsertInteraction(context.Background(), 1, 2, models.InteractionPatch{Rating: &rating})
	require.NoError(t, err)
	require.NotNil(t, i.Liked)
	assert.True(t, *i.Liked)
	assert.Equal(t, 4, *i.Rating)
	assert.Equal(t, "great", *i.Comment)
	assert.Equal(t, 3, i.PlayCount)
}

func TestInteractionRepository_GetInteraction_NotFound(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewInteractionRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM movie_interactions`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows(interactionCols))

	_, err := repo.GetInteraction(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInteractionRepository_ListByUser_NullableColumns(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewInteractionRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM movie_interactions WHERE user_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(interactionCols).
			AddRow(1, 1, 2, nil, nil, nil, 1, now, now).
			AddRow(2, 1, 3, false, 2, nil, 0, now, now))

	items, err := repo.ListInteractionsByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Nil(t, items[0].Liked)
	assert.True(t, items[0].Engaged())
	assert.False(t, items[1].Engaged())
}
