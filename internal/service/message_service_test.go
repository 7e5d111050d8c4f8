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

func TestMessages(t *testing.T) {
	svc := NewMessageService(memory.New())
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.CreateMessageRequest
	}{
		{"bad type", models.CreateMessageRequest{UserID: 1, Type: "spam", Content: "hi"}},
		{"blank content", models.CreateMessageRequest{UserID: 1, Type: "other", Content: " \n "}},
		{"too long", models.CreateMessageRequest{UserID: 1, Type: "other", Content: strings.Repeat("é", models.MaxMessageLength+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}

	// Length is counted in characters, not bytes.
	first, err := svc.Create(ctx, models.CreateMessageRequest{UserID: 1, Type: "content", Content: strings.Repeat("é", models.MaxMessageLength)})
	require.NoError(t, err)
	assert.Equal(t, models.MessagePending, first.Status)

	second, err := svc.Create(ctx, models.CreateMessageRequest{UserID: 1, Type: "suggestion", Content: "  more films  "})
	require.NoError(t, err)
	assert.Equal(t, "more films", second.Content)

	mine, err := svc.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)

	updated, err := svc.UpdateStatus(ctx, first.ID, "processed")
	require.NoError(t, err)
	assert.Equal(t, models.MessageProcessed, updated.Status)

	_, err = svc.UpdateStatus(ctx, first.ID, "DONE")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.UpdateStatus(ctx, 999, "CLOSED")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, first.ID))
	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
