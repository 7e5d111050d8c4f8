package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository"
)

// MessageService handles user feedback.
type MessageService struct {
	repo repository.MessageStore
}

// NewMessageService creates a new MessageService.
func NewMessageService(repo repository.MessageStore) *MessageService {
	return &MessageService{repo: repo}
}

// Create stores a new PENDING message.
func (s *MessageService) Create(ctx context.Context, req models.CreateMessageRequest) (*models.Message, error) {
	req.Type = strings.TrimSpace(req.Type)
	if err := validate(&req); err != nil {
		return nil, err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, invalidArgument("content must not be empty")
	}
	if utf8.RuneCountInString(content) > models.MaxMessageLength {
		return nil, invalidArgument("content must be at most %d characters", models.MaxMessageLength)
	}

	m := &models.Message{UserID: req.UserID, Type: req.Type, Content: content, Status: models.MessagePending}
	if err := s.repo.CreateMessage(ctx, m); err != nil {
		return nil, storeErr(err, "message")
	}
	slog.Info("message received", "message_id", m.ID, "user_id", m.UserID, "type", m.Type)
	return m, nil
}

// ListByUser returns a user's messages, newest first.
func (s *MessageService) ListByUser(ctx context.Context, userID int64) ([]models.Message, error) {
	items, err := s.repo.ListMessagesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return items, nil
}

// ListAll returns every message, newest first.
func (s *MessageService) ListAll(ctx context.Context) ([]models.Message, error) {
	items, err := s.repo.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return items, nil
}

// UpdateStatus moves a message to another status.
func (s *MessageService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Message, error) {
	st := models.MessageStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !st.Valid() {
		return nil, invalidArgument("unknown message status %q", status)
	}
	m, err := s.repo.UpdateMessageStatus(ctx, id, st)
	return m, storeErr(err, fmt.Sprintf("message %d", id))
}

// Delete removes a message.
func (s *MessageService) Delete(ctx context.Context, id int64) error {
	return storeErr(s.repo.DeleteMessage(ctx, id), fmt.Sprintf("message %d", id))
}
