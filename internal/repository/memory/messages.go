package memory

import (
	"context"
	"slices"
	"time"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository"
)

func cloneMessage(m *models.Message) *models.Message {
	c := *m
	return &c
}

// CreateMessage stores a new message.
func (s *Store) CreateMessage(_ context.Context, m *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	m.ID = s.id()
	m.CreatedAt, m.UpdatedAt = now, now
	s.messages[m.ID] = cloneMessage(m)
	return nil
}

// GetMessage returns a message by id.
func (s *Store) GetMessage(_ context.Context, id int64) (*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneMessage(m), nil
}

// ListMessagesByUser returns a user's messages, newest first.
func (s *Store) ListMessagesByUser(_ context.Context, userID int64) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Message, 0)
	for _, m := range s.newestMessagesFirst() {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

// ListMessages returns every message, newest first.
func (s *Store) ListMessages(_ context.Context) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newestMessagesFirst(), nil
}

// UpdateMessageStatus sets a message's status.
func (s *Store) UpdateMessageStatus(_ context.Context, id int64, status models.MessageStatus) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	m.Status = status
	m.UpdatedAt = time.Now()
	return cloneMessage(m), nil
}

// DeleteMessage removes a message.
func (s *Store) DeleteMessage(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.messages[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.messages, id)
	return nil
}

func (s *Store) newestMessagesFirst() []models.Message {
	out := sortedByID(s.messages, func(m *models.Message) int64 { return m.ID }, cloneMessage)
	slices.Reverse(out)
	return out
}
