package memory

import (
	"context"
	"slices"
	"time"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository"
)

func cloneCollection(c *models.Collection) *models.Collection {
	out := *c
	out.MovieIDs = slices.Clone(c.MovieIDs)
	if out.MovieIDs == nil {
		out.MovieIDs = []int64{}
	}
	return &out
}

// ListCollectionsByUser returns a user's collections in creation order.
func (s *Store) ListCollectionsByUser(_ context.Context, userID int64) ([]models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Collection, 0)
	for _, c := range sortedByID(s.collections, func(c *models.Collection) int64 { return c.ID }, cloneCollection) {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

// GetCollection returns a collection by id.
func (s *Store) GetCollection(_ context.Context, id int64) (*models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneCollection(c), nil
}

// CreateCollection stores a new collection.
func (s *Store) CreateCollection(_ context.Context, c *models.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.id()
	c.CreatedAt = time.Now()
	s.collections[c.ID] = cloneCollection(c)
	return nil
}

// UpdateCollection replaces the name and movie list.
func (s *Store) UpdateCollection(_ context.Context, c *models.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.collections[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	old.Name = c.Name
	old.MovieIDs = slices.Clone(c.MovieIDs)
	return nil
}

// DeleteCollection removes a collection.
func (s *Store) DeleteCollection(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.collections, id)
	return nil
}
