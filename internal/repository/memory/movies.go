package memory

import (
	"context"
	"slices"
	"time"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository"
)

func cloneMovie(m *models.Movie) *models.Movie {
	c := *m
	c.Categories = slices.Clone(m.Categories)
	c.Actors = slices.Clone(m.Actors)
	c.RegionID = ptrCopy(m.RegionID)
	c.Rating = ptrCopy(m.Rating)
	c.Price = ptrCopy(m.Price)
	if c.Categories == nil {
		c.Categories = []string{}
	}
	if c.Actors == nil {
		c.Actors = []string{}
	}
	return &c
}

func movieID(m *models.Movie) int64 { return m.ID }

// ListMovies returns every movie ordered by id.
func (s *Store) ListMovies(_ context.Context) ([]models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.movies, movieID, cloneMovie), nil
}

// GetMovie returns a movie by id.
func (s *Store) GetMovie(_ context.Context, id int64) (*models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.movies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneMovie(m), nil
}

// CreateMovie stores a new movie.
func (s *Store) CreateMovie(_ context.Context, m *models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	m.ID = s.id()
	m.PlayCount = 0
	m.CreatedAt, m.UpdatedAt = now, now
	s.movies[m.ID] = cloneMovie(m)
	return nil
}

// UpdateMovie replaces the editable fields of a movie.
func (s *Store) UpdateMovie(_ context.Context, m *models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.movies[m.ID]
	if !ok {
		return repository.ErrNotFound
	}
	m.PlayCount = old.PlayCount
	m.CreatedAt = old.CreatedAt
	m.UpdatedAt = time.Now()
	s.movies[m.ID] = cloneMovie(m)
	return nil
}

// DeleteMovie removes a movie.
func (s *Store) DeleteMovie(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movies[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.movies, id)
	for tmdbID, movieID := range s.tmdbIDs {
		if movieID == id {
			delete(s.tmdbIDs, tmdbID)
		}
	}
	return nil
}

// UpsertTMDBMovie inserts or refreshes a movie keyed by its TMDB id.
func (s *Store) UpsertTMDBMovie(_ context.Context, tmdbID int, m *models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if id, ok := s.tmdbIDs[tmdbID]; ok {
		if old, ok := s.movies[id]; ok {
			old.Title = m.Title
			old.Cover = m.Cover
			old.Categories = slices.Clone(m.Categories)
			old.Year = m.Year
			old.Rating = ptrCopy(m.Rating)
			old.UpdatedAt = now
			*m = *cloneMovie(old)
			return nil
		}
	}
	m.ID = s.id()
	m.CreatedAt, m.UpdatedAt = now, now
	s.movies[m.ID] = cloneMovie(m)
	s.tmdbIDs[tmdbID] = m.ID
	return nil
}

// IncrementPlayCount bumps the catalog-wide play counter.
func (s *Store) IncrementPlayCount(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movies[id]
	if !ok {
		return repository.ErrNotFound
	}
	m.PlayCount++
	return nil
}
