package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository"
)

// CollectionService manages user movie collections.
type CollectionService struct {
	repo   repository.CollectionStore
	movies repository.MovieStore
}

// NewCollectionService creates a new CollectionService.
func NewCollectionService(repo repository.CollectionStore, movies repository.MovieStore) *CollectionService {
	return &CollectionService{repo: repo, movies: movies}
}

// ListByUser returns a user's collections.
func (s *CollectionService) ListByUser(ctx context.Context, userID int64) ([]models.Collection, error) {
	items, err := s.repo.ListCollectionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return items, nil
}

// Get returns a collection the caller may see.
func (s *CollectionService) Get(ctx context.Context, caller Caller, id int64) (*models.Collection, error) {
	c, err := s.repo.GetCollection(ctx, id)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("collection %d", id))
	}
	if err := caller.Authorize(c.UserID); err != nil {
		return nil, err
	}
	return c, nil
}

// ListMovies returns the movies of a collection in stored order. Movies
// deleted from the catalog are skipped.
func (s *CollectionService) ListMovies(ctx context.Context, caller Caller, id int64) ([]models.Movie, error) {
	c, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	out := make([]models.Movie, 0, len(c.MovieIDs))
	for _, movieID := range c.MovieIDs {
		m, err := s.movies.GetMovie(ctx, movieID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load movie %d: %w", movieID, err)
		}
		out = append(out, *m)
	}
	return out, nil
}

// Create adds a collection.
func (s *CollectionService) Create(ctx context.Context, req models.CreateCollectionRequest) (*models.Collection, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(&req); err != nil {
		return nil, err
	}
	c := &models.Collection{UserID: req.UserID, Name: req.Name, MovieIDs: uniqueIDs(req.MovieIDs)}
	if err := s.repo.CreateCollection(ctx, c); err != nil {
		return nil, storeErr(err, "collection")
	}
	return c, nil
}

// Update renames a collection and/or replaces its movie list.
func (s *CollectionService) Update(ctx context.Context, caller Caller, id int64, req models.UpdateCollectionRequest) (*models.Collection, error) {
	c, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalidArgument("name must not be empty")
		}
		c.Name = name
	}
	if req.MovieIDs != nil {
		c.MovieIDs = uniqueIDs(*req.MovieIDs)
	}
	return s.save(ctx, c)
}

// Delete removes a collection.
func (s *CollectionService) Delete(ctx context.Context, caller Caller, id int64) error {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return err
	}
	return storeErr(s.repo.DeleteCollection(ctx, id), fmt.Sprintf("collection %d", id))
}

// AddMovie appends a catalog movie to a collection.
func (s *CollectionService) AddMovie(ctx context.Context, caller Caller, id, movieID int64) (*models.Collection, error) {
	c, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.movies.GetMovie(ctx, movieID); err != nil {
		return nil, storeErr(err, fmt.Sprintf("movie %d", movieID))
	}
	if c.Contains(movieID) {
		return nil, conflict("movie %d is already in collection %d", movieID, id)
	}
	c.MovieIDs = append(c.MovieIDs, movieID)
	return s.save(ctx, c)
}

// RemoveMovie drops a movie from a collection.
func (s *CollectionService) RemoveMovie(ctx context.Context, caller Caller, id, movieID int64) (*models.Collection, error) {
	c, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	idx := slices.Index(c.MovieIDs, movieID)
	if idx < 0 {
		return nil, invalidArgument("movie %d is not in collection %d", movieID, id)
	}
	c.MovieIDs = slices.Delete(c.MovieIDs, idx, idx+1)
	return s.save(ctx, c)
}

// Check reports whether the movie is in any of the user's collections.
func (s *CollectionService) Check(ctx context.Context, userID, movieID int64) (bool, error) {
	items, err := s.ListByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, c := range items {
		if c.Contains(movieID) {
			return true, nil
		}
	}
	return false, nil
}

// save persists c and returns it, or nil when the write fails.
func (s *CollectionService) save(ctx context.Context, c *models.Collection) (*models.Collection, error) {
	if err := s.repo.UpdateCollection(ctx, c); err != nil {
		return nil, storeErr(err, fmt.Sprintf("collection %d", c.ID))
	}
	return c, nil
}

func uniqueIDs(in []int64) []int64 {
	out := make([]int64, 0, len(in))
	for _, id := range in {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
