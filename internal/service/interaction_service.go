package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository"
)

// MaxCommentLength bounds interaction comments, in characters.
const MaxCommentLength = 1000

// InteractionService handles likes, ratings, comments and plays.
type InteractionService struct {
	repo   repository.InteractionStore
	movies repository.MovieStore
	cache  *Cache
}

// NewInteractionService creates a new InteractionService.
func NewInteractionService(repo repository.InteractionStore, movies repository.MovieStore, cache *Cache) *InteractionService {
	return &InteractionService{repo: repo, movies: movies, cache: cache}
}

// GetInteraction returns the user's interaction with the movie, or nil if
// there is none.
func (s *InteractionService) GetInteraction(ctx context.Context, userID, movieID int64) (*models.Interaction, error) {
	i, err := s.repo.GetInteraction(ctx, userID, movieID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get interaction: %w", err)
	}
	return i, nil
}

// UpsertInteraction validates every set field, then creates the row if
// needed and applies the set fields. Unset fields keep their stored value.
func (s *InteractionService) UpsertInteraction(ctx context.Context, userID, movieID int64, patch models.InteractionPatch) (*models.Interaction, error) {
	if patch.Rating != nil && (*patch.Rating < 1 || *patch.Rating > 5) {
		return nil, invalidArgument("rating must be between 1 and 5")
	}
	if patch.Comment != nil {
		trimmed := strings.TrimSpace(*patch.Comment)
		if trimmed == "" {
			return nil, invalidArgument("comment must not be empty")
		}
		if utf8.RuneCountInString(trimmed) > MaxCommentLength {
			return nil, invalidArgument("comment must be at most %d characters", MaxCommentLength)
		}
		patch.Comment = &trimmed
	}

	if err := s.requireMovie(ctx, movieID); err != nil {
		return nil, err
	}

	i, err := s.repo.UpsertInteraction(ctx, userID, movieID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to save interaction: %w", err)
	}
	if !patch.Empty() {
		s.cache.DeletePattern(ctx, recommendCachePattern(userID))
	}
	return i, nil
}

// RecordPlay counts one play on both the user's interaction and the movie.
func (s *InteractionService) RecordPlay(ctx context.Context, userID, movieID int64) (*models.Interaction, error) {
	if err := s.requireMovie(ctx, movieID); err != nil {
		return nil, err
	}

	i, err := s.repo.IncrementInteractionPlay(ctx, userID, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to record play: %w", err)
	}
	if err := s.movies.IncrementPlayCount(ctx, movieID); err != nil {
		return nil, storeErr(err, fmt.Sprintf("movie %d", movieID))
	}

	s.cache.Delete(ctx, movieDetailCacheKey(movieID), movieListCacheKey)
	s.cache.DeletePattern(ctx, recommendCachePattern(userID))
	return i, nil
}

// ListMovieComments returns the interactions that carry a comment, newest first.
func (s *InteractionService) ListMovieComments(ctx context.Context, movieID int64) ([]models.Interaction, error) {
	if err := s.requireMovie(ctx, movieID); err != nil {
		return nil, err
	}

	all, err := s.repo.ListInteractionsByMovie(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	out := make([]models.Interaction, 0, len(all))
	for _, i := range all {
		if i.Comment != nil {
			out = append(out, i)
		}
	}
	return out, nil
}

func (s *InteractionService) requireMovie(ctx context.Context, movieID int64) error {
	_, err := s.movies.GetMovie(ctx, movieID)
	return storeErr(err, fmt.Sprintf("movie %d", movieID))
}
