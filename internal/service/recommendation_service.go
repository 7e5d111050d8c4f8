package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository"
)

const (
	recommendCacheTTL = 5 * time.Minute

	// recommendCacheAll matches every user's cached recommendations.
	recommendCacheAll = "recommend:*"
)

func recommendCachePattern(userID int64) string {
	return fmt.Sprintf("recommend:%d:*", userID)
}

func recommendCacheKey(userID int64, f models.RecommendFilter) string {
	parts := []string{"-", "-", "-", "-"}
	if f.Category != nil {
		parts[0] = strconv.Quote(*f.Category)
	}
	if f.RegionID != nil {
		parts[1] = strconv.FormatInt(*f.RegionID, 10)
	}
	if f.Year != nil {
		parts[2] = strconv.Itoa(*f.Year)
	}
	if f.MaxPrice != nil {
		parts[3] = strconv.FormatFloat(*f.MaxPrice, 'f', 2, 64)
	}
	return fmt.Sprintf("recommend:%d:%s", userID, strings.Join(parts, ":"))
}

// RecommendationService ranks catalog movies for a user from the categories
// of the movies they liked or played.
type RecommendationService struct {
	movies       repository.MovieStore
	interactions repository.InteractionStore
	cache        *Cache
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(movies repository.MovieStore, interactions repository.InteractionStore, cache *Cache) *RecommendationService {
	return &RecommendationService{movies: movies, interactions: interactions, cache: cache}
}

// Recommend returns movies for the user, best rated first.
//
// A user with no liked or played movie gets the whole catalog. Otherwise the
// candidates are the movies the user has not engaged with that share at least
// one category with an engaged movie. The filter applies in both cases, and
// the sort is stable so equal ratings keep catalog order.
func (s *RecommendationService) Recommend(ctx context.Context, userID int64, filter models.RecommendFilter) ([]models.Movie, error) {
	key := recommendCacheKey(userID, filter)
	var cached []models.Movie
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	movies, err := s.movies.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load movies: %w", err)
	}
	interactions, err := s.interactions.ListInteractionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}

	result := rankMovies(movies, interactions, filter)
	s.cache.Set(ctx, key, result, recommendCacheTTL)
	return result, nil
}

func rankMovies(movies []models.Movie, interactions []models.Interaction, filter models.RecommendFilter) []models.Movie {
	engaged := make(map[int64]bool)
	for _, i := range interactions {
		if i.Engaged() {
			engaged[i.MovieID] = true
		}
	}

	preferred := make(map[string]bool)
	for _, m := range movies {
		if engaged[m.ID] {
			for _, c := range m.Categories {
				preferred[c] = true
			}
		}
	}

	out := make([]models.Movie, 0)
	for _, m := range movies {
		if len(engaged) > 0 {
			if engaged[m.ID] || !sharesCategory(m.Categories, preferred) {
				continue
			}
		}
		if filter.Matches(&m) {
			out = append(out, m)
		}
	}

	slices.SortStableFunc(out, func(a, b models.Movie) int {
		return cmp.Compare(b.RatingValue(), a.RatingValue())
	})
	return out
}

func sharesCategory(categories []string, preferred map[string]bool) bool {
	for _, c := range categories {
		if preferred[c] {
			return true
		}
	}
	return false
}
