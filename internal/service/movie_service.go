package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository"
	"movie-streaming-service/internal/tmdb"
)

const (
	movieListCacheTTL   = 5 * time.Minute
	movieDetailCacheTTL = 30 * time.Minute

	movieListCacheKey = "movies:list"
)

func movieDetailCacheKey(id int64) string {
	return fmt.Sprintf("movie:detail:%d", id)
}

// TMDBSource is the subset of the TMDB client used by the catalog import.
type TMDBSource interface {
	GetGenres(ctx context.Context) ([]tmdb.Genre, error)
	DiscoverMovies(ctx context.Context, page int) (*tmdb.DiscoverResponse, error)
	GetMovieDetail(ctx context.Context, tmdbID int) (*tmdb.MovieDetail, error)
}

// MovieService handles business logic for the movie catalog.
type MovieService struct {
	repo    repository.MovieStore
	regions repository.NamedStore
	tmdb    TMDBSource
	cache   *Cache
}

// NewMovieService creates a new MovieService. src may be nil when no TMDB key
// is configured.
func NewMovieService(repo repository.MovieStore, regions repository.NamedStore, src TMDBSource, cache *Cache) *MovieService {
	return &MovieService{repo: repo, regions: regions, tmdb: src, cache: cache}
}

// ListMovies returns the whole catalog.
func (s *MovieService) ListMovies(ctx context.Context) ([]models.Movie, error) {
	var cached []models.Movie
	if s.cache.Get(ctx, movieListCacheKey, &cached) {
		return cached, nil
	}

	movies, err := s.repo.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	s.cache.Set(ctx, movieListCacheKey, movies, movieListCacheTTL)
	return movies, nil
}

// GetMovie returns one movie.
func (s *MovieService) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	key := movieDetailCacheKey(id)
	var cached models.Movie
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	m, err := s.repo.GetMovie(ctx, id)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("movie %d", id))
	}

	s.cache.Set(ctx, key, m, movieDetailCacheTTL)
	return m, nil
}

// CreateMovie validates and stores a new movie.
func (s *MovieService) CreateMovie(ctx context.Context, req models.MovieRequest) (*models.Movie, error) {
	m, err := s.buildMovie(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateMovie(ctx, m); err != nil {
		return nil, storeErr(err, "movie")
	}
	s.invalidate(ctx, 0)
	slog.Info("movie created", "movie_id", m.ID, "title", m.Title)
	return m, nil
}

// UpdateMovie validates and replaces a movie.
func (s *MovieService) UpdateMovie(ctx context.Context, id int64, req models.MovieRequest) (*models.Movie, error) {
	m, err := s.buildMovie(ctx, req)
	if err != nil {
		return nil, err
	}
	m.ID = id
	if err := s.repo.UpdateMovie(ctx, m); err != nil {
		return nil, storeErr(err, fmt.Sprintf("movie %d", id))
	}
	s.invalidate(ctx, id)
	return m, nil
}

// DeleteMovie removes a movie.
func (s *MovieService) DeleteMovie(ctx context.Context, id int64) error {
	if err := s.repo.DeleteMovie(ctx, id); err != nil {
		return storeErr(err, fmt.Sprintf("movie %d", id))
	}
	s.invalidate(ctx, id)
	slog.Info("movie deleted", "movie_id", id)
	return nil
}

// buildMovie applies the pricing rules: free movies are stored with price 0
// and paid movies need a positive price.
func (s *MovieService) buildMovie(ctx context.Context, req models.MovieRequest) (*models.Movie, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validate(&req); err != nil {
		return nil, err
	}

	m := &models.Movie{
		Title:      req.Title,
		Cover:      strings.TrimSpace(req.Cover),
		Categories: cleanTags(req.Categories),
		RegionID:   req.RegionID,
		Year:       req.Year,
		Duration:   req.Duration,
		Rating:     req.Rating,
		IsFree:     req.IsFree,
		Actors:     cleanTags(req.Actors),
		TrailerURL: strings.TrimSpace(req.TrailerURL),
	}

	if req.IsFree {
		zero := 0.0
		m.Price = &zero
	} else {
		if req.Price == nil || *req.Price <= 0 {
			return nil, invalidArgument("price must be greater than 0 for a paid movie")
		}
		price := roundCents(*req.Price)
		m.Price = &price
	}

	if m.RegionID != nil {
		if _, err := s.regions.Get(ctx, *m.RegionID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, invalidArgument("region %d does not exist", *m.RegionID)
			}
			return nil, fmt.Errorf("failed to check region: %w", err)
		}
	}
	return m, nil
}

// invalidate drops the cached catalog and, for id != 0, that movie's detail.
// Cached recommendations embed movie rows, so they go too.
func (s *MovieService) invalidate(ctx context.Context, id int64) {
	s.cache.Delete(ctx, movieListCacheKey)
	if id != 0 {
		s.cache.Delete(ctx, movieDetailCacheKey(id))
	}
	s.cache.DeletePattern(ctx, recommendCacheAll)
}

// ImportFromTMDB pulls popular titles from TMDB and upserts them as free
// movies. It returns the number of movies stored.
func (s *MovieService) ImportFromTMDB(ctx context.Context, pages int) (int, error) {
	if s.tmdb == nil {
		return 0, invalidState("TMDB import is not configured")
	}
	slog.Info("starting TMDB import", "pages", pages)

	genres, err := s.tmdb.GetGenres(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch TMDB genres: %w", err)
	}
	genreNames := make(map[int]string, len(genres))
	for _, g := range genres {
		genreNames[g.ID] = g.Name
	}

	total := 0
	for page := 1; page <= pages; page++ {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		result, err := s.tmdb.DiscoverMovies(ctx, page)
		if err != nil {
			slog.Error("failed to fetch TMDB page", "page", page, "error", err)
			continue
		}

		for _, tm := range result.Results {
			m, ok := s.fromTMDB(ctx, tm, genreNames)
			if !ok {
				continue
			}
			if err := s.repo.UpsertTMDBMovie(ctx, tm.ID, m); err != nil {
				slog.Error("failed to upsert movie", "title", tm.Title, "error", err)
				continue
			}
			total++
		}
		slog.Info("imported page", "page", page, "movies", len(result.Results))
	}

	s.cache.DeletePattern(ctx, "movies:*")
	s.cache.DeletePattern(ctx, "movie:*")
	s.cache.DeletePattern(ctx, recommendCacheAll)

	slog.Info("TMDB import completed", "total_imported", total)
	return total, nil
}

func (s *MovieService) fromTMDB(ctx context.Context, tm tmdb.Movie, genreNames map[int]string) (*models.Movie, bool) {
	released, err := time.Parse("2006-01-02", tm.ReleaseDate)
	if err != nil || strings.TrimSpace(tm.Title) == "" {
		slog.Debug("skipping TMDB movie without title or release date", "tmdb_id", tm.ID)
		return nil, false
	}

	categories := make([]string, 0, len(tm.GenreIDs))
	for _, id := range tm.GenreIDs {
		if name, ok := genreNames[id]; ok {
			categories = append(categories, name)
		}
	}

	zero := 0.0
	rating := tm.VoteAverage
	m := &models.Movie{
		Title:      tm.Title,
		Categories: categories,
		Year:       released.Year(),
		Rating:     &rating,
		IsFree:     true,
		Price:      &zero,
		Actors:     []string{},
	}
	if tm.PosterPath != "" {
		m.Cover = tmdb.ImageBaseW500 + tm.PosterPath
	}

	detail, err := s.tmdb.GetMovieDetail(ctx, tm.ID)
	if err != nil {
		slog.Warn("failed to fetch movie runtime", "tmdb_id", tm.ID, "error", err)
	} else {
		m.Duration = detail.Runtime
	}
	return m, true
}

// cleanTags trims entries and drops blanks and repeats, keeping order.
func cleanTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
