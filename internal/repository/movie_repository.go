package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"movie-streaming-service/internal/models"
)

const movieColumns = `id, title, cover, categories, region_id, year, duration, rating,
	is_free, price, actors, trailer_url, play_count, created_at, updated_at`

// MovieRepository handles database operations for movies.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new MovieRepository.
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (*models.Movie, error) {
	var m models.Movie
	var cover, trailer sql.NullString
	if err := row.Scan(
		&m.ID, &m.Title, &cover, pq.Array(&m.Categories), &m.RegionID,
		&m.Year, &m.Duration, &m.Rating, &m.IsFree, &m.Price,
		pq.Array(&m.Actors), &trailer, &m.PlayCount, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	m.Cover = cover.String
	m.TrailerURL = trailer.String
	if m.Categories == nil {
		m.Categories = []string{}
	}
	if m.Actors == nil {
		m.Actors = []string{}
	}
	return &m, nil
}

// ListMovies returns every movie ordered by id.
func (r *MovieRepository) ListMovies(ctx context.Context) ([]models.Movie, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	movies := make([]models.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, *m)
	}
	return movies, rows.Err()
}

// GetMovie returns a movie by id.
func (r *MovieRepository) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

// CreateMovie inserts a movie and fills its id and timestamps.
func (r *MovieRepository) CreateMovie(ctx context.Context, m *models.Movie) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO movies (title, cover, categories, region_id, year, duration, rating,
			is_free, price, actors, trailer_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, play_count, created_at, updated_at
	`, m.Title, m.Cover, pq.Array(m.Categories), m.RegionID, m.Year, m.Duration, m.Rating,
		m.IsFree, m.Price, pq.Array(m.Actors), m.TrailerURL,
	).Scan(&m.ID, &m.PlayCount, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert movie: %w", err)
	}
	return nil
}

// UpdateMovie replaces the editable fields of a movie.
func (r *MovieRepository) UpdateMovie(ctx context.Context, m *models.Movie) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE movies SET title = $2, cover = $3, categories = $4, region_id = $5, year = $6,
			duration = $7, rating = $8, is_free = $9, price = $10, actors = $11,
			trailer_url = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING play_count, created_at, updated_at
	`, m.ID, m.Title, m.Cover, pq.Array(m.Categories), m.RegionID, m.Year, m.Duration, m.Rating,
		m.IsFree, m.Price, pq.Array(m.Actors), m.TrailerURL,
	).Scan(&m.PlayCount, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return notFound(err)
	}
	return nil
}

// DeleteMovie removes a movie.
func (r *MovieRepository) DeleteMovie(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	return requireAffected(res)
}

// UpsertTMDBMovie inserts or refreshes a movie imported from TMDB.
func (r *MovieRepository) UpsertTMDBMovie(ctx context.Context, tmdbID int, m *models.Movie) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO movies (tmdb_id, title, cover, categories, year, duration, rating,
			is_free, price, actors, trailer_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (tmdb_id) DO UPDATE SET
			title = EXCLUDED.title,
			cover = EXCLUDED.cover,
			categories = EXCLUDED.categories,
			year = EXCLUDED.year,
			rating = EXCLUDED.rating,
			updated_at = EXCLUDED.updated_at
		RETURNING id, play_count, created_at, updated_at
	`, tmdbID, m.Title, m.Cover, pq.Array(m.Categories), m.Year, m.Duration, m.Rating,
		m.IsFree, m.Price, pq.Array(m.Actors), m.TrailerURL, time.Now(),
	).Scan(&m.ID, &m.PlayCount, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert tmdb movie: %w", err)
	}
	return nil
}

// IncrementPlayCount bumps the catalog-wide play counter.
func (r *MovieRepository) IncrementPlayCount(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE movies SET play_count = play_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment play count: %w", err)
	}
	return requireAffected(res)
}
