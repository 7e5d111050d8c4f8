package repository

import (
	"context"
	"database/sql"
	"fmt"

	"movie-streaming-service/internal/models"
)

// Lookup tables served by NamedRepository.
const (
	TableCategories = "categories"
	TableRegions    = "regions"
)

// NamedRepository handles an id/name lookup table.
type NamedRepository struct {
	db    *sql.DB
	table string
}

// NewNamedRepository creates a repository for table, which must be one of
// the Table constants.
func NewNamedRepository(db *sql.DB, table string) *NamedRepository {
	switch table {
	case TableCategories, TableRegions:
	default:
		panic(fmt.Sprintf("repository: unknown lookup table %q", table))
	}
	return &NamedRepository{db: db, table: table}
}

// List returns all rows ordered by id.
func (r *NamedRepository) List(ctx context.Context) ([]models.Named, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM `+r.table+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", r.table, err)
	}
	defer rows.Close()

	items := make([]models.Named, 0)
	for rows.Next() {
		var n models.Named
		if err := rows.Scan(&n.ID, &n.Name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.table, err)
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// Get returns a row by id.
func (r *NamedRepository) Get(ctx context.Context, id int64) (*models.Named, error) {
	var n models.Named
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM `+r.table+` WHERE id = $1`, id).Scan(&n.ID, &n.Name)
	if err != nil {
		return nil, notFound(err)
	}
	return &n, nil
}

// Create inserts a row.
func (r *NamedRepository) Create(ctx context.Context, name string) (*models.Named, error) {
	n := models.Named{Name: name}
	err := r.db.QueryRowContext(ctx, `INSERT INTO `+r.table+` (name) VALUES ($1) RETURNING id`, name).Scan(&n.ID)
	if err != nil {
		return nil, duplicate(err)
	}
	return &n, nil
}

// Update renames a row.
func (r *NamedRepository) Update(ctx context.Context, id int64, name string) (*models.Named, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE `+r.table+` SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return nil, duplicate(err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return &models.Named{ID: id, Name: name}, nil
}

// Delete removes a row.
func (r *NamedRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+r.table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.table, err)
	}
	return requireAffected(res)
}

// CarouselRepository handles database operations for carousels.
type CarouselRepository struct {
	db *sql.DB
}

// NewCarouselRepository creates a new CarouselRepository.
func NewCarouselRepository(db *sql.DB) *CarouselRepository {
	return &CarouselRepository{db: db}
}

// ListCarousels returns banners in display order.
func (r *CarouselRepository) ListCarousels(ctx context.Context) ([]models.Carousel, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, image_url, movie_id, sort_order, created_at
		FROM carousels ORDER BY sort_order, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query carousels: %w", err)
	}
	defer rows.Close()

	items := make([]models.Carousel, 0)
	for rows.Next() {
		var c models.Carousel
		if err := rows.Scan(&c.ID, &c.Title, &c.ImageURL, &c.MovieID, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan carousel: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// GetCarousel returns a banner by id.
func (r *CarouselRepository) GetCarousel(ctx context.Context, id int64) (*models.Carousel, error) {
	var c models.Carousel
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, image_url, movie_id, sort_order, created_at
		FROM carousels WHERE id = $1
	`, id).Scan(&c.ID, &c.Title, &c.ImageURL, &c.MovieID, &c.SortOrder, &c.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// CreateCarousel inserts a banner.
func (r *CarouselRepository) CreateCarousel(ctx context.Context, c *models.Carousel) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO carousels (title, image_url, movie_id, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, c.Title, c.ImageURL, c.MovieID, c.SortOrder).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert carousel: %w", err)
	}
	return nil
}

// UpdateCarousel replaces a banner's fields.
func (r *CarouselRepository) UpdateCarousel(ctx context.Context, c *models.Carousel) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE carousels SET title = $2, image_url = $3, movie_id = $4, sort_order = $5
		WHERE id = $1
		RETURNING created_at
	`, c.ID, c.Title, c.ImageURL, c.MovieID, c.SortOrder).Scan(&c.CreatedAt)
	if err != nil {
		return notFound(err)
	}
	return nil
}

// DeleteCarousel removes a banner.
func (r *CarouselRepository) DeleteCarousel(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM carousels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete carousel: %w", err)
	}
	return requireAffected(res)
}
