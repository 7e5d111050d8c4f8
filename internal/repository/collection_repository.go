package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"movie-streaming-service/internal/models"
)

// CollectionRepository handles database operations for collections.
type CollectionRepository struct {
	db *sql.DB
}

// NewCollectionRepository creates a new CollectionRepository.
func NewCollectionRepository(db *sql.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

func scanCollection(row rowScanner) (*models.Collection, error) {
	var c models.Collection
	var ids pq.Int64Array
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &ids, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.MovieIDs = []int64(ids)
	if c.MovieIDs == nil {
		c.MovieIDs = []int64{}
	}
	return &c, nil
}

// ListCollectionsByUser returns a user's collections in creation order.
func (r *CollectionRepository) ListCollectionsByUser(ctx context.Context, userID int64) ([]models.Collection, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, movie_ids, created_at
		FROM collections WHERE user_id = $1 ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query collections: %w", err)
	}
	defer rows.Close()

	items := make([]models.Collection, 0)
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// GetCollection returns a collection by id.
func (r *CollectionRepository) GetCollection(ctx context.Context, id int64) (*models.Collection, error) {
	c, err := scanCollection(r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, movie_ids, created_at FROM collections WHERE id = $1
	`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// CreateCollection inserts a collection.
func (r *CollectionRepository) CreateCollection(ctx context.Context, c *models.Collection) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO collections (user_id, name, movie_ids)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, c.UserID, c.Name, pq.Int64Array(c.MovieIDs)).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert collection: %w", err)
	}
	return nil
}

// UpdateCollection replaces the name and movie list.
func (r *CollectionRepository) UpdateCollection(ctx context.Context, c *models.Collection) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE collections SET name = $2, movie_ids = $3 WHERE id = $1
	`, c.ID, c.Name, pq.Int64Array(c.MovieIDs))
	if err != nil {
		return fmt.Errorf("update collection: %w", err)
	}
	return requireAffected(res)
}

// DeleteCollection removes a collection.
func (r *CollectionRepository) DeleteCollection(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return requireAffected(res)
}
