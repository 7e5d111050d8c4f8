package repository

import (
	"context"
	"database/sql"
	"fmt"

	"movie-streaming-service/internal/models"
)

const interactionColumns = `id, user_id, movie_id, liked, rating, comment, play_count, created_at, updated_at`

// InteractionRepository handles database operations for movie interactions.
type InteractionRepository struct {
	db *sql.DB
}

// NewInteractionRepository creates a new InteractionRepository.
func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

func scanInteraction(row rowScanner) (*models.Interaction, error) {
	var i models.Interaction
	if err := row.Scan(
		&i.ID, &i.UserID, &i.MovieID, &i.Liked, &i.Rating, &i.Comment,
		&i.PlayCount, &i.CreatedAt, &i.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &i, nil
}

// GetInteraction returns the interaction for the pair.
func (r *InteractionRepository) GetInteraction(ctx context.Context, userID, movieID int64) (*models.Interaction, error) {
	i, err := scanInteraction(r.db.QueryRowContext(ctx, `
		SELECT `+interactionColumns+` FROM movie_interactions
		WHERE user_id = $1 AND movie_id = $2
	`, userID, movieID))
	if err != nil {
		return nil, notFound(err)
	}
	return i, nil
}

// UpsertInteraction creates the row if missing and overwrites only the
// fields set in patch, in one statement.
func (r *InteractionRepository) UpsertInteraction(ctx context.Context, userID, movieID int64, patch models.InteractionPatch) (*models.Interaction, error) {
	i, err := scanInteraction(r.db.QueryRowContext(ctx, `
		INSERT INTO movie_interactions (user_id, movie_id, liked, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, movie_id) DO UPDATE SET
			liked = COALESCE(EXCLUDED.liked, movie_interactions.liked),
			rating = COALESCE(EXCLUDED.rating, movie_interactions.rating),
			comment = COALESCE(EXCLUDED.comment, movie_interactions.comment),
			updated_at = NOW()
		RETURNING `+interactionColumns,
		userID, movieID, patch.Liked, patch.Rating, patch.Comment))
	if err != nil {
		return nil, fmt.Errorf("upsert interaction: %w", err)
	}
	return i, nil
}

// IncrementInteractionPlay records one play for the pair.
func (r *InteractionRepository) IncrementInteractionPlay(ctx context.Context, userID, movieID int64) (*models.Interaction, error) {
	i, err := scanInteraction(r.db.QueryRowContext(ctx, `
		INSERT INTO movie_interactions (user_id, movie_id, play_count)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, movie_id) DO UPDATE SET
			play_count = movie_interactions.play_count + 1,
			updated_at = NOW()
		RETURNING `+interactionColumns,
		userID, movieID))
	if err != nil {
		return nil, fmt.Errorf("increment play: %w", err)
	}
	return i, nil
}

// ListInteractionsByUser returns a user's interactions in creation order.
func (r *InteractionRepository) ListInteractionsByUser(ctx context.Context, userID int64) ([]models.Interaction, error) {
	return r.query(ctx, `SELECT `+interactionColumns+` FROM movie_interactions WHERE user_id = $1 ORDER BY id`, userID)
}

// ListInteractionsByMovie returns a movie's interactions, newest first.
func (r *InteractionRepository) ListInteractionsByMovie(ctx context.Context, movieID int64) ([]models.Interaction, error) {
	return r.query(ctx, `SELECT `+interactionColumns+` FROM movie_interactions WHERE movie_id = $1 ORDER BY updated_at DESC, id DESC`, movieID)
}

// ListInteractions returns every interaction.
func (r *InteractionRepository) ListInteractions(ctx context.Context) ([]models.Interaction, error) {
	return r.query(ctx, `SELECT `+interactionColumns+` FROM movie_interactions ORDER BY id`)
}

func (r *InteractionRepository) query(ctx context.Context, query string, args ...any) ([]models.Interaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	items := make([]models.Interaction, 0)
	for rows.Next() {
		i, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		items = append(items, *i)
	}
	return items, rows.Err()
}
