package repository

import (
	"context"
	"database/sql"
	"fmt"

	"movie-streaming-service/internal/models"
)

const messageColumns = `id, user_id, type, content, status, created_at, updated_at`

// MessageRepository handles database operations for feedback messages.
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func scanMessage(row rowScanner) (*models.Message, error) {
	var m models.Message
	if err := row.Scan(&m.ID, &m.UserID, &m.Type, &m.Content, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMessage inserts a message.
func (r *MessageRepository) CreateMessage(ctx context.Context, m *models.Message) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO messages (user_id, type, content, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, m.UserID, m.Type, m.Content, m.Status).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// GetMessage returns a message by id.
func (r *MessageRepository) GetMessage(ctx context.Context, id int64) (*models.Message, error) {
	m, err := scanMessage(r.db.QueryRowContext(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

// ListMessagesByUser returns a user's messages, newest first.
func (r *MessageRepository) ListMessagesByUser(ctx context.Context, userID int64) ([]models.Message, error) {
	return r.query(ctx, `SELECT `+messageColumns+` FROM messages WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
}

// ListMessages returns every message, newest first.
func (r *MessageRepository) ListMessages(ctx context.Context) ([]models.Message, error) {
	return r.query(ctx, `SELECT `+messageColumns+` FROM messages ORDER BY created_at DESC, id DESC`)
}

// UpdateMessageStatus sets a message's status.
func (r *MessageRepository) UpdateMessageStatus(ctx context.Context, id int64, status models.MessageStatus) (*models.Message, error) {
	m, err := scanMessage(r.db.QueryRowContext(ctx, `
		UPDATE messages SET status = $2, updated_at = NOW() WHERE id = $1
		RETURNING `+messageColumns, id, status))
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

// DeleteMessage removes a message.
func (r *MessageRepository) DeleteMessage(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return requireAffected(res)
}

func (r *MessageRepository) query(ctx context.Context, query string, args ...any) ([]models.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	items := make([]models.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}
