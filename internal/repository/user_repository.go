package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"movie-streaming-service/internal/models"
)

const userColumns = `id, username, password_hash, gender, age, profession, phone, is_admin, created_at`

// UserRepository handles database operations for users.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Gender, &u.Age,
		&u.Profession, &u.Phone, &u.IsAdmin, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser returns a user by id.
func (r *UserRepository) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// GetUserByUsername returns a user by login name.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// CreateUser inserts a user. A taken username yields ErrDuplicate.
func (r *UserRepository) CreateUser(ctx context.Context, u *models.User) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash, gender, age, profession, phone, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, u.Username, u.PasswordHash, u.Gender, u.Age, u.Profession, u.Phone, u.IsAdmin,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return duplicate(err)
	}
	return nil
}

// UpdateUser replaces a user's profile and password hash.
func (r *UserRepository) UpdateUser(ctx context.Context, u *models.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET username = $2, password_hash = $3, gender = $4, age = $5,
			profession = $6, phone = $7, is_admin = $8
		WHERE id = $1
	`, u.ID, u.Username, u.PasswordHash, u.Gender, u.Age, u.Profession, u.Phone, u.IsAdmin)
	if err != nil {
		return duplicate(err)
	}
	return requireAffected(res)
}

// DeleteUser removes a user.
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireAffected(res)
}

// ListUsers returns one page of users matching the substring filters and the
// total number of matches.
func (r *UserRepository) ListUsers(ctx context.Context, params models.UserListParams) ([]models.User, int, error) {
	conditions := []string{"1=1"}
	args := []any{}
	argIdx := 1

	if params.Username != "" {
		conditions = append(conditions, fmt.Sprintf("username ILIKE $%d", argIdx))
		args = append(args, "%"+params.Username+"%")
		argIdx++
	}
	if params.Phone != "" {
		conditions = append(conditions, fmt.Sprintf("phone LIKE $%d", argIdx))
		args = append(args, "%"+params.Phone+"%")
		argIdx++
	}
	whereClause := strings.Join(conditions, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}

	listQuery := fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY id LIMIT $%d OFFSET $%d`,
		userColumns, whereClause, argIdx, argIdx+1)
	args = append(args, params.PageSize, (params.Page-1)*params.PageSize)

	users, err := r.queryUsers(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// AllUsers returns every user ordered by id.
func (r *UserRepository) AllUsers(ctx context.Context) ([]models.User, error) {
	return r.queryUsers(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
}

func (r *UserRepository) queryUsers(ctx context.Context, query string, args ...any) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
