package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"movie-streaming-service/internal/config"
)

// NewPostgres creates a new PostgreSQL connection and runs migrations.
func NewPostgres(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	slog.Info("connected to PostgreSQL", "db", cfg.DBName)

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Migrations is the ordered, idempotent schema setup.
var Migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(50) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		gender VARCHAR(10) DEFAULT '',
		age INTEGER DEFAULT 0,
		profession VARCHAR(50) DEFAULT '',
		phone VARCHAR(20) DEFAULT '',
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) UNIQUE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS regions (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) UNIQUE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS movies (
		id BIGSERIAL PRIMARY KEY,
		tmdb_id INTEGER UNIQUE,
		title VARCHAR(255) NOT NULL,
		cover VARCHAR(500) DEFAULT '',
		categories TEXT[] NOT NULL DEFAULT '{}',
		region_id BIGINT REFERENCES regions(id) ON DELETE SET NULL,
		year INTEGER NOT NULL,
		duration INTEGER NOT NULL,
		rating DOUBLE PRECISION,
		is_free BOOLEAN NOT NULL DEFAULT TRUE,
		price NUMERIC(10,2),
		actors TEXT[] NOT NULL DEFAULT '{}',
		trailer_url VARCHAR(500) DEFAULT '',
		play_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK ((is_free AND price = 0) OR (NOT is_free AND price > 0))
	)`,
	`CREATE TABLE IF NOT EXISTS carousels (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		image_url VARCHAR(500) NOT NULL,
		movie_id BIGINT REFERENCES movies(id) ON DELETE SET NULL,
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		order_no VARCHAR(64) UNIQUE NOT NULL,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		movie_id BIGINT NOT NULL REFERENCES movies(id) ON DELETE CASCADE,
		amount NUMERIC(10,2) NOT NULL,
		status VARCHAR(16) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		paid_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS entitlements (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		movie_id BIGINT NOT NULL REFERENCES movies(id) ON DELETE CASCADE,
		order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL,
		expired_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS movie_interactions (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		movie_id BIGINT NOT NULL REFERENCES movies(id) ON DELETE CASCADE,
		liked BOOLEAN,
		rating INTEGER CHECK (rating BETWEEN 1 AND 5),
		comment TEXT,
		play_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE(user_id, movie_id)
	)`,
	`CREATE TABLE IF NOT EXISTS collections (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name VARCHAR(100) NOT NULL,
		movie_ids BIGINT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		type VARCHAR(20) NOT NULL,
		content VARCHAR(1000) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'PENDING',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	// Indexes for common query patterns
	`CREATE INDEX IF NOT EXISTS idx_orders_user_movie ON orders(user_id, movie_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_entitlements_user_movie ON entitlements(user_id, movie_id, expired_at)`,
	`CREATE INDEX IF NOT EXISTS idx_entitlements_expired_at ON entitlements(expired_at)`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_movie_id ON movie_interactions(movie_id)`,
	`CREATE INDEX IF NOT EXISTS idx_collections_user_id ON collections(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_user_id ON messages(user_id, created_at DESC)`,
}

// RunMigrations applies every statement in Migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	for _, m := range Migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	slog.Info("database migrations completed", "statements", len(Migrations))
	return nil
}
