package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds all configuration for the streaming service.
type Config struct {
	DB          DBConfig
	Redis       RedisConfig
	Auth        AuthConfig
	RateLimit   RateLimitConfig
	TMDB        TMDBConfig
	Port        string
	StoreDriver string
	LogLevel    string

	// EntitlementSweepInterval controls how often expired entitlements are purged.
	EntitlementSweepInterval time.Duration
}

// DBConfig holds PostgreSQL configuration.
type DBConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SSLRootCert string
}

// DSN returns the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
	if d.SSLRootCert != "" {
		dsn += fmt.Sprintf(" sslrootcert=%s", d.SSLRootCert)
	}
	return dsn
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuthConfig holds session and bootstrap-account settings.
type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminPassword string
}

// RateLimitConfig holds the fixed-window limiter settings.
type RateLimitConfig struct {
	Max           int
	WindowSeconds int
}

// TMDBConfig holds TMDB API configuration.
type TMDBConfig struct {
	APIKey  string
	BaseURL string
}

// Enabled reports whether the TMDB import is configured.
func (t TMDBConfig) Enabled() bool {
	return t.APIKey != ""
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	rateLimitMax, err := strconv.Atoi(getEnv("RATE_LIMIT_MAX", "120"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_MAX: %w", err)
	}
	rateLimitWindow, err := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW_SECONDS: %w", err)
	}
	tokenTTL, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	sweepInterval, err := time.ParseDuration(getEnv("ENTITLEMENT_SWEEP_INTERVAL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENTITLEMENT_SWEEP_INTERVAL: %w", err)
	}

	cfg := &Config{
		DB: DBConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        dbPort,
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "movie_streaming"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			SSLRootCert: getEnv("DB_SSLROOTCERT", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			TokenTTL:      tokenTTL,
			AdminPassword: getEnv("ADMIN_PASSWORD", "123456"),
		},
		RateLimit: RateLimitConfig{
			Max:           rateLimitMax,
			WindowSeconds: rateLimitWindow,
		},
		TMDB: TMDBConfig{
			APIKey:  getEnv("TMDB_API_KEY", ""),
			BaseURL: getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		},
		Port:                     getEnv("SERVER_PORT", "8080"),
		StoreDriver:              getEnv("STORE_DRIVER", StoreDriverPostgres),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
		EntitlementSweepInterval: sweepInterval,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.RateLimit.Max <= 0 || c.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit values must be positive")
	}
	if c.EntitlementSweepInterval <= 0 {
		return fmt.Errorf("ENTITLEMENT_SWEEP_INTERVAL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
