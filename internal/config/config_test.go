package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.EntitlementSweepInterval)
	assert.Equal(t, 120, cfg.RateLimit.Max)
	assert.False(t, cfg.TMDB.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("TMDB_API_KEY", "key")
	t.Setenv("DB_SSLROOTCERT", "/etc/ca.pem")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.TMDB.Enabled())
	assert.Contains(t, cfg.DB.DSN(), "sslrootcert=/etc/ca.pem")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{}},
		{name: "short secret", env: map[string]string{"JWT_SECRET": "short"}},
		{name: "bad driver", env: map[string]string{"JWT_SECRET": testSecret, "STORE_DRIVER": "mongo"}},
		{name: "bad port", env: map[string]string{"JWT_SECRET": testSecret, "DB_PORT": "abc"}},
		{name: "bad ttl", env: map[string]string{"JWT_SECRET": testSecret, "JWT_TTL": "forever"}},
		{name: "zero rate limit", env: map[string]string{"JWT_SECRET": testSecret, "RATE_LIMIT_MAX": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
