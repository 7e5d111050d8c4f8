package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-streaming-service/internal/auth"
	"movie-streaming-service/internal/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestApp(t *testing.T) (*fiber.App, *auth.JWTManager) {
	t.Helper()
	jwtm, err := auth.NewJWTManager(testSecret, time.Hour)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", Auth(jwtm), func(c fiber.Ctx) error {
		caller, _ := CallerFrom(c)
		return c.JSON(fiber.Map{"userId": caller.UserID, "admin": caller.Admin})
	})
	app.Get("/admin", Auth(jwtm), AdminOnly(), func(c fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, jwtm
}

func do(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuth_Rejects(t *testing.T) {
	app, _ := newTestApp(t)
	other, err := auth.NewJWTManager("ffffffffffffffffffffffffffffffff", time.Hour)
	require.NoError(t, err)
	foreign, err := other.GenerateToken(1, "eve", true)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"not bearer", "Basic abc"},
		{"empty token", "Bearer  "},
		{"garbage", "Bearer not-a-jwt"},
		{"wrong key", "Bearer " + foreign},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, app, "/me", tt.header)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			var body models.Response
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, http.StatusUnauthorized, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestAuth_StoresCaller(t *testing.T) {
	app, jwtm := newTestApp(t)
	token, err := jwtm.GenerateToken(42, "alice", false)
	require.NoError(t, err)

	resp := do(t, app, "/me", "Bearer "+token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		UserID int64 `json:"userId"`
		Admin  bool  `json:"admin"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(42), body.UserID)
	assert.False(t, body.Admin)
}

func TestAdminOnly(t *testing.T) {
	app, jwtm := newTestApp(t)
	user, err := jwtm.GenerateToken(2, "bob", false)
	require.NoError(t, err)
	admin, err := jwtm.GenerateToken(1, "admin", true)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, do(t, app, "/admin", "Bearer "+user).StatusCode)
	assert.Equal(t, http.StatusOK, do(t, app, "/admin", "Bearer "+admin).StatusCode)
}

func TestRateLimiter_DisabledWithoutRedis(t *testing.T) {
	app := fiber.New()
	app.Use(NewRateLimiter(nil, 1, 60).Handler())
	app.Get("/", func(c fiber.Ctx) error { return c.SendString("ok") })

	for range 3 {
		resp := do(t, app, "/", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, resp.Header.Get("X-RateLimit-Limit"))
	}
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	app := fiber.New()
	app.Use(NewRateLimiter(rdb, 1, 60).Handler())
	app.Get("/", func(c fiber.Ctx) error { return c.SendString("ok") })

	for range 2 {
		assert.Equal(t, http.StatusOK, do(t, app, "/", "").StatusCode)
	}
}
