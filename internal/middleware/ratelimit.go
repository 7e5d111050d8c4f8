package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"

	"movie-streaming-service/internal/models"
)

// RateLimiter limits requests per client IP with a fixed window counter in Redis.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter creates a rate limiter. A nil client disables limiting.
func NewRateLimiter(rdb *redis.Client, limit, windowSec int) *RateLimiter {
	return &RateLimiter{
		rdb:    rdb,
		limit:  limit,
		window: time.Duration(windowSec) * time.Second,
	}
}

// Handler returns the Fiber middleware.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		if rl.rdb == nil {
			return c.Next()
		}

		key := "ratelimit:" + c.IP()
		ctx := c.Context()

		// The window starts with the first hit; ExpireNX leaves it alone afterwards.
		var incr *redis.IntCmd
		var ttl *redis.DurationCmd
		_, err := rl.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, key)
			pipe.ExpireNX(ctx, key, rl.window)
			ttl = pipe.TTL(ctx, key)
			return nil
		})
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "ip", c.IP(), "error", err)
			return c.Next()
		}

		count := incr.Val()
		reset := strconv.Itoa(max(int(ttl.Val().Seconds()), 0))
		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(rl.limit)-count), 10))
		c.Set("X-RateLimit-Reset", reset)

		if count > int64(rl.limit) {
			c.Set(fiber.HeaderRetryAfter, reset)
			return c.Status(fiber.StatusTooManyRequests).JSON(models.Response{
				Code:    fiber.StatusTooManyRequests,
				Message: "rate limit exceeded",
			})
		}
		return c.Next()
	}
}
