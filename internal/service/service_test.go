package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository/memory"
)

func ptr[T any](v T) *T { return &v }

// fakeClock is a settable time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func seedMovie(t *testing.T, store *memory.Store, m models.Movie) *models.Movie {
	t.Helper()
	if m.Price == nil {
		if m.IsFree {
			m.Price = ptr(0.0)
		}
	}
	require.NoError(t, store.CreateMovie(context.Background(), &m))
	return &m
}

func paidMovie(title string, price float64, categories ...string) models.Movie {
	return models.Movie{Title: title, Year: 2020, Duration: 100, Price: ptr(price), Categories: categories}
}

func freeMovie(title string, categories ...string) models.Movie {
	return models.Movie{Title: title, Year: 2020, Duration: 100, IsFree: true, Categories: categories}
}
