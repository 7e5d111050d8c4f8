package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository"
)

const (
	salesWindowDays = 30
	topLikedLimit   = 10
)

// StatisticsService builds admin dashboards from in-memory passes over the stores.
type StatisticsService struct {
	users        repository.UserStore
	movies       repository.MovieStore
	orders       repository.OrderStore
	interactions repository.InteractionStore
	now          func() time.Time
}

// NewStatisticsService creates a new StatisticsService.
func NewStatisticsService(users repository.UserStore, movies repository.MovieStore, orders repository.OrderStore, interactions repository.InteractionStore) *StatisticsService {
	return &StatisticsService{users: users, movies: movies, orders: orders, interactions: interactions, now: time.Now}
}

// Overview returns headline counters.
func (s *StatisticsService) Overview(ctx context.Context) (*models.Overview, error) {
	users, err := s.users.AllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	movies, err := s.movies.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load movies: %w", err)
	}
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	out := &models.Overview{UserCount: len(users), MovieCount: len(movies)}
	for _, o := range orders {
		if o.Status == models.OrderPaid {
			out.PaidOrderCount++
			out.Revenue += o.Amount
		}
	}
	out.Revenue = roundCents(out.Revenue)
	return out, nil
}

// Sales sums PAID orders per UTC payment day over the last 30 days, oldest day first.
func (s *StatisticsService) Sales(ctx context.Context) ([]models.DailySales, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	since := s.now().UTC().AddDate(0, 0, -salesWindowDays)
	byDay := make(map[string]*models.DailySales)
	for _, o := range orders {
		if o.Status != models.OrderPaid || o.PaidAt == nil || o.PaidAt.Before(since) {
			continue
		}
		day := o.PaidAt.UTC().Format(time.DateOnly)
		d, ok := byDay[day]
		if !ok {
			d = &models.DailySales{Date: day}
			byDay[day] = d
		}
		d.Amount += o.Amount
		d.Orders++
	}

	out := make([]models.DailySales, 0, len(byDay))
	for _, d := range byDay {
		d.Amount = roundCents(d.Amount)
		out = append(out, *d)
	}
	slices.SortFunc(out, func(a, b models.DailySales) int { return cmp.Compare(a.Date, b.Date) })
	return out, nil
}

// TopLiked returns the ten most liked movies. Movies without likes fill the
// list when fewer than ten are liked; ties go to the lower movie id.
func (s *StatisticsService) TopLiked(ctx context.Context) ([]models.MovieLikes, error) {
	movies, err := s.movies.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load movies: %w", err)
	}
	interactions, err := s.interactions.ListInteractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}

	likes := make(map[int64]int)
	for _, i := range interactions {
		if i.Liked != nil && *i.Liked {
			likes[i.MovieID]++
		}
	}

	out := make([]models.MovieLikes, 0, len(movies))
	for _, m := range movies {
		out = append(out, models.MovieLikes{MovieID: m.ID, Title: m.Title, Likes: likes[m.ID]})
	}
	slices.SortFunc(out, func(a, b models.MovieLikes) int {
		if c := cmp.Compare(b.Likes, a.Likes); c != 0 {
			return c
		}
		return cmp.Compare(a.MovieID, b.MovieID)
	})
	if len(out) > topLikedLimit {
		out = out[:topLikedLimit]
	}
	return out, nil
}

// UserPreferences counts, per profession, the category tags of the movies
// that users of that profession interacted with. Users without a profession
// and interactions with deleted movies are skipped.
func (s *StatisticsService) UserPreferences(ctx context.Context) ([]models.ProfessionPreference, error) {
	users, err := s.users.AllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	movies, err := s.movies.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load movies: %w", err)
	}
	interactions, err := s.interactions.ListInteractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}

	profession := make(map[int64]string, len(users))
	for _, u := range users {
		if u.Profession != "" {
			profession[u.ID] = u.Profession
		}
	}
	categories := make(map[int64][]string, len(movies))
	for _, m := range movies {
		categories[m.ID] = m.Categories
	}

	byJob := make(map[string]map[string]int)
	for _, i := range interactions {
		job, ok := profession[i.UserID]
		if !ok {
			continue
		}
		tags, ok := categories[i.MovieID]
		if !ok {
			continue
		}
		counts, ok := byJob[job]
		if !ok {
			counts = make(map[string]int)
			byJob[job] = counts
		}
		for _, c := range tags {
			counts[c]++
		}
	}

	out := make([]models.ProfessionPreference, 0, len(byJob))
	for job, counts := range byJob {
		out = append(out, models.ProfessionPreference{Job: job, Preferences: counts})
	}
	slices.SortFunc(out, func(a, b models.ProfessionPreference) int { return cmp.Compare(a.Job, b.Job) })
	return out, nil
}
