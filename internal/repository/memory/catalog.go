package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository"
)

// NamedTable is an in-memory id/name lookup table with unique names.
type NamedTable struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]string
}

func newNamedTable() *NamedTable {
	return &NamedTable{rows: make(map[int64]string)}
}

// List returns all rows ordered by id.
func (t *NamedTable) List(_ context.Context) ([]models.Named, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]models.Named, 0, len(t.rows))
	for id, name := range t.rows {
		out = append(out, models.Named{ID: id, Name: name})
	}
	slices.SortFunc(out, func(a, b models.Named) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// Get returns a row by id.
func (t *NamedTable) Get(_ context.Context, id int64) (*models.Named, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	name, ok := t.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &models.Named{ID: id, Name: name}, nil
}

// Create inserts a row.
func (t *NamedTable) Create(_ context.Context, name string) (*models.Named, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.taken(name, 0) {
		return nil, repository.ErrDuplicate
	}
	t.nextID++
	t.rows[t.nextID] = name
	return &models.Named{ID: t.nextID, Name: name}, nil
}

// Update renames a row.
func (t *NamedTable) Update(_ context.Context, id int64, name string) (*models.Named, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return nil, repository.ErrNotFound
	}
	if t.taken(name, id) {
		return nil, repository.ErrDuplicate
	}
	t.rows[id] = name
	return &models.Named{ID: id, Name: name}, nil
}

// Delete removes a row.
func (t *NamedTable) Delete(_ context.Context, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

func (t *NamedTable) taken(name string, except int64) bool {
	for id, n := range t.rows {
		if n == name && id != except {
			return true
		}
	}
	return false
}

func cloneCarousel(c *models.Carousel) *models.Carousel {
	out := *c
	out.MovieID = ptrCopy(c.MovieID)
	return &out
}

// ListCarousels returns banners ordered by sort order, then id.
func (s *Store) ListCarousels(_ context.Context) ([]models.Carousel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := sortedByID(s.carousels, func(c *models.Carousel) int64 { return c.ID }, cloneCarousel)
	slices.SortStableFunc(out, func(a, b models.Carousel) int { return cmp.Compare(a.SortOrder, b.SortOrder) })
	return out, nil
}

// GetCarousel returns a banner by id.
func (s *Store) GetCarousel(_ context.Context, id int64) (*models.Carousel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carousels[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneCarousel(c), nil
}

// CreateCarousel stores a new banner.
func (s *Store) CreateCarousel(_ context.Context, c *models.Carousel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.id()
	c.CreatedAt = time.Now()
	s.carousels[c.ID] = cloneCarousel(c)
	return nil
}

// UpdateCarousel replaces a banner's fields.
func (s *Store) UpdateCarousel(_ context.Context, c *models.Carousel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.carousels[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	c.CreatedAt = old.CreatedAt
	s.carousels[c.ID] = cloneCarousel(c)
	return nil
}

// DeleteCarousel removes a banner.
func (s *Store) DeleteCarousel(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carousels[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.carousels, id)
	return nil
}
