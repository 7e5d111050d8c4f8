// Package memory implements every repository store in process memory. It
// backs the "memory" store driver and the service and handler tests.
package memory

import (
	"cmp"
	"slices"
	"sync"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository"
)

// Store is a mutex-guarded in-memory database.
type Store struct {
	mu sync.RWMutex
	// txMu serializes WithinTx callbacks, standing in for row and advisory locks.
	txMu sync.Mutex

	nextID int64

	movies       map[int64]*models.Movie
	carousels    map[int64]*models.Carousel
	users        map[int64]*models.User
	orders       map[int64]*models.Order
	entitlements map[int64]*models.Entitlement
	interactions map[int64]*models.Interaction
	collections  map[int64]*models.Collection
	messages     map[int64]*models.Message
	tmdbIDs      map[int]int64

	categories *NamedTable
	regions    *NamedTable
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		movies:       make(map[int64]*models.Movie),
		carousels:    make(map[int64]*models.Carousel),
		users:        make(map[int64]*models.User),
		orders:       make(map[int64]*models.Order),
		entitlements: make(map[int64]*models.Entitlement),
		interactions: make(map[int64]*models.Interaction),
		collections:  make(map[int64]*models.Collection),
		messages:     make(map[int64]*models.Message),
		tmdbIDs:      make(map[int]int64),
		categories:   newNamedTable(),
		regions:      newNamedTable(),
	}
}

// Categories returns the category lookup table.
func (s *Store) Categories() *NamedTable { return s.categories }

// Regions returns the region lookup table.
func (s *Store) Regions() *NamedTable { return s.regions }

// id returns the next identifier. Callers hold s.mu.
func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

var (
	_ repository.MovieStore       = (*Store)(nil)
	_ repository.CarouselStore    = (*Store)(nil)
	_ repository.UserStore        = (*Store)(nil)
	_ repository.OrderStore       = (*Store)(nil)
	_ repository.InteractionStore = (*Store)(nil)
	_ repository.CollectionStore  = (*Store)(nil)
	_ repository.MessageStore     = (*Store)(nil)
	_ repository.NamedStore       = (*NamedTable)(nil)
)

// sortedByID returns copies of the map values ordered by ascending id.
func sortedByID[T any](rows map[int64]*T, id func(*T) int64, clone func(*T) *T) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, *clone(r))
	}
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(id(&a), id(&b)) })
	return out
}

func ptrCopy[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
