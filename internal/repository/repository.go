package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"movie-streaming-service/internal/models"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// MovieStore persists catalog movies.
type MovieStore interface {
	ListMovies(ctx context.Context) ([]models.Movie, error)
	GetMovie(ctx context.Context, id int64) (*models.Movie, error)
	CreateMovie(ctx context.Context, m *models.Movie) error
	UpdateMovie(ctx context.Context, m *models.Movie) error
	DeleteMovie(ctx context.Context, id int64) error
	UpsertTMDBMovie(ctx context.Context, tmdbID int, m *models.Movie) error
	IncrementPlayCount(ctx context.Context, id int64) error
}

// NamedStore persists simple id/name lookups such as categories and regions.
type NamedStore interface {
	List(ctx context.Context) ([]models.Named, error)
	Get(ctx context.Context, id int64) (*models.Named, error)
	Create(ctx context.Context, name string) (*models.Named, error)
	Update(ctx context.Context, id int64, name string) (*models.Named, error)
	Delete(ctx context.Context, id int64) error
}

// CarouselStore persists home page banners.
type CarouselStore interface {
	ListCarousels(ctx context.Context) ([]models.Carousel, error)
	GetCarousel(ctx context.Context, id int64) (*models.Carousel, error)
	CreateCarousel(ctx context.Context, c *models.Carousel) error
	UpdateCarousel(ctx context.Context, c *models.Carousel) error
	DeleteCarousel(ctx context.Context, id int64) error
}

// UserStore persists accounts.
type UserStore interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	ListUsers(ctx context.Context, params models.UserListParams) ([]models.User, int, error)
	AllUsers(ctx context.Context) ([]models.User, error)
}

// OrderStore persists orders and entitlements. Purchase flows run inside
// WithinTx after taking LockPurchase for the (user, movie) pair.
type OrderStore interface {
	WithinTx(ctx context.Context, fn func(OrderStore) error) error
	LockPurchase(ctx context.Context, userID, movieID int64) error

	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	GetOrderForUpdate(ctx context.Context, id int64) (*models.Order, error)
	FindPendingOrder(ctx context.Context, userID, movieID int64) (*models.Order, error)
	CreateOrder(ctx context.Context, o *models.Order) error
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus, paidAt *time.Time) error
	ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)

	FindActiveEntitlement(ctx context.Context, userID, movieID int64, now time.Time) (*models.Entitlement, error)
	CreateEntitlement(ctx context.Context, e *models.Entitlement) error
	ListActiveEntitlements(ctx context.Context, userID int64, now time.Time) ([]models.Entitlement, error)
	DeleteExpiredEntitlements(ctx context.Context, now time.Time) (int64, error)
}

// InteractionStore persists per-user movie interactions.
type InteractionStore interface {
	GetInteraction(ctx context.Context, userID, movieID int64) (*models.Interaction, error)
	// UpsertInteraction creates the row if missing and applies the non-nil
	// patch fields atomically.
	UpsertInteraction(ctx context.Context, userID, movieID int64, patch models.InteractionPatch) (*models.Interaction, error)
	IncrementInteractionPlay(ctx context.Context, userID, movieID int64) (*models.Interaction, error)
	ListInteractionsByUser(ctx context.Context, userID int64) ([]models.Interaction, error)
	ListInteractionsByMovie(ctx context.Context, movieID int64) ([]models.Interaction, error)
	ListInteractions(ctx context.Context) ([]models.Interaction, error)
}

// CollectionStore persists user collections.
type CollectionStore interface {
	ListCollectionsByUser(ctx context.Context, userID int64) ([]models.Collection, error)
	GetCollection(ctx context.Context, id int64) (*models.Collection, error)
	CreateCollection(ctx context.Context, c *models.Collection) error
	UpdateCollection(ctx context.Context, c *models.Collection) error
	DeleteCollection(ctx context.Context, id int64) error
}

// MessageStore persists feedback messages.
type MessageStore interface {
	CreateMessage(ctx context.Context, m *models.Message) error
	GetMessage(ctx context.Context, id int64) (*models.Message, error)
	ListMessagesByUser(ctx context.Context, userID int64) ([]models.Message, error)
	ListMessages(ctx context.Context) ([]models.Message, error)
	UpdateMessageStatus(ctx context.Context, id int64, status models.MessageStatus) (*models.Message, error)
	DeleteMessage(ctx context.Context, id int64) error
}

// notFound maps sql.ErrNoRows to ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// duplicate maps a PostgreSQL unique_violation to ErrDuplicate.
func duplicate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

// requireAffected returns ErrNotFound when an UPDATE or DELETE touched no rows.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var (
	_ MovieStore       = (*MovieRepository)(nil)
	_ NamedStore       = (*NamedRepository)(nil)
	_ CarouselStore    = (*CarouselRepository)(nil)
	_ UserStore        = (*UserRepository)(nil)
	_ OrderStore       = (*OrderRepository)(nil)
	_ InteractionStore = (*InteractionRepository)(nil)
	_ CollectionStore  = (*CollectionRepository)(nil)
	_ MessageStore     = (*MessageRepository)(nil)
)
