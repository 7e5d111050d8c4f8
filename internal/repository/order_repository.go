package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"movie-streaming-service/internal/models"
)

const orderColumns = `id, order_no, user_id, movie_id, amount, status, created_at, paid_at`

// OrderRepository handles database operations for orders and entitlements.
// A repository returned to a WithinTx callback runs every statement on that
// transaction.
type OrderRepository struct {
	db *sql.DB
	q  dbtx
	tx *sql.Tx
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db, q: db}
}

// WithinTx runs fn inside a single transaction, committing when fn returns nil.
// Nested calls reuse the outer transaction.
func (r *OrderRepository) WithinTx(ctx context.Context, fn func(OrderStore) error) error {
	if r.tx != nil {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(&OrderRepository{db: r.db, q: tx, tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// PurchaseLockKey packs a (user, movie) pair into one advisory lock key.
func PurchaseLockKey(userID, movieID int64) int64 {
	return userID<<32 | (movieID & 0xFFFFFFFF)
}

// LockPurchase takes a transaction-scoped advisory lock on the (user, movie)
// pair. It must be called inside WithinTx; the lock is released on commit or
// rollback.
func (r *OrderRepository) LockPurchase(ctx context.Context, userID, movieID int64) error {
	if r.tx == nil {
		return errors.New("LockPurchase called outside a transaction")
	}
	if _, err := r.q.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, PurchaseLockKey(userID, movieID)); err != nil {
		return fmt.Errorf("advisory lock: %w", err)
	}
	return nil
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var o models.Order
	if err := row.Scan(&o.ID, &o.OrderNo, &o.UserID, &o.MovieID, &o.Amount, &o.Status, &o.CreatedAt, &o.PaidAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrder returns an order by id.
func (r *OrderRepository) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	o, err := scanOrder(r.q.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return o, nil
}

// GetOrderForUpdate returns an order by id and row-locks it until the
// surrounding transaction ends.
func (r *OrderRepository) GetOrderForUpdate(ctx context.Context, id int64) (*models.Order, error) {
	o, err := scanOrder(r.q.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return o, nil
}

// FindPendingOrder returns the oldest PENDING order for the pair.
func (r *OrderRepository) FindPendingOrder(ctx context.Context, userID, movieID int64) (*models.Order, error) {
	o, err := scanOrder(r.q.QueryRowContext(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE user_id = $1 AND movie_id = $2 AND status = $3
		ORDER BY id LIMIT 1
	`, userID, movieID, models.OrderPending))
	if err != nil {
		return nil, notFound(err)
	}
	return o, nil
}

// CreateOrder inserts an order and fills its id and creation time.
func (r *OrderRepository) CreateOrder(ctx context.Context, o *models.Order) error {
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO orders (order_no, user_id, movie_id, amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, o.OrderNo, o.UserID, o.MovieID, o.Amount, o.Status).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// UpdateOrderStatus sets the status and payment time of an order.
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus, paidAt *time.Time) error {
	res, err := r.q.ExecContext(ctx, `UPDATE orders SET status = $2, paid_at = $3 WHERE id = $1`, id, status, paidAt)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return requireAffected(res)
}

// ListOrdersByUser returns a user's orders, newest first.
func (r *OrderRepository) ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	return r.queryOrders(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
}

// ListOrders returns every order, newest first.
func (r *OrderRepository) ListOrders(ctx context.Context) ([]models.Order, error) {
	return r.queryOrders(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC`)
}

func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

const entitlementColumns = `id, user_id, movie_id, order_id, created_at, expired_at`

func scanEntitlement(row rowScanner) (*models.Entitlement, error) {
	var e models.Entitlement
	if err := row.Scan(&e.ID, &e.UserID, &e.MovieID, &e.OrderID, &e.CreatedAt, &e.ExpiredAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// FindActiveEntitlement returns the latest-expiring entitlement for the pair
// that is still valid at now.
func (r *OrderRepository) FindActiveEntitlement(ctx context.Context, userID, movieID int64, now time.Time) (*models.Entitlement, error) {
	e, err := scanEntitlement(r.q.QueryRowContext(ctx, `
		SELECT `+entitlementColumns+` FROM entitlements
		WHERE user_id = $1 AND movie_id = $2 AND expired_at > $3
		ORDER BY expired_at DESC LIMIT 1
	`, userID, movieID, now))
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

// CreateEntitlement inserts an entitlement.
func (r *OrderRepository) CreateEntitlement(ctx context.Context, e *models.Entitlement) error {
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO entitlements (user_id, movie_id, order_id, created_at, expired_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, e.UserID, e.MovieID, e.OrderID, e.CreatedAt, e.ExpiredAt).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert entitlement: %w", err)
	}
	return nil
}

// ListActiveEntitlements returns a user's unexpired entitlements, soonest expiry first.
func (r *OrderRepository) ListActiveEntitlements(ctx context.Context, userID int64, now time.Time) ([]models.Entitlement, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+entitlementColumns+` FROM entitlements
		WHERE user_id = $1 AND expired_at > $2
		ORDER BY expired_at, id
	`, userID, now)
	if err != nil {
		return nil, fmt.Errorf("query entitlements: %w", err)
	}
	defer rows.Close()

	items := make([]models.Entitlement, 0)
	for rows.Next() {
		e, err := scanEntitlement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entitlement: %w", err)
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

// DeleteExpiredEntitlements purges entitlements with expired_at <= now and
// returns how many were removed.
func (r *OrderRepository) DeleteExpiredEntitlements(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM entitlements WHERE expired_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired entitlements: %w", err)
	}
	return res.RowsAffected()
}
