package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository"
)

// OrderService runs the paid-movie purchase flow.
type OrderService struct {
	orders repository.OrderStore
	movies repository.MovieStore
	now    func() time.Time
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders repository.OrderStore, movies repository.MovieStore) *OrderService {
	return &OrderService{orders: orders, movies: movies, now: time.Now}
}

// CreateOrder opens a PENDING order for a paid movie. An existing PENDING
// order for the same user and movie is returned instead of creating another.
// Checks run in this order: movie exists, movie is paid, pending order,
// active entitlement, amount equals price. A pending order at a stale price is
// cancelled only when the replacement is created.
func (s *OrderService) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.OrderResult, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}

	movie, err := s.movies.GetMovie(ctx, req.MovieID)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("movie %d", req.MovieID))
	}
	if movie.IsFree {
		return nil, invalidState("movie %d is free and cannot be ordered", movie.ID)
	}
	price := roundCents(movie.PriceValue())

	var result *models.OrderResult
	err = s.orders.WithinTx(ctx, func(tx repository.OrderStore) error {
		if err := tx.LockPurchase(ctx, req.UserID, req.MovieID); err != nil {
			return err
		}

		// A pending order opened at an older price is replaced once the new
		// order passes every check.
		var stale *models.Order
		pending, err := tx.FindPendingOrder(ctx, req.UserID, req.MovieID)
		switch {
		case err == nil && sameAmount(pending.Amount, price):
			result = &models.OrderResult{Order: pending, Existing: true}
			return nil
		case err == nil:
			stale = pending
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}

		ent, err := tx.FindActiveEntitlement(ctx, req.UserID, req.MovieID, s.now())
		if err == nil {
			return conflict("user %d already has access to movie %d until %s",
				req.UserID, req.MovieID, ent.ExpiredAt.UTC().Format(time.RFC3339))
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if !sameAmount(req.Amount, price) {
			return invalidArgument("amount %.2f does not match price %.2f", req.Amount, price)
		}

		if stale != nil {
			if err := tx.UpdateOrderStatus(ctx, stale.ID, models.OrderCancelled, nil); err != nil {
				return err
			}
			slog.Info("stale pending order cancelled", "order_id", stale.ID, "amount", stale.Amount, "price", price)
		}

		order := &models.Order{
			OrderNo: uuid.NewString(),
			UserID:  req.UserID,
			MovieID: req.MovieID,
			Amount:  price,
			Status:  models.OrderPending,
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		result = &models.OrderResult{Order: order}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Existing {
		slog.Info("order created", "order_id", result.Order.ID, "user_id", req.UserID, "movie_id", req.MovieID)
	}
	return result, nil
}

// PayOrder marks a PENDING order as PAID and grants a 24 hour entitlement.
// If the movie became free or changed price since the order was opened, the
// order is cancelled and ErrInvalidState is returned.
func (s *OrderService) PayOrder(ctx context.Context, caller Caller, orderID int64) (*models.Order, error) {
	var paid *models.Order
	var drift error

	err := s.orders.WithinTx(ctx, func(tx repository.OrderStore) error {
		order, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return storeErr(err, fmt.Sprintf("order %d", orderID))
		}
		if err := caller.Authorize(order.UserID); err != nil {
			return err
		}
		if err := tx.LockPurchase(ctx, order.UserID, order.MovieID); err != nil {
			return err
		}

		// Re-read under the row lock; a concurrent payment may have won.
		order, err = tx.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return storeErr(err, fmt.Sprintf("order %d", orderID))
		}
		if order.Status != models.OrderPending {
			return invalidState("order %d is %s", orderID, order.Status)
		}

		movie, err := s.movies.GetMovie(ctx, order.MovieID)
		if err != nil {
			return storeErr(err, fmt.Sprintf("movie %d", order.MovieID))
		}
		if movie.IsFree || !sameAmount(order.Amount, movie.PriceValue()) {
			drift = invalidState("price of movie %d changed since order %d was created", movie.ID, orderID)
			return tx.UpdateOrderStatus(ctx, orderID, models.OrderCancelled, nil)
		}

		paidAt := s.now()
		ent := &models.Entitlement{
			UserID:    order.UserID,
			MovieID:   order.MovieID,
			OrderID:   order.ID,
			CreatedAt: paidAt,
			ExpiredAt: paidAt.Add(models.EntitlementWindow),
		}
		if err := tx.CreateEntitlement(ctx, ent); err != nil {
			return err
		}
		if err := tx.UpdateOrderStatus(ctx, orderID, models.OrderPaid, &paidAt); err != nil {
			return err
		}

		order.Status = models.OrderPaid
		order.PaidAt = &paidAt
		paid = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	if drift != nil {
		return nil, drift
	}

	slog.Info("order paid", "order_id", paid.ID, "user_id", paid.UserID, "movie_id", paid.MovieID)
	return paid, nil
}

// CancelOrder moves a PENDING order to CANCELLED.
func (s *OrderService) CancelOrder(ctx context.Context, caller Caller, orderID int64) (*models.Order, error) {
	var cancelled *models.Order
	err := s.orders.WithinTx(ctx, func(tx repository.OrderStore) error {
		order, err := tx.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return storeErr(err, fmt.Sprintf("order %d", orderID))
		}
		if err := caller.Authorize(order.UserID); err != nil {
			return err
		}
		if order.Status != models.OrderPending {
			return invalidState("order %d is %s", orderID, order.Status)
		}
		if err := tx.UpdateOrderStatus(ctx, orderID, models.OrderCancelled, nil); err != nil {
			return err
		}
		order.Status = models.OrderCancelled
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// CheckPurchaseStatus reports whether the user may watch the movie now.
func (s *OrderService) CheckPurchaseStatus(ctx context.Context, userID, movieID int64) (*models.PurchaseStatus, error) {
	movie, err := s.movies.GetMovie(ctx, movieID)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("movie %d", movieID))
	}

	status := &models.PurchaseStatus{MovieID: movieID}
	if movie.IsFree {
		status.Purchased = true
		status.Free = true
		return status, nil
	}

	ent, err := s.orders.FindActiveEntitlement(ctx, userID, movieID, s.now())
	switch {
	case err == nil:
		status.Purchased = true
		status.ExpiredAt = &ent.ExpiredAt
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to check entitlement: %w", err)
	}
	return status, nil
}

// GetOrder returns one order visible to the caller.
func (s *OrderService) GetOrder(ctx context.Context, caller Caller, orderID int64) (*models.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, storeErr(err, fmt.Sprintf("order %d", orderID))
	}
	if err := caller.Authorize(order.UserID); err != nil {
		return nil, err
	}
	return order, nil
}

// ListUserOrders returns a user's orders, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	orders, err := s.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListOrders returns every order, newest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListActiveEntitlements returns a user's unexpired entitlements.
func (s *OrderService) ListActiveEntitlements(ctx context.Context, userID int64) ([]models.Entitlement, error) {
	items, err := s.orders.ListActiveEntitlements(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list entitlements: %w", err)
	}
	return items, nil
}

// SweepExpiredEntitlements deletes entitlements that have expired.
func (s *OrderService) SweepExpiredEntitlements(ctx context.Context) (int64, error) {
	var n int64
	err := s.orders.WithinTx(ctx, func(tx repository.OrderStore) error {
		var err error
		n, err = tx.DeleteExpiredEntitlements(ctx, s.now())
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to sweep entitlements: %w", err)
	}
	return n, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func sameAmount(a, b float64) bool {
	return math.Round(a*100) == math.Round(b*100)
}
