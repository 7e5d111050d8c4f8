package memory

import (
	"context"
	"slices"
	"time"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository"
)

// txStore is the OrderStore handed to WithinTx callbacks. The outer txMu is
// already held, so nested WithinTx calls run inline.
type txStore struct {
	*Store
}

func (t txStore) WithinTx(_ context.Context, fn func(repository.OrderStore) error) error {
	return fn(t)
}

// WithinTx runs fn while holding the store-wide transaction lock. Order and
// entitlement writes made by fn are rolled back when it returns an error.
func (s *Store) WithinTx(_ context.Context, fn func(repository.OrderStore) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	orders := cloneRows(s.orders, cloneOrder)
	entitlements := cloneRows(s.entitlements, cloneEntitlement)
	s.mu.RUnlock()

	if err := fn(txStore{s}); err != nil {
		s.mu.Lock()
		s.orders = orders
		s.entitlements = entitlements
		s.mu.Unlock()
		return err
	}
	return nil
}

func cloneRows[T any](rows map[int64]*T, clone func(*T) *T) map[int64]*T {
	out := make(map[int64]*T, len(rows))
	for id, r := range rows {
		out[id] = clone(r)
	}
	return out
}

// LockPurchase is a no-op; WithinTx already serializes purchase flows.
func (s *Store) LockPurchase(_ context.Context, _, _ int64) error {
	return nil
}

func cloneOrder(o *models.Order) *models.Order {
	c := *o
	c.PaidAt = ptrCopy(o.PaidAt)
	return &c
}

func orderID(o *models.Order) int64 { return o.ID }

// GetOrder returns an order by id.
func (s *Store) GetOrder(_ context.Context, id int64) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneOrder(o), nil
}

// GetOrderForUpdate returns an order by id.
func (s *Store) GetOrderForUpdate(ctx context.Context, id int64) (*models.Order, error) {
	return s.GetOrder(ctx, id)
}

// FindPendingOrder returns the oldest PENDING order for the pair.
func (s *Store) FindPendingOrder(_ context.Context, userID, movieID int64) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range sortedByID(s.orders, orderID, cloneOrder) {
		if o.UserID == userID && o.MovieID == movieID && o.Status == models.OrderPending {
			return &o, nil
		}
	}
	return nil, repository.ErrNotFound
}

// CreateOrder stores a new order.
func (s *Store) CreateOrder(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = s.id()
	o.CreatedAt = time.Now()
	s.orders[o.ID] = cloneOrder(o)
	return nil
}

// UpdateOrderStatus sets the status and payment time of an order.
func (s *Store) UpdateOrderStatus(_ context.Context, id int64, status models.OrderStatus, paidAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.Status = status
	o.PaidAt = ptrCopy(paidAt)
	return nil
}

// ListOrdersByUser returns a user's orders, newest first.
func (s *Store) ListOrdersByUser(_ context.Context, userID int64) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, 0)
	for _, o := range newestOrdersFirst(s.orders) {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// ListOrders returns every order, newest first.
func (s *Store) ListOrders(_ context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestOrdersFirst(s.orders), nil
}

func newestOrdersFirst(rows map[int64]*models.Order) []models.Order {
	out := sortedByID(rows, orderID, cloneOrder)
	slices.Reverse(out)
	return out
}

func entitlementID(e *models.Entitlement) int64 { return e.ID }

func cloneEntitlement(e *models.Entitlement) *models.Entitlement {
	c := *e
	return &c
}

// FindActiveEntitlement returns the latest-expiring entitlement for the pair
// that is still valid at now.
func (s *Store) FindActiveEntitlement(_ context.Context, userID, movieID int64, now time.Time) (*models.Entitlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var best *models.Entitlement
	for _, e := range s.entitlements {
		if e.UserID != userID || e.MovieID != movieID || !e.ActiveAt(now) {
			continue
		}
		if best == nil || e.ExpiredAt.After(best.ExpiredAt) {
			best = e
		}
	}
	if best == nil {
		return nil, repository.ErrNotFound
	}
	return cloneEntitlement(best), nil
}

// CreateEntitlement stores a new entitlement.
func (s *Store) CreateEntitlement(_ context.Context, e *models.Entitlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.id()
	s.entitlements[e.ID] = cloneEntitlement(e)
	return nil
}

// ListActiveEntitlements returns a user's unexpired entitlements, soonest expiry first.
func (s *Store) ListActiveEntitlements(_ context.Context, userID int64, now time.Time) ([]models.Entitlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Entitlement, 0)
	for _, e := range sortedByID(s.entitlements, entitlementID, cloneEntitlement) {
		if e.UserID == userID && e.ActiveAt(now) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Entitlement) int { return a.ExpiredAt.Compare(b.ExpiredAt) })
	return out, nil
}

// DeleteExpiredEntitlements purges entitlements with ExpiredAt <= now.
func (s *Store) DeleteExpiredEntitlements(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, e := range s.entitlements {
		if !e.ActiveAt(now) {
			delete(s.entitlements, id)
			n++
		}
	}
	return n, nil
}

