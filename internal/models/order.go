package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderCancelled OrderStatus = "CANCELLED"
)

// EntitlementWindow is how long a paid movie stays watchable.
const EntitlementWindow = 24 * time.Hour

// Order is one purchase attempt for a paid movie.
type Order struct {
	ID        int64       `json:"id"`
	OrderNo   string      `json:"orderNo"`
	UserID    int64       `json:"userId"`
	MovieID   int64       `json:"movieId"`
	Amount    float64     `json:"amount"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	PaidAt    *time.Time  `json:"paidAt"`
}

// Entitlement grants access to a paid movie until ExpiredAt.
type Entitlement struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	MovieID   int64     `json:"movieId"`
	OrderID   int64     `json:"orderId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiredAt time.Time `json:"expiredAt"`
}

// ActiveAt reports whether the entitlement is still valid at now.
func (e *Entitlement) ActiveAt(now time.Time) bool {
	return now.Before(e.ExpiredAt)
}

// CreateOrderRequest is the request body for creating an order.
type CreateOrderRequest struct {
	UserID  int64   `json:"userId" validate:"gt=0"`
	MovieID int64   `json:"movieId" validate:"gt=0"`
	Amount  float64 `json:"amount"`
}

// OrderResult wraps an order with whether it already existed.
type OrderResult struct {
	Order    *Order `json:"order"`
	Existing bool   `json:"existing"`
}

// PurchaseStatus is the response for a purchase check.
type PurchaseStatus struct {
	MovieID   int64      `json:"movieId"`
	Purchased bool       `json:"purchased"`
	Free      bool       `json:"free"`
	ExpiredAt *time.Time `json:"expiredAt,omitempty"`
}
