package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/service"
)

// OrderHandler handles the purchase flow.
type OrderHandler struct {
	svc *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// CreateOrder opens a PENDING order, or returns the caller's existing one.
// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Param body body models.CreateOrderRequest true "Order"
// @Success 200 {object} models.Response{data=models.OrderResult} "existing pending order"
// @Success 201 {object} models.Response{data=models.OrderResult} "new order"
// @Failure 400 {object} models.Response
// @Failure 404 {object} models.Response
// @Failure 409 {object} models.Response
// @Security BearerAuth
// @Router /api/orders [post]
func (h *OrderHandler) CreateOrder(c fiber.Ctx) error {
	var req models.CreateOrderRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	uid, err := userIDOrSelf(c, req.UserID)
	if err != nil {
		return err
	}
	req.UserID = uid

	res, err := h.svc.CreateOrder(c.Context(), req)
	if err != nil {
		return err
	}
	if res.Existing {
		return ok(c, res)
	}
	return created(c, res)
}

// PayOrder settles a PENDING order and grants 24 hours of access.
// @Summary Pay order
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 400 {object} models.Response
// @Failure 404 {object} models.Response
// @Security BearerAuth
// @Router /api/orders/{id}/pay [post]
func (h *OrderHandler) PayOrder(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.svc.PayOrder(c.Context(), callerOf(c), id)
	if err != nil {
		return err
	}
	return ok(c, order)
}

// CancelOrder abandons a PENDING order.
// @Summary Cancel order
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 400 {object} models.Response
// @Failure 404 {object} models.Response
// @Security BearerAuth
// @Router /api/orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.svc.CancelOrder(c.Context(), callerOf(c), id)
	if err != nil {
		return err
	}
	return ok(c, order)
}

// GetOrder returns one order owned by the caller, or any order for an admin.
// @Summary Get order
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Security BearerAuth
// @Router /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.svc.GetOrder(c.Context(), callerOf(c), id)
	if err != nil {
		return err
	}
	return ok(c, order)
}

// CheckPurchase reports whether a user may watch a movie now.
// @Summary Check purchase status
// @Tags orders
// @Produce json
// @Param userId query int false "User ID, defaults to the caller"
// @Param movieId query int true "Movie ID"
// @Success 200 {object} models.Response{data=models.PurchaseStatus}
// @Failure 404 {object} models.Response
// @Security BearerAuth
// @Router /api/orders/check [get]
func (h *OrderHandler) CheckPurchase(c fiber.Ctx) error {
	uid, err := userIDOrSelf(c, fiber.Query[int64](c, "userId"))
	if err != nil {
		return err
	}
	movieID, err := queryID(c, "movieId")
	if err != nil {
		return err
	}
	status, err := h.svc.CheckPurchaseStatus(c.Context(), uid, movieID)
	if err != nil {
		return err
	}
	return ok(c, status)
}

// ListUserOrders returns a user's orders, newest first.
// @Summary List user orders
// @Tags orders
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} models.Response{data=[]models.Order}
// @Failure 403 {object} models.Response
// @Security BearerAuth
// @Router /api/orders/user/{userId} [get]
func (h *OrderHandler) ListUserOrders(c fiber.Ctx) error {
	uid, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	if err := ownerOrAdmin(c, uid); err != nil {
		return err
	}
	orders, err := h.svc.ListUserOrders(c.Context(), uid)
	if err != nil {
		return err
	}
	return ok(c, orders)
}

// ListEntitlements returns a user's unexpired entitlements.
// @Summary List active entitlements
// @Tags orders
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} models.Response{data=[]models.Entitlement}
// @Failure 403 {object} models.Response
// @Security BearerAuth
// @Router /api/orders/entitlements/{userId} [get]
func (h *OrderHandler) ListEntitlements(c fiber.Ctx) error {
	uid, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	if err := ownerOrAdmin(c, uid); err != nil {
		return err
	}
	items, err := h.svc.ListActiveEntitlements(c.Context(), uid)
	if err != nil {
		return err
	}
	return ok(c, items)
}

// ListOrders returns every order, newest first.
// @Summary List all orders
// @Tags orders
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Order}
// @Failure 403 {object} models.Response
// @Security BearerAuth
// @Router /api/orders [get]
func (h *OrderHandler) ListOrders(c fiber.Ctx) error {
	orders, err := h.svc.ListOrders(c.Context())
	if err != nil {
		return err
	}
	return ok(c, orders)
}
