package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/service"
)

// UserHandler handles authentication and account administration.
type UserHandler struct {
	svc *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Register creates an account and returns a session.
// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.RegisterRequest true "Account"
// @Success 201 {object} models.Response{data=models.AuthResponse}
// @Failure 400 {object} models.Response
// @Failure 409 {object} models.Response
// @Router /api/auth/register [post]
func (h *UserHandler) Register(c fiber.Ctx) error {
	var req models.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	res, err := h.svc.Register(c.Context(), req)
	if err != nil {
		return err
	}
	return created(c, res)
}

// Login exchanges credentials for a session.
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} models.Response{data=models.AuthResponse}
// @Failure 401 {object} models.Response
// @Router /api/auth/login [post]
func (h *UserHandler) Login(c fiber.Ctx) error {
	var req models.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	res, err := h.svc.Login(c.Context(), req)
	if err != nil {
		return err
	}
	return ok(c, res)
}

// ListUsers returns a page of accounts.
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(10)
// @Param username query string false "Username contains"
// @Param phone query string false "Phone contains"
// @Success 200 {object} models.Response{data=models.UserPage}
// @Router /api/users [get]
func (h *UserHandler) ListUsers(c fiber.Ctx) error {
	page, err := h.svc.ListUsers(c.Context(), models.UserListParams{
		Page:     fiber.Query(c, "page", 1),
		PageSize: fiber.Query(c, "pageSize", 10),
		Username: c.Query("username"),
		Phone:    c.Query("phone"),
	})
	if err != nil {
		return err
	}
	return ok(c, page)
}

// GetUser returns one account.
// @Summary Get user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Response{data=models.User}
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Security BearerAuth
// @Router /api/users/{id} [get]
func (h *UserHandler) GetUser(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	u, err := h.svc.GetUser(c.Context(), id)
	if err != nil {
		return err
	}
	return ok(c, u)
}

// CreateUser adds an account, optionally an admin.
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param body body models.UserRequest true "User"
// @Success 201 {object} models.Response{data=models.User}
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 409 {object} models.Response
// @Security BearerAuth
// @Router /api/users [post]
func (h *UserHandler) CreateUser(c fiber.Ctx) error {
	var req models.UserRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	u, err := h.svc.CreateUser(c.Context(), req)
	if err != nil {
		return err
	}
	return created(c, u)
}

// UpdateUser replaces an account. An empty password keeps the current one.
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body models.UserRequest true "User"
// @Success 200 {object} models.Response{data=models.User}
// @Failure 400 {object} models.Response
// @Failure 404 {object} models.Response
// @Failure 409 {object} models.Response
// @Security BearerAuth
// @Router /api/users/{id} [put]
func (h *UserHandler) UpdateUser(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req models.UserRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	u, err := h.svc.UpdateUser(c.Context(), id, req)
	if err != nil {
		return err
	}
	return ok(c, u)
}

// DeleteUser removes an account.
// @Summary Delete user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Security BearerAuth
// @Router /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteUser(c.Context(), id); err != nil {
		return err
	}
	return ok(c, nil)
}
