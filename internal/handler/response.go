package handler

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"movie-streaming-service/internal/middleware"
	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/service"
	"movie-streaming-service/internal/validation"
)

// ErrorHandler renders every error as a Response envelope. Service error
// kinds map to 4xx statuses; anything unrecognised is logged and hidden
// behind a 500.
func ErrorHandler(c fiber.Ctx, err error) error {
	status := statusOf(err)
	resp := models.Response{Code: status, Message: err.Error()}

	var verr *validation.Error
	if errors.As(err, &verr) {
		resp.Data = verr.Fields
	}

	if status == fiber.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"error", err,
		)
		resp.Message = "internal server error"
	}
	return c.Status(status).JSON(resp)
}

func statusOf(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidArgument), errors.Is(err, service.ErrInvalidState):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

func ok(c fiber.Ctx, data any) error {
	return c.JSON(models.Response{Code: fiber.StatusOK, Data: data})
}

func created(c fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(models.Response{Code: fiber.StatusCreated, Data: data})
}

func badRequest(msg string) error {
	return fiber.NewError(fiber.StatusBadRequest, msg)
}

// pathID parses a positive integer path parameter.
func pathID(c fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("invalid " + name)
	}
	return id, nil
}

// queryID parses a positive integer query parameter.
func queryID(c fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("invalid or missing " + name)
	}
	return id, nil
}

func bindJSON(c fiber.Ctx, dst any) error {
	if err := c.Bind().JSON(dst); err != nil {
		return badRequest("invalid request body")
	}
	return nil
}

func callerOf(c fiber.Ctx) service.Caller {
	caller, _ := middleware.CallerFrom(c)
	return caller
}

// ownerOrAdmin allows the request when the caller is userID or an admin.
func ownerOrAdmin(c fiber.Ctx, userID int64) error {
	return callerOf(c).Authorize(userID)
}

// userIDOrSelf returns id, or the caller's id when id is unset, after
// checking that the caller may act for it.
func userIDOrSelf(c fiber.Ctx, id int64) (int64, error) {
	if id == 0 {
		id = callerOf(c).UserID
	}
	if err := ownerOrAdmin(c, id); err != nil {
		return 0, err
	}
	return id, nil
}
