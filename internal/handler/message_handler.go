package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/service"
)

// MessageHandler handles user feedback.
type MessageHandler struct {
	svc *service.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(svc *service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

type statusRequest struct {
	Status string `json:"status"`
}

// Create stores a feedback message.
// @Summary Send feedback
// @Tags messages
// @Accept json
// @Produce json
// @Param body body models.CreateMessageRequest true "Message"
// @Success 201 {object} models.Response{data=models.Message}
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Security BearerAuth
// @Router /api/messages [post]
func (h *MessageHandler) Create(c fiber.Ctx) error {
	var req models.CreateMessageRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	uid, err := userIDOrSelf(c, req.UserID)
	if err != nil {
		return err
	}
	req.UserID = uid

	m, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return err
	}
	return created(c, m)
}

// ListByUser returns a user's messages, newest first.
// @Summary List user messages
// @Tags messages
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} models.Response{data=[]models.Message}
// @Failure 403 {object} models.Response
// @Security BearerAuth
// @Router /api/messages/user/{userId} [get]
func (h *MessageHandler) ListByUser(c fiber.Ctx) error {
	uid, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	if err := ownerOrAdmin(c, uid); err != nil {
		return err
	}
	items, err := h.svc.ListByUser(c.Context(), uid)
	if err != nil {
		return err
	}
	return ok(c, items)
}

// ListAll returns every message, newest first.
// @Summary List all messages
// @Tags messages
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Message}
// @Failure 403 {object} models.Response
// @Security BearerAuth
// @Router /api/messages/admin/all [get]
func (h *MessageHandler) ListAll(c fiber.Ctx) error {
	items, err := h.svc.ListAll(c.Context())
	if err != nil {
		return err
	}
	return ok(c, items)
}

// UpdateStatus moves a message through its workflow.
// @Summary Update message status
// @Tags messages
// @Accept json
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} models.Response{data=models.Message}
// @Failure 400 {object} models.Response
// @Failure 404 {object} models.Response
// @Security BearerAuth
// @Router /api/messages/{id}/status [put]
func (h *MessageHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req statusRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	m, err := h.svc.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		return err
	}
	return ok(c, m)
}

// Delete removes a message.
// @Summary Delete message
// @Tags messages
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.Response
// @Security BearerAuth
// @Router /api/messages/{id} [delete]
func (h *MessageHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return err
	}
	return ok(c, nil)
}
