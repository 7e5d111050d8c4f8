package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/service"
)

// InteractionHandler handles likes, ratings, comments and plays.
type InteractionHandler struct {
	svc *service.InteractionService
}

// NewInteractionHandler creates a new InteractionHandler.
func NewInteractionHandler(svc *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{svc: svc}
}

// pair reads and authorizes the userId/movieId path parameters.
func (h *InteractionHandler) pair(c fiber.Ctx) (userID, movieID int64, err error) {
	if userID, err = pathID(c, "userId"); err != nil {
		return 0, 0, err
	}
	if movieID, err = pathID(c, "movieId"); err != nil {
		return 0, 0, err
	}
	if err = ownerOrAdmin(c, userID); err != nil {
		return 0, 0, err
	}
	return userID, movieID, nil
}

// GetInteraction returns the user's interaction with a movie, or null.
// @Summary Get interaction
// @Tags interactions
// @Produce json
// @Param userId path int true "User ID"
// @Param movieId path int true "Movie ID"
// @Success 200 {object} models.Response{data=models.Interaction}
// @Security BearerAuth
// @Router /api/movie-interactions/user/{userId}/movie/{movieId} [get]
func (h *InteractionHandler) GetInteraction(c fiber.Ctx) error {
	userID, movieID, err := h.pair(c)
	if err != nil {
		return err
	}
	i, err := h.svc.GetInteraction(c.Context(), userID, movieID)
	if err != nil {
		return err
	}
	return ok(c, i)
}

// UpsertInteraction applies the set fields of the body to the interaction.
// @Summary Update interaction
// @Tags interactions
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Param movieId path int true "Movie ID"
// @Param body body models.InteractionPatch true "Fields to change"
// @Success 200 {object} models.Response{data=models.Interaction}
// @Failure 400 {object} models.Response
// @Security BearerAuth
// @Router /api/movie-interactions/user/{userId}/movie/{movieId} [put]
func (h *InteractionHandler) UpsertInteraction(c fiber.Ctx) error {
	userID, movieID, err := h.pair(c)
	if err != nil {
		return err
	}
	var patch models.InteractionPatch
	if len(c.Body()) > 0 {
		if err := bindJSON(c, &patch); err != nil {
			return err
		}
	}
	i, err := h.svc.UpsertInteraction(c.Context(), userID, movieID, patch)
	if err != nil {
		return err
	}
	return ok(c, i)
}

// RecordPlay counts one play of the movie by the user.
// @Summary Record play
// @Tags interactions
// @Produce json
// @Param userId path int true "User ID"
// @Param movieId path int true "Movie ID"
// @Success 200 {object} models.Response{data=models.Interaction}
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Security BearerAuth
// @Router /api/movie-interactions/user/{userId}/movie/{movieId}/play [post]
func (h *InteractionHandler) RecordPlay(c fiber.Ctx) error {
	userID, movieID, err := h.pair(c)
	if err != nil {
		return err
	}
	i, err := h.svc.RecordPlay(c.Context(), userID, movieID)
	if err != nil {
		return err
	}
	return ok(c, i)
}

// ListComments returns the commented interactions of a movie.
// @Summary List movie comments
// @Tags interactions
// @Produce json
// @Param movieId path int true "Movie ID"
// @Success 200 {object} models.Response{data=[]models.Interaction}
// @Failure 404 {object} models.Response
// @Router /api/movie-interactions/movie/{movieId}/comments [get]
func (h *InteractionHandler) ListComments(c fiber.Ctx) error {
	movieID, err := pathID(c, "movieId")
	if err != nil {
		return err
	}
	items, err := h.svc.ListMovieComments(c.Context(), movieID)
	if err != nil {
		return err
	}
	return ok(c, items)
}
