package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/service"
)

// RecommendationHandler handles recommendation requests.
type RecommendationHandler struct {
	svc *service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(svc *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

// Recommend returns movies for a user, best rated first.
// @Summary Get recommendations
// @Description Movies sharing a category with the ones the user liked or played,
// @Description or the whole catalog when there are none. The optional body narrows the result.
// @Tags recommend
// @Accept json
// @Produce json
// @Param userId query int false "User ID, defaults to the caller"
// @Param body body models.RecommendFilter false "Filter"
// @Success 200 {object} models.Response{data=[]models.Movie}
// @Security BearerAuth
// @Router /api/recommend [post]
func (h *RecommendationHandler) Recommend(c fiber.Ctx) error {
	uid, err := userIDOrSelf(c, fiber.Query[int64](c, "userId"))
	if err != nil {
		return err
	}

	var filter models.RecommendFilter
	if len(c.Body()) > 0 {
		if err := bindJSON(c, &filter); err != nil {
			return err
		}
	}

	movies, err := h.svc.Recommend(c.Context(), uid, filter)
	if err != nil {
		return err
	}
	return ok(c, movies)
}
