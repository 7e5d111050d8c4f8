package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-streaming-service/internal/service"
)

// StatisticsHandler serves the admin dashboards.
type StatisticsHandler struct {
	svc *service.StatisticsService
}

// NewStatisticsHandler creates a new StatisticsHandler.
func NewStatisticsHandler(svc *service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{svc: svc}
}

// Overview returns the headline counters.
// @Summary Statistics overview
// @Tags statistics
// @Produce json
// @Success 200 {object} models.Response{data=models.Overview}
// @Failure 403 {object} models.Response
// @Security BearerAuth
// @Router /api/statistics/overview [get]
func (h *StatisticsHandler) Overview(c fiber.Ctx) error {
	out, err := h.svc.Overview(c.Context())
	if err != nil {
		return err
	}
	return ok(c, out)
}

// Sales returns paid amounts per day for the last 30 days.
// @Summary Daily sales
// @Tags statistics
// @Produce json
// @Success 200 {object} models.Response{data=[]models.DailySales}
// @Failure 403 {object} models.Response
// @Security BearerAuth
// @Router /api/statistics/sales [get]
func (h *StatisticsHandler) Sales(c fiber.Ctx) error {
	out, err := h.svc.Sales(c.Context())
	if err != nil {
		return err
	}
	return ok(c, out)
}

// MovieInteractions returns the ten most liked movies.
// @Summary Top liked movies
// @Tags statistics
// @Produce json
// @Success 200 {object} models.Response{data=[]models.MovieLikes}
// @Failure 403 {object} models.Response
// @Security BearerAuth
// @Router /api/statistics/movie-interactions [get]
func (h *StatisticsHandler) MovieInteractions(c fiber.Ctx) error {
	out, err := h.svc.TopLiked(c.Context())
	if err != nil {
		return err
	}
	return ok(c, out)
}

// UserPreferences returns category counts per profession.
// @Summary Preferences by profession
// @Tags statistics
// @Produce json
// @Success 200 {object} models.Response{data=[]models.ProfessionPreference}
// @Failure 403 {object} models.Response
// @Security BearerAuth
// @Router /api/statistics/user-preferences [get]
func (h *StatisticsHandler) UserPreferences(c fiber.Ctx) error {
	out, err := h.svc.UserPreferences(c.Context())
	if err != nil {
		return err
	}
	return ok(c, out)
}
