package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/service"
)

// MovieHandler handles HTTP requests for the movie catalog.
type MovieHandler struct {
	svc *service.MovieService
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(svc *service.MovieService) *MovieHandler {
	return &MovieHandler{svc: svc}
}

// ListMovies returns the whole catalog.
// @Summary List movies
// @Tags movies
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Movie}
// @Router /api/movies [get]
func (h *MovieHandler) ListMovies(c fiber.Ctx) error {
	movies, err := h.svc.ListMovies(c.Context())
	if err != nil {
		return err
	}
	return ok(c, movies)
}

// GetMovie returns one movie.
// @Summary Get movie
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} models.Response{data=models.Movie}
// @Failure 404 {object} models.Response
// @Router /api/movies/{id} [get]
func (h *MovieHandler) GetMovie(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	m, err := h.svc.GetMovie(c.Context(), id)
	if err != nil {
		return err
	}
	return ok(c, m)
}

// CreateMovie adds a movie.
// @Summary Create movie
// @Tags movies
// @Accept json
// @Produce json
// @Param body body models.MovieRequest true "Movie"
// @Success 201 {object} models.Response{data=models.Movie}
// @Failure 400 {object} models.Response
// @Security BearerAuth
// @Router /api/movies [post]
func (h *MovieHandler) CreateMovie(c fiber.Ctx) error {
	var req models.MovieRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	m, err := h.svc.CreateMovie(c.Context(), req)
	if err != nil {
		return err
	}
	return created(c, m)
}

// UpdateMovie replaces a movie.
func (h *MovieHandler) UpdateMovie(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req models.MovieRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	m, err := h.svc.UpdateMovie(c.Context(), id, req)
	if err != nil {
		return err
	}
	return ok(c, m)
}

// DeleteMovie removes a movie.
func (h *MovieHandler) DeleteMovie(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteMovie(c.Context(), id); err != nil {
		return err
	}
	return ok(c, nil)
}

// ImportFromTMDB pulls popular titles from TMDB into the catalog.
// @Summary Import movies from TMDB
// @Tags admin
// @Produce json
// @Param pages query int false "Number of pages to import" default(5)
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response
// @Security BearerAuth
// @Router /api/admin/tmdb/import [post]
func (h *MovieHandler) ImportFromTMDB(c fiber.Ctx) error {
	pages := min(max(fiber.Query(c, "pages", 5), 1), 50)

	count, err := h.svc.ImportFromTMDB(c.Context(), pages)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{
		"moviesImported": count,
		"pages":          pages,
	})
}
