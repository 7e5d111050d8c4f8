package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/service"
)

// CollectionHandler handles user movie collections.
type CollectionHandler struct {
	svc *service.CollectionService
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(svc *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{svc: svc}
}

type addMovieRequest struct {
	MovieID int64 `json:"movieId"`
}

// List returns a user's collections.
// @Summary List collections
// @Tags collections
// @Produce json
// @Param userId query int false "User ID, defaults to the caller"
// @Success 200 {object} models.Response{data=[]models.Collection}
// @Failure 403 {object} models.Response
// @Security BearerAuth
// @Router /api/collections [get]
func (h *CollectionHandler) List(c fiber.Ctx) error {
	uid, err := userIDOrSelf(c, fiber.Query[int64](c, "userId"))
	if err != nil {
		return err
	}
	items, err := h.svc.ListByUser(c.Context(), uid)
	if err != nil {
		return err
	}
	return ok(c, items)
}

// Check reports whether a movie is in any of the user's collections.
func (h *CollectionHandler) Check(c fiber.Ctx) error {
	uid, err := userIDOrSelf(c, fiber.Query[int64](c, "userId"))
	if err != nil {
		return err
	}
	movieID, err := queryID(c, "movieId")
	if err != nil {
		return err
	}
	in, err := h.svc.Check(c.Context(), uid, movieID)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{"movieId": movieID, "collected": in})
}

// ListMovies returns the movies of a collection in stored order.
// @Summary List collection movies
// @Tags collections
// @Produce json
// @Param id path int true "Collection ID"
// @Success 200 {object} models.Response{data=[]models.Movie}
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Security BearerAuth
// @Router /api/collections/{id}/movies [get]
func (h *CollectionHandler) ListMovies(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	movies, err := h.svc.ListMovies(c.Context(), callerOf(c), id)
	if err != nil {
		return err
	}
	return ok(c, movies)
}

// Create adds a collection.
// @Summary Create collection
// @Tags collections
// @Accept json
// @Produce json
// @Param body body models.CreateCollectionRequest true "Collection"
// @Success 201 {object} models.Response{data=models.Collection}
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Security BearerAuth
// @Router /api/collections [post]
func (h *CollectionHandler) Create(c fiber.Ctx) error {
	var req models.CreateCollectionRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	uid, err := userIDOrSelf(c, req.UserID)
	if err != nil {
		return err
	}
	req.UserID = uid

	col, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return err
	}
	return created(c, col)
}

// Update renames a collection and/or replaces its movies.
// @Summary Update collection
// @Tags collections
// @Accept json
// @Produce json
// @Param id path int true "Collection ID"
// @Param body body models.UpdateCollectionRequest true "Changes"
// @Success 200 {object} models.Response{data=models.Collection}
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Security BearerAuth
// @Router /api/collections/{id} [put]
func (h *CollectionHandler) Update(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdateCollectionRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	col, err := h.svc.Update(c.Context(), callerOf(c), id, req)
	if err != nil {
		return err
	}
	return ok(c, col)
}

// Delete removes a collection.
// @Summary Delete collection
// @Tags collections
// @Produce json
// @Param id path int true "Collection ID"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Security BearerAuth
// @Router /api/collections/{id} [delete]
func (h *CollectionHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Context(), callerOf(c), id); err != nil {
		return err
	}
	return ok(c, nil)
}

// AddMovie appends a movie to a collection.
// @Summary Add movie to collection
// @Tags collections
// @Accept json
// @Produce json
// @Param id path int true "Collection ID"
// @Success 200 {object} models.Response{data=models.Collection}
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Failure 409 {object} models.Response
// @Security BearerAuth
// @Router /api/collections/{id}/movies [post]
func (h *CollectionHandler) AddMovie(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req addMovieRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.MovieID <= 0 {
		return badRequest("movieId must be greater than 0")
	}
	col, err := h.svc.AddMovie(c.Context(), callerOf(c), id, req.MovieID)
	if err != nil {
		return err
	}
	return ok(c, col)
}

// RemoveMovie drops a movie from a collection.
// @Summary Remove movie from collection
// @Tags collections
// @Produce json
// @Param id path int true "Collection ID"
// @Param movieId path int true "Movie ID"
// @Success 200 {object} models.Response{data=models.Collection}
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Failure 404 {object} models.Response
// @Security BearerAuth
// @Router /api/collections/{id}/movies/{movieId} [delete]
func (h *CollectionHandler) RemoveMovie(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	movieID, err := pathID(c, "movieId")
	if err != nil {
		return err
	}
	col, err := h.svc.RemoveMovie(c.Context(), callerOf(c), id, movieID)
	if err != nil {
		return err
	}
	return ok(c, col)
}
