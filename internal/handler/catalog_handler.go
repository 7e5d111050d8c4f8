package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/service"
)

// LookupHandler serves one id/name lookup such as categories or regions.
type LookupHandler struct {
	svc *service.LookupService
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(svc *service.LookupService) *LookupHandler {
	return &LookupHandler{svc: svc}
}

// List returns every entry in id order.
func (h *LookupHandler) List(c fiber.Ctx) error {
	items, err := h.svc.List(c.Context())
	if err != nil {
		return err
	}
	return ok(c, items)
}

// Get returns one entry.
func (h *LookupHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	n, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return ok(c, n)
}

// Create adds an entry. Names are unique.
func (h *LookupHandler) Create(c fiber.Ctx) error {
	var req models.NamedRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	n, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return err
	}
	return created(c, n)
}

// Update renames an entry.
func (h *LookupHandler) Update(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req models.NamedRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	n, err := h.svc.Update(c.Context(), id, req)
	if err != nil {
		return err
	}
	return ok(c, n)
}

// Delete removes an entry.
func (h *LookupHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return err
	}
	return ok(c, nil)
}

// CarouselHandler serves home page banners.
type CarouselHandler struct {
	svc *service.CarouselService
}

// NewCarouselHandler creates a new CarouselHandler.
func NewCarouselHandler(svc *service.CarouselService) *CarouselHandler {
	return &CarouselHandler{svc: svc}
}

// List returns the carousels in display order.
func (h *CarouselHandler) List(c fiber.Ctx) error {
	items, err := h.svc.List(c.Context())
	if err != nil {
		return err
	}
	return ok(c, items)
}

// Get returns one carousel.
func (h *CarouselHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return ok(c, item)
}

// Create adds a carousel.
func (h *CarouselHandler) Create(c fiber.Ctx) error {
	var req models.CarouselRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	item, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return err
	}
	return created(c, item)
}

// Update replaces a carousel.
func (h *CarouselHandler) Update(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req models.CarouselRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	item, err := h.svc.Update(c.Context(), id, req)
	if err != nil {
		return err
	}
	return ok(c, item)
}

// Delete removes a carousel.
func (h *CarouselHandler) Delete(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return err
	}
	return ok(c, nil)
}
