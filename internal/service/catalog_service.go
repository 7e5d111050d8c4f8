package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository"
)

// LookupService manages one id/name lookup such as categories or regions.
type LookupService struct {
	repo  repository.NamedStore
	label string
}

// NewLookupService creates a LookupService. label names the entity in errors.
func NewLookupService(repo repository.NamedStore, label string) *LookupService {
	return &LookupService{repo: repo, label: label}
}

// List returns all rows.
func (s *LookupService) List(ctx context.Context) ([]models.Named, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", s.label, err)
	}
	return items, nil
}

// Get returns one row.
func (s *LookupService) Get(ctx context.Context, id int64) (*models.Named, error) {
	n, err := s.repo.Get(ctx, id)
	return n, storeErr(err, fmt.Sprintf("%s %d", s.label, id))
}

// Create adds a row.
func (s *LookupService) Create(ctx context.Context, req models.NamedRequest) (*models.Named, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(&req); err != nil {
		return nil, err
	}
	n, err := s.repo.Create(ctx, req.Name)
	return n, storeErr(err, fmt.Sprintf("%s %q", s.label, req.Name))
}

// Update renames a row.
func (s *LookupService) Update(ctx context.Context, id int64, req models.NamedRequest) (*models.Named, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(&req); err != nil {
		return nil, err
	}
	n, err := s.repo.Update(ctx, id, req.Name)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, conflict("%s %q already exists", s.label, req.Name)
	}
	return n, storeErr(err, fmt.Sprintf("%s %d", s.label, id))
}

// Delete removes a row.
func (s *LookupService) Delete(ctx context.Context, id int64) error {
	return storeErr(s.repo.Delete(ctx, id), fmt.Sprintf("%s %d", s.label, id))
}

// CarouselService manages home page banners.
type CarouselService struct {
	repo   repository.CarouselStore
	movies repository.MovieStore
}

// NewCarouselService creates a CarouselService.
func NewCarouselService(repo repository.CarouselStore, movies repository.MovieStore) *CarouselService {
	return &CarouselService{repo: repo, movies: movies}
}

// List returns banners in display order.
func (s *CarouselService) List(ctx context.Context) ([]models.Carousel, error) {
	items, err := s.repo.ListCarousels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list carousels: %w", err)
	}
	return items, nil
}

// Get returns one banner.
func (s *CarouselService) Get(ctx context.Context, id int64) (*models.Carousel, error) {
	c, err := s.repo.GetCarousel(ctx, id)
	return c, storeErr(err, fmt.Sprintf("carousel %d", id))
}

// Create adds a banner.
func (s *CarouselService) Create(ctx context.Context, req models.CarouselRequest) (*models.Carousel, error) {
	c, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateCarousel(ctx, c); err != nil {
		return nil, storeErr(err, "carousel")
	}
	return c, nil
}

// Update replaces a banner.
func (s *CarouselService) Update(ctx context.Context, id int64, req models.CarouselRequest) (*models.Carousel, error) {
	c, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	c.ID = id
	if err := s.repo.UpdateCarousel(ctx, c); err != nil {
		return nil, storeErr(err, fmt.Sprintf("carousel %d", id))
	}
	return c, nil
}

// Delete removes a banner.
func (s *CarouselService) Delete(ctx context.Context, id int64) error {
	return storeErr(s.repo.DeleteCarousel(ctx, id), fmt.Sprintf("carousel %d", id))
}

func (s *CarouselService) build(ctx context.Context, req models.CarouselRequest) (*models.Carousel, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.ImageURL = strings.TrimSpace(req.ImageURL)
	if err := validate(&req); err != nil {
		return nil, err
	}
	if req.MovieID != nil {
		if _, err := s.movies.GetMovie(ctx, *req.MovieID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, invalidArgument("movie %d does not exist", *req.MovieID)
			}
			return nil, fmt.Errorf("failed to check movie: %w", err)
		}
	}
	return &models.Carousel{
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		MovieID:   req.MovieID,
		SortOrder: req.SortOrder,
	}, nil
}
