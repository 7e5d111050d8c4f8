package models

import "time"

// Named is an operator-managed id/name lookup row.
type Named struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Category is a movie category.
type Category = Named

// Region is a production region.
type Region = Named

// NamedRequest is the request body shared by categories and regions.
type NamedRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// Carousel is a home page banner.
type Carousel struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"imageUrl"`
	MovieID   *int64    `json:"movieId"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

// CarouselRequest is the request body for creating or replacing a carousel.
type CarouselRequest struct {
	Title     string `json:"title" validate:"required,max=255"`
	ImageURL  string `json:"imageUrl" validate:"required"`
	MovieID   *int64 `json:"movieId" validate:"omitempty,gt=0"`
	SortOrder int    `json:"sortOrder"`
}
