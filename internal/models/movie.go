package models

import "time"

// Movie is a catalog entry. Categories and actors are ordered tag lists.
type Movie struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Cover      string    `json:"cover"`
	Categories []string  `json:"categories"`
	RegionID   *int64    `json:"regionId"`
	Year       int       `json:"year"`
	Duration   int       `json:"duration"`
	Rating     *float64  `json:"rating"`
	IsFree     bool      `json:"isFree"`
	Price      *float64  `json:"price"`
	Actors     []string  `json:"actors"`
	TrailerURL string    `json:"trailerUrl"`
	PlayCount  int       `json:"playCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// RatingValue returns the rating, treating a missing rating as 0.
func (m *Movie) RatingValue() float64 {
	if m.Rating == nil {
		return 0
	}
	return *m.Rating
}

// PriceValue returns the listed price, treating a missing price as 0.
func (m *Movie) PriceValue() float64 {
	if m.Price == nil {
		return 0
	}
	return *m.Price
}

// HasCategory reports whether tag is one of the movie's categories.
func (m *Movie) HasCategory(tag string) bool {
	for _, c := range m.Categories {
		if c == tag {
			return true
		}
	}
	return false
}

// MovieRequest is the request body for creating or replacing a movie.
type MovieRequest struct {
	Title      string   `json:"title" validate:"required,max=255"`
	Cover      string   `json:"cover"`
	Categories []string `json:"categories" validate:"dive,required"`
	RegionID   *int64   `json:"regionId" validate:"omitempty,gt=0"`
	Year       int      `json:"year" validate:"gt=0"`
	Duration   int      `json:"duration" validate:"gt=0"`
	Rating     *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
	IsFree     bool     `json:"isFree"`
	Price      *float64 `json:"price"`
	Actors     []string `json:"actors"`
	TrailerURL string   `json:"trailerUrl" validate:"omitempty,url"`
}
