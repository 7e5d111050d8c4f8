package models

import (
	"slices"
	"time"
)

// Collection is a named list of movies owned by a user.
type Collection struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	MovieIDs  []int64   `json:"movieIds"`
	CreatedAt time.Time `json:"createdAt"`
}

// Contains reports whether movieID is in the collection.
func (c *Collection) Contains(movieID int64) bool {
	return slices.Contains(c.MovieIDs, movieID)
}

// CreateCollectionRequest is the request body for creating a collection.
type CreateCollectionRequest struct {
	UserID   int64   `json:"userId" validate:"gt=0"`
	Name     string  `json:"name" validate:"required,max=100"`
	MovieIDs []int64 `json:"movieIds" validate:"dive,gt=0"`
}

// UpdateCollectionRequest replaces the name and/or movie list when set.
type UpdateCollectionRequest struct {
	Name     *string  `json:"name"`
	MovieIDs *[]int64 `json:"movieIds"`
}
