package models

import "time"

// Interaction is a user's like/rating/comment/play state for one movie.
type Interaction struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	MovieID   int64     `json:"movieId"`
	Liked     *bool     `json:"liked"`
	Rating    *int      `json:"rating"`
	Comment   *string   `json:"comment"`
	PlayCount int       `json:"playCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Engaged reports whether the user liked or played the movie.
func (i *Interaction) Engaged() bool {
	return (i.Liked != nil && *i.Liked) || i.PlayCount > 0
}

// InteractionPatch carries the fields a client wants to change. Nil means untouched.
type InteractionPatch struct {
	Liked   *bool   `json:"liked"`
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// Empty reports whether the patch changes nothing.
func (p InteractionPatch) Empty() bool {
	return p.Liked == nil && p.Rating == nil && p.Comment == nil
}
