package models

// Overview holds headline counters.
type Overview struct {
	UserCount      int     `json:"userCount"`
	MovieCount     int     `json:"movieCount"`
	PaidOrderCount int     `json:"paidOrderCount"`
	Revenue        float64 `json:"revenue"`
}

// DailySales is the paid amount for one calendar day.
type DailySales struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Orders int     `json:"orders"`
}

// MovieLikes is a like counter for one movie.
type MovieLikes struct {
	MovieID int64  `json:"movieId"`
	Title   string `json:"title"`
	Likes   int    `json:"likes"`
}

// ProfessionPreference counts category tags for one profession.
type ProfessionPreference struct {
	Job         string         `json:"job"`
	Preferences map[string]int `json:"preferences"`
}
