package models

// RecommendFilter narrows the recommendation output. Nil fields are ignored.
type RecommendFilter struct {
	Category *string  `json:"category"`
	RegionID *int64   `json:"regionId"`
	Year     *int     `json:"year"`
	MaxPrice *float64 `json:"maxPrice"`
}

// Matches reports whether m passes every set criterion.
func (f RecommendFilter) Matches(m *Movie) bool {
	if f.Category != nil && !m.HasCategory(*f.Category) {
		return false
	}
	if f.RegionID != nil && (m.RegionID == nil || *m.RegionID != *f.RegionID) {
		return false
	}
	if f.Year != nil && m.Year != *f.Year {
		return false
	}
	if f.MaxPrice != nil && (m.Price == nil || *m.Price > *f.MaxPrice) {
		return false
	}
	return true
}
