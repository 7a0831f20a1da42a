package domain

// SearchResult is one row returned by the search_venues database function.
// Rank is the full-text rank computed server-side; rows arrive pre-sorted.
type SearchResult struct {
	ID           int64   `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Slug         string  `db:"slug" json:"slug"`
	Neighborhood *string `db:"neighborhood" json:"neighborhood,omitempty"`
	Rank         float64 `db:"rank" json:"rank"`
}

// NearbyVenue is one row returned by the nearby_venues database function.
type NearbyVenue struct {
	ID         int64   `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	Slug       string  `db:"slug" json:"slug"`
	CategoryID int64   `db:"category_id" json:"category_id"`
	DistanceM  float64 `db:"distance_m" json:"distance_m"`
}
