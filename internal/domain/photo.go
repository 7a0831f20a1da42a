package domain

type Photo struct {
	ID        int64   `db:"id" json:"id"`
	VenueID   int64   `db:"venue_id" json:"venue_id"`
	URL       string  `db:"url" json:"url"`
	Alt       *string `db:"alt" json:"alt,omitempty"`
	IsCover   bool    `db:"is_cover" json:"is_cover"`
	SortOrder int     `db:"sort_order" json:"sort_order"`
}
