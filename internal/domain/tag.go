package domain

type Tag struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

// VenueTag is one row of the venues_tags junction table.
type VenueTag struct {
	VenueID int64 `db:"venue_id" json:"venue_id"`
	TagID   int64 `db:"tag_id" json:"tag_id"`
}
