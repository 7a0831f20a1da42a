package domain

import (
	"time"

	"github.com/lib/pq"
)

// Collection is a curated, ordered list of venues for one city. The venue
// ids are denormalized into an array column rather than a junction table, so
// referential consistency on venue deletion is maintained by the write path.
type Collection struct {
	ID          int64         `db:"id" json:"id"`
	CityID      int64         `db:"city_id" json:"city_id"`
	Name        string        `db:"name" json:"name"`
	Slug        string        `db:"slug" json:"slug"`
	Description *string       `db:"description" json:"description,omitempty"`
	VenueIDs    pq.Int64Array `db:"venue_ids" json:"venue_ids"`
	IsActive    bool          `db:"is_active" json:"is_active"`
	SortOrder   int           `db:"sort_order" json:"sort_order"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// WithoutVenue returns the venue id list minus the given venue.
func (c *Collection) WithoutVenue(venueID int64) pq.Int64Array {
	out := make(pq.Int64Array, 0, len(c.VenueIDs))
	for _, id := range c.VenueIDs {
		if id != venueID {
			out = append(out, id)
		}
	}
	return out
}
