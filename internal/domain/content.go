package domain

import "github.com/lib/pq"

// VenueContent holds the long-form description for one (venue, locale) pair.
// At most one row exists per venue and locale.
type VenueContent struct {
	ID             int64          `db:"id" json:"id"`
	VenueID        int64          `db:"venue_id" json:"venue_id"`
	Locale         Language       `db:"locale" json:"locale"`
	Description    string         `db:"description" json:"description"`
	SEOTitle       *string        `db:"seo_title" json:"seo_title,omitempty"`
	SEODescription *string        `db:"seo_description" json:"seo_description,omitempty"`
	SEOKeywords    pq.StringArray `db:"seo_keywords" json:"seo_keywords,omitempty"`
}
