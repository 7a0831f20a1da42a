package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type VenueStatus string

const (
	VenueStatusDraft     VenueStatus = "draft"
	VenueStatusPublished VenueStatus = "published"
	VenueStatusArchived  VenueStatus = "archived"
)

func (s VenueStatus) Valid() bool {
	switch s {
	case VenueStatusDraft, VenueStatusPublished, VenueStatusArchived:
		return true
	}
	return false
}

type PriceRange string

const (
	PriceBudget    PriceRange = "$"
	PriceModerate  PriceRange = "$$"
	PriceUpscale   PriceRange = "$$$"
	PriceExclusive PriceRange = "$$$$"
)

func (p PriceRange) Valid() bool {
	switch p {
	case PriceBudget, PriceModerate, PriceUpscale, PriceExclusive:
		return true
	}
	return false
}

// Attributes is the free-form JSONB key/value bag on a venue
// (e.g. "capacity", "terrace", "valet_parking").
type Attributes map[string]any

func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

func (a *Attributes) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = Attributes{}
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("attributes: unsupported scan type %T", src)
	}
}

// Venue is a single nightlife venue row. InternalNotes is admin-only and is
// never serialized on public responses.
type Venue struct {
	ID            int64       `db:"id" json:"id"`
	CityID        int64       `db:"city_id" json:"city_id"`
	CategoryID    int64       `db:"category_id" json:"category_id"`
	Name          string      `db:"name" json:"name"`
	Slug          string      `db:"slug" json:"slug"`
	Neighborhood  *string     `db:"neighborhood" json:"neighborhood,omitempty"`
	Address       string      `db:"address" json:"address"`
	Latitude      *float64    `db:"latitude" json:"latitude,omitempty"`
	Longitude     *float64    `db:"longitude" json:"longitude,omitempty"`
	WhatsApp      *string     `db:"whatsapp" json:"whatsapp,omitempty"`
	Phone         *string     `db:"phone" json:"phone,omitempty"`
	Instagram     *string     `db:"instagram" json:"instagram,omitempty"`
	Website       *string     `db:"website" json:"website,omitempty"`
	PriceRange    *PriceRange `db:"price_range" json:"price_range,omitempty"`
	DressCode     *string     `db:"dress_code" json:"dress_code,omitempty"`
	MusicStyle    *string     `db:"music_style" json:"music_style,omitempty"`
	AgePolicy     *string     `db:"age_policy" json:"age_policy,omitempty"`
	AlcoholPolicy *string     `db:"alcohol_policy" json:"alcohol_policy,omitempty"`
	Attributes    Attributes  `db:"attributes" json:"attributes"`
	Status        VenueStatus `db:"status" json:"status"`
	IsSponsored   bool        `db:"is_sponsored" json:"is_sponsored"`
	PriorityScore int         `db:"priority_score" json:"priority_score"`
	InternalNotes *string     `db:"internal_notes" json:"-"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updated_at"`
}

func (v *Venue) IsPublished() bool {
	return v.Status == VenueStatusPublished
}

// VenueCard is the denormalized card projection used by list and grid views.
type VenueCard struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	Slug          string      `json:"slug"`
	Neighborhood  *string     `json:"neighborhood,omitempty"`
	PriceRange    *PriceRange `json:"price_range,omitempty"`
	IsSponsored   bool        `json:"is_sponsored"`
	PriorityScore int         `json:"priority_score"`
	CoverPhoto    *string     `json:"cover_photo"`
	Description   string      `json:"description"`
	CategorySlug  string      `json:"category_slug"`
	CitySlug      string      `json:"city_slug"`
	Tags          []string    `json:"tags"`
}

// VenueWithDetails is the full detail-page payload: the venue plus every
// related row, with resolved city and category.
type VenueWithDetails struct {
	Venue
	Contents []VenueContent `json:"contents"`
	Photos   []Photo        `json:"photos"`
	Tags     []Tag          `json:"tags"`
	City     *City          `json:"city,omitempty"`
	Category *Category      `json:"category,omitempty"`
}
