package domain

import (
	"errors"
	"strings"
)

// DefaultPageSize is the venue page size used by public list views when the
// caller does not specify a limit.
const DefaultPageSize = 12

// VenueListOptions are the public list filters. Page is 1-based; this layer
// does not validate out-of-range page/limit values, the store simply returns
// zero rows for offsets past the end.
type VenueListOptions struct {
	CategorySlug string
	TagSlugs     []string
	Page         int
	Limit        int
}

func (o VenueListOptions) PageOrDefault() int {
	if o.Page == 0 {
		return 1
	}
	return o.Page
}

func (o VenueListOptions) LimitOrDefault() int {
	if o.Limit == 0 {
		return DefaultPageSize
	}
	return o.Limit
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// VenueSortField is the closed set of admin list sort keys.
type VenueSortField string

const (
	VenueSortName          VenueSortField = "name"
	VenueSortCity          VenueSortField = "city"
	VenueSortCategory      VenueSortField = "category"
	VenueSortStatus        VenueSortField = "status"
	VenueSortPriorityScore VenueSortField = "priority_score"
	VenueSortUpdatedAt     VenueSortField = "updated_at"
	VenueSortCreatedAt     VenueSortField = "created_at"
)

var ErrInvalidSortField = errors.New("invalid sort field")

func ParseVenueSortField(raw string) (VenueSortField, error) {
	switch VenueSortField(strings.ToLower(strings.TrimSpace(raw))) {
	case VenueSortName:
		return VenueSortName, nil
	case VenueSortCity:
		return VenueSortCity, nil
	case VenueSortCategory:
		return VenueSortCategory, nil
	case VenueSortStatus:
		return VenueSortStatus, nil
	case VenueSortPriorityScore:
		return VenueSortPriorityScore, nil
	case VenueSortUpdatedAt:
		return VenueSortUpdatedAt, nil
	case VenueSortCreatedAt:
		return VenueSortCreatedAt, nil
	default:
		return "", ErrInvalidSortField
	}
}

// AdminVenueFilter drives the back-office venue list. Unlike the public
// path it is unscoped by publication status.
type AdminVenueFilter struct {
	Search       string
	CitySlug     string
	CategorySlug string
	Status       *VenueStatus
	SortBy       VenueSortField
	SortOrder    SortDirection
	Page         int
	PerPage      int
}

func (f AdminVenueFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.PerPageOrDefault()
}

func (f AdminVenueFilter) PerPageOrDefault() int {
	if f.PerPage <= 0 {
		return 25
	}
	return f.PerPage
}

// CollectionFilter drives the back-office collection list.
type CollectionFilter struct {
	CitySlug string
	Search   string
	IsActive *bool
}

// VenueStatRow is the thin projection the dashboard stats are tallied from.
type VenueStatRow struct {
	Status      VenueStatus `db:"status"`
	CitySlug    string      `db:"city_slug"`
	IsSponsored bool        `db:"is_sponsored"`
}

// VenueStats is the admin dashboard aggregate.
type VenueStats struct {
	TotalVenues      int            `json:"total_venues"`
	Published        int            `json:"published"`
	Draft            int            `json:"draft"`
	Archived         int            `json:"archived"`
	Sponsored        int            `json:"sponsored"`
	ByCity           map[string]int `json:"by_city"`
	TotalCollections int            `json:"total_collections"`
}
