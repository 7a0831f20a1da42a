package ports

import (
	"context"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
)

// PublishedVenueQuery scopes the public venue list. VenueIDs, when non-nil,
// restricts results to the tag-intersection survivors.
type PublishedVenueQuery struct {
	CityID     int64
	CategoryID *int64
	VenueIDs   []int64
	Limit      int
	Offset     int
}

type VenueRepository interface {
	// ListPublished returns one page of published venues ordered
	// sponsored-first then priority descending, plus the total row count
	// ignoring pagination.
	ListPublished(ctx context.Context, q PublishedVenueQuery) ([]domain.Venue, int, error)
	ListFeatured(ctx context.Context, limit int) ([]domain.Venue, error)

	// FindPublished resolves the canonical detail URL triple.
	FindPublished(ctx context.Context, cityID, categoryID int64, slug string) (*domain.Venue, error)
	FindByID(ctx context.Context, id int64) (*domain.Venue, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Venue, error)

	ListAdmin(ctx context.Context, filter domain.AdminVenueFilter) ([]domain.Venue, int, error)
	StatRows(ctx context.Context) ([]domain.VenueStatRow, error)

	Insert(ctx context.Context, record domain.VenueRecord) (*domain.Venue, error)
	Update(ctx context.Context, id int64, changes domain.VenueChanges) (*domain.Venue, error)
	Delete(ctx context.Context, id int64) error
}
