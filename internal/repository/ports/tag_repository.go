package ports

import (
	"context"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
)

type TagRepository interface {
	List(ctx context.Context) ([]domain.Tag, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]domain.Tag, error)
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error)

	// JunctionByTagIDs returns every venues_tags row whose tag_id is in the
	// given set; the tag-intersection filter tallies these in memory.
	JunctionByTagIDs(ctx context.Context, tagIDs []int64) ([]domain.VenueTag, error)
	JunctionByVenueIDs(ctx context.Context, venueIDs []int64) ([]domain.VenueTag, error)

	// ReplaceForVenue swaps the venue's tag links wholesale.
	ReplaceForVenue(ctx context.Context, venueID int64, tagIDs []int64) error
	DeleteForVenue(ctx context.Context, venueID int64) error
}
