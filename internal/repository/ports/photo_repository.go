package ports

import (
	"context"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
)

type PhotoRepository interface {
	// ByVenueID returns all photos ordered by sort_order then id.
	ByVenueID(ctx context.Context, venueID int64) ([]domain.Photo, error)

	// CoversByVenueIDs returns cover-flagged photos for the given venues,
	// ordered by sort_order then id so the first row per venue is the
	// deterministic winner when several photos carry the flag.
	CoversByVenueIDs(ctx context.Context, venueIDs []int64) ([]domain.Photo, error)

	Insert(ctx context.Context, photo domain.Photo) (*domain.Photo, error)
	ReplaceForVenue(ctx context.Context, venueID int64, photos []domain.Photo) error
	DeleteForVenue(ctx context.Context, venueID int64) error
}
