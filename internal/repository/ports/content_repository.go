package ports

import (
	"context"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
)

type ContentRepository interface {
	ByVenueID(ctx context.Context, venueID int64) ([]domain.VenueContent, error)
	ByVenueIDs(ctx context.Context, venueIDs []int64) ([]domain.VenueContent, error)
	ReplaceForVenue(ctx context.Context, venueID int64, contents []domain.VenueContent) error
	DeleteForVenue(ctx context.Context, venueID int64) error
}
