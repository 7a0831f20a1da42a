package ports

import (
	"context"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
)

// SearchRepository wraps the two database-side functions. Both return rows
// already ranked and filtered by the store; this layer does not re-sort.
type SearchRepository interface {
	Search(ctx context.Context, query string, cityID *int64) ([]domain.SearchResult, error)
	Nearby(ctx context.Context, lat, lng float64, radiusM *float64) ([]domain.NearbyVenue, error)
}
