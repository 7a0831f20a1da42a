package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
	"github.com/nuitmaroc/nightlife-api/internal/repository/ports"
)

// SearchRepository delegates ranking to the search_venues and nearby_venues
// database functions; rows come back pre-sorted and are passed through as-is.
type SearchRepository struct {
	db *sqlx.DB
}

func NewSearchRepo(db *sqlx.DB) *SearchRepository {
	return &SearchRepository{db: db}
}

func (r *SearchRepository) Search(ctx context.Context, query string, cityID *int64) ([]domain.SearchResult, error) {
	results := make([]domain.SearchResult, 0)
	var err error
	if cityID != nil {
		err = r.db.SelectContext(ctx, &results, `SELECT * FROM search_venues($1, $2)`, query, *cityID)
	} else {
		err = r.db.SelectContext(ctx, &results, `SELECT * FROM search_venues($1)`, query)
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *SearchRepository) Nearby(ctx context.Context, lat, lng float64, radiusM *float64) ([]domain.NearbyVenue, error) {
	venues := make([]domain.NearbyVenue, 0)
	var err error
	if radiusM != nil {
		err = r.db.SelectContext(ctx, &venues, `SELECT * FROM nearby_venues($1, $2, $3)`, lat, lng, *radiusM)
	} else {
		err = r.db.SelectContext(ctx, &venues, `SELECT * FROM nearby_venues($1, $2)`, lat, lng)
	}
	if err != nil {
		return nil, err
	}
	return venues, nil
}

var _ ports.SearchRepository = (*SearchRepository)(nil)
