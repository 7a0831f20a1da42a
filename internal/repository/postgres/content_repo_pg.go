package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
	"github.com/nuitmaroc/nightlife-api/internal/repository/ports"
)

const contentColumns = `id, venue_id, locale, description, seo_title, seo_description, seo_keywords`

type ContentRepository struct {
	db *sqlx.DB
}

func NewContentRepo(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) ByVenueID(ctx context.Context, venueID int64) ([]domain.VenueContent, error) {
	contents := make([]domain.VenueContent, 0, 2)
	err := r.db.SelectContext(ctx, &contents, `
		SELECT `+contentColumns+`
		FROM contents
		WHERE venue_id = $1
		ORDER BY locale ASC
	`, venueID)
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *ContentRepository) ByVenueIDs(ctx context.Context, venueIDs []int64) ([]domain.VenueContent, error) {
	if len(venueIDs) == 0 {
		return []domain.VenueContent{}, nil
	}
	contents := make([]domain.VenueContent, 0, 2*len(venueIDs))
	err := r.db.SelectContext(ctx, &contents, `
		SELECT `+contentColumns+`
		FROM contents
		WHERE venue_id = ANY($1)
	`, int64Array(venueIDs))
	if err != nil {
		return nil, err
	}
	return contents, nil
}

// ReplaceForVenue swaps the venue's content rows wholesale. The write path
// replaces rather than diffs; the (venue_id, locale) uniqueness holds because
// the incoming set is validated to one row per locale.
func (r *ContentRepository) ReplaceForVenue(ctx context.Context, venueID int64, contents []domain.VenueContent) error {
	if err := r.DeleteForVenue(ctx, venueID); err != nil {
		return err
	}
	for _, content := range contents {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO contents (venue_id, locale, description, seo_title, seo_description, seo_keywords)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, venueID, content.Locale, content.Description,
			nullString(content.SEOTitle), nullString(content.SEODescription), content.SEOKeywords,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *ContentRepository) DeleteForVenue(ctx context.Context, venueID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM contents WHERE venue_id = $1`, venueID)
	return err
}

var _ ports.ContentRepository = (*ContentRepository)(nil)
