package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
	"github.com/nuitmaroc/nightlife-api/internal/repository/ports"
)

const photoColumns = `id, venue_id, url, alt, is_cover, sort_order`

type PhotoRepository struct {
	db *sqlx.DB
}

func NewPhotoRepo(db *sqlx.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) ByVenueID(ctx context.Context, venueID int64) ([]domain.Photo, error) {
	photos := make([]domain.Photo, 0)
	err := r.db.SelectContext(ctx, &photos, `
		SELECT `+photoColumns+`
		FROM photos
		WHERE venue_id = $1
		ORDER BY sort_order ASC, id ASC
	`, venueID)
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// CoversByVenueIDs orders by sort_order then id so that when a venue carries
// more than one cover flag the lowest-ordered photo wins deterministically.
func (r *PhotoRepository) CoversByVenueIDs(ctx context.Context, venueIDs []int64) ([]domain.Photo, error) {
	if len(venueIDs) == 0 {
		return []domain.Photo{}, nil
	}
	photos := make([]domain.Photo, 0, len(venueIDs))
	err := r.db.SelectContext(ctx, &photos, `
		SELECT `+photoColumns+`
		FROM photos
		WHERE venue_id = ANY($1) AND is_cover = TRUE
		ORDER BY sort_order ASC, id ASC
	`, int64Array(venueIDs))
	if err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *PhotoRepository) Insert(ctx context.Context, photo domain.Photo) (*domain.Photo, error) {
	var inserted domain.Photo
	err := r.db.GetContext(ctx, &inserted, `
		INSERT INTO photos (venue_id, url, alt, is_cover, sort_order)
		VALUES ($1, $2, $3, $4, COALESCE((SELECT MAX(sort_order) + 1 FROM photos WHERE venue_id = $1), 0))
		RETURNING `+photoColumns,
		photo.VenueID, photo.URL, nullString(photo.Alt), photo.IsCover)
	if err != nil {
		return nil, err
	}
	return &inserted, nil
}

func (r *PhotoRepository) ReplaceForVenue(ctx context.Context, venueID int64, photos []domain.Photo) error {
	if err := r.DeleteForVenue(ctx, venueID); err != nil {
		return err
	}
	for i, photo := range photos {
		sortOrder := photo.SortOrder
		if sortOrder == 0 {
			sortOrder = i
		}
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO photos (venue_id, url, alt, is_cover, sort_order)
			VALUES ($1, $2, $3, $4, $5)
		`, venueID, photo.URL, nullString(photo.Alt), photo.IsCover, sortOrder); err != nil {
			return err
		}
	}
	return nil
}

func (r *PhotoRepository) DeleteForVenue(ctx context.Context, venueID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE venue_id = $1`, venueID)
	return err
}

var _ ports.PhotoRepository = (*PhotoRepository)(nil)
