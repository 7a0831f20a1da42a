package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
	"github.com/nuitmaroc/nightlife-api/internal/repository/ports"
)

type TagRepository struct {
	db *sqlx.DB
}

func NewTagRepo(db *sqlx.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	tags := make([]domain.Tag, 0)
	err := r.db.SelectContext(ctx, &tags, `
		SELECT id, name, slug
		FROM tags
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *TagRepository) FindBySlugs(ctx context.Context, slugs []string) ([]domain.Tag, error) {
	if len(slugs) == 0 {
		return []domain.Tag{}, nil
	}
	tags := make([]domain.Tag, 0, len(slugs))
	err := r.db.SelectContext(ctx, &tags, `
		SELECT id, name, slug
		FROM tags
		WHERE slug = ANY($1)
	`, pq.StringArray(slugs))
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *TagRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error) {
	if len(ids) == 0 {
		return []domain.Tag{}, nil
	}
	tags := make([]domain.Tag, 0, len(ids))
	err := r.db.SelectContext(ctx, &tags, `
		SELECT id, name, slug
		FROM tags
		WHERE id = ANY($1)
	`, int64Array(ids))
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *TagRepository) JunctionByTagIDs(ctx context.Context, tagIDs []int64) ([]domain.VenueTag, error) {
	if len(tagIDs) == 0 {
		return []domain.VenueTag{}, nil
	}
	rows := make([]domain.VenueTag, 0)
	err := r.db.SelectContext(ctx, &rows, `
		SELECT venue_id, tag_id
		FROM venues_tags
		WHERE tag_id = ANY($1)
	`, int64Array(tagIDs))
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *TagRepository) JunctionByVenueIDs(ctx context.Context, venueIDs []int64) ([]domain.VenueTag, error) {
	if len(venueIDs) == 0 {
		return []domain.VenueTag{}, nil
	}
	rows := make([]domain.VenueTag, 0)
	err := r.db.SelectContext(ctx, &rows, `
		SELECT venue_id, tag_id
		FROM venues_tags
		WHERE venue_id = ANY($1)
	`, int64Array(venueIDs))
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *TagRepository) ReplaceForVenue(ctx context.Context, venueID int64, tagIDs []int64) error {
	if err := r.DeleteForVenue(ctx, venueID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := r.db.ExecContext(ctx, `
			INSERT INTO venues_tags (venue_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT (venue_id, tag_id) DO NOTHING
		`, venueID, tagID); err != nil {
			return err
		}
	}
	return nil
}

func (r *TagRepository) DeleteForVenue(ctx context.Context, venueID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM venues_tags WHERE venue_id = $1`, venueID)
	return err
}

var _ ports.TagRepository = (*TagRepository)(nil)
