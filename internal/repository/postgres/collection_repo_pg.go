package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
	"github.com/nuitmaroc/nightlife-api/internal/repository/ports"
)

const collectionColumns = `id, city_id, name, slug, description, venue_ids, is_active, sort_order, created_at, updated_at`

type CollectionRepository struct {
	db *sqlx.DB
}

func NewCollectionRepo(db *sqlx.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

func (r *CollectionRepository) ByCityID(ctx context.Context, cityID int64) ([]domain.Collection, error) {
	collections := make([]domain.Collection, 0)
	err := r.db.SelectContext(ctx, &collections, `
		SELECT `+collectionColumns+`
		FROM collections
		WHERE city_id = $1 AND is_active = TRUE
		ORDER BY sort_order ASC, name ASC
	`, cityID)
	if err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *CollectionRepository) ListFeatured(ctx context.Context, limit int) ([]domain.Collection, error) {
	collections := make([]domain.Collection, 0, limit)
	err := r.db.SelectContext(ctx, &collections, `
		SELECT `+collectionColumns+`
		FROM collections
		WHERE is_active = TRUE
		ORDER BY sort_order ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *CollectionRepository) ListAdmin(ctx context.Context, filter domain.CollectionFilter) ([]domain.Collection, error) {
	where := []string{"TRUE"}
	params := make([]any, 0, 3)

	if filter.CitySlug != "" {
		where = append(where, fmt.Sprintf("ci.slug = $%d", len(params)+1))
		params = append(params, filter.CitySlug)
	}
	if trimmed := strings.TrimSpace(filter.Search); trimmed != "" {
		where = append(where, fmt.Sprintf("co.name ILIKE $%d", len(params)+1))
		params = append(params, "%"+trimmed+"%")
	}
	if filter.IsActive != nil {
		where = append(where, fmt.Sprintf("co.is_active = $%d", len(params)+1))
		params = append(params, *filter.IsActive)
	}

	query := `
		SELECT ` + prefixColumns("co", collectionColumns) + `
		FROM collections co
		JOIN cities ci ON ci.id = co.city_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY ci.name ASC, co.sort_order ASC
	`

	collections := make([]domain.Collection, 0)
	if err := r.db.SelectContext(ctx, &collections, query, params...); err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *CollectionRepository) FindByID(ctx context.Context, id int64) (*domain.Collection, error) {
	var collection domain.Collection
	err := r.db.GetContext(ctx, &collection, `
		SELECT `+collectionColumns+`
		FROM collections
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *CollectionRepository) FindBySlug(ctx context.Context, slug string) (*domain.Collection, error) {
	var collection domain.Collection
	err := r.db.GetContext(ctx, &collection, `
		SELECT `+collectionColumns+`
		FROM collections
		WHERE slug = $1
	`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *CollectionRepository) ContainingVenue(ctx context.Context, venueID int64) ([]domain.Collection, error) {
	collections := make([]domain.Collection, 0)
	err := r.db.SelectContext(ctx, &collections, `
		SELECT `+collectionColumns+`
		FROM collections
		WHERE venue_ids @> ARRAY[$1]::bigint[]
	`, venueID)
	if err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *CollectionRepository) NextSortOrder(ctx context.Context, cityID int64) (int, error) {
	var next int
	err := r.db.GetContext(ctx, &next, `
		SELECT COALESCE(MAX(sort_order) + 1, 0)
		FROM collections
		WHERE city_id = $1
	`, cityID)
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *CollectionRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM collections`); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CollectionRepository) Insert(ctx context.Context, record domain.CollectionRecord) (*domain.Collection, error) {
	var collection domain.Collection
	err := r.db.GetContext(ctx, &collection, `
		INSERT INTO collections (city_id, name, slug, description, venue_ids, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+collectionColumns,
		record.CityID, record.Name, record.Slug, nullString(record.Description),
		int64Array(record.VenueIDs), record.IsActive, record.SortOrder)
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *CollectionRepository) Update(ctx context.Context, id int64, changes domain.CollectionChanges) (*domain.Collection, error) {
	setParts := []string{"updated_at = NOW()"}
	params := make([]any, 0, 7)

	set := func(column string, value any) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, len(params)+1))
		params = append(params, value)
	}

	if changes.CityID != nil {
		set("city_id", *changes.CityID)
	}
	if changes.Name != nil {
		set("name", *changes.Name)
	}
	if changes.Slug != nil {
		set("slug", *changes.Slug)
	}
	if changes.Description != nil {
		set("description", nullString(changes.Description))
	}
	if changes.VenueIDs != nil {
		set("venue_ids", int64Array(*changes.VenueIDs))
	}
	if changes.IsActive != nil {
		set("is_active", *changes.IsActive)
	}
	if changes.SortOrder != nil {
		set("sort_order", *changes.SortOrder)
	}

	query := fmt.Sprintf(`
		UPDATE collections
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setParts, ", "), len(params)+1, collectionColumns)
	params = append(params, id)

	var collection domain.Collection
	err := r.db.GetContext(ctx, &collection, query, params...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *CollectionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

var _ ports.CollectionRepository = (*CollectionRepository)(nil)
