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

const venueColumns = `id, city_id, category_id, name, slug, neighborhood, address,
	latitude, longitude, whatsapp, phone, instagram, website, price_range,
	dress_code, music_style, age_policy, alcohol_policy, attributes, status,
	is_sponsored, priority_score, internal_notes, created_at, updated_at`

type VenueRepository struct {
	db *sqlx.DB
}

func NewVenueRepo(db *sqlx.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) ListPublished(ctx context.Context, q ports.PublishedVenueQuery) ([]domain.Venue, int, error) {
	where := []string{"city_id = $1", "status = 'published'"}
	params := []any{q.CityID}

	if q.CategoryID != nil {
		where = append(where, fmt.Sprintf("category_id = $%d", len(params)+1))
		params = append(params, *q.CategoryID)
	}
	if q.VenueIDs != nil {
		where = append(where, fmt.Sprintf("id = ANY($%d)", len(params)+1))
		params = append(params, int64Array(q.VenueIDs))
	}
	predicate := strings.Join(where, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM venues WHERE `+predicate, params...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM venues
		WHERE %s
		ORDER BY is_sponsored DESC, priority_score DESC
		LIMIT $%d OFFSET $%d
	`, venueColumns, predicate, len(params)+1, len(params)+2)
	params = append(params, q.Limit, q.Offset)

	venues := make([]domain.Venue, 0)
	if err := r.db.SelectContext(ctx, &venues, query, params...); err != nil {
		return nil, 0, err
	}
	return venues, total, nil
}

func (r *VenueRepository) ListFeatured(ctx context.Context, limit int) ([]domain.Venue, error) {
	venues := make([]domain.Venue, 0)
	err := r.db.SelectContext(ctx, &venues, `
		SELECT `+venueColumns+`
		FROM venues
		WHERE status = 'published'
		ORDER BY is_sponsored DESC, priority_score DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return venues, nil
}

func (r *VenueRepository) FindPublished(ctx context.Context, cityID, categoryID int64, slug string) (*domain.Venue, error) {
	var venue domain.Venue
	err := r.db.GetContext(ctx, &venue, `
		SELECT `+venueColumns+`
		FROM venues
		WHERE slug = $1 AND city_id = $2 AND category_id = $3 AND status = 'published'
	`, slug, cityID, categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *VenueRepository) FindByID(ctx context.Context, id int64) (*domain.Venue, error) {
	var venue domain.Venue
	err := r.db.GetContext(ctx, &venue, `
		SELECT `+venueColumns+`
		FROM venues
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *VenueRepository) FindBySlug(ctx context.Context, slug string) (*domain.Venue, error) {
	var venue domain.Venue
	err := r.db.GetContext(ctx, &venue, `
		SELECT `+venueColumns+`
		FROM venues
		WHERE slug = $1
	`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

// ListAdmin is the back-office list: unscoped by status, free filters, one
// whitelisted sort key. City and category filters and sorts go through the
// joined slug/name columns.
func (r *VenueRepository) ListAdmin(ctx context.Context, filter domain.AdminVenueFilter) ([]domain.Venue, int, error) {
	where := []string{"TRUE"}
	params := make([]any, 0, 6)

	if trimmed := strings.TrimSpace(filter.Search); trimmed != "" {
		where = append(where, fmt.Sprintf("v.name ILIKE $%d", len(params)+1))
		params = append(params, "%"+trimmed+"%")
	}
	if filter.CitySlug != "" {
		where = append(where, fmt.Sprintf("ci.slug = $%d", len(params)+1))
		params = append(params, filter.CitySlug)
	}
	if filter.CategorySlug != "" {
		where = append(where, fmt.Sprintf("ca.slug = $%d", len(params)+1))
		params = append(params, filter.CategorySlug)
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("v.status = $%d", len(params)+1))
		params = append(params, *filter.Status)
	}
	predicate := strings.Join(where, " AND ")

	const fromClause = `
		FROM venues v
		JOIN cities ci ON ci.id = v.city_id
		JOIN categories ca ON ca.id = v.category_id
	`

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*)`+fromClause+`WHERE `+predicate, params...); err != nil {
		return nil, 0, err
	}

	var builder strings.Builder
	builder.WriteString(`SELECT ` + prefixColumns("v", venueColumns) + fromClause + `WHERE ` + predicate)

	builder.WriteString("\n\tORDER BY ")
	switch filter.SortBy {
	case domain.VenueSortName:
		builder.WriteString("v.name")
	case domain.VenueSortCity:
		builder.WriteString("ci.name")
	case domain.VenueSortCategory:
		builder.WriteString("ca.name")
	case domain.VenueSortStatus:
		builder.WriteString("v.status")
	case domain.VenueSortPriorityScore:
		builder.WriteString("v.priority_score")
	case domain.VenueSortCreatedAt:
		builder.WriteString("v.created_at")
	default:
		builder.WriteString("v.updated_at")
	}
	if filter.SortOrder == domain.SortAsc {
		builder.WriteString(" ASC")
	} else {
		builder.WriteString(" DESC")
	}
	builder.WriteString(", v.id ASC")

	builder.WriteString(fmt.Sprintf("\n\tLIMIT $%d OFFSET $%d", len(params)+1, len(params)+2))
	params = append(params, filter.PerPageOrDefault(), filter.Offset())

	venues := make([]domain.Venue, 0)
	if err := r.db.SelectContext(ctx, &venues, builder.String(), params...); err != nil {
		return nil, 0, err
	}
	return venues, total, nil
}

func (r *VenueRepository) StatRows(ctx context.Context) ([]domain.VenueStatRow, error) {
	rows := make([]domain.VenueStatRow, 0)
	err := r.db.SelectContext(ctx, &rows, `
		SELECT v.status, ci.slug AS city_slug, v.is_sponsored
		FROM venues v
		JOIN cities ci ON ci.id = v.city_id
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *VenueRepository) Insert(ctx context.Context, record domain.VenueRecord) (*domain.Venue, error) {
	query := `
		INSERT INTO venues (
			city_id, category_id, name, slug, neighborhood, address,
			latitude, longitude, whatsapp, phone, instagram, website,
			price_range, dress_code, music_style, age_policy, alcohol_policy,
			attributes, status, is_sponsored, priority_score, internal_notes
		) VALUES (
			:city_id, :category_id, :name, :slug, :neighborhood, :address,
			:latitude, :longitude, :whatsapp, :phone, :instagram, :website,
			:price_range, :dress_code, :music_style, :age_policy, :alcohol_policy,
			:attributes, :status, :is_sponsored, :priority_score, :internal_notes
		)
		RETURNING ` + venueColumns

	attributes := record.Attributes
	if attributes == nil {
		attributes = domain.Attributes{}
	}

	args := map[string]any{
		"city_id":        record.CityID,
		"category_id":    record.CategoryID,
		"name":           record.Name,
		"slug":           record.Slug,
		"neighborhood":   nullString(record.Neighborhood),
		"address":        record.Address,
		"latitude":       nullFloat(record.Latitude),
		"longitude":      nullFloat(record.Longitude),
		"whatsapp":       nullString(record.WhatsApp),
		"phone":          nullString(record.Phone),
		"instagram":      nullString(record.Instagram),
		"website":        nullString(record.Website),
		"price_range":    priceRangeValue(record.PriceRange),
		"dress_code":     nullString(record.DressCode),
		"music_style":    nullString(record.MusicStyle),
		"age_policy":     nullString(record.AgePolicy),
		"alcohol_policy": nullString(record.AlcoholPolicy),
		"attributes":     attributes,
		"status":         record.Status,
		"is_sponsored":   record.IsSponsored,
		"priority_score": record.PriorityScore,
		"internal_notes": nullString(record.InternalNotes),
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var venue domain.Venue
		if err = rows.StructScan(&venue); err != nil {
			return nil, err
		}
		return &venue, nil
	}
	return nil, sql.ErrNoRows
}

func (r *VenueRepository) Update(ctx context.Context, id int64, changes domain.VenueChanges) (*domain.Venue, error) {
	setParts := []string{"updated_at = NOW()"}
	params := make([]any, 0, 22)

	set := func(column string, value any) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, len(params)+1))
		params = append(params, value)
	}

	if changes.CityID != nil {
		set("city_id", *changes.CityID)
	}
	if changes.CategoryID != nil {
		set("category_id", *changes.CategoryID)
	}
	if changes.Name != nil {
		set("name", *changes.Name)
	}
	if changes.Slug != nil {
		set("slug", *changes.Slug)
	}
	if changes.Neighborhood != nil {
		set("neighborhood", nullString(changes.Neighborhood))
	}
	if changes.Address != nil {
		set("address", *changes.Address)
	}
	if changes.Latitude != nil {
		set("latitude", nullFloat(changes.Latitude))
	}
	if changes.Longitude != nil {
		set("longitude", nullFloat(changes.Longitude))
	}
	if changes.WhatsApp != nil {
		set("whatsapp", nullString(changes.WhatsApp))
	}
	if changes.Phone != nil {
		set("phone", nullString(changes.Phone))
	}
	if changes.Instagram != nil {
		set("instagram", nullString(changes.Instagram))
	}
	if changes.Website != nil {
		set("website", nullString(changes.Website))
	}
	if changes.PriceRange != nil {
		set("price_range", priceRangeValue(changes.PriceRange))
	}
	if changes.DressCode != nil {
		set("dress_code", nullString(changes.DressCode))
	}
	if changes.MusicStyle != nil {
		set("music_style", nullString(changes.MusicStyle))
	}
	if changes.AgePolicy != nil {
		set("age_policy", nullString(changes.AgePolicy))
	}
	if changes.AlcoholPolicy != nil {
		set("alcohol_policy", nullString(changes.AlcoholPolicy))
	}
	if changes.Attributes != nil {
		set("attributes", *changes.Attributes)
	}
	if changes.Status != nil {
		set("status", *changes.Status)
	}
	if changes.IsSponsored != nil {
		set("is_sponsored", *changes.IsSponsored)
	}
	if changes.PriorityScore != nil {
		set("priority_score", *changes.PriorityScore)
	}
	if changes.InternalNotes != nil {
		set("internal_notes", nullString(changes.InternalNotes))
	}

	query := fmt.Sprintf(`
		UPDATE venues
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setParts, ", "), len(params)+1, venueColumns)
	params = append(params, id)

	var venue domain.Venue
	err := r.db.GetContext(ctx, &venue, query, params...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *VenueRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
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

func priceRangeValue(ptr *domain.PriceRange) any {
	if ptr == nil {
		return nil
	}
	return string(*ptr)
}

// prefixColumns rewrites "a, b, c" as "p.a, p.b, p.c" for joined selects.
func prefixColumns(prefix, columns string) string {
	parts := strings.Split(columns, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, prefix+"."+strings.TrimSpace(part))
	}
	return strings.Join(out, ", ")
}

var _ ports.VenueRepository = (*VenueRepository)(nil)
