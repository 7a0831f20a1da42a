package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
	"github.com/nuitmaroc/nightlife-api/internal/repository/ports"
)

// memoryStore is the shared backing state for the in-memory repositories used
// across the service tests.
type memoryStore struct {
	cities      []domain.City
	categories  []domain.Category
	tags        []domain.Tag
	junctions   []domain.VenueTag
	venues      []domain.Venue
	contents    []domain.VenueContent
	photos      []domain.Photo
	collections []domain.Collection
	auditLog    []domain.AuditLogEntry

	nextVenueID      int64
	nextCollectionID int64
	nextPhotoID      int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{nextVenueID: 1000, nextCollectionID: 1000, nextPhotoID: 1000}
}

type memoryCityRepo struct{ store *memoryStore }

func (r *memoryCityRepo) List(_ context.Context) ([]domain.City, error) {
	return r.store.cities, nil
}

func (r *memoryCityRepo) FindBySlug(_ context.Context, slug string) (*domain.City, error) {
	for i := range r.store.cities {
		if r.store.cities[i].Slug == slug {
			c := r.store.cities[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memoryCityRepo) FindByID(_ context.Context, id int64) (*domain.City, error) {
	for i := range r.store.cities {
		if r.store.cities[i].ID == id {
			c := r.store.cities[i]
			return &c, nil
		}
	}
	return nil, nil
}

type memoryCategoryRepo struct{ store *memoryStore }

func (r *memoryCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	return r.store.categories, nil
}

func (r *memoryCategoryRepo) FindBySlug(_ context.Context, slug string) (*domain.Category, error) {
	for i := range r.store.categories {
		if r.store.categories[i].Slug == slug {
			c := r.store.categories[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memoryCategoryRepo) FindByIDs(_ context.Context, ids []int64) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range r.store.categories {
		for _, id := range ids {
			if c.ID == id {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

type memoryTagRepo struct{ store *memoryStore }

func (r *memoryTagRepo) List(_ context.Context) ([]domain.Tag, error) {
	return r.store.tags, nil
}

func (r *memoryTagRepo) FindBySlugs(_ context.Context, slugs []string) ([]domain.Tag, error) {
	var out []domain.Tag
	for _, t := range r.store.tags {
		for _, slug := range slugs {
			if t.Slug == slug {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

func (r *memoryTagRepo) FindByIDs(_ context.Context, ids []int64) ([]domain.Tag, error) {
	var out []domain.Tag
	for _, t := range r.store.tags {
		for _, id := range ids {
			if t.ID == id {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

func (r *memoryTagRepo) JunctionByTagIDs(_ context.Context, tagIDs []int64) ([]domain.VenueTag, error) {
	var out []domain.VenueTag
	for _, j := range r.store.junctions {
		for _, id := range tagIDs {
			if j.TagID == id {
				out = append(out, j)
				break
			}
		}
	}
	return out, nil
}

func (r *memoryTagRepo) JunctionByVenueIDs(_ context.Context, venueIDs []int64) ([]domain.VenueTag, error) {
	var out []domain.VenueTag
	for _, j := range r.store.junctions {
		for _, id := range venueIDs {
			if j.VenueID == id {
				out = append(out, j)
				break
			}
		}
	}
	return out, nil
}

func (r *memoryTagRepo) ReplaceForVenue(ctx context.Context, venueID int64, tagIDs []int64) error {
	if err := r.DeleteForVenue(ctx, venueID); err != nil {
		return err
	}
	for _, id := range tagIDs {
		r.store.junctions = append(r.store.junctions, domain.VenueTag{VenueID: venueID, TagID: id})
	}
	return nil
}

func (r *memoryTagRepo) DeleteForVenue(_ context.Context, venueID int64) error {
	kept := r.store.junctions[:0]
	for _, j := range r.store.junctions {
		if j.VenueID != venueID {
			kept = append(kept, j)
		}
	}
	r.store.junctions = kept
	return nil
}

type memoryVenueRepo struct{ store *memoryStore }

func (r *memoryVenueRepo) ListPublished(_ context.Context, q ports.PublishedVenueQuery) ([]domain.Venue, int, error) {
	var matched []domain.Venue
	for _, v := range r.store.venues {
		if v.CityID != q.CityID || v.Status != domain.VenueStatusPublished {
			continue
		}
		if q.CategoryID != nil && v.CategoryID != *q.CategoryID {
			continue
		}
		if q.VenueIDs != nil && !containsID(q.VenueIDs, v.ID) {
			continue
		}
		matched = append(matched, v)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].IsSponsored != matched[j].IsSponsored {
			return matched[i].IsSponsored
		}
		return matched[i].PriorityScore > matched[j].PriorityScore
	})
	total := len(matched)
	if q.Offset >= len(matched) {
		return []domain.Venue{}, total, nil
	}
	end := q.Offset + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[q.Offset:end], total, nil
}

func (r *memoryVenueRepo) ListFeatured(_ context.Context, limit int) ([]domain.Venue, error) {
	var out []domain.Venue
	for _, v := range r.store.venues {
		if v.Status == domain.VenueStatusPublished && v.IsSponsored {
			out = append(out, v)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryVenueRepo) FindPublished(_ context.Context, cityID, categoryID int64, slug string) (*domain.Venue, error) {
	for i := range r.store.venues {
		v := r.store.venues[i]
		if v.CityID == cityID && v.CategoryID == categoryID && v.Slug == slug && v.Status == domain.VenueStatusPublished {
			return &v, nil
		}
	}
	return nil, nil
}

func (r *memoryVenueRepo) FindByID(_ context.Context, id int64) (*domain.Venue, error) {
	for i := range r.store.venues {
		if r.store.venues[i].ID == id {
			v := r.store.venues[i]
			return &v, nil
		}
	}
	return nil, nil
}

func (r *memoryVenueRepo) FindBySlug(_ context.Context, slug string) (*domain.Venue, error) {
	for i := range r.store.venues {
		if r.store.venues[i].Slug == slug {
			v := r.store.venues[i]
			return &v, nil
		}
	}
	return nil, nil
}

func (r *memoryVenueRepo) ListAdmin(_ context.Context, filter domain.AdminVenueFilter) ([]domain.Venue, int, error) {
	var matched []domain.Venue
	for _, v := range r.store.venues {
		if filter.Search != "" && !strings.Contains(strings.ToLower(v.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Status != nil && v.Status != *filter.Status {
			continue
		}
		matched = append(matched, v)
	}
	total := len(matched)
	offset := filter.Offset()
	if offset >= len(matched) {
		return []domain.Venue{}, total, nil
	}
	end := offset + filter.PerPageOrDefault()
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *memoryVenueRepo) StatRows(_ context.Context) ([]domain.VenueStatRow, error) {
	rows := make([]domain.VenueStatRow, 0, len(r.store.venues))
	for _, v := range r.store.venues {
		slug := ""
		for _, c := range r.store.cities {
			if c.ID == v.CityID {
				slug = c.Slug
				break
			}
		}
		rows = append(rows, domain.VenueStatRow{Status: v.Status, CitySlug: slug, IsSponsored: v.IsSponsored})
	}
	return rows, nil
}

func (r *memoryVenueRepo) Insert(_ context.Context, record domain.VenueRecord) (*domain.Venue, error) {
	r.store.nextVenueID++
	v := domain.Venue{
		ID:            r.store.nextVenueID,
		CityID:        record.CityID,
		CategoryID:    record.CategoryID,
		Name:          record.Name,
		Slug:          record.Slug,
		Neighborhood:  record.Neighborhood,
		Address:       record.Address,
		Latitude:      record.Latitude,
		Longitude:     record.Longitude,
		WhatsApp:      record.WhatsApp,
		Phone:         record.Phone,
		Instagram:     record.Instagram,
		Website:       record.Website,
		PriceRange:    record.PriceRange,
		DressCode:     record.DressCode,
		MusicStyle:    record.MusicStyle,
		AgePolicy:     record.AgePolicy,
		AlcoholPolicy: record.AlcoholPolicy,
		Attributes:    record.Attributes,
		Status:        record.Status,
		IsSponsored:   record.IsSponsored,
		PriorityScore: record.PriorityScore,
		InternalNotes: record.InternalNotes,
	}
	r.store.venues = append(r.store.venues, v)
	return &v, nil
}

func (r *memoryVenueRepo) Update(_ context.Context, id int64, changes domain.VenueChanges) (*domain.Venue, error) {
	for i := range r.store.venues {
		if r.store.venues[i].ID != id {
			continue
		}
		v := &r.store.venues[i]
		if changes.Name != nil {
			v.Name = *changes.Name
		}
		if changes.Slug != nil {
			v.Slug = *changes.Slug
		}
		if changes.CityID != nil {
			v.CityID = *changes.CityID
		}
		if changes.CategoryID != nil {
			v.CategoryID = *changes.CategoryID
		}
		if changes.Address != nil {
			v.Address = *changes.Address
		}
		if changes.Status != nil {
			v.Status = *changes.Status
		}
		if changes.IsSponsored != nil {
			v.IsSponsored = *changes.IsSponsored
		}
		if changes.PriorityScore != nil {
			v.PriorityScore = *changes.PriorityScore
		}
		if changes.InternalNotes != nil {
			v.InternalNotes = changes.InternalNotes
		}
		out := *v
		return &out, nil
	}
	return nil, nil
}

func (r *memoryVenueRepo) Delete(_ context.Context, id int64) error {
	for i := range r.store.venues {
		if r.store.venues[i].ID == id {
			r.store.venues = append(r.store.venues[:i], r.store.venues[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("venue %d not found", id)
}

type memoryContentRepo struct{ store *memoryStore }

func (r *memoryContentRepo) ByVenueID(_ context.Context, venueID int64) ([]domain.VenueContent, error) {
	var out []domain.VenueContent
	for _, c := range r.store.contents {
		if c.VenueID == venueID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryContentRepo) ByVenueIDs(_ context.Context, venueIDs []int64) ([]domain.VenueContent, error) {
	var out []domain.VenueContent
	for _, c := range r.store.contents {
		if containsID(venueIDs, c.VenueID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryContentRepo) ReplaceForVenue(ctx context.Context, venueID int64, contents []domain.VenueContent) error {
	if err := r.DeleteForVenue(ctx, venueID); err != nil {
		return err
	}
	r.store.contents = append(r.store.contents, contents...)
	return nil
}

func (r *memoryContentRepo) DeleteForVenue(_ context.Context, venueID int64) error {
	kept := r.store.contents[:0]
	for _, c := range r.store.contents {
		if c.VenueID != venueID {
			kept = append(kept, c)
		}
	}
	r.store.contents = kept
	return nil
}

type memoryPhotoRepo struct{ store *memoryStore }

func (r *memoryPhotoRepo) ByVenueID(_ context.Context, venueID int64) ([]domain.Photo, error) {
	var out []domain.Photo
	for _, p := range r.store.photos {
		if p.VenueID == venueID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *memoryPhotoRepo) CoversByVenueIDs(_ context.Context, venueIDs []int64) ([]domain.Photo, error) {
	var out []domain.Photo
	for _, p := range r.store.photos {
		if p.IsCover && containsID(venueIDs, p.VenueID) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memoryPhotoRepo) Insert(_ context.Context, photo domain.Photo) (*domain.Photo, error) {
	r.store.nextPhotoID++
	photo.ID = r.store.nextPhotoID
	maxOrder := -1
	for _, p := range r.store.photos {
		if p.VenueID == photo.VenueID && p.SortOrder > maxOrder {
			maxOrder = p.SortOrder
		}
	}
	photo.SortOrder = maxOrder + 1
	r.store.photos = append(r.store.photos, photo)
	return &photo, nil
}

func (r *memoryPhotoRepo) ReplaceForVenue(ctx context.Context, venueID int64, photos []domain.Photo) error {
	if err := r.DeleteForVenue(ctx, venueID); err != nil {
		return err
	}
	for _, p := range photos {
		r.store.nextPhotoID++
		p.ID = r.store.nextPhotoID
		r.store.photos = append(r.store.photos, p)
	}
	return nil
}

func (r *memoryPhotoRepo) DeleteForVenue(_ context.Context, venueID int64) error {
	kept := r.store.photos[:0]
	for _, p := range r.store.photos {
		if p.VenueID != venueID {
			kept = append(kept, p)
		}
	}
	r.store.photos = kept
	return nil
}

type memoryCollectionRepo struct{ store *memoryStore }

func (r *memoryCollectionRepo) ByCityID(_ context.Context, cityID int64) ([]domain.Collection, error) {
	var out []domain.Collection
	for _, c := range r.store.collections {
		if c.CityID == cityID && c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryCollectionRepo) ListFeatured(_ context.Context, limit int) ([]domain.Collection, error) {
	var out []domain.Collection
	for _, c := range r.store.collections {
		if c.IsActive {
			out = append(out, c)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryCollectionRepo) ListAdmin(_ context.Context, filter domain.CollectionFilter) ([]domain.Collection, error) {
	var out []domain.Collection
	for _, c := range r.store.collections {
		if filter.IsActive != nil && c.IsActive != *filter.IsActive {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *memoryCollectionRepo) FindByID(_ context.Context, id int64) (*domain.Collection, error) {
	for i := range r.store.collections {
		if r.store.collections[i].ID == id {
			c := r.store.collections[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memoryCollectionRepo) FindBySlug(_ context.Context, slug string) (*domain.Collection, error) {
	for i := range r.store.collections {
		if r.store.collections[i].Slug == slug {
			c := r.store.collections[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memoryCollectionRepo) ContainingVenue(_ context.Context, venueID int64) ([]domain.Collection, error) {
	var out []domain.Collection
	for _, c := range r.store.collections {
		for _, id := range c.VenueIDs {
			if id == venueID {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func (r *memoryCollectionRepo) NextSortOrder(_ context.Context, cityID int64) (int, error) {
	next := 0
	for _, c := range r.store.collections {
		if c.CityID == cityID && c.SortOrder >= next {
			next = c.SortOrder + 1
		}
	}
	return next, nil
}

func (r *memoryCollectionRepo) Count(_ context.Context) (int, error) {
	return len(r.store.collections), nil
}

func (r *memoryCollectionRepo) Insert(_ context.Context, record domain.CollectionRecord) (*domain.Collection, error) {
	r.store.nextCollectionID++
	c := domain.Collection{
		ID:          r.store.nextCollectionID,
		CityID:      record.CityID,
		Name:        record.Name,
		Slug:        record.Slug,
		Description: record.Description,
		VenueIDs:    record.VenueIDs,
		IsActive:    record.IsActive,
		SortOrder:   record.SortOrder,
	}
	r.store.collections = append(r.store.collections, c)
	return &c, nil
}

func (r *memoryCollectionRepo) Update(_ context.Context, id int64, changes domain.CollectionChanges) (*domain.Collection, error) {
	for i := range r.store.collections {
		if r.store.collections[i].ID != id {
			continue
		}
		c := &r.store.collections[i]
		if changes.Name != nil {
			c.Name = *changes.Name
		}
		if changes.Slug != nil {
			c.Slug = *changes.Slug
		}
		if changes.Description != nil {
			c.Description = changes.Description
		}
		if changes.VenueIDs != nil {
			c.VenueIDs = *changes.VenueIDs
		}
		if changes.IsActive != nil {
			c.IsActive = *changes.IsActive
		}
		if changes.SortOrder != nil {
			c.SortOrder = *changes.SortOrder
		}
		out := *c
		return &out, nil
	}
	return nil, nil
}

func (r *memoryCollectionRepo) Delete(_ context.Context, id int64) error {
	for i := range r.store.collections {
		if r.store.collections[i].ID == id {
			r.store.collections = append(r.store.collections[:i], r.store.collections[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("collection %d not found", id)
}

type memorySearchRepo struct {
	results []domain.SearchResult
	nearby  []domain.NearbyVenue

	searchCalls int
	lastQuery   string
	lastCityID  *int64
}

func (r *memorySearchRepo) Search(_ context.Context, query string, cityID *int64) ([]domain.SearchResult, error) {
	r.searchCalls++
	r.lastQuery = query
	r.lastCityID = cityID
	return r.results, nil
}

func (r *memorySearchRepo) Nearby(_ context.Context, lat, lng float64, radiusM *float64) ([]domain.NearbyVenue, error) {
	return r.nearby, nil
}

type memoryAuditRepo struct{ store *memoryStore }

func (r *memoryAuditRepo) Append(_ context.Context, entry domain.AuditLogEntry) error {
	r.store.auditLog = append(r.store.auditLog, entry)
	return nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
