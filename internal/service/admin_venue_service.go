package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
	"github.com/nuitmaroc/nightlife-api/internal/media"
	"github.com/nuitmaroc/nightlife-api/internal/repository/ports"
)

var (
	ErrVenueNotFound = errors.New("venue not found")
	ErrSlugConflict  = errors.New("slug already in use")
)

// ContentInput is one localized description block on a venue payload.
type ContentInput struct {
	Locale         string   `json:"locale" validate:"required,oneof=fr en"`
	Description    string   `json:"description" validate:"required"`
	SEOTitle       *string  `json:"seo_title"`
	SEODescription *string  `json:"seo_description"`
	SEOKeywords    []string `json:"seo_keywords"`
}

type PhotoInput struct {
	URL       string  `json:"url" validate:"required,url"`
	Alt       *string `json:"alt"`
	IsCover   bool    `json:"is_cover"`
	SortOrder int     `json:"sort_order" validate:"gte=0"`
}

// VenueInput is the full create/replace payload, validated as a whole.
type VenueInput struct {
	CityID        int64             `json:"city_id" validate:"required"`
	CategoryID    int64             `json:"category_id" validate:"required"`
	Name          string            `json:"name" validate:"required,min=2,max=150"`
	Slug          string            `json:"slug" validate:"required,slug,max=150"`
	Neighborhood  *string           `json:"neighborhood"`
	Address       string            `json:"address" validate:"required"`
	Latitude      *float64          `json:"latitude" validate:"omitempty,latitude"`
	Longitude     *float64          `json:"longitude" validate:"omitempty,longitude"`
	WhatsApp      *string           `json:"whatsapp"`
	Phone         *string           `json:"phone"`
	Instagram     *string           `json:"instagram"`
	Website       *string           `json:"website" validate:"omitempty,url"`
	PriceRange    *string           `json:"price_range" validate:"omitempty,oneof=$ $$ $$$ $$$$"`
	DressCode     *string           `json:"dress_code"`
	MusicStyle    *string           `json:"music_style"`
	AgePolicy     *string           `json:"age_policy"`
	AlcoholPolicy *string           `json:"alcohol_policy"`
	Attributes    domain.Attributes `json:"attributes"`
	Status        string            `json:"status" validate:"required,oneof=draft published archived"`
	IsSponsored   bool              `json:"is_sponsored"`
	PriorityScore int               `json:"priority_score" validate:"gte=0,lte=100"`
	InternalNotes *string           `json:"internal_notes"`
	Contents      []ContentInput    `json:"contents" validate:"unique=Locale,dive"`
	Photos        []PhotoInput      `json:"photos" validate:"dive"`
	TagIDs        []int64           `json:"tag_ids"`
}

// VenuePartial touches scalar columns only; nil fields stay untouched and
// relational sub-rows are never replaced on this path.
type VenuePartial struct {
	CityID        *int64             `json:"city_id"`
	CategoryID    *int64             `json:"category_id"`
	Name          *string            `json:"name" validate:"omitempty,min=2,max=150"`
	Slug          *string            `json:"slug" validate:"omitempty,slug,max=150"`
	Neighborhood  *string            `json:"neighborhood"`
	Address       *string            `json:"address"`
	Latitude      *float64           `json:"latitude" validate:"omitempty,latitude"`
	Longitude     *float64           `json:"longitude" validate:"omitempty,longitude"`
	WhatsApp      *string            `json:"whatsapp"`
	Phone         *string            `json:"phone"`
	Instagram     *string            `json:"instagram"`
	Website       *string            `json:"website" validate:"omitempty,url"`
	PriceRange    *string            `json:"price_range" validate:"omitempty,oneof=$ $$ $$$ $$$$"`
	DressCode     *string            `json:"dress_code"`
	MusicStyle    *string            `json:"music_style"`
	AgePolicy     *string            `json:"age_policy"`
	AlcoholPolicy *string            `json:"alcohol_policy"`
	Attributes    *domain.Attributes `json:"attributes"`
	Status        *string            `json:"status" validate:"omitempty,oneof=draft published archived"`
	IsSponsored   *bool              `json:"is_sponsored"`
	PriorityScore *int               `json:"priority_score" validate:"omitempty,gte=0,lte=100"`
	InternalNotes *string            `json:"internal_notes"`
}

// VenueUpdate is a tagged union: exactly one of Full or Partial is set,
// chosen by the caller rather than inferred from the payload shape.
type VenueUpdate struct {
	Full    *VenueInput
	Partial *VenuePartial
}

// AdminVenueService owns the back-office venue write paths. Multi-step
// writes execute in a documented order without a wrapping transaction; a
// failure partway through surfaces to the caller with state as-is.
type AdminVenueService struct {
	venues      ports.VenueRepository
	cities      ports.CityRepository
	categories  ports.CategoryRepository
	tags        ports.TagRepository
	contents    ports.ContentRepository
	photos      ports.PhotoRepository
	collections ports.CollectionRepository
	storage     ports.ObjectStorage
	audit       *AuditRecorder
	validate    *validator.Validate

	photoBucket   string
	photoMaxBytes int64
}

func NewAdminVenueService(
	venues ports.VenueRepository,
	cities ports.CityRepository,
	categories ports.CategoryRepository,
	tags ports.TagRepository,
	contents ports.ContentRepository,
	photos ports.PhotoRepository,
	collections ports.CollectionRepository,
	storage ports.ObjectStorage,
	audit *AuditRecorder,
	photoBucket string,
	photoMaxBytes int64,
) *AdminVenueService {
	return &AdminVenueService{
		venues:        venues,
		cities:        cities,
		categories:    categories,
		tags:          tags,
		contents:      contents,
		photos:        photos,
		collections:   collections,
		storage:       storage,
		audit:         audit,
		validate:      newValidator(),
		photoBucket:   photoBucket,
		photoMaxBytes: photoMaxBytes,
	}
}

func (s *AdminVenueService) List(ctx context.Context, filter domain.AdminVenueFilter) ([]domain.Venue, int, error) {
	return s.venues.ListAdmin(ctx, filter)
}

// Get returns the venue with all sub-rows resolved, for the edit form.
func (s *AdminVenueService) Get(ctx context.Context, id int64) (*domain.VenueWithDetails, error) {
	venue, err := s.venues.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, ErrVenueNotFound
	}
	contents, err := s.contents.ByVenueID(ctx, venue.ID)
	if err != nil {
		return nil, err
	}
	photos, err := s.photos.ByVenueID(ctx, venue.ID)
	if err != nil {
		return nil, err
	}
	junctions, err := s.tags.JunctionByVenueIDs(ctx, []int64{venue.ID})
	if err != nil {
		return nil, err
	}
	var tags []domain.Tag
	if len(junctions) > 0 {
		tagIDs := make([]int64, 0, len(junctions))
		for _, j := range junctions {
			tagIDs = append(tagIDs, j.TagID)
		}
		if tags, err = s.tags.FindByIDs(ctx, tagIDs); err != nil {
			return nil, err
		}
	}
	city, err := s.cities.FindByID(ctx, venue.CityID)
	if err != nil {
		return nil, err
	}
	var category *domain.Category
	if cats, err := s.categories.FindByIDs(ctx, []int64{venue.CategoryID}); err != nil {
		return nil, err
	} else if len(cats) == 1 {
		category = &cats[0]
	}
	return &domain.VenueWithDetails{
		Venue:    *venue,
		Contents: contents,
		Photos:   photos,
		Tags:     tags,
		City:     city,
		Category: category,
	}, nil
}

// Stats tallies the dashboard aggregate from one thin projection query plus
// a collection count.
func (s *AdminVenueService) Stats(ctx context.Context) (*domain.VenueStats, error) {
	rows, err := s.venues.StatRows(ctx)
	if err != nil {
		return nil, err
	}
	stats := &domain.VenueStats{ByCity: make(map[string]int)}
	for _, row := range rows {
		stats.TotalVenues++
		switch row.Status {
		case domain.VenueStatusPublished:
			stats.Published++
		case domain.VenueStatusDraft:
			stats.Draft++
		case domain.VenueStatusArchived:
			stats.Archived++
		}
		if row.IsSponsored {
			stats.Sponsored++
		}
		stats.ByCity[row.CitySlug]++
	}
	stats.TotalCollections, err = s.collections.Count(ctx)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Create validates the payload, enforces slug uniqueness, inserts the venue
// row and then its sub-rows, and appends one audit entry.
func (s *AdminVenueService) Create(ctx context.Context, input VenueInput) (*domain.Venue, error) {
	if err := s.checkInput(ctx, input); err != nil {
		return nil, err
	}
	existing, err := s.venues.FindBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugConflict
	}

	venue, err := s.venues.Insert(ctx, input.record())
	if err != nil {
		return nil, err
	}
	if err := s.writeSubRows(ctx, venue.ID, input); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.AuditActionCreated, "venue", venue.ID, venue.Name, fmt.Sprintf("created venue %q", venue.Slug))
	return venue, nil
}

// Update applies either a full replacement or a sparse patch. Full updates
// replace relational sub-rows wholesale; partial updates leave them alone.
func (s *AdminVenueService) Update(ctx context.Context, id int64, update VenueUpdate) (*domain.Venue, error) {
	existing, err := s.venues.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrVenueNotFound
	}

	switch {
	case update.Full != nil:
		return s.updateFull(ctx, existing, *update.Full)
	case update.Partial != nil:
		return s.updatePartial(ctx, existing, *update.Partial)
	default:
		return nil, newValidationError("body", "empty update")
	}
}

func (s *AdminVenueService) updateFull(ctx context.Context, existing *domain.Venue, input VenueInput) (*domain.Venue, error) {
	if err := s.checkInput(ctx, input); err != nil {
		return nil, err
	}
	if err := s.checkSlugFree(ctx, input.Slug, existing.ID); err != nil {
		return nil, err
	}
	venue, err := s.venues.Update(ctx, existing.ID, input.changes())
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, ErrVenueNotFound
	}
	if err := s.writeSubRows(ctx, venue.ID, input); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.AuditActionUpdated, "venue", venue.ID, venue.Name, fmt.Sprintf("replaced venue %q", venue.Slug))
	return venue, nil
}

func (s *AdminVenueService) updatePartial(ctx context.Context, existing *domain.Venue, patch VenuePartial) (*domain.Venue, error) {
	if err := checkStruct(s.validate, patch); err != nil {
		return nil, err
	}
	if patch.CityID != nil {
		if err := s.checkCity(ctx, *patch.CityID); err != nil {
			return nil, err
		}
	}
	if patch.CategoryID != nil {
		if err := s.checkCategory(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
	}
	if patch.Slug != nil {
		if err := s.checkSlugFree(ctx, *patch.Slug, existing.ID); err != nil {
			return nil, err
		}
	}
	venue, err := s.venues.Update(ctx, existing.ID, patch.changes())
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, ErrVenueNotFound
	}
	s.audit.Record(ctx, domain.AuditActionUpdated, "venue", venue.ID, venue.Name, fmt.Sprintf("patched venue %q", venue.Slug))
	return venue, nil
}

// Delete removes sub-rows first, then strips the venue id from every
// collection still referencing it, then removes the venue row itself. The
// order matters: collections never reference a live venue id once this
// returns, even though the steps are not transactional.
func (s *AdminVenueService) Delete(ctx context.Context, id int64) error {
	existing, err := s.venues.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrVenueNotFound
	}
	if err := s.contents.DeleteForVenue(ctx, id); err != nil {
		return err
	}
	if err := s.photos.DeleteForVenue(ctx, id); err != nil {
		return err
	}
	if err := s.tags.DeleteForVenue(ctx, id); err != nil {
		return err
	}
	holders, err := s.collections.ContainingVenue(ctx, id)
	if err != nil {
		return err
	}
	for i := range holders {
		remaining := []int64(holders[i].WithoutVenue(id))
		if _, err := s.collections.Update(ctx, holders[i].ID, domain.CollectionChanges{VenueIDs: &remaining}); err != nil {
			return err
		}
	}
	if err := s.venues.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, domain.AuditActionDeleted, "venue", id, existing.Name, fmt.Sprintf("deleted venue %q", existing.Slug))
	return nil
}

// UploadPhoto validates the image, stores it and appends a photo row at the
// end of the venue's display order.
func (s *AdminVenueService) UploadPhoto(ctx context.Context, venueID int64, upload media.Upload, alt *string, isCover bool) (*domain.Photo, error) {
	existing, err := s.venues.FindByID(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrVenueNotFound
	}
	validated, err := media.Validate(upload, s.photoMaxBytes, media.DefaultMaxDimension)
	if err != nil {
		return nil, newValidationError("photo", err.Error())
	}
	objectName := fmt.Sprintf("venues/%d/%s%s", venueID, uuid.New().String(), extensionFor(validated.ContentType))
	url, err := s.storage.Upload(ctx, s.photoBucket, objectName, validated.ContentType, bytes.NewReader(validated.Bytes), int64(len(validated.Bytes)))
	if err != nil {
		return nil, err
	}
	photo, err := s.photos.Insert(ctx, domain.Photo{VenueID: venueID, URL: url, Alt: alt, IsCover: isCover})
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.AuditActionUpdated, "venue", venueID, existing.Name, "uploaded photo")
	return photo, nil
}

func (s *AdminVenueService) checkInput(ctx context.Context, input VenueInput) error {
	if err := checkStruct(s.validate, input); err != nil {
		return err
	}
	if err := s.checkCity(ctx, input.CityID); err != nil {
		return err
	}
	return s.checkCategory(ctx, input.CategoryID)
}

func (s *AdminVenueService) checkCity(ctx context.Context, cityID int64) error {
	city, err := s.cities.FindByID(ctx, cityID)
	if err != nil {
		return err
	}
	if city == nil {
		return newValidationError("city_id", "unknown city")
	}
	return nil
}

func (s *AdminVenueService) checkCategory(ctx context.Context, categoryID int64) error {
	cats, err := s.categories.FindByIDs(ctx, []int64{categoryID})
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		return newValidationError("category_id", "unknown category")
	}
	return nil
}

func (s *AdminVenueService) checkSlugFree(ctx context.Context, slug string, selfID int64) error {
	existing, err := s.venues.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrSlugConflict
	}
	return nil
}

// writeSubRows replaces contents, photos and tag links wholesale, in that
// order.
func (s *AdminVenueService) writeSubRows(ctx context.Context, venueID int64, input VenueInput) error {
	if err := s.contents.ReplaceForVenue(ctx, venueID, input.contentRows(venueID)); err != nil {
		return err
	}
	if err := s.photos.ReplaceForVenue(ctx, venueID, input.photoRows(venueID)); err != nil {
		return err
	}
	return s.tags.ReplaceForVenue(ctx, venueID, input.TagIDs)
}

func (in VenueInput) record() domain.VenueRecord {
	return domain.VenueRecord{
		CityID:        in.CityID,
		CategoryID:    in.CategoryID,
		Name:          in.Name,
		Slug:          in.Slug,
		Neighborhood:  in.Neighborhood,
		Address:       in.Address,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		WhatsApp:      in.WhatsApp,
		Phone:         in.Phone,
		Instagram:     in.Instagram,
		Website:       in.Website,
		PriceRange:    priceRangeOf(in.PriceRange),
		DressCode:     in.DressCode,
		MusicStyle:    in.MusicStyle,
		AgePolicy:     in.AgePolicy,
		AlcoholPolicy: in.AlcoholPolicy,
		Attributes:    in.Attributes,
		Status:        domain.VenueStatus(in.Status),
		IsSponsored:   in.IsSponsored,
		PriorityScore: in.PriorityScore,
		InternalNotes: in.InternalNotes,
	}
}

// changes maps the full payload onto the sparse update shape with every
// column set, so a full update rewrites the row completely.
func (in VenueInput) changes() domain.VenueChanges {
	status := domain.VenueStatus(in.Status)
	attrs := in.Attributes
	if attrs == nil {
		attrs = domain.Attributes{}
	}
	return domain.VenueChanges{
		CityID:        &in.CityID,
		CategoryID:    &in.CategoryID,
		Name:          &in.Name,
		Slug:          &in.Slug,
		Neighborhood:  in.Neighborhood,
		Address:       &in.Address,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		WhatsApp:      in.WhatsApp,
		Phone:         in.Phone,
		Instagram:     in.Instagram,
		Website:       in.Website,
		PriceRange:    priceRangeOf(in.PriceRange),
		DressCode:     in.DressCode,
		MusicStyle:    in.MusicStyle,
		AgePolicy:     in.AgePolicy,
		AlcoholPolicy: in.AlcoholPolicy,
		Attributes:    &attrs,
		Status:        &status,
		IsSponsored:   &in.IsSponsored,
		PriorityScore: &in.PriorityScore,
		InternalNotes: in.InternalNotes,
	}
}

func (p VenuePartial) changes() domain.VenueChanges {
	changes := domain.VenueChanges{
		CityID:        p.CityID,
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		Slug:          p.Slug,
		Neighborhood:  p.Neighborhood,
		Address:       p.Address,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		WhatsApp:      p.WhatsApp,
		Phone:         p.Phone,
		Instagram:     p.Instagram,
		Website:       p.Website,
		PriceRange:    priceRangeOf(p.PriceRange),
		DressCode:     p.DressCode,
		MusicStyle:    p.MusicStyle,
		AgePolicy:     p.AgePolicy,
		AlcoholPolicy: p.AlcoholPolicy,
		Attributes:    p.Attributes,
		IsSponsored:   p.IsSponsored,
		PriorityScore: p.PriorityScore,
		InternalNotes: p.InternalNotes,
	}
	if p.Status != nil {
		status := domain.VenueStatus(*p.Status)
		changes.Status = &status
	}
	return changes
}

func (in VenueInput) contentRows(venueID int64) []domain.VenueContent {
	rows := make([]domain.VenueContent, 0, len(in.Contents))
	for _, c := range in.Contents {
		rows = append(rows, domain.VenueContent{
			VenueID:        venueID,
			Locale:         domain.Language(c.Locale),
			Description:    c.Description,
			SEOTitle:       c.SEOTitle,
			SEODescription: c.SEODescription,
			SEOKeywords:    pq.StringArray(c.SEOKeywords),
		})
	}
	return rows
}

func (in VenueInput) photoRows(venueID int64) []domain.Photo {
	rows := make([]domain.Photo, 0, len(in.Photos))
	for _, p := range in.Photos {
		rows = append(rows, domain.Photo{
			VenueID:   venueID,
			URL:       p.URL,
			Alt:       p.Alt,
			IsCover:   p.IsCover,
			SortOrder: p.SortOrder,
		})
	}
	return rows
}

func priceRangeOf(raw *string) *domain.PriceRange {
	if raw == nil {
		return nil
	}
	pr := domain.PriceRange(*raw)
	return &pr
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
