package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
	"github.com/nuitmaroc/nightlife-api/internal/repository/ports"
)

var ErrCollectionNotFound = errors.New("collection not found")

// CollectionInput is the create payload. SortOrder left nil is assigned the
// next free slot within the city.
type CollectionInput struct {
	CityID      int64   `json:"city_id" validate:"required"`
	Name        string  `json:"name" validate:"required,min=2,max=150"`
	Slug        string  `json:"slug" validate:"required,slug,max=150"`
	Description *string `json:"description"`
	VenueIDs    []int64 `json:"venue_ids"`
	IsActive    bool    `json:"is_active"`
	SortOrder   *int    `json:"sort_order" validate:"omitempty,gte=0"`
}

// CollectionPatch is the sparse update payload; nil fields stay untouched.
type CollectionPatch struct {
	CityID      *int64   `json:"city_id"`
	Name        *string  `json:"name" validate:"omitempty,min=2,max=150"`
	Slug        *string  `json:"slug" validate:"omitempty,slug,max=150"`
	Description *string  `json:"description"`
	VenueIDs    *[]int64 `json:"venue_ids"`
	IsActive    *bool    `json:"is_active"`
	SortOrder   *int     `json:"sort_order" validate:"omitempty,gte=0"`
}

type AdminCollectionService struct {
	collections ports.CollectionRepository
	cities      ports.CityRepository
	audit       *AuditRecorder
	validate    *validator.Validate
}

func NewAdminCollectionService(collections ports.CollectionRepository, cities ports.CityRepository, audit *AuditRecorder) *AdminCollectionService {
	return &AdminCollectionService{
		collections: collections,
		cities:      cities,
		audit:       audit,
		validate:    newValidator(),
	}
}

func (s *AdminCollectionService) List(ctx context.Context, filter domain.CollectionFilter) ([]domain.Collection, error) {
	return s.collections.ListAdmin(ctx, filter)
}

func (s *AdminCollectionService) Get(ctx context.Context, id int64) (*domain.Collection, error) {
	collection, err := s.collections.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, ErrCollectionNotFound
	}
	return collection, nil
}

func (s *AdminCollectionService) Create(ctx context.Context, input CollectionInput) (*domain.Collection, error) {
	if err := checkStruct(s.validate, input); err != nil {
		return nil, err
	}
	city, err := s.cities.FindByID(ctx, input.CityID)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, newValidationError("city_id", "unknown city")
	}
	existing, err := s.collections.FindBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugConflict
	}

	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	} else if sortOrder, err = s.collections.NextSortOrder(ctx, input.CityID); err != nil {
		return nil, err
	}

	collection, err := s.collections.Insert(ctx, domain.CollectionRecord{
		CityID:      input.CityID,
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		VenueIDs:    input.VenueIDs,
		IsActive:    input.IsActive,
		SortOrder:   sortOrder,
	})
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.AuditActionCreated, "collection", collection.ID, collection.Name, fmt.Sprintf("created collection %q", collection.Slug))
	return collection, nil
}

func (s *AdminCollectionService) Update(ctx context.Context, id int64, patch CollectionPatch) (*domain.Collection, error) {
	existing, err := s.collections.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCollectionNotFound
	}
	if err := checkStruct(s.validate, patch); err != nil {
		return nil, err
	}
	if patch.CityID != nil {
		city, err := s.cities.FindByID(ctx, *patch.CityID)
		if err != nil {
			return nil, err
		}
		if city == nil {
			return nil, newValidationError("city_id", "unknown city")
		}
	}
	if patch.Slug != nil {
		conflict, err := s.collections.FindBySlug(ctx, *patch.Slug)
		if err != nil {
			return nil, err
		}
		if conflict != nil && conflict.ID != id {
			return nil, ErrSlugConflict
		}
	}

	collection, err := s.collections.Update(ctx, id, domain.CollectionChanges{
		CityID:      patch.CityID,
		Name:        patch.Name,
		Slug:        patch.Slug,
		Description: patch.Description,
		VenueIDs:    patch.VenueIDs,
		IsActive:    patch.IsActive,
		SortOrder:   patch.SortOrder,
	})
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, ErrCollectionNotFound
	}
	s.audit.Record(ctx, domain.AuditActionUpdated, "collection", collection.ID, collection.Name, fmt.Sprintf("updated collection %q", collection.Slug))
	return collection, nil
}

func (s *AdminCollectionService) Delete(ctx context.Context, id int64) error {
	existing, err := s.collections.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCollectionNotFound
	}
	if err := s.collections.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, domain.AuditActionDeleted, "collection", id, existing.Name, fmt.Sprintf("deleted collection %q", existing.Slug))
	return nil
}
