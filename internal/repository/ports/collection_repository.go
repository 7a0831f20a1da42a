package ports

import (
	"context"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
)

type CollectionRepository interface {
	ByCityID(ctx context.Context, cityID int64) ([]domain.Collection, error)
	ListFeatured(ctx context.Context, limit int) ([]domain.Collection, error)
	ListAdmin(ctx context.Context, filter domain.CollectionFilter) ([]domain.Collection, error)
	FindByID(ctx context.Context, id int64) (*domain.Collection, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Collection, error)

	// ContainingVenue returns every collection whose venue_ids array holds
	// the given venue; used to maintain referential consistency on delete.
	ContainingVenue(ctx context.Context, venueID int64) ([]domain.Collection, error)

	// NextSortOrder returns the next free sort_order slot for a city.
	NextSortOrder(ctx context.Context, cityID int64) (int, error)
	Count(ctx context.Context) (int, error)

	Insert(ctx context.Context, record domain.CollectionRecord) (*domain.Collection, error)
	Update(ctx context.Context, id int64, changes domain.CollectionChanges) (*domain.Collection, error)
	Delete(ctx context.Context, id int64) error
}
