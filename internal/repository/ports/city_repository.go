package ports

import (
	"context"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
)

// CityRepository reads the externally administered city table.
// Lookup methods return (nil, nil) when no row matches: an unknown slug is a
// normal navigation outcome, not an error.
type CityRepository interface {
	List(ctx context.Context) ([]domain.City, error)
	FindBySlug(ctx context.Context, slug string) (*domain.City, error)
	FindByID(ctx context.Context, id int64) (*domain.City, error)
}
