package ports

import (
	"context"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Category, error)
}
