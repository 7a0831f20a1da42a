package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
	"github.com/nuitmaroc/nightlife-api/internal/repository/ports"
)

type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepo(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	categories := make([]domain.Category, 0)
	err := r.db.SelectContext(ctx, &categories, `
		SELECT id, name, slug, priority
		FROM categories
		ORDER BY priority ASC
	`)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.GetContext(ctx, &category, `
		SELECT id, name, slug, priority
		FROM categories
		WHERE slug = $1
	`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Category, error) {
	if len(ids) == 0 {
		return []domain.Category{}, nil
	}
	categories := make([]domain.Category, 0, len(ids))
	err := r.db.SelectContext(ctx, &categories, `
		SELECT id, name, slug, priority
		FROM categories
		WHERE id = ANY($1)
	`, int64Array(ids))
	if err != nil {
		return nil, err
	}
	return categories, nil
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)
