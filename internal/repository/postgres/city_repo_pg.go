package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
	"github.com/nuitmaroc/nightlife-api/internal/repository/ports"
)

const cityColumns = `id, name, slug, description, hero_image_url, latitude, longitude, created_at`

type CityRepository struct {
	db *sqlx.DB
}

func NewCityRepo(db *sqlx.DB) *CityRepository {
	return &CityRepository{db: db}
}

func (r *CityRepository) List(ctx context.Context) ([]domain.City, error) {
	cities := make([]domain.City, 0)
	err := r.db.SelectContext(ctx, &cities, `
		SELECT `+cityColumns+`
		FROM cities
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *CityRepository) FindBySlug(ctx context.Context, slug string) (*domain.City, error) {
	var city domain.City
	err := r.db.GetContext(ctx, &city, `
		SELECT `+cityColumns+`
		FROM cities
		WHERE slug = $1
	`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *CityRepository) FindByID(ctx context.Context, id int64) (*domain.City, error) {
	var city domain.City
	err := r.db.GetContext(ctx, &city, `
		SELECT `+cityColumns+`
		FROM cities
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &city, nil
}

var _ ports.CityRepository = (*CityRepository)(nil)
