package service

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
	"github.com/nuitmaroc/nightlife-api/internal/repository/ports"
)

// CatalogService serves every public read path: filtered venue lists, card
// assembly, detail resolution, collections and the two store-side search
// functions. It holds no state across calls.
type CatalogService struct {
	cities      ports.CityRepository
	categories  ports.CategoryRepository
	tags        ports.TagRepository
	venues      ports.VenueRepository
	contents    ports.ContentRepository
	photos      ports.PhotoRepository
	collections ports.CollectionRepository
	search      ports.SearchRepository
}

func NewCatalogService(
	cities ports.CityRepository,
	categories ports.CategoryRepository,
	tags ports.TagRepository,
	venues ports.VenueRepository,
	contents ports.ContentRepository,
	photos ports.PhotoRepository,
	collections ports.CollectionRepository,
	search ports.SearchRepository,
) *CatalogService {
	return &CatalogService{
		cities:      cities,
		categories:  categories,
		tags:        tags,
		venues:      venues,
		contents:    contents,
		photos:      photos,
		collections: collections,
		search:      search,
	}
}

func (s *CatalogService) ListCities(ctx context.Context) ([]domain.City, error) {
	return s.cities.List(ctx)
}

// CityBySlug returns nil for an unknown slug.
func (s *CatalogService) CityBySlug(ctx context.Context, slug string) (*domain.City, error) {
	return s.cities.FindBySlug(ctx, slug)
}

func (s *CatalogService) CategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return s.categories.FindBySlug(ctx, slug)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx)
}

// ListVenues returns one page of published venues for a city plus the total
// match count. An unknown city slug yields an empty result, not an error:
// slugs are user-navigable so a miss is a normal outcome.
func (s *CatalogService) ListVenues(ctx context.Context, citySlug string, opts domain.VenueListOptions) ([]domain.Venue, int, error) {
	city, err := s.cities.FindBySlug(ctx, citySlug)
	if err != nil {
		return nil, 0, err
	}
	if city == nil {
		return []domain.Venue{}, 0, nil
	}
	return s.listForCity(ctx, city.ID, opts)
}

func (s *CatalogService) listForCity(ctx context.Context, cityID int64, opts domain.VenueListOptions) ([]domain.Venue, int, error) {
	limit := opts.LimitOrDefault()
	q := ports.PublishedVenueQuery{
		CityID: cityID,
		Limit:  limit,
		Offset: (opts.PageOrDefault() - 1) * limit,
	}

	// An unknown category slug drops the filter instead of failing the
	// request (forgiving-filter policy).
	if opts.CategorySlug != "" {
		category, err := s.categories.FindBySlug(ctx, opts.CategorySlug)
		if err != nil {
			return nil, 0, err
		}
		if category != nil {
			q.CategoryID = &category.ID
		}
	}

	if len(opts.TagSlugs) > 0 {
		tags, err := s.tags.FindBySlugs(ctx, opts.TagSlugs)
		if err != nil {
			return nil, 0, err
		}
		if len(tags) > 0 {
			tagIDs := make([]int64, 0, len(tags))
			for _, t := range tags {
				tagIDs = append(tagIDs, t.ID)
			}
			rows, err := s.tags.JunctionByTagIDs(ctx, tagIDs)
			if err != nil {
				return nil, 0, err
			}
			venueIDs := VenueIDsWithAllTags(rows, len(tagIDs))
			if len(venueIDs) == 0 {
				return []domain.Venue{}, 0, nil
			}
			q.VenueIDs = venueIDs
		}
	}

	return s.venues.ListPublished(ctx, q)
}

// VenueCards runs the filtered list and enriches the page into denormalized
// cards with a fixed number of batched fetches, regardless of page size.
// Card order matches the underlying venue rows exactly.
func (s *CatalogService) VenueCards(ctx context.Context, citySlug string, lang domain.Language, opts domain.VenueListOptions) ([]domain.VenueCard, int, error) {
	city, err := s.cities.FindBySlug(ctx, citySlug)
	if err != nil {
		return nil, 0, err
	}
	if city == nil {
		return []domain.VenueCard{}, 0, nil
	}

	venues, count, err := s.listForCity(ctx, city.ID, opts)
	if err != nil {
		return nil, 0, err
	}
	if len(venues) == 0 {
		return []domain.VenueCard{}, count, nil
	}

	venueIDs := make([]int64, 0, len(venues))
	categoryIDSet := make(map[int64]struct{}, len(venues))
	for _, v := range venues {
		venueIDs = append(venueIDs, v.ID)
		categoryIDSet[v.CategoryID] = struct{}{}
	}
	categoryIDs := make([]int64, 0, len(categoryIDSet))
	for id := range categoryIDSet {
		categoryIDs = append(categoryIDs, id)
	}

	var (
		contents   []domain.VenueContent
		covers     []domain.Photo
		junctions  []domain.VenueTag
		categories []domain.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contents, err = s.contents.ByVenueIDs(gctx, venueIDs)
		return err
	})
	g.Go(func() error {
		var err error
		covers, err = s.photos.CoversByVenueIDs(gctx, venueIDs)
		return err
	})
	g.Go(func() error {
		var err error
		junctions, err = s.tags.JunctionByVenueIDs(gctx, venueIDs)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.categories.FindByIDs(gctx, categoryIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	descriptions := make(map[int64]map[domain.Language]string, len(venues))
	for _, c := range contents {
		byLang, ok := descriptions[c.VenueID]
		if !ok {
			byLang = make(map[domain.Language]string, 2)
			descriptions[c.VenueID] = byLang
		}
		byLang[c.Locale] = c.Description
	}

	// Covers arrive ordered by sort_order then id; the first row per venue
	// wins when several photos carry the flag.
	coverURLs := make(map[int64]string, len(covers))
	for _, p := range covers {
		if _, ok := coverURLs[p.VenueID]; !ok {
			coverURLs[p.VenueID] = p.URL
		}
	}

	tagIDsByVenue := make(map[int64][]int64, len(venues))
	tagIDSet := make(map[int64]struct{})
	for _, j := range junctions {
		tagIDsByVenue[j.VenueID] = append(tagIDsByVenue[j.VenueID], j.TagID)
		tagIDSet[j.TagID] = struct{}{}
	}
	tagNames := make(map[int64]string, len(tagIDSet))
	if len(tagIDSet) > 0 {
		distinct := make([]int64, 0, len(tagIDSet))
		for id := range tagIDSet {
			distinct = append(distinct, id)
		}
		tags, err := s.tags.FindByIDs(ctx, distinct)
		if err != nil {
			return nil, 0, err
		}
		for _, t := range tags {
			tagNames[t.ID] = t.Name
		}
	}

	categorySlugs := make(map[int64]string, len(categories))
	for _, c := range categories {
		categorySlugs[c.ID] = c.Slug
	}

	cards := make([]domain.VenueCard, 0, len(venues))
	for _, v := range venues {
		names := make([]string, 0, len(tagIDsByVenue[v.ID]))
		for _, tagID := range tagIDsByVenue[v.ID] {
			if name, ok := tagNames[tagID]; ok {
				names = append(names, name)
			}
		}
		card := domain.VenueCard{
			ID:            v.ID,
			Name:          v.Name,
			Slug:          v.Slug,
			Neighborhood:  v.Neighborhood,
			PriceRange:    v.PriceRange,
			IsSponsored:   v.IsSponsored,
			PriorityScore: v.PriorityScore,
			Description:   resolveDescription(descriptions[v.ID], lang),
			CategorySlug:  categorySlugs[v.CategoryID],
			CitySlug:      city.Slug,
			Tags:          names,
		}
		if url, ok := coverURLs[v.ID]; ok {
			card.CoverPhoto = &url
		}
		cards = append(cards, card)
	}
	return cards, count, nil
}

// resolveDescription prefers the requested language, falls back to the other
// one, and degrades to an empty string when no content row exists. The
// fallback keys on row presence: an existing row wins even with an empty
// description.
func resolveDescription(byLang map[domain.Language]string, lang domain.Language) string {
	if d, ok := byLang[lang]; ok {
		return d
	}
	return byLang[lang.Other()]
}

// VenueDetail resolves the canonical (city, category, venue) slug triple to
// the fully joined detail payload. Any unresolved segment returns (nil, nil),
// which callers translate to a not-found page.
func (s *CatalogService) VenueDetail(ctx context.Context, citySlug, categorySlug, venueSlug string, lang domain.Language) (*domain.VenueWithDetails, error) {
	city, err := s.cities.FindBySlug(ctx, citySlug)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, nil
	}
	category, err := s.categories.FindBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	venue, err := s.venues.FindPublished(ctx, city.ID, category.ID, venueSlug)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, nil
	}

	var (
		contents  []domain.VenueContent
		photos    []domain.Photo
		junctions []domain.VenueTag
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contents, err = s.contents.ByVenueID(gctx, venue.ID)
		return err
	})
	g.Go(func() error {
		var err error
		photos, err = s.photos.ByVenueID(gctx, venue.ID)
		return err
	})
	g.Go(func() error {
		var err error
		junctions, err = s.tags.JunctionByVenueIDs(gctx, []int64{venue.ID})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var tags []domain.Tag
	if len(junctions) > 0 {
		tagIDs := make([]int64, 0, len(junctions))
		for _, j := range junctions {
			tagIDs = append(tagIDs, j.TagID)
		}
		tags, err = s.tags.FindByIDs(ctx, tagIDs)
		if err != nil {
			return nil, err
		}
	}

	// Requested language first, stable otherwise.
	sort.SliceStable(contents, func(i, j int) bool {
		return contents[i].Locale == lang && contents[j].Locale != lang
	})

	return &domain.VenueWithDetails{
		Venue:    *venue,
		Contents: contents,
		Photos:   photos,
		Tags:     tags,
		City:     city,
		Category: category,
	}, nil
}

// CollectionsByCity returns the city's active collections. An unknown city
// slug yields an empty list.
func (s *CatalogService) CollectionsByCity(ctx context.Context, citySlug string) ([]domain.Collection, error) {
	city, err := s.cities.FindBySlug(ctx, citySlug)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return []domain.Collection{}, nil
	}
	return s.collections.ByCityID(ctx, city.ID)
}

func (s *CatalogService) FeaturedVenues(ctx context.Context, limit int) ([]domain.Venue, error) {
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}
	return s.venues.ListFeatured(ctx, limit)
}

func (s *CatalogService) FeaturedCollections(ctx context.Context, limit int) ([]domain.Collection, error) {
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}
	return s.collections.ListFeatured(ctx, limit)
}

// Search delegates to the search_venues store function. Results arrive
// ranked; this layer does not re-sort. A blank query or a city slug that
// does not resolve yields no rows without hitting the store.
func (s *CatalogService) Search(ctx context.Context, query, citySlug string) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}
	var cityID *int64
	if citySlug != "" {
		city, err := s.cities.FindBySlug(ctx, citySlug)
		if err != nil {
			return nil, err
		}
		if city == nil {
			return []domain.SearchResult{}, nil
		}
		cityID = &city.ID
	}
	return s.search.Search(ctx, query, cityID)
}

// Nearby delegates to the nearby_venues store function.
func (s *CatalogService) Nearby(ctx context.Context, lat, lng float64, radiusM *float64) ([]domain.NearbyVenue, error) {
	return s.search.Nearby(ctx, lat, lng, radiusM)
}
