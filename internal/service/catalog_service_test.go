package service

import (
	"context"
	"testing"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
)

// newCatalogFixture seeds a small two-city directory. Marrakech has three
// published nightclubs, one rooftop and one draft; Casablanca has one venue.
func newCatalogFixture() (*memoryStore, *CatalogService, *memorySearchRepo) {
	store := newMemoryStore()
	store.cities = []domain.City{
		{ID: 1, Name: "Marrakech", Slug: "marrakech"},
		{ID: 2, Name: "Casablanca", Slug: "casablanca"},
	}
	store.categories = []domain.Category{
		{ID: 1, Name: "Nightclub", Slug: "nightclub", Priority: 1},
		{ID: 2, Name: "Rooftop", Slug: "rooftop", Priority: 2},
	}
	store.tags = []domain.Tag{
		{ID: 10, Name: "Live DJ", Slug: "live-dj"},
		{ID: 20, Name: "VIP", Slug: "vip"},
		{ID: 30, Name: "Terrace", Slug: "terrace"},
	}
	store.venues = []domain.Venue{
		{ID: 1, CityID: 1, CategoryID: 1, Name: "Theatro", Slug: "theatro", Status: domain.VenueStatusPublished, IsSponsored: true, PriorityScore: 80},
		{ID: 2, CityID: 1, CategoryID: 1, Name: "555 Famous Club", Slug: "555-famous-club", Status: domain.VenueStatusPublished, PriorityScore: 90},
		{ID: 3, CityID: 1, CategoryID: 1, Name: "So Night Lounge", Slug: "so-night-lounge", Status: domain.VenueStatusPublished, PriorityScore: 50},
		{ID: 4, CityID: 1, CategoryID: 2, Name: "Sky Bar", Slug: "sky-bar", Status: domain.VenueStatusPublished, PriorityScore: 40},
		{ID: 5, CityID: 1, CategoryID: 1, Name: "Hidden Draft", Slug: "hidden-draft", Status: domain.VenueStatusDraft, PriorityScore: 99},
		{ID: 6, CityID: 2, CategoryID: 1, Name: "Casa Club", Slug: "casa-club", Status: domain.VenueStatusPublished, PriorityScore: 70},
	}
	store.junctions = []domain.VenueTag{
		{VenueID: 1, TagID: 10}, {VenueID: 1, TagID: 20},
		{VenueID: 2, TagID: 10}, {VenueID: 2, TagID: 20},
		{VenueID: 3, TagID: 10},
		{VenueID: 4, TagID: 30},
	}
	store.contents = []domain.VenueContent{
		{ID: 1, VenueID: 1, Locale: domain.LanguageFR, Description: "Le plus grand club de Marrakech"},
		{ID: 2, VenueID: 1, Locale: domain.LanguageEN, Description: "The biggest club in Marrakech"},
		{ID: 3, VenueID: 2, Locale: domain.LanguageEN, Description: "Legendary beachfront-style parties"},
	}
	store.photos = []domain.Photo{
		{ID: 1, VenueID: 1, URL: "https://cdn.test/theatro-2.jpg", IsCover: true, SortOrder: 1},
		{ID: 2, VenueID: 1, URL: "https://cdn.test/theatro-1.jpg", IsCover: true, SortOrder: 0},
		{ID: 3, VenueID: 2, URL: "https://cdn.test/555.jpg", IsCover: true, SortOrder: 0},
		{ID: 4, VenueID: 1, URL: "https://cdn.test/theatro-inside.jpg", SortOrder: 2},
	}
	store.collections = []domain.Collection{
		{ID: 1, CityID: 1, Name: "Best of Marrakech", Slug: "best-of-marrakech", VenueIDs: []int64{1, 2}, IsActive: true},
		{ID: 2, CityID: 1, Name: "Retired List", Slug: "retired-list", VenueIDs: []int64{3}, IsActive: false},
	}

	search := &memorySearchRepo{}
	catalog := NewCatalogService(
		&memoryCityRepo{store},
		&memoryCategoryRepo{store},
		&memoryTagRepo{store},
		&memoryVenueRepo{store},
		&memoryContentRepo{store},
		&memoryPhotoRepo{store},
		&memoryCollectionRepo{store},
		search,
	)
	return store, catalog, search
}

func TestCatalogService_ListVenues(t *testing.T) {
	ctx := context.Background()
	_, catalog, _ := newCatalogFixture()

	t.Run("unknown city returns empty not error", func(t *testing.T) {
		venues, count, err := catalog.ListVenues(ctx, "atlantis", domain.VenueListOptions{})
		if err != nil {
			t.Fatalf("ListVenues: %v", err)
		}
		if len(venues) != 0 || count != 0 {
			t.Fatalf("expected empty result, got %d venues count %d", len(venues), count)
		}
	})

	t.Run("city scope excludes drafts and other cities", func(t *testing.T) {
		venues, count, err := catalog.ListVenues(ctx, "marrakech", domain.VenueListOptions{})
		if err != nil {
			t.Fatalf("ListVenues: %v", err)
		}
		if count != 4 || len(venues) != 4 {
			t.Fatalf("expected 4 published Marrakech venues, got %d (count %d)", len(venues), count)
		}
		for _, v := range venues {
			if v.Status != domain.VenueStatusPublished || v.CityID != 1 {
				t.Fatalf("unexpected venue in result: %+v", v)
			}
		}
	})

	t.Run("sponsored first then priority desc", func(t *testing.T) {
		venues, _, err := catalog.ListVenues(ctx, "marrakech", domain.VenueListOptions{CategorySlug: "nightclub"})
		if err != nil {
			t.Fatalf("ListVenues: %v", err)
		}
		want := []int64{1, 2, 3}
		for i, id := range want {
			if venues[i].ID != id {
				t.Fatalf("position %d: got venue %d, want %d", i, venues[i].ID, id)
			}
		}
	})

	t.Run("unknown category filter is dropped", func(t *testing.T) {
		venues, count, err := catalog.ListVenues(ctx, "marrakech", domain.VenueListOptions{CategorySlug: "bowling"})
		if err != nil {
			t.Fatalf("ListVenues: %v", err)
		}
		if count != 4 {
			t.Fatalf("expected forgiving category filter, got count %d with %d venues", count, len(venues))
		}
	})

	t.Run("tags require every tag", func(t *testing.T) {
		venues, count, err := catalog.ListVenues(ctx, "marrakech", domain.VenueListOptions{TagSlugs: []string{"live-dj", "vip"}})
		if err != nil {
			t.Fatalf("ListVenues: %v", err)
		}
		if count != 2 {
			t.Fatalf("expected 2 venues carrying both tags, got %d", count)
		}
		for _, v := range venues {
			if v.ID != 1 && v.ID != 2 {
				t.Fatalf("venue %d does not carry both tags", v.ID)
			}
		}
	})

	t.Run("unknown tag slugs are dropped", func(t *testing.T) {
		_, count, err := catalog.ListVenues(ctx, "marrakech", domain.VenueListOptions{TagSlugs: []string{"karaoke"}})
		if err != nil {
			t.Fatalf("ListVenues: %v", err)
		}
		if count != 4 {
			t.Fatalf("expected tag filter to be dropped entirely, got count %d", count)
		}
	})

	t.Run("no tag survivors short-circuits", func(t *testing.T) {
		venues, count, err := catalog.ListVenues(ctx, "marrakech", domain.VenueListOptions{TagSlugs: []string{"vip", "terrace"}})
		if err != nil {
			t.Fatalf("ListVenues: %v", err)
		}
		if len(venues) != 0 || count != 0 {
			t.Fatalf("expected short-circuit empty result, got %d venues count %d", len(venues), count)
		}
	})

	t.Run("count ignores pagination", func(t *testing.T) {
		venues, count, err := catalog.ListVenues(ctx, "marrakech", domain.VenueListOptions{CategorySlug: "nightclub", Page: 2, Limit: 2})
		if err != nil {
			t.Fatalf("ListVenues: %v", err)
		}
		if count != 3 {
			t.Fatalf("expected total 3, got %d", count)
		}
		if len(venues) != 1 || venues[0].ID != 3 {
			t.Fatalf("expected last page to hold venue 3, got %+v", venues)
		}
	})

	t.Run("page past the end yields empty page with true count", func(t *testing.T) {
		venues, count, err := catalog.ListVenues(ctx, "marrakech", domain.VenueListOptions{Page: 9, Limit: 10})
		if err != nil {
			t.Fatalf("ListVenues: %v", err)
		}
		if len(venues) != 0 || count != 4 {
			t.Fatalf("expected empty page with count 4, got %d venues count %d", len(venues), count)
		}
	})

	t.Run("end to end scenario", func(t *testing.T) {
		venues, count, err := catalog.ListVenues(ctx, "marrakech", domain.VenueListOptions{
			CategorySlug: "nightclub",
			TagSlugs:     []string{"live-dj", "vip"},
			Page:         1,
			Limit:        2,
		})
		if err != nil {
			t.Fatalf("ListVenues: %v", err)
		}
		if count != 2 {
			t.Fatalf("expected count 2, got %d", count)
		}
		if len(venues) != 2 || venues[0].ID != 1 || venues[1].ID != 2 {
			t.Fatalf("expected sponsored Theatro before 555, got %+v", venues)
		}
	})
}

func TestCatalogService_VenueCards(t *testing.T) {
	ctx := context.Background()
	_, catalog, _ := newCatalogFixture()

	t.Run("unknown city returns empty", func(t *testing.T) {
		cards, count, err := catalog.VenueCards(ctx, "atlantis", domain.LanguageFR, domain.VenueListOptions{})
		if err != nil {
			t.Fatalf("VenueCards: %v", err)
		}
		if len(cards) != 0 || count != 0 {
			t.Fatalf("expected empty, got %d cards count %d", len(cards), count)
		}
	})

	t.Run("cards preserve venue order", func(t *testing.T) {
		cards, count, err := catalog.VenueCards(ctx, "marrakech", domain.LanguageFR, domain.VenueListOptions{CategorySlug: "nightclub"})
		if err != nil {
			t.Fatalf("VenueCards: %v", err)
		}
		if count != 3 || len(cards) != 3 {
			t.Fatalf("expected 3 cards, got %d (count %d)", len(cards), count)
		}
		want := []int64{1, 2, 3}
		for i, id := range want {
			if cards[i].ID != id {
				t.Fatalf("position %d: got card %d, want %d", i, cards[i].ID, id)
			}
		}
	})

	t.Run("language resolution and fallback", func(t *testing.T) {
		cards, _, err := catalog.VenueCards(ctx, "marrakech", domain.LanguageFR, domain.VenueListOptions{CategorySlug: "nightclub"})
		if err != nil {
			t.Fatalf("VenueCards: %v", err)
		}
		if cards[0].Description != "Le plus grand club de Marrakech" {
			t.Fatalf("expected requested-language description, got %q", cards[0].Description)
		}
		// Venue 2 has only English content, French request falls back.
		if cards[1].Description != "Legendary beachfront-style parties" {
			t.Fatalf("expected fallback description, got %q", cards[1].Description)
		}
		// Venue 3 has no content at all.
		if cards[2].Description != "" {
			t.Fatalf("expected empty description, got %q", cards[2].Description)
		}
	})

	t.Run("existing row wins over fallback even when empty", func(t *testing.T) {
		byLang := map[domain.Language]string{
			domain.LanguageFR: "",
			domain.LanguageEN: "English text",
		}
		if got := resolveDescription(byLang, domain.LanguageFR); got != "" {
			t.Fatalf("expected the existing empty row, got %q", got)
		}
		if got := resolveDescription(byLang, domain.LanguageEN); got != "English text" {
			t.Fatalf("expected requested-language row, got %q", got)
		}
	})

	t.Run("cover tie-break picks lowest sort order", func(t *testing.T) {
		cards, _, err := catalog.VenueCards(ctx, "marrakech", domain.LanguageEN, domain.VenueListOptions{CategorySlug: "nightclub"})
		if err != nil {
			t.Fatalf("VenueCards: %v", err)
		}
		if cards[0].CoverPhoto == nil || *cards[0].CoverPhoto != "https://cdn.test/theatro-1.jpg" {
			t.Fatalf("expected sort-order-0 cover to win, got %v", cards[0].CoverPhoto)
		}
		if cards[2].CoverPhoto != nil {
			t.Fatalf("expected nil cover for venue without one, got %v", cards[2].CoverPhoto)
		}
	})

	t.Run("slugs and tag names are resolved", func(t *testing.T) {
		cards, _, err := catalog.VenueCards(ctx, "marrakech", domain.LanguageEN, domain.VenueListOptions{CategorySlug: "nightclub"})
		if err != nil {
			t.Fatalf("VenueCards: %v", err)
		}
		card := cards[0]
		if card.CitySlug != "marrakech" || card.CategorySlug != "nightclub" {
			t.Fatalf("unexpected slugs on card: %+v", card)
		}
		if len(card.Tags) != 2 {
			t.Fatalf("expected 2 tag names, got %v", card.Tags)
		}
		seen := map[string]bool{}
		for _, name := range card.Tags {
			seen[name] = true
		}
		if !seen["Live DJ"] || !seen["VIP"] {
			t.Fatalf("unexpected tag names: %v", card.Tags)
		}
	})
}

func TestCatalogService_VenueDetail(t *testing.T) {
	ctx := context.Background()
	_, catalog, _ := newCatalogFixture()

	t.Run("any unresolved segment yields nil", func(t *testing.T) {
		for _, triple := range [][3]string{
			{"atlantis", "nightclub", "theatro"},
			{"marrakech", "bowling", "theatro"},
			{"marrakech", "nightclub", "missing"},
			{"marrakech", "rooftop", "theatro"},
			{"marrakech", "nightclub", "hidden-draft"},
		} {
			venue, err := catalog.VenueDetail(ctx, triple[0], triple[1], triple[2], domain.LanguageFR)
			if err != nil {
				t.Fatalf("VenueDetail(%v): %v", triple, err)
			}
			if venue != nil {
				t.Fatalf("VenueDetail(%v): expected nil", triple)
			}
		}
	})

	t.Run("full detail with requested language first", func(t *testing.T) {
		venue, err := catalog.VenueDetail(ctx, "marrakech", "nightclub", "theatro", domain.LanguageEN)
		if err != nil {
			t.Fatalf("VenueDetail: %v", err)
		}
		if venue == nil {
			t.Fatal("expected venue")
		}
		if venue.City == nil || venue.City.Slug != "marrakech" || venue.Category == nil || venue.Category.Slug != "nightclub" {
			t.Fatalf("expected resolved city and category, got %+v", venue)
		}
		if len(venue.Contents) != 2 || venue.Contents[0].Locale != domain.LanguageEN {
			t.Fatalf("expected english content first, got %+v", venue.Contents)
		}
		if len(venue.Photos) != 3 {
			t.Fatalf("expected 3 photos, got %d", len(venue.Photos))
		}
		if venue.Photos[0].SortOrder != 0 {
			t.Fatalf("expected photos ordered by display order, got %+v", venue.Photos)
		}
		if len(venue.Tags) != 2 {
			t.Fatalf("expected 2 tags, got %+v", venue.Tags)
		}
	})
}

func TestCatalogService_CollectionsAndSearch(t *testing.T) {
	ctx := context.Background()
	_, catalog, search := newCatalogFixture()

	t.Run("collections scoped to city and active", func(t *testing.T) {
		collections, err := catalog.CollectionsByCity(ctx, "marrakech")
		if err != nil {
			t.Fatalf("CollectionsByCity: %v", err)
		}
		if len(collections) != 1 || collections[0].Slug != "best-of-marrakech" {
			t.Fatalf("unexpected collections: %+v", collections)
		}
	})

	t.Run("unknown city collections empty", func(t *testing.T) {
		collections, err := catalog.CollectionsByCity(ctx, "atlantis")
		if err != nil {
			t.Fatalf("CollectionsByCity: %v", err)
		}
		if len(collections) != 0 {
			t.Fatalf("expected empty, got %+v", collections)
		}
	})

	t.Run("search forwards resolved city id", func(t *testing.T) {
		search.results = []domain.SearchResult{{ID: 1, Name: "Theatro", Slug: "theatro", Rank: 0.9}}
		results, err := catalog.Search(ctx, "theatro", "marrakech")
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("expected delegated results, got %+v", results)
		}
		if search.lastCityID == nil || *search.lastCityID != 1 {
			t.Fatalf("expected city id 1, got %v", search.lastCityID)
		}
	})

	t.Run("blank query returns empty without delegation", func(t *testing.T) {
		for _, query := range []string{"", "   ", "\t\n"} {
			before := search.searchCalls
			results, err := catalog.Search(ctx, query, "marrakech")
			if err != nil {
				t.Fatalf("Search(%q): %v", query, err)
			}
			if len(results) != 0 || search.searchCalls != before {
				t.Fatalf("expected no delegation for %q, got %+v", query, results)
			}
		}
	})

	t.Run("query forwards trimmed", func(t *testing.T) {
		if _, err := catalog.Search(ctx, "  theatro  ", ""); err != nil {
			t.Fatalf("Search: %v", err)
		}
		if search.lastQuery != "theatro" {
			t.Fatalf("expected trimmed query, got %q", search.lastQuery)
		}
	})

	t.Run("search with unknown city returns empty without delegation", func(t *testing.T) {
		search.lastQuery = ""
		results, err := catalog.Search(ctx, "theatro", "atlantis")
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(results) != 0 || search.lastQuery != "" {
			t.Fatalf("expected no delegation, got %+v (query %q)", results, search.lastQuery)
		}
	})
}

func TestCatalogService_SlugLookups(t *testing.T) {
	_, catalog, _ := newCatalogFixture()
	ctx := context.Background()

	t.Run("known city", func(t *testing.T) {
		city, err := catalog.CityBySlug(ctx, "marrakech")
		if err != nil {
			t.Fatalf("CityBySlug: %v", err)
		}
		if city == nil || city.ID != 1 {
			t.Fatalf("unexpected city: %+v", city)
		}
	})

	t.Run("unknown city is nil not error", func(t *testing.T) {
		city, err := catalog.CityBySlug(ctx, "atlantis")
		if err != nil {
			t.Fatalf("CityBySlug: %v", err)
		}
		if city != nil {
			t.Fatalf("expected nil, got %+v", city)
		}
	})

	t.Run("known category", func(t *testing.T) {
		category, err := catalog.CategoryBySlug(ctx, "rooftop")
		if err != nil {
			t.Fatalf("CategoryBySlug: %v", err)
		}
		if category == nil || category.ID != 2 {
			t.Fatalf("unexpected category: %+v", category)
		}
	})

	t.Run("unknown category is nil not error", func(t *testing.T) {
		category, err := catalog.CategoryBySlug(ctx, "bowling")
		if err != nil {
			t.Fatalf("CategoryBySlug: %v", err)
		}
		if category != nil {
			t.Fatalf("expected nil, got %+v", category)
		}
	})
}
