package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
	"github.com/nuitmaroc/nightlife-api/internal/service"
	"github.com/nuitmaroc/nightlife-api/internal/util"
)

// VenueHandler serves the public, read-only catalog routes. Everything here
// is scoped to published venues; internal notes never leave this boundary
// because the field is excluded from serialization at the domain level.
type VenueHandler struct {
	catalog *service.CatalogService
}

func RegisterCatalog(e *echo.Echo, catalog *service.CatalogService) {
	handler := &VenueHandler{catalog: catalog}

	public := e.Group("/api/v1")
	public.GET("/cities", handler.listCities)
	public.GET("/cities/:slug", handler.cityDetail)
	public.GET("/categories", handler.listCategories)
	public.GET("/categories/:slug", handler.categoryDetail)
	public.GET("/tags", handler.listTags)
	public.GET("/cities/:slug/venues", handler.listVenues)
	public.GET("/cities/:slug/cards", handler.listCards)
	public.GET("/cities/:slug/collections", handler.listCollections)
	public.GET("/venues/:city/:category/:slug", handler.venueDetail)
	public.GET("/featured/venues", handler.featuredVenues)
	public.GET("/featured/collections", handler.featuredCollections)
}

func (h *VenueHandler) listCities(c echo.Context) error {
	cities, err := h.catalog.ListCities(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load cities"))
	}
	return c.JSON(http.StatusOK, util.Data("cities", cities))
}

func (h *VenueHandler) cityDetail(c echo.Context) error {
	city, err := h.catalog.CityBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load city"))
	}
	if city == nil {
		return c.JSON(http.StatusNotFound, util.Error("city not found"))
	}
	return c.JSON(http.StatusOK, util.Data("city", city))
}

func (h *VenueHandler) categoryDetail(c echo.Context) error {
	category, err := h.catalog.CategoryBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load category"))
	}
	if category == nil {
		return c.JSON(http.StatusNotFound, util.Error("category not found"))
	}
	return c.JSON(http.StatusOK, util.Data("category", category))
}

func (h *VenueHandler) listCategories(c echo.Context) error {
	categories, err := h.catalog.ListCategories(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load categories"))
	}
	return c.JSON(http.StatusOK, util.Data("categories", categories))
}

func (h *VenueHandler) listTags(c echo.Context) error {
	tags, err := h.catalog.ListTags(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load tags"))
	}
	return c.JSON(http.StatusOK, util.Data("tags", tags))
}

func (h *VenueHandler) listVenues(c echo.Context) error {
	venues, count, err := h.catalog.ListVenues(c.Request().Context(), c.Param("slug"), venueListOptions(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load venues"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"venues": venues, "count": count})
}

func (h *VenueHandler) listCards(c echo.Context) error {
	lang := domain.ParseLanguage(c.QueryParam("lang"))
	cards, count, err := h.catalog.VenueCards(c.Request().Context(), c.Param("slug"), lang, venueListOptions(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load venue cards"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"cards": cards, "count": count})
}

func (h *VenueHandler) listCollections(c echo.Context) error {
	collections, err := h.catalog.CollectionsByCity(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load collections"))
	}
	return c.JSON(http.StatusOK, util.Data("collections", collections))
}

func (h *VenueHandler) venueDetail(c echo.Context) error {
	lang := domain.ParseLanguage(c.QueryParam("lang"))
	venue, err := h.catalog.VenueDetail(c.Request().Context(), c.Param("city"), c.Param("category"), c.Param("slug"), lang)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load venue"))
	}
	if venue == nil {
		return c.JSON(http.StatusNotFound, util.Error("venue not found"))
	}
	return c.JSON(http.StatusOK, util.Data("venue", venue))
}

func (h *VenueHandler) featuredVenues(c echo.Context) error {
	venues, err := h.catalog.FeaturedVenues(c.Request().Context(), queryInt(c, "limit", 0))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load featured venues"))
	}
	return c.JSON(http.StatusOK, util.Data("venues", venues))
}

func (h *VenueHandler) featuredCollections(c echo.Context) error {
	collections, err := h.catalog.FeaturedCollections(c.Request().Context(), queryInt(c, "limit", 0))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load featured collections"))
	}
	return c.JSON(http.StatusOK, util.Data("collections", collections))
}

// venueListOptions parses the shared public list filters. Out-of-range page
// and limit values are passed through as-is; the store returns zero rows for
// offsets past the end.
func venueListOptions(c echo.Context) domain.VenueListOptions {
	return domain.VenueListOptions{
		CategorySlug: strings.TrimSpace(c.QueryParam("category")),
		TagSlugs:     splitSlugs(c.QueryParam("tags")),
		Page:         queryInt(c, "page", 0),
		Limit:        queryInt(c, "limit", 0),
	}
}

func splitSlugs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	slugs := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			slugs = append(slugs, s)
		}
	}
	return slugs
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
