package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nuitmaroc/nightlife-api/internal/service"
	"github.com/nuitmaroc/nightlife-api/internal/util"
)

// SearchHandler exposes the two store-side search functions.
type SearchHandler struct {
	catalog *service.CatalogService
}

func RegisterSearch(e *echo.Echo, catalog *service.CatalogService) {
	handler := &SearchHandler{catalog: catalog}
	public := e.Group("/api/v1")
	public.GET("/search", handler.search)
	public.GET("/nearby", handler.nearby)
}

func (h *SearchHandler) search(c echo.Context) error {
	results, err := h.catalog.Search(c.Request().Context(), c.QueryParam("q"), strings.TrimSpace(c.QueryParam("city")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("search failed"))
	}
	return c.JSON(http.StatusOK, util.Data("results", results))
}

func (h *SearchHandler) nearby(c echo.Context) error {
	lat, err := strconv.ParseFloat(strings.TrimSpace(c.QueryParam("lat")), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("lat must be a number"))
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(c.QueryParam("lng")), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("lng must be a number"))
	}
	var radiusM *float64
	if raw := strings.TrimSpace(c.QueryParam("radius_m")); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil || r <= 0 {
			return c.JSON(http.StatusBadRequest, util.Error("radius_m must be a positive number"))
		}
		radiusM = &r
	}
	venues, err := h.catalog.Nearby(c.Request().Context(), lat, lng, radiusM)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("nearby lookup failed"))
	}
	return c.JSON(http.StatusOK, util.Data("venues", venues))
}
