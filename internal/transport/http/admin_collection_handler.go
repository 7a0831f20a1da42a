package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
	"github.com/nuitmaroc/nightlife-api/internal/service"
	"github.com/nuitmaroc/nightlife-api/internal/util"
)

type AdminCollectionHandler struct {
	collections *service.AdminCollectionService
}

func RegisterAdminCollections(e *echo.Echo, auth *service.AuthService, collections *service.AdminCollectionService) {
	handler := &AdminCollectionHandler{collections: collections}

	admin := e.Group("/api/v1/admin/collections", RequireSession(auth))
	admin.GET("", handler.list)
	admin.GET("/:id", handler.get)
	admin.POST("", handler.create)
	admin.PATCH("/:id", handler.update)
	admin.DELETE("/:id", handler.remove)
}

func (h *AdminCollectionHandler) list(c echo.Context) error {
	filter := domain.CollectionFilter{
		CitySlug: strings.TrimSpace(c.QueryParam("city")),
		Search:   strings.TrimSpace(c.QueryParam("search")),
	}
	if raw := strings.TrimSpace(c.QueryParam("is_active")); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}
	collections, err := h.collections.List(c.Request().Context(), filter)
	if err != nil {
		return writeAdminError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("collections", collections))
}

func (h *AdminCollectionHandler) get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid collection id"))
	}
	collection, err := h.collections.Get(c.Request().Context(), id)
	if err != nil {
		return writeAdminError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("collection", collection))
}

func (h *AdminCollectionHandler) create(c echo.Context) error {
	var input service.CollectionInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	collection, err := h.collections.Create(c.Request().Context(), input)
	if err != nil {
		return writeAdminError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("collection", collection))
}

func (h *AdminCollectionHandler) update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid collection id"))
	}
	var patch service.CollectionPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	collection, err := h.collections.Update(c.Request().Context(), id, patch)
	if err != nil {
		return writeAdminError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("collection", collection))
}

func (h *AdminCollectionHandler) remove(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid collection id"))
	}
	if err := h.collections.Delete(c.Request().Context(), id); err != nil {
		return writeAdminError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"deleted": true})
}
