package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nuitmaroc/nightlife-api/internal/domain"
	"github.com/nuitmaroc/nightlife-api/internal/media"
	"github.com/nuitmaroc/nightlife-api/internal/service"
	"github.com/nuitmaroc/nightlife-api/internal/util"
)

type AdminVenueHandler struct {
	venues *service.AdminVenueService
}

// adminVenue re-exposes internal_notes, which the domain type excludes from
// serialization so it can never leak through the public routes.
type adminVenue struct {
	domain.Venue
	InternalNotes *string `json:"internal_notes,omitempty"`
}

type adminVenueDetail struct {
	domain.VenueWithDetails
	InternalNotes *string `json:"internal_notes,omitempty"`
}

func adminVenueView(v domain.Venue) adminVenue {
	return adminVenue{Venue: v, InternalNotes: v.InternalNotes}
}

func adminVenueViews(venues []domain.Venue) []adminVenue {
	out := make([]adminVenue, 0, len(venues))
	for _, v := range venues {
		out = append(out, adminVenueView(v))
	}
	return out
}

func RegisterAdminVenues(e *echo.Echo, auth *service.AuthService, venues *service.AdminVenueService) {
	handler := &AdminVenueHandler{venues: venues}

	admin := e.Group("/api/v1/admin/venues", RequireSession(auth))
	admin.GET("", handler.list)
	admin.GET("/stats", handler.stats)
	admin.GET("/:id", handler.get)
	admin.POST("", handler.create)
	admin.PUT("/:id", handler.replace)
	admin.PATCH("/:id", handler.patch)
	admin.DELETE("/:id", handler.remove)
	admin.POST("/:id/photos", handler.uploadPhoto)
}

func (h *AdminVenueHandler) list(c echo.Context) error {
	filter, err := adminVenueFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	venues, total, err := h.venues.List(c.Request().Context(), filter)
	if err != nil {
		return writeAdminError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"venues": adminVenueViews(venues), "total": total})
}

func (h *AdminVenueHandler) stats(c echo.Context) error {
	stats, err := h.venues.Stats(c.Request().Context())
	if err != nil {
		return writeAdminError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("stats", stats))
}

func (h *AdminVenueHandler) get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid venue id"))
	}
	venue, err := h.venues.Get(c.Request().Context(), id)
	if err != nil {
		return writeAdminError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("venue", adminVenueDetail{VenueWithDetails: *venue, InternalNotes: venue.InternalNotes}))
}

func (h *AdminVenueHandler) create(c echo.Context) error {
	var input service.VenueInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	venue, err := h.venues.Create(c.Request().Context(), input)
	if err != nil {
		return writeAdminError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("venue", adminVenueView(*venue)))
}

// replace is the full update: the payload is validated as a complete record
// and relational sub-rows are replaced wholesale.
func (h *AdminVenueHandler) replace(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid venue id"))
	}
	var input service.VenueInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	venue, err := h.venues.Update(c.Request().Context(), id, service.VenueUpdate{Full: &input})
	if err != nil {
		return writeAdminError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("venue", adminVenueView(*venue)))
}

// patch is the sparse update: only the provided scalar fields change and
// sub-rows are left untouched.
func (h *AdminVenueHandler) patch(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid venue id"))
	}
	var partial service.VenuePartial
	if err := c.Bind(&partial); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	venue, err := h.venues.Update(c.Request().Context(), id, service.VenueUpdate{Partial: &partial})
	if err != nil {
		return writeAdminError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("venue", adminVenueView(*venue)))
}

func (h *AdminVenueHandler) remove(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid venue id"))
	}
	if err := h.venues.Delete(c.Request().Context(), id); err != nil {
		return writeAdminError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"deleted": true})
}

func (h *AdminVenueHandler) uploadPhoto(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid venue id"))
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read file"))
	}
	defer file.Close()

	var alt *string
	if v := strings.TrimSpace(c.FormValue("alt")); v != "" {
		alt = &v
	}
	isCover := c.FormValue("is_cover") == "true"

	photo, err := h.venues.UploadPhoto(c.Request().Context(), id, media.Upload{
		Reader:      file,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
	}, alt, isCover)
	if err != nil {
		return writeAdminError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("photo", photo))
}

func adminVenueFilter(c echo.Context) (domain.AdminVenueFilter, error) {
	filter := domain.AdminVenueFilter{
		Search:       strings.TrimSpace(c.QueryParam("search")),
		CitySlug:     strings.TrimSpace(c.QueryParam("city")),
		CategorySlug: strings.TrimSpace(c.QueryParam("category")),
		Page:         queryInt(c, "page", 0),
		PerPage:      queryInt(c, "per_page", 0),
		SortBy:       domain.VenueSortUpdatedAt,
		SortOrder:    domain.SortDesc,
	}
	if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
		status := domain.VenueStatus(raw)
		if !status.Valid() {
			return filter, errors.New("invalid status filter")
		}
		filter.Status = &status
	}
	if raw := strings.TrimSpace(c.QueryParam("sort_by")); raw != "" {
		field, err := domain.ParseVenueSortField(raw)
		if err != nil {
			return filter, err
		}
		filter.SortBy = field
	}
	if raw := strings.ToLower(strings.TrimSpace(c.QueryParam("sort_order"))); raw != "" {
		switch raw {
		case "asc":
			filter.SortOrder = domain.SortAsc
		case "desc":
			filter.SortOrder = domain.SortDesc
		default:
			return filter, errors.New("sort_order must be asc or desc")
		}
	}
	return filter, nil
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
}

// writeAdminError maps service failures onto the admin error contract:
// validation 400, auth 401 (handled upstream), not found 404, slug conflict
// 409, anything else 500 with the store's message attached.
func writeAdminError(c echo.Context, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, util.ErrorWithDetails("validation failed", verr.Fields))
	case errors.Is(err, service.ErrVenueNotFound):
		return c.JSON(http.StatusNotFound, util.Error("venue not found"))
	case errors.Is(err, service.ErrCollectionNotFound):
		return c.JSON(http.StatusNotFound, util.Error("collection not found"))
	case errors.Is(err, service.ErrSlugConflict):
		return c.JSON(http.StatusConflict, util.Error("slug already in use"))
	default:
		return c.JSON(http.StatusInternalServerError, util.Error(err.Error()))
	}
}
