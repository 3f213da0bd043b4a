package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"distill/internal/model"
	"distill/internal/service"
)

type SourceHandler struct {
	service service.IngestService
}

type createSourceRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type sourceResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	SiteURL      *string `json:"siteUrl,omitempty"`
	ErrorMessage *string `json:"errorMessage,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

type refreshStartedResponse struct {
	Status string `json:"status"`
}

func NewSourceHandler(service service.IngestService) *SourceHandler {
	return &SourceHandler{service: service}
}

func (h *SourceHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/sources", h.Create)
	g.GET("/sources", h.List)
	g.DELETE("/sources/:id", h.Delete)
	g.POST("/sources/:id/refresh", h.Refresh)
	g.POST("/sources/refresh", h.RefreshAll)
}

// Create subscribes to a new content source.
// @Summary Create a source
// @Description Subscribe to an RSS/Atom feed as a content source
// @Tags sources
// @Accept json
// @Produce json
// @Param source body createSourceRequest true "Source creation request"
// @Success 201 {object} sourceResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /sources [post]
func (h *SourceHandler) Create(c echo.Context) error {
	var req createSourceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	source, err := h.service.AddSource(c.Request().Context(), req.URL, req.Title)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toSourceResponse(source))
}

// List returns all sources.
// @Summary List sources
// @Tags sources
// @Produce json
// @Success 200 {array} sourceResponse
// @Router /sources [get]
func (h *SourceHandler) List(c echo.Context) error {
	sources, err := h.service.ListSources(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]sourceResponse, 0, len(sources))
	for _, source := range sources {
		response = append(response, toSourceResponse(source))
	}
	return c.JSON(http.StatusOK, response)
}

// Delete removes a source and its documents.
// @Summary Delete a source
// @Tags sources
// @Param id path int true "Source ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /sources/{id} [delete]
func (h *SourceHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if err := h.service.DeleteSource(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Refresh pulls new items from one source.
// @Summary Refresh a source
// @Tags sources
// @Produce json
// @Param id path int true "Source ID"
// @Success 200 {object} refreshStartedResponse
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /sources/{id}/refresh [post]
func (h *SourceHandler) Refresh(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if err := h.service.RefreshSource(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, refreshStartedResponse{Status: "ok"})
}

// RefreshAll pulls new items from every source.
// @Summary Refresh all sources
// @Tags sources
// @Produce json
// @Success 200 {object} refreshStartedResponse
// @Failure 409 {object} errorResponse
// @Router /sources/refresh [post]
func (h *SourceHandler) RefreshAll(c echo.Context) error {
	if err := h.service.RefreshAll(c.Request().Context()); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, refreshStartedResponse{Status: "ok"})
}

func toSourceResponse(source model.Source) sourceResponse {
	return sourceResponse{
		ID:           strconv.FormatInt(source.ID, 10),
		Title:        source.Title,
		URL:          source.URL,
		SiteURL:      source.SiteURL,
		ErrorMessage: source.ErrorMessage,
		CreatedAt:    source.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    source.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
