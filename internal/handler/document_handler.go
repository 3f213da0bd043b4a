package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"distill/internal/model"
	"distill/internal/repository"
	"distill/internal/service"
)

type DocumentHandler struct {
	service     service.DocumentService
	readability service.ReadabilityService
}

type createDocumentRequest struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

type documentResponse struct {
	ID               string  `json:"id"`
	SourceID         *string `json:"sourceId,omitempty"`
	Title            *string `json:"title,omitempty"`
	URL              *string `json:"url,omitempty"`
	Content          *string `json:"content,omitempty"`
	ReadableContent  *string `json:"readableContent,omitempty"`
	ProcessedContent *string `json:"processedContent,omitempty"`
	Language         *string `json:"language,omitempty"`
	Status           string  `json:"status"`
	ErrorMessage     *string `json:"errorMessage,omitempty"`
	PublishedAt      *string `json:"publishedAt,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

type readableContentResponse struct {
	Content string `json:"content"`
}

func NewDocumentHandler(service service.DocumentService, readability service.ReadabilityService) *DocumentHandler {
	return &DocumentHandler{service: service, readability: readability}
}

func (h *DocumentHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/documents", h.Create)
	g.GET("/documents", h.List)
	g.GET("/documents/:id", h.Get)
	g.GET("/documents/:id/readable", h.Readable)
	g.DELETE("/documents/:id", h.Delete)
}

// Create stores an ad-hoc document.
// @Summary Create a document
// @Description Store a document supplied directly, outside any source
// @Tags documents
// @Accept json
// @Produce json
// @Param document body createDocumentRequest true "Document creation request"
// @Success 201 {object} documentResponse
// @Failure 400 {object} errorResponse
// @Router /documents [post]
func (h *DocumentHandler) Create(c echo.Context) error {
	var req createDocumentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	doc, err := h.service.Create(c.Request().Context(), req.Title, req.URL, req.Content)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toDocumentResponse(doc))
}

// List returns documents, optionally filtered by source and status.
// @Summary List documents
// @Description Get documents filtered by source and processing status
// @Tags documents
// @Produce json
// @Param sourceId query int false "Filter by source ID"
// @Param status query string false "Filter by status (pending, processed, failed, skipped)"
// @Param limit query int false "Maximum number of results"
// @Param offset query int false "Result offset"
// @Success 200 {array} documentResponse
// @Router /documents [get]
func (h *DocumentHandler) List(c echo.Context) error {
	var filter repository.DocumentListFilter

	if raw := c.QueryParam("sourceId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		}
		filter.SourceID = &parsed
	}
	if raw := c.QueryParam("status"); raw != "" {
		switch raw {
		case model.StatusPending, model.StatusProcessed, model.StatusFailed, model.StatusSkipped:
			status := raw
			filter.Status = &status
		default:
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			filter.Limit = parsed
		}
	}
	if raw := c.QueryParam("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			filter.Offset = parsed
		}
	}

	docs, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]documentResponse, 0, len(docs))
	for _, doc := range docs {
		response = append(response, toDocumentResponse(doc))
	}
	return c.JSON(http.StatusOK, response)
}

// Get returns a single document.
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} documentResponse
// @Failure 404 {object} errorResponse
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	doc, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toDocumentResponse(doc))
}

// Readable fetches the document's page and returns the extracted article HTML.
// @Summary Get readable content
// @Description Fetch and extract the readable article content for a document
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} readableContentResponse
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /documents/{id}/readable [get]
func (h *DocumentHandler) Readable(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	content, err := h.readability.FetchReadableContent(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, readableContentResponse{Content: content})
}

// Delete removes a document.
// @Summary Delete a document
// @Tags documents
// @Param id path int true "Document ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toDocumentResponse(doc model.Document) documentResponse {
	resp := documentResponse{
		ID:               strconv.FormatInt(doc.ID, 10),
		Title:            doc.Title,
		URL:              doc.URL,
		Content:          doc.Content,
		ReadableContent:  doc.ReadableContent,
		ProcessedContent: doc.ProcessedContent,
		Language:         doc.Language,
		Status:           doc.Status,
		ErrorMessage:     doc.ErrorMessage,
		CreatedAt:        doc.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        doc.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if doc.SourceID != nil {
		sourceID := strconv.FormatInt(*doc.SourceID, 10)
		resp.SourceID = &sourceID
	}
	if doc.PublishedAt != nil {
		publishedAt := doc.PublishedAt.UTC().Format(time.RFC3339)
		resp.PublishedAt = &publishedAt
	}
	return resp
}
