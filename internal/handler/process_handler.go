package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"distill/internal/model"
	"distill/internal/service"
)

type ProcessHandler struct {
	gateway service.GatewayService
	process service.ProcessService
}

type textRequest struct {
	Text string `json:"text"`
}

type textResponse struct {
	Text string `json:"text"`
	// Empty signals that the model found nothing worth keeping.
	Empty bool `json:"empty"`
}

type extractResponse struct {
	Title   string `json:"title,omitempty"`
	Date    string `json:"date,omitempty"`
	Content string `json:"content,omitempty"`
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}

type compareRequest struct {
	TitleA   string `json:"titleA"`
	ContentA string `json:"contentA"`
	TitleB   string `json:"titleB"`
	ContentB string `json:"contentB"`
}

type compareResponse struct {
	Similarity string `json:"similarity"`
}

type translateRequest struct {
	Content  string `json:"content"`
	Language string `json:"language"`
}

type batchRunResponse struct {
	ID        string `json:"id"`
	Operation string `json:"operation"`
	Total     int    `json:"total"`
	Processed int    `json:"processed"`
	Failed    int    `json:"failed"`
	Skipped   int    `json:"skipped"`
	CreatedAt string `json:"createdAt"`
}

type taskCancelledResponse struct {
	Cancelled bool `json:"cancelled"`
}

func NewProcessHandler(gateway service.GatewayService, process service.ProcessService) *ProcessHandler {
	return &ProcessHandler{gateway: gateway, process: process}
}

func (h *ProcessHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/process/clean", h.Clean)
	g.POST("/process/extract", h.Extract)
	g.POST("/process/compare", h.Compare)
	g.POST("/process/translate", h.Translate)
	g.POST("/process/batch", h.StartBatch)
	g.GET("/process/batch", h.BatchStatus)
	g.DELETE("/process/batch", h.CancelBatch)
	g.GET("/process/runs", h.Runs)
}

// Clean strips boilerplate from raw text through the AI model.
// @Summary Clean text
// @Description Remove navigation, ads and boilerplate from raw text
// @Tags process
// @Accept json
// @Produce json
// @Param request body textRequest true "Text to clean"
// @Success 200 {object} textResponse
// @Failure 400 {object} errorResponse
// @Router /process/clean [post]
func (h *ProcessHandler) Clean(c echo.Context) error {
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if req.Text == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	out, err := h.gateway.Clean(c.Request().Context(), req.Text)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, textResponse{Text: out, Empty: out == ""})
}

// Extract pulls structured fields out of raw text.
// @Summary Extract structured fields
// @Description Extract title, date, content and summary from raw text
// @Tags process
// @Accept json
// @Produce json
// @Param request body textRequest true "Text to extract from"
// @Success 200 {object} extractResponse
// @Failure 400 {object} errorResponse
// @Router /process/extract [post]
func (h *ProcessHandler) Extract(c echo.Context) error {
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if req.Text == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	ex, err := h.gateway.Extract(c.Request().Context(), req.Text)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, extractResponse(ex))
}

// Compare judges whether two articles cover the same story.
// @Summary Compare two articles
// @Description Classify two articles as duplicate, different or unknown
// @Tags process
// @Accept json
// @Produce json
// @Param request body compareRequest true "Articles to compare"
// @Success 200 {object} compareResponse
// @Failure 400 {object} errorResponse
// @Router /process/compare [post]
func (h *ProcessHandler) Compare(c echo.Context) error {
	var req compareRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if req.ContentA == "" || req.ContentB == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	verdict, err := h.gateway.Compare(c.Request().Context(), req.TitleA, req.ContentA, req.TitleB, req.ContentB)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, compareResponse{Similarity: verdict.String()})
}

// Translate summarizes content into the requested language.
// @Summary Summarize and translate
// @Description Produce an HTML summary of the content in the target language
// @Tags process
// @Accept json
// @Produce json
// @Param request body translateRequest true "Content to summarize"
// @Success 200 {object} textResponse
// @Failure 400 {object} errorResponse
// @Router /process/translate [post]
func (h *ProcessHandler) Translate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if req.Content == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	out, err := h.gateway.SummarizeTranslate(c.Request().Context(), req.Content, req.Language)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, textResponse{Text: out, Empty: out == ""})
}

// StartBatch launches background processing of all pending documents.
// @Summary Start a batch run
// @Description Process all pending documents in the background
// @Tags process
// @Produce json
// @Success 202 {object} service.ProcessTask
// @Router /process/batch [post]
func (h *ProcessHandler) StartBatch(c echo.Context) error {
	task, err := h.process.StartBatch(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusAccepted, task)
}

// BatchStatus returns the state of the current batch run.
// @Summary Get batch status
// @Tags process
// @Produce json
// @Success 200 {object} service.ProcessTask
// @Failure 404 {object} errorResponse
// @Router /process/batch [get]
func (h *ProcessHandler) BatchStatus(c echo.Context) error {
	task := h.process.Task()
	if task == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "no batch run"})
	}
	return c.JSON(http.StatusOK, task)
}

// CancelBatch cancels the running batch.
// @Summary Cancel the batch run
// @Tags process
// @Produce json
// @Success 200 {object} taskCancelledResponse
// @Router /process/batch [delete]
func (h *ProcessHandler) CancelBatch(c echo.Context) error {
	return c.JSON(http.StatusOK, taskCancelledResponse{Cancelled: h.process.CancelTask()})
}

// Runs lists recent batch run records.
// @Summary List batch runs
// @Tags process
// @Produce json
// @Param limit query int false "Maximum number of results"
// @Success 200 {array} batchRunResponse
// @Router /process/runs [get]
func (h *ProcessHandler) Runs(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	runs, err := h.process.ListRuns(c.Request().Context(), limit)
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]batchRunResponse, 0, len(runs))
	for _, run := range runs {
		response = append(response, toBatchRunResponse(run))
	}
	return c.JSON(http.StatusOK, response)
}

func toBatchRunResponse(run model.BatchRun) batchRunResponse {
	return batchRunResponse{
		ID:        strconv.FormatInt(run.ID, 10),
		Operation: run.Operation,
		Total:     run.Total,
		Processed: run.Processed,
		Failed:    run.Failed,
		Skipped:   run.Skipped,
		CreatedAt: run.CreatedAt.UTC().Format(time.RFC3339),
	}
}
