package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"distill/internal/model"
	"distill/internal/service"
)

type DuplicateHandler struct {
	process service.ProcessService
}

type duplicatePairResponse struct {
	ID         string `json:"id,omitempty"`
	DocumentA  string `json:"documentA"`
	DocumentB  string `json:"documentB"`
	Similarity string `json:"similarity"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

type duplicatesClearedResponse struct {
	Deleted int64 `json:"deleted"`
}

func NewDuplicateHandler(process service.ProcessService) *DuplicateHandler {
	return &DuplicateHandler{process: process}
}

func (h *DuplicateHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/duplicates/scan", h.Scan)
	g.GET("/duplicates", h.List)
	g.DELETE("/duplicates", h.Clear)
}

// Scan compares all processed documents pairwise and stores the matches.
// @Summary Scan for duplicates
// @Description Compare all processed documents pairwise through the AI model
// @Tags duplicates
// @Produce json
// @Success 200 {array} duplicatePairResponse
// @Router /duplicates/scan [post]
func (h *DuplicateHandler) Scan(c echo.Context) error {
	pairs, err := h.process.ScanDuplicates(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]duplicatePairResponse, 0, len(pairs))
	for _, pair := range pairs {
		response = append(response, toDuplicatePairResponse(pair))
	}
	return c.JSON(http.StatusOK, response)
}

// List returns the stored duplicate pairs.
// @Summary List duplicate pairs
// @Tags duplicates
// @Produce json
// @Success 200 {array} duplicatePairResponse
// @Router /duplicates [get]
func (h *DuplicateHandler) List(c echo.Context) error {
	pairs, err := h.process.ListDuplicates(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]duplicatePairResponse, 0, len(pairs))
	for _, pair := range pairs {
		response = append(response, toDuplicatePairResponse(pair))
	}
	return c.JSON(http.StatusOK, response)
}

// Clear removes all stored duplicate pairs.
// @Summary Clear duplicate pairs
// @Tags duplicates
// @Produce json
// @Success 200 {object} duplicatesClearedResponse
// @Router /duplicates [delete]
func (h *DuplicateHandler) Clear(c echo.Context) error {
	deleted, err := h.process.ClearDuplicates(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, duplicatesClearedResponse{Deleted: deleted})
}

func toDuplicatePairResponse(pair model.DuplicatePair) duplicatePairResponse {
	resp := duplicatePairResponse{
		DocumentA:  strconv.FormatInt(pair.DocumentA, 10),
		DocumentB:  strconv.FormatInt(pair.DocumentB, 10),
		Similarity: pair.Similarity,
	}
	if pair.ID != 0 {
		resp.ID = strconv.FormatInt(pair.ID, 10)
	}
	if !pair.CreatedAt.IsZero() {
		resp.CreatedAt = pair.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
