package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"distill/internal/network"
	"distill/internal/service"
)

// proxyTestURL is a lightweight page used to verify outbound connectivity
// through the configured proxy.
const proxyTestURL = "https://captive.apple.com/"

type SettingsHandler struct {
	service service.SettingsService
	gateway service.GatewayService
	clients *network.ClientFactory
}

type aiSettingsRequest struct {
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	BaseURL   string `json:"baseUrl"`
	Language  string `json:"language"`
	RateLimit int    `json:"rateLimit"`
}

type aiTestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func NewSettingsHandler(service service.SettingsService, gateway service.GatewayService, clients *network.ClientFactory) *SettingsHandler {
	return &SettingsHandler{service: service, gateway: gateway, clients: clients}
}

func (h *SettingsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/settings/ai", h.GetAI)
	g.PUT("/settings/ai", h.SetAI)
	g.POST("/settings/ai/test", h.TestAI)
	g.POST("/settings/proxy/test", h.TestProxy)
}

// GetAI returns the AI configuration.
// @Summary Get AI settings
// @Tags settings
// @Produce json
// @Success 200 {object} service.AISettings
// @Router /settings/ai [get]
func (h *SettingsHandler) GetAI(c echo.Context) error {
	settings, err := h.service.GetAISettings(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// SetAI updates the AI configuration.
// @Summary Update AI settings
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body aiSettingsRequest true "AI settings"
// @Success 200 {object} service.AISettings
// @Failure 400 {object} errorResponse
// @Router /settings/ai [put]
func (h *SettingsHandler) SetAI(c echo.Context) error {
	var req aiSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if err := h.service.SetAISettings(c.Request().Context(), &service.AISettings{
		Provider:  req.Provider,
		Model:     req.Model,
		BaseURL:   req.BaseURL,
		Language:  req.Language,
		RateLimit: req.RateLimit,
	}); err != nil {
		return writeServiceError(c, err)
	}
	settings, err := h.service.GetAISettings(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// TestAI sends a test message through the configured provider.
// @Summary Test the AI connection
// @Tags settings
// @Produce json
// @Success 200 {object} aiTestResponse
// @Router /settings/ai/test [post]
func (h *SettingsHandler) TestAI(c echo.Context) error {
	message, err := h.gateway.TestConnection(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusOK, aiTestResponse{Success: false, Error: err.Error()})
	}
	return c.JSON(http.StatusOK, aiTestResponse{Success: true, Message: message})
}

// TestProxy verifies outbound connectivity through the configured proxy.
// @Summary Test the proxy connection
// @Tags settings
// @Produce json
// @Success 200 {object} aiTestResponse
// @Router /settings/proxy/test [post]
func (h *SettingsHandler) TestProxy(c echo.Context) error {
	if err := h.clients.TestProxy(c.Request().Context(), proxyTestURL); err != nil {
		return c.JSON(http.StatusOK, aiTestResponse{Success: false, Error: err.Error()})
	}
	return c.JSON(http.StatusOK, aiTestResponse{Success: true})
}
