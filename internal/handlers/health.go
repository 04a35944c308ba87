package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/instanti8/api/internal/config"
	"github.com/instanti8/api/internal/models"
)

const (
	ServiceName    = "instanti8-api"
	ServiceVersion = "0.1.0"
	WelcomeMessage = "Welcome to Instanti8.dev API"
)

// HealthHandler handles root and health check endpoints
type HealthHandler struct {
	cfg *config.Config
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string            `json:"status"`
	Service      string            `json:"service"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Root returns the static welcome payload
//
//	@Summary	Welcome message
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	models.WelcomeResponse
//	@Router		/ [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, models.WelcomeResponse{Message: WelcomeMessage})
}

// Health returns basic health status
//
//	@Summary	Liveness check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Router		/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: ServiceName,
		Version: ServiceVersion,
	})
}

// DeepHealth reports whether remote generation is configured. The upstream
// API is not probed, since every probe would spend quota.
//
//	@Summary	Readiness check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Failure	503	{object}	HealthResponse
//	@Router		/health/deep [get]
func (h *HealthHandler) DeepHealth(c *gin.Context) {
	deps := map[string]string{}
	status, httpStatus := "healthy", http.StatusOK

	if h.cfg.HasCredential() {
		deps["groq"] = "configured"
	} else {
		deps["groq"] = "unconfigured: GROQ_API_KEY not set"
		status, httpStatus = "degraded", http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, HealthResponse{
		Status:       status,
		Service:      ServiceName,
		Version:      ServiceVersion,
		Dependencies: deps,
	})
}
