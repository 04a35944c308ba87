package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/instanti8/api/internal/middleware"
	"github.com/instanti8/api/internal/models"
)

// InfrastructureGenerator produces code for a generation request
type InfrastructureGenerator interface {
	Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResponse, error)
}

// generateRequestBody is the bound form of models.GenerationRequest. The
// pointer tells a missing prompt (422) apart from an empty one, which is
// classified like any other text.
type generateRequestBody struct {
	Prompt *string `json:"prompt" binding:"required"`
}

// GenerationHandler handles infrastructure generation endpoints
type GenerationHandler struct {
	gen    InfrastructureGenerator
	logger *zap.Logger
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(gen InfrastructureGenerator, logger *zap.Logger) *GenerationHandler {
	return &GenerationHandler{gen: gen, logger: logger}
}

// GenerateInfrastructure converts a free-text description into Pulumi code
//
//	@Summary		Generate infrastructure code
//	@Description	Classifies the prompt by provider and infrastructure type and returns Pulumi TypeScript.
//	@Tags			generation
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.GenerationRequest	true	"Infrastructure description"
//	@Success		200		{object}	models.GenerationResponse
//	@Failure		422		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/api/generate-infrastructure [post]
func (h *GenerationHandler) GenerateInfrastructure(c *gin.Context) {
	var body generateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		middleware.Unprocessable(c, err.Error())
		return
	}

	resp, err := h.gen.Generate(c.Request.Context(), models.GenerationRequest{Prompt: *body.Prompt})
	if err != nil {
		h.logger.Error("infrastructure generation failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		middleware.InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
