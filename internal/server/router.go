package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/instanti8/api/docs" // Swagger docs
	"github.com/instanti8/api/internal/config"
	"github.com/instanti8/api/internal/handlers"
	"github.com/instanti8/api/internal/metrics"
	"github.com/instanti8/api/internal/middleware"
)

// NewRouter builds the HTTP handler for the API. CORS wraps the gin engine
// so preflight requests never reach routing.
func NewRouter(cfg *config.Config, gen handlers.InfrastructureGenerator, logger *zap.Logger) http.Handler {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(middleware.NotFound)
	router.NoMethod(middleware.MethodNotAllowed)

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(metrics.Middleware())

	healthHandler := handlers.NewHealthHandler(cfg)
	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/deep", healthHandler.DeepHealth)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	generationHandler := handlers.NewGenerationHandler(gen, logger)
	api := router.Group("/api")
	if cfg.RateLimitRPS > 0 {
		api.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)))
	}
	api.POST("/generate-infrastructure", generationHandler.GenerateInfrastructure)

	return middleware.CORS(cfg.CORSOrigins)(router)
}
