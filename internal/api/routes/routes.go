package routes

import (
	"trove-backend/internal/api/handlers"
	"trove-backend/internal/api/middleware"
	"trove-backend/internal/auth"
	"trove-backend/internal/cache"
	"trove-backend/internal/config"
	apperrors "trove-backend/internal/errors"
	"trove-backend/internal/logger"
	"trove-backend/internal/repository"
	"trove-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application. metadataCache may be nil.
func SetupRoutes(db *gorm.DB, cfg *config.Config, metadataCache *cache.MetadataCache) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	// Initialize validator
	validate := validator.New()

	// Initialize repositories
	resourceRepo := repository.NewResourceRepository(db)
	authorRepo := repository.NewResourceAuthorRepository(db)

	// Initialize auth
	authenticator := auth.NewAPIKeyAuthenticator(cfg.APIKey)
	verifier := auth.NewSignatureVerifier(cfg.GitHubWebhookSecret)
	if err := authenticator.Configured(); apperrors.IsConfiguration(err) {
		logger.New().Warn("API_KEY is empty; every /resources request will be rejected")
	}
	if err := verifier.Configured(); apperrors.IsConfiguration(err) {
		logger.New().Warn("GITHUB_WEBHOOK_SECRET is empty; every webhook delivery will be rejected")
	}
	authMiddleware := auth.NewAuthMiddleware(authenticator)

	// Initialize services
	var fetcher service.MetadataFetcherInterface = service.NewMetadataFetcher(service.MetadataFetcherConfig{
		Timeout:   cfg.MetadataTimeout,
		MaxBytes:  cfg.MetadataMaxBytes,
		UserAgent: cfg.MetadataUserAgent,
	}, nil)
	var cachePinger handlers.Pinger
	if metadataCache != nil {
		fetcher = service.NewCachedMetadataFetcher(fetcher, metadataCache)
		cachePinger = metadataCache
	}

	resourceService := service.NewResourceService(resourceRepo, service.NewResourceValidator(validate), fetcher)
	webhookService := service.NewWebhookService(resourceRepo, authorRepo, verifier)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(handlers.DatabasePinger(db), cachePinger)
	resourceHandler := handlers.NewResourceHandler(resourceService)
	webhookHandler := handlers.NewWebhookHandler(webhookService)

	// Health check routes
	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Webhooks are authenticated by their signature only
	router.POST("/webhooks/github", webhookHandler.GitHub)

	// Resource routes require the API key
	resources := router.Group("/resources")
	resources.Use(authMiddleware.RequireAPIKey())
	{
		resources.POST("", resourceHandler.CreateResource)
		resources.GET("", resourceHandler.ListResources)
		resources.GET("/:id", resourceHandler.GetResource)
		resources.DELETE("/:id", resourceHandler.DeleteResource)
	}

	return router
}
