package main

import (
	"context"
	"log"
	"os"
	"time"

	"trove-backend/internal/api/routes"
	"trove-backend/internal/cache"
	"trove-backend/internal/config"
	"trove-backend/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	_ "trove-backend/docs" // This is needed for swag
)

//	@title			Trove API
//	@version		1.0
//	@description	Collects bookmarked URLs from manual entry, the browser extension, the iOS shortcut and GitHub star webhooks into one deduplicated store.

//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT

//	@host		localhost:8787
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the API key.

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Set up logging
	setupLogging(cfg.LogLevel)

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, nil)
	if err != nil {
		logrus.Fatal("Failed to initialize database:", err)
	}

	// Metadata cache is optional; without it every backfill goes to the network
	var metadataCache *cache.MetadataCache
	if cfg.RedisEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			logrus.WithError(err).Warn("Metadata cache disabled")
		} else {
			defer client.Close()
			metadataCache = cache.NewMetadataCache(client, cfg.MetadataCacheTTL)
			logrus.Infof("Metadata cache enabled at %s", cfg.RedisAddr)
		}
	}

	// Set Gin mode
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := routes.SetupRoutes(db, cfg, metadataCache)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8787"
	}

	logrus.Infof("Starting server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatal("Failed to start server:", err)
	}
}

func setupLogging(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	switch level {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}
