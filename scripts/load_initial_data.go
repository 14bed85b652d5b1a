package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"trove-backend/internal/config"
	"trove-backend/internal/database"
	apperrors "trove-backend/internal/errors"
	"trove-backend/internal/repository"
	"trove-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ResourcesFile is one YAML seed file. Each entry uses the same field names as the
// POST /resources body.
type ResourcesFile struct {
	Resources []map[string]interface{} `yaml:"resources"`
}

func main() {
	log.Println("🚀 Loading initial resources from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	dataDir := "scripts/data"
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}

	if err := loadResources(context.Background(), db, dataDir); err != nil {
		log.Fatalf("Failed to load resources: %v", err)
	}

	log.Println("✅ Initial resources loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadResources(ctx context.Context, db *gorm.DB, dataDir string) error {
	entries, err := readResourceFiles(dataDir)
	if err != nil {
		return fmt.Errorf("failed to read seed files: %w", err)
	}

	rv := service.NewResourceValidator(validator.New())
	repo := repository.NewResourceRepository(db)

	created, skipped := 0, 0
	for i, entry := range entries {
		body, err := json.Marshal(entry)
		if err != nil {
			log.Printf("⚠️  Warning: entry %d is not JSON-encodable: %v", i, err)
			skipped++
			continue
		}

		input, err := rv.Validate(body)
		if err != nil {
			log.Printf("⚠️  Warning: entry %d rejected: %v", i, err)
			skipped++
			continue
		}

		resource := input.Resource()
		if err := repo.Create(ctx, resource); err != nil {
			if apperrors.IsAlreadyExists(err) {
				skipped++
				continue
			}
			return fmt.Errorf("failed to create resource %s: %w", input.URL, err)
		}
		created++
	}

	log.Printf("📋 Resources: %d created, %d skipped, %d total", created, skipped, len(entries))
	return nil
}

func readResourceFiles(dataDir string) ([]map[string]interface{}, error) {
	var all []map[string]interface{}

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && (strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")) {
			var file ResourcesFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			all = append(all, file.Resources...)
		}
		return nil
	})

	return all, err
}
