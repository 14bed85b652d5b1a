package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Database configuration
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DatabaseHost     string `mapstructure:"DB_HOST"`
	DatabasePort     string `mapstructure:"DB_PORT"`
	DatabaseUser     string `mapstructure:"DB_USER"`
	DatabasePassword string `mapstructure:"DB_PASSWORD"`
	DatabaseName     string `mapstructure:"DB_NAME"`
	DatabaseSSLMode  string `mapstructure:"DB_SSL_MODE"`

	// Secrets
	APIKey              string `mapstructure:"API_KEY"`
	GitHubWebhookSecret string `mapstructure:"GITHUB_WEBHOOK_SECRET"`

	// CORS configuration
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	// Metadata fetcher
	MetadataTimeout   time.Duration `mapstructure:"METADATA_TIMEOUT"`
	MetadataMaxBytes  int64         `mapstructure:"METADATA_MAX_BYTES"`
	MetadataUserAgent string        `mapstructure:"METADATA_USER_AGENT"`
	MetadataCacheTTL  time.Duration `mapstructure:"METADATA_CACHE_TTL"`

	// Redis (metadata cache). Empty address disables the cache.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Build database URL if not provided
	if config.DatabaseURL == "" {
		config.DatabaseURL = buildDatabaseURL(&config)
	}

	// Validate required fields
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", "8787")
	viper.SetDefault("LOG_LEVEL", "info")

	// Database defaults
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "trove")
	viper.SetDefault("DB_SSL_MODE", "disable")

	// Secrets have no usable defaults
	viper.SetDefault("API_KEY", "")
	viper.SetDefault("GITHUB_WEBHOOK_SECRET", "")

	// CORS defaults
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	// Metadata defaults
	viper.SetDefault("METADATA_TIMEOUT", 5*time.Second)
	viper.SetDefault("METADATA_MAX_BYTES", 64*1024)
	viper.SetDefault("METADATA_USER_AGENT", "Trove/1.0 (metadata fetcher)")
	viper.SetDefault("METADATA_CACHE_TTL", 24*time.Hour)

	// Redis defaults
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
}

func buildDatabaseURL(config *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.DatabaseUser,
		config.DatabasePassword,
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseName,
		config.DatabaseSSLMode,
	)
}

func validate(config *Config) error {
	if config.IsProduction() {
		if config.APIKey == "" {
			return fmt.Errorf("API_KEY must be set in production")
		}
		if config.GitHubWebhookSecret == "" {
			return fmt.Errorf("GITHUB_WEBHOOK_SECRET must be set in production")
		}
	}

	if config.DatabaseName == "" && config.DatabaseURL == "" {
		return fmt.Errorf("database name is required")
	}

	if config.MetadataTimeout <= 0 {
		return fmt.Errorf("METADATA_TIMEOUT must be positive")
	}

	if config.MetadataMaxBytes <= 0 {
		return fmt.Errorf("METADATA_MAX_BYTES must be positive")
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// RedisEnabled reports whether a metadata cache should be wired
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}
