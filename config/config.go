package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Favorites FavoritesConfig `mapstructure:"favorites"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GeminiConfig holds text-generation API configuration.
// An empty APIKey disables the remote path; recommendations then come from the heuristic scorer.
type GeminiConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	Model             string        `mapstructure:"model"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxRetries        int           `mapstructure:"max_retries"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
}

// CatalogConfig points at an optional catalog file; empty uses the embedded catalog
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// FavoritesConfig selects the favorites storage backend
type FavoritesConfig struct {
	Backend string `mapstructure:"backend"` // "file", "sqlite" or "memory"
	Path    string `mapstructure:"path"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory", "redis" or "none"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// Load loads configuration from .env, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/product-advisor/")

	// Environment variable settings: ADVISOR_GEMINI_API_KEY -> gemini.api_key
	v.SetEnvPrefix("ADVISOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads .env from the working directory if present.
// Variables already set in the environment win.
func loadEnvFile() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error reading .env file: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values.
// Every key needs a default so AutomaticEnv can bind it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta/models")
	v.SetDefault("gemini.model", "gemini-pro")
	v.SetDefault("gemini.timeout", "20s")
	v.SetDefault("gemini.max_retries", 3)
	v.SetDefault("gemini.requests_per_minute", 60)

	// Catalog defaults
	v.SetDefault("catalog.path", "")

	// Favorites defaults
	v.SetDefault("favorites.backend", "file")
	v.SetDefault("favorites.path", "data/favorites.json")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "10m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Favorites.Backend {
	case "file", "sqlite":
		if config.Favorites.Path == "" {
			return fmt.Errorf("favorites path is required for the %s backend", config.Favorites.Backend)
		}
	case "memory":
	default:
		return fmt.Errorf("favorites backend must be 'file', 'sqlite' or 'memory', got: %s", config.Favorites.Backend)
	}

	switch config.Cache.Type {
	case "memory", "none":
	case "redis":
		if config.Cache.RedisURL == "" {
			return fmt.Errorf("redis URL is required when cache type is 'redis'")
		}
	default:
		return fmt.Errorf("cache type must be 'memory', 'redis' or 'none', got: %s", config.Cache.Type)
	}

	if config.Log.Format != "console" && config.Log.Format != "json" {
		return fmt.Errorf("log format must be 'console' or 'json', got: %s", config.Log.Format)
	}

	if config.Gemini.MaxRetries < 1 {
		return fmt.Errorf("gemini max_retries must be at least 1, got: %d", config.Gemini.MaxRetries)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit per_ip must not be negative, got: %d", config.RateLimit.PerIP)
	}

	return nil
}

// RemoteEnabled reports whether a Gemini API key is configured
func (c *Config) RemoteEnabled() bool {
	return strings.TrimSpace(c.Gemini.APIKey) != ""
}
