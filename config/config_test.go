package config

import (
	"os"
	"testing"
	"time"
)

var envKeys = []string{
	"ADVISOR_SERVER_PORT",
	"ADVISOR_SERVER_ENVIRONMENT",
	"ADVISOR_GEMINI_API_KEY",
	"ADVISOR_GEMINI_BASE_URL",
	"ADVISOR_GEMINI_MODEL",
	"ADVISOR_GEMINI_TIMEOUT",
	"ADVISOR_GEMINI_MAX_RETRIES",
	"ADVISOR_GEMINI_REQUESTS_PER_MINUTE",
	"ADVISOR_CATALOG_PATH",
	"ADVISOR_FAVORITES_BACKEND",
	"ADVISOR_FAVORITES_PATH",
	"ADVISOR_CACHE_TYPE",
	"ADVISOR_CACHE_REDIS_URL",
	"ADVISOR_CACHE_TTL",
	"ADVISOR_RATELIMIT_PER_IP",
	"ADVISOR_LOG_LEVEL",
	"ADVISOR_LOG_FORMAT",
}

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		for _, key := range envKeys {
			os.Unsetenv(key)
		}
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Gemini.Model != "gemini-pro" {
			t.Errorf("Gemini.Model = %s, want gemini-pro", cfg.Gemini.Model)
		}
		if cfg.Gemini.Timeout != 20*time.Second {
			t.Errorf("Gemini.Timeout = %v, want 20s", cfg.Gemini.Timeout)
		}
		if cfg.Gemini.MaxRetries != 3 {
			t.Errorf("Gemini.MaxRetries = %d, want 3", cfg.Gemini.MaxRetries)
		}
		if cfg.Favorites.Backend != "file" {
			t.Errorf("Favorites.Backend = %s, want file", cfg.Favorites.Backend)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != 10*time.Minute {
			t.Errorf("Cache.TTL = %v, want 10m", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 120 {
			t.Errorf("RateLimit.PerIP = %d, want 120", cfg.RateLimit.PerIP)
		}
		if cfg.Log.Level != "info" {
			t.Errorf("Log.Level = %s, want info", cfg.Log.Level)
		}
	})

	t.Run("missing API key is allowed", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.RemoteEnabled() {
			t.Error("RemoteEnabled() = true, want false without an API key")
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("ADVISOR_SERVER_PORT", "9090")
		os.Setenv("ADVISOR_SERVER_ENVIRONMENT", "production")
		os.Setenv("ADVISOR_GEMINI_API_KEY", "custom-api-key")
		os.Setenv("ADVISOR_GEMINI_BASE_URL", "https://custom.api.com")
		os.Setenv("ADVISOR_GEMINI_TIMEOUT", "5s")
		os.Setenv("ADVISOR_FAVORITES_BACKEND", "sqlite")
		os.Setenv("ADVISOR_FAVORITES_PATH", "/tmp/favorites.db")
		os.Setenv("ADVISOR_CACHE_TYPE", "redis")
		os.Setenv("ADVISOR_CACHE_REDIS_URL", "redis://localhost:6379")
		os.Setenv("ADVISOR_CACHE_TTL", "24h")
		os.Setenv("ADVISOR_RATELIMIT_PER_IP", "200")
		os.Setenv("ADVISOR_LOG_FORMAT", "json")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Gemini.APIKey != "custom-api-key" {
			t.Errorf("Gemini.APIKey = %s, want custom-api-key", cfg.Gemini.APIKey)
		}
		if !cfg.RemoteEnabled() {
			t.Error("RemoteEnabled() = false, want true")
		}
		if cfg.Gemini.BaseURL != "https://custom.api.com" {
			t.Errorf("Gemini.BaseURL = %s, want https://custom.api.com", cfg.Gemini.BaseURL)
		}
		if cfg.Gemini.Timeout != 5*time.Second {
			t.Errorf("Gemini.Timeout = %v, want 5s", cfg.Gemini.Timeout)
		}
		if cfg.Favorites.Backend != "sqlite" {
			t.Errorf("Favorites.Backend = %s, want sqlite", cfg.Favorites.Backend)
		}
		if cfg.Favorites.Path != "/tmp/favorites.db" {
			t.Errorf("Favorites.Path = %s, want /tmp/favorites.db", cfg.Favorites.Path)
		}
		if cfg.Cache.Type != "redis" {
			t.Errorf("Cache.Type = %s, want redis", cfg.Cache.Type)
		}
		if cfg.Cache.RedisURL != "redis://localhost:6379" {
			t.Errorf("Cache.RedisURL = %s, want redis://localhost:6379", cfg.Cache.RedisURL)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
		if cfg.Log.Format != "json" {
			t.Errorf("Log.Format = %s, want json", cfg.Log.Format)
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("ADVISOR_CACHE_TYPE", "invalid")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for invalid cache type")
		}
	})

	t.Run("fails validation when redis URL missing for redis cache", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("ADVISOR_CACHE_TYPE", "redis")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing Redis URL")
		}
		if err != nil && err.Error() != "invalid configuration: redis URL is required when cache type is 'redis'" {
			t.Errorf("Load() error = %v, want 'redis URL is required'", err)
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		// Save current directory
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		os.Chdir(t.TempDir())

		if err := loadEnvFile(); err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables from .env file", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		os.Chdir(t.TempDir())

		envContent := `
# Comment line
TEST_VAR_1=value1
TEST_VAR_2=value2

# Another comment
TEST_VAR_3=value3
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		os.Unsetenv("TEST_VAR_1")
		os.Unsetenv("TEST_VAR_2")
		os.Unsetenv("TEST_VAR_3")
		defer func() {
			os.Unsetenv("TEST_VAR_1")
			os.Unsetenv("TEST_VAR_2")
			os.Unsetenv("TEST_VAR_3")
		}()

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		for key, want := range map[string]string{"TEST_VAR_1": "value1", "TEST_VAR_2": "value2", "TEST_VAR_3": "value3"} {
			if got := os.Getenv(key); got != want {
				t.Errorf("%s = %s, want %s", key, got, want)
			}
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		os.Chdir(t.TempDir())

		os.Setenv("TEST_OVERRIDE", "existing-value")
		defer os.Unsetenv("TEST_OVERRIDE")

		if err := os.WriteFile(".env", []byte("TEST_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_OVERRIDE") != "existing-value" {
			t.Errorf("TEST_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("TEST_OVERRIDE"))
		}
	})

	t.Run(".env feeds Load", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		os.Chdir(t.TempDir())
		os.Unsetenv("ADVISOR_GEMINI_MODEL")
		defer os.Unsetenv("ADVISOR_GEMINI_MODEL")

		if err := os.WriteFile(".env", []byte("ADVISOR_GEMINI_MODEL=gemini-1.5-flash\n"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Gemini.Model != "gemini-1.5-flash" {
			t.Errorf("Gemini.Model = %s, want gemini-1.5-flash", cfg.Gemini.Model)
		}
	})
}

func validConfig() *Config {
	return &Config{
		Gemini:    GeminiConfig{MaxRetries: 3},
		Favorites: FavoritesConfig{Backend: "file", Path: "favorites.json"},
		Cache:     CacheConfig{Type: "memory"},
		Log:       LogConfig{Format: "console"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(*Config) {}, false},
		{"memory favorites without path", func(c *Config) { c.Favorites = FavoritesConfig{Backend: "memory"} }, false},
		{"file favorites without path", func(c *Config) { c.Favorites.Path = "" }, true},
		{"unknown favorites backend", func(c *Config) { c.Favorites.Backend = "s3" }, true},
		{"no cache", func(c *Config) { c.Cache.Type = "none" }, false},
		{"redis cache with URL", func(c *Config) { c.Cache = CacheConfig{Type: "redis", RedisURL: "redis://localhost:6379"} }, false},
		{"redis cache without URL", func(c *Config) { c.Cache = CacheConfig{Type: "redis"} }, true},
		{"invalid cache type", func(c *Config) { c.Cache.Type = "invalid-type" }, true},
		{"json logs", func(c *Config) { c.Log.Format = "json" }, false},
		{"invalid log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"zero retries", func(c *Config) { c.Gemini.MaxRetries = 0 }, true},
		{"negative rate limit", func(c *Config) { c.RateLimit.PerIP = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
