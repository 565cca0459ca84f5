package config

import (
	"fmt"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the recommender service.
// Environment variables are automatically parsed from the STAY_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8000"`

	// Store Configuration
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	DataDir     string `envconfig:"DATA_DIR" default:"data"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:""`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SeedOnEmpty bool   `envconfig:"SEED_ON_EMPTY" default:"true"`

	// Text-generation collaborator (OpenRouter, OpenAI-compatible)
	OpenRouterAPIKey  string `envconfig:"OPENROUTER_API_KEY" default:""`
	OpenRouterBaseURL string `envconfig:"OPENROUTER_BASE_URL" default:"https://openrouter.ai/api/v1"`
	ExtractionModel   string `envconfig:"EXTRACTION_MODEL" default:"anthropic/claude-3.5-sonnet"`
	ChatModel         string `envconfig:"CHAT_MODEL" default:"tngtech/deepseek-r1t2-chimera:free"`
	GenTimeoutSeconds int    `envconfig:"GEN_TIMEOUT_SECONDS" default:"30"`

	// Geocoding collaborator (Nominatim)
	NominatimBaseURL      string `envconfig:"NOMINATIM_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	GeocodeCountry        string `envconfig:"GEOCODE_COUNTRY" default:"Canada"`
	GeocodeTimeoutSeconds int    `envconfig:"GEOCODE_TIMEOUT_SECONDS" default:"10"`

	// Core tuning
	CatalogTTLSeconds  int `envconfig:"CATALOG_TTL_SECONDS" default:"30"`
	SessionTTLMinutes  int `envconfig:"SESSION_TTL_MINUTES" default:"30"`
	MaxRecommendations int `envconfig:"MAX_RECOMMENDATIONS" default:"5"`
	SmartMatchLimit    int `envconfig:"SMART_MATCH_LIMIT" default:"20"`

	// Health checking
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults validates the store driver and derives the sqlite path when unset.
func (c *Config) ResolveDefaults() error {
	allowedDB := map[string]bool{"sqlite": true, "postgres": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if c.DBDriver == "sqlite" && c.SQLitePath == "" {
		c.SQLitePath = filepath.Join(c.DataDir, "vacation_rentals.db")
	}
	if c.DBDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN is required when DB_DRIVER=postgres")
	}

	if c.SmartMatchLimit <= 0 {
		c.SmartMatchLimit = 20
	}
	if c.MaxRecommendations <= 0 {
		c.MaxRecommendations = 5
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Environment variables should be prefixed with STAY_
// Example: STAY_HTTP_PORT, STAY_DB_DRIVER, STAY_OPENROUTER_API_KEY
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("STAY", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("db_driver", cfg.DBDriver).
		Int("port", cfg.HTTPPort).
		Str("sqlite_path", cfg.SQLitePath).
		Str("openrouter_key_present", func() string {
			if cfg.OpenRouterAPIKey != "" {
				return "true"
			}
			return "false"
		}()).
		Str("extraction_model", cfg.ExtractionModel).
		Str("chat_model", cfg.ChatModel).
		Str("nominatim_base_url", cfg.NominatimBaseURL).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	cfg := &Config{
		Environment: EnvTesting,
	}

	cfg.HTTPPort = 8000
	cfg.DBDriver = "sqlite"
	cfg.DataDir = "data"
	cfg.SeedOnEmpty = false

	cfg.OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	cfg.ExtractionModel = "anthropic/claude-3.5-sonnet"
	cfg.ChatModel = "tngtech/deepseek-r1t2-chimera:free"
	cfg.GenTimeoutSeconds = 30

	cfg.NominatimBaseURL = "https://nominatim.openstreetmap.org"
	cfg.GeocodeCountry = "Canada"
	cfg.GeocodeTimeoutSeconds = 10

	cfg.CatalogTTLSeconds = 30
	cfg.SessionTTLMinutes = 30
	cfg.MaxRecommendations = 5
	cfg.SmartMatchLimit = 20

	cfg.HealthIntervalSeconds = 30
	cfg.HealthProbeTimeoutSeconds = 2

	return cfg
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
