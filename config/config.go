package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"weathercn.app/errors"
)

// Config represents the application configuration structure.
// Values come from a .env file in the working directory, then the
// environment, then CLI flag overrides applied by the caller.
type Config struct {
	AmapKey        string `envconfig:"AMAP_API_KEY"`
	CaiyunToken    string `envconfig:"CAIYUN_API_TOKEN"`
	CacheDir       string `envconfig:"WEATHER_CACHE_DIR" default:"cache"`
	TimeoutSeconds int    `envconfig:"WEATHER_HTTP_TIMEOUT" default:"8"`
}

// LoadConfig loads application configuration from a local .env file and
// environment variables. Credential presence is checked separately via
// RequireCredentials because mock mode needs none.
func LoadConfig() (*Config, error) {
	// godotenv does not override variables already set in the
	// environment, which gives env > .env precedence for free.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.CacheDir == "" {
		return errors.NewConfigurationError("WEATHER_CACHE_DIR cannot be empty", nil)
	}
	if c.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("WEATHER_HTTP_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

// RequireCredentials verifies both API credentials are present.
// Mock mode skips this entirely since no network calls are made.
func (c *Config) RequireCredentials() error {
	if c.AmapKey == "" {
		return errors.NewConfigurationError("缺少高德 Key，请设置 AMAP_API_KEY 或 --amap-key", nil)
	}
	if c.CaiyunToken == "" {
		return errors.NewConfigurationError("缺少彩云 Token，请设置 CAIYUN_API_TOKEN 或 --caiyun-token", nil)
	}
	return nil
}
