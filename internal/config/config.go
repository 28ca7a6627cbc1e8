// Package config loads platewise configuration. Values are resolved in
// order: built-in defaults, then an optional YAML file, then environment
// variables. The result is validated before use.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/platewise/platewise/internal/spoonacular"
)

// Config is the top-level configuration for platewise.
type Config struct {
	Spoonacular SpoonacularConfig `yaml:"spoonacular"`
	HTTP        HTTPConfig        `yaml:"http"`
	Log         LogConfig         `yaml:"log"`
}

// SpoonacularConfig configures the upstream API client. APIKey carries no
// validation tag on purpose: a missing credential must surface on the first
// upstream call, not at startup, so the server can always come up.
type SpoonacularConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseURL" validate:"required,url"`
}

// HTTPConfig configures the HTTP run mode.
type HTTPConfig struct {
	Address string `yaml:"address" validate:"required"`
	Port    int    `yaml:"port" validate:"required,gte=1,lte=65535"`
}

// LogConfig configures the stderr logger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"required,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"required,oneof=text json"`
}

// DefaultConfig returns a Config with sensible defaults. They are complete
// enough to run the CLI and the stdio server with only SPOONACULAR_API_KEY
// set in the environment.
func DefaultConfig() *Config {
	return &Config{
		Spoonacular: SpoonacularConfig{
			BaseURL: spoonacular.DefaultBaseURL,
		},
		HTTP: HTTPConfig{
			Address: "0.0.0.0",
			Port:    8080,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration. path names an optional YAML file; an empty
// path means defaults plus environment only.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides overlays environment variables on the configuration.
// Empty variables are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SPOONACULAR_API_KEY"); v != "" {
		c.Spoonacular.APIKey = v
	}
	if v := os.Getenv("SPOONACULAR_BASE_URL"); v != "" {
		c.Spoonacular.BaseURL = v
	}
	if v := os.Getenv("PLATEWISE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PLATEWISE_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("PLATEWISE_HTTP_ADDRESS"); v != "" {
		c.HTTP.Address = v
	}
	if v := os.Getenv("PLATEWISE_HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.HTTP.Port = port
		}
	}
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// HasAPIKey reports whether an upstream credential is configured. Callers
// log this boolean at startup; the key itself is never logged.
func (c *Config) HasAPIKey() bool {
	return c.Spoonacular.APIKey != ""
}
