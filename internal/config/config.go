// Package config loads process configuration from the environment.
//
// Every variable may carry the GALLERY_ prefix; the unprefixed name is read
// when the prefixed one is unset. A .env file in the working directory is
// loaded first when present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/fpang/prompt-gallery/internal/auth"
	"github.com/fpang/prompt-gallery/internal/gemini"
)

// Prefix is the environment variable prefix.
const Prefix = "GALLERY"

// Config holds every setting the binaries read.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	// GeminiAPIKey is usually resolved through auth.ResolveAPIKey; it is
	// read here so a GALLERY_-prefixed key also works.
	GeminiAPIKey     string        `envconfig:"GEMINI_API_KEY"`
	SSMAPIKeyParam   string        `envconfig:"SSM_API_KEY_PARAM"`
	ImageModel       string        `envconfig:"IMAGE_MODEL"`
	VideoModel       string        `envconfig:"VIDEO_MODEL"`
	TextModel        string        `envconfig:"TEXT_MODEL"`
	PollInterval     time.Duration `envconfig:"POLL_INTERVAL" default:"10s"`
	PollTimeout      time.Duration `envconfig:"POLL_TIMEOUT" default:"15m"`
	PollMaxAttempts  int           `envconfig:"POLL_MAX_ATTEMPTS" default:"0"`
	ProgressInterval time.Duration `envconfig:"PROGRESS_INTERVAL" default:"5s"`

	AdminUser     string `envconfig:"ADMIN_USER" default:"admin"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"admin24"`

	ArchiveBucket  string        `envconfig:"ARCHIVE_BUCKET"`
	ArchiveURLTTL  time.Duration `envconfig:"ARCHIVE_URL_TTL" default:"1h"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.GeminiAPIKey = strings.TrimSpace(cfg.GeminiAPIKey)
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("POLL_INTERVAL must be positive, got %s", cfg.PollInterval)
	}
	if cfg.PollTimeout < 0 || cfg.PollMaxAttempts < 0 {
		return nil, errors.New("POLL_TIMEOUT and POLL_MAX_ATTEMPTS must not be negative")
	}
	log.Debug().
		Str("port", cfg.Port).
		Dur("poll_interval", cfg.PollInterval).
		Dur("poll_timeout", cfg.PollTimeout).
		Bool("archive", cfg.ArchiveBucket != "").
		Msg("Configuration loaded")
	return &cfg, nil
}

// ServiceAvailable reports whether an API key is configured in the environment.
// SSM-backed keys are only known after resolution.
func (c *Config) ServiceAvailable() bool {
	return c.GeminiAPIKey != ""
}

// Admin returns the admin login pair.
func (c *Config) Admin() auth.Credentials {
	return auth.Credentials{User: c.AdminUser, Password: c.AdminPassword}
}

// GeminiOptions maps the model overrides to client options.
func (c *Config) GeminiOptions() []gemini.Option {
	return []gemini.Option{
		gemini.WithImageModel(c.ImageModel),
		gemini.WithVideoModel(c.VideoModel),
		gemini.WithTextModel(c.TextModel),
	}
}
