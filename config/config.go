// Package config loads server configuration from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all server settings.
type Config struct {
	Server   ServerConfig   `envPrefix:"FOLIO_"`
	Database DatabaseConfig `envPrefix:"FOLIO_"`
	Session  SessionConfig  `envPrefix:"FOLIO_SESSION_"`
	Uploads  UploadsConfig  `envPrefix:"FOLIO_"`
	PDF      PDFConfig      `envPrefix:"FOLIO_PDF_"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host      string `env:"HOST" envDefault:"localhost"`
	Port      string `env:"PORT" envDefault:"8080"`
	StaticDir string `env:"STATIC_DIR" envDefault:"./public"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	DSN string `env:"DB_DSN" envDefault:"file:folio.db?_pragma=foreign_keys(1)"`
}

// SessionConfig selects the session backend. An empty RedisAddr keeps
// sessions in process memory.
type SessionConfig struct {
	TTL       time.Duration `env:"TTL" envDefault:"24h"`
	RedisAddr string        `env:"REDIS_ADDR"`
}

// UploadsConfig holds photo upload settings.
type UploadsConfig struct {
	Dir string `env:"UPLOADS_DIR" envDefault:"./uploads"`
}

// PDFConfig holds Chromium settings.
type PDFConfig struct {
	BrowserPath string        `env:"BROWSER_PATH"`
	Headless    bool          `env:"HEADLESS" envDefault:"true"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"30s"`
	Args        []string      `env:"ARGS"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
