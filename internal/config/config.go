// Package config loads fitfizz settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds environment-derived settings. CLI flags take precedence.
type Config struct {
	DBPath   string     `env:"FITFIZZ_DB"`
	Session  string     `env:"FITFIZZ_SESSION" envDefault:"default"`
	Format   string     `env:"FITFIZZ_FORMAT" envDefault:"json"`
	LogLevel slog.Level `env:"FITFIZZ_LOG_LEVEL" envDefault:"WARN"`
	Lang     string     `env:"FITFIZZ_LANG" envDefault:"en"`
	Addr     string     `env:"FITFIZZ_ADDR" envDefault:":8080"`
}

// Load reads an optional .env file from the working directory, then parses
// the environment. Variables already set win over the file.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path. A missing file is not an error.
func LoadFrom(dotenvPath string) (*Config, error) {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", dotenvPath, err)
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// DefaultDBPath returns ~/.fitfizz/fitfizz.db.
func DefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".fitfizz", "fitfizz.db")
}

// ResolveDBPath returns the configured path, falling back to DefaultDBPath.
func (c *Config) ResolveDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return DefaultDBPath()
}
