package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DataDir       string
	DBPath        string
	CatalogSource string `env:"NIAMVERSE_CATALOG"`
	LogPath       string `env:"NIAMVERSE_LOG_FILE"`
	LogLevel      string `env:"NIAMVERSE_LOG_LEVEL" envDefault:"info"`
	Watch         bool   `env:"NIAMVERSE_WATCH" envDefault:"true"`
}

// New derives the default layout under dataDir and applies environment overrides.
// A non-empty catalogSource wins over both the default and the environment.
func New(dataDir, catalogSource string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data directory is required")
	}
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DataDir = dataDir
	cfg.DBPath = filepath.Join(dataDir, ".niamverse", "niamverse.db")
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(dataDir, ".niamverse", "niamverse.log")
	}
	if strings.TrimSpace(catalogSource) != "" {
		cfg.CatalogSource = catalogSource
	}
	if cfg.CatalogSource == "" {
		cfg.CatalogSource = filepath.Join(dataDir, "games.json")
	}
	return cfg, nil
}
