package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

const (
	MinGalleryColumns = 1
	MaxGalleryColumns = 4
)

type Config struct {
	Addr     string `env:"ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Defaults handed to every new browser session
	BaseURL        string `env:"API_BASE_URL" envDefault:"https://z-api.aioec.tech"`
	APIKey         string `env:"API_KEY"`
	APIKeyParam    string `env:"API_KEY_PARAM"`
	Seed           int64  `env:"DEFAULT_SEED" envDefault:"42"`
	UseRandomSeed  bool   `env:"USE_RANDOM_SEED" envDefault:"true"`
	GalleryColumns int    `env:"GALLERY_COLUMNS" envDefault:"2"`

	GenerateTimeout time.Duration `env:"GENERATE_TIMEOUT" envDefault:"60s"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.GenerateTimeout <= 0 {
		return nil, fmt.Errorf("GENERATE_TIMEOUT must be positive, got %s", cfg.GenerateTimeout)
	}
	cfg.GalleryColumns = ClampColumns(cfg.GalleryColumns)
	return cfg, nil
}

func ClampColumns(n int) int {
	return lo.Clamp(n, MinGalleryColumns, MaxGalleryColumns)
}
