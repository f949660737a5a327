package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	ArchiveBaseURL   string        `env:"ARCHIVE_BASE_URL" envDefault:"https://tenhou.net/0/log/"`
	DBPath           string        `env:"DB_PATH" envDefault:"mjlog.db"`
	ServerPort       string        `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	CacheTTL         time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	FetchConcurrency int           `env:"FETCH_CONCURRENCY" envDefault:"4"`
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("archive_base_url", cfg.ArchiveBaseURL).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("cache_ttl", cfg.CacheTTL).
		Int("fetch_concurrency", cfg.FetchConcurrency).
		Msg("configuration loaded")

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ArchiveBaseURL == "" {
		return fmt.Errorf("ARCHIVE_BASE_URL is required")
	}
	if c.FetchConcurrency < 1 {
		return fmt.Errorf("FETCH_CONCURRENCY must be at least 1, got %d", c.FetchConcurrency)
	}
	return nil
}

var Module = fx.Provide(Load)
