package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables, optionally seeded
// from a local .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded environment from .env file")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c *Config) Validate() error {
	if c.TargetPopulation <= 0 {
		return fmt.Errorf("invalid BOXSIM_TARGET_POPULATION: %d (must be positive)", c.TargetPopulation)
	}
	if c.PopulationBand <= 0 {
		return fmt.Errorf("invalid BOXSIM_POPULATION_BAND: %d (must be positive)", c.PopulationBand)
	}
	if c.APIPort < 1 || c.APIPort > 65535 {
		return fmt.Errorf("invalid BOXSIM_API_PORT: %d (must be 1-65535)", c.APIPort)
	}
	if c.TickIntervalMs < 0 {
		return fmt.Errorf("invalid BOXSIM_TICK_INTERVAL_MS: %d (must be non-negative)", c.TickIntervalMs)
	}
	return nil
}
