// Package config holds runtime configuration loaded from environment
// variables plus the tunable model constants, which can be overlaid from a
// YAML file. The numeric tuning values are deliberately not hard contracts:
// they were iterated many times and only the qualitative behavior (bounded
// attributes, stable population, plausible retirement timing) is binding.
package config

// Config holds process-level settings parsed with github.com/caarlos0/env.
type Config struct {
	// Simulation
	Seed             int64 `env:"BOXSIM_SEED" envDefault:"42"`
	InitialFighters  int   `env:"BOXSIM_INITIAL_FIGHTERS" envDefault:"400"`
	TargetPopulation int   `env:"BOXSIM_TARGET_POPULATION" envDefault:"400"`
	PopulationBand   int   `env:"BOXSIM_POPULATION_BAND" envDefault:"80"`

	// Runner
	WeeksToRun     int `env:"BOXSIM_WEEKS" envDefault:"0"` // 0 = run until signal
	TickIntervalMs int `env:"BOXSIM_TICK_INTERVAL_MS" envDefault:"250"`
	AutosaveWeeks  int `env:"BOXSIM_AUTOSAVE_WEEKS" envDefault:"13"`

	// Storage
	DBPath string `env:"BOXSIM_DB_PATH" envDefault:"data/universe.db"`

	// Tuning overlay (optional; defaults apply when empty or missing)
	TuningPath string `env:"BOXSIM_TUNING_PATH"`

	// API
	APIPort int `env:"BOXSIM_API_PORT" envDefault:"8090"`

	// Logging
	LogLevel string `env:"BOXSIM_LOG_LEVEL" envDefault:"info"`
}
