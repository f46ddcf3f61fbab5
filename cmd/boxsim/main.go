// Command boxsim runs the boxing career simulation engine.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/bstar/fight-fortress-sub001/internal/api"
	"github.com/bstar/fight-fortress-sub001/internal/combat"
	"github.com/bstar/fight-fortress-sub001/internal/config"
	"github.com/bstar/fight-fortress-sub001/internal/economy"
	"github.com/bstar/fight-fortress-sub001/internal/fighter"
	"github.com/bstar/fight-fortress-sub001/internal/matchmaking"
	"github.com/bstar/fight-fortress-sub001/internal/persistence"
	"github.com/bstar/fight-fortress-sub001/internal/universe"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	slog.Info("boxsim starting", "seed", cfg.Seed, "target_population", cfg.TargetPopulation)

	tun, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		slog.Error("failed to load tuning", "path", cfg.TuningPath, "error", err)
		os.Exit(1)
	}

	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	u := universe.New(tun, cfg.Seed, cfg.TargetPopulation, cfg.PopulationBand)

	gen, err := fighter.NewGenerator(cfg.Seed+100, universe.DivisionNames)
	if err != nil {
		slog.Error("failed to build generator", "error", err)
		os.Exit(1)
	}

	if db.HasUniverse() {
		slog.Info("found saved universe, loading...")
		if err := db.LoadUniverse(u); err != nil {
			slog.Error("failed to load universe", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Info("no saved state found, seeding initial roster...")
		seedRoster(u, gen, cfg.InitialFighters)
		if err := db.SaveUniverse(u); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}

	u.SetCollaborators(
		matchmaking.NewScheduler(cfg.Seed+200),
		combat.NewResolver(cfg.Seed+300),
		gen,
		economy.NewLedger(cfg.Seed+400),
	)

	runner := universe.NewRunner(u, time.Duration(cfg.TickIntervalMs)*time.Millisecond)
	runner.MaxWeeks = cfg.WeeksToRun
	runner.OnWeek = func(absWeek int, events []universe.Event) {
		if err := db.SaveEvents(u.Date, events); err != nil {
			slog.Error("event save failed", "error", err)
		}
		if cfg.AutosaveWeeks > 0 && absWeek%cfg.AutosaveWeeks == 0 {
			if err := db.SaveUniverse(u); err != nil {
				slog.Error("autosave failed", "error", err)
			}
		}
	}

	apiServer := &api.Server{
		Universe: u,
		Runner:   runner,
		DB:       db,
		Port:     cfg.APIPort,
	}
	apiServer.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		runner.Stop()
	}()

	fmt.Printf("\n%d fighters across %d divisions. Week %d, year %d.\n",
		u.ActiveCount(), len(u.Divisions), u.Date.Week, u.Date.Year)
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.APIPort)
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	runner.Run()

	slog.Info("final save...")
	if err := db.SaveUniverse(u); err != nil {
		slog.Error("final save failed", "error", err)
	}

	fmt.Println("Simulation stopped. Universe saved.")
}

// seedRoster fills a fresh universe with pros spread across ages 18-34 so
// the opening years have a full ladder instead of a uniform debut class.
func seedRoster(u *universe.Universe, gen *fighter.Generator, count int) {
	for i := 0; i < count; i++ {
		age := 18 + i%17
		f := gen.Generate(u.Date, age)
		// Everyone seeds in as an active pro; the career ladder sorts
		// itself out over the first seasons.
		if f.Phase < fighter.PhaseProDebut {
			f.Phase = fighter.PhaseProDebut
		}
		u.AddFighter(f)
	}
	slog.Info("initial roster seeded", "fighters", u.ActiveCount())
}

func logLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
