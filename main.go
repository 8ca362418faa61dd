package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mitosis/config"
	"github.com/pthm-cable/mitosis/game"
	"github.com/pthm-cable/mitosis/renderer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in simulated seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	glDebug := flag.Bool("gl-debug", false, "Panic on the first OpenGL error")
	snapshotDir := flag.String("snapshot-dir", "", "Save a population snapshot on every bookmark to this directory")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		Headless:       *headless,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
		GLDebug:        *glDebug,
		SnapshotDir:    *snapshotDir,
	}

	if *headless {
		os.Exit(runHeadless(opts, *maxTicks))
	}
	os.Exit(runWindow(cfg, opts, *maxTicks))
}

// runHeadless steps the simulation on the CPU only, without raylib.
func runHeadless(opts game.Options, maxTicks int) int {
	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		return 1
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for {
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick(), "cells", g.Simulation().Store().Len())
			return 0
		}
	}
}

// runWindow opens the window, loads GL and runs the frame loop.
func runWindow(cfg *config.Config, opts game.Options, maxTicks int) int {
	game.RouteRaylibLogs()
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagVsyncHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	if !rl.IsWindowReady() {
		slog.Error("failed to open window", "error", &renderer.ResourceInitError{Resource: "window", Err: errors.New("raylib reported no window")})
		return 1
	}
	if err := renderer.Init(); err != nil {
		slog.Error("failed to initialize renderer", "error", err)
		return 1
	}

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to start game", "error", err)
		return 1
	}
	defer g.Unload()

	slog.Info("starting simulation", "seed", opts.Seed, "cells", cfg.Simulation.InitialCells)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
	return 0
}
