package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mitosis/camera"
	"github.com/pthm-cable/mitosis/config"
	"github.com/pthm-cable/mitosis/renderer"
	"github.com/pthm-cable/mitosis/telemetry"
)

// Time scale limits for the , and . keys and the HUD slider.
const (
	MinTimeScale = 0.25
	MaxTimeScale = 8.0
)

// Options configures a game run.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool
	OutputDir      string
	StepsPerUpdate int    // headless passes per UpdateHeadless call
	GLDebug        bool   // turn GL errors into panics
	SnapshotDir    string // bookmark snapshots (empty = off); F5 falls back to "snapshots"
}

// Game holds the complete game state.
type Game struct {
	cfg *config.Config
	sim *Simulation

	// Rendering (nil when headless)
	camera *camera.Camera
	cells  *renderer.CellRenderer

	headless       bool
	paused         bool
	timeScale      float32
	stepsPerUpdate int
	pendingGrow    bool // a duplication or reseed since the last upload
	unloaded       bool
	snapshotDir    string

	screenWidth, screenHeight float32
	clearColor                rl.Color
}

// NewGame creates a game from the global config. Outside headless mode the
// raylib window and GL must already be initialized.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()

	sim, err := NewSimulation(cfg, SimOptions{
		Seed:        opts.Seed,
		LogStats:    opts.LogStats,
		OutputDir:   opts.OutputDir,
		SnapshotDir: opts.SnapshotDir,
	})
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:            cfg,
		sim:            sim,
		headless:       opts.Headless,
		timeScale:      1,
		stepsPerUpdate: max(opts.StepsPerUpdate, 1),
		pendingGrow:    true,
		snapshotDir:    opts.SnapshotDir,
	}
	if g.headless {
		return g, nil
	}

	renderer.SetDebug(opts.GLDebug || cfg.Render.GLDebug)

	g.screenWidth = float32(rl.GetScreenWidth())
	g.screenHeight = float32(rl.GetScreenHeight())
	g.camera = camera.New(g.screenWidth, g.screenHeight)
	g.camera.MinZoom = float32(cfg.Camera.MinZoom)
	g.camera.MaxZoom = float32(cfg.Camera.MaxZoom)

	c := cfg.Derived.ClearColor
	g.clearColor = rl.NewColor(c[0], c[1], c[2], c[3])

	prog := renderer.LoadProgram(cfg.Render.VertexShader, cfg.Render.FragmentShader)
	textures := renderer.LoadPhaseTextures(cfg.Render.TextureDir)
	g.cells, err = renderer.NewCellRenderer(prog, textures, cfg.Render.Blend)
	if err != nil {
		prog.Unload()
		textures.Unload()
		sim.Close()
		return nil, fmt.Errorf("creating cell renderer: %w", err)
	}
	if fb := textures.Fallbacks(); len(fb) > 0 {
		slog.Warn("phase textures missing, drawing generated ones", "count", len(fb), "dir", cfg.Render.TextureDir)
	}
	return g, nil
}

// Update handles input and runs one stepper pass scaled by the frame time.
// The pass finishes before Draw uploads and draws it.
func (g *Game) Update() {
	g.sim.Perf().StartTick()
	g.handleInput()
	if g.paused {
		return
	}

	dt := rl.GetFrameTime()
	if limit := g.cfg.Derived.MaxFrameDT32; limit > 0 && dt > limit {
		dt = limit
	}
	res := g.sim.Step(dt * g.timeScale)
	g.pendingGrow = g.pendingGrow || res.Grew
}

// UpdateHeadless runs StepsPerUpdate passes of the fixed tick length.
func (g *Game) UpdateHeadless() {
	perf := g.sim.Perf()
	for range g.stepsPerUpdate {
		perf.StartTick()
		g.sim.Step(g.cfg.Derived.DT32)
		perf.EndTick()
	}
}

// Draw uploads the geometry of the finished pass and renders it with the HUD.
func (g *Game) Draw() {
	perf := g.sim.Perf()

	perf.StartPhase(telemetry.PhaseUpload)
	g.cells.Upload(g.sim.Geometry(), g.pendingGrow)
	g.pendingGrow = false

	perf.StartPhase(telemetry.PhaseDraw)
	rl.BeginDrawing()
	rl.ClearBackground(g.clearColor)
	g.cells.Draw(g.camera)
	g.drawHUD()
	rl.EndDrawing()

	perf.EndTick()
	perf.RecordFrame()
}

// reseed replaces the population and forces a buffer reallocation.
func (g *Game) reseed() {
	g.sim.Reseed()
	g.pendingGrow = true
}

// saveSnapshot writes the current population on request.
func (g *Game) saveSnapshot() {
	dir := g.snapshotDir
	if dir == "" {
		dir = "snapshots"
	}
	path, err := g.sim.SaveSnapshot(dir, nil)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.sim.Tick())
}

// SetStatsCallback forwards every flushed stats window to fn.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.sim.SetStatsCallback(fn)
}

// Simulation returns the simulation core.
func (g *Game) Simulation() *Simulation { return g.sim }

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 { return g.sim.Tick() }

// Paused reports whether stepping is suspended.
func (g *Game) Paused() bool { return g.paused }

// TimeScale returns the multiplier applied to the frame time.
func (g *Game) TimeScale() float32 { return g.timeScale }

// SetTimeScale sets the frame time multiplier, clamped to the allowed range.
func (g *Game) SetTimeScale(s float32) {
	g.timeScale = min(max(s, MinTimeScale), MaxTimeScale)
}

// Unload releases GPU resources and closes output files. Later calls do nothing.
func (g *Game) Unload() {
	if g.unloaded {
		return
	}
	g.unloaded = true
	g.cells.Unload()
	g.sim.Close()
}
