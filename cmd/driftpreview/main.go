// Drift preview tool - interactive sliders for the duplication drift with a
// speed histogram and population curve of a short headless run.
//
// Usage: go run ./cmd/driftpreview
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/mitosis/config"
	"github.com/pthm-cable/mitosis/game"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	histBins     = 32
	maxCells     = 50000
)

// PreviewParams holds the tunable values.
type PreviewParams struct {
	DriftMin    float32
	DriftMax    float32
	DriftScale  float32
	SpeedJitter float32
	Seconds     float32
	Seed        int64
}

// runResult is what one preview run measured.
type runResult struct {
	Counts     []float64 // histogram of speed multipliers
	Lo, Hi     float64   // histogram range
	Population []float64 // cell count sampled every quarter second
	Births     int
	Mean, Std  float64
}

func paramsFrom(cfg *config.Config) PreviewParams {
	return PreviewParams{
		DriftMin:    float32(cfg.Duplication.DriftMin),
		DriftMax:    float32(cfg.Duplication.DriftMax),
		DriftScale:  float32(cfg.Duplication.DriftScale),
		SpeedJitter: float32(cfg.Seeding.SpeedJitter),
		Seconds:     30,
		Seed:        12345,
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	base, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "Drift Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := paramsFrom(base)
	res := simulate(base, params)
	needsRun := false

	for !rl.WindowShouldClose() {
		if needsRun {
			res = simulate(base, params)
			needsRun = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawHistogram(res, 10, 10, previewSize, previewSize/2)
		drawPopulation(res, 10, 20+previewSize/2, previewSize, previewSize/2-10)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Speed mean: %.3f  std: %.3f  range: %.3f..%.3f", res.Mean, res.Std, res.Lo, res.Hi), 15, statsY, 16, rl.DarkGray)
		final := 0.0
		if n := len(res.Population); n > 0 {
			final = res.Population[n-1]
		}
		rl.DrawText(fmt.Sprintf("Cells: %.0f  Births: %d", final, res.Births), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Duplication Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		params.DriftMin = slider("Drift min (lower bound of speed change)", "%.3f", panelX, &panelY, params.DriftMin, -0.9, 0)
		params.DriftMax = slider("Drift max (upper bound of speed change)", "%.3f", panelX, &panelY, params.DriftMax, 0, 2)
		params.DriftScale = slider("Drift scale (fraction applied per division)", "%.3f", panelX, &panelY, params.DriftScale, 0, 1)
		params.SpeedJitter = slider("Seed speed jitter", "%.3f", panelX, &panelY, params.SpeedJitter, 0, 0.5)

		// Separator
		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		params.Seconds = slider("Simulated seconds", "%.0f", panelX, &panelY, params.Seconds, 5, 120)
		params.Seed = int64(slider("Seed", "%.0f", panelX, &panelY, float32(params.Seed), 0, 99999))
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Run") {
			needsRun = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = paramsFrom(base)
			needsRun = true
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yamlLines(params) {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider bar at *y, advances *y and returns the new value.
func slider(label, format string, x float32, y *float32, value, lo, hi float32) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf(format, lo), fmt.Sprintf(format, hi),
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return v
}

func yamlLines(p PreviewParams) []string {
	return []string{
		"duplication:",
		fmt.Sprintf("  drift_min: %.3f", p.DriftMin),
		fmt.Sprintf("  drift_max: %.3f", p.DriftMax),
		fmt.Sprintf("  drift_scale: %.3f", p.DriftScale),
		"seeding:",
		fmt.Sprintf("  speed_jitter: %.3f", p.SpeedJitter),
	}
}

// simulate runs the simulation headless with p applied to a copy of base.
func simulate(base *config.Config, p PreviewParams) runResult {
	cfg := *base
	cfg.Duplication.DriftMin = float64(p.DriftMin)
	cfg.Duplication.DriftMax = float64(p.DriftMax)
	cfg.Duplication.DriftScale = float64(p.DriftScale)
	cfg.Seeding.SpeedJitter = float64(p.SpeedJitter)

	sim, err := game.NewSimulation(&cfg, game.SimOptions{Seed: p.Seed})
	if err != nil {
		slog.Error("preview run failed", "error", err)
		return runResult{}
	}
	defer sim.Close()

	var res runResult
	dt := cfg.Derived.DT32
	nextSample := 0.0
	for sim.SimTime() < float64(p.Seconds) && sim.Store().Len() < maxCells {
		sim.Step(dt)
		if sim.SimTime() >= nextSample {
			res.Population = append(res.Population, float64(sim.Store().Len()))
			nextSample += 0.25
		}
	}
	res.Births = sim.TotalBirths()

	speeds := make([]float64, sim.Store().Len())
	for i, s := range sim.Store().Speed {
		speeds[i] = float64(s)
	}
	if len(speeds) == 0 {
		return res
	}
	sort.Float64s(speeds)
	res.Mean, res.Std = stat.MeanStdDev(speeds, nil)
	res.Lo = speeds[0]
	res.Hi = speeds[len(speeds)-1]

	// Histogram needs the last divider strictly above the largest value
	dividers := floats.Span(make([]float64, histBins+1), res.Lo, res.Hi+1e-9)
	res.Counts = stat.Histogram(nil, dividers, speeds, nil)
	return res
}

func drawHistogram(res runResult, x, y, w, h int32) {
	rl.DrawRectangleLines(x, y, w, h, rl.DarkGray)
	rl.DrawText("Speed multiplier", x+6, y+6, 14, rl.Gray)
	if len(res.Counts) == 0 {
		return
	}
	peak := floats.Max(res.Counts)
	if peak == 0 {
		return
	}
	barW := float32(w) / float32(len(res.Counts))
	for i, c := range res.Counts {
		bh := float32(c/peak) * float32(h-28)
		rl.DrawRectangleRec(rl.Rectangle{
			X:      float32(x) + float32(i)*barW + 1,
			Y:      float32(y+h) - bh,
			Width:  barW - 2,
			Height: bh,
		}, rl.SkyBlue)
	}
}

func drawPopulation(res runResult, x, y, w, h int32) {
	rl.DrawRectangleLines(x, y, w, h, rl.DarkGray)
	rl.DrawText("Population", x+6, y+6, 14, rl.Gray)
	n := len(res.Population)
	if n < 2 {
		return
	}
	peak := floats.Max(res.Population)
	if peak == 0 {
		return
	}
	step := float32(w) / float32(n-1)
	for i := 1; i < n; i++ {
		x0 := float32(x) + float32(i-1)*step
		x1 := float32(x) + float32(i)*step
		y0 := float32(y+h) - float32(res.Population[i-1]/peak)*float32(h-28)
		y1 := float32(y+h) - float32(res.Population[i]/peak)*float32(h-28)
		rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, rl.Maroon)
	}
}
