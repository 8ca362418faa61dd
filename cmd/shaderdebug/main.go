// Shader debug tool - renders a seeded population through the cell shader to
// a PNG file for inspection.
//
// Usage: go run ./cmd/shaderdebug -frames 600 -out debug.png
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mitosis/assets"
	"github.com/pthm-cable/mitosis/camera"
	"github.com/pthm-cable/mitosis/config"
	"github.com/pthm-cable/mitosis/game"
	"github.com/pthm-cable/mitosis/renderer"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "debug.png", "Output PNG path")
	width := flag.Int("width", 512, "Render width")
	height := flag.Int("height", 512, "Render height")
	frames := flag.Int("frames", 600, "Fixed-dt passes to run before rendering")
	cells := flag.Int("cells", 0, "Initial cells (0 = use config)")
	seed := flag.Int64("seed", 1, "RNG seed")
	label := flag.Bool("label", true, "Write population counts into the image")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *cells > 0 {
		cfg.Simulation.InitialCells = *cells
	}
	renderer.SetDebug(true)

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Shader Debug")
	defer rl.CloseWindow()

	if err := renderer.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize GL: %v\n", err)
		os.Exit(1)
	}

	sim, err := game.NewSimulation(cfg, game.SimOptions{Seed: *seed})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to seed population: %v\n", err)
		os.Exit(1)
	}
	defer sim.Close()
	for range *frames {
		sim.Step(cfg.Derived.DT32)
	}

	prog := renderer.LoadProgram(cfg.Render.VertexShader, cfg.Render.FragmentShader)
	textures := renderer.LoadPhaseTextures(cfg.Render.TextureDir)
	cr, err := renderer.NewCellRenderer(prog, textures, cfg.Render.Blend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create cell renderer: %v\n", err)
		os.Exit(1)
	}
	defer cr.Unload()
	cr.Upload(sim.Geometry(), true)

	// Create render texture
	target := rl.LoadRenderTexture(int32(*width), int32(*height))
	defer rl.UnloadRenderTexture(target)

	c := cfg.Derived.ClearColor
	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.NewColor(c[0], c[1], c[2], c[3]))
	cr.Draw(camera.New(float32(*width), float32(*height)))
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	rlImg := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(rlImg)
	img := assets.ToNRGBA(rlImg.ToImage())
	rl.UnloadImage(rlImg)

	if *label {
		counts := sim.PhaseCounts()
		assets.Annotate(img, []string{
			fmt.Sprintf("cells %d  births %d  t=%.1fs", sim.Store().Len(), sim.TotalBirths(), sim.SimTime()),
			fmt.Sprintf("G1 %d S %d G2 %d", counts[0], counts[1], counts[2]),
			fmt.Sprintf("Pro %d Meta %d Ana %d Telo %d", counts[3], counts[4], counts[5], counts[6]),
		}, color.White)
	}

	if err := assets.WritePNG(*outPath, img); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to export image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Cells rendered to: %s (%dx%d, %d cells)\n", *outPath, *width, *height, sim.Store().Len())
}
