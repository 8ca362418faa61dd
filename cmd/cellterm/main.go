// Terminal viewer - runs the simulation and draws it with one glyph per cell.
//
// Usage: go run ./cmd/cellterm -audio
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/mitosis/camera"
	"github.com/pthm-cable/mitosis/config"
	"github.com/pthm-cable/mitosis/game"
)

// cellAspect is the height of a terminal character relative to its width.
const cellAspect = 2

type viewer struct {
	screen tcell.Screen
	sim    *game.Simulation
	cam    *camera.Camera
	cfg    *config.Config

	cols, rows int
	paused     bool

	audio      bool
	sampleRate beep.SampleRate
}

func newViewer(cfg *config.Config, sim *game.Simulation) (*viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	v := &viewer{screen: screen, sim: sim, cfg: cfg}
	v.cols, v.rows = screen.Size()
	v.cam = camera.NewTerminal(v.cols, v.rows-1, cellAspect)
	v.cam.MinZoom = float32(cfg.Camera.MinZoom)
	v.cam.MaxZoom = float32(cfg.Camera.MaxZoom)
	return v, nil
}

func (v *viewer) initAudio() error {
	v.sampleRate = beep.SampleRate(44100)
	if err := speaker.Init(v.sampleRate, v.sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	v.audio = true
	return nil
}

// tick plays a short sine tone for a batch of duplications.
func (v *viewer) tick() {
	if !v.audio {
		return
	}
	sine, err := generators.SineTone(v.sampleRate, v.cfg.Terminal.BeepHz)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(v.sampleRate.N(time.Duration(v.cfg.Terminal.BeepMillis)*time.Millisecond), sine))
}

func (v *viewer) handleResize() {
	cols, rows := v.screen.Size()
	if cols == v.cols && rows == v.rows {
		return
	}
	v.cols, v.rows = cols, rows
	v.cam.Resize(float32(cols), float32(rows-1))
	v.screen.Sync()
}

// handleInput returns false when the viewer should quit.
func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		switch ev.Key() {
		case tcell.KeyLeft:
			v.cam.Pan(-2, 0)
		case tcell.KeyRight:
			v.cam.Pan(2, 0)
		case tcell.KeyUp:
			v.cam.Pan(0, -1)
		case tcell.KeyDown:
			v.cam.Pan(0, 1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.paused = !v.paused
			case '+', '=':
				v.cam.ZoomBy(1.25)
			case '-':
				v.cam.ZoomBy(0.8)
			case 'c':
				v.cam.Reset()
			case 'r':
				v.sim.Reseed()
			}
		}

	case *tcell.EventResize:
		v.handleResize()
	}
	return true
}

func (v *viewer) draw() {
	v.screen.Clear()

	rows := v.rows - 1
	for _, g := range project(v.cam, v.sim.Store(), v.cols, rows) {
		v.screen.SetContent(g.X, g.Y, g.Rune, nil, phaseStyles[g.Phase])
	}

	status := fmt.Sprintf(" cells %d  births %d  t=%.1fs  zoom %.2fx ", v.sim.Store().Len(), v.sim.TotalBirths(), v.sim.SimTime(), v.cam.Zoom)
	if v.paused {
		status += " PAUSED "
	}
	status += " [q]uit [space] pause [+/-] zoom [r]eseed"
	bar := tcell.StyleDefault.Reverse(true)
	for x := range v.cols {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		v.screen.SetContent(x, rows, r, nil, bar)
	}

	v.screen.Show()
}

func (v *viewer) run() {
	hz := max(v.cfg.Terminal.TickHz, 1)
	dt := float32(1) / float32(hz)
	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				// Screen finalized
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}

		case <-ticker.C:
			if !v.paused {
				if res := v.sim.Step(dt); res.Grew {
					v.tick()
				}
			}
			v.draw()
		}
	}
}

func (v *viewer) cleanup() {
	if v.audio {
		speaker.Close()
	}
	v.screen.Fini()
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	audio := flag.Bool("audio", false, "Play a tick on every duplication")
	logPath := flag.String("log", "", "Write JSON logs to this file (default: discard)")
	flag.Parse()

	// The terminal owns stdout, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	sim, err := game.NewSimulation(cfg, game.SimOptions{Seed: rngSeed})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start simulation: %v\n", err)
		os.Exit(1)
	}
	defer sim.Close()

	v, err := newViewer(cfg, sim)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer v.cleanup()

	if *audio {
		if err := v.initAudio(); err != nil {
			// Non-fatal, the viewer runs without sound
			slog.Warn("audio initialization failed", "error", err)
		}
	}

	v.run()
}
