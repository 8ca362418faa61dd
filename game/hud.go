package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/mitosis/components"
)

const (
	hudX     = 10
	hudWidth = 260
)

// drawHUD renders population counters and the pause/reseed/time-scale controls.
func (g *Game) drawHUD() {
	store := g.sim.Store()
	counts := g.sim.PhaseCounts()

	rl.DrawRectangle(0, 0, hudWidth+2*hudX, 290, rl.NewColor(0, 0, 0, 160))

	y := int32(10)
	rl.DrawText(fmt.Sprintf("Cells: %d", store.Len()), hudX, y, 20, rl.White)
	y += 24
	rl.DrawText(fmt.Sprintf("Births: %d  Tick: %d", g.sim.TotalBirths(), g.sim.Tick()), hudX, y, 16, rl.LightGray)
	y += 20
	rl.DrawText(fmt.Sprintf("FPS: %d  Sim: %.1fs", rl.GetFPS(), g.sim.SimTime()), hudX, y, 16, rl.LightGray)
	y += 26

	for _, p := range components.AllPhases {
		rl.DrawText(fmt.Sprintf("%-10s %d", p.String(), counts[p]), hudX, y, 14, phaseLabelColor(p))
		y += 16
	}
	y += 8

	// Time scale slider
	rl.DrawText(fmt.Sprintf("Time scale %.2fx  [,/.]", g.timeScale), hudX, y, 14, rl.Gray)
	y += 18
	scale := gui.SliderBar(
		rl.Rectangle{X: hudX, Y: float32(y), Width: hudWidth - 60, Height: 18},
		"", "",
		g.timeScale, MinTimeScale, MaxTimeScale,
	)
	if scale != g.timeScale {
		g.SetTimeScale(scale)
	}
	y += 28

	if gui.Button(rl.Rectangle{X: hudX, Y: float32(y), Width: 120, Height: 26}, toggleText(g.paused, "Resume", "Pause")) {
		g.paused = !g.paused
	}
	if gui.Button(rl.Rectangle{X: hudX + 130, Y: float32(y), Width: 120, Height: 26}, "Reseed") {
		g.reseed()
	}

	if g.paused {
		rl.DrawText("PAUSED", int32(g.screenWidth)-100, 10, 20, rl.Yellow)
	}
}

func phaseLabelColor(p components.Phase) rl.Color {
	if p.IsMitosis() {
		return rl.Orange
	}
	return rl.SkyBlue
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
