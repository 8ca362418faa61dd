package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Time scale with < > keys (comma and period), halving or doubling
	if rl.IsKeyPressed(rl.KeyComma) {
		g.SetTimeScale(g.timeScale / 2)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.SetTimeScale(g.timeScale * 2)
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.reseed()
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		g.saveSnapshot()
	}

	// Camera controls
	g.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.camera.Resize(w, h)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Pan speed in pixels per frame
	const panSpeed = 8

	// Arrow key panning
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Right-drag pans so the arena follows the cursor
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		g.camera.Pan(-d.X, -d.Y)
	}

	// Mouse wheel zooms toward the cursor
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		m := rl.GetMousePosition()
		g.camera.ZoomAt(m.X, m.Y, 1+wheel*float32(g.cfg.Camera.ZoomSpeed))
	}

	// C recenters
	if rl.IsKeyPressed(rl.KeyC) || rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
