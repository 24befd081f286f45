package app

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes window, wheel, mouse, and keyboard input.
func (a *App) handleInput() {
	a.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Scroll drives the narrative; the wheel feeds the accumulator
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.setProgress(a.progress + float64(wheel)*a.cfg.Input.WheelRate)
	}

	// Arrow keys as a keyboard fallback for scrubbing
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyRight) {
		a.setProgress(a.progress + a.cfg.Input.WheelRate/4)
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyLeft) {
		a.setProgress(a.progress - a.cfg.Input.WheelRate/4)
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.autoPlay = !a.autoPlay
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		a.setProgress(0)
	}
	if rl.IsKeyPressed(rl.KeyEnd) {
		a.setProgress(1)
	}

	if rl.IsKeyPressed(rl.KeyTab) && a.panel != nil {
		a.panel.Toggle()
	}

	// Click plucks the string while the string phase owns the screen
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		pos := rl.GetMousePosition()
		if !a.panelContains(pos) && a.width > 0 {
			dir := 1
			if pos.Y > a.height/2 {
				dir = -1
			}
			a.eng.Pluck(float64(pos.X/a.width), dir)
		}
	}
}

// panelContains reports whether the point lands on the visible debug panel,
// so clicks on its widgets don't also pluck the string.
func (a *App) panelContains(pos rl.Vector2) bool {
	if a.panel == nil || !a.panel.IsVisible() {
		return false
	}
	return pos.X >= a.width-270
}

// handleResize checks for window resize and propagates new dimensions.
func (a *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == a.width && h == a.height {
		return
	}
	a.width, a.height = w, h

	a.eng.Resize(w, h)
	if a.rend != nil {
		a.rend.Resize(int32(w), int32(h))
	}
	if a.panel != nil {
		a.panel.Move(int32(w)-270, 10)
	}
}
