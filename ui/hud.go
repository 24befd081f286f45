package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds the data needed to render the main HUD.
type HUDData struct {
	Title     string
	Progress  float32
	PhaseName string
	Idle      bool
	FPS       int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("%s | %.0f%% | FPS: %d", data.PhaseName, data.Progress*100, data.FPS),
		10, 35, 16, rl.LightGray,
	)

	if data.Idle {
		rl.DrawText("settled", 10, 55, 16, rl.Gray)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
