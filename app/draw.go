package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/rmorrow/smithfold/phase"
	"github.com/rmorrow/smithfold/telemetry"
	"github.com/rmorrow/smithfold/ui"
)

// draw paints the scene, HUD, and debug panel for one frame.
func (a *App) draw() {
	a.perf.StartPhase(telemetry.PhaseRender)

	rl.BeginDrawing()

	a.rend.Draw(a.eng.View(), a.eng.RenderNeeded())

	frame := a.eng.Frame()
	a.hud.Draw(ui.HUDData{
		Title:     "Smith Fold",
		Progress:  float32(a.progress),
		PhaseName: frame.Phase.String(),
		Idle:      a.eng.Idle(),
		FPS:       rl.GetFPS(),
	})
	a.hud.DrawControls(int32(a.height), "scroll: progress | click: pluck | space: auto | tab: panel")

	if a.panel.IsVisible() {
		newProgress, changed := a.panel.Draw(a.panelState(frame))
		if changed {
			a.setProgress(float64(newProgress))
		}
	}

	rl.EndDrawing()
}

// panelState assembles the debug panel's view of the app.
func (a *App) panelState(frame phase.Frame) ui.PanelState {
	state := ui.PanelState{
		Progress:   float32(a.progress),
		Blend:      float32(frame.Blend),
		Idle:       a.eng.Idle(),
		SparkCount: a.eng.SparkCount(),
		Ticks:      a.eng.Ticks(),
		AvgTickUS:  a.perf.Stats().AvgTickDuration.Microseconds(),
	}
	for i := 0; i < phase.NumPhases; i++ {
		state.Opacity[i] = float32(frame.Opacity[i])
		state.PhaseNames[i] = phase.ID(i).String()
	}
	return state
}
