package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// PanelState holds the values the debug panel displays and edits.
type PanelState struct {
	Progress   float32
	Blend      float32
	Opacity    [4]float32
	PhaseNames [4]string
	Idle       bool
	SparkCount int
	Ticks      int64
	AvgTickUS  int64
}

// DebugPanel is a raygui panel for scrubbing progress and inspecting the
// phase blend. Hidden by default, toggled with TAB.
type DebugPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewDebugPanel creates a debug panel anchored at the given position.
func NewDebugPanel(x, y, width int32) *DebugPanel {
	return &DebugPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Move repositions the panel, keeping visibility state.
func (p *DebugPanel) Move(x, y int32) {
	p.x, p.y = x, y
}

// Toggle switches panel visibility.
func (p *DebugPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// IsVisible returns whether the panel is shown.
func (p *DebugPanel) IsVisible() bool {
	return p.visible
}

// Draw renders the panel and returns the possibly-edited progress along
// with whether the slider changed it.
func (p *DebugPanel) Draw(state PanelState) (float32, bool) {
	if !p.visible {
		return state.Progress, false
	}

	r := p.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	panelHeight := lineHeight*12 + padding*3
	r.DrawPanel(p.x, p.y, p.width, panelHeight)

	x := p.x + padding
	y := p.y + padding
	innerWidth := p.width - padding*2

	y = r.DrawSectionHeader(x, y, "Scroll")

	newProgress := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(innerWidth - 50), Height: 16},
		"", "",
		state.Progress, 0, 1,
	)
	rl.DrawText(fmt.Sprintf("%.3f", newProgress), x+innerWidth-45, y+2, r.Theme.FontSize, r.Theme.ValueColor)
	changed := newProgress != state.Progress
	y += lineHeight + 6

	y = r.DrawSectionHeader(x, y, "Phases")
	for i, name := range state.PhaseNames {
		y = r.DrawBar(x, y, name, state.Opacity[i], innerWidth)
	}
	y = r.DrawBar(x, y, "blend", state.Blend, innerWidth)
	y += 4

	y = r.DrawSectionHeader(x, y, "Engine")
	status := "running"
	if state.Idle {
		status = "settled"
	}
	y = r.DrawLabelValue(x, y, "state", status)
	y = r.DrawLabelValue(x, y, "sparks", fmt.Sprintf("%d", state.SparkCount))
	r.DrawLabelValue(x, y, "tick", fmt.Sprintf("%d (%dus avg)", state.Ticks, state.AvgTickUS))

	return newProgress, changed
}
