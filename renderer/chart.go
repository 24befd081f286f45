package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/rmorrow/smithfold/engine"
	"github.com/rmorrow/smithfold/phase"
)

// circleThreshold is the blend weight above which the unit-circle boundary
// begins to appear.
const circleThreshold = 0.3

// drawChart renders the unit-circle boundary, terminal markers and corner
// reticles as the fold completes.
func (r *Renderer) drawChart(v engine.View) {
	blend := v.Frame.Blend
	marker := paletteColor(r.cfg.Palette.Marker)

	cx := float32(v.Geometry.CenterX)
	cy := float32(v.Geometry.CenterY)
	radius := float32(v.Geometry.ChartRadius)
	center := rl.Vector2{X: cx, Y: cy}

	// Unit circle fades in over the tail of the fold.
	if blend > circleThreshold {
		a := (blend - circleThreshold) / (1 - circleThreshold)
		rl.DrawRing(center, radius-1, radius+1, 0, 360, 128, fade(marker, 0.8*a))
	}

	// Markers and reticles belong to the finished chart.
	chartOp := v.Frame.Opacity[phase.Chart]
	if chartOp <= 0 {
		return
	}
	accent := paletteColor(r.cfg.Palette.Accent)

	// Matched load at the center, open at Gamma=+1, short at Gamma=-1.
	rl.DrawCircleV(center, 5, fade(accent, chartOp))
	rl.DrawCircleV(rl.Vector2{X: cx + radius, Y: cy}, 4, fade(marker, chartOp))
	rl.DrawCircleV(rl.Vector2{X: cx - radius, Y: cy}, 4, fade(marker, chartOp))

	// Horizontal axis through the three markers.
	rl.DrawLineEx(
		rl.Vector2{X: cx - radius, Y: cy},
		rl.Vector2{X: cx + radius, Y: cy},
		1, fade(marker, 0.35*chartOp),
	)

	r.drawReticles(fade(marker, 0.6*chartOp))
}

// drawReticles draws the four corner brackets.
func (r *Renderer) drawReticles(c rl.Color) {
	const inset, arm = 24, 18
	w, h := float32(r.width), float32(r.height)

	corners := [4][2]float32{
		{inset, inset},
		{w - inset, inset},
		{inset, h - inset},
		{w - inset, h - inset},
	}
	for _, p := range corners {
		dx, dy := float32(arm), float32(arm)
		if p[0] > w/2 {
			dx = -arm
		}
		if p[1] > h/2 {
			dy = -arm
		}
		rl.DrawLineEx(rl.Vector2{X: p[0], Y: p[1]}, rl.Vector2{X: p[0] + dx, Y: p[1]}, 2, c)
		rl.DrawLineEx(rl.Vector2{X: p[0], Y: p[1]}, rl.Vector2{X: p[0], Y: p[1] + dy}, 2, c)
	}
}
