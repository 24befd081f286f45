package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/rmorrow/smithfold/engine"
	"github.com/rmorrow/smithfold/phase"
)

// stringMargin is the horizontal inset of the string endpoints in pixels.
const stringMargin = 80

// drawString renders the plucked-string polyline with an additive glow
// pass under a bright core pass.
func (r *Renderer) drawString(v engine.View) {
	opacity := v.Frame.Opacity[phase.String]
	if opacity <= 0 || len(v.String) < 2 {
		return
	}

	n := len(v.String)
	span := float32(r.width) - 2*stringMargin
	midY := float32(r.height) / 2

	if cap(r.stringBuf) < n {
		r.stringBuf = make([]rl.Vector2, n)
	}
	pts := r.stringBuf[:n]
	for i := range v.String {
		pts[i] = rl.Vector2{
			X: stringMargin + span*float32(i)/float32(n-1),
			Y: midY + float32(v.String[i].Y),
		}
	}

	accent := paletteColor(r.cfg.Palette.Accent)

	// Glow: wide, faint, additive.
	rl.BeginBlendMode(rl.BlendAdditive)
	glow := fade(accent, 0.25*opacity)
	for i := 0; i < n-1; i++ {
		rl.DrawLineEx(pts[i], pts[i+1], 7, glow)
	}
	rl.EndBlendMode()

	// Core line.
	core := fade(paletteColor(r.cfg.Palette.Marker), opacity)
	for i := 0; i < n-1; i++ {
		rl.DrawLineEx(pts[i], pts[i+1], 2, core)
	}
}
