package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// drawBackground fills the surface with the base tone plus a subtle
// vertical gradient so the chart reads as sitting in space.
func (r *Renderer) drawBackground() {
	base := paletteColor(r.cfg.Palette.Background)
	rl.ClearBackground(base)

	top := base
	bottom := rl.Color{
		R: base.R + (base.R / 2),
		G: base.G + (base.G / 2),
		B: base.B + (base.B / 2),
		A: 255,
	}
	rl.DrawRectangleGradientV(0, 0, r.width, r.height, top, bottom)
}
