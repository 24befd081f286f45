package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/rmorrow/smithfold/engine"
)

// drawSparks renders the reveal burst with additive blending.
func (r *Renderer) drawSparks(v engine.View) {
	if len(v.Sparks) == 0 {
		return
	}
	accent := paletteColor(r.cfg.Palette.Accent)

	rl.BeginBlendMode(rl.BlendAdditive)
	for i := range v.Sparks {
		s := &v.Sparks[i]
		size := s.Size
		if size < 0.5 {
			size = 0.5
		}
		rl.DrawCircleV(rl.Vector2{X: s.X, Y: s.Y}, size, fade(accent, float64(s.Alpha)))
	}
	rl.EndBlendMode()
}
