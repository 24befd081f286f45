package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/rmorrow/smithfold/config"
	"github.com/rmorrow/smithfold/engine"
	"github.com/rmorrow/smithfold/phase"
)

// gridRenderer holds the cached blend color. Building a new color every
// frame is wasted work: the lerp is recomputed only when the blend weight
// has moved by more than a hundredth.
type gridRenderer struct {
	lastBlend float64
	color     rl.Color
}

// colorFor returns the neutral-to-accent color for the given blend weight,
// from cache when the weight has not moved materially.
func (g *gridRenderer) colorFor(p config.PaletteConfig, blend float64) rl.Color {
	if g.lastBlend >= 0 && math.Abs(blend-g.lastBlend) <= 0.01 {
		return g.color
	}
	g.lastBlend = blend
	g.color = rl.Color{
		R: lerpChannel(p.Neutral[0], p.Accent[0], blend),
		G: lerpChannel(p.Neutral[1], p.Accent[1], blend),
		B: lerpChannel(p.Neutral[2], p.Accent[2], blend),
		A: 255,
	}
	return g.color
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// drawGrid renders every impedance polyline as one line-strip batch. Grid
// opacity spans the mesh, fold and chart phases; the main lines (r=1 and
// x=0) draw slightly brighter.
func (r *Renderer) drawGrid(v engine.View) {
	opacity := v.Frame.Opacity[phase.Mesh] + v.Frame.Opacity[phase.Fold] + v.Frame.Opacity[phase.Chart]
	if opacity <= 0 {
		return
	}

	base := r.grid.colorFor(r.cfg.Palette, v.Frame.Blend)

	for li := range v.Lines {
		line := &v.Lines[li]

		if cap(r.lineBuf) < len(line.Points) {
			r.lineBuf = make([]rl.Vector2, len(line.Points))
		}
		pts := r.lineBuf[:len(line.Points)]
		for i := range line.Points {
			pts[i] = rl.Vector2{X: float32(line.Points[i].X), Y: float32(line.Points[i].Y)}
		}

		alpha := 0.55 * opacity
		if line.Value == 0 || line.Value == 1 {
			alpha = 0.9 * opacity
		}
		rl.DrawLineStrip(pts, fade(base, alpha))
	}
}
