// Package renderer paints engine state with raylib. It never mutates
// simulation state: everything it draws comes from an engine.View snapshot.
//
// The scene is drawn into a render texture only on frames the engine marks
// as needing a redraw; other frames blit the cached texture. That keeps the
// engine's idle frame-skip visually stable under raylib's immediate mode.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/rmorrow/smithfold/config"
	"github.com/rmorrow/smithfold/engine"
)

// Renderer owns the render target and per-layer draw state for one engine.
type Renderer struct {
	cfg *config.Config

	width, height int32
	target        rl.RenderTexture2D
	ready         bool

	grid      gridRenderer
	stringBuf []rl.Vector2
	lineBuf   []rl.Vector2
}

// New creates a renderer. Resize must be called before the first Draw.
func New(cfg *config.Config) *Renderer {
	return &Renderer{
		cfg:  cfg,
		grid: gridRenderer{lastBlend: -1},
	}
}

// Resize recreates the render target for the new surface size. Idempotent.
func (r *Renderer) Resize(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	if r.ready && width == r.width && height == r.height {
		return
	}
	if r.ready {
		rl.UnloadRenderTexture(r.target)
	}
	r.width, r.height = width, height
	r.target = rl.LoadRenderTexture(width, height)
	r.ready = true
}

// Draw paints the view. When redraw is false the previous frame's texture is
// blitted unchanged, which is how idle frame-skipping stays flicker-free.
// Must be called between BeginDrawing and EndDrawing.
func (r *Renderer) Draw(v engine.View, redraw bool) {
	if !r.ready {
		return
	}

	if redraw {
		rl.BeginTextureMode(r.target)
		r.drawBackground()
		r.drawString(v)
		r.drawGrid(v)
		r.drawChart(v)
		r.drawSparks(v)
		rl.EndTextureMode()
	}

	// Render textures are Y-flipped; the negative source height corrects it.
	src := rl.Rectangle{Width: float32(r.width), Height: -float32(r.height)}
	rl.DrawTextureRec(r.target.Texture, src, rl.Vector2{}, rl.White)
}

// Unload frees the render target.
func (r *Renderer) Unload() {
	if r.ready {
		rl.UnloadRenderTexture(r.target)
		r.ready = false
	}
}

// fade scales a color's alpha by an opacity in [0, 1].
func fade(c rl.Color, opacity float64) rl.Color {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(float64(c.A) * opacity)
	return c
}

// paletteColor converts a config RGB triple to an opaque raylib color.
func paletteColor(rgb [3]uint8) rl.Color {
	return rl.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}
