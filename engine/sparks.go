package engine

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/rmorrow/smithfold/components"
)

// SparkView is the renderer-facing shape of one live spark.
type SparkView struct {
	X, Y  float32
	Size  float32
	Alpha float32 // [0, 1], fades with remaining life
}

// burstSparks emits a radial burst from the chart center when the reveal
// latch fires.
func (e *Engine) burstSparks() {
	cfg := e.cfg.Sparks
	g := e.lat.Geometry()

	for i := 0; i < cfg.Count; i++ {
		ang := e.rng.Float64() * 2 * math.Pi
		speed := cfg.Speed * (0.4 + 0.6*e.rng.Float64())
		life := float32(cfg.Life * (0.5 + 0.5*e.rng.Float64()))

		pos := components.Position{X: float32(g.CenterX), Y: float32(g.CenterY)}
		vel := components.Velocity{
			X: float32(math.Cos(ang) * speed),
			Y: float32(math.Sin(ang) * speed),
		}
		lf := components.Life{Remaining: life, Total: life}

		e.sparkMapper.NewEntity(&pos, &vel, &lf)
	}
	e.sparkCount += cfg.Count
}

// stepSparks integrates live sparks and removes expired ones.
func (e *Engine) stepSparks(dt float64) {
	if e.sparkCount == 0 {
		return
	}
	drag := float32(math.Exp(-e.cfg.Sparks.Drag * dt))
	fdt := float32(dt)

	// First pass: integrate and collect expired entities (removal must wait
	// until the query iteration completes).
	var expired []ecs.Entity
	query := e.sparkFilter.Query()
	for query.Next() {
		pos, vel, life := query.Get()

		life.Remaining -= fdt
		if life.Remaining <= 0 {
			expired = append(expired, query.Entity())
			continue
		}
		vel.X *= drag
		vel.Y *= drag
		pos.X += vel.X * fdt
		pos.Y += vel.Y * fdt
	}

	for _, ent := range expired {
		e.sparkMapper.Remove(ent)
	}
	e.sparkCount -= len(expired)
}

// collectSparks builds the renderer-facing spark list.
func (e *Engine) collectSparks() []SparkView {
	if e.sparkCount == 0 {
		return nil
	}
	views := make([]SparkView, 0, e.sparkCount)
	size := float32(e.cfg.Sparks.Size)

	query := e.sparkFilter.Query()
	for query.Next() {
		pos, _, life := query.Get()
		ratio := life.Remaining / life.Total
		views = append(views, SparkView{
			X:     pos.X,
			Y:     pos.Y,
			Size:  size * (0.5 + 0.5*ratio),
			Alpha: ratio,
		})
	}
	return views
}

// SparkCount returns the number of live sparks.
func (e *Engine) SparkCount() int {
	return e.sparkCount
}
