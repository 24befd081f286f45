// Package phase maps the external progress scalar to the engine's narrative
// state: which visual phase is active, how far through it progress sits, the
// eased fold blend weight, and the per-phase crossfade opacities.
package phase

import (
	"math"

	"github.com/rmorrow/smithfold/config"
	"github.com/rmorrow/smithfold/smith"
)

// ID identifies a narrative phase.
type ID uint8

const (
	// String shows the plucked-string oscillator.
	String ID = iota
	// Mesh shows the Cartesian impedance grid emerging.
	Mesh
	// Fold blends the grid into its Smith-chart image.
	Fold
	// Chart shows the finished chart with markers.
	Chart
)

// NumPhases is the number of narrative phases.
const NumPhases = 4

func (id ID) String() string {
	switch id {
	case String:
		return "string"
	case Mesh:
		return "mesh"
	case Fold:
		return "fold"
	case Chart:
		return "chart"
	}
	return "unknown"
}

// progressEps is the progress delta below which Eval reuses the cached frame.
const progressEps = 1e-4

// Frame is the derived phase state for a single progress value.
type Frame struct {
	Phase   ID
	Sub     float64 // Progress through the active phase window, [0, 1]
	Blend   float64 // Eased fold blend weight, [0, 1]
	Opacity [NumPhases]float64
}

// Controller derives Frames from progress and owns the one-shot reveal latch.
type Controller struct {
	boundaries  [3]float64
	fadeWidth   float64
	foldStart   float64
	foldSpan    float64
	revealAt    float64
	revealReset float64

	lastProgress float64
	frame        Frame
	latched      bool
}

// NewController creates a controller from the phase configuration.
func NewController(cfg config.PhasesConfig) *Controller {
	c := &Controller{
		fadeWidth:    cfg.FadeWidth,
		foldStart:    cfg.FoldStart,
		foldSpan:     cfg.FoldEnd - cfg.FoldStart,
		revealAt:     cfg.FoldEnd,
		revealReset:  cfg.RevealReset,
		lastProgress: math.NaN(),
	}
	copy(c.boundaries[:], cfg.Boundaries)
	return c
}

// Eval returns the frame for progress p, recomputing only when p has moved
// more than an epsilon since the last evaluation. p is assumed pre-clamped
// by the caller.
func (c *Controller) Eval(p float64) Frame {
	if !math.IsNaN(c.lastProgress) && math.Abs(p-c.lastProgress) < progressEps {
		return c.frame
	}
	c.lastProgress = p
	c.frame = c.compute(p)
	return c.frame
}

func (c *Controller) compute(p float64) Frame {
	var f Frame

	// Window edges per phase: [0,b0], [b0,b1], [b1,b2], [b2,1].
	edges := [NumPhases + 1]float64{0, c.boundaries[0], c.boundaries[1], c.boundaries[2], 1}

	f.Phase = Chart
	for i := 0; i < 3; i++ {
		if p < c.boundaries[i] {
			f.Phase = ID(i)
			break
		}
	}
	lo, hi := edges[f.Phase], edges[f.Phase+1]
	if hi > lo {
		f.Sub = smith.Clamp01((p - lo) / (hi - lo))
	}

	f.Blend = smith.EaseOutQuart((p - c.foldStart) / c.foldSpan)

	// Each boundary carries a linear crossfade band of fadeWidth centered on
	// it: the earlier phase fades out as the later one fades in, so adjacent
	// opacities sum to one inside the band. The first phase has no fade-in
	// and the last no fade-out.
	for i := ID(0); i < NumPhases; i++ {
		in, out := 1.0, 1.0
		if i > 0 {
			b := c.boundaries[i-1]
			in = smith.Clamp01((p - (b - c.fadeWidth/2)) / c.fadeWidth)
		}
		if i < NumPhases-1 {
			b := c.boundaries[i]
			out = smith.Clamp01(((b + c.fadeWidth/2) - p) / c.fadeWidth)
		}
		f.Opacity[i] = in * out
	}

	return f
}

// Reveal advances the one-shot latch and reports whether the reveal fired on
// this call. It fires exactly once per upward crossing of the fold end and
// re-arms only when progress falls below the reset threshold, so jitter at
// the boundary cannot fire it twice.
func (c *Controller) Reveal(p float64) bool {
	if c.latched {
		if p < c.revealReset {
			c.latched = false
		}
		return false
	}
	if p >= c.revealAt {
		c.latched = true
		return true
	}
	return false
}
