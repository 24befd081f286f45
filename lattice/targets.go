package lattice

import (
	"math"

	"github.com/rmorrow/smithfold/phase"
	"github.com/rmorrow/smithfold/smith"
)

// targetEps is the progress delta below which UpdateTargets is skipped.
// Skipping is purely an optimization: targets are a function of progress and
// geometry alone, so an unchanged progress recomputes to the same values.
const targetEps = 1e-3

// UpdateTargets recomputes every grid point's target position for the given
// progress and phase frame. Each target blends the point's undistorted
// Cartesian position with its Smith-chart image by the eased fold weight.
// During the mesh phase a noise displacement animates the Cartesian layout;
// its amplitude is forced to zero as soon as the fold blend starts rising so
// the two motions never fight. Returns false when the memoized progress
// made the call a no-op.
func (l *Lattice) UpdateTargets(p float64, f phase.Frame) bool {
	if !l.placed {
		return false
	}
	if !math.IsNaN(l.lastProgress) && math.Abs(p-l.lastProgress) < targetEps {
		return false
	}
	l.lastProgress = p

	g := l.geom
	wave := l.cfg.Wave
	amp := wave.Amplitude * f.Opacity[phase.Mesh] * (1 - smith.Clamp01(f.Blend*6))

	for li := range l.Lines {
		pts := l.Lines[li].Points
		for i := range pts {
			pt := &pts[i]

			cartX := g.CenterX + pt.ZRe*g.Scale
			cartY := g.CenterY - pt.ZIm*g.Scale
			if amp != 0 {
				cartY += amp * l.noise.Eval2(pt.ZRe*wave.Frequency, pt.ZIm*wave.Frequency+p*wave.Speed)
			}

			gre, gim := smith.Gamma(pt.ZRe, pt.ZIm)
			chartX := g.CenterX + gre*g.ChartRadius
			chartY := g.CenterY - gim*g.ChartRadius

			pt.TX = smith.Lerp(cartX, chartX, f.Blend)
			pt.TY = smith.Lerp(cartY, chartY, f.Blend)
		}
	}
	return true
}
