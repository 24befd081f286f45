// Package lattice owns the simulated point set: the 1-D plucked string and
// the 2-D grid of constant-resistance / constant-reactance polylines, their
// spring-damper integration, and the resolution of per-point target
// positions from the fold blend weight.
package lattice

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/rmorrow/smithfold/config"
)

// LineKind says which impedance coordinate a polyline holds constant.
type LineKind uint8

const (
	// ConstResistance lines sweep reactance at a fixed r.
	ConstResistance LineKind = iota
	// ConstReactance lines sweep resistance at a fixed x.
	ConstReactance
)

// StringPoint is one oscillator on the plucked string: displacement from
// rest and velocity along a single axis.
type StringPoint struct {
	Y  float64
	VY float64
}

// GridPoint is one simulated grid vertex. ZRe/ZIm are the immutable identity
// coordinates in the impedance plane; the rest is mutable simulation state.
type GridPoint struct {
	ZRe, ZIm float64
	X, Y     float64
	VX, VY   float64
	TX, TY   float64
}

// Line is an ordered polyline of grid points sharing one constant coordinate.
// Membership and order never change after construction.
type Line struct {
	Kind   LineKind
	Value  float64
	Points []GridPoint
}

// Geometry is the screen mapping for target resolution.
type Geometry struct {
	CenterX, CenterY float64
	Scale            float64 // Pixels per unit impedance, Cartesian view
	ChartRadius      float64 // Pixels per unit reflection coefficient
}

// Lattice is the full simulated point set plus the state the target
// resolver memoizes against.
type Lattice struct {
	String []StringPoint
	Lines  []Line

	cfg   *config.Config
	geom  Geometry
	noise opensimplex.Noise

	placed       bool    // Points have been snapped to their initial layout
	lastProgress float64 // Progress of the last target resolve (NaN = stale)

	scratch []float64 // Reused per-tick displacement buffer for the string
}

// New builds the lattice from configuration. Points carry their impedance
// identity immediately; screen positions are assigned on the first
// SetGeometry call, which snaps every point to its untransformed Cartesian
// position at rest.
func New(cfg *config.Config) *Lattice {
	l := &Lattice{
		String:       make([]StringPoint, cfg.String.Points),
		cfg:          cfg,
		noise:        opensimplex.New(cfg.Wave.Seed),
		lastProgress: math.NaN(),
		scratch:      make([]float64, cfg.String.Points),
	}
	l.Lines = buildLines(cfg.Grid)
	return l
}

// buildLines generates one polyline per configured constant-R and constant-X
// value. The sweeps are reparametrized so the polylines run effectively to
// infinity in the untransformed view: the reactance sweep through tan covers
// (-tan(limit), tan(limit)) with resolution concentrated at small |x|, and
// the resistance sweep through a power law packs samples near r=0 where the
// transform bends hardest.
func buildLines(cfg config.GridConfig) []Line {
	n := cfg.SamplesPerLine
	lines := make([]Line, 0, len(cfg.ResistanceValues)+len(cfg.ReactanceValues))

	for _, r := range cfg.ResistanceValues {
		line := Line{Kind: ConstResistance, Value: r, Points: make([]GridPoint, n)}
		for k := 0; k < n; k++ {
			u := -1 + 2*float64(k)/float64(n-1)
			line.Points[k] = GridPoint{ZRe: r, ZIm: math.Tan(u * cfg.ReactanceLimit)}
		}
		lines = append(lines, line)
	}

	for _, x := range cfg.ReactanceValues {
		line := Line{Kind: ConstReactance, Value: x, Points: make([]GridPoint, n)}
		for k := 0; k < n; k++ {
			u := float64(k) / float64(n-1)
			line.Points[k] = GridPoint{ZRe: math.Pow(u, cfg.ResistancePower) * cfg.ResistanceSpan, ZIm: x}
		}
		lines = append(lines, line)
	}

	return lines
}

// SetGeometry updates the screen mapping for a surface of the given size.
// The first call also places every grid point at its Cartesian rest
// position; later calls only retarget, never touching simulated positions
// or velocities, so a resize cannot reset motion. Returns true if the
// geometry actually changed.
func (l *Lattice) SetGeometry(width, height float64) bool {
	half := math.Min(width, height) / 2
	g := Geometry{
		CenterX:     width / 2,
		CenterY:     height / 2,
		Scale:       l.cfg.Grid.Scale,
		ChartRadius: half * l.cfg.Grid.ChartRadiusFrac,
	}
	if l.placed && g == l.geom {
		return false
	}
	l.geom = g
	l.lastProgress = math.NaN()

	if !l.placed {
		for li := range l.Lines {
			pts := l.Lines[li].Points
			for i := range pts {
				pts[i].X = g.CenterX + pts[i].ZRe*g.Scale
				pts[i].Y = g.CenterY - pts[i].ZIm*g.Scale
				pts[i].TX = pts[i].X
				pts[i].TY = pts[i].Y
			}
		}
		l.placed = true
	}
	return true
}

// Geometry returns the current screen mapping.
func (l *Lattice) Geometry() Geometry {
	return l.geom
}

// Placed reports whether the lattice has received a geometry yet.
func (l *Lattice) Placed() bool {
	return l.placed
}
