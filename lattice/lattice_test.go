package lattice

import (
	"math"
	"testing"

	"github.com/rmorrow/smithfold/config"
	"github.com/rmorrow/smithfold/phase"
	"github.com/rmorrow/smithfold/smith"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func testLattice(t *testing.T) *Lattice {
	t.Helper()
	l := New(testConfig(t))
	l.SetGeometry(1000, 600)
	return l
}

func frameAt(t *testing.T, cfg *config.Config, p float64) phase.Frame {
	t.Helper()
	return phase.NewController(cfg.Phases).Eval(p)
}

func TestBuildLines(t *testing.T) {
	cfg := testConfig(t)
	l := New(cfg)

	wantLines := len(cfg.Grid.ResistanceValues) + len(cfg.Grid.ReactanceValues)
	if len(l.Lines) != wantLines {
		t.Fatalf("built %d lines, want %d", len(l.Lines), wantLines)
	}

	for _, line := range l.Lines {
		if len(line.Points) != cfg.Grid.SamplesPerLine {
			t.Fatalf("line has %d points, want %d", len(line.Points), cfg.Grid.SamplesPerLine)
		}
		switch line.Kind {
		case ConstResistance:
			// Fixed r, reactance sweep symmetric and strictly increasing.
			first, last := line.Points[0], line.Points[len(line.Points)-1]
			if math.Abs(first.ZIm+last.ZIm) > 1e-9 {
				t.Errorf("r=%v sweep not symmetric: %v vs %v", line.Value, first.ZIm, last.ZIm)
			}
			for i, pt := range line.Points {
				if pt.ZRe != line.Value {
					t.Fatalf("r=%v line has point with ZRe=%v", line.Value, pt.ZRe)
				}
				if i > 0 && pt.ZIm <= line.Points[i-1].ZIm {
					t.Fatalf("r=%v sweep not increasing at %d", line.Value, i)
				}
			}
			if last.ZIm < 20 {
				t.Errorf("r=%v sweep tops out at %v, should run far off-chart", line.Value, last.ZIm)
			}
		case ConstReactance:
			if line.Points[0].ZRe != 0 {
				t.Errorf("x=%v sweep does not start at r=0", line.Value)
			}
			for i, pt := range line.Points {
				if pt.ZIm != line.Value {
					t.Fatalf("x=%v line has point with ZIm=%v", line.Value, pt.ZIm)
				}
				if i > 0 && pt.ZRe <= line.Points[i-1].ZRe {
					t.Fatalf("x=%v sweep not increasing at %d", line.Value, i)
				}
			}
		}
	}
}

func TestFirstGeometryPlacesAtRest(t *testing.T) {
	l := testLattice(t)
	g := l.Geometry()

	for _, line := range l.Lines {
		for _, pt := range line.Points {
			wantX := g.CenterX + pt.ZRe*g.Scale
			wantY := g.CenterY - pt.ZIm*g.Scale
			if pt.X != wantX || pt.Y != wantY {
				t.Fatalf("point (%v,%v) placed at (%v,%v), want (%v,%v)",
					pt.ZRe, pt.ZIm, pt.X, pt.Y, wantX, wantY)
			}
			if pt.VX != 0 || pt.VY != 0 {
				t.Fatal("fresh point has nonzero velocity")
			}
		}
	}
}

func TestTargetBlendEndpoints(t *testing.T) {
	cfg := testConfig(t)
	l := New(cfg)
	l.SetGeometry(1000, 600)
	g := l.Geometry()

	// Progress 0: pure Cartesian.
	l.UpdateTargets(0, frameAt(t, cfg, 0))
	for _, line := range l.Lines {
		for _, pt := range line.Points {
			if pt.TX != g.CenterX+pt.ZRe*g.Scale || pt.TY != g.CenterY-pt.ZIm*g.Scale {
				t.Fatal("blend 0 target is not the Cartesian position")
			}
		}
	}

	// Progress 1: pure Smith-chart image.
	l.UpdateTargets(1, frameAt(t, cfg, 1))
	for _, line := range l.Lines {
		for _, pt := range line.Points {
			gre, gim := smith.Gamma(pt.ZRe, pt.ZIm)
			wantX := g.CenterX + gre*g.ChartRadius
			wantY := g.CenterY - gim*g.ChartRadius
			if math.Abs(pt.TX-wantX) > 1e-9 || math.Abs(pt.TY-wantY) > 1e-9 {
				t.Fatalf("blend 1 target (%v,%v), want (%v,%v)", pt.TX, pt.TY, wantX, wantY)
			}
		}
	}
}

func TestTargetsMemoized(t *testing.T) {
	cfg := testConfig(t)
	l := New(cfg)
	l.SetGeometry(1000, 600)
	f := frameAt(t, cfg, 0.6)

	if !l.UpdateTargets(0.6, f) {
		t.Fatal("first target resolve was skipped")
	}
	before := l.Lines[3].Points[10]

	if l.UpdateTargets(0.6, f) {
		t.Error("unchanged progress recomputed targets")
	}
	if l.UpdateTargets(0.6+1e-4, f) {
		t.Error("sub-epsilon progress change recomputed targets")
	}
	after := l.Lines[3].Points[10]
	if before != after {
		t.Error("skipped resolve mutated a point")
	}

	if !l.UpdateTargets(0.7, frameAt(t, cfg, 0.7)) {
		t.Error("real progress change did not recompute targets")
	}
}

func TestResizeForcesRetargetWithoutResettingState(t *testing.T) {
	cfg := testConfig(t)
	l := New(cfg)
	l.SetGeometry(1000, 600)
	l.UpdateTargets(0.5, frameAt(t, cfg, 0.5))
	for i := 0; i < 30; i++ {
		l.StepGrid(1.0 / 60)
	}
	pos := l.Lines[2].Points[7]

	// Same size: no geometry change.
	if l.SetGeometry(1000, 600) {
		t.Error("identical resize reported a geometry change")
	}

	// New size: geometry changes and the memoized progress is invalidated,
	// but simulated positions and velocities stay put.
	if !l.SetGeometry(800, 500) {
		t.Error("real resize reported no geometry change")
	}
	after := l.Lines[2].Points[7]
	if after.X != pos.X || after.Y != pos.Y || after.VX != pos.VX || after.VY != pos.VY {
		t.Error("resize touched simulated state")
	}
	if !l.UpdateTargets(0.5, frameAt(t, cfg, 0.5)) {
		t.Error("target resolve still memoized after resize")
	}
}

func TestGridConvergence(t *testing.T) {
	cfg := testConfig(t)
	l := New(cfg)
	l.SetGeometry(1000, 600)

	// Jump straight to the folded layout and let the springs settle.
	l.UpdateTargets(1, frameAt(t, cfg, 1))
	for i := 0; i < 500; i++ {
		l.StepGrid(1.0 / 60)
	}
	if err := l.SettleError(); err > 0.01 {
		t.Fatalf("settle error %v after 500 ticks, want <= 0.01", err)
	}

	// And stays settled: no sustained oscillation.
	for i := 0; i < 100; i++ {
		l.StepGrid(1.0 / 60)
		if err := l.SettleError(); err > 0.01 {
			t.Fatalf("grid left the settle bound at +%d ticks: %v", i, err)
		}
	}
}

func TestStringEnergyDecay(t *testing.T) {
	l := testLattice(t)
	l.Pluck(0.5, +1)

	const ticks = 400
	energy := make([]float64, ticks)
	for i := 0; i < ticks; i++ {
		l.StepString(1.0 / 60)
		energy[i] = l.StringEnergy()
	}

	if energy[0] == 0 {
		t.Fatal("pluck injected no energy")
	}
	// Past the initial transient, any 50-tick window loses energy until the
	// string is effectively at rest.
	for i := 10; i+50 < ticks; i++ {
		if energy[i] < 1e-12 {
			break
		}
		if energy[i+50] >= energy[i] {
			t.Fatalf("energy did not decay over [%d, %d]: %v -> %v",
				i, i+50, energy[i], energy[i+50])
		}
	}
	if energy[ticks-1] >= energy[10] {
		t.Error("string never settled")
	}
}

func TestPluckFalloff(t *testing.T) {
	l := testLattice(t)
	l.Pluck(0.5, -1)

	n := len(l.String)
	center := int(0.5 * float64(n-1))
	w := l.cfg.String.PluckWindow

	if l.String[center].VY >= 0 {
		t.Error("negative pluck produced non-negative center velocity")
	}
	if math.Abs(l.String[center].VY) <= math.Abs(l.String[center+w].VY) {
		t.Error("pluck impulse does not fall off from the center")
	}
	for i := 0; i < n; i++ {
		if i < center-w || i > center+w {
			if l.String[i].VY != 0 {
				t.Fatalf("pluck leaked outside its window at %d", i)
			}
		}
	}
}

func TestStepDeterminism(t *testing.T) {
	cfg := testConfig(t)
	run := func() *Lattice {
		l := New(cfg)
		l.SetGeometry(1000, 600)
		l.Pluck(0.3, +1)
		for i := 0; i < 200; i++ {
			p := float64(i) / 199
			l.UpdateTargets(p, frameAt(t, cfg, p))
			l.StepString(1.0 / 60)
			l.StepGrid(1.0 / 60)
		}
		return l
	}

	a, b := run(), run()
	for li := range a.Lines {
		for i := range a.Lines[li].Points {
			if a.Lines[li].Points[i] != b.Lines[li].Points[i] {
				t.Fatalf("grid state diverged at line %d point %d", li, i)
			}
		}
	}
	for i := range a.String {
		if a.String[i] != b.String[i] {
			t.Fatalf("string state diverged at %d", i)
		}
	}
}
