package engine

import (
	"math"
	"testing"

	"github.com/rmorrow/smithfold/config"
	"github.com/rmorrow/smithfold/phase"
	"github.com/rmorrow/smithfold/smith"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return New(cfg, 42)
}

func TestTickBeforeResizeIsNoOp(t *testing.T) {
	e := testEngine(t)

	e.Tick(1.0 / 60)
	if e.RenderNeeded() {
		t.Error("render requested before the surface has a size")
	}
	if e.Ticks() != 0 {
		t.Error("tick advanced without a surface")
	}

	e.Resize(1000, 600)
	e.Tick(1.0 / 60)
	if e.Ticks() != 1 {
		t.Error("tick did not advance after resize")
	}
}

func TestResizeIdempotence(t *testing.T) {
	e := testEngine(t)
	e.Resize(800, 600)
	g1 := e.Lattice().Geometry()

	e.Resize(800, 600)
	g2 := e.Lattice().Geometry()
	if g1 != g2 {
		t.Errorf("repeat resize changed geometry: %+v vs %+v", g1, g2)
	}
}

func TestSetProgressClamps(t *testing.T) {
	e := testEngine(t)
	e.SetProgress(-3)
	if e.Progress() != 0 {
		t.Errorf("progress %v after -3, want 0", e.Progress())
	}
	e.SetProgress(7)
	if e.Progress() != 1 {
		t.Errorf("progress %v after 7, want 1", e.Progress())
	}
}

func TestPluckGatedByProgress(t *testing.T) {
	e := testEngine(t)
	e.Resize(1000, 600)

	e.SetProgress(0.5)
	e.Pluck(0.5, +1)
	if e.Lattice().StringEnergy() != 0 {
		t.Error("pluck landed outside the string phase")
	}

	e.SetProgress(0.05)
	e.Pluck(0.5, +1)
	if e.Lattice().StringEnergy() == 0 {
		t.Error("pluck had no effect inside the string phase")
	}
}

func TestIdleRenderCadence(t *testing.T) {
	e := testEngine(t)
	e.Resize(1000, 600)

	// Fresh engine at rest settles immediately; renders thin out to 1 in 3.
	renders := 0
	for i := 0; i < 9; i++ {
		e.Tick(1.0 / 60)
		if e.RenderNeeded() {
			renders++
		}
	}
	if !e.Idle() {
		t.Fatal("engine did not go idle at rest")
	}
	if renders != 3 {
		t.Errorf("%d renders over 9 idle ticks, want 3", renders)
	}

	// A pluck clears idle immediately and forces rendering every tick.
	e.Pluck(0.5, +1)
	if e.Idle() {
		t.Error("pluck did not clear the idle flag")
	}
	e.Tick(1.0 / 60)
	if !e.RenderNeeded() {
		t.Error("no render on the first tick after a pluck")
	}

	// A progress change also clears idle.
	for i := 0; i < 2000; i++ {
		e.Tick(1.0 / 60)
	}
	if !e.Idle() {
		t.Fatal("engine did not settle after the pluck decayed")
	}
	e.SetProgress(0.01)
	if e.Idle() {
		t.Error("progress change did not clear the idle flag")
	}
}

func TestEndToEndScenario(t *testing.T) {
	e := testEngine(t)
	e.Resize(1000, 600)
	g := e.Lattice().Geometry()

	e.SetProgress(0)
	for i := 0; i < 10; i++ {
		e.Tick(1.0 / 60)
	}
	for _, line := range e.Lattice().Lines {
		for _, pt := range line.Points {
			wantX := g.CenterX + pt.ZRe*g.Scale
			wantY := g.CenterY - pt.ZIm*g.Scale
			if math.Abs(pt.X-wantX) > 1e-9 || math.Abs(pt.Y-wantY) > 1e-9 {
				t.Fatalf("point (%v,%v) left its Cartesian rest at progress 0", pt.ZRe, pt.ZIm)
			}
		}
	}
	if e.Frame().Blend != 0 {
		t.Errorf("blend %v at progress 0, want 0", e.Frame().Blend)
	}

	e.SetProgress(1)
	for i := 0; i < 500; i++ {
		e.Tick(1.0 / 60)
	}
	for _, line := range e.Lattice().Lines {
		for _, pt := range line.Points {
			gre, gim := smith.Gamma(pt.ZRe, pt.ZIm)
			wantX := g.CenterX + gre*g.ChartRadius
			wantY := g.CenterY - gim*g.ChartRadius
			if math.Hypot(pt.X-wantX, pt.Y-wantY) > 0.5 {
				t.Fatalf("point (%v,%v) is %vpx from its chart position after settling",
					pt.ZRe, pt.ZIm, math.Hypot(pt.X-wantX, pt.Y-wantY))
			}
		}
	}
	if math.Abs(e.Frame().Opacity[phase.Chart]-1) > 1e-9 {
		t.Errorf("chart opacity %v at progress 1, want 1", e.Frame().Opacity[phase.Chart])
	}
}

func TestDeterminism(t *testing.T) {
	run := func() *Engine {
		e := testEngine(t)
		e.Resize(1000, 600)
		e.Pluck(0.4, -1)
		for i := 0; i < 300; i++ {
			e.SetProgress(float64(i) / 299)
			e.Tick(1.0 / 60)
		}
		return e
	}

	a, b := run(), run()
	for li := range a.Lattice().Lines {
		la, lb := a.Lattice().Lines[li], b.Lattice().Lines[li]
		for i := range la.Points {
			if la.Points[i] != lb.Points[i] {
				t.Fatalf("runs diverged at line %d point %d", li, i)
			}
		}
	}
	if a.SparkCount() != b.SparkCount() {
		t.Errorf("spark counts diverged: %d vs %d", a.SparkCount(), b.SparkCount())
	}
}

func TestRevealBurstOncePerCrossing(t *testing.T) {
	e := testEngine(t)
	e.Resize(1000, 600)

	e.SetProgress(0.9)
	e.Tick(1.0 / 60)
	count := e.SparkCount()
	if count != e.cfg.Sparks.Count {
		t.Fatalf("burst emitted %d sparks, want %d", count, e.cfg.Sparks.Count)
	}

	// Jitter inside the hysteresis band must not burst again.
	e.SetProgress(0.83)
	e.Tick(1.0 / 60)
	e.SetProgress(0.9)
	e.Tick(1.0 / 60)
	if e.SparkCount() > count {
		t.Error("reveal burst fired twice without re-arming")
	}

	// Sparks expire and idle becomes reachable again.
	for i := 0; i < 300; i++ {
		e.Tick(1.0 / 60)
	}
	if e.SparkCount() != 0 {
		t.Errorf("%d sparks alive after their lifetime", e.SparkCount())
	}
}

func TestUnloadStopsEngine(t *testing.T) {
	e := testEngine(t)
	e.Resize(1000, 600)
	e.Tick(1.0 / 60)
	ticks := e.Ticks()

	e.Unload()
	e.Tick(1.0 / 60)
	if e.Ticks() != ticks {
		t.Error("tick advanced after Unload")
	}
	if e.RenderNeeded() {
		t.Error("render requested after Unload")
	}
}
