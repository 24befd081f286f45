package phase

import (
	"math"
	"testing"

	"github.com/rmorrow/smithfold/config"
)

func testPhasesConfig() config.PhasesConfig {
	return config.PhasesConfig{
		Boundaries:  []float64{0.25, 0.49, 0.85},
		FadeWidth:   0.06,
		FoldStart:   0.35,
		FoldEnd:     0.85,
		RevealReset: 0.80,
	}
}

func TestOpacityPartition(t *testing.T) {
	c := NewController(testPhasesConfig())

	for p := 0.0; p <= 1.0; p += 0.001 {
		f := c.compute(p)
		sum := 0.0
		nonzero := 0
		for _, o := range f.Opacity {
			if o < 0 || o > 1 {
				t.Fatalf("opacity out of range at p=%v: %v", p, f.Opacity)
			}
			sum += o
			if o > 0 {
				nonzero++
			}
		}
		if sum > 1+1e-6 {
			t.Fatalf("opacity sum %v > 1 at p=%v", sum, p)
		}
		if nonzero > 2 {
			t.Fatalf("%d phases visible at once at p=%v", nonzero, p)
		}
	}
}

func TestOpacityStableWindows(t *testing.T) {
	c := NewController(testPhasesConfig())

	tests := []struct {
		name string
		p    float64
		want ID
	}{
		{"start", 0.0, String},
		{"mesh midpoint", 0.37, Mesh},
		{"fold midpoint", 0.67, Fold},
		{"end", 1.0, Chart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := c.compute(tt.p)
			for i, o := range f.Opacity {
				want := 0.0
				if ID(i) == tt.want {
					want = 1.0
				}
				if math.Abs(o-want) > 1e-9 {
					t.Errorf("p=%v opacity[%v] = %v, want %v", tt.p, ID(i), o, want)
				}
			}
			if f.Phase != tt.want {
				t.Errorf("p=%v phase = %v, want %v", tt.p, f.Phase, tt.want)
			}
		})
	}
}

func TestCrossfadeSumsToOne(t *testing.T) {
	c := NewController(testPhasesConfig())

	// Inside each crossfade band the two adjacent opacities partition 1.
	for _, b := range []float64{0.25, 0.49, 0.85} {
		for _, dp := range []float64{-0.02, -0.01, 0, 0.01, 0.02} {
			f := c.compute(b + dp)
			sum := 0.0
			for _, o := range f.Opacity {
				sum += o
			}
			if math.Abs(sum-1) > 1e-9 {
				t.Errorf("crossfade at %v: opacity sum %v, want 1", b+dp, sum)
			}
		}
	}
}

func TestBlendWindow(t *testing.T) {
	c := NewController(testPhasesConfig())

	if f := c.compute(0.0); f.Blend != 0 {
		t.Errorf("blend at 0 = %v, want 0", f.Blend)
	}
	if f := c.compute(0.35); f.Blend != 0 {
		t.Errorf("blend at fold start = %v, want 0", f.Blend)
	}
	if f := c.compute(0.85); math.Abs(f.Blend-1) > 1e-12 {
		t.Errorf("blend at fold end = %v, want 1", f.Blend)
	}
	if f := c.compute(1.0); f.Blend != 1 {
		t.Errorf("blend at 1 = %v, want 1", f.Blend)
	}

	// Monotone across the window.
	prev := -1.0
	for p := 0.0; p <= 1.0; p += 0.005 {
		b := c.compute(p).Blend
		if b < prev {
			t.Fatalf("blend not monotone at p=%v", p)
		}
		prev = b
	}
}

func TestEvalMemoization(t *testing.T) {
	c := NewController(testPhasesConfig())

	f1 := c.Eval(0.5)
	// A sub-epsilon nudge must return the cached frame unchanged.
	f2 := c.Eval(0.5 + 1e-6)
	if f1 != f2 {
		t.Error("sub-epsilon progress change recomputed the frame")
	}

	f3 := c.Eval(0.6)
	if f3 == f1 {
		t.Error("frame did not change across a real progress change")
	}
}

func TestRevealLatchHysteresis(t *testing.T) {
	c := NewController(testPhasesConfig())

	if c.Reveal(0.5) {
		t.Error("reveal fired below threshold")
	}
	if !c.Reveal(0.86) {
		t.Error("reveal did not fire crossing the threshold")
	}
	if c.Reveal(0.9) {
		t.Error("reveal fired twice without re-arming")
	}

	// Dropping into the hysteresis band must not re-arm.
	if c.Reveal(0.83) {
		t.Error("reveal fired inside the hysteresis band")
	}
	if c.Reveal(0.87) {
		t.Error("reveal re-fired without dropping below the reset threshold")
	}

	// Dropping below the reset threshold re-arms the latch.
	c.Reveal(0.5)
	if !c.Reveal(0.9) {
		t.Error("reveal did not fire after re-arming")
	}
}
