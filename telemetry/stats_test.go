package telemetry

import (
	"math"
	"testing"
)

func TestMotionCollectorFlush(t *testing.T) {
	m := NewMotionCollector()
	m.Record(1.0, 0.5, false)
	m.Record(3.0, 1.5, true)

	s := m.Flush()
	if s.Ticks != 2 {
		t.Errorf("Ticks = %d, want 2", s.Ticks)
	}
	if math.Abs(s.MeanEnergy-2.0) > 1e-9 {
		t.Errorf("MeanEnergy = %f, want 2.0", s.MeanEnergy)
	}
	if s.MaxEnergy != 3.0 {
		t.Errorf("MaxEnergy = %f, want 3.0", s.MaxEnergy)
	}
	if s.SettleMax != 1.5 {
		t.Errorf("SettleMax = %f, want 1.5", s.SettleMax)
	}
	if math.Abs(s.IdleFraction-0.5) > 1e-9 {
		t.Errorf("IdleFraction = %f, want 0.5", s.IdleFraction)
	}
}

func TestMotionCollectorResetsAfterFlush(t *testing.T) {
	m := NewMotionCollector()
	m.Record(1.0, 0.5, false)
	m.Flush()

	s := m.Flush()
	if s.Ticks != 0 {
		t.Errorf("Ticks after reset = %d, want 0", s.Ticks)
	}
	if s.MeanEnergy != 0 || s.SettleMax != 0 {
		t.Errorf("stats after reset = %+v, want zero", s)
	}
}

func TestMotionStatsQuantiles(t *testing.T) {
	m := NewMotionCollector()
	for i := 1; i <= 100; i++ {
		m.Record(0, float64(i), false)
	}

	s := m.Flush()
	if s.SettleP50 < 45 || s.SettleP50 > 55 {
		t.Errorf("SettleP50 = %f, want near 50", s.SettleP50)
	}
	if s.SettleP90 < 85 || s.SettleP90 > 95 {
		t.Errorf("SettleP90 = %f, want near 90", s.SettleP90)
	}
	if s.SettleMax != 100 {
		t.Errorf("SettleMax = %f, want 100", s.SettleMax)
	}
}
