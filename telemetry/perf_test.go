package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorWindow(t *testing.T) {
	p := NewPerfCollector(4)

	for i := 0; i < 10; i++ {
		p.StartTick()
		p.StartPhase(PhaseTargets)
		p.StartPhase(PhaseString)
		p.EndTick()
	}

	if p.sampleCount != 4 {
		t.Errorf("sampleCount = %d, want 4 (window size)", p.sampleCount)
	}

	stats := p.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Errorf("AvgTickDuration = %v, want > 0", stats.AvgTickDuration)
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v > max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollectorEmptyStats(t *testing.T) {
	p := NewPerfCollector(60)
	stats := p.Stats()

	if stats.AvgTickDuration != 0 {
		t.Errorf("AvgTickDuration = %v, want 0 with no samples", stats.AvgTickDuration)
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("phase maps should be non-nil even with no samples")
	}
}

func TestPerfCollectorPhaseBreakdown(t *testing.T) {
	p := NewPerfCollector(8)

	p.StartTick()
	p.StartPhase(PhaseTargets)
	time.Sleep(time.Millisecond)
	p.StartPhase(PhaseGrid)
	time.Sleep(time.Millisecond)
	p.EndTick()

	stats := p.Stats()
	if stats.PhaseAvg[PhaseTargets] <= 0 {
		t.Errorf("PhaseAvg[targets] = %v, want > 0", stats.PhaseAvg[PhaseTargets])
	}
	if stats.PhaseAvg[PhaseGrid] <= 0 {
		t.Errorf("PhaseAvg[grid] = %v, want > 0", stats.PhaseAvg[PhaseGrid])
	}

	var totalPct float64
	for _, pct := range stats.PhasePct {
		totalPct += pct
	}
	if totalPct > 101 {
		t.Errorf("phase percentages sum to %.1f, want <= 100", totalPct)
	}
}

func TestPerfCollectorInvalidWindow(t *testing.T) {
	p := NewPerfCollector(0)
	if p.windowSize != 60 {
		t.Errorf("windowSize = %d, want default 60", p.windowSize)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	p := NewPerfCollector(4)
	p.StartTick()
	p.StartPhase(PhaseString)
	p.EndTick()

	rec := p.Stats().ToCSV(1234)
	if rec.WindowEnd != 1234 {
		t.Errorf("WindowEnd = %d, want 1234", rec.WindowEnd)
	}
}
