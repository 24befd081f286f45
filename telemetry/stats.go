package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MotionCollector accumulates per-tick motion samples (string kinetic
// energy and grid settle error) over a stats window.
type MotionCollector struct {
	energy []float64
	settle []float64
	idle   int
	ticks  int
}

// NewMotionCollector creates a motion collector.
func NewMotionCollector() *MotionCollector {
	return &MotionCollector{}
}

// Record adds one tick's motion sample.
func (m *MotionCollector) Record(stringEnergy, settleError float64, idle bool) {
	m.energy = append(m.energy, stringEnergy)
	m.settle = append(m.settle, settleError)
	m.ticks++
	if idle {
		m.idle++
	}
}

// MotionStats holds aggregated motion statistics for one window.
type MotionStats struct {
	Ticks        int
	MeanEnergy   float64
	MaxEnergy    float64
	SettleP50    float64
	SettleP90    float64
	SettleMax    float64
	IdleFraction float64
}

// Flush computes the window's statistics and resets the collector.
func (m *MotionCollector) Flush() MotionStats {
	if m.ticks == 0 {
		return MotionStats{}
	}

	s := MotionStats{Ticks: m.ticks, MeanEnergy: stat.Mean(m.energy, nil)}
	for _, e := range m.energy {
		if e > s.MaxEnergy {
			s.MaxEnergy = e
		}
	}

	sort.Float64s(m.settle)
	s.SettleP50 = stat.Quantile(0.5, stat.Empirical, m.settle, nil)
	s.SettleP90 = stat.Quantile(0.9, stat.Empirical, m.settle, nil)
	s.SettleMax = m.settle[len(m.settle)-1]
	s.IdleFraction = float64(m.idle) / float64(m.ticks)

	m.energy = m.energy[:0]
	m.settle = m.settle[:0]
	m.idle = 0
	m.ticks = 0
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s MotionStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("ticks", s.Ticks),
		slog.Float64("mean_energy", s.MeanEnergy),
		slog.Float64("max_energy", s.MaxEnergy),
		slog.Float64("settle_p50", s.SettleP50),
		slog.Float64("settle_p90", s.SettleP90),
		slog.Float64("settle_max", s.SettleMax),
		slog.Float64("idle_fraction", s.IdleFraction),
	)
}

// MotionStatsCSV is a flat struct for CSV export of motion stats.
type MotionStatsCSV struct {
	WindowEnd    int64   `csv:"window_end"`
	Progress     float64 `csv:"progress"`
	MeanEnergy   float64 `csv:"mean_energy"`
	MaxEnergy    float64 `csv:"max_energy"`
	SettleP50    float64 `csv:"settle_p50"`
	SettleP90    float64 `csv:"settle_p90"`
	SettleMax    float64 `csv:"settle_max"`
	IdleFraction float64 `csv:"idle_fraction"`
}

// ToCSV converts MotionStats to a flat CSV-friendly struct.
func (s MotionStats) ToCSV(windowEnd int64, progress float64) MotionStatsCSV {
	return MotionStatsCSV{
		WindowEnd:    windowEnd,
		Progress:     progress,
		MeanEnergy:   s.MeanEnergy,
		MaxEnergy:    s.MaxEnergy,
		SettleP50:    s.SettleP50,
		SettleP90:    s.SettleP90,
		SettleMax:    s.SettleMax,
		IdleFraction: s.IdleFraction,
	}
}
