package app

import "log/slog"

// flushTelemetry emits the current stats window to the log and CSV sinks.
func (a *App) flushTelemetry() {
	motionStats := a.motion.Flush()
	if motionStats.Ticks == 0 {
		return
	}
	perfStats := a.perf.Stats()

	if a.logStats {
		slog.Info("motion", "stats", motionStats, "progress", a.progress)
		perfStats.LogStats()
	}

	if a.outputManager != nil {
		tick := a.eng.Ticks()
		if err := a.outputManager.WriteMotion(motionStats, tick, a.progress); err != nil {
			slog.Error("failed to write motion stats", "error", err)
		}
		if err := a.outputManager.WritePerf(perfStats, tick); err != nil {
			slog.Error("failed to write perf stats", "error", err)
		}
	}
}
