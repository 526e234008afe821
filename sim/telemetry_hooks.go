package sim

import "log/slog"

// flushTelemetry closes the stats window when it is due.
func (s *Simulation) flushTelemetry() {
	if !s.collector.ShouldFlush() {
		return
	}

	stats := s.collector.Flush(s.tick, s.particles, s.last.Damping)
	perfStats := s.perf.Stats()

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if s.output != nil {
		if err := s.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := s.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
