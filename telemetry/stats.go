package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated simulation statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Particle field
	ParticleCount int     `csv:"particles"`
	Recycled      int64   `csv:"recycled"`
	Reflections   int64   `csv:"reflections"`
	SpeedMean     float64 `csv:"speed_mean"`
	SpeedStd      float64 `csv:"speed_std"`
	SpeedP50      float64 `csv:"speed_p50"`
	SpeedP90      float64 `csv:"speed_p90"`

	// Discharge
	Fires     int64   `csv:"fires"`
	Intensity float64 `csv:"intensity"`

	// Growth network
	SegmentCount  int     `csv:"segments"`
	GrowingCount  int     `csv:"growing"`
	Spawns        int64   `csv:"spawn_attempts"`
	SpawnsDropped int64   `csv:"spawns_dropped"`
	MaxGeneration int32   `csv:"max_generation"`
	LengthMean    float64 `csv:"length_mean"`
	LengthP90     float64 `csv:"length_p90"`
	Settled       bool    `csv:"settled"`
}

// Summarize computes mean, stddev, and the 50th/90th percentiles of values.
// Returns zeros for an empty slice.
func Summarize(values []float64) (mean, std, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std = stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		// StdDev is NaN for a single sample
		std = 0
	}
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("particles", s.ParticleCount),
		slog.Int64("recycled", s.Recycled),
		slog.Int64("reflections", s.Reflections),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Int64("fires", s.Fires),
		slog.Float64("intensity", s.Intensity),
		slog.Int("segments", s.SegmentCount),
		slog.Int("growing", s.GrowingCount),
		slog.Int64("spawn_attempts", s.Spawns),
		slog.Int64("spawns_dropped", s.SpawnsDropped),
		slog.Int("max_generation", int(s.MaxGeneration)),
		slog.Float64("length_mean", s.LengthMean),
		slog.Float64("length_p90", s.LengthP90),
		slog.Bool("settled", s.Settled),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"particles", s.ParticleCount,
		"recycled", s.Recycled,
		"reflections", s.Reflections,
		"speed_mean", s.SpeedMean,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"fires", s.Fires,
		"intensity", s.Intensity,
		"segments", s.SegmentCount,
		"growing", s.GrowingCount,
		"spawn_attempts", s.Spawns,
		"spawns_dropped", s.SpawnsDropped,
		"max_generation", s.MaxGeneration,
		"length_mean", s.LengthMean,
		"length_p90", s.LengthP90,
		"settled", s.Settled,
	)
}
