package telemetry

// EngineTotals carries the engines' cumulative event counters. The collector
// diffs successive snapshots to produce per-window counts, so the engines only
// ever expose monotonically increasing totals.
type EngineTotals struct {
	Recycled      int64
	Reflections   int64
	Fires         int64
	SpawnAttempts int64
	SpawnsDropped int64
}

// WindowSample carries the instantaneous state sampled at a window boundary.
type WindowSample struct {
	ParticleCount  int
	Speeds         []float64 // particle speed magnitudes
	Intensity      float64   // discharge intensity right now
	SegmentCount   int
	GrowingCount   int
	SegmentLengths []float64
	MaxGeneration  int32
	Settled        bool
}

// Collector turns cumulative engine counters into windowed statistics.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32
	last            EngineTotals
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the cumulative totals and the sampled
// state, then starts the next window.
func (c *Collector) Flush(currentTick int32, totals EngineTotals, sample WindowSample) WindowStats {
	speedMean, speedStd, speedP50, speedP90 := Summarize(sample.Speeds)
	lengthMean, _, _, lengthP90 := Summarize(sample.SegmentLengths)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		ParticleCount: sample.ParticleCount,
		Recycled:      totals.Recycled - c.last.Recycled,
		Reflections:   totals.Reflections - c.last.Reflections,
		SpeedMean:     speedMean,
		SpeedStd:      speedStd,
		SpeedP50:      speedP50,
		SpeedP90:      speedP90,

		Fires:     totals.Fires - c.last.Fires,
		Intensity: sample.Intensity,

		SegmentCount:  sample.SegmentCount,
		GrowingCount:  sample.GrowingCount,
		Spawns:        totals.SpawnAttempts - c.last.SpawnAttempts,
		SpawnsDropped: totals.SpawnsDropped - c.last.SpawnsDropped,
		MaxGeneration: sample.MaxGeneration,
		LengthMean:    lengthMean,
		LengthP90:     lengthP90,
		Settled:       sample.Settled,
	}

	c.windowStartTick = currentTick
	c.last = totals

	return stats
}
