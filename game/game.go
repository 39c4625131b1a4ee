package game

import (
	"fmt"
	"math/rand"

	"github.com/doublejbs/interactive-archive/camera"
	"github.com/doublejbs/interactive-archive/config"
	"github.com/doublejbs/interactive-archive/systems"
	"github.com/doublejbs/interactive-archive/telemetry"
)

// Options configures a game instance at startup.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game owns both simulation engines and drives them in lockstep.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	field   *systems.ParticleField
	network *systems.GrowthNetwork

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	logStats  bool

	cam *camera.Camera

	// Pointer-driven deflector state. Inactive until the mouse enters the
	// window; headless runs keep the deflector parked.
	pointer       systems.Vec3
	pointerActive bool

	elapsed        float32
	tick           int32
	paused         bool
	headless       bool
	stepsPerUpdate int
}

// NewGameWithOptions creates a game instance with the given options.
// Configuration must be initialized via config.Init before calling.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}

	g := &Game{
		cfg:            cfg,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		stepsPerUpdate: opts.StepsPerUpdate,
		pointer:        systems.InertObstacle(),
	}

	field, err := systems.NewParticleField(fieldConfig(cfg), g.rng)
	if err != nil {
		return nil, fmt.Errorf("creating particle field: %w", err)
	}
	g.field = field

	network, err := systems.NewGrowthNetwork(growthConfig(cfg), g.rng)
	if err != nil {
		return nil, fmt.Errorf("creating growth network: %w", err)
	}
	g.network = network

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, cfg.Derived.DT32)
	g.perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	orbitDist := float32(cfg.Particles.Width) * 1.2
	g.cam = camera.New(0, 0, 0, orbitDist)

	return g, nil
}

// fieldConfig maps the loaded configuration onto particle field parameters.
// The volume is centered on the origin; the discharge spans its full height.
func fieldConfig(cfg *config.Config) systems.FieldConfig {
	p := cfg.Particles
	d := cfg.Discharge
	halfH := float32(p.Height) / 2

	return systems.FieldConfig{
		Count:          p.Count,
		Width:          float32(p.Width),
		Height:         float32(p.Height),
		Depth:          float32(p.Depth),
		Gravity:        float32(p.Gravity),
		Drag:           float32(p.Drag),
		ObstacleRadius: float32(p.ObstacleRadius),
		BounceImpulse:  float32(p.BounceImpulse),
		SpawnBand:      float32(p.SpawnBand),
		FallSpeedMin:   float32(p.FallSpeedMin),
		FallSpeedMax:   float32(p.FallSpeedMax),
		Storm: systems.DischargeConfig{
			IntervalMin: float32(d.IntervalMin),
			IntervalMax: float32(d.IntervalMax),
			Segments:    d.Segments,
			TopY:        halfH,
			BottomY:     -halfH,
			SpanX:       float32(d.SpanX),
			LateralStep: float32(d.LateralStep),
			MaxDrift:    float32(d.MaxDrift),
			Pull:        float32(d.Pull),
			FadeRate:    float32(d.FadeRate),
			Depth:       float32(d.Depth),
		},
	}
}

// growthConfig maps the loaded configuration onto growth network parameters.
func growthConfig(cfg *config.Config) systems.GrowthConfig {
	gr := cfg.Growth

	seeds := make([]systems.Vec3, len(gr.Seeds))
	for i, s := range gr.Seeds {
		seeds[i] = systems.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])}
	}

	return systems.GrowthConfig{
		Seeds:           seeds,
		SeedBranchesMin: gr.SeedBranchesMin,
		SeedBranchesMax: gr.SeedBranchesMax,
		GrowthSpeed:     float32(gr.GrowthSpeed),
		BaseLength:      float32(gr.BaseLength),
		LengthShrink:    float32(gr.LengthShrink),
		MinLength:       float32(gr.MinLength),
		BranchAngle:     cfg.Derived.BranchAngleRad,
		BranchProb:      gr.BranchProb,
		ChildrenMin:     gr.ChildrenMin,
		ChildrenMax:     gr.ChildrenMax,
		MaxGeneration:   int32(gr.MaxGeneration),
		MaxBranches:     gr.MaxBranches,
		TubeRadius:      float32(gr.TubeRadius),
		TubeSides:       gr.TubeSides,
		HueBase:         float32(gr.HueBase),
		HueShift:        float32(gr.HueShift),
		PulseBase:       float32(gr.PulseBase),
		PulseAmp:        float32(gr.PulseAmp),
		PulseFreq:       float32(gr.PulseFreq),
	}
}

// UpdateHeadless runs fixed-step simulation ticks without any input handling.
func (g *Game) UpdateHeadless() {
	dt := g.cfg.Derived.DT32
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(dt)
	}
}

// step advances both engines by dt and flushes telemetry at window boundaries.
func (g *Game) step(dt float32) {
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseParticles)
	obstacle := systems.InertObstacle()
	if g.pointerActive {
		obstacle = g.pointer
	}
	g.field.Advance(dt, obstacle)

	g.perf.StartPhase(telemetry.PhaseGrowth)
	g.network.Advance(dt)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.elapsed += dt
	g.tick++
	if g.collector.ShouldFlush(g.tick) {
		g.flushTelemetry()
	}

	g.perf.EndTick()
}

// flushTelemetry samples both engines and emits a stats window.
func (g *Game) flushTelemetry() {
	particles := g.field.Particles()
	speeds := make([]float64, len(particles))
	for i := range particles {
		speeds[i] = float64(particles[i].Vel.Length())
	}

	segments := g.network.Segments()
	lengths := make([]float64, len(segments))
	for i := range segments {
		lengths[i] = float64(segments[i].Length)
	}

	storm := g.field.Storm()
	totals := telemetry.EngineTotals{
		Recycled:      g.field.RecycledTotal(),
		Reflections:   g.field.ReflectionsTotal(),
		Fires:         storm.FiresTotal(),
		SpawnAttempts: g.network.SpawnAttemptsTotal(),
		SpawnsDropped: g.network.SpawnsDroppedTotal(),
	}
	sample := telemetry.WindowSample{
		ParticleCount:  g.field.Count(),
		Speeds:         speeds,
		Intensity:      float64(storm.Intensity()),
		SegmentCount:   g.network.Count(),
		GrowingCount:   g.network.GrowingCount(),
		SegmentLengths: lengths,
		MaxGeneration:  g.network.MaxGenerationSeen(),
		Settled:        g.network.Settled(),
	}

	stats := g.collector.Flush(g.tick, totals, sample)

	if g.logStats {
		stats.LogStats()
		g.perf.Stats().LogStats()
	}
	if g.output != nil {
		g.output.WriteTelemetry(stats)
		g.output.WritePerf(g.perf.Stats(), g.tick)
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Elapsed returns total simulated time in seconds.
func (g *Game) Elapsed() float32 {
	return g.elapsed
}

// Field returns the particle engine.
func (g *Game) Field() *systems.ParticleField {
	return g.field
}

// Network returns the growth engine.
func (g *Game) Network() *systems.GrowthNetwork {
	return g.network
}

// Unload releases output resources.
func (g *Game) Unload() {
	if g.output != nil {
		g.output.Close()
	}
}
