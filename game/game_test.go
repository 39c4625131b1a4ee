package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/doublejbs/interactive-archive/config"
)

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	config.MustInit("")

	opts.Headless = true
	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestHeadlessAdvancesTicks(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1})

	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}

	if g.Tick() != 10 {
		t.Errorf("tick = %d, want 10", g.Tick())
	}
	if g.Elapsed() <= 0 {
		t.Error("elapsed time should be positive")
	}
}

func TestStepsPerUpdate(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1, StepsPerUpdate: 4})

	g.UpdateHeadless()

	if g.Tick() != 4 {
		t.Errorf("tick = %d, want 4", g.Tick())
	}
}

func TestParkedDeflectorNeverReflects(t *testing.T) {
	g := newTestGame(t, Options{Seed: 2})

	for i := 0; i < 300; i++ {
		g.UpdateHeadless()
	}

	if got := g.Field().ReflectionsTotal(); got != 0 {
		t.Errorf("reflections with parked deflector = %d, want 0", got)
	}
}

func TestParticlesStayInVolume(t *testing.T) {
	g := newTestGame(t, Options{Seed: 3})

	for i := 0; i < 600; i++ {
		g.UpdateHeadless()
	}

	w, h, d := g.Field().Bounds()
	halfW, halfD := w/2, d/2
	cfg := config.Cfg()
	ceiling := h/2 + float32(cfg.Particles.SpawnBand)

	for i, p := range g.Field().Particles() {
		if p.Pos.X < -halfW || p.Pos.X > halfW || p.Pos.Z < -halfD || p.Pos.Z > halfD {
			t.Fatalf("particle %d left horizontal bounds: %+v", i, p.Pos)
		}
		if p.Pos.Y > ceiling {
			t.Fatalf("particle %d above spawn ceiling: %+v", i, p.Pos)
		}
	}
}

func TestNetworkGrowsFromSeeds(t *testing.T) {
	g := newTestGame(t, Options{Seed: 4})

	initial := g.Network().Count()
	if initial == 0 {
		t.Fatal("network should start with seed branches")
	}

	for i := 0; i < 1200; i++ {
		g.UpdateHeadless()
	}

	if g.Network().Count() < initial {
		t.Errorf("branch count shrank: %d -> %d", initial, g.Network().Count())
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() (int64, int) {
		g := newTestGame(t, Options{Seed: 42})
		for i := 0; i < 400; i++ {
			g.UpdateHeadless()
		}
		return g.Field().RecycledTotal(), g.Network().Count()
	}

	r1, c1 := run()
	r2, c2 := run()

	if r1 != r2 || c1 != c2 {
		t.Errorf("runs diverged with same seed: recycled %d/%d, branches %d/%d", r1, r2, c1, c2)
	}
}

func TestTelemetryOutput(t *testing.T) {
	dir := t.TempDir()
	g := newTestGame(t, Options{Seed: 5, OutputDir: dir, StatsWindowSec: 0.1})

	for i := 0; i < 60; i++ {
		g.UpdateHeadless()
	}
	g.Unload()

	for _, name := range []string{"telemetry.csv", "perf.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output file %s: %v", name, err)
		}
	}
}
