package systems

import (
	"math/rand"
	"testing"
)

func testGrowthConfig() GrowthConfig {
	return GrowthConfig{
		Seeds:           []Vec3{{}},
		SeedBranchesMin: 4,
		SeedBranchesMax: 7,
		GrowthSpeed:     12,
		BaseLength:      10,
		LengthShrink:    0.12,
		MinLength:       2,
		BranchAngle:     1.5707964,
		BranchProb:      0.65,
		ChildrenMin:     2,
		ChildrenMax:     5,
		MaxGeneration:   7,
		MaxBranches:     1200,
		TubeRadius:      0.35,
		TubeSides:       6,
		HueBase:         120,
		HueShift:        25,
		PulseBase:       0.55,
		PulseAmp:        0.35,
		PulseFreq:       2,
	}
}

// TestGrowthConfigValidate verifies construction fails fast on caller mistakes.
func TestGrowthConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GrowthConfig)
	}{
		{"no seeds", func(c *GrowthConfig) { c.Seeds = nil }},
		{"zero growth speed", func(c *GrowthConfig) { c.GrowthSpeed = 0 }},
		{"negative base length", func(c *GrowthConfig) { c.BaseLength = -1 }},
		{"probability above one", func(c *GrowthConfig) { c.BranchProb = 1.5 }},
		{"inverted children range", func(c *GrowthConfig) { c.ChildrenMin = 5; c.ChildrenMax = 2 }},
		{"zero branch cap", func(c *GrowthConfig) { c.MaxBranches = 0 }},
		{"zero tube radius", func(c *GrowthConfig) { c.TubeRadius = 0 }},
		{"two tube sides", func(c *GrowthConfig) { c.TubeSides = 2 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testGrowthConfig()
			tc.mutate(&cfg)
			if _, err := NewGrowthNetwork(cfg, rand.New(rand.NewSource(1))); err == nil {
				t.Errorf("NewGrowthNetwork accepted invalid config")
			}
		})
	}
}

// TestSingleBranchScenario runs the concrete scenario: one seed branch with
// target length 6 at speed 12 finishes within 0.5 s, clamps exactly, and runs
// exactly one spawn attempt.
func TestSingleBranchScenario(t *testing.T) {
	cfg := testGrowthConfig()
	cfg.SeedBranchesMin = 1
	cfg.SeedBranchesMax = 1
	cfg.BaseLength = 6
	cfg.MinLength = 1
	cfg.BranchProb = 0 // isolate the parent: attempts counted, nothing spawns

	n, err := NewGrowthNetwork(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewGrowthNetwork: %v", err)
	}
	if n.Count() != 1 {
		t.Fatalf("seed count = %d, want 1", n.Count())
	}
	// Pin the seed to a known direction.
	n.segments[0].Dir = Vec3{X: 1}

	dt := float32(1.0 / 60.0)
	for i := 0; i < 35; i++ { // a hair over 0.5s to absorb float accumulation
		n.Advance(dt)
	}

	seg := &n.segments[0]
	if seg.Length != seg.TargetLength {
		t.Errorf("length = %f, want clamped to target %f", seg.Length, seg.TargetLength)
	}
	if seg.Growing {
		t.Errorf("segment still growing after completion")
	}
	if !vecNear(seg.End, Vec3{X: 6}) {
		t.Errorf("end = %+v, want {6 0 0}", seg.End)
	}
	if n.SpawnAttemptsTotal() != 1 {
		t.Errorf("spawn attempts = %d, want exactly 1", n.SpawnAttemptsTotal())
	}
	if !n.Settled() {
		t.Errorf("network not settled with its only segment frozen")
	}
}

// TestGrowthMonotonic verifies length never decreases while growing and stays
// clamped afterward.
func TestGrowthMonotonic(t *testing.T) {
	cfg := testGrowthConfig()
	cfg.BranchProb = 1

	n, err := NewGrowthNetwork(cfg, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("NewGrowthNetwork: %v", err)
	}

	prev := make(map[int]float32)
	dt := float32(1.0 / 60.0)
	for tick := 0; tick < 300; tick++ {
		n.Advance(dt)
		for i := range n.segments {
			seg := &n.segments[i]
			if seg.Length > seg.TargetLength {
				t.Fatalf("tick %d: segment %d length %f exceeds target %f",
					tick, i, seg.Length, seg.TargetLength)
			}
			if last, ok := prev[i]; ok && seg.Length < last {
				t.Fatalf("tick %d: segment %d length shrank %f -> %f",
					tick, i, last, seg.Length)
			}
			prev[i] = seg.Length
			if !seg.Growing && seg.Length != seg.TargetLength {
				t.Fatalf("tick %d: frozen segment %d at %f, target %f",
					tick, i, seg.Length, seg.TargetLength)
			}
		}
	}
}

// TestGenerationAndPopulationBounds runs growth to exhaustion and checks both
// hard bounds hold throughout.
func TestGenerationAndPopulationBounds(t *testing.T) {
	cfg := testGrowthConfig()
	cfg.BranchProb = 1 // maximum spawn pressure
	cfg.MaxBranches = 300
	cfg.MaxGeneration = 4

	n, err := NewGrowthNetwork(cfg, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatalf("NewGrowthNetwork: %v", err)
	}

	dt := float32(1.0 / 60.0)
	for tick := 0; tick < 2000; tick++ {
		n.Advance(dt)
		if n.Count() > cfg.MaxBranches {
			t.Fatalf("tick %d: %d segments exceeds cap %d", tick, n.Count(), cfg.MaxBranches)
		}
		for i := range n.segments {
			if g := n.segments[i].Generation; g > cfg.MaxGeneration {
				t.Fatalf("tick %d: segment %d at generation %d, max %d",
					tick, i, g, cfg.MaxGeneration)
			}
		}
	}

	if !n.Settled() {
		t.Errorf("network never settled under bounded growth")
	}
	if n.Count() != cfg.MaxBranches && n.SpawnsDroppedTotal() > 0 {
		t.Errorf("spawns dropped (%d) before the cap was reached (%d/%d)",
			n.SpawnsDroppedTotal(), n.Count(), cfg.MaxBranches)
	}
}

// TestGrowthPlanarity verifies every segment stays in the z=0 plane.
func TestGrowthPlanarity(t *testing.T) {
	cfg := testGrowthConfig()
	cfg.BranchProb = 1

	n, err := NewGrowthNetwork(cfg, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatalf("NewGrowthNetwork: %v", err)
	}

	dt := float32(1.0 / 60.0)
	for tick := 0; tick < 600; tick++ {
		n.Advance(dt)
	}

	for i := range n.segments {
		seg := &n.segments[i]
		if seg.Start.Z != 0 || seg.End.Z != 0 || seg.Dir.Z != 0 {
			t.Fatalf("segment %d left the plane: start %+v end %+v dir %+v",
				i, seg.Start, seg.End, seg.Dir)
		}
	}
}

// TestChildrenInheritGeometry verifies children start at the parent's end with
// shrunken targets and shifted hue.
func TestChildrenInheritGeometry(t *testing.T) {
	cfg := testGrowthConfig()
	cfg.SeedBranchesMin = 1
	cfg.SeedBranchesMax = 1
	cfg.BranchProb = 1
	cfg.BaseLength = 4
	cfg.MinLength = 1

	n, err := NewGrowthNetwork(cfg, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("NewGrowthNetwork: %v", err)
	}

	dt := float32(1.0 / 60.0)
	for i := 0; i < 30; i++ { // enough for the seed to finish
		n.Advance(dt)
	}

	if n.Count() < 1+cfg.ChildrenMin {
		t.Fatalf("count = %d after parent completion, want >= %d", n.Count(), 1+cfg.ChildrenMin)
	}

	parent := &n.segments[0]
	wantTarget := cfg.BaseLength * (1 - cfg.LengthShrink)
	for i := 1; i < n.Count(); i++ {
		child := &n.segments[i]
		if child.Generation != 1 {
			t.Errorf("child %d generation = %d, want 1", i, child.Generation)
		}
		if !vecNear(child.Start, parent.End) {
			t.Errorf("child %d start = %+v, want parent end %+v", i, child.Start, parent.End)
		}
		if absf(child.TargetLength-wantTarget) > 1e-4 {
			t.Errorf("child %d target = %f, want %f", i, child.TargetLength, wantTarget)
		}
		if child.Hue != cfg.HueBase+cfg.HueShift {
			t.Errorf("child %d hue = %f, want %f", i, child.Hue, cfg.HueBase+cfg.HueShift)
		}
	}
}

// TestReseed verifies reseeding discards the old population and restarts.
func TestReseed(t *testing.T) {
	cfg := testGrowthConfig()
	cfg.BranchProb = 1

	n, err := NewGrowthNetwork(cfg, rand.New(rand.NewSource(6)))
	if err != nil {
		t.Fatalf("NewGrowthNetwork: %v", err)
	}

	dt := float32(1.0 / 60.0)
	for i := 0; i < 300; i++ {
		n.Advance(dt)
	}
	grown := n.Count()

	n.Reseed()
	if n.Count() >= grown {
		t.Errorf("count after reseed = %d, want fewer than grown %d", n.Count(), grown)
	}
	if n.Settled() {
		t.Errorf("reseeded network already settled")
	}
	if n.MaxGenerationSeen() != 0 {
		t.Errorf("max generation after reseed = %d, want 0", n.MaxGenerationSeen())
	}
	for i := range n.segments {
		if n.segments[i].Length != 0 || !n.segments[i].Growing {
			t.Fatalf("reseeded segment %d not fresh: %+v", i, n.segments[i])
		}
	}
}

// TestOpacityPulseRange verifies the cosmetic pulse stays within [0, 1].
func TestOpacityPulseRange(t *testing.T) {
	cfg := testGrowthConfig()
	cfg.PulseBase = 0.8
	cfg.PulseAmp = 0.5 // would exceed 1 without clamping

	n, err := NewGrowthNetwork(cfg, rand.New(rand.NewSource(8)))
	if err != nil {
		t.Fatalf("NewGrowthNetwork: %v", err)
	}

	dt := float32(1.0 / 60.0)
	for tick := 0; tick < 200; tick++ {
		n.Advance(dt)
		for i := range n.segments {
			o := n.Opacity(&n.segments[i])
			if o < 0 || o > 1 {
				t.Fatalf("tick %d: opacity %f outside [0, 1]", tick, o)
			}
		}
	}
}
