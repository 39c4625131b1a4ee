package systems

import (
	"fmt"
	"math"
	"math/rand"
)

// BranchSegment is one element of the growth network. Parentage is implicit:
// a child's Start equals its parent's End at spawn time and is never traversed
// backward, so segments live in a flat list rather than a tree.
type BranchSegment struct {
	Start        Vec3
	End          Vec3
	Dir          Vec3 // unit direction, z always 0
	Length       float32
	TargetLength float32
	Generation   int32
	Growing      bool
	Age          float32 // seconds since spawn; also phases the pulse
	Hue          float32 // degrees, shifted per generation
}

// GrowthConfig holds GrowthNetwork construction parameters.
type GrowthConfig struct {
	Seeds []Vec3 // seed points on the z=0 plane

	SeedBranchesMin int // initial branches per seed, evenly spaced with jitter
	SeedBranchesMax int

	GrowthSpeed float32 // units/s, constant for every segment
	BaseLength  float32 // generation-0 target length
	LengthShrink float32 // fractional target shrink per generation
	MinLength   float32 // target length floor

	BranchAngle float32 // max |deflection| in radians for child directions
	BranchProb  float64 // Bernoulli success chance for spawning on completion
	ChildrenMin int
	ChildrenMax int

	MaxGeneration int32 // children beyond this depth are never spawned
	MaxBranches   int   // hard population cap; excess spawns drop silently

	TubeRadius float32 // tessellation parameters for each segment's tube
	TubeSides  int

	HueBase  float32 // degrees
	HueShift float32 // degrees added per generation

	PulseBase float32 // cosmetic opacity: base + amp*sin(t*freq + age)
	PulseAmp  float32
	PulseFreq float32
}

// Validate reports the first configuration error, if any.
func (c GrowthConfig) Validate() error {
	if len(c.Seeds) == 0 {
		return fmt.Errorf("growth needs at least one seed point")
	}
	if c.SeedBranchesMin < 1 || c.SeedBranchesMax < c.SeedBranchesMin {
		return fmt.Errorf("seed branch range invalid: [%d, %d]", c.SeedBranchesMin, c.SeedBranchesMax)
	}
	if c.GrowthSpeed <= 0 {
		return fmt.Errorf("growth speed must be positive, got %g", c.GrowthSpeed)
	}
	if c.BaseLength <= 0 || c.MinLength <= 0 || c.MinLength > c.BaseLength {
		return fmt.Errorf("length range invalid: base %g, min %g", c.BaseLength, c.MinLength)
	}
	if c.BranchProb < 0 || c.BranchProb > 1 {
		return fmt.Errorf("branch probability must be in [0, 1], got %g", c.BranchProb)
	}
	if c.ChildrenMin < 1 || c.ChildrenMax < c.ChildrenMin {
		return fmt.Errorf("children range invalid: [%d, %d]", c.ChildrenMin, c.ChildrenMax)
	}
	if c.MaxGeneration < 0 {
		return fmt.Errorf("max generation must be non-negative, got %d", c.MaxGeneration)
	}
	if c.MaxBranches <= 0 {
		return fmt.Errorf("max branches must be positive, got %d", c.MaxBranches)
	}
	if c.TubeRadius <= 0 || c.TubeSides < 3 {
		return fmt.Errorf("tube parameters invalid: radius %g, sides %d", c.TubeRadius, c.TubeSides)
	}
	return nil
}

// GrowthNetwork owns a flat, append-only population of branch segments.
// Completed parents enqueue children directly onto the same list, so the
// recursive branching of the effect runs as a bounded iteration: both
// MaxGeneration and MaxBranches are enforced at the single append site.
type GrowthNetwork struct {
	cfg      GrowthConfig
	segments []BranchSegment
	meshes   []TubeMesh
	elapsed  float32
	rng      *rand.Rand

	spawnAttempts int64
	spawnsDropped int64
	maxGenSeen    int32
}

// NewGrowthNetwork creates a network and emits the initial branches from each
// seed point.
func NewGrowthNetwork(cfg GrowthConfig, rng *rand.Rand) (*GrowthNetwork, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("growth network config: %w", err)
	}

	n := &GrowthNetwork{
		cfg:      cfg,
		segments: make([]BranchSegment, 0, cfg.MaxBranches),
		meshes:   make([]TubeMesh, 0, cfg.MaxBranches),
		rng:      rng,
	}
	n.seed()
	return n, nil
}

// seed emits the initial branches: per seed point, a fan of evenly spaced
// directions around the full circle with small angular jitter, all in the
// z=0 plane.
func (n *GrowthNetwork) seed() {
	cfg := &n.cfg
	for _, origin := range cfg.Seeds {
		count := cfg.SeedBranchesMin + n.rng.Intn(cfg.SeedBranchesMax-cfg.SeedBranchesMin+1)
		for i := 0; i < count; i++ {
			angle := float32(i)/float32(count)*2*math.Pi + (n.rng.Float32()-0.5)*0.3
			dir := Vec3{X: 1}.RotateZ(angle)
			n.append(BranchSegment{
				Start:        Vec3{X: origin.X, Y: origin.Y},
				End:          Vec3{X: origin.X, Y: origin.Y},
				Dir:          dir,
				TargetLength: n.targetLength(0),
				Generation:   0,
				Growing:      true,
				Hue:          cfg.HueBase,
			})
		}
	}
}

// Advance grows every active segment by dt seconds, rebuilding its tube mesh,
// and spawns children from segments that complete this tick. Frozen segments
// only age, for the cosmetic pulse.
func (n *GrowthNetwork) Advance(dt float32) {
	n.elapsed += dt

	// Children appended during the loop are picked up on later ticks; they
	// start at zero length and cannot complete in the tick they spawn.
	count := len(n.segments)
	for i := 0; i < count; i++ {
		seg := &n.segments[i]
		seg.Age += dt

		if !seg.Growing {
			continue
		}

		seg.Length += n.cfg.GrowthSpeed * dt
		if seg.Length >= seg.TargetLength {
			seg.Length = seg.TargetLength
		}
		seg.End = seg.Start.Add(seg.Dir.Scale(seg.Length))
		n.meshes[i] = n.buildSegmentMesh(seg)

		if seg.Length == seg.TargetLength {
			seg.Growing = false
			n.branchOut(i)
		}
	}
}

// branchOut runs the spawn step for a completed segment.
func (n *GrowthNetwork) branchOut(parent int) {
	cfg := &n.cfg
	n.spawnAttempts++

	// Read parent fields up front: appends below may reallocate the slice.
	p := n.segments[parent]

	if p.Generation >= cfg.MaxGeneration {
		return
	}
	if n.rng.Float64() >= cfg.BranchProb {
		return
	}

	childGen := p.Generation + 1
	count := cfg.ChildrenMin + n.rng.Intn(cfg.ChildrenMax-cfg.ChildrenMin+1)
	for i := 0; i < count; i++ {
		// Large signed deflection about the plane normal. Sharp zig-zags
		// are the intended look, not an artifact.
		angle := (n.rng.Float32()*2 - 1) * cfg.BranchAngle
		dir := p.Dir.RotateZ(angle)
		dir.Z = 0
		dir = dir.Normalized()
		if dir.LengthSq() == 0 {
			continue
		}

		n.append(BranchSegment{
			Start:        p.End,
			End:          p.End,
			Dir:          dir,
			TargetLength: n.targetLength(childGen),
			Generation:   childGen,
			Growing:      true,
			Hue:          cfg.HueBase + float32(childGen)*cfg.HueShift,
		})
	}
}

// append adds a segment unless the population cap is reached. Hitting the cap
// is a normal terminal condition; the spawn is simply dropped.
func (n *GrowthNetwork) append(seg BranchSegment) {
	if len(n.segments) >= n.cfg.MaxBranches {
		n.spawnsDropped++
		return
	}
	n.segments = append(n.segments, seg)
	n.meshes = append(n.meshes, TubeMesh{})
	if seg.Generation > n.maxGenSeen {
		n.maxGenSeen = seg.Generation
	}
}

// targetLength returns the shrinking target for the given generation depth.
func (n *GrowthNetwork) targetLength(gen int32) float32 {
	l := n.cfg.BaseLength * (1 - float32(gen)*n.cfg.LengthShrink)
	if l < n.cfg.MinLength {
		l = n.cfg.MinLength
	}
	return l
}

// buildSegmentMesh tessellates a segment's tube from its two-point path.
// Ring count scales with current length so short stubs stay cheap.
func (n *GrowthNetwork) buildSegmentMesh(seg *BranchSegment) TubeMesh {
	rings := int(seg.Length) + 2
	return BuildTube([]Vec3{seg.Start, seg.End}, n.cfg.TubeRadius, n.cfg.TubeSides, rings)
}

// Opacity returns the cosmetic pulsing opacity for a segment, driven by total
// elapsed time and phased by the segment's age. Independent of growth state.
func (n *GrowthNetwork) Opacity(seg *BranchSegment) float32 {
	pulse := n.cfg.PulseBase + n.cfg.PulseAmp*float32(math.Sin(float64(n.elapsed*n.cfg.PulseFreq+seg.Age)))
	return clampFloat(pulse, 0, 1)
}

// Reseed discards all segments and regrows from the seed points.
func (n *GrowthNetwork) Reseed() {
	n.segments = n.segments[:0]
	n.meshes = n.meshes[:0]
	n.maxGenSeen = 0
	n.seed()
}

// Count returns the current number of segments.
func (n *GrowthNetwork) Count() int {
	return len(n.segments)
}

// GrowingCount returns how many segments are still actively growing.
func (n *GrowthNetwork) GrowingCount() int {
	count := 0
	for i := range n.segments {
		if n.segments[i].Growing {
			count++
		}
	}
	return count
}

// Settled reports whether growth has stabilized: no segment is growing and no
// further spawn can change that.
func (n *GrowthNetwork) Settled() bool {
	return n.GrowingCount() == 0
}

// Segments exposes the segment population for inspection and rendering.
func (n *GrowthNetwork) Segments() []BranchSegment {
	return n.segments
}

// Meshes returns the per-segment tube meshes, parallel to Segments.
func (n *GrowthNetwork) Meshes() []TubeMesh {
	return n.meshes
}

// SpawnAttemptsTotal returns how many completed segments ran the spawn step.
func (n *GrowthNetwork) SpawnAttemptsTotal() int64 {
	return n.spawnAttempts
}

// SpawnsDroppedTotal returns how many spawns the population cap swallowed.
func (n *GrowthNetwork) SpawnsDroppedTotal() int64 {
	return n.spawnsDropped
}

// MaxGenerationSeen returns the deepest generation spawned so far.
func (n *GrowthNetwork) MaxGenerationSeen() int32 {
	return n.maxGenSeen
}

// SetGrowthSpeed adjusts the growth rate at runtime, ignoring non-positive
// values. Used by the tuning HUD.
func (n *GrowthNetwork) SetGrowthSpeed(speed float32) {
	if speed > 0 {
		n.cfg.GrowthSpeed = speed
	}
}

// GrowthSpeed returns the current growth rate.
func (n *GrowthNetwork) GrowthSpeed() float32 {
	return n.cfg.GrowthSpeed
}
