package systems

import (
	"fmt"
	"math/rand"
)

// inertObstacle is where the deflector sits before any pointer input arrives.
// Far enough below the volume that no particle can ever reach it.
var inertObstacle = Vec3{X: 0, Y: -10000, Z: 0}

// Particle is one simulated element: a position and a velocity.
// Particles have no identity beyond their slot; recycling reuses slots in place.
type Particle struct {
	Pos Vec3
	Vel Vec3
}

// FieldConfig holds ParticleField construction parameters.
type FieldConfig struct {
	Count int // population size, fixed for the field's lifetime

	// Simulation volume, centered on the origin.
	Width  float32 // x extent
	Height float32 // y extent (fall height)
	Depth  float32 // z extent

	Gravity       float32 // downward acceleration, units/s^2
	Drag          float32 // per-tick damping on x/z velocity, must be < 1
	ObstacleRadius float32 // deflector sphere radius
	BounceImpulse float32 // outward impulse added on reflection

	SpawnBand    float32 // vertical band above the ceiling for recycled spawns
	FallSpeedMin float32 // initial downward speed range for recycled particles
	FallSpeedMax float32

	Storm DischargeConfig // owned transient generator
}

// Validate reports the first configuration error, if any.
// Invalid configuration is a caller mistake and fails at construction time.
func (c FieldConfig) Validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("particle count must be positive, got %d", c.Count)
	}
	if c.Width <= 0 || c.Height <= 0 || c.Depth <= 0 {
		return fmt.Errorf("volume dimensions must be positive, got %gx%gx%g", c.Width, c.Height, c.Depth)
	}
	if c.ObstacleRadius <= 0 {
		return fmt.Errorf("obstacle radius must be positive, got %g", c.ObstacleRadius)
	}
	if c.Drag <= 0 || c.Drag >= 1 {
		return fmt.Errorf("drag must be in (0, 1), got %g", c.Drag)
	}
	if c.FallSpeedMin < 0 || c.FallSpeedMax < c.FallSpeedMin {
		return fmt.Errorf("fall speed range invalid: [%g, %g]", c.FallSpeedMin, c.FallSpeedMax)
	}
	return c.Storm.Validate()
}

// ParticleField advances a fixed population of particles under gravity, drag,
// and a moving spherical deflector, recycling particles that fall out of the
// volume. It also owns and drives the Discharge transient generator.
type ParticleField struct {
	cfg       FieldConfig
	particles []Particle
	positions []float32 // flat xyz buffer rebuilt every advance
	obstacle  Vec3
	storm     *Discharge
	rng       *rand.Rand

	recycled    int64
	reflections int64
}

// NewParticleField creates a field with particles pre-distributed through the
// full fall height, so the first frames are not an empty sky.
func NewParticleField(cfg FieldConfig, rng *rand.Rand) (*ParticleField, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("particle field config: %w", err)
	}

	f := &ParticleField{
		cfg:       cfg,
		particles: make([]Particle, cfg.Count),
		positions: make([]float32, cfg.Count*3),
		obstacle:  inertObstacle,
		storm:     newDischarge(cfg.Storm, rng),
		rng:       rng,
	}

	halfH := cfg.Height / 2
	for i := range f.particles {
		p := &f.particles[i]
		p.Pos = Vec3{
			X: (rng.Float32() - 0.5) * cfg.Width,
			Y: -halfH + rng.Float32()*cfg.Height,
			Z: (rng.Float32() - 0.5) * cfg.Depth,
		}
		p.Vel = Vec3{Y: -f.fallSpeed()}
	}
	f.writePositions()

	return f, nil
}

// Advance steps the simulation by dt seconds. The caller clamps dt to a sane
// maximum before passing it in. obstacle is the pointer projected into world
// space; pass InertObstacle() when there is no pointer.
func (f *ParticleField) Advance(dt float32, obstacle Vec3) {
	f.obstacle = obstacle

	cfg := &f.cfg
	halfH := cfg.Height / 2
	r2 := cfg.ObstacleRadius * cfg.ObstacleRadius

	for i := range f.particles {
		p := &f.particles[i]

		// Gravity
		p.Vel.Y -= cfg.Gravity * dt

		// Deflector collision. Only the upper hemisphere reflects, and only
		// particles moving into the surface. The boundary itself counts as
		// outside (strict <) so the normal is never zero-length.
		offset := p.Pos.Sub(obstacle)
		d2 := offset.LengthSq()
		if d2 < r2 && d2 > 0 && offset.Y > 0 {
			dist := offset.Length()
			normal := offset.Scale(1 / dist)
			if p.Vel.Dot(normal) < 0 {
				p.Vel = p.Vel.Reflect(normal)
				p.Vel = p.Vel.Add(normal.Scale(cfg.BounceImpulse))
				// Push back outside the sphere so the particle does not
				// tunnel through on the next frame.
				p.Pos = p.Pos.Add(normal.Scale(cfg.ObstacleRadius - dist + 0.01))
				f.reflections++
			}
		}

		// Horizontal drag. Vertical velocity is left undamped so falling
		// speed is preserved.
		p.Vel.X *= cfg.Drag
		p.Vel.Z *= cfg.Drag

		// Integrate
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))

		// Recycle below the floor back into the top band.
		if p.Pos.Y < -halfH {
			p.Pos = Vec3{
				X: (f.rng.Float32() - 0.5) * cfg.Width,
				Y: halfH + f.rng.Float32()*cfg.SpawnBand,
				Z: (f.rng.Float32() - 0.5) * cfg.Depth,
			}
			p.Vel = Vec3{Y: -f.fallSpeed()}
			f.recycled++
		}
	}

	f.storm.Advance(dt)
	f.writePositions()
}

// fallSpeed draws a fresh downward speed for a recycled particle.
func (f *ParticleField) fallSpeed() float32 {
	return f.cfg.FallSpeedMin + f.rng.Float32()*(f.cfg.FallSpeedMax-f.cfg.FallSpeedMin)
}

// writePositions rebuilds the flat display buffer from particle state.
func (f *ParticleField) writePositions() {
	for i := range f.particles {
		p := &f.particles[i]
		f.positions[i*3] = p.Pos.X
		f.positions[i*3+1] = p.Pos.Y
		f.positions[i*3+2] = p.Pos.Z
	}
}

// InertObstacle returns the far-away deflector position used before any
// pointer input arrives.
func InertObstacle() Vec3 {
	return inertObstacle
}

// Count returns the fixed population size.
func (f *ParticleField) Count() int {
	return len(f.particles)
}

// Positions returns the flat xyz display buffer for the current frame.
// The slice is reused across frames; callers must not retain it.
func (f *ParticleField) Positions() []float32 {
	return f.positions
}

// Particles exposes the raw population for inspection.
func (f *ParticleField) Particles() []Particle {
	return f.particles
}

// Obstacle returns the deflector position used on the last advance.
func (f *ParticleField) Obstacle() Vec3 {
	return f.obstacle
}

// Storm returns the owned discharge generator.
func (f *ParticleField) Storm() *Discharge {
	return f.storm
}

// RecycledTotal returns the cumulative number of floor recycles.
func (f *ParticleField) RecycledTotal() int64 {
	return f.recycled
}

// ReflectionsTotal returns the cumulative number of deflector reflections.
func (f *ParticleField) ReflectionsTotal() int64 {
	return f.reflections
}

// SetGravity adjusts gravity at runtime. Used by the tuning HUD.
func (f *ParticleField) SetGravity(g float32) {
	f.cfg.Gravity = g
}

// Gravity returns the current gravity setting.
func (f *ParticleField) Gravity() float32 {
	return f.cfg.Gravity
}

// SetObstacleRadius adjusts the deflector radius at runtime, ignoring
// non-positive values.
func (f *ParticleField) SetObstacleRadius(r float32) {
	if r > 0 {
		f.cfg.ObstacleRadius = r
	}
}

// ObstacleRadius returns the current deflector radius.
func (f *ParticleField) ObstacleRadius() float32 {
	return f.cfg.ObstacleRadius
}

// SetDrag adjusts horizontal damping at runtime, ignoring values outside
// (0, 1).
func (f *ParticleField) SetDrag(d float32) {
	if d > 0 && d < 1 {
		f.cfg.Drag = d
	}
}

// Drag returns the current horizontal damping factor.
func (f *ParticleField) Drag() float32 {
	return f.cfg.Drag
}

// Bounds returns the simulation volume extents (width, height, depth).
func (f *ParticleField) Bounds() (w, h, d float32) {
	return f.cfg.Width, f.cfg.Height, f.cfg.Depth
}
