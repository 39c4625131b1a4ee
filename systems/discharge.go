package systems

import (
	"fmt"
	"math/rand"
)

// DischargeConfig holds parameters for the transient polyline generator.
type DischargeConfig struct {
	IntervalMin float32 // seconds between fades and the next fire
	IntervalMax float32
	Segments    int     // polyline steps from top to bottom
	TopY        float32 // fire start height
	BottomY     float32 // fixed end height
	SpanX       float32 // start x is drawn from [-SpanX/2, SpanX/2]
	LateralStep float32 // max lateral offset per step
	MaxDrift    float32 // drift beyond this pulls back toward the start x
	Pull        float32 // fraction of the drift removed when beyond MaxDrift, in (0, 1]
	FadeRate    float32 // intensity lost per second after a fire
	Depth       float32 // fixed z for all points
}

// Validate reports the first configuration error, if any.
func (c DischargeConfig) Validate() error {
	if c.Segments < 2 {
		return fmt.Errorf("discharge segments must be >= 2, got %d", c.Segments)
	}
	if c.IntervalMin < 0 || c.IntervalMax < c.IntervalMin {
		return fmt.Errorf("discharge interval range invalid: [%g, %g]", c.IntervalMin, c.IntervalMax)
	}
	if c.FadeRate <= 0 {
		return fmt.Errorf("discharge fade rate must be positive, got %g", c.FadeRate)
	}
	if c.Pull <= 0 || c.Pull > 1 {
		return fmt.Errorf("discharge pull must be in (0, 1], got %g", c.Pull)
	}
	if c.TopY <= c.BottomY {
		return fmt.Errorf("discharge top %g must be above bottom %g", c.TopY, c.BottomY)
	}
	return nil
}

// Discharge is the transient polyline flash. At most one instance is active:
// an idle countdown fires a jagged polyline at full intensity, the intensity
// decays linearly, and once it hits zero the geometry collapses to empty and
// the timer is rearmed with a fresh random interval.
type Discharge struct {
	cfg       DischargeConfig
	points    []Vec3
	visible   int
	timer     float32
	intensity float32
	rng       *rand.Rand

	fires int64
}

// newDischarge creates an idle generator with its first interval armed.
// The config has already been validated by the owning field.
func newDischarge(cfg DischargeConfig, rng *rand.Rand) *Discharge {
	d := &Discharge{
		cfg:    cfg,
		points: make([]Vec3, cfg.Segments+1),
		rng:    rng,
	}
	d.timer = d.nextInterval()
	return d
}

// Advance steps the timer/fade state machine by dt seconds.
func (d *Discharge) Advance(dt float32) {
	if d.intensity > 0 {
		d.intensity -= d.cfg.FadeRate * dt
		if d.intensity < 1e-3 {
			// Fully faded: hide the geometry and rearm.
			d.intensity = 0
			d.visible = 0
			d.timer = d.nextInterval()
		}
		return
	}

	d.timer -= dt
	if d.timer <= 0 {
		d.fire()
	}
}

// fire generates a fresh jagged polyline at full intensity.
func (d *Discharge) fire() {
	cfg := &d.cfg
	startX := (d.rng.Float32() - 0.5) * cfg.SpanX
	x := startX
	stepY := (cfg.TopY - cfg.BottomY) / float32(cfg.Segments)

	for i := 0; i <= cfg.Segments; i++ {
		d.points[i] = Vec3{X: x, Y: cfg.TopY - float32(i)*stepY, Z: cfg.Depth}

		// Random lateral walk with mean reversion: unbounded drift would
		// march the bolt off sideways, so past MaxDrift each step pulls
		// back toward the start column while staying jagged.
		x += (d.rng.Float32() - 0.5) * 2 * cfg.LateralStep
		if drift := x - startX; drift > cfg.MaxDrift || drift < -cfg.MaxDrift {
			x -= drift * cfg.Pull
		}
	}

	d.visible = len(d.points)
	d.intensity = 1.0
	d.fires++
}

// nextInterval draws a fresh idle countdown.
func (d *Discharge) nextInterval() float32 {
	return d.cfg.IntervalMin + d.rng.Float32()*(d.cfg.IntervalMax-d.cfg.IntervalMin)
}

// Points returns the polyline points. Only the first VisibleCount entries are
// meaningful; the slice is reused across fires.
func (d *Discharge) Points() []Vec3 {
	return d.points
}

// VisibleCount returns how many polyline points should be drawn. Zero while
// idle or fully faded.
func (d *Discharge) VisibleCount() int {
	return d.visible
}

// Intensity returns the current opacity in [0, 1].
func (d *Discharge) Intensity() float32 {
	return d.intensity
}

// FiresTotal returns the cumulative number of fires.
func (d *Discharge) FiresTotal() int64 {
	return d.fires
}
