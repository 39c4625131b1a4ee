// Package camera provides an orbit camera for viewing the scene volume.
package camera

import "math"

// Camera orbits a fixed target point. Yaw rotates around the world Y axis,
// pitch tilts above and below the horizon, distance sets the orbit radius.
type Camera struct {
	// Target is the orbit center in world coordinates
	TargetX, TargetY, TargetZ float32

	// Orbit angles in radians
	Yaw, Pitch float32

	// Distance from the target
	Distance float32

	// Orbit constraints
	MinDistance, MaxDistance float32
	MinPitch, MaxPitch       float32

	// Defaults captured at construction, restored by Reset
	homeYaw, homePitch, homeDistance float32
}

// New creates a camera orbiting the given target at the given distance.
func New(targetX, targetY, targetZ, distance float32) *Camera {
	c := &Camera{
		TargetX:     targetX,
		TargetY:     targetY,
		TargetZ:     targetZ,
		Yaw:         float32(math.Pi) / 2,
		Pitch:       0.25,
		Distance:    distance,
		MinDistance: distance * 0.2,
		MaxDistance: distance * 4,
		MinPitch:    -1.45,
		MaxPitch:    1.45,
	}
	c.homeYaw = c.Yaw
	c.homePitch = c.Pitch
	c.homeDistance = c.Distance
	return c
}

// Position returns the camera eye position in world coordinates.
func (c *Camera) Position() (x, y, z float32) {
	sy, cy := math.Sincos(float64(c.Yaw))
	sp, cp := math.Sincos(float64(c.Pitch))

	horiz := float64(c.Distance) * cp
	x = c.TargetX + float32(horiz*cy)
	y = c.TargetY + float32(float64(c.Distance)*sp)
	z = c.TargetZ + float32(horiz*sy)
	return x, y, z
}

// Orbit rotates the camera by the given yaw and pitch deltas in radians.
// Pitch is clamped so the camera never flips over the poles.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw += dYaw
	if c.Yaw > 2*math.Pi {
		c.Yaw -= 2 * math.Pi
	} else if c.Yaw < -2*math.Pi {
		c.Yaw += 2 * math.Pi
	}
	c.Pitch = clamp(c.Pitch+dPitch, c.MinPitch, c.MaxPitch)
}

// SetDistance sets the orbit radius, clamped to min/max.
func (c *Camera) SetDistance(d float32) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy multiplies the orbit radius by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetDistance(c.Distance * factor)
}

// Reset returns the camera to its construction pose.
func (c *Camera) Reset() {
	c.Yaw = c.homeYaw
	c.Pitch = c.homePitch
	c.Distance = c.homeDistance
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
