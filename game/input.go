package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/doublejbs/interactive-archive/systems"
)

const (
	orbitSensitivity = 0.005
	zoomStep         = 0.9
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.network.Reseed()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.cam.Reset()
	}

	// Speed control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	// Right drag orbits, wheel zooms
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		g.cam.Orbit(delta.X*orbitSensitivity, delta.Y*orbitSensitivity)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		if wheel > 0 {
			g.cam.ZoomBy(zoomStep)
		} else {
			g.cam.ZoomBy(1 / zoomStep)
		}
	}

	g.updatePointer()
}

// updatePointer projects the mouse onto the deflector plane. The deflector
// tracks the cursor on the vertical plane z = obstacle_depth; a ray nearly
// parallel to that plane leaves the previous position in place.
func (g *Game) updatePointer() {
	mouse := rl.GetMousePosition()
	ray := rl.GetScreenToWorldRay(mouse, g.rlCamera())

	planeZ := float32(g.cfg.Particles.ObstacleDepth)
	dz := ray.Direction.Z
	if dz > -1e-6 && dz < 1e-6 {
		return
	}

	t := (planeZ - ray.Position.Z) / dz
	if t < 0 {
		return
	}

	g.pointer = systems.Vec3{
		X: ray.Position.X + ray.Direction.X*t,
		Y: ray.Position.Y + ray.Direction.Y*t,
		Z: planeZ,
	}
	g.pointerActive = true
}
