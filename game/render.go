package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/doublejbs/interactive-archive/ui"
)

// Update runs input handling and one or more simulation steps.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	// Clamp the frame delta so window drags and stalls cannot blow up the
	// integration step.
	dt := rl.GetFrameTime()
	if dt > g.cfg.Derived.MaxStep32 {
		dt = g.cfg.Derived.MaxStep32
	}
	if dt <= 0 {
		return
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(dt)
	}
}

// rlCamera builds the raylib camera from the orbit state.
func (g *Game) rlCamera() rl.Camera3D {
	x, y, z := g.cam.Position()
	return rl.Camera3D{
		Position:   rl.NewVector3(x, y, z),
		Target:     rl.NewVector3(g.cam.TargetX, g.cam.TargetY, g.cam.TargetZ),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the scene and HUD.
func (g *Game) Draw() {
	g.perf.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	rl.BeginMode3D(g.rlCamera())
	g.drawFloorGrid()
	g.drawParticles()
	g.drawDischarge()
	g.drawNetwork()
	g.drawDeflector()
	rl.EndMode3D()

	g.drawHUD()

	rl.EndDrawing()
}

// drawFloorGrid draws reference lines at the bottom of the particle volume.
func (g *Game) drawFloorGrid() {
	w, h, d := g.field.Bounds()
	halfW, halfH, halfD := w/2, h/2, d/2

	const lines = 8
	col := rl.Color{R: 40, G: 40, B: 48, A: 255}
	for i := 0; i <= lines; i++ {
		x := -halfW + w*float32(i)/lines
		z := -halfD + d*float32(i)/lines
		rl.DrawLine3D(rl.NewVector3(x, -halfH, -halfD), rl.NewVector3(x, -halfH, halfD), col)
		rl.DrawLine3D(rl.NewVector3(-halfW, -halfH, z), rl.NewVector3(halfW, -halfH, z), col)
	}
}

// drawParticles renders every particle as a point.
func (g *Game) drawParticles() {
	col := rl.Color{R: 170, G: 200, B: 255, A: 230}
	for _, p := range g.field.Particles() {
		rl.DrawPoint3D(rl.NewVector3(p.Pos.X, p.Pos.Y, p.Pos.Z), col)
	}
}

// drawDischarge renders the active polyline, faded by remaining intensity.
func (g *Game) drawDischarge() {
	storm := g.field.Storm()
	visible := storm.VisibleCount()
	if visible < 2 {
		return
	}

	col := rl.Fade(rl.Color{R: 200, G: 220, B: 255, A: 255}, storm.Intensity())
	points := storm.Points()
	for i := 1; i < visible; i++ {
		a, b := points[i-1], points[i]
		rl.DrawLine3D(rl.NewVector3(a.X, a.Y, a.Z), rl.NewVector3(b.X, b.Y, b.Z), col)
	}
}

// drawNetwork renders every branch segment's tube mesh.
func (g *Game) drawNetwork() {
	segments := g.network.Segments()
	meshes := g.network.Meshes()

	for i := range segments {
		seg := &segments[i]
		mesh := &meshes[i]
		if mesh.Empty() {
			continue
		}

		col := rl.ColorFromHSV(seg.Hue, 0.65, 0.9)
		col = rl.Fade(col, g.network.Opacity(seg))

		verts := mesh.Vertices
		for t := 0; t+2 < len(mesh.Indices); t += 3 {
			i0 := int(mesh.Indices[t]) * 3
			i1 := int(mesh.Indices[t+1]) * 3
			i2 := int(mesh.Indices[t+2]) * 3
			rl.DrawTriangle3D(
				rl.NewVector3(verts[i0], verts[i0+1], verts[i0+2]),
				rl.NewVector3(verts[i1], verts[i1+1], verts[i1+2]),
				rl.NewVector3(verts[i2], verts[i2+1], verts[i2+2]),
				col,
			)
		}
	}
}

// drawDeflector shows the pointer sphere once the mouse has been seen.
func (g *Game) drawDeflector() {
	if !g.pointerActive {
		return
	}
	pos := rl.NewVector3(g.pointer.X, g.pointer.Y, g.pointer.Z)
	rl.DrawSphereWires(pos, g.field.ObstacleRadius(), 8, 8, rl.Color{R: 255, G: 120, B: 80, A: 120})
}

// drawHUD renders status text and the tuning panel.
func (g *Game) drawHUD() {
	rl.DrawText(fmt.Sprintf("Tick: %d", g.tick), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Particles: %d  Branches: %d  Growing: %d",
		g.field.Count(), g.network.Count(), g.network.GrowingCount()), 10, 35, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Speed: %dx  [</>]", g.stepsPerUpdate), 10, 60, 20, rl.White)
	if g.paused {
		rl.DrawText("PAUSED", 10, 85, 20, rl.Yellow)
	}
	if fps := g.perf.Stats(); fps.FPS > 0 {
		rl.DrawText(fmt.Sprintf("FPS: %d", int(fps.FPS)), 10, 110, 20, rl.Gray)
	}

	tuning := ui.Tuning{
		Gravity:        g.field.Gravity(),
		Drag:           g.field.Drag(),
		ObstacleRadius: g.field.ObstacleRadius(),
		GrowthSpeed:    g.network.GrowthSpeed(),
		Paused:         g.paused,
	}
	tuning = ui.DrawPanel(g.cfg.Derived.ScreenW32, tuning)

	g.field.SetGravity(tuning.Gravity)
	g.field.SetDrag(tuning.Drag)
	g.field.SetObstacleRadius(tuning.ObstacleRadius)
	g.network.SetGrowthSpeed(tuning.GrowthSpeed)
	g.paused = tuning.Paused
	if tuning.Reseed {
		g.network.Reseed()
	}
}
