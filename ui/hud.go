// Package ui provides the live tuning panel drawn over the 3D scene.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	panelWidth  = 240
	sliderWidth = panelWidth - 70
)

// Tuning carries the adjustable runtime parameters through the panel.
// The caller passes current values in and applies whatever comes back.
type Tuning struct {
	Gravity        float32
	Drag           float32
	ObstacleRadius float32
	GrowthSpeed    float32
	Paused         bool
	Reseed         bool
}

// DrawPanel renders the tuning panel anchored to the right screen edge and
// returns the possibly-adjusted values. Reseed is a one-frame pulse.
func DrawPanel(screenW float32, t Tuning) Tuning {
	panelX := screenW - panelWidth - 10
	panelY := float32(10)

	rl.DrawText("Tuning", int32(panelX), int32(panelY), 20, rl.DarkGray)
	panelY += 30

	t.Gravity = slider(panelX, &panelY, "Gravity", t.Gravity, 0, 30)
	t.Drag = slider(panelX, &panelY, "Drag", t.Drag, 0.8, 0.999)
	t.ObstacleRadius = slider(panelX, &panelY, "Deflector radius", t.ObstacleRadius, 1, 30)
	t.GrowthSpeed = slider(panelX, &panelY, "Growth speed", t.GrowthSpeed, 1, 60)

	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 100, Height: 28}, pauseLabel(t.Paused)) {
		t.Paused = !t.Paused
	}
	t.Reseed = gui.Button(rl.Rectangle{X: panelX + 110, Y: panelY, Width: 100, Height: 28}, "Reseed")

	return t
}

func slider(x float32, y *float32, label string, value, min, max float32) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: sliderWidth, Height: 20},
		fmt.Sprintf("%g", min), fmt.Sprintf("%g", max),
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf("%.2f", v), int32(x+sliderWidth+8), int32(*y+2), 16, rl.DarkGray)
	*y += 32
	return v
}

func pauseLabel(paused bool) string {
	if paused {
		return "Resume"
	}
	return "Pause"
}
