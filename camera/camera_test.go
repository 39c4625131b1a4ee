package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(0, 10, 0, 100)

	if cam.TargetX != 0 || cam.TargetY != 10 || cam.TargetZ != 0 {
		t.Errorf("expected target (0, 10, 0), got (%f, %f, %f)",
			cam.TargetX, cam.TargetY, cam.TargetZ)
	}
	if cam.Distance != 100 {
		t.Errorf("expected distance 100, got %f", cam.Distance)
	}
	if cam.MinDistance >= cam.MaxDistance {
		t.Errorf("expected MinDistance < MaxDistance, got %f >= %f",
			cam.MinDistance, cam.MaxDistance)
	}
}

func TestPositionDistance(t *testing.T) {
	cam := New(0, 0, 0, 50)

	// Eye should sit exactly Distance from the target regardless of angles
	angles := []struct{ yaw, pitch float32 }{
		{0, 0},
		{math.Pi / 2, 0.25},
		{math.Pi, -0.5},
		{3, 1.2},
	}

	for _, a := range angles {
		cam.Yaw = a.yaw
		cam.Pitch = a.pitch
		x, y, z := cam.Position()
		d := math.Sqrt(float64(x*x + y*y + z*z))
		if math.Abs(d-50) > 0.01 {
			t.Errorf("yaw=%f pitch=%f: distance %f, want 50", a.yaw, a.pitch, d)
		}
	}
}

func TestPositionAtHorizon(t *testing.T) {
	cam := New(0, 0, 0, 10)
	cam.Yaw = 0
	cam.Pitch = 0

	// Zero pitch and yaw places the eye on the +X axis at target height
	x, y, z := cam.Position()
	if math.Abs(float64(x-10)) > 0.01 || math.Abs(float64(y)) > 0.01 || math.Abs(float64(z)) > 0.01 {
		t.Errorf("expected eye (10, 0, 0), got (%f, %f, %f)", x, y, z)
	}
}

func TestPositionOffsetTarget(t *testing.T) {
	cam := New(5, 20, -3, 10)
	cam.Yaw = 0
	cam.Pitch = 0

	x, y, z := cam.Position()
	if math.Abs(float64(x-15)) > 0.01 || math.Abs(float64(y-20)) > 0.01 || math.Abs(float64(z+3)) > 0.01 {
		t.Errorf("expected eye (15, 20, -3), got (%f, %f, %f)", x, y, z)
	}
}

func TestOrbitClampsPitch(t *testing.T) {
	cam := New(0, 0, 0, 10)

	cam.Orbit(0, 10) // Way past the pole
	if cam.Pitch != cam.MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", cam.MaxPitch, cam.Pitch)
	}

	cam.Orbit(0, -20)
	if cam.Pitch != cam.MinPitch {
		t.Errorf("expected pitch clamped to %f, got %f", cam.MinPitch, cam.Pitch)
	}
}

func TestOrbitWrapsYaw(t *testing.T) {
	cam := New(0, 0, 0, 10)
	cam.Yaw = 0

	cam.Orbit(7, 0) // More than 2*pi
	if cam.Yaw > 2*math.Pi || cam.Yaw < -2*math.Pi {
		t.Errorf("expected yaw within one revolution, got %f", cam.Yaw)
	}
}

func TestDistanceClamp(t *testing.T) {
	cam := New(0, 0, 0, 100)

	cam.SetDistance(1) // Below min
	if cam.Distance != cam.MinDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MinDistance, cam.Distance)
	}

	cam.SetDistance(10000) // Above max
	if cam.Distance != cam.MaxDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MaxDistance, cam.Distance)
	}
}

func TestZoomBy(t *testing.T) {
	cam := New(0, 0, 0, 100)

	cam.ZoomBy(0.5)
	if math.Abs(float64(cam.Distance-50)) > 0.01 {
		t.Errorf("expected distance 50, got %f", cam.Distance)
	}
}

func TestReset(t *testing.T) {
	cam := New(0, 0, 0, 100)
	wantYaw, wantPitch, wantDist := cam.Yaw, cam.Pitch, cam.Distance

	cam.Orbit(1.5, 0.5)
	cam.SetDistance(200)
	cam.Reset()

	if cam.Yaw != wantYaw || cam.Pitch != wantPitch || cam.Distance != wantDist {
		t.Errorf("expected pose (%f, %f, %f) after reset, got (%f, %f, %f)",
			wantYaw, wantPitch, wantDist, cam.Yaw, cam.Pitch, cam.Distance)
	}
}
