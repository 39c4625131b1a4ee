package systems

import (
	"math"
	"testing"
)

const vecEps = 1e-5

func vecNear(a, b Vec3) bool {
	return math.Abs(float64(a.X-b.X)) < vecEps &&
		math.Abs(float64(a.Y-b.Y)) < vecEps &&
		math.Abs(float64(a.Z-b.Z)) < vecEps
}

// TestRotateZ verifies planar rotation about the z axis.
func TestRotateZ(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec3
		angle float32
		want  Vec3
	}{
		{
			name:  "quarter turn",
			v:     Vec3{X: 1},
			angle: math.Pi / 2,
			want:  Vec3{Y: 1},
		},
		{
			name:  "half turn",
			v:     Vec3{X: 1},
			angle: math.Pi,
			want:  Vec3{X: -1},
		},
		{
			name:  "negative quarter turn",
			v:     Vec3{Y: 1},
			angle: -math.Pi / 2,
			want:  Vec3{X: 1},
		},
		{
			name:  "z untouched",
			v:     Vec3{X: 1, Z: 5},
			angle: math.Pi / 2,
			want:  Vec3{Y: 1, Z: 5},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.v.RotateZ(tc.angle)
			if !vecNear(got, tc.want) {
				t.Errorf("RotateZ = %+v, want %+v", got, tc.want)
			}
		})
	}
}

// TestReflect verifies velocity reflection about a surface normal.
func TestReflect(t *testing.T) {
	tests := []struct {
		name   string
		v      Vec3
		normal Vec3
		want   Vec3
	}{
		{
			name:   "head-on bounce",
			v:      Vec3{Y: -1},
			normal: Vec3{Y: 1},
			want:   Vec3{Y: 1},
		},
		{
			name:   "glancing hit keeps tangential component",
			v:      Vec3{X: 1, Y: -1},
			normal: Vec3{Y: 1},
			want:   Vec3{X: 1, Y: 1},
		},
		{
			name:   "parallel motion unchanged",
			v:      Vec3{X: 1},
			normal: Vec3{Y: 1},
			want:   Vec3{X: 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.v.Reflect(tc.normal)
			if !vecNear(got, tc.want) {
				t.Errorf("Reflect = %+v, want %+v", got, tc.want)
			}
		})
	}
}

// TestNormalized verifies unit scaling and the zero-vector guard.
func TestNormalized(t *testing.T) {
	got := Vec3{X: 3, Y: 4}.Normalized()
	if !vecNear(got, Vec3{X: 0.6, Y: 0.8}) {
		t.Errorf("Normalized = %+v, want {0.6 0.8 0}", got)
	}

	zero := Vec3{}.Normalized()
	if zero != (Vec3{}) {
		t.Errorf("Normalized zero vector = %+v, want zero", zero)
	}
}

// TestDotAndLength sanity-checks the scalar helpers against each other.
func TestDotAndLength(t *testing.T) {
	v := Vec3{X: 2, Y: -3, Z: 6}
	if got := v.Dot(v); got != v.LengthSq() {
		t.Errorf("Dot(v, v) = %f, want LengthSq %f", got, v.LengthSq())
	}
	if got := v.Length(); math.Abs(float64(got-7)) > vecEps {
		t.Errorf("Length = %f, want 7", got)
	}
}
