package mat

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNormalize(t *testing.T) {
	testCases := map[string]struct {
		in       mgl64.Vec3
		expected mgl64.Vec3
		ok       bool
	}{
		"Axis":     {in: mgl64.Vec3{0, 0, 5}, expected: mgl64.Vec3{0, 0, 1}, ok: true},
		"Diagonal": {in: mgl64.Vec3{3, 4, 0}, expected: mgl64.Vec3{0.6, 0.8, 0}, ok: true},
		"Zero":     {in: mgl64.Vec3{}, ok: false},
		"NaN":      {in: mgl64.Vec3{math.NaN(), 0, 0}, ok: false},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			v, ok := Normalize(tt.in)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && !Near(v, tt.expected, 1e-9) {
				t.Errorf("Expected %v, got %v", tt.expected, v)
			}
		})
	}
}

func TestNear(t *testing.T) {
	testCases := map[string]struct {
		a, b mgl64.Vec3
		near bool
	}{
		"NoiseAroundZero": {a: mgl64.Vec3{2.2e-16, 1, 0}, b: mgl64.Vec3{0, 1, 0}, near: true},
		"NegativeNoise":   {a: mgl64.Vec3{-5, -6.1e-16, 10}, b: mgl64.Vec3{-5, 0, 10}, near: true},
		"Far":             {a: mgl64.Vec3{0, 0, 1e-3}, b: mgl64.Vec3{}, near: false},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			if n := Near(tt.a, tt.b, 1e-6); n != tt.near {
				t.Errorf("Expected %v, got %v", tt.near, n)
			}
		})
	}
}

func TestRotateAround(t *testing.T) {
	v := RotateAround(UnitX, UnitZ, math.Pi/2)
	if !Near(v, UnitY, 1e-9) {
		t.Errorf("X rotated 90deg around Z must be Y, got %v", v)
	}
	v = RotateAroundPoint(mgl64.Vec3{2, 1, 0}, mgl64.Vec3{1, 1, 0}, UnitZ, math.Pi)
	if !Near(v, mgl64.Vec3{0, 1, 0}, 1e-9) {
		t.Errorf("Expected (0, 1, 0), got %v", v)
	}
	v = RotateAround(UnitX, mgl64.Vec3{}, 1)
	if v != UnitX {
		t.Errorf("Degenerate axis must not rotate, got %v", v)
	}
}

func TestProjectOnPlane(t *testing.T) {
	v := ProjectOnPlane(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 0, 2})
	if !Near(v, mgl64.Vec3{1, 2, 0}, 1e-9) {
		t.Errorf("Expected (1, 2, 0), got %v", v)
	}
}

func TestFloat32(t *testing.T) {
	in := mgl64.Vec3{1.5, -2.25, 3}
	out := Float64(Float32(in))
	if out != in {
		t.Errorf("Expected %v, got %v", in, out)
	}
}
