package mat

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestRayIntersectPlane(t *testing.T) {
	testCases := map[string]struct {
		ray      Ray
		hit      bool
		expected mgl64.Vec3
	}{
		"Down": {
			ray:      Ray{Origin: mgl64.Vec3{1, 2, 10}, Dir: mgl64.Vec3{0, 0, -1}},
			hit:      true,
			expected: mgl64.Vec3{1, 2, 0},
		},
		"Slanted": {
			ray:      Ray{Origin: mgl64.Vec3{0, 0, 1}, Dir: mgl64.Vec3{1, 0, -1}},
			hit:      true,
			expected: mgl64.Vec3{1, 0, 0},
		},
		"Parallel": {
			ray: Ray{Origin: mgl64.Vec3{0, 0, 1}, Dir: mgl64.Vec3{1, 0, 0}},
		},
		"Behind": {
			ray: Ray{Origin: mgl64.Vec3{0, 0, 1}, Dir: mgl64.Vec3{0, 0, 1}},
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			p, ok := tt.ray.IntersectPlane(mgl64.Vec3{}, UnitZ)
			if ok != tt.hit {
				t.Fatalf("Expected hit=%v, got %v", tt.hit, ok)
			}
			if ok && !Near(p, tt.expected, 1e-9) {
				t.Errorf("Expected %v, got %v", tt.expected, p)
			}
		})
	}
}

func TestRayIntersectRect(t *testing.T) {
	corner := mgl64.Vec3{0, 0, 0}
	u := mgl64.Vec3{2, 0, 0}
	v := mgl64.Vec3{0, 1, 0}

	in := Ray{Origin: mgl64.Vec3{1.5, 0.5, 3}, Dir: mgl64.Vec3{0, 0, -1}}
	if p, ok := in.IntersectRect(corner, u, v); !ok {
		t.Error("Ray through the rectangle must hit")
	} else if !Near(p, mgl64.Vec3{1.5, 0.5, 0}, 1e-9) {
		t.Errorf("Unexpected hit point %v", p)
	}

	out := Ray{Origin: mgl64.Vec3{2.5, 0.5, 3}, Dir: mgl64.Vec3{0, 0, -1}}
	if _, ok := out.IntersectRect(corner, u, v); ok {
		t.Error("Ray outside of the rectangle must not hit")
	}
}

func TestRayClosestOnLine(t *testing.T) {
	r := Ray{Origin: mgl64.Vec3{0, -5, 3}, Dir: mgl64.Vec3{0, 1, 0}}
	p, tt, ok := r.ClosestOnLine(mgl64.Vec3{}, UnitZ)
	if !ok {
		t.Fatal("Skew lines must have a closest point")
	}
	if !Near(p, mgl64.Vec3{0, 0, 3}, 1e-9) || tt < 2.999 || 3.001 < tt {
		t.Errorf("Expected (0, 0, 3) at t=3, got %v at t=%f", p, tt)
	}
}
