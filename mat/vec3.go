// Package mat provides the vector and ray helpers shared by the navigation and
// box editing engines. Vectors are mgl64.Vec3 values.
package mat

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	pcmat "github.com/seqsense/pcgol/mat"
)

const epsilon = 1e-12

var (
	UnitX = mgl64.Vec3{1, 0, 0}
	UnitY = mgl64.Vec3{0, 1, 0}
	UnitZ = mgl64.Vec3{0, 0, 1}
)

// Normalize returns the unit vector of v.
// ok is false if v is too short to have a direction.
func Normalize(v mgl64.Vec3) (mgl64.Vec3, bool) {
	l := v.Len()
	if l < epsilon || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

func Distance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}

// Near reports whether a and b are within tol of each other.
func Near(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func Lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// ProjectOnPlane removes the component of v along normal.
func ProjectOnPlane(v, normal mgl64.Vec3) mgl64.Vec3 {
	n, ok := Normalize(normal)
	if !ok {
		return v
	}
	return v.Sub(n.Mul(v.Dot(n)))
}

// RotateAround rotates v by angle (radians, right-handed) around axis.
// v is returned unchanged if axis is degenerate.
func RotateAround(v, axis mgl64.Vec3, angle float64) mgl64.Vec3 {
	a, ok := Normalize(axis)
	if !ok {
		return v
	}
	return mgl64.QuatRotate(angle, a).Rotate(v)
}

func RotateAroundPoint(p, center, axis mgl64.Vec3, angle float64) mgl64.Vec3 {
	return center.Add(RotateAround(p.Sub(center), axis, angle))
}

func Min(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2])}
}

func Max(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2])}
}

// Float32 converts v for float32 consumers (shaders, point clouds).
func Float32(v mgl64.Vec3) pcmat.Vec3 {
	return pcmat.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

func Float64(v pcmat.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}
