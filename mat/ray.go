package mat

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// IntersectPlane returns the hit point of the ray and the plane through point
// with the given normal. Hits behind the origin are not reported.
func (r Ray) IntersectPlane(point, normal mgl64.Vec3) (mgl64.Vec3, bool) {
	denom := r.Dir.Dot(normal)
	if math.Abs(denom) < epsilon {
		return mgl64.Vec3{}, false
	}
	t := point.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return r.At(t), true
}

// IntersectRect intersects the ray with the parallelogram spanned by u and v
// from corner.
func (r Ray) IntersectRect(corner, u, v mgl64.Vec3) (mgl64.Vec3, bool) {
	p, ok := r.IntersectPlane(corner, u.Cross(v))
	if !ok {
		return mgl64.Vec3{}, false
	}
	rel := p.Sub(corner)
	s := rel.Dot(u) / u.LenSqr()
	t := rel.Dot(v) / v.LenSqr()
	if s < 0 || 1 < s || t < 0 || 1 < t {
		return mgl64.Vec3{}, false
	}
	return p, true
}

// ClosestOnLine returns the point on the line through a along dir closest to
// the ray, and the line parameter of that point.
func (r Ray) ClosestOnLine(a, dir mgl64.Vec3) (mgl64.Vec3, float64, bool) {
	w := r.Origin.Sub(a)
	b := r.Dir.Dot(dir)
	dd := dir.Dot(dir)
	rr := r.Dir.Dot(r.Dir)
	denom := dd*rr - b*b
	if math.Abs(denom) < epsilon {
		return mgl64.Vec3{}, 0, false
	}
	t := (rr*dir.Dot(w) - b*r.Dir.Dot(w)) / denom
	return a.Add(dir.Mul(t)), t, true
}
