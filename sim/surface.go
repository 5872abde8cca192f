package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/seqsense/camnav/mat"
)

// Surface is the pickable scene.
type Surface interface {
	Intersect(r mat.Ray) (mgl64.Vec3, bool)
}

type Plane struct {
	Point, Normal mgl64.Vec3
}

// Ground is the z=0 plane.
var Ground = Plane{Normal: mat.UnitZ}

func (p Plane) Intersect(r mat.Ray) (mgl64.Vec3, bool) {
	return r.IntersectPlane(p.Point, p.Normal)
}

type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Intersect returns the first hit in front of the ray origin.
func (s Sphere) Intersect(r mat.Ray) (mgl64.Vec3, bool) {
	oc := r.Origin.Sub(s.Center)
	a := r.Dir.Dot(r.Dir)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - a*c
	if a == 0 || disc < 0 {
		return mgl64.Vec3{}, false
	}
	sq := math.Sqrt(disc)
	for _, t := range []float64{(-b - sq) / a, (-b + sq) / a} {
		if t >= 0 {
			return r.At(t), true
		}
	}
	return mgl64.Vec3{}, false
}
