package nav

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/seqsense/camnav/mat"
)

type FrameKind int

const (
	// FrameFlat is a local cartesian world with +Z up.
	FrameFlat FrameKind = iota
	// FrameSpherical is an earth centered world where up points away from
	// the origin.
	FrameSpherical
)

func (k FrameKind) String() string {
	switch k {
	case FrameFlat:
		return "flat"
	case FrameSpherical:
		return "spherical"
	}
	return "unknown"
}

// Frame gives the local up and right directions of the world.
type Frame struct {
	Kind FrameKind
}

func (f Frame) Up(p mgl64.Vec3) mgl64.Vec3 {
	if f.Kind == FrameSpherical {
		if up, ok := mat.Normalize(p); ok {
			return up
		}
	}
	return mat.UnitZ
}

// Right returns the horizontal right vector for a camera at p looking along
// forward. ok is false when forward is parallel to up.
func (f Frame) Right(p, forward mgl64.Vec3) (mgl64.Vec3, bool) {
	return mat.Normalize(forward.Cross(f.Up(p)))
}

// Topocentric is a local east/north/up frame at Origin.
type Topocentric struct {
	Origin mgl64.Vec3
	East   mgl64.Vec3
	North  mgl64.Vec3
	Up     mgl64.Vec3
}

func NewTopocentric(origin mgl64.Vec3) Topocentric {
	up, ok := mat.Normalize(origin)
	if !ok {
		return Topocentric{Origin: origin, East: mat.UnitX, North: mat.UnitY, Up: mat.UnitZ}
	}
	east, ok := mat.Normalize(mat.UnitZ.Cross(up))
	if !ok {
		// At a pole east is arbitrary.
		east = mat.UnitX
	}
	return Topocentric{
		Origin: origin,
		East:   east,
		North:  up.Cross(east),
		Up:     up,
	}
}

func (t Topocentric) ToLocal(p mgl64.Vec3) mgl64.Vec3 {
	d := p.Sub(t.Origin)
	return mgl64.Vec3{d.Dot(t.East), d.Dot(t.North), d.Dot(t.Up)}
}

func (t Topocentric) ToWorld(l mgl64.Vec3) mgl64.Vec3 {
	return t.Origin.
		Add(t.East.Mul(l[0])).
		Add(t.North.Mul(l[1])).
		Add(t.Up.Mul(l[2]))
}
