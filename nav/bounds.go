package nav

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/seqsense/pcgol/pc"

	"github.com/seqsense/camnav/mat"
)

// Bounds is an axis aligned box.
type Bounds struct {
	Min, Max mgl64.Vec3
}

// BoundsFromCloud returns the bounds of the points of pp.
func BoundsFromCloud(pp *pc.PointCloud) (Bounds, error) {
	it, err := pp.Vec3Iterator()
	if err != nil {
		return Bounds{}, err
	}
	min, max, err := pc.MinMaxVec3(it)
	if err != nil {
		return Bounds{}, err
	}
	return Bounds{Min: mat.Float64(min), Max: mat.Float64(max)}, nil
}

// Padded returns b grown by m on every side.
func (b Bounds) Padded(m float64) Bounds {
	pad := mgl64.Vec3{m, m, m}
	return Bounds{Min: b.Min.Sub(pad), Max: b.Max.Add(pad)}
}

func Intersection(a, b Bounds) Bounds {
	return Bounds{
		Min: mat.Max(a.Min, b.Min),
		Max: mat.Min(a.Max, b.Max),
	}
}

func (b Bounds) IsValid() bool {
	return !(b.Min[0] > b.Max[0] ||
		b.Min[1] > b.Max[1] ||
		b.Min[2] > b.Max[2])
}

func (b Bounds) IsInside(v mgl64.Vec3) bool {
	return !(v[0] < b.Min[0] ||
		v[1] < b.Min[1] ||
		v[2] < b.Min[2] ||
		b.Max[0] < v[0] ||
		b.Max[1] < v[1] ||
		b.Max[2] < v[2])
}

func (b Bounds) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b Bounds) Diagonal() float64 {
	return b.Max.Sub(b.Min).Len()
}

// Clamp decides whether a camera eye position is allowed.
type Clamp interface {
	Contains(p mgl64.Vec3) bool
	// Center is the fallback anchor. ok is false for an unbounded clamp.
	Center() (c mgl64.Vec3, ok bool)
}

// NewClamp converts b into a clamp in frame f. Flat bounds are used as is.
// Geocentric bounds become a topocentric box at the bounds center with a half
// extent of half the diagonal on every axis. A nil b accepts everything.
func NewClamp(b *Bounds, f Frame) Clamp {
	if b == nil {
		return unbounded{}
	}
	if f.Kind == FrameFlat {
		return flatClamp{b: *b}
	}
	c := b.Center()
	half := b.Diagonal() / 2
	return topocentricClamp{
		topo: NewTopocentric(c),
		b: Bounds{
			Min: mgl64.Vec3{-half, -half, -half},
			Max: mgl64.Vec3{half, half, half},
		},
	}
}

type unbounded struct{}

func (unbounded) Contains(p mgl64.Vec3) bool {
	return !math.IsNaN(p[0]) && !math.IsNaN(p[1]) && !math.IsNaN(p[2])
}

func (unbounded) Center() (mgl64.Vec3, bool) {
	return mgl64.Vec3{}, false
}

type flatClamp struct {
	b Bounds
}

func (c flatClamp) Contains(p mgl64.Vec3) bool {
	return c.b.IsInside(p)
}

func (c flatClamp) Center() (mgl64.Vec3, bool) {
	return c.b.Center(), true
}

type topocentricClamp struct {
	topo Topocentric
	b    Bounds
}

func (c topocentricClamp) Contains(p mgl64.Vec3) bool {
	return c.b.IsInside(c.topo.ToLocal(p))
}

func (c topocentricClamp) Center() (mgl64.Vec3, bool) {
	return c.topo.Origin, true
}
