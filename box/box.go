// Package box edits oriented boxes: decomposition into origin, axes and
// intervals, face resizing, and construction from four picked points.
package box

import (
	"github.com/go-gl/mathgl/mgl64"
	pcmat "github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"

	"github.com/seqsense/camnav/mat"
)

type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}
	return "unknown"
}

// bit is the corner index bit selecting the min side of the axis.
func (a Axis) bit() int {
	return 4 >> uint(a)
}

// originCorner is the corner at the min side of every axis.
const originCorner = 7

type Interval struct {
	Min, Max float64
}

func (i Interval) Width() float64 {
	return i.Max - i.Min
}

// OrientedBox is a box given by its corners. Corner i is on the min side of
// X if i&4 is set, of Y if i&2 is set and of Z if i&1 is set, so corner 7 is
// the origin and corners 3, 5 and 6 are its neighbours along X, Y and Z.
type OrientedBox struct {
	Corners [8]mgl64.Vec3
}

// NewOrientedBox builds the box spanned from origin along dirs over the
// intervals.
func NewOrientedBox(origin mgl64.Vec3, dirs [3]mgl64.Vec3, iv [3]Interval) OrientedBox {
	var b OrientedBox
	for i := range b.Corners {
		p := origin
		for a := X; a <= Z; a++ {
			v := iv[a].Max
			if i&a.bit() != 0 {
				v = iv[a].Min
			}
			p = p.Add(dirs[a].Mul(v))
		}
		b.Corners[i] = p
	}
	return b
}

func (b OrientedBox) Origin() mgl64.Vec3 {
	return b.Corners[originCorner]
}

// Edge returns the edge from the origin along a.
func (b OrientedBox) Edge(a Axis) mgl64.Vec3 {
	return b.Corners[originCorner^a.bit()].Sub(b.Corners[originCorner])
}

func (b OrientedBox) Center() mgl64.Vec3 {
	var c mgl64.Vec3
	for _, p := range b.Corners {
		c = c.Add(p)
	}
	return c.Mul(1.0 / 8)
}

// Decompose returns the origin, unit axes and intervals of the box with the
// origin at the min corner. ok is false if an edge is degenerate.
func (b OrientedBox) Decompose() (origin mgl64.Vec3, dirs [3]mgl64.Vec3, iv [3]Interval, ok bool) {
	origin = b.Origin()
	for a := X; a <= Z; a++ {
		e := b.Edge(a)
		if dirs[a], ok = mat.Normalize(e); !ok {
			return
		}
		iv[a] = Interval{Min: 0, Max: e.Len()}
	}
	return origin, dirs, iv, true
}

// Contains reports whether p is inside the box or on its surface.
func (b OrientedBox) Contains(p mgl64.Vec3) bool {
	m := mgl64.Mat3FromCols(b.Edge(X), b.Edge(Y), b.Edge(Z))
	if m.Det() == 0 {
		return false
	}
	l := m.Inv().Mul3x1(p.Sub(b.Origin()))
	const tol = 1e-9
	for _, v := range l {
		if v < -tol || 1+tol < v {
			return false
		}
	}
	return true
}

// SelectMatrix returns the transform mapping the box onto the unit cube.
func (b OrientedBox) SelectMatrix() pcmat.Mat4 {
	v0 := mat.Float32(b.Edge(X))
	v1 := mat.Float32(b.Edge(Y))
	v2 := mat.Float32(b.Edge(Z))
	o := mat.Float32(b.Origin())
	return (pcmat.Mat4{
		v0[0], v0[1], v0[2], 0,
		v1[0], v1[1], v1[2], 0,
		v2[0], v2[1], v2[2], 0,
		0, 0, 0, 1,
	}).InvAffine().
		MulAffine(pcmat.Translate(-o[0], -o[1], -o[2]))
}

// SelectPoints returns the indices of the points of pp inside the box.
func (b OrientedBox) SelectPoints(pp *pc.PointCloud) ([]int, error) {
	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, err
	}
	m := b.SelectMatrix()
	var selected []int
	for i := 0; it.IsValid(); i++ {
		if inUnitCube(m.TransformAffine(it.Vec3())) {
			selected = append(selected, i)
		}
		it.Incr()
	}
	return selected, nil
}

func inUnitCube(p pcmat.Vec3) bool {
	return !(p[0] < 0 || 1 < p[0] ||
		p[1] < 0 || 1 < p[1] ||
		p[2] < 0 || 1 < p[2])
}

// Face returns the axis of face f and whether it is the max side.
// Faces 0 and 1 are the X min and max faces, 2 and 3 Y, 4 and 5 Z.
func Face(f int) (a Axis, max bool) {
	return Axis(f / 2), f%2 == 1
}

// FaceCorners returns the corner indices of face f, starting at the corner
// on the min side of both other axes.
func FaceCorners(f int) [4]int {
	a, max := Face(f)
	base := originCorner
	if max {
		base ^= a.bit()
	}
	u, v := (a+1)%3, (a+2)%3
	return [4]int{base, base ^ u.bit(), base ^ u.bit() ^ v.bit(), base ^ v.bit()}
}

// FaceCenter returns the center of face f.
func (b OrientedBox) FaceCenter(f int) mgl64.Vec3 {
	var c mgl64.Vec3
	for _, i := range FaceCorners(f) {
		c = c.Add(b.Corners[i])
	}
	return c.Mul(0.25)
}

// PickFace returns the face nearest to the ray origin hit by r.
func (b OrientedBox) PickFace(r mat.Ray) (face int, p mgl64.Vec3, ok bool) {
	best := -1.0
	for f := 0; f < 6; f++ {
		cs := FaceCorners(f)
		c := b.Corners[cs[0]]
		hit, ok := r.IntersectRect(c, b.Corners[cs[1]].Sub(c), b.Corners[cs[3]].Sub(c))
		if !ok {
			continue
		}
		if d := mat.Distance(hit, r.Origin); best < 0 || d < best {
			best, face, p = d, f, hit
		}
	}
	return face, p, best >= 0
}
