package box

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/seqsense/camnav/event"
	"github.com/seqsense/camnav/mat"
)

// minHeight is the smallest extrusion accepted for the fourth point.
const minHeight = 1e-9

// Builder creates a box from four points: the first edge, a point giving the
// rectangle width and a point giving the height.
type Builder struct {
	BoxCreated event.Emitter[OrientedBox]

	points []mgl64.Vec3
}

func (b *Builder) Len() int {
	return len(b.points)
}

func (b *Builder) Points() []mgl64.Vec3 {
	return b.points
}

func (b *Builder) Reset() {
	b.points = b.points[:0]
}

// Add commits p. Points not extending the shape to a new dimension are
// refused. The box is emitted and the builder reset after the fourth point.
func (b *Builder) Add(p mgl64.Vec3) bool {
	switch len(b.points) {
	case 1:
		if _, ok := mat.Normalize(p.Sub(b.points[0])); !ok {
			return false
		}
	case 2:
		rect := rectFrom3(b.points[0], b.points[1], p)
		if _, ok := mat.Normalize(rect[3].Sub(rect[0])); !ok {
			return false
		}
	}
	if len(b.points) < 3 {
		b.points = append(b.points, p)
		return true
	}
	box := boxFrom4(b.points[0], b.points[1], b.points[2], p)
	if box.Edge(Z).Len() < minHeight {
		return false
	}
	b.Reset()
	b.BoxCreated.Emit(box)
	return true
}

// Preview returns the outline of the shape with p as the next point.
func (b *Builder) Preview(p mgl64.Vec3) []mgl64.Vec3 {
	switch len(b.points) {
	case 0:
		return []mgl64.Vec3{p}
	case 1:
		return []mgl64.Vec3{b.points[0], p}
	case 2:
		rect := rectFrom3(b.points[0], b.points[1], p)
		return append(rect[:], rect[0])
	default:
		return Outline(boxFrom4(b.points[0], b.points[1], b.points[2], p))
	}
}

// Outline returns a polyline along the edges of b.
func Outline(b OrientedBox) []mgl64.Vec3 {
	c := b.Corners
	return []mgl64.Vec3{
		c[7], c[3], c[1], c[5], c[7],
		c[6], c[2], c[0], c[4], c[6],
		c[2], c[3], c[1], c[0], c[4], c[5],
	}
}

// rectFrom3 returns the rectangle with the edge p0-p1 reaching the line
// through p2 parallel to the edge.
func rectFrom3(p0, p1, p2 mgl64.Vec3) [4]mgl64.Vec3 {
	base := p1.Sub(p0)
	n := base.LenSqr()
	if n == 0 {
		panic(fmt.Sprintf("box: rectangle needs a non-degenerate edge, got %v-%v", p0, p1))
	}
	proj := p0.Add(base.Mul(base.Dot(p2.Sub(p0)) / n))
	perp := p2.Sub(proj)
	return [4]mgl64.Vec3{p0, p1, p1.Add(perp), p0.Add(perp)}
}

// boxFrom4 extrudes the rectangle of the first three points to the height of
// p3 over the rectangle plane.
func boxFrom4(p0, p1, p2, p3 mgl64.Vec3) OrientedBox {
	rect := rectFrom3(p0, p1, p2)
	dx, ok := mat.Normalize(rect[1].Sub(p0))
	if !ok {
		panic("box: box needs a non-degenerate edge")
	}
	dy, ok := mat.Normalize(rect[3].Sub(p0))
	if !ok {
		panic("box: box needs a non-degenerate rectangle")
	}
	dz := dx.Cross(dy)
	h := p3.Sub(p0).Dot(dz)
	if h < 0 {
		dz, h = dz.Mul(-1), -h
	}
	return NewOrientedBox(p0,
		[3]mgl64.Vec3{dx, dy, dz},
		[3]Interval{
			{Max: rect[1].Sub(p0).Len()},
			{Max: rect[3].Sub(p0).Len()},
			{Max: h},
		},
	)
}
