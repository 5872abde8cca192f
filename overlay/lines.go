// Package overlay converts navigation and box primitives into screen space
// line segments drawn on top of the scene.
package overlay

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/seqsense/camnav/mat"
	"github.com/seqsense/camnav/nav"
)

const near = 1e-3

type Color [4]float32

var (
	ColorBox        = Color{0.8, 0.8, 0.8, 1}
	ColorBoxFocused = Color{1, 0.9, 0.2, 1}
	ColorPolyline   = Color{0.3, 1, 0.3, 1}
	ColorGrid       = Color{0.4, 0.4, 0.4, 0.6}
)

var anchorColors = map[nav.NavigationType]Color{
	nav.Pan:                 {0.2, 0.8, 1, 1},
	nav.Rotation:            {1, 0.6, 0.1, 1},
	nav.Zoom:                {0.3, 1, 0.3, 1},
	nav.FirstPersonRotation: {1, 0.3, 1, 1},
}

// Lines collects colored segments in normalized device coordinates as seen
// by Camera. It implements nav.Canvas.
type Lines struct {
	Camera nav.Camera
	Size   nav.ViewSize

	// Pos holds x and y, Col holds r, g, b and a of each vertex.
	Pos []float32
	Col []float32
}

// Reset drops the collected segments and sets the view.
func (l *Lines) Reset(cam nav.Camera, size nav.ViewSize) {
	l.Camera, l.Size = cam, size
	l.Pos = l.Pos[:0]
	l.Col = l.Col[:0]
}

// Len returns the number of vertices.
func (l *Lines) Len() int {
	return len(l.Pos) / 2
}

// Segment adds the part of a-b in front of the camera. It returns false if
// nothing is visible.
func (l *Lines) Segment(a, b mgl64.Vec3, c Color) bool {
	za := a.Sub(l.Camera.Eye).Dot(l.Camera.Forward)
	zb := b.Sub(l.Camera.Eye).Dot(l.Camera.Forward)
	switch {
	case za < near && zb < near:
		return false
	case za < near:
		a = mat.Lerp(a, b, (near-za)/(zb-za))
	case zb < near:
		b = mat.Lerp(b, a, (near-zb)/(za-zb))
	}
	pa, ok := l.Camera.Project(a, l.Size)
	if !ok {
		return false
	}
	pb, ok := l.Camera.Project(b, l.Size)
	if !ok {
		return false
	}
	l.vertex(pa, c)
	l.vertex(pb, c)
	return true
}

func (l *Lines) vertex(p nav.ViewPoint, c Color) {
	l.Pos = append(l.Pos,
		float32(p.X/l.Size.Width*2-1),
		float32(1-p.Y/l.Size.Height*2),
	)
	l.Col = append(l.Col, c[:]...)
}

// DrawAnchor draws three world axis aligned strokes of length 2*size
// crossing at p.
func (l *Lines) DrawAnchor(p mgl64.Vec3, size float64, t nav.NavigationType) {
	c, ok := anchorColors[t]
	if !ok {
		c = ColorBox
	}
	for _, axis := range []mgl64.Vec3{mat.UnitX, mat.UnitY, mat.UnitZ} {
		d := axis.Mul(size)
		l.Segment(p.Sub(d), p.Add(d), c)
	}
}

// DrawBox draws the 12 edges of a box given by corners whose indices
// differ in one bit along each edge.
func (l *Lines) DrawBox(corners [8]mgl64.Vec3, focused bool) {
	c := ColorBox
	if focused {
		c = ColorBoxFocused
	}
	for i := range corners {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				l.Segment(corners[i], corners[i|bit], c)
			}
		}
	}
}

func (l *Lines) DrawPolyline(points []mgl64.Vec3) {
	for i := 1; i < len(points); i++ {
		l.Segment(points[i-1], points[i], ColorPolyline)
	}
}

// DrawGrid draws a square grid on the z=0 plane.
func (l *Lines) DrawGrid(half, step float64) {
	if step <= 0 {
		return
	}
	for v := -half; v <= half+step/2; v += step {
		l.Segment(mgl64.Vec3{v, -half, 0}, mgl64.Vec3{v, half, 0}, ColorGrid)
		l.Segment(mgl64.Vec3{-half, v, 0}, mgl64.Vec3{half, v, 0}, ColorGrid)
	}
}
