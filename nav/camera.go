// Package nav turns classified pointer, wheel and keyboard gestures into
// camera updates. Camera state is owned by the renderer: engines read a
// Camera value, compute a replacement and hand it back.
package nav

import (
	"errors"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/s1"

	"github.com/seqsense/camnav/mat"
)

// ErrOutOfBounds is returned by pickers when no surface is under the pointer.
var ErrOutOfBounds = errors.New("view point is out of bounds")

type Camera struct {
	Eye     mgl64.Vec3
	Forward mgl64.Vec3
	Up      mgl64.Vec3

	Yaw, Pitch, Roll s1.Angle
	FovY             s1.Angle
}

// Right returns the camera right vector, or false if forward and up are
// degenerate.
func (c Camera) Right() (mgl64.Vec3, bool) {
	return mat.Normalize(c.Forward.Cross(c.Up))
}

// ViewTangents returns the horizontal and vertical tangents of the angle
// between the forward axis and the ray through vp.
func (c Camera) ViewTangents(vp ViewPoint, size ViewSize) (tanX, tanY float64) {
	tanHalf := math.Tan(c.FovY.Radians() / 2)
	halfH := size.Height / 2
	return (vp.X - size.Width/2) / halfH * tanHalf, (halfH - vp.Y) / halfH * tanHalf
}

// Ray returns the normalized ray from the eye through vp.
func (c Camera) Ray(vp ViewPoint, size ViewSize) mat.Ray {
	right, _ := c.Right()
	tanX, tanY := c.ViewTangents(vp, size)
	dir := c.Forward.Add(right.Mul(tanX)).Add(c.Up.Mul(tanY))
	if d, ok := mat.Normalize(dir); ok {
		dir = d
	}
	return mat.Ray{Origin: c.Eye, Dir: dir}
}

// Project returns the view point of p. ok is false if p is not in front of
// the camera.
func (c Camera) Project(p mgl64.Vec3, size ViewSize) (ViewPoint, bool) {
	right, ok := c.Right()
	if !ok {
		return ViewPoint{}, false
	}
	d := p.Sub(c.Eye)
	z := d.Dot(c.Forward)
	if z <= 0 {
		return ViewPoint{}, false
	}
	tanHalf := math.Tan(c.FovY.Radians() / 2)
	halfH := size.Height / 2
	return ViewPoint{
		X: size.Width/2 + d.Dot(right)/(z*tanHalf)*halfH,
		Y: halfH - d.Dot(c.Up)/(z*tanHalf)*halfH,
	}, true
}

// Move is an animated camera transition.
type Move struct {
	Eye              mgl64.Vec3
	Yaw, Pitch, Roll s1.Angle
	Duration         time.Duration
}

// ViewPoint is a position in viewport pixels, origin at the top left.
type ViewPoint struct {
	X, Y float64
}

type ViewSize struct {
	Width, Height float64
}

func (s ViewSize) Center() ViewPoint {
	return ViewPoint{X: s.Width / 2, Y: s.Height / 2}
}

type Orienter interface {
	// LookFrom returns the camera at eye with the given orientation in the
	// local frame of eye.
	LookFrom(eye mgl64.Vec3, yaw, pitch, roll s1.Angle) Camera
}

type CameraHost interface {
	Orienter
	Camera() Camera
	SetCamera(Camera)
	Animate(Move)
}

type Picker interface {
	// ViewToWorld returns the closest surface point under p.
	ViewToWorld(p ViewPoint) (mgl64.Vec3, error)
}

type Scheduler interface {
	// RequestFrame calls fn once on the next display frame.
	RequestFrame(fn func(now time.Duration))
}

type PointerLocker interface {
	RequestPointerLock()
	ExitPointerLock()
}

type Viewport interface {
	ViewSize() ViewSize
}

type Renderer interface {
	CameraHost
	Picker
	Scheduler
	PointerLocker
	Viewport
}

// Canvas receives overlay primitives on draw.
type Canvas interface {
	DrawAnchor(p mgl64.Vec3, size float64, t NavigationType)
	DrawBox(corners [8]mgl64.Vec3, focused bool)
	DrawPolyline(points []mgl64.Vec3)
}
