package nav

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/s1"

	"github.com/seqsense/camnav/mat"
)

const (
	defaultHorizontalSpeed = 0.1 * s1.Degree
	defaultVerticalSpeed   = 0.15 * s1.Degree

	// MaxPitch is the pitch limit of rotations in both directions.
	MaxPitch = 89 * s1.Degree
)

// RotationEngine orbits the camera around a pivot or turns it in place.
type RotationEngine struct {
	clamp    Clamp
	frame    Frame
	orienter Orienter

	// HorizontalSpeed and VerticalSpeed are the angles per pixel of pointer
	// motion.
	HorizontalSpeed s1.Angle
	VerticalSpeed   s1.Angle

	prev    ViewPoint
	hasPrev bool
}

func NewRotationEngine(orienter Orienter, clamp Clamp, frame Frame) *RotationEngine {
	return &RotationEngine{
		clamp:           clamp,
		frame:           frame,
		orienter:        orienter,
		HorizontalSpeed: defaultHorizontalSpeed,
		VerticalSpeed:   defaultVerticalSpeed,
	}
}

// Reset forgets the previous pointer position so that the next absolute
// rotation only calibrates.
func (r *RotationEngine) Reset() {
	r.hasPrev = false
}

func (r *RotationEngine) delta(p ViewPoint) (dx, dy float64, ok bool) {
	if !r.hasPrev {
		r.prev, r.hasPrev = p, true
		return 0, 0, false
	}
	dx, dy = p.X-r.prev.X, p.Y-r.prev.Y
	r.prev = p
	return dx, dy, true
}

// angles converts pointer motion into yaw and pitch steps. The pitch step is
// shrunk to keep the result within MaxPitch.
func (r *RotationEngine) angles(cam Camera, dx, dy float64) (dYaw, dPitch s1.Angle) {
	dYaw = s1.Angle(dx * float64(r.HorizontalSpeed))
	dPitch = s1.Angle(-dy * float64(r.VerticalSpeed))
	switch pitch := cam.Pitch + dPitch; {
	case pitch > MaxPitch:
		dPitch = MaxPitch - cam.Pitch
	case pitch < -MaxPitch:
		dPitch = -MaxPitch - cam.Pitch
	}
	return dYaw, dPitch
}

// RotateAroundPivot orbits by the pointer motion since the previous call.
func (r *RotationEngine) RotateAroundPivot(cam Camera, pivot mgl64.Vec3, p ViewPoint) (Camera, bool) {
	dx, dy, ok := r.delta(p)
	if !ok {
		return cam, false
	}
	return r.RotateAroundPivotBy(cam, pivot, dx, dy)
}

// RotateAroundPivotBy orbits by a relative pointer motion in pixels.
// ok is false if the result is out of bounds or the rotation axis is
// degenerate.
func (r *RotationEngine) RotateAroundPivotBy(cam Camera, pivot mgl64.Vec3, dx, dy float64) (Camera, bool) {
	if dx == 0 && dy == 0 {
		return cam, false
	}
	dYaw, dPitch := r.angles(cam, dx, dy)
	up := r.frame.Up(cam.Eye)
	left, ok := mat.Normalize(up.Cross(cam.Forward))
	if !ok {
		// Looking straight along up: fall back to the camera's own axes.
		if left, ok = mat.Normalize(cam.Up.Cross(cam.Forward)); !ok {
			return cam, false
		}
	}

	v := cam.Eye.Sub(pivot)
	v = mat.RotateAround(v, up, -dYaw.Radians())
	left = mat.RotateAround(left, up, -dYaw.Radians())
	v = mat.RotateAround(v, left, -dPitch.Radians())

	eye := pivot.Add(v)
	if !r.clamp.Contains(eye) {
		return cam, false
	}
	return r.orienter.LookFrom(eye, cam.Yaw+dYaw, cam.Pitch+dPitch, 0), true
}

// RotateSelf turns the camera in place by the pointer motion since the
// previous call.
func (r *RotationEngine) RotateSelf(cam Camera, p ViewPoint) (Camera, bool) {
	dx, dy, ok := r.delta(p)
	if !ok {
		return cam, false
	}
	return r.RotateSelfBy(cam, dx, dy)
}

func (r *RotationEngine) RotateSelfBy(cam Camera, dx, dy float64) (Camera, bool) {
	if dx == 0 && dy == 0 {
		return cam, false
	}
	dYaw, dPitch := r.angles(cam, dx, dy)
	return r.orienter.LookFrom(cam.Eye, cam.Yaw+dYaw, cam.Pitch+dPitch, 0), true
}
