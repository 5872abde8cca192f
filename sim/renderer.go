// Package sim is an in-memory renderer with a manual clock. It implements
// nav.Renderer for tests and script replay.
package sim

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/s1"

	"github.com/seqsense/camnav/event"
	"github.com/seqsense/camnav/mat"
	"github.com/seqsense/camnav/nav"
)

const (
	defaultFPS  = 60
	defaultFovY = 60 * s1.Degree
)

// Renderer keeps a camera, a pickable surface, queued frame callbacks and a
// simulated pointer lock.
type Renderer struct {
	Size    nav.ViewSize
	Frame   nav.Frame
	Surface Surface
	FovY    s1.Angle
	FPS     int

	// DenyPointerLock makes lock requests fail silently.
	DenyPointerLock bool
	// LockChanged fires on the step after a lock request is granted or the
	// lock is released.
	LockChanged  event.Emitter[bool]
	LockRequests int

	// Moves records every animated move requested.
	Moves []nav.Move

	camera     nav.Camera
	now        time.Duration
	frames     []func(time.Duration)
	anim       *animation
	locked     bool
	lockQueued []bool
}

func New(size nav.ViewSize, frame nav.Frame, surface Surface) *Renderer {
	return &Renderer{
		Size:    size,
		Frame:   frame,
		Surface: surface,
		FovY:    defaultFovY,
		FPS:     defaultFPS,
	}
}

// LookFrom builds a camera at eye. Yaw is clockwise from local north, pitch
// is up from the local horizon.
func (r *Renderer) LookFrom(eye mgl64.Vec3, yaw, pitch, roll s1.Angle) nav.Camera {
	sy, cy := math.Sincos(yaw.Radians())
	sp, cp := math.Sincos(pitch.Radians())
	f := mgl64.Vec3{sy * cp, cy * cp, sp}
	right := mgl64.Vec3{cy, -sy, 0}
	up := right.Cross(f)
	if roll != 0 {
		up = mat.RotateAround(up, f, roll.Radians())
	}

	basis := nav.Topocentric{Origin: mgl64.Vec3{}, East: mat.UnitX, North: mat.UnitY, Up: mat.UnitZ}
	if r.Frame.Kind == nav.FrameSpherical {
		basis = nav.NewTopocentric(eye)
		basis.Origin = mgl64.Vec3{}
	}
	return nav.Camera{
		Eye:     eye,
		Forward: basis.ToWorld(f),
		Up:      basis.ToWorld(up),
		Yaw:     yaw,
		Pitch:   pitch,
		Roll:    roll,
		FovY:    r.FovY,
	}
}

func (r *Renderer) Camera() nav.Camera {
	return r.camera
}

// SetCamera replaces the camera and cancels a running animation.
func (r *Renderer) SetCamera(c nav.Camera) {
	r.anim = nil
	r.camera = c
}

func (r *Renderer) Animate(m nav.Move) {
	r.Moves = append(r.Moves, m)
	if m.Duration <= 0 {
		r.camera = r.LookFrom(m.Eye, m.Yaw, m.Pitch, m.Roll)
		r.anim = nil
		return
	}
	r.anim = &animation{
		from: nav.Move{
			Eye:   r.camera.Eye,
			Yaw:   r.camera.Yaw,
			Pitch: r.camera.Pitch,
			Roll:  r.camera.Roll,
		},
		to:    m,
		omega: springSettle / m.Duration.Seconds(),
	}
}

func (r *Renderer) Animating() bool {
	return r.anim != nil
}

// Finish jumps to the end of the running animation.
func (r *Renderer) Finish() {
	if r.anim == nil {
		return
	}
	to := r.anim.to
	r.camera = r.LookFrom(to.Eye, to.Yaw, to.Pitch, to.Roll)
	r.anim = nil
}

func (r *Renderer) ViewSize() nav.ViewSize {
	return r.Size
}

// ViewRay returns the ray from the eye through p.
func (r *Renderer) ViewRay(p nav.ViewPoint) mat.Ray {
	return r.camera.Ray(p, r.Size)
}

func (r *Renderer) ViewToWorld(p nav.ViewPoint) (mgl64.Vec3, error) {
	if r.Surface == nil {
		return mgl64.Vec3{}, nav.ErrOutOfBounds
	}
	pos, ok := r.Surface.Intersect(r.ViewRay(p))
	if !ok {
		return mgl64.Vec3{}, nav.ErrOutOfBounds
	}
	return pos, nil
}

// Project returns the view point of a world position. ok is false behind the
// camera.
func (r *Renderer) Project(p mgl64.Vec3) (nav.ViewPoint, bool) {
	return r.camera.Project(p, r.Size)
}

func (r *Renderer) RequestFrame(fn func(now time.Duration)) {
	r.frames = append(r.frames, fn)
}

// PendingFrames returns the number of queued frame callbacks.
func (r *Renderer) PendingFrames() int {
	return len(r.frames)
}

func (r *Renderer) RequestPointerLock() {
	r.LockRequests++
	if r.DenyPointerLock || r.locked {
		return
	}
	r.lockQueued = append(r.lockQueued, true)
}

func (r *Renderer) ExitPointerLock() {
	r.lockQueued = append(r.lockQueued, false)
}

func (r *Renderer) Locked() bool {
	return r.locked
}

func (r *Renderer) Now() time.Duration {
	return r.now
}

// Step advances the clock by dt, delivers lock changes, advances the
// animation and runs the frame callbacks queued before the step.
func (r *Renderer) Step(dt time.Duration) {
	r.now += dt

	q := r.lockQueued
	r.lockQueued = nil
	for _, l := range q {
		if l == r.locked {
			continue
		}
		r.locked = l
		r.LockChanged.Emit(l)
	}

	if r.anim != nil {
		if r.anim.step(dt) {
			to := r.anim.to
			r.camera = r.LookFrom(to.Eye, to.Yaw, to.Pitch, to.Roll)
			r.anim = nil
		} else {
			m := r.anim.current()
			r.camera = r.LookFrom(m.Eye, m.Yaw, m.Pitch, m.Roll)
		}
	}

	frames := r.frames
	r.frames = nil
	for _, fn := range frames {
		fn(r.now)
	}
}

// Tick steps one display frame.
func (r *Renderer) Tick() {
	r.Step(time.Duration(harmonica.FPS(r.FPS) * float64(time.Second)))
}

// Run ticks until d has elapsed.
func (r *Renderer) Run(d time.Duration) {
	end := r.now + d
	for r.now < end {
		r.Tick()
	}
}
