package main

import (
	"fmt"

	"fortio.org/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/s1"
	"github.com/seqsense/pcgol/pc"

	"github.com/seqsense/camnav/box"
	"github.com/seqsense/camnav/config"
	"github.com/seqsense/camnav/event"
	"github.com/seqsense/camnav/nav"
	"github.com/seqsense/camnav/sim"
)

const pointerID = 1

// session wires a simulated renderer to the navigation and box controllers.
type session struct {
	r       *sim.Renderer
	nav     *nav.NavigationController
	editor  *box.Editor
	faces   *box.FaceDragController
	build   *box.BuildController
	focus   *box.Focus
	stack   nav.Stack
	tracker *nav.PointerTracker

	cloud  *pc.PointCloud
	bounds *nav.Bounds

	pressed   bool
	button    event.MouseButton
	modifiers event.Modifiers
	x, y      float64
}

func newSession(c config.Config, s script) (*session, error) {
	opts := c.NavOptions()
	size := nav.ViewSize{Width: s.Viewport[0], Height: s.Viewport[1]}

	var cloud *pc.PointCloud
	if len(s.Points) > 0 {
		var err error
		if cloud, err = newCloud(s.Points); err != nil {
			return nil, err
		}
		b, err := nav.BoundsFromCloud(cloud)
		if err != nil {
			return nil, err
		}
		b = b.Padded(s.PointsMargin)
		if opts.Bounds != nil {
			b = nav.Intersection(*opts.Bounds, b)
		}
		if !b.IsValid() {
			return nil, fmt.Errorf("cloud bounds %v outside of the configured bounds: %w", b, config.ErrInvalid)
		}
		log.Infof("Bounds from %d points: %v - %v", cloud.Points, b.Min, b.Max)
		opts.Bounds = &b
	}

	var surface sim.Surface = sim.Ground
	if s.Sphere > 0 {
		surface = sim.Sphere{Radius: s.Sphere}
	}
	r := sim.New(size, opts.Frame, surface)
	if s.FovY > 0 {
		r.FovY = s1.Angle(s.FovY) * s1.Degree
	}
	r.DenyPointerLock = s.DenyPointerLock

	ss := &session{
		r:      r,
		nav:    nav.NewNavigationController(r, opts),
		editor: box.NewEditor(),
		focus:  &box.Focus{},
		cloud:  cloud,
		bounds: opts.Bounds,
	}
	ss.editor.Limits = c.BoxLimits()
	ss.faces = box.NewFaceDragController(0, ss.editor, r, ss.focus)
	ss.build = box.NewBuildController(r)
	ss.stack = nav.Stack{ss.faces, ss.build, ss.nav}
	ss.tracker = nav.NewPointerTracker(func(e nav.GestureEvent) {
		ss.stack.OnGesture(e)
	})

	r.LockChanged.On(ss.nav.LockChanged)
	ss.nav.TypeChanged.On(func(tc nav.TypeChange) {
		log.Infof("Navigation %v -> %v", tc.From, tc.To)
	})
	ss.build.Builder.BoxCreated.On(func(b box.OrientedBox) {
		ss.editor.UpdateBox(b)
		ss.focus.Set(0)
	})
	ss.editor.IntervalChanged.On(func(c box.IntervalChange) {
		log.Infof("Box %v interval [%.3f, %.3f]", c.Axis, c.Min, c.Max)
	})

	cam := s.Camera
	r.SetCamera(r.LookFrom(
		mgl64.Vec3{cam[0], cam[1], cam[2]},
		s1.Angle(cam[3])*s1.Degree,
		s1.Angle(cam[4])*s1.Degree,
		0,
	))

	ss.faces.Activate()
	ss.nav.Activate()
	ss.x, ss.y = size.Width/2, size.Height/2
	return ss, nil
}

func (s *session) mouse(x, y float64) event.MouseEvent {
	e := event.MouseEvent{
		Time:     s.r.Now(),
		OffsetX:  x,
		OffsetY:  y,
		Button:   s.button,
		AltKey:   s.modifiers&event.ModAlt != 0,
		CtrlKey:  s.modifiers&event.ModCtrl != 0,
		ShiftKey: s.modifiers&event.ModShift != 0,
		MetaKey:  s.modifiers&event.ModMeta != 0,
	}
	if s.pressed {
		e.Buttons = s.button.Mask()
	}
	if s.r.Locked() {
		// Locked pointers report motion only.
		e.OffsetX, e.OffsetY = s.x, s.y
		e.MovementX, e.MovementY = x-s.x, y-s.y
	}
	return e
}

func (s *session) pointer(x, y float64) event.PointerEvent {
	return event.PointerEvent{
		MouseEvent:  s.mouse(x, y),
		PointerId:   pointerID,
		PointerType: event.PointerMouse,
		IsPrimary:   true,
	}
}

func (s *session) down(x, y float64, b event.MouseButton) {
	s.button = b
	s.pressed = true
	s.tracker.Down(s.pointer(x, y))
	s.x, s.y = x, y
}

func (s *session) move(x, y float64) {
	s.tracker.Move(s.pointer(x, y))
	if !s.r.Locked() {
		s.x, s.y = x, y
	}
}

func (s *session) up() {
	s.pressed = false
	s.tracker.Up(s.pointer(s.x, s.y))
}

func (s *session) click(x, y float64) {
	s.tracker.Click(s.mouse(x, y))
}

func (s *session) wheel(dy float64) {
	s.tracker.Wheel(event.WheelEvent{
		MouseEvent: s.mouse(s.x, s.y),
		DeltaY:     dy,
		DeltaMode:  event.DOM_DELTA_PIXEL,
	})
}

func (s *session) key(code string, down bool) {
	s.tracker.Key(event.KeyboardEvent{
		Time:     s.r.Now(),
		Code:     code,
		AltKey:   s.modifiers&event.ModAlt != 0,
		CtrlKey:  s.modifiers&event.ModCtrl != 0,
		ShiftKey: s.modifiers&event.ModShift != 0,
		MetaKey:  s.modifiers&event.ModMeta != 0,
	}, down)
}

func (s *session) setBuilding(on bool) {
	if on {
		s.build.Activate()
		return
	}
	s.build.Deactivate()
}
