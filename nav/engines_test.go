package nav_test

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/s1"

	"github.com/seqsense/camnav/event"
	"github.com/seqsense/camnav/mat"
	"github.com/seqsense/camnav/nav"
	"github.com/seqsense/camnav/sim"
)

const tol = 1e-9

func newRenderer(eye mgl64.Vec3, yaw, pitch s1.Angle) *sim.Renderer {
	r := sim.New(nav.ViewSize{Width: 200, Height: 200}, nav.Frame{}, sim.Ground)
	r.FovY = 90 * s1.Degree
	r.SetCamera(r.LookFrom(eye, yaw, pitch, 0))
	return r
}

func bounded(min, max mgl64.Vec3) nav.Clamp {
	return nav.NewClamp(&nav.Bounds{Min: min, Max: max}, nav.Frame{})
}

func TestPanOverOrthogonalPlane(t *testing.T) {
	testCases := map[string]struct {
		clamp    nav.Clamp
		to       nav.ViewPoint
		ok       bool
		expected mgl64.Vec3
	}{
		"Right": {
			clamp:    nav.NewClamp(nil, nav.Frame{}),
			to:       nav.ViewPoint{X: 150, Y: 100},
			ok:       true,
			expected: mgl64.Vec3{-5, 0, 10},
		},
		"Down": {
			clamp:    nav.NewClamp(nil, nav.Frame{}),
			to:       nav.ViewPoint{X: 100, Y: 150},
			ok:       true,
			expected: mgl64.Vec3{0, 5, 10},
		},
		"OutOfBounds": {
			clamp:    bounded(mgl64.Vec3{-2, -2, 0}, mgl64.Vec3{2, 2, 20}),
			to:       nav.ViewPoint{X: 150, Y: 100},
			ok:       false,
			expected: mgl64.Vec3{0, 0, 10},
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			r := newRenderer(mgl64.Vec3{0, 0, 10}, 0, -90*s1.Degree)
			p := nav.NewPanEngine(tt.clamp)
			cam := r.Camera()

			if _, ok := p.PanOverOrthogonalPlane(cam, mgl64.Vec3{}, nav.ViewPoint{X: 100, Y: 100}, r.ViewSize()); ok {
				t.Fatal("First pan must only calibrate")
			}
			if d, ok := p.PlaneDistance(); !ok || math.Abs(d-10) > tol {
				t.Fatalf("Expected plane distance 10, got %v (%v)", d, ok)
			}
			next, ok := p.PanOverOrthogonalPlane(cam, mgl64.Vec3{}, tt.to, r.ViewSize())
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v", tt.ok)
			}
			if !mat.Near(next.Eye, tt.expected, tol) {
				t.Errorf("Expected eye %v, got %v", tt.expected, next.Eye)
			}
		})
	}
}

func TestRotateAroundPivot(t *testing.T) {
	r := newRenderer(mgl64.Vec3{0, -10, 10}, 0, -45*s1.Degree)
	rot := nav.NewRotationEngine(r, nav.NewClamp(nil, nav.Frame{}), nav.Frame{})

	next, ok := rot.RotateAroundPivotBy(r.Camera(), mgl64.Vec3{}, 900, 0)
	if !ok {
		t.Fatal("Rotation must succeed")
	}
	if !mat.Near(next.Eye, mgl64.Vec3{-10, 0, 10}, 1e-6) {
		t.Errorf("Expected eye (-10, 0, 10), got %v", next.Eye)
	}
	toPivot, _ := mat.Normalize(next.Eye.Mul(-1))
	if !mat.Near(next.Forward, toPivot, 1e-6) {
		t.Errorf("Camera must keep facing the pivot, forward %v", next.Forward)
	}
}

func TestRotation_PitchLimit(t *testing.T) {
	testCases := map[string]struct {
		dy float64
	}{
		"Up":   {dy: -1000},
		"Down": {dy: 1000},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			r := newRenderer(mgl64.Vec3{0, -10, 10}, 0, -45*s1.Degree)
			rot := nav.NewRotationEngine(r, nav.NewClamp(nil, nav.Frame{}), nav.Frame{})
			pivot := mgl64.Vec3{}
			dist := r.Camera().Eye.Len()

			cam := r.Camera()
			for i := 0; i < 5; i++ {
				next, ok := rot.RotateAroundPivotBy(cam, pivot, 3, tt.dy)
				if ok {
					cam = next
				}
				if cam.Pitch > nav.MaxPitch+1e-9 || cam.Pitch < -nav.MaxPitch-1e-9 {
					t.Fatalf("Pitch %v exceeds the limit", cam.Pitch.Degrees())
				}
				if math.Abs(cam.Eye.Len()-dist) > 1e-6 {
					t.Fatalf("Orbit must keep the pivot distance, %v != %v", cam.Eye.Len(), dist)
				}
			}

			cam = r.Camera()
			for i := 0; i < 5; i++ {
				cam, _ = rot.RotateSelfBy(cam, 0, tt.dy)
				if cam.Pitch > nav.MaxPitch+1e-9 || cam.Pitch < -nav.MaxPitch-1e-9 {
					t.Fatalf("Pitch %v exceeds the limit", cam.Pitch.Degrees())
				}
			}
		})
	}
}

func TestRotateSelf_Calibrates(t *testing.T) {
	r := newRenderer(mgl64.Vec3{}, 0, 0)
	rot := nav.NewRotationEngine(r, nav.NewClamp(nil, nav.Frame{}), nav.Frame{})
	if _, ok := rot.RotateSelf(r.Camera(), nav.ViewPoint{X: 10, Y: 10}); ok {
		t.Fatal("First rotation must only calibrate")
	}
	next, ok := rot.RotateSelf(r.Camera(), nav.ViewPoint{X: 110, Y: 10})
	if !ok {
		t.Fatal("Second rotation must succeed")
	}
	if math.Abs(next.Yaw.Degrees()-10) > 1e-9 {
		t.Errorf("Expected 10 deg yaw, got %v", next.Yaw.Degrees())
	}
	if next.Eye != r.Camera().Eye {
		t.Error("Eye must not move")
	}
}

func TestZoomTarget(t *testing.T) {
	testCases := map[string]struct {
		eye      mgl64.Vec3
		fraction float64
		through  bool
		expected mgl64.Vec3
		crossed  bool
	}{
		"Half": {
			eye:      mgl64.Vec3{0, 0, 10},
			fraction: 0.5,
			expected: mgl64.Vec3{0, 0, 5},
		},
		"Out": {
			eye:      mgl64.Vec3{0, 0, 10},
			fraction: -0.5,
			expected: mgl64.Vec3{0, 0, 15},
		},
		"StopAtClearance": {
			eye:      mgl64.Vec3{0, 0, 0.4},
			fraction: 0.5,
			expected: mgl64.Vec3{0, 0, 0.5},
		},
		"Through": {
			eye:      mgl64.Vec3{0, 0, 0.4},
			fraction: 0.5,
			through:  true,
			expected: mgl64.Vec3{0, 0, -0.4},
			crossed:  true,
		},
		"AtAnchor": {
			eye:      mgl64.Vec3{},
			fraction: 0.5,
			expected: mgl64.Vec3{},
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			r := newRenderer(tt.eye, 0, -90*s1.Degree)
			z := nav.NewZoomEngine(r, nav.NewClamp(nil, nav.Frame{}))
			target, crossed := z.Target(tt.eye, mgl64.Vec3{}, tt.fraction, tt.through)
			if crossed != tt.crossed {
				t.Errorf("Expected crossed=%v", tt.crossed)
			}
			if !mat.Near(target, tt.expected, tol) {
				t.Errorf("Expected %v, got %v", tt.expected, target)
			}
		})
	}
}

func TestZoomToAnchor_Bounds(t *testing.T) {
	r := newRenderer(mgl64.Vec3{0, 0, 10}, 0, -90*s1.Degree)
	z := nav.NewZoomEngine(r, bounded(mgl64.Vec3{-10, -10, 1}, mgl64.Vec3{10, 10, 20}))

	if z.ZoomToAnchor(r.Camera(), mgl64.Vec3{}, 0.99, false) {
		t.Error("Zoom must not cross the anchor")
	}
	if len(r.Moves) != 0 {
		t.Fatalf("Out of bounds target must be dropped, got %v", r.Moves)
	}

	z.ZoomToAnchor(r.Camera(), mgl64.Vec3{}, 0.5, false)
	if len(r.Moves) != 1 {
		t.Fatalf("Expected one move, got %d", len(r.Moves))
	}
	r.Finish()
	if !mat.Near(r.Camera().Eye, mgl64.Vec3{0, 0, 5}, tol) {
		t.Errorf("Expected eye (0, 0, 5), got %v", r.Camera().Eye)
	}
}

func TestKeyNavigation(t *testing.T) {
	unbounded := nav.NewClamp(nil, nav.Frame{})

	testCases := map[string]struct {
		mode     nav.KeyMode
		pitch    s1.Angle
		clamp    nav.Clamp
		keys     []string
		expected mgl64.Vec3
		moved    bool
	}{
		"Forward": {
			clamp:    unbounded,
			keys:     []string{"KeyW"},
			expected: mgl64.Vec3{0, 10, 0},
			moved:    true,
		},
		"Diagonal": {
			clamp:    unbounded,
			keys:     []string{"ArrowUp", "KeyD"},
			expected: mgl64.Vec3{3.5, 10, 0},
			moved:    true,
		},
		"Opposite": {
			clamp:    unbounded,
			keys:     []string{"KeyW", "KeyS"},
			expected: mgl64.Vec3{},
			moved:    true,
		},
		"BlockedAxis": {
			clamp:    bounded(mgl64.Vec3{-10, -10, -10}, mgl64.Vec3{10, 5, 10}),
			keys:     []string{"KeyW", "KeyA"},
			expected: mgl64.Vec3{-3.5, 0, 0},
			moved:    true,
		},
		"AllBlocked": {
			clamp:    bounded(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1}),
			keys:     []string{"KeyW"},
			expected: mgl64.Vec3{},
			moved:    false,
		},
		"CameraForwardPitched": {
			pitch:    -90 * s1.Degree,
			clamp:    unbounded,
			keys:     []string{"KeyW"},
			expected: mgl64.Vec3{0, 0, -10},
			moved:    true,
		},
		"TangentForwardPitched": {
			mode:     nav.TangentForward,
			pitch:    -45 * s1.Degree,
			clamp:    unbounded,
			keys:     []string{"KeyW", "KeyQ"},
			expected: mgl64.Vec3{0, 10, 3.5},
			moved:    true,
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			r := newRenderer(mgl64.Vec3{}, 0, tt.pitch)
			k := nav.NewKeyNavigationEngine(tt.clamp, nav.Frame{})
			k.Mode = tt.mode
			for _, key := range tt.keys {
				if !k.Press(key) {
					t.Fatalf("%s must be a navigation key", key)
				}
			}
			next, moved := k.Tick(r.Camera(), 1e9)
			if moved != tt.moved {
				t.Errorf("Expected moved=%v", tt.moved)
			}
			if !mat.Near(next.Eye, tt.expected, 1e-6) {
				t.Errorf("Expected %v, got %v", tt.expected, next.Eye)
			}
		})
	}
}

func TestKeyNavigation_Held(t *testing.T) {
	k := nav.NewKeyNavigationEngine(nav.NewClamp(nil, nav.Frame{}), nav.Frame{})
	if k.Press("KeyX") {
		t.Error("KeyX is not a navigation key")
	}
	k.Press("KeyW")
	k.Press("KeyW")
	if !k.Held() {
		t.Fatal("KeyW must be held")
	}
	if !k.Release("KeyW") {
		t.Error("KeyW must be released")
	}
	if k.Held() || k.Release("KeyW") {
		t.Error("Repeated press must be held once")
	}
}

type fakePicker struct {
	pos mgl64.Vec3
	err error
}

func (p fakePicker) ViewToWorld(nav.ViewPoint) (mgl64.Vec3, error) {
	return p.pos, p.err
}

func TestAnchorResolver(t *testing.T) {
	testCases := map[string]struct {
		picker   fakePicker
		clamp    nav.Clamp
		expected mgl64.Vec3
	}{
		"Picked": {
			picker:   fakePicker{pos: mgl64.Vec3{1, 2, 0}},
			clamp:    nav.NewClamp(nil, nav.Frame{}),
			expected: mgl64.Vec3{1, 2, 0},
		},
		"BoundsCenter": {
			picker:   fakePicker{err: nav.ErrOutOfBounds},
			clamp:    bounded(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{4, 6, 8}),
			expected: mgl64.Vec3{2, 3, 4},
		},
		"AheadOfCamera": {
			picker:   fakePicker{err: errors.New("no depth")},
			clamp:    nav.NewClamp(nil, nav.Frame{}),
			expected: mgl64.Vec3{0, 100, 0},
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			r := newRenderer(mgl64.Vec3{}, 0, 0)
			a := nav.NewAnchorResolver(tt.picker, r, tt.clamp, 100)
			if _, ok := a.Anchor(); ok {
				t.Fatal("Anchor must be empty initially")
			}
			a.Update(nav.None, nav.Pan, nav.ViewPoint{})
			got, ok := a.Anchor()
			if !ok || !mat.Near(got, tt.expected, 1e-6) {
				t.Errorf("Expected %v, got %v (%v)", tt.expected, got, ok)
			}
			if a.Type() != nav.Pan {
				t.Errorf("Expected PAN anchor, got %v", a.Type())
			}
			a.Update(nav.Pan, nav.None, nav.ViewPoint{})
			if _, ok := a.Anchor(); ok {
				t.Error("Anchor must be dropped when navigation ends")
			}
		})
	}
}

type fakeLocker struct {
	requests, exits int
}

func (l *fakeLocker) RequestPointerLock() { l.requests++ }
func (l *fakeLocker) ExitPointerLock()    { l.exits++ }

func TestPointerLockCoordinator(t *testing.T) {
	t.Run("Granted", func(t *testing.T) {
		l := &fakeLocker{}
		p := nav.NewPointerLockCoordinator(l, event.ButtonsRight)
		p.DragStart(event.ButtonsRight, false)
		if l.requests != 0 {
			t.Fatal("Lock must not be requested on press")
		}
		if p.Move() {
			t.Error("Pointer is not locked yet")
		}
		p.Move()
		if l.requests != 1 || !p.LockAttempt() {
			t.Fatalf("Expected one lock request, got %d", l.requests)
		}
		p.LockChanged(true)
		if !p.Move() || !p.Locked() {
			t.Error("Pointer must be locked")
		}
		p.Unlock()
		if l.exits != 1 || p.Locked() {
			t.Errorf("Expected the lock released, exits=%d", l.exits)
		}
	})
	t.Run("Denied", func(t *testing.T) {
		l := &fakeLocker{}
		p := nav.NewPointerLockCoordinator(l, event.ButtonsRight)
		p.DragStart(event.ButtonsRight, false)
		p.Move()
		p.LockChanged(false)
		if p.Move() || l.requests != 1 {
			t.Errorf("Denied lock must not be retried during the drag, requests=%d", l.requests)
		}
	})
	t.Run("GrantedAfterRelease", func(t *testing.T) {
		l := &fakeLocker{}
		p := nav.NewPointerLockCoordinator(l, event.ButtonsRight)
		p.DragStart(event.ButtonsRight, false)
		p.Move()
		p.Unlock()
		if l.exits != 1 {
			t.Fatalf("Expected the pending lock released, exits=%d", l.exits)
		}
		p.LockChanged(true)
		if p.Locked() || p.Move() {
			t.Error("Late grant must not lock the pointer")
		}
		if l.exits != 2 {
			t.Errorf("Late grant must be released, exits=%d", l.exits)
		}
	})
	t.Run("NotCapturable", func(t *testing.T) {
		testCases := map[string]struct {
			buttons event.Buttons
			touch   bool
		}{
			"Left":  {buttons: event.ButtonsLeft},
			"Touch": {touch: true},
		}
		for name, tt := range testCases {
			tt := tt
			t.Run(name, func(t *testing.T) {
				l := &fakeLocker{}
				p := nav.NewPointerLockCoordinator(l, event.ButtonsRight)
				p.DragStart(tt.buttons, tt.touch)
				p.Move()
				p.Unlock()
				if l.requests != 0 || l.exits != 0 {
					t.Errorf("Unexpected lock calls %+v", *l)
				}
			})
		}
	})
}
