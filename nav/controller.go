package nav

import (
	"time"

	"fortio.org/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/seqsense/camnav/event"
	"github.com/seqsense/camnav/fling"
	"github.com/seqsense/camnav/mat"
)

// carryWindow is how long after a drag stops a fling its velocity may still
// be added to the release of that drag.
const carryWindow = 500 * time.Millisecond

// TypeChange is emitted when the active navigation type changes.
type TypeChange struct {
	From, To NavigationType
}

// NavigationController drives the camera of a Renderer from gestures.
type NavigationController struct {
	r    Renderer
	opts Options

	TypeChanged   event.Emitter[TypeChange]
	CursorChanged event.Emitter[Cursor]

	active     bool
	classifier Classifier
	clamp      Clamp
	typ        NavigationType
	cursor     Cursor

	anchor   *AnchorResolver
	pan      *PanEngine
	rotation *RotationEngine
	zoom     *ZoomEngine
	keys     *KeyNavigationEngine
	lock     *PointerLockCoordinator
	wheel    ScrollNormalizer
	click    ClickGuard

	velocity     *fling.VelocityTracker
	scroller     *fling.Scroller
	flingPan     *PanEngine
	flingAnchor  mgl64.Vec3
	flingPoint   ViewPoint
	flingStart   time.Duration
	flingStarted bool
	flinging     bool

	// Velocity of a fling cancelled by a drag start, carried into a quick
	// release in the same direction.
	carryX, carryY float64
	carryAt        time.Duration
	carrying       bool

	gen        int
	frameArmed bool
	lastFrame  time.Duration
	hasFrame   bool
}

func NewNavigationController(r Renderer, opts Options) *NavigationController {
	return &NavigationController{
		r:      r,
		opts:   opts,
		cursor: CursorAuto,
	}
}

// Activate converts the bounds into the navigation frame and creates the
// engines. Gestures are ignored until then.
func (c *NavigationController) Activate() {
	if c.active {
		return
	}
	o := c.opts
	c.clamp = NewClamp(o.Bounds, o.Frame)
	c.classifier = Classifier{FirstPersonModifier: o.FirstPersonModifier}

	c.anchor = NewAnchorResolver(c.r, c.r, c.clamp, o.DefaultAnchorDistance)
	c.pan = NewPanEngine(c.clamp)
	c.flingPan = NewPanEngine(c.clamp)

	c.rotation = NewRotationEngine(c.r, c.clamp, o.Frame)
	c.rotation.HorizontalSpeed = o.HorizontalSpeed
	c.rotation.VerticalSpeed = o.VerticalSpeed

	c.zoom = NewZoomEngine(c.r, c.clamp)
	c.zoom.MinClearance = o.MinClearance
	c.zoom.Duration = o.ZoomDuration

	c.keys = NewKeyNavigationEngine(c.clamp, o.Frame)
	c.keys.Mode = o.KeyMode
	c.keys.Speed = o.KeySpeed

	c.lock = NewPointerLockCoordinator(c.r, o.PointerLockButtons)
	c.wheel = ScrollNormalizer{}
	c.click = ClickGuard{DoubleClickInterval: o.DoubleClickInterval}
	c.velocity = fling.NewVelocityTracker(o.Fling)
	c.scroller = fling.NewScroller(o.Fling)

	c.typ = None
	c.active = true
	log.Debugf("Navigation activated in %v frame, bounded=%v", o.Frame.Kind, o.Bounds != nil)
}

// Deactivate releases the pointer lock, drops held keys, stops the fling
// and the frame loop. The last committed camera stays.
func (c *NavigationController) Deactivate() {
	if !c.active {
		return
	}
	c.lock.Unlock()
	c.keys.Clear()
	c.scroller.Abort()
	c.flinging = false
	c.gen++
	c.frameArmed = false
	c.hasFrame = false
	c.setType(None, ViewPoint{})
	c.active = false
	log.Debugf("Navigation deactivated")
}

func (c *NavigationController) Type() NavigationType {
	return c.typ
}

func (c *NavigationController) Anchor() (mgl64.Vec3, bool) {
	if !c.active {
		return mgl64.Vec3{}, false
	}
	return c.anchor.Anchor()
}

// Fling exposes the release scroller.
func (c *NavigationController) Fling() *fling.Scroller {
	return c.scroller
}

func (c *NavigationController) Cursor() Cursor {
	return c.cursor
}

// LockChanged forwards the platform pointer lock notification.
func (c *NavigationController) LockChanged(locked bool) {
	if !c.active {
		return
	}
	c.lock.LockChanged(locked)
	if !locked {
		c.rotation.Reset()
	}
	c.updateCursor()
}

func (c *NavigationController) OnGesture(e GestureEvent) bool {
	if !c.active {
		return false
	}
	switch e.Type {
	case GestureKeyDown:
		if !c.keys.Press(e.Code) {
			return false
		}
		c.requestFrame()
		return true
	case GestureKeyUp:
		return c.keys.Release(e.Code)
	case GestureClick:
		return c.onClick(e)
	}

	prev := c.typ
	anchor, hasAnchor := c.anchor.Anchor()
	if e.Type.isDragStart() {
		c.cancelFling(e.Time)
		c.velocity.Reset()
		c.click.DragStart()
		c.lock.DragStart(e.Buttons, e.Touches > 0)
	}
	c.setType(c.classifier.Classify(e, prev, c.opts.Allowed), e.Point)

	switch {
	case e.Type.isDragEnd():
		c.endDrag(prev, e, anchor, hasAnchor)
		return prev != None
	case e.Type.IsDrag():
		return c.drag(e)
	case e.Type == GestureScroll || e.Type == GesturePinch:
		return c.zoomBy(e)
	}
	return false
}

func (c *NavigationController) OnDraw(cv Canvas) {
	if !c.active {
		return
	}
	anchor, ok := c.anchor.Anchor()
	if !ok {
		return
	}
	size := GizmoScale(c.r.Camera(), anchor, c.opts.GizmoPixels, c.r.ViewSize())
	cv.DrawAnchor(anchor, size, c.anchor.Type())
}

func (c *NavigationController) setType(next NavigationType, p ViewPoint) {
	prev := c.typ
	if next == prev {
		return
	}
	c.typ = next
	c.anchor.Update(prev, next, p)
	c.pan.Reset()
	c.rotation.Reset()
	log.Debugf("Navigation %v -> %v", prev, next)
	c.TypeChanged.Emit(TypeChange{From: prev, To: next})
	c.updateCursor()
}

func (c *NavigationController) updateCursor() {
	cur := CursorFor(c.typ, c.lock.Locked())
	if cur == c.cursor {
		return
	}
	c.cursor = cur
	c.CursorChanged.Emit(cur)
}

func (c *NavigationController) drag(e GestureEvent) bool {
	start := e.Type.isDragStart()
	if !start {
		c.click.Move()
	}
	if c.typ == None {
		return false
	}
	c.velocity.Add(e.Time, e.Point.X, e.Point.Y)

	anchor, ok := c.anchor.Anchor()
	if !ok {
		return true
	}
	relative := false
	if !start && (c.typ == Rotation || c.typ == FirstPersonRotation) {
		relative = c.lock.Move()
	}

	cam := c.r.Camera()
	var next Camera
	switch c.typ {
	case Pan:
		next, ok = c.pan.PanOverOrthogonalPlane(cam, anchor, e.Point, c.r.ViewSize())
	case Rotation:
		if relative {
			next, ok = c.rotation.RotateAroundPivotBy(cam, anchor, e.MovementX, e.MovementY)
		} else {
			next, ok = c.rotation.RotateAroundPivot(cam, anchor, e.Point)
		}
	case FirstPersonRotation:
		if relative {
			next, ok = c.rotation.RotateSelfBy(cam, e.MovementX, e.MovementY)
		} else {
			next, ok = c.rotation.RotateSelf(cam, e.Point)
		}
	default:
		ok = false
	}
	if ok {
		c.r.SetCamera(next)
	}
	return true
}

func (c *NavigationController) endDrag(prev NavigationType, e GestureEvent, anchor mgl64.Vec3, hasAnchor bool) {
	c.click.DragEnd(e.Time)
	c.lock.Unlock()
	c.updateCursor()
	if prev == Pan && hasAnchor {
		if vx, vy, ok := c.velocity.Release(e.Time, e.Touches > 0); ok {
			if c.carrying && e.Time-c.carryAt <= carryWindow {
				vx, vy = fling.Carry(vx, vy, c.carryX, c.carryY)
			}
			c.carrying = false
			c.startFling(vx, vy, e.Point, anchor)
			return
		}
	}
	c.carrying = false
	c.scroller.Abort()
}

// cancelFling stops a running fling and keeps its velocity for a release
// following within carryWindow.
func (c *NavigationController) cancelFling(now time.Duration) {
	c.carrying = false
	if c.flinging && !c.scroller.Finished() {
		c.carryX, c.carryY = c.scroller.CurrentVelocity()
		c.carryAt = now
		c.carrying = true
	}
	c.flinging = false
	c.scroller.Abort()
}

func (c *NavigationController) startFling(vx, vy float64, p ViewPoint, anchor mgl64.Vec3) {
	c.flingPan.Reset()
	c.flingPan.PanOverOrthogonalPlane(c.r.Camera(), anchor, p, c.r.ViewSize())
	c.flingAnchor = anchor
	c.flingPoint = p

	c.scroller.Fling(vx, vy)
	if c.scroller.Finished() {
		return
	}
	log.Debugf("Fling %.0f px over %v", c.scroller.Distance(), c.scroller.Duration())
	c.flinging = true
	c.flingStarted = false
	c.requestFrame()
}

func (c *NavigationController) stepFling(now time.Duration) bool {
	if !c.flingStarted {
		c.flingStart, c.flingStarted = now, true
	}
	t := 1.0
	if d := c.scroller.Duration(); d > 0 {
		t = float64(now-c.flingStart) / float64(d)
	}
	dx, dy := c.scroller.Update(t)
	if c.scroller.Finished() {
		c.flinging = false
		return false
	}
	c.flingPoint.X += dx
	c.flingPoint.Y += dy
	if next, ok := c.flingPan.PanOverOrthogonalPlane(c.r.Camera(), c.flingAnchor, c.flingPoint, c.r.ViewSize()); ok {
		c.r.SetCamera(next)
	}
	return true
}

func (c *NavigationController) zoomBy(e GestureEvent) bool {
	if c.typ != Zoom {
		return false
	}
	anchor, ok := c.anchor.Anchor()
	if !ok {
		return true
	}
	amount := e.Scroll
	if e.Type == GestureScroll {
		var ready bool
		if amount, ready = c.wheel.Normalize(e.Scroll, e.Time); !ready {
			log.Debugf("Wheel kind pending, zooming by %v notch", amount)
		}
	}
	fraction := -amount * c.opts.ZoomSpeed
	switch {
	case fraction > c.opts.MaxZoomFraction:
		fraction = c.opts.MaxZoomFraction
	case fraction < -c.opts.MaxZoomFraction:
		fraction = -c.opts.MaxZoomFraction
	case fraction == 0:
		return true
	}
	through := c.opts.ThroughModifier != 0 && e.Modifiers&c.opts.ThroughModifier != 0
	if c.zoom.ZoomToAnchor(c.r.Camera(), anchor, fraction, through) {
		// The anchor is behind the camera now.
		c.setType(None, e.Point)
	}
	return true
}

func (c *NavigationController) onClick(e GestureEvent) bool {
	if !c.click.Click(e.Time) {
		return true
	}
	if !c.click.DoubleClick(e.Time) {
		return false
	}
	return c.moveToSurface(e.Point)
}

func (c *NavigationController) moveToSurface(p ViewPoint) bool {
	pos, err := c.r.ViewToWorld(p)
	if err != nil {
		return false
	}
	cam := c.r.Camera()
	dist := mat.Distance(pos, cam.Eye)
	if dist <= c.opts.MinClearance {
		return true
	}
	travel := dist * c.opts.SurfaceApproach
	if dist-travel < c.opts.MinClearance {
		travel = dist - c.opts.MinClearance
	}
	eye := mat.Lerp(cam.Eye, pos, travel/dist)
	if !c.clamp.Contains(eye) {
		return true
	}
	c.r.Animate(Move{
		Eye:      eye,
		Yaw:      cam.Yaw,
		Pitch:    cam.Pitch,
		Roll:     cam.Roll,
		Duration: c.opts.ZoomDuration,
	})
	return true
}

func (c *NavigationController) requestFrame() {
	if c.frameArmed || !c.active {
		return
	}
	c.frameArmed = true
	gen := c.gen
	c.r.RequestFrame(func(now time.Duration) {
		if gen != c.gen {
			return
		}
		c.onFrame(now)
	})
}

func (c *NavigationController) onFrame(now time.Duration) {
	c.frameArmed = false
	more := false
	if c.keys.Held() {
		var dt time.Duration
		if c.hasFrame {
			dt = now - c.lastFrame
		}
		if next, moved := c.keys.Tick(c.r.Camera(), dt); moved {
			c.r.SetCamera(next)
		}
		more = true
	}
	if c.flinging && c.stepFling(now) {
		more = true
	}
	if !more {
		c.hasFrame = false
		return
	}
	c.lastFrame, c.hasFrame = now, true
	c.requestFrame()
}
