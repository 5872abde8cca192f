package nav

import (
	"math"

	"github.com/seqsense/camnav/event"
)

type pointerMode int

const (
	pointerModeNone pointerMode = iota
	pointerModeDrag
	pointerModeTwoUndecided
	pointerModeTwoFinger
	pointerModePinch
)

const (
	defaultPinchThreshold = 4
	pinchScale            = 0.1
	lineHeight            = 16
	pageHeight            = 400
)

// PointerTracker folds raw pointer, wheel, click and key events into
// GestureEvents. Mouse pointers report their button mask, touch pointers the
// number of fingers on the surface.
type PointerTracker struct {
	// PinchThreshold is the distance in pixels two fingers must move before
	// the gesture is decided to be a pinch or a two finger drag.
	PinchThreshold float64

	pointers map[int]event.PointerEvent
	pointer0 event.PointerEvent
	emit     func(GestureEvent)

	mode      pointerMode
	touches   int
	buttons   event.Buttons
	last      ViewPoint
	distance0 float64
	centroid0 ViewPoint
}

func NewPointerTracker(emit func(GestureEvent)) *PointerTracker {
	return &PointerTracker{
		PinchThreshold: defaultPinchThreshold,
		pointers:       make(map[int]event.PointerEvent),
		emit:           emit,
	}
}

func (g *PointerTracker) Down(e event.PointerEvent) {
	if !e.Touch() {
		if len(g.pointers) > 0 {
			return
		}
		g.pointers[e.PointerId] = e
		g.pointer0 = e
		g.buttons = e.Buttons
		if g.buttons == 0 {
			g.buttons = e.Button.Mask()
		}
		g.mode = pointerModeNone
		return
	}
	g.end(e.MouseEvent)
	g.pointers[e.PointerId] = e
	if e.IsPrimary || len(g.pointers) == 1 {
		g.pointer0 = e
	}
}

func (g *PointerTracker) Move(e event.PointerEvent) {
	if _, ok := g.pointers[e.PointerId]; !ok {
		if len(g.pointers) == 0 {
			g.emit(g.gesture(GestureHover, e.MouseEvent, pointOf(e.MouseEvent)))
		}
		return
	}
	if e.Touch() && g.mode == pointerModeNone && len(g.pointers) == 2 {
		// Measure from the positions before this move.
		g.distance0 = g.spread()
		g.centroid0 = g.centroid()
	}
	g.pointers[e.PointerId] = e

	if !e.Touch() {
		g.moveMouse(e)
		return
	}

	if g.mode == pointerModeNone {
		g.touches = len(g.pointers)
		switch g.touches {
		case 2:
			g.mode = pointerModeTwoUndecided
		default:
			g.last = g.centroid()
			g.emit(g.gesture(GestureDragStart, e.MouseEvent, g.last))
			g.mode = pointerModeDrag
		}
	}

	c := g.centroid()
	switch g.mode {
	case pointerModeDrag:
		g.emitMove(GestureDrag, e.MouseEvent, c)
	case pointerModeTwoUndecided:
		d := g.spread() - g.distance0
		m := math.Hypot(c.X-g.centroid0.X, c.Y-g.centroid0.Y)
		switch {
		case math.Abs(d) > g.PinchThreshold && math.Abs(d) > m:
			g.mode = pointerModePinch
			g.pinch(e.MouseEvent, c)
		case m > g.PinchThreshold:
			g.mode = pointerModeTwoFinger
			g.last = g.centroid0
			g.emit(g.gesture(GestureTwoFingerDragStart, e.MouseEvent, g.centroid0))
			g.emitMove(GestureTwoFingerDrag, e.MouseEvent, c)
		}
	case pointerModeTwoFinger:
		g.emitMove(GestureTwoFingerDrag, e.MouseEvent, c)
	case pointerModePinch:
		g.pinch(e.MouseEvent, c)
	}
	if e.IsPrimary {
		g.pointer0 = e
	}
}

func (g *PointerTracker) moveMouse(e event.PointerEvent) {
	if g.mode == pointerModeDrag && e.Buttons != 0 && e.Buttons != g.buttons {
		// Chorded button change restarts the drag with the new mask.
		g.end(e.MouseEvent)
		g.buttons = e.Buttons
	}
	p := pointOf(e.MouseEvent)
	if g.mode == pointerModeNone {
		g.last = pointOf(g.pointer0.MouseEvent)
		g.emit(g.gesture(GestureDragStart, e.MouseEvent, g.last))
		g.mode = pointerModeDrag
	}
	ge := g.gesture(GestureDrag, e.MouseEvent, p)
	ge.MovementX, ge.MovementY = e.MovementX, e.MovementY
	if ge.MovementX == 0 && ge.MovementY == 0 {
		ge.MovementX, ge.MovementY = p.X-g.last.X, p.Y-g.last.Y
	}
	g.last = p
	g.emit(ge)
	g.pointer0 = e
}

func (g *PointerTracker) Up(e event.PointerEvent) {
	if _, ok := g.pointers[e.PointerId]; !ok {
		return
	}
	g.pointers[e.PointerId] = e
	g.end(e.MouseEvent)
	delete(g.pointers, e.PointerId)
	if len(g.pointers) == 0 {
		g.buttons = 0
		return
	}
	for _, p := range g.pointers {
		g.pointer0 = p
		break
	}
}

// Cancel ends the gesture of a pointer the platform took away.
func (g *PointerTracker) Cancel(e event.PointerEvent) {
	g.Up(e)
}

func (g *PointerTracker) Wheel(e event.WheelEvent) {
	ge := g.gesture(GestureScroll, e.MouseEvent, pointOf(e.MouseEvent))
	switch e.DeltaMode {
	case event.DOM_DELTA_LINE:
		ge.Scroll = e.DeltaY * lineHeight
	case event.DOM_DELTA_PAGE:
		ge.Scroll = e.DeltaY * pageHeight
	default:
		ge.Scroll = e.DeltaY
	}
	g.emit(ge)
}

func (g *PointerTracker) Click(e event.MouseEvent) {
	g.emit(g.gesture(GestureClick, e, pointOf(e)))
}

func (g *PointerTracker) Key(e event.KeyboardEvent, down bool) {
	t := GestureKeyUp
	if down {
		t = GestureKeyDown
	}
	g.emit(GestureEvent{
		Type: t,
		Time: e.Time,
		Code: e.Code,
		Modifiers: event.MouseEvent{
			AltKey:   e.AltKey,
			CtrlKey:  e.CtrlKey,
			ShiftKey: e.ShiftKey,
			MetaKey:  e.MetaKey,
		}.Modifiers(),
	})
}

func (g *PointerTracker) end(e event.MouseEvent) {
	switch g.mode {
	case pointerModeDrag:
		g.emit(g.gesture(GestureDragEnd, e, g.last))
	case pointerModeTwoFinger:
		g.emit(g.gesture(GestureTwoFingerDragEnd, e, g.last))
	}
	g.mode = pointerModeNone
}

func (g *PointerTracker) emitMove(t GestureType, e event.MouseEvent, p ViewPoint) {
	ge := g.gesture(t, e, p)
	ge.MovementX, ge.MovementY = p.X-g.last.X, p.Y-g.last.Y
	g.last = p
	g.emit(ge)
}

func (g *PointerTracker) pinch(e event.MouseEvent, c ViewPoint) {
	d := g.spread()
	ge := g.gesture(GesturePinch, e, c)
	ge.Scroll = (g.distance0 - d) * pinchScale
	g.distance0 = d
	g.emit(ge)
}

func (g *PointerTracker) gesture(t GestureType, e event.MouseEvent, p ViewPoint) GestureEvent {
	ge := GestureEvent{
		Type:      t,
		Time:      e.Time,
		Point:     p,
		Modifiers: e.Modifiers(),
	}
	if g.pointer0.Touch() {
		ge.Touches = g.touches
	} else {
		ge.Buttons = g.buttons
	}
	return ge
}

func (g *PointerTracker) centroid() ViewPoint {
	var c ViewPoint
	if len(g.pointers) == 0 {
		return c
	}
	for _, p := range g.pointers {
		c.X += p.OffsetX
		c.Y += p.OffsetY
	}
	n := float64(len(g.pointers))
	return ViewPoint{X: c.X / n, Y: c.Y / n}
}

// spread is the distance between the first two pointers.
func (g *PointerTracker) spread() float64 {
	var pp []event.PointerEvent
	for _, p := range g.pointers {
		pp = append(pp, p)
		if len(pp) == 2 {
			break
		}
	}
	if len(pp) < 2 {
		return 0
	}
	return math.Hypot(pp[0].OffsetX-pp[1].OffsetX, pp[0].OffsetY-pp[1].OffsetY)
}

func pointOf(e event.MouseEvent) ViewPoint {
	return ViewPoint{X: e.OffsetX, Y: e.OffsetY}
}
