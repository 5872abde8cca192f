package nav

import (
	"time"

	"github.com/seqsense/camnav/event"
)

type NavigationType int

const (
	None NavigationType = iota
	Pan
	Rotation
	Zoom
	FirstPersonRotation
)

func (t NavigationType) String() string {
	switch t {
	case None:
		return "NONE"
	case Pan:
		return "PAN"
	case Rotation:
		return "ROTATION"
	case Zoom:
		return "ZOOM"
	case FirstPersonRotation:
		return "FIRST_PERSON_ROTATION"
	}
	return "UNKNOWN"
}

// ParseNavigationType parses the String form of a NavigationType.
func ParseNavigationType(s string) (NavigationType, bool) {
	for t := None; t <= FirstPersonRotation; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return None, false
}

// TypeSet is a set of allowed navigation types.
type TypeSet uint8

func NewTypeSet(ts ...NavigationType) TypeSet {
	var s TypeSet
	for _, t := range ts {
		s |= 1 << uint(t)
	}
	return s
}

// AllTypes allows every navigation type.
var AllTypes = NewTypeSet(Pan, Rotation, Zoom, FirstPersonRotation)

func (s TypeSet) Has(t NavigationType) bool {
	return s&(1<<uint(t)) != 0
}

type GestureType int

const (
	GestureHover GestureType = iota
	GestureDragStart
	GestureDrag
	GestureDragEnd
	GestureTwoFingerDragStart
	GestureTwoFingerDrag
	GestureTwoFingerDragEnd
	GestureScroll
	GesturePinch
	GestureClick
	GestureKeyDown
	GestureKeyUp
)

func (g GestureType) String() string {
	switch g {
	case GestureHover:
		return "hover"
	case GestureDragStart:
		return "drag-start"
	case GestureDrag:
		return "drag"
	case GestureDragEnd:
		return "drag-end"
	case GestureTwoFingerDragStart:
		return "two-finger-drag-start"
	case GestureTwoFingerDrag:
		return "two-finger-drag"
	case GestureTwoFingerDragEnd:
		return "two-finger-drag-end"
	case GestureScroll:
		return "scroll"
	case GesturePinch:
		return "pinch"
	case GestureClick:
		return "click"
	case GestureKeyDown:
		return "key-down"
	case GestureKeyUp:
		return "key-up"
	}
	return "unknown"
}

// IsDrag reports whether g is a part of a one or more pointer drag.
func (g GestureType) IsDrag() bool {
	switch g {
	case GestureDragStart, GestureDrag, GestureDragEnd,
		GestureTwoFingerDragStart, GestureTwoFingerDrag, GestureTwoFingerDragEnd:
		return true
	}
	return false
}

func (g GestureType) isDragEnd() bool {
	return g == GestureDragEnd || g == GestureTwoFingerDragEnd
}

func (g GestureType) isDragStart() bool {
	return g == GestureDragStart || g == GestureTwoFingerDragStart
}

// GestureEvent is a pointer, wheel or key input folded into a gesture.
type GestureEvent struct {
	Type GestureType
	Time time.Duration

	Point                ViewPoint
	MovementX, MovementY float64

	// Buttons is the pressed mouse button mask. Touches is the number of
	// touch points, zero for mouse input.
	Buttons event.Buttons
	Touches int

	Modifiers event.Modifiers

	// Scroll is the wheel delta or the pinch distance change, positive
	// away from the scene.
	Scroll float64

	// Code is the DOM key code of key gestures.
	Code string
}

// Classifier maps gestures to navigation types.
type Classifier struct {
	// FirstPersonModifier turns any drag into a first person rotation
	// while held.
	FirstPersonModifier event.Modifiers
}

var defaultClassifier = Classifier{FirstPersonModifier: event.ModCtrl}

// Classify uses a Classifier with the default modifiers.
func Classify(e GestureEvent, prev NavigationType, allowed TypeSet) NavigationType {
	return defaultClassifier.Classify(e, prev, allowed)
}

// Classify returns the navigation type for e given the previous type.
func (c Classifier) Classify(e GestureEvent, prev NavigationType, allowed TypeSet) NavigationType {
	zooming := e.Type == GestureScroll || e.Type == GesturePinch
	if prev == Zoom && !zooming {
		return None
	}
	if e.Type.isDragEnd() {
		return None
	}
	if e.Type.IsDrag() {
		var candidate NavigationType
		if e.Touches == 0 {
			candidate = typeOfButtons(e.Buttons)
		} else {
			candidate = typeOfTouches(e.Touches)
		}
		if c.FirstPersonModifier != 0 && e.Modifiers&c.FirstPersonModifier != 0 && allowed.Has(FirstPersonRotation) {
			return FirstPersonRotation
		}
		if candidate != None && allowed.Has(candidate) {
			return candidate
		}
		return None
	}
	if zooming && allowed.Has(Zoom) {
		return Zoom
	}
	return None
}

func typeOfButtons(b event.Buttons) NavigationType {
	switch b {
	case event.ButtonsLeft:
		return Pan
	case event.ButtonsRight:
		return Rotation
	case event.ButtonsLeft | event.ButtonsRight:
		return FirstPersonRotation
	}
	return None
}

func typeOfTouches(n int) NavigationType {
	switch n {
	case 1:
		return Rotation
	case 2:
		return Pan
	case 3:
		return FirstPersonRotation
	}
	return None
}
