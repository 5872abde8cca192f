// Package event holds the input event values consumed by the navigation
// controllers and a small ordered callback emitter.
package event

import (
	"time"
)

type MouseButton int

const (
	MouseButtonNull   MouseButton = -1
	MouseButtonLeft   MouseButton = 0
	MouseButtonMiddle MouseButton = 1
	MouseButtonRight  MouseButton = 2
)

// Buttons is the pressed button mask in the DOM "buttons" layout.
type Buttons int

const (
	ButtonsLeft   Buttons = 1
	ButtonsRight  Buttons = 2
	ButtonsMiddle Buttons = 4
)

// Mask returns the Buttons bit of b.
func (b MouseButton) Mask() Buttons {
	switch b {
	case MouseButtonLeft:
		return ButtonsLeft
	case MouseButtonMiddle:
		return ButtonsMiddle
	case MouseButtonRight:
		return ButtonsRight
	}
	return 0
}

func (b Buttons) String() string {
	switch b {
	case 0:
		return "none"
	case ButtonsLeft:
		return "left"
	case ButtonsRight:
		return "right"
	case ButtonsMiddle:
		return "middle"
	case ButtonsLeft | ButtonsRight:
		return "left+right"
	}
	return "mixed"
}

type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

type MouseEvent struct {
	// Time is the event timestamp on the same clock as frame callbacks.
	Time time.Duration

	OffsetX, OffsetY     float64
	MovementX, MovementY float64
	Button               MouseButton
	Buttons              Buttons
	AltKey               bool
	CtrlKey              bool
	ShiftKey             bool
	MetaKey              bool
}

func (e MouseEvent) Modifiers() Modifiers {
	var m Modifiers
	if e.ShiftKey {
		m |= ModShift
	}
	if e.CtrlKey {
		m |= ModCtrl
	}
	if e.AltKey {
		m |= ModAlt
	}
	if e.MetaKey {
		m |= ModMeta
	}
	return m
}

type DeltaMode int

const (
	DOM_DELTA_PIXEL DeltaMode = 0x00
	DOM_DELTA_LINE  DeltaMode = 0x01
	DOM_DELTA_PAGE  DeltaMode = 0x02
)

type WheelEvent struct {
	MouseEvent
	DeltaX, DeltaY, DeltaZ float64
	DeltaMode              DeltaMode
}

type PointerType string

const (
	PointerMouse PointerType = "mouse"
	PointerTouch PointerType = "touch"
	PointerPen   PointerType = "pen"
)

type PointerEvent struct {
	MouseEvent
	PointerId   int
	PointerType PointerType
	IsPrimary   bool
}

func (e PointerEvent) Touch() bool {
	return e.PointerType == PointerTouch
}

type KeyboardEvent struct {
	Time     time.Duration
	Code     string
	Key      string
	Repeat   bool
	AltKey   bool
	CtrlKey  bool
	ShiftKey bool
	MetaKey  bool
}
