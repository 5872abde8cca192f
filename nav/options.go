package nav

import (
	"time"

	"github.com/golang/geo/s1"

	"github.com/seqsense/camnav/event"
	"github.com/seqsense/camnav/fling"
)

type Options struct {
	Allowed TypeSet
	Frame   Frame
	// Bounds limits the eye position. Nil is unbounded.
	Bounds *Bounds

	HorizontalSpeed s1.Angle
	VerticalSpeed   s1.Angle

	MinClearance    float64
	ZoomDuration    time.Duration
	ZoomSpeed       float64
	MaxZoomFraction float64
	// SurfaceApproach is the share of the distance to a double clicked
	// surface the camera travels.
	SurfaceApproach float64

	KeyMode  KeyMode
	KeySpeed float64

	FirstPersonModifier event.Modifiers
	ThroughModifier     event.Modifiers
	PointerLockButtons  event.Buttons

	DoubleClickInterval   time.Duration
	GizmoPixels           float64
	DefaultAnchorDistance float64

	Fling fling.Options
}

func DefaultOptions() Options {
	return Options{
		Allowed:               AllTypes,
		HorizontalSpeed:       defaultHorizontalSpeed,
		VerticalSpeed:         defaultVerticalSpeed,
		MinClearance:          defaultMinClearance,
		ZoomDuration:          defaultZoomDuration,
		ZoomSpeed:             0.1,
		MaxZoomFraction:       0.9,
		SurfaceApproach:       0.75,
		KeySpeed:              defaultKeySpeed,
		FirstPersonModifier:   event.ModCtrl,
		ThroughModifier:       event.ModShift,
		PointerLockButtons:    event.ButtonsRight,
		DoubleClickInterval:   defaultDoubleClickInterval,
		GizmoPixels:           24,
		DefaultAnchorDistance: 100,
		Fling:                 fling.DefaultOptions(),
	}
}
