package nav

import (
	"math"
	"time"
)

const (
	// notchRepeat is how many equal consecutive magnitudes mark a notched
	// wheel.
	notchRepeat = 5

	// warmupEvents are needed before the wheel kind is trusted.
	warmupEvents = 5

	initialPeakRate = 10
	peakDecay       = 0.95
	maxRateWindow   = 100 * time.Millisecond

	// smoothScale maps the decaying peak rate to about three units per
	// event of a typical touchpad swipe.
	smoothScale = 250
)

// WheelKind is the detected kind of scroll device.
type WheelKind int

const (
	WheelUnknown WheelKind = iota
	// WheelNotched reports the same delta for every notch.
	WheelNotched
	// WheelSmooth reports varying deltas, like touchpads and free-spinning
	// wheels.
	WheelSmooth
)

func (k WheelKind) String() string {
	switch k {
	case WheelNotched:
		return "notched"
	case WheelSmooth:
		return "smooth"
	default:
		return "unknown"
	}
}

// ScrollNormalizer converts wheel deltas to zoom units. Notched wheels give
// one unit per notch. Smooth wheels are scaled by their recent peak rate so
// a swipe gives a few units whatever the device resolution.
type ScrollNormalizer struct {
	events int
	kind   WheelKind

	repeats int
	prevAbs float64

	peak    float64
	prevAt  time.Duration
	pending float64
}

// Kind returns the detected wheel kind.
func (n *ScrollNormalizer) Kind() WheelKind {
	return n.kind
}

// Ready reports whether enough events are seen to trust the wheel kind.
func (n *ScrollNormalizer) Ready() bool {
	return n.events > warmupEvents
}

// Normalize returns the zoom units of delta d received at now. Until the
// normalizer is ready every non-zero delta counts as one notch, and ready is
// false.
func (n *ScrollNormalizer) Normalize(d float64, now time.Duration) (units float64, ready bool) {
	if n.events <= warmupEvents {
		n.events++
	}
	ready = n.Ready()
	if d == 0 {
		return 0, ready
	}

	n.classify(math.Abs(d))
	n.trackRate(d, now)

	if n.kind == WheelNotched || !ready {
		return math.Copysign(1, d), ready
	}
	return d * smoothScale / n.peak, ready
}

func (n *ScrollNormalizer) classify(abs float64) {
	if abs == n.prevAbs {
		n.repeats++
	} else {
		n.repeats = 0
	}
	n.prevAbs = abs

	kind := WheelSmooth
	if n.repeats >= notchRepeat {
		kind = WheelNotched
	}
	if kind != n.kind {
		n.kind = kind
		n.peak = initialPeakRate
	}
}

// trackRate folds the delta rate into the decaying peak. Deltas sharing a
// timestamp are summed into the next rate sample.
func (n *ScrollNormalizer) trackRate(d float64, now time.Duration) {
	n.pending += d
	dt := now - n.prevAt
	if dt > 0 {
		if dt > maxRateWindow {
			dt = maxRateWindow
		}
		rate := math.Abs(n.pending / dt.Seconds())
		n.pending = 0
		n.prevAt = now
		if rate > n.peak {
			// Average with the previous peak to damp spikes.
			n.peak = (n.peak + rate) / 2
		}
		n.peak *= peakDecay
	}
	if n.peak < 1 {
		n.peak = 1
	}
}
