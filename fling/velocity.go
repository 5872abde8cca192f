package fling

import (
	"time"
)

const maxSamples = 8

type sample struct {
	t    time.Duration
	x, y float64
}

// VelocityTracker records pointer positions during a drag and estimates the
// release velocity from the trailing deltas.
type VelocityTracker struct {
	opts    Options
	samples []sample
}

func NewVelocityTracker(opts Options) *VelocityTracker {
	return &VelocityTracker{opts: opts}
}

func (v *VelocityTracker) Reset() {
	v.samples = v.samples[:0]
}

func (v *VelocityTracker) Add(t time.Duration, x, y float64) {
	if len(v.samples) == maxSamples {
		copy(v.samples, v.samples[1:])
		v.samples = v.samples[:maxSamples-1]
	}
	v.samples = append(v.samples, sample{t: t, x: x, y: y})
}

// Release returns the release velocity in pixels per second.
// ok is false if the pointer stopped moving before the release.
func (v *VelocityTracker) Release(t time.Duration, touch bool) (vx, vy float64, ok bool) {
	if len(v.samples) < 2 {
		return 0, 0, false
	}
	last := v.samples[len(v.samples)-1]
	if t-last.t > v.opts.ReleaseThreshold {
		return 0, 0, false
	}
	n := v.opts.MouseSamples
	if touch {
		n = v.opts.TouchSamples
	}
	if n > len(v.samples)-1 {
		n = len(v.samples) - 1
	}
	if n < 1 {
		return 0, 0, false
	}
	first := v.samples[len(v.samples)-1-n]
	vx = (last.x - first.x) / float64(n) * v.opts.VelocityGain
	vy = (last.y - first.y) / float64(n) * v.opts.VelocityGain
	if vx == 0 && vy == 0 {
		return 0, 0, false
	}
	return vx, vy, true
}
