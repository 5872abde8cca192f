// Package fling implements a spline based momentum scroller and the release
// velocity estimator feeding it.
package fling

import (
	"math"
	"time"
)

const (
	nbSamples    = 200
	inflexion    = 0.15
	startTension = 0.5
	endTension   = 1.0
	p1           = startTension * inflexion
	p2           = 1 - endTension*(1-inflexion)

	gravityEarth = 9.80665
	inchPerMeter = 39.37
	splineTol    = 1e-5
)

var (
	decelRate = math.Log(0.78) / math.Log(0.9)

	splinePosition [nbSamples + 1]float64
)

func init() {
	xMin := 0.0
	for i := 0; i < nbSamples; i++ {
		alpha := float64(i) / nbSamples

		xMax := 1.0
		var x, tx, coef float64
		for n := 0; n < 100; n++ {
			x = xMin + (xMax-xMin)/2
			coef = 3 * x * (1 - x)
			tx = coef*((1-x)*p1+x*p2) + x*x*x
			if math.Abs(tx-alpha) < splineTol {
				break
			}
			if tx > alpha {
				xMax = x
			} else {
				xMin = x
			}
		}
		splinePosition[i] = coef*((1-x)*startTension+x) + x*x*x
	}
	splinePosition[nbSamples] = 1
}

// SplinePosition returns the travelled fraction of the fling distance and the
// velocity coefficient at normalized time t in [0, 1].
func SplinePosition(t float64) (distance, velocity float64) {
	if t <= 0 {
		t = 0
	}
	if t >= 1 {
		return 1, 0
	}
	index := int(nbSamples * t)
	tInf := float64(index) / nbSamples
	tSup := float64(index+1) / nbSamples
	dInf := splinePosition[index]
	dSup := splinePosition[index+1]
	velocity = (dSup - dInf) / (tSup - tInf)
	distance = dInf + (t-tInf)*velocity
	return distance, velocity
}

type Options struct {
	// DPI scales the physical deceleration to screen pixels.
	DPI float64
	// Friction is the scroll friction factor.
	Friction float64
	// VelocityGain multiplies the averaged per-sample delta into a
	// pixels per second release velocity.
	VelocityGain float64
	// ReleaseThreshold discards a release if the last sample is older.
	ReleaseThreshold time.Duration
	// MouseSamples and TouchSamples are the number of trailing deltas
	// averaged on release.
	MouseSamples int
	TouchSamples int
}

func DefaultOptions() Options {
	return Options{
		DPI:              160,
		Friction:         0.015,
		VelocityGain:     20,
		ReleaseThreshold: 25 * time.Millisecond,
		MouseSamples:     3,
		TouchSamples:     1,
	}
}

// Scroller produces per-frame deltas of a decelerating fling.
// Velocities are in pixels per second.
type Scroller struct {
	finished bool

	distance   float64
	duration   time.Duration
	directionX float64
	directionY float64
	prevX      float64
	prevY      float64
	velCoef    float64

	physicalCoeff float64
	friction      float64
}

func NewScroller(opts Options) *Scroller {
	return &Scroller{
		finished:      true,
		physicalCoeff: gravityEarth * inchPerMeter * opts.DPI * 0.84,
		friction:      opts.Friction,
	}
}

func (s *Scroller) Finished() bool {
	return s.finished
}

// Duration of the current fling.
func (s *Scroller) Duration() time.Duration {
	return s.duration
}

// Distance of the current fling in pixels.
func (s *Scroller) Distance() float64 {
	return s.distance
}

func (s *Scroller) Direction() (x, y float64) {
	return s.directionX, s.directionY
}

// Fling starts a new fling. If a fling is still running and the new velocity
// points the same way on both axes, the current velocity is added.
func (s *Scroller) Fling(vx, vy float64) {
	if !s.finished {
		cx, cy := s.CurrentVelocity()
		vx, vy = Carry(vx, vy, cx, cy)
	}
	s.prevX, s.prevY = 0, 0
	s.velCoef = 0

	v := math.Hypot(vx, vy)
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		s.finished = true
		s.distance, s.duration = 0, 0
		return
	}

	l := math.Log(inflexion * v / (s.friction * s.physicalCoeff))
	s.duration = time.Duration(1000 * math.Exp(l/(decelRate-1)) * float64(time.Millisecond))
	s.distance = s.friction * s.physicalCoeff * math.Exp(decelRate/(decelRate-1)*l)
	s.directionX = vx / v
	s.directionY = vy / v
	s.finished = false
}

// Update advances the fling to normalized time t and returns the delta since
// the previous update. Reaching t >= 1 finishes the fling with a zero delta.
func (s *Scroller) Update(t float64) (dx, dy float64) {
	if s.finished {
		return 0, 0
	}
	if t >= 1 {
		s.finished = true
		s.velCoef = 0
		return 0, 0
	}
	d, v := SplinePosition(t)
	s.velCoef = v

	x := d * s.distance * s.directionX
	y := d * s.distance * s.directionY
	dx, dy = x-s.prevX, y-s.prevY
	s.prevX, s.prevY = x, y
	return dx, dy
}

// CurrentVelocity returns the velocity at the last update.
func (s *Scroller) CurrentVelocity() (vx, vy float64) {
	if s.finished || s.duration <= 0 {
		return 0, 0
	}
	v := s.velCoef * s.distance / s.duration.Seconds()
	return v * s.directionX, v * s.directionY
}

func (s *Scroller) Abort() {
	s.finished = true
	s.velCoef = 0
}

// Carry adds the velocity c of an earlier fling to v if both point the same
// way on both axes.
func Carry(vx, vy, cx, cy float64) (float64, float64) {
	if sign(vx) != sign(cx) || sign(vy) != sign(cy) {
		return vx, vy
	}
	return vx + cx, vy + cy
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
