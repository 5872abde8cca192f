package box

import (
	"math"

	"fortio.org/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/s1"

	"github.com/seqsense/camnav/event"
	"github.com/seqsense/camnav/mat"
)

const (
	MinWidth = 0.01
	MaxWidth = 10000.0
)

// Limits bounds the width a face resize can give to the box.
type Limits struct {
	MinWidth, MaxWidth float64
}

func DefaultLimits() Limits {
	return Limits{MinWidth: MinWidth, MaxWidth: MaxWidth}
}

// IntervalChange is emitted when an interval of the edited box is set.
type IntervalChange struct {
	Axis      Axis
	Direction mgl64.Vec3
	Min, Max  float64
}

// Editor keeps an oriented box with its decomposition and applies edits.
// All edits are ignored until UpdateBox is called.
type Editor struct {
	Limits Limits

	BoxChanged      event.Emitter[OrientedBox]
	IntervalChanged event.Emitter[IntervalChange]

	box    OrientedBox
	origin mgl64.Vec3
	dirs   [3]mgl64.Vec3
	iv     [3]Interval
	valid  bool
}

func NewEditor() *Editor {
	return &Editor{Limits: DefaultLimits()}
}

// UpdateBox replaces the edited box and its decomposition. Boxes with a
// degenerate edge are refused.
func (e *Editor) UpdateBox(b OrientedBox) bool {
	origin, dirs, iv, ok := b.Decompose()
	if !ok {
		log.Warnf("Ignoring degenerate box %v", b.Corners)
		return false
	}
	e.box, e.origin, e.dirs, e.iv = b, origin, dirs, iv
	e.valid = true
	return true
}

func (e *Editor) Box() (OrientedBox, bool) {
	return e.box, e.valid
}

func (e *Editor) Origin() mgl64.Vec3 {
	return e.origin
}

func (e *Editor) Direction(a Axis) mgl64.Vec3 {
	return e.dirs[a]
}

func (e *Editor) Interval(a Axis) Interval {
	return e.iv[a]
}

func (e *Editor) SetXInterval(min, max *float64) {
	e.SetInterval(X, min, max)
}

func (e *Editor) SetYInterval(min, max *float64) {
	e.SetInterval(Y, min, max)
}

func (e *Editor) SetZInterval(min, max *float64) {
	e.SetInterval(Z, min, max)
}

// SetInterval sets the given bounds of the interval along a and moves the
// corners of the affected faces. Corners of the other faces keep their exact
// positions.
func (e *Editor) SetInterval(a Axis, min, max *float64) {
	if !e.valid {
		return
	}
	dir := e.dirs[a]
	iv := e.iv[a]
	corners := e.box.Corners
	if min != nil {
		d := dir.Mul(*min - iv.Min)
		for i := range corners {
			if i&a.bit() != 0 {
				corners[i] = corners[i].Add(d)
			}
		}
		iv.Min = *min
	}
	if max != nil {
		d := dir.Mul(*max - iv.Max)
		for i := range corners {
			if i&a.bit() == 0 {
				corners[i] = corners[i].Add(d)
			}
		}
		iv.Max = *max
	}
	e.iv[a] = iv
	e.box = OrientedBox{Corners: corners}

	e.IntervalChanged.Emit(IntervalChange{Axis: a, Direction: dir, Min: iv.Min, Max: iv.Max})
	e.BoxChanged.Emit(e.box)
}

// Translate moves the box by v.
func (e *Editor) Translate(v mgl64.Vec3) {
	if !e.valid {
		return
	}
	e.origin = e.origin.Add(v)
	e.rebuild()
}

// RotateAroundZ rotates the box by angle around the line through center
// along the box Z axis.
func (e *Editor) RotateAroundZ(center mgl64.Vec3, angle s1.Angle) {
	if !e.valid {
		return
	}
	axis := e.dirs[Z]
	rad := angle.Radians()
	e.origin = mat.RotateAroundPoint(e.origin, center, axis, rad)
	for a := range e.dirs {
		e.dirs[a] = mat.RotateAround(e.dirs[a], axis, rad)
	}
	e.rebuild()
}

func (e *Editor) rebuild() {
	e.box = NewOrientedBox(e.origin, e.dirs, e.iv)
	e.BoxChanged.Emit(e.box)
}

// ResizeFace moves face f to the signed distance from the origin along its
// axis, keeping the box width within Limits.
func (e *Editor) ResizeFace(f int, distance float64) {
	if !e.valid || math.IsNaN(distance) || f < 0 || 5 < f {
		return
	}
	a, max := Face(f)
	iv := e.iv[a]
	if max {
		d := clamp(distance, iv.Min+e.Limits.MinWidth, iv.Min+e.Limits.MaxWidth)
		e.SetInterval(a, nil, &d)
		return
	}
	d := clamp(distance, iv.Max-e.Limits.MaxWidth, iv.Max-e.Limits.MinWidth)
	e.SetInterval(a, &d, nil)
}

// DragFace resizes face f to the position on its axis closest to r.
func (e *Editor) DragFace(f int, r mat.Ray) bool {
	if !e.valid || f < 0 || 5 < f {
		return false
	}
	a, _ := Face(f)
	dir := e.dirs[a]
	p, _, ok := r.ClosestOnLine(e.box.FaceCenter(f), dir)
	if !ok {
		return false
	}
	e.ResizeFace(f, p.Sub(e.origin).Dot(dir))
	return true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
