package box

import (
	"fortio.org/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/seqsense/camnav/event"
	"github.com/seqsense/camnav/mat"
	"github.com/seqsense/camnav/nav"
)

// RayCaster returns the view ray under a view point.
type RayCaster interface {
	ViewRay(p nav.ViewPoint) mat.Ray
}

// FaceDragController resizes a box by dragging its faces with the primary
// button or one finger.
type FaceDragController struct {
	ID     int
	Editor *Editor

	rays  RayCaster
	focus *Focus

	active   bool
	dragging bool
	face     int
}

func NewFaceDragController(id int, editor *Editor, rays RayCaster, focus *Focus) *FaceDragController {
	return &FaceDragController{
		ID:     id,
		Editor: editor,
		rays:   rays,
		focus:  focus,
	}
}

func (c *FaceDragController) Activate() {
	c.active = true
}

func (c *FaceDragController) Deactivate() {
	c.active = false
	c.dragging = false
}

// Dragging returns the dragged face.
func (c *FaceDragController) Dragging() (int, bool) {
	return c.face, c.dragging
}

func (c *FaceDragController) OnGesture(e nav.GestureEvent) bool {
	if !c.active {
		return false
	}
	switch e.Type {
	case nav.GestureDragStart:
		if !primary(e) {
			return false
		}
		b, ok := c.Editor.Box()
		if !ok {
			return false
		}
		f, _, ok := b.PickFace(c.rays.ViewRay(e.Point))
		if !ok {
			return false
		}
		c.dragging, c.face = true, f
		c.focus.Set(c.ID)
		log.Debugf("Box %d: dragging face %d", c.ID, f)
		return true
	case nav.GestureDrag:
		if !c.dragging {
			return false
		}
		c.Editor.DragFace(c.face, c.rays.ViewRay(e.Point))
		return true
	case nav.GestureDragEnd:
		if !c.dragging {
			return false
		}
		c.dragging = false
		return true
	}
	return false
}

func (c *FaceDragController) OnDraw(cv nav.Canvas) {
	if !c.active {
		return
	}
	if b, ok := c.Editor.Box(); ok {
		cv.DrawBox(b.Corners, c.focus.Is(c.ID))
	}
}

func primary(e nav.GestureEvent) bool {
	if e.Touches > 0 {
		return e.Touches == 1
	}
	return e.Buttons == event.ButtonsLeft
}

// BuildController adds clicked surface points to a Builder and draws the
// shape under construction.
type BuildController struct {
	Builder *Builder

	picker  nav.Picker
	active  bool
	preview []mgl64.Vec3
}

func NewBuildController(picker nav.Picker) *BuildController {
	return &BuildController{
		Builder: &Builder{},
		picker:  picker,
	}
}

func (c *BuildController) Activate() {
	c.active = true
}

func (c *BuildController) Deactivate() {
	c.active = false
	c.preview = nil
	c.Builder.Reset()
}

func (c *BuildController) OnGesture(e nav.GestureEvent) bool {
	if !c.active {
		return false
	}
	switch e.Type {
	case nav.GestureClick:
		p, err := c.picker.ViewToWorld(e.Point)
		if err != nil {
			return false
		}
		if !c.Builder.Add(p) {
			log.Debugf("Refused box point %v", p)
		}
		c.preview = nil
		return true
	case nav.GestureHover:
		if c.Builder.Len() == 0 {
			c.preview = nil
			return false
		}
		p, err := c.picker.ViewToWorld(e.Point)
		if err != nil {
			return false
		}
		c.preview = c.Builder.Preview(p)
	}
	return false
}

func (c *BuildController) OnDraw(cv nav.Canvas) {
	if !c.active || len(c.preview) == 0 {
		return
	}
	cv.DrawPolyline(c.preview)
}
