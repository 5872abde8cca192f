package event

import (
	"syscall/js"
	"time"

	webgl "github.com/seqsense/webgl-go"
)

// Canvas converts the input events of a WebGL canvas. Fields webgl-go does
// not parse are read from the underlying DOM event.
type Canvas struct {
	gl webgl.Canvas
}

func NewCanvas(c webgl.Canvas) Canvas {
	return Canvas{gl: c}
}

func (c Canvas) Focus() {
	c.gl.Focus()
}

func (c Canvas) ClientWidth() int {
	return c.gl.ClientWidth()
}

func (c Canvas) ClientHeight() int {
	return c.gl.ClientHeight()
}

// SetSize sets the drawing buffer size.
func (c Canvas) SetSize(width, height int) {
	c.gl.SetWidth(width)
	c.gl.SetHeight(height)
}

func (c Canvas) SetCursor(cursor string) {
	c.dom().Get("style").Set("cursor", cursor)
}

func (c Canvas) RequestPointerLock() {
	c.dom().Call("requestPointerLock")
}

func (c Canvas) ExitPointerLock() {
	js.Global().Get("document").Call("exitPointerLock")
}

func (c Canvas) dom() js.Value {
	return js.Value(c.gl)
}

// OnPointerLockChange calls cb with the new lock state of this canvas.
// A failed request is reported as unlocked.
func (c Canvas) OnPointerLockChange(cb func(locked bool)) {
	doc := js.Global().Get("document")
	doc.Call("addEventListener", "pointerlockchange",
		js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			cb(doc.Get("pointerLockElement").Equal(c.dom()))
			return nil
		}),
	)
	doc.Call("addEventListener", "pointerlockerror",
		js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			cb(false)
			return nil
		}),
	)
}

func (c Canvas) OnPointerDown(cb func(PointerEvent)) {
	c.gl.OnPointerDown(func(e webgl.PointerEvent) { cb(pointerEvent(e)) })
}

func (c Canvas) OnPointerMove(cb func(PointerEvent)) {
	c.gl.OnPointerMove(func(e webgl.PointerEvent) { cb(pointerEvent(e)) })
}

func (c Canvas) OnPointerUp(cb func(PointerEvent)) {
	c.gl.OnPointerUp(func(e webgl.PointerEvent) { cb(pointerEvent(e)) })
}

// OnPointerCancel has no webgl-go counterpart.
func (c Canvas) OnPointerCancel(cb func(PointerEvent)) {
	c.dom().Call("addEventListener", "pointercancel",
		js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			e := args[0]
			cb(PointerEvent{
				MouseEvent:  MouseEvent{Time: timeStamp(e), Button: MouseButtonNull},
				PointerId:   e.Get("pointerId").Int(),
				PointerType: PointerType(e.Get("pointerType").String()),
				IsPrimary:   e.Get("isPrimary").Bool(),
			})
			return nil
		}),
	)
}

func (c Canvas) OnWheel(cb func(WheelEvent)) {
	c.gl.OnWheel(func(e webgl.WheelEvent) {
		e.PreventDefault()
		cb(WheelEvent{
			MouseEvent: mouseEvent(e.MouseEvent),
			DeltaX:     e.DeltaX,
			DeltaY:     e.DeltaY,
			DeltaZ:     e.DeltaZ,
			DeltaMode:  DeltaMode(e.DeltaMode),
		})
	})
}

func (c Canvas) OnClick(cb func(MouseEvent)) {
	c.gl.OnClick(func(e webgl.MouseEvent) { cb(mouseEvent(e)) })
}

// OnContextMenu also suppresses the browser menu.
func (c Canvas) OnContextMenu(cb func(MouseEvent)) {
	c.gl.OnContextMenu(func(e webgl.MouseEvent) {
		e.PreventDefault()
		cb(mouseEvent(e))
	})
}

func (c Canvas) OnKeyDown(cb func(KeyboardEvent)) {
	c.gl.OnKeyDown(func(e webgl.KeyboardEvent) { cb(keyboardEvent(e)) })
}

func (c Canvas) OnKeyUp(cb func(KeyboardEvent)) {
	c.gl.OnKeyUp(func(e webgl.KeyboardEvent) { cb(keyboardEvent(e)) })
}

func pointerEvent(e webgl.PointerEvent) PointerEvent {
	return PointerEvent{
		MouseEvent:  mouseEvent(e.MouseEvent),
		PointerId:   e.PointerId,
		PointerType: PointerType(e.JS().Get("pointerType").String()),
		IsPrimary:   e.IsPrimary,
	}
}

func mouseEvent(e webgl.MouseEvent) MouseEvent {
	ev := e.JS()
	return MouseEvent{
		Time:      timeStamp(ev),
		OffsetX:   ev.Get("offsetX").Float(),
		OffsetY:   ev.Get("offsetY").Float(),
		MovementX: ev.Get("movementX").Float(),
		MovementY: ev.Get("movementY").Float(),
		Button:    MouseButton(e.Button),
		Buttons:   Buttons(ev.Get("buttons").Int()),
		AltKey:    e.AltKey,
		CtrlKey:   e.CtrlKey,
		ShiftKey:  e.ShiftKey,
		MetaKey:   ev.Get("metaKey").Bool(),
	}
}

func keyboardEvent(e webgl.KeyboardEvent) KeyboardEvent {
	ev := e.JS()
	return KeyboardEvent{
		Time:     timeStamp(ev),
		Code:     e.Code,
		Key:      e.Key,
		Repeat:   ev.Get("repeat").Bool(),
		AltKey:   e.AltKey,
		CtrlKey:  e.CtrlKey,
		ShiftKey: e.ShiftKey,
		MetaKey:  ev.Get("metaKey").Bool(),
	}
}

// timeStamp converts the DOMHighResTimeStamp of the event, which shares its
// origin with requestAnimationFrame timestamps.
func timeStamp(e js.Value) time.Duration {
	return time.Duration(e.Get("timeStamp").Float() * float64(time.Millisecond))
}
