//go:build js

package main

import (
	"syscall/js"
	"time"

	"fortio.org/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/s1"
	webgl "github.com/seqsense/webgl-go"

	"github.com/seqsense/camnav/box"
	"github.com/seqsense/camnav/config"
	"github.com/seqsense/camnav/event"
	"github.com/seqsense/camnav/mat"
	"github.com/seqsense/camnav/nav"
	"github.com/seqsense/camnav/overlay"
	"github.com/seqsense/camnav/sim"
)

const gridHalf, gridStep = 20, 1

// browser locks the pointer on the real canvas instead of simulating it.
type browser struct {
	*sim.Renderer
	canvas event.Canvas
}

func (b *browser) RequestPointerLock() {
	b.canvas.RequestPointerLock()
}

func (b *browser) ExitPointerLock() {
	b.canvas.ExitPointerLock()
}

func main() {
	doc := js.Global().Get("document")
	el := doc.Call("getElementById", "navCanvas")
	el.Set("tabIndex", 0)

	gl, err := webgl.New(el)
	if err != nil {
		log.Errf("WebGL unavailable: %v", err)
		return
	}
	canvas := event.NewCanvas(gl.Canvas)
	if vendor, renderer, ok := overlay.DebugInfo(gl); ok {
		log.Infof("GPU: %s %s", vendor, renderer)
	}
	ov, err := overlay.New(gl)
	if err != nil {
		log.Errf("Failed to initialize overlay: %v", err)
		return
	}

	c := config.Default()
	c.ApplyLogLevel()
	opts := c.NavOptions()

	width, height := canvas.ClientWidth(), canvas.ClientHeight()
	r := &browser{
		Renderer: sim.New(nav.ViewSize{Width: float64(width), Height: float64(height)}, opts.Frame, sim.Ground),
		canvas:   canvas,
	}
	r.SetCamera(r.LookFrom(mgl64.Vec3{0, -15, 10}, 0, -30*s1.Degree, 0))

	ctrl := nav.NewNavigationController(r, opts)
	ctrl.CursorChanged.On(func(cur nav.Cursor) {
		canvas.SetCursor(string(cur))
	})
	ctrl.TypeChanged.On(func(tc nav.TypeChange) {
		log.Debugf("Navigation %v -> %v", tc.From, tc.To)
	})
	canvas.OnPointerLockChange(ctrl.LockChanged)

	editor := box.NewEditor()
	editor.Limits = c.BoxLimits()
	editor.UpdateBox(box.NewOrientedBox(
		mgl64.Vec3{-1, -1, 0},
		[3]mgl64.Vec3{mat.UnitX, mat.UnitY, mat.UnitZ},
		[3]box.Interval{{Min: 0, Max: 2}, {Min: 0, Max: 2}, {Min: 0, Max: 2}},
	))
	faces := box.NewFaceDragController(0, editor, r, &box.Focus{})

	stack := nav.Stack{faces, ctrl}
	stack.Activate()

	tracker := nav.NewPointerTracker(func(e nav.GestureEvent) {
		stack.OnGesture(e)
	})

	// DOM callbacks hand events to the main loop so controllers run on a
	// single goroutine.
	chPointerDown := make(chan event.PointerEvent)
	canvas.OnPointerDown(func(e event.PointerEvent) {
		canvas.Focus()
		chPointerDown <- e
	})
	chPointerMove := make(chan event.PointerEvent)
	canvas.OnPointerMove(func(e event.PointerEvent) { chPointerMove <- e })
	chPointerUp := make(chan event.PointerEvent)
	canvas.OnPointerUp(func(e event.PointerEvent) { chPointerUp <- e })
	chPointerCancel := make(chan event.PointerEvent)
	canvas.OnPointerCancel(func(e event.PointerEvent) { chPointerCancel <- e })
	chWheel := make(chan event.WheelEvent)
	canvas.OnWheel(func(e event.WheelEvent) { chWheel <- e })
	chClick := make(chan event.MouseEvent)
	canvas.OnClick(func(e event.MouseEvent) { chClick <- e })
	canvas.OnContextMenu(func(event.MouseEvent) {})
	chKeyDown := make(chan event.KeyboardEvent)
	canvas.OnKeyDown(func(e event.KeyboardEvent) { chKeyDown <- e })
	chKeyUp := make(chan event.KeyboardEvent)
	canvas.OnKeyUp(func(e event.KeyboardEvent) { chKeyUp <- e })

	chFrame := make(chan time.Duration, 1)
	var raf js.Func
	raf = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		select {
		case chFrame <- time.Duration(args[0].Float() * float64(time.Millisecond)):
		default:
		}
		js.Global().Call("requestAnimationFrame", raf)
		return nil
	})
	js.Global().Call("requestAnimationFrame", raf)

	lines := &overlay.Lines{}
	for {
		select {
		case e := <-chPointerDown:
			tracker.Down(e)
		case e := <-chPointerMove:
			tracker.Move(e)
		case e := <-chPointerUp:
			tracker.Up(e)
		case e := <-chPointerCancel:
			tracker.Cancel(e)
		case e := <-chWheel:
			tracker.Wheel(e)
		case e := <-chClick:
			tracker.Click(e)
		case e := <-chKeyDown:
			tracker.Key(e, true)
		case e := <-chKeyUp:
			tracker.Key(e, false)
		case now := <-chFrame:
			if w, h := canvas.ClientWidth(), canvas.ClientHeight(); w != width || h != height {
				width, height = w, h
				canvas.SetSize(w, h)
				r.Size = nav.ViewSize{Width: float64(w), Height: float64(h)}
			}
			if dt := now - r.Now(); dt > 0 {
				r.Step(dt)
			}
			lines.Reset(r.Camera(), r.Size)
			lines.DrawGrid(gridHalf, gridStep)
			stack.OnDraw(lines)
			ov.Clear(width, height)
			ov.Draw(lines)
		}
	}
}
