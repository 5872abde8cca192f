package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/s1"

	"github.com/seqsense/camnav/box"
	"github.com/seqsense/camnav/event"
	"github.com/seqsense/camnav/nav"
)

type console struct {
	s *session
}

var (
	errArgumentNumber = errors.New("invalid number of arguments")
	errInvalidCommand = errors.New("invalid command")
	errNoBox          = errors.New("no box")
	errNoCloud        = errors.New("no points")
)

const dragSteps = 10

var modifierKeys = map[string]event.Modifiers{
	"shift": event.ModShift,
	"ctrl":  event.ModCtrl,
	"alt":   event.ModAlt,
	"meta":  event.ModMeta,
}

var consoleCommands = map[string]func(s *session, args []string) ([][]float64, error){
	"down": func(s *session, args []string) ([][]float64, error) {
		v, err := floats(args, 2, 3)
		if err != nil {
			return nil, err
		}
		b := event.MouseButtonLeft
		if len(v) == 3 {
			b = event.MouseButton(v[2])
		}
		s.down(v[0], v[1], b)
		return nil, nil
	},
	"move": func(s *session, args []string) ([][]float64, error) {
		v, err := floats(args, 2)
		if err != nil {
			return nil, err
		}
		s.move(v[0], v[1])
		return nil, nil
	},
	"up": func(s *session, args []string) ([][]float64, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		s.up()
		return nil, nil
	},
	"drag": func(s *session, args []string) ([][]float64, error) {
		v, err := floats(args, 4, 5)
		if err != nil {
			return nil, err
		}
		b := event.MouseButtonLeft
		if len(v) == 5 {
			b = event.MouseButton(v[4])
		}
		s.down(v[0], v[1], b)
		for i := 1; i <= dragSteps; i++ {
			s.r.Tick()
			t := float64(i) / dragSteps
			s.move(v[0]+(v[2]-v[0])*t, v[1]+(v[3]-v[1])*t)
		}
		s.up()
		return nil, nil
	},
	"click": func(s *session, args []string) ([][]float64, error) {
		v, err := floats(args, 2)
		if err != nil {
			return nil, err
		}
		s.click(v[0], v[1])
		return nil, nil
	},
	"wheel": func(s *session, args []string) ([][]float64, error) {
		v, err := floats(args, 1)
		if err != nil {
			return nil, err
		}
		s.wheel(v[0])
		return nil, nil
	},
	"key_down": func(s *session, args []string) ([][]float64, error) {
		if len(args) != 1 {
			return nil, errArgumentNumber
		}
		s.key(args[0], true)
		return nil, nil
	},
	"key_up": func(s *session, args []string) ([][]float64, error) {
		if len(args) != 1 {
			return nil, errArgumentNumber
		}
		s.key(args[0], false)
		return nil, nil
	},
	"mod": func(s *session, args []string) ([][]float64, error) {
		var m event.Modifiers
		for _, a := range args {
			k, ok := modifierKeys[strings.ToLower(a)]
			if !ok {
				return nil, fmt.Errorf("unknown modifier %q", a)
			}
			m |= k
		}
		s.modifiers = m
		return nil, nil
	},
	"wait": func(s *session, args []string) ([][]float64, error) {
		v, err := floats(args, 1)
		if err != nil {
			return nil, err
		}
		s.r.Run(time.Duration(v[0] * float64(time.Millisecond)))
		return nil, nil
	},
	"camera": func(s *session, args []string) ([][]float64, error) {
		switch len(args) {
		case 0:
		case 5:
			v, err := floats(args, 5)
			if err != nil {
				return nil, err
			}
			s.r.SetCamera(s.r.LookFrom(
				mgl64.Vec3{v[0], v[1], v[2]},
				s1.Angle(v[3])*s1.Degree,
				s1.Angle(v[4])*s1.Degree,
				0,
			))
		default:
			return nil, errArgumentNumber
		}
		c := s.r.Camera()
		return [][]float64{{
			c.Eye[0], c.Eye[1], c.Eye[2],
			c.Yaw.Degrees(), c.Pitch.Degrees(), c.Roll.Degrees(),
		}}, nil
	},
	"type": func(s *session, args []string) ([][]float64, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		return [][]float64{{float64(s.nav.Type())}}, nil
	},
	"anchor": func(s *session, args []string) ([][]float64, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		a, ok := s.nav.Anchor()
		if !ok {
			return nil, nil
		}
		return [][]float64{{a[0], a[1], a[2]}}, nil
	},
	"lock": func(s *session, args []string) ([][]float64, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		if s.r.Locked() {
			return [][]float64{{1}}, nil
		}
		return [][]float64{{0}}, nil
	},
	"box": func(s *session, args []string) ([][]float64, error) {
		switch len(args) {
		case 0:
		case 6, 7:
			v, err := floats(args, 6, 7)
			if err != nil {
				return nil, err
			}
			var yaw float64
			if len(v) == 7 {
				yaw = (s1.Angle(v[6]) * s1.Degree).Radians()
			}
			sy, cy := math.Sincos(yaw)
			b := box.NewOrientedBox(
				mgl64.Vec3{v[0], v[1], v[2]},
				[3]mgl64.Vec3{{cy, sy, 0}, {-sy, cy, 0}, {0, 0, 1}},
				[3]box.Interval{{Max: v[3]}, {Max: v[4]}, {Max: v[5]}},
			)
			if !s.editor.UpdateBox(b) {
				return nil, errors.New("degenerate box")
			}
		default:
			return nil, errArgumentNumber
		}
		return boxCorners(s)
	},
	"box_interval": func(s *session, args []string) ([][]float64, error) {
		if len(args) != 3 {
			return nil, errArgumentNumber
		}
		a, err := strconv.Atoi(args[0])
		if err != nil || a < int(box.X) || a > int(box.Z) {
			return nil, fmt.Errorf("invalid axis %q", args[0])
		}
		var bounds [2]*float64
		for i, arg := range args[1:] {
			if arg == "_" {
				continue
			}
			f, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return nil, err
			}
			bounds[i] = &f
		}
		if _, ok := s.editor.Box(); !ok {
			return nil, errNoBox
		}
		s.editor.SetInterval(box.Axis(a), bounds[0], bounds[1])
		iv := s.editor.Interval(box.Axis(a))
		return [][]float64{{iv.Min, iv.Max}}, nil
	},
	"box_resize": func(s *session, args []string) ([][]float64, error) {
		v, err := floats(args, 2)
		if err != nil {
			return nil, err
		}
		if _, ok := s.editor.Box(); !ok {
			return nil, errNoBox
		}
		s.editor.ResizeFace(int(v[0]), v[1])
		return boxCorners(s)
	},
	"box_translate": func(s *session, args []string) ([][]float64, error) {
		v, err := floats(args, 3)
		if err != nil {
			return nil, err
		}
		if _, ok := s.editor.Box(); !ok {
			return nil, errNoBox
		}
		s.editor.Translate(mgl64.Vec3{v[0], v[1], v[2]})
		return boxCorners(s)
	},
	"box_rotate": func(s *session, args []string) ([][]float64, error) {
		v, err := floats(args, 1)
		if err != nil {
			return nil, err
		}
		b, ok := s.editor.Box()
		if !ok {
			return nil, errNoBox
		}
		s.editor.RotateAroundZ(b.Center(), s1.Angle(v[0])*s1.Degree)
		return boxCorners(s)
	},
	"box_build": func(s *session, args []string) ([][]float64, error) {
		v, err := floats(args, 1)
		if err != nil {
			return nil, err
		}
		s.setBuilding(v[0] != 0)
		return nil, nil
	},
	"box_select": func(s *session, args []string) ([][]float64, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		if s.cloud == nil {
			return nil, errNoCloud
		}
		b, ok := s.editor.Box()
		if !ok {
			return nil, errNoBox
		}
		selected, err := b.SelectPoints(s.cloud)
		if err != nil {
			return nil, err
		}
		res := make([]float64, 0, len(selected))
		for _, i := range selected {
			res = append(res, float64(i))
		}
		return [][]float64{res}, nil
	},
	"bounds": func(s *session, args []string) ([][]float64, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		if s.bounds == nil {
			return nil, nil
		}
		b := *s.bounds
		return [][]float64{{b.Min[0], b.Min[1], b.Min[2]}, {b.Max[0], b.Max[1], b.Max[2]}}, nil
	},
	"draw": func(s *session, args []string) ([][]float64, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		var c drawCounter
		s.stack.OnDraw(&c)
		return [][]float64{{
			float64(c.anchors), float64(c.boxes), float64(c.focused), float64(c.polylines),
		}}, nil
	},
	"focus": func(s *session, args []string) ([][]float64, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		id, ok := s.focus.ID()
		if !ok {
			id = -1
		}
		return [][]float64{{float64(id)}}, nil
	},
}

// drawCounter counts the overlay primitives of a frame.
type drawCounter struct {
	anchors, boxes, focused, polylines int
}

func (c *drawCounter) DrawAnchor(mgl64.Vec3, float64, nav.NavigationType) { c.anchors++ }

func (c *drawCounter) DrawBox(_ [8]mgl64.Vec3, focused bool) {
	c.boxes++
	if focused {
		c.focused++
	}
}

func (c *drawCounter) DrawPolyline([]mgl64.Vec3) { c.polylines++ }

func boxCorners(s *session) ([][]float64, error) {
	b, ok := s.editor.Box()
	if !ok {
		return nil, errNoBox
	}
	var res [][]float64
	for i, c := range b.Corners {
		res = append(res, []float64{float64(i), c[0], c[1], c[2]})
	}
	return res, nil
}

// floats parses args as numbers. The number of args must be one of n.
func floats(args []string, n ...int) ([]float64, error) {
	valid := false
	for _, l := range n {
		if len(args) == l {
			valid = true
		}
	}
	if !valid {
		return nil, errArgumentNumber
	}
	var res []float64
	for _, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, err
		}
		res = append(res, f)
	}
	return res, nil
}

func (c *console) Run(line string) (string, error) {
	args := strings.Fields(line)
	if len(args) == 0 || strings.HasPrefix(args[0], "#") {
		return "", nil
	}
	fn, ok := consoleCommands[args[0]]
	if !ok {
		return "", errInvalidCommand
	}
	res, err := fn(c.s, args[1:])
	if err != nil {
		return "", err
	}
	var resStr []string
	for _, vv := range res {
		var resLine []string
		for _, v := range vv {
			resLine = append(resLine, strconv.FormatFloat(v, 'f', 3, 64))
		}
		resStr = append(resStr, strings.Join(resLine, " "))
	}
	return strings.Join(resStr, "\n"), nil
}
