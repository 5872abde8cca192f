package overlay

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/s1"

	"github.com/seqsense/camnav/nav"
)

func topDown() *Lines {
	l := &Lines{}
	l.Reset(nav.Camera{
		Eye:     mgl64.Vec3{0, 0, 10},
		Forward: mgl64.Vec3{0, 0, -1},
		Up:      mgl64.Vec3{0, 1, 0},
		FovY:    90 * s1.Degree,
	}, nav.ViewSize{Width: 200, Height: 200})
	return l
}

func TestLines_Segment(t *testing.T) {
	testCases := map[string]struct {
		a, b     mgl64.Vec3
		visible  bool
		expected []float32
	}{
		"Visible": {
			a: mgl64.Vec3{0, 0, 0}, b: mgl64.Vec3{10, 10, 0},
			visible:  true,
			expected: []float32{0, 0, 1, 1},
		},
		"Behind": {
			a: mgl64.Vec3{0, 0, 20}, b: mgl64.Vec3{1, 0, 20},
		},
		"Crossing": {
			a: mgl64.Vec3{5, 0, 0}, b: mgl64.Vec3{5, 0, 30},
			visible: true,
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			l := topDown()
			if ok := l.Segment(tt.a, tt.b, ColorBox); ok != tt.visible {
				t.Fatalf("Expected visible=%v", tt.visible)
			}
			if !tt.visible {
				if l.Len() != 0 {
					t.Errorf("Expected no vertices, got %d", l.Len())
				}
				return
			}
			if l.Len() != 2 || len(l.Col) != 8 {
				t.Fatalf("Expected 2 vertices, got %d", l.Len())
			}
			for _, v := range l.Pos {
				if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
					t.Fatalf("Invalid vertex %v", l.Pos)
				}
			}
			for i, v := range tt.expected {
				if math.Abs(float64(l.Pos[i]-v)) > 1e-6 {
					t.Errorf("Expected %v, got %v", tt.expected, l.Pos)
					break
				}
			}
		})
	}
}

func TestLines_Draw(t *testing.T) {
	var corners [8]mgl64.Vec3
	for i := range corners {
		corners[i] = mgl64.Vec3{float64(i >> 2 & 1), float64(i >> 1 & 1), float64(i & 1)}
	}

	testCases := map[string]struct {
		draw     func(l *Lines)
		vertices int
		color    Color
	}{
		"Box":        {draw: func(l *Lines) { l.DrawBox(corners, false) }, vertices: 24, color: ColorBox},
		"FocusedBox": {draw: func(l *Lines) { l.DrawBox(corners, true) }, vertices: 24, color: ColorBoxFocused},
		"Anchor": {
			draw:     func(l *Lines) { l.DrawAnchor(mgl64.Vec3{}, 1, nav.Pan) },
			vertices: 6,
			color:    anchorColors[nav.Pan],
		},
		"Polyline": {
			draw:     func(l *Lines) { l.DrawPolyline([]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}) },
			vertices: 4,
			color:    ColorPolyline,
		},
		"Grid": {draw: func(l *Lines) { l.DrawGrid(1, 1) }, vertices: 12, color: ColorGrid},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			l := topDown()
			tt.draw(l)
			if l.Len() != tt.vertices {
				t.Fatalf("Expected %d vertices, got %d", tt.vertices, l.Len())
			}
			if c := (Color{l.Col[0], l.Col[1], l.Col[2], l.Col[3]}); c != tt.color {
				t.Errorf("Expected color %v, got %v", tt.color, c)
			}
			l.Reset(l.Camera, l.Size)
			if l.Len() != 0 || len(l.Col) != 0 {
				t.Error("Reset must drop the vertices")
			}
		})
	}
}
