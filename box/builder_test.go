package box

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/seqsense/camnav/mat"
)

func TestBuilder(t *testing.T) {
	testCases := map[string]struct {
		points   []mgl64.Vec3
		corners  map[int]mgl64.Vec3
		refused  []int
		expected int
	}{
		"Box": {
			points: []mgl64.Vec3{{0, 0, 0}, {2, 0, 0}, {1, 3, 0}, {5, 5, 4}},
			corners: map[int]mgl64.Vec3{
				7: {0, 0, 0},
				3: {2, 0, 0},
				5: {0, 3, 0},
				6: {0, 0, 4},
				0: {2, 3, 4},
			},
			expected: 1,
		},
		"Below": {
			points: []mgl64.Vec3{{0, 0, 0}, {2, 0, 0}, {1, 3, 0}, {0, 0, -4}},
			corners: map[int]mgl64.Vec3{
				7: {0, 0, 0},
				6: {0, 0, -4},
				0: {2, 3, -4},
			},
			expected: 1,
		},
		"SkewedThirdPoint": {
			points: []mgl64.Vec3{{0, 0, 0}, {2, 0, 0}, {7, 3, 0}, {0, 0, 1}},
			corners: map[int]mgl64.Vec3{
				5: {0, 3, 0},
				1: {2, 3, 0},
			},
			expected: 1,
		},
		"CoplanarFourthPoint": {
			points:  []mgl64.Vec3{{0, 0, 0}, {2, 0, 0}, {1, 3, 0}, {0.5, 0.5, 0}, {0.5, 0.5, 1}},
			refused: []int{3},
			corners: map[int]mgl64.Vec3{
				6: {0, 0, 1},
				0: {2, 3, 1},
			},
			expected: 1,
		},
		"Collinear": {
			points:  []mgl64.Vec3{{0, 0, 0}, {0, 0, 0}, {2, 0, 0}, {4, 0, 0}},
			refused: []int{1, 3},
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			b := &Builder{}
			var created []OrientedBox
			b.BoxCreated.On(func(ob OrientedBox) { created = append(created, ob) })

			refused := map[int]bool{}
			for _, i := range tt.refused {
				refused[i] = true
			}
			for i, p := range tt.points {
				if ok := b.Add(p); ok == refused[i] {
					t.Fatalf("Point %d: expected accepted=%v", i, !refused[i])
				}
			}
			if len(created) != tt.expected {
				t.Fatalf("Expected %d boxes, got %d", tt.expected, len(created))
			}
			if tt.expected == 0 {
				return
			}
			if b.Len() != 0 {
				t.Error("Builder must be reset after creating a box")
			}
			for i, p := range tt.corners {
				if !mat.Near(created[0].Corners[i], p, tol) {
					t.Errorf("Corner %d: expected %v, got %v", i, p, created[0].Corners[i])
				}
			}
		})
	}
}

func TestBuilder_Preview(t *testing.T) {
	b := &Builder{}
	if n := len(b.Preview(mgl64.Vec3{})); n != 1 {
		t.Errorf("Expected a point, got %d points", n)
	}
	b.Add(mgl64.Vec3{0, 0, 0})
	if n := len(b.Preview(mgl64.Vec3{1, 0, 0})); n != 2 {
		t.Errorf("Expected a line, got %d points", n)
	}
	b.Add(mgl64.Vec3{1, 0, 0})
	rect := b.Preview(mgl64.Vec3{0, 1, 0})
	if len(rect) != 5 || rect[0] != rect[4] {
		t.Errorf("Expected a closed rectangle, got %v", rect)
	}
	b.Add(mgl64.Vec3{0, 1, 0})
	if n := len(b.Preview(mgl64.Vec3{0, 0, 1})); n != 16 {
		t.Errorf("Expected a box outline, got %d points", n)
	}
	if b.Len() != 3 {
		t.Errorf("Preview must not add points, got %d", b.Len())
	}
}

func TestRectFrom3_Degenerate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Degenerate edge must panic")
		}
	}()
	rectFrom3(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{2, 2, 2})
}
