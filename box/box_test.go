package box

import (
	"math"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	pcmat "github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"

	"github.com/seqsense/camnav/mat"
)

const tol = 1e-9

var unitDirs = [3]mgl64.Vec3{mat.UnitX, mat.UnitY, mat.UnitZ}

func rotatedDirs(deg float64) [3]mgl64.Vec3 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return [3]mgl64.Vec3{{c, s, 0}, {-s, c, 0}, {0, 0, 1}}
}

func TestNewOrientedBox(t *testing.T) {
	b := NewOrientedBox(mgl64.Vec3{1, 2, 3}, unitDirs, [3]Interval{{0, 2}, {0, 3}, {0, 4}})
	expected := map[int]mgl64.Vec3{
		7: {1, 2, 3},
		3: {3, 2, 3},
		5: {1, 5, 3},
		6: {1, 2, 7},
		0: {3, 5, 7},
	}
	for i, p := range expected {
		if !mat.Near(b.Corners[i], p, tol) {
			t.Errorf("Corner %d: expected %v, got %v", i, p, b.Corners[i])
		}
	}
	if c := b.Center(); !mat.Near(c, mgl64.Vec3{2, 3.5, 5}, tol) {
		t.Errorf("Expected center (2, 3.5, 5), got %v", c)
	}
}

func TestDecompose(t *testing.T) {
	testCases := map[string]struct {
		origin mgl64.Vec3
		dirs   [3]mgl64.Vec3
		iv     [3]Interval
	}{
		"AxisAligned": {
			origin: mgl64.Vec3{1, 2, 3},
			dirs:   unitDirs,
			iv:     [3]Interval{{0, 2}, {0, 3}, {0, 4}},
		},
		"Rotated": {
			origin: mgl64.Vec3{-5, 10, 0.5},
			dirs:   rotatedDirs(30),
			iv:     [3]Interval{{0, 1.5}, {0, 0.25}, {0, 8}},
		},
		"NonZeroMin": {
			origin: mgl64.Vec3{0, 0, 0},
			dirs:   rotatedDirs(-120),
			iv:     [3]Interval{{-1, 1}, {2, 3}, {-4, -1}},
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			b := NewOrientedBox(tt.origin, tt.dirs, tt.iv)
			e := NewEditor()
			if !e.UpdateBox(b) {
				t.Fatal("UpdateBox failed")
			}
			var dirs [3]mgl64.Vec3
			var iv [3]Interval
			for a := X; a <= Z; a++ {
				dirs[a] = e.Direction(a)
				iv[a] = e.Interval(a)
				if !mat.Near(dirs[a], tt.dirs[a], tol) {
					t.Errorf("%v: expected direction %v, got %v", a, tt.dirs[a], dirs[a])
				}
				if iv[a].Min != 0 || math.Abs(iv[a].Width()-tt.iv[a].Width()) > tol {
					t.Errorf("%v: expected width %v from 0, got %v", a, tt.iv[a].Width(), iv[a])
				}
			}
			rebuilt := NewOrientedBox(e.Origin(), dirs, iv)
			for i := range b.Corners {
				if !mat.Near(rebuilt.Corners[i], b.Corners[i], tol) {
					t.Errorf("Corner %d: expected %v, got %v", i, b.Corners[i], rebuilt.Corners[i])
				}
			}
		})
	}
}

func TestContains(t *testing.T) {
	b := NewOrientedBox(mgl64.Vec3{}, rotatedDirs(45), [3]Interval{{0, 2}, {0, 1}, {0, 1}})

	testCases := map[string]struct {
		p        mgl64.Vec3
		expected bool
	}{
		"Center":      {p: b.Center(), expected: true},
		"Corner":      {p: b.Corners[0], expected: true},
		"AlongX":      {p: mgl64.Vec3{1, 1.2, 0.5}, expected: true},
		"AxisAligned": {p: mgl64.Vec3{1.9, 0, 0.5}, expected: false},
		"Above":       {p: mgl64.Vec3{0.5, 0.5, 1.5}, expected: false},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			if got := b.Contains(tt.p); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}

	flat := NewOrientedBox(mgl64.Vec3{}, unitDirs, [3]Interval{{0, 1}, {0, 1}, {0, 0}})
	if flat.Contains(mgl64.Vec3{}) {
		t.Error("Degenerate box must not contain anything")
	}
}

func TestSelectMatrix(t *testing.T) {
	b := NewOrientedBox(mgl64.Vec3{1, 2, 3}, unitDirs, [3]Interval{{0, 2}, {0, 3}, {0, 4}})
	m := b.SelectMatrix()

	testCases := map[string]struct {
		p        mgl64.Vec3
		expected pcmat.Vec3
	}{
		"Origin": {p: mgl64.Vec3{1, 2, 3}, expected: pcmat.Vec3{0, 0, 0}},
		"Center": {p: mgl64.Vec3{2, 3.5, 5}, expected: pcmat.Vec3{0.5, 0.5, 0.5}},
		"Far":    {p: mgl64.Vec3{3, 5, 7}, expected: pcmat.Vec3{1, 1, 1}},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			got := m.TransformAffine(mat.Float32(tt.p))
			for i := range got {
				if math.Abs(float64(got[i]-tt.expected[i])) > 1e-5 {
					t.Fatalf("Expected %v, got %v", tt.expected, got)
				}
			}
		})
	}
}

func TestSelectPoints(t *testing.T) {
	pp := &pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Fields: []string{"x", "y", "z"},
			Size:   []int{4, 4, 4},
			Type:   []string{"F", "F", "F"},
			Count:  []int{1, 1, 1},
			Width:  3,
			Height: 1,
		},
		Points: 3,
	}
	pp.Data = make([]byte, 3*pp.Stride())
	it, err := pp.Vec3Iterator()
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range []pcmat.Vec3{{2, 3, 4}, {0, 0, 0}, {2.9, 4.9, 6.9}} {
		if i > 0 {
			it.Incr()
		}
		it.SetVec3(p)
	}

	b := NewOrientedBox(mgl64.Vec3{1, 2, 3}, unitDirs, [3]Interval{{0, 2}, {0, 3}, {0, 4}})
	selected, err := b.SelectPoints(pp)
	if err != nil {
		t.Fatal(err)
	}
	if expected := []int{0, 2}; !reflect.DeepEqual(expected, selected) {
		t.Errorf("Expected %v, got %v", expected, selected)
	}
}

func TestFaceCorners(t *testing.T) {
	for f := 0; f < 6; f++ {
		a, max := Face(f)
		for _, i := range FaceCorners(f) {
			if onMin := i&a.bit() != 0; onMin == max {
				t.Errorf("Corner %d is not on face %d", i, f)
			}
		}
	}
}

func TestPickFace(t *testing.T) {
	b := NewOrientedBox(mgl64.Vec3{}, unitDirs, [3]Interval{{0, 2}, {0, 2}, {0, 2}})

	testCases := map[string]struct {
		ray      mat.Ray
		ok       bool
		face     int
		expected mgl64.Vec3
	}{
		"Top": {
			ray:      mat.Ray{Origin: mgl64.Vec3{1, 1, 10}, Dir: mgl64.Vec3{0, 0, -1}},
			ok:       true,
			face:     5,
			expected: mgl64.Vec3{1, 1, 2},
		},
		"MinX": {
			ray:      mat.Ray{Origin: mgl64.Vec3{-5, 1, 1}, Dir: mgl64.Vec3{1, 0, 0}},
			ok:       true,
			face:     0,
			expected: mgl64.Vec3{0, 1, 1},
		},
		"Miss": {
			ray: mat.Ray{Origin: mgl64.Vec3{5, 5, 10}, Dir: mgl64.Vec3{0, 0, -1}},
		},
		"Behind": {
			ray: mat.Ray{Origin: mgl64.Vec3{1, 1, 10}, Dir: mgl64.Vec3{0, 0, 1}},
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			f, p, ok := b.PickFace(tt.ray)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v", tt.ok)
			}
			if !ok {
				return
			}
			if f != tt.face || !mat.Near(p, tt.expected, tol) {
				t.Errorf("Expected face %d at %v, got %d at %v", tt.face, tt.expected, f, p)
			}
		})
	}
}
