package nav

import (
	"github.com/go-gl/mathgl/mgl64"
)

// PanEngine slides the camera so that the anchor stays under the pointer on
// the plane orthogonal to the view direction.
type PanEngine struct {
	clamp Clamp

	planeDistance float64
	calibrated    bool
}

func NewPanEngine(clamp Clamp) *PanEngine {
	return &PanEngine{clamp: clamp}
}

func (p *PanEngine) Reset() {
	p.planeDistance = 0
	p.calibrated = false
}

// PlaneDistance returns the distance to the pan plane, valid after the first
// call following Reset.
func (p *PanEngine) PlaneDistance() (float64, bool) {
	return p.planeDistance, p.calibrated
}

// PanOverOrthogonalPlane returns the camera translated so that anchor is
// under vp. The first call after Reset only records the plane distance.
// ok is false if the camera must not move.
func (p *PanEngine) PanOverOrthogonalPlane(cam Camera, anchor mgl64.Vec3, vp ViewPoint, size ViewSize) (Camera, bool) {
	if !p.calibrated {
		p.planeDistance = anchor.Sub(cam.Eye).Dot(cam.Forward)
		p.calibrated = true
		return cam, false
	}
	if size.Height <= 0 {
		return cam, false
	}
	right, ok := cam.Right()
	if !ok {
		return cam, false
	}
	tanX, tanY := cam.ViewTangents(vp, size)

	d := p.planeDistance
	newPoint := cam.Eye.
		Add(cam.Forward.Mul(d)).
		Add(right.Mul(tanX * d)).
		Add(cam.Up.Mul(tanY * d))
	eye := cam.Eye.Add(anchor.Sub(newPoint))
	if !p.clamp.Contains(eye) {
		return cam, false
	}
	cam.Eye = eye
	return cam, true
}
