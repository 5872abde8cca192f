package nav

import (
	"errors"
	"math"

	"fortio.org/log"
	"github.com/go-gl/mathgl/mgl64"
)

// AnchorResolver keeps the world pivot of the running navigation.
type AnchorResolver struct {
	picker Picker
	host   CameraHost
	clamp  Clamp

	// DefaultDistance places the fallback anchor ahead of the eye when
	// there are no bounds.
	DefaultDistance float64

	anchor mgl64.Vec3
	typ    NavigationType
	valid  bool
}

func NewAnchorResolver(picker Picker, host CameraHost, clamp Clamp, defaultDistance float64) *AnchorResolver {
	return &AnchorResolver{
		picker:          picker,
		host:            host,
		clamp:           clamp,
		DefaultDistance: defaultDistance,
	}
}

// ComputeAnchor picks the surface under p, falling back to the bounds center
// or a point ahead of the camera, and caches it for t.
func (a *AnchorResolver) ComputeAnchor(p ViewPoint, t NavigationType) mgl64.Vec3 {
	pos, err := a.picker.ViewToWorld(p)
	if err != nil {
		if !errors.Is(err, ErrOutOfBounds) {
			log.Warnf("Pick at (%.0f, %.0f) failed: %v", p.X, p.Y, err)
		}
		pos = a.fallback()
	}
	a.anchor, a.typ, a.valid = pos, t, true
	return pos
}

func (a *AnchorResolver) fallback() mgl64.Vec3 {
	if c, ok := a.clamp.Center(); ok {
		return c
	}
	cam := a.host.Camera()
	return cam.Eye.Add(cam.Forward.Mul(a.DefaultDistance))
}

// Update recomputes the anchor when navigation starts or switches to another
// motion and drops it when navigation ends.
func (a *AnchorResolver) Update(prev, next NavigationType, p ViewPoint) {
	switch {
	case next == None:
		a.Invalidate()
	case prev != next:
		a.ComputeAnchor(p, next)
	}
}

// Anchor returns the cached anchor. ok is false if there is none.
func (a *AnchorResolver) Anchor() (mgl64.Vec3, bool) {
	return a.anchor, a.valid
}

// Type is the navigation type the anchor was computed for.
func (a *AnchorResolver) Type() NavigationType {
	return a.typ
}

func (a *AnchorResolver) Invalidate() {
	a.valid = false
	a.typ = None
}

// GizmoScale returns the world size of pixels screen pixels at anchor.
func GizmoScale(cam Camera, anchor mgl64.Vec3, pixels float64, size ViewSize) float64 {
	if size.Height <= 0 {
		return 0
	}
	d := anchor.Sub(cam.Eye).Dot(cam.Forward)
	if d <= 0 {
		d = anchor.Sub(cam.Eye).Len()
	}
	return pixels * 2 * d * math.Tan(cam.FovY.Radians()/2) / size.Height
}
