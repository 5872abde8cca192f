package nav

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/seqsense/camnav/mat"
)

const (
	defaultMinClearance = 0.5
	defaultZoomDuration = 250 * time.Millisecond
)

// ZoomEngine moves the camera toward or away from the anchor with an animated
// move of the host.
type ZoomEngine struct {
	host  CameraHost
	clamp Clamp

	// MinClearance is the closest distance to the anchor zooming stops at.
	MinClearance float64
	Duration     time.Duration
}

func NewZoomEngine(host CameraHost, clamp Clamp) *ZoomEngine {
	return &ZoomEngine{
		host:         host,
		clamp:        clamp,
		MinClearance: defaultMinClearance,
		Duration:     defaultZoomDuration,
	}
}

// Target returns the eye after zooming by fraction of the distance to
// anchor. crossed is true if the eye is sent through the anchor.
func (z *ZoomEngine) Target(eye, anchor mgl64.Vec3, fraction float64, forceThrough bool) (target mgl64.Vec3, crossed bool) {
	dist := mat.Distance(anchor, eye)
	if dist < 1e-9 {
		return eye, false
	}
	if fraction > 0 && dist*(1-fraction) < z.MinClearance {
		if forceThrough {
			fraction = 2
			crossed = true
		} else {
			fraction = 1 - z.MinClearance/dist
		}
	}
	return mat.Lerp(eye, anchor, fraction), crossed
}

// ZoomToAnchor animates the camera toward anchor. Targets out of bounds are
// dropped. It returns whether the camera is sent through the surface, which
// makes the anchor stale.
func (z *ZoomEngine) ZoomToAnchor(cam Camera, anchor mgl64.Vec3, fraction float64, forceThrough bool) bool {
	eye, crossed := z.Target(cam.Eye, anchor, fraction, forceThrough)
	if !z.clamp.Contains(eye) {
		return false
	}
	z.host.Animate(Move{
		Eye:      eye,
		Yaw:      cam.Yaw,
		Pitch:    cam.Pitch,
		Roll:     cam.Roll,
		Duration: z.Duration,
	})
	return crossed
}
