package nav

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/seqsense/camnav/mat"
)

type KeyMode int

const (
	// CameraForward moves along the camera axes.
	CameraForward KeyMode = iota
	// TangentForward moves along the surface tangent and true vertical.
	TangentForward
)

func (m KeyMode) String() string {
	switch m {
	case CameraForward:
		return "camera"
	case TangentForward:
		return "tangent"
	}
	return "unknown"
}

type keyAxis int

const (
	keyForward keyAxis = iota
	keyBack
	keyLeft
	keyRight
	keyUp
	keyDown
)

type keyDirection struct {
	axis       keyAxis
	multiplier float64
}

const (
	forwardMultiplier = 1.0
	strafeMultiplier  = 0.35

	defaultKeySpeed = 10.0
)

var keyDirections = map[string]keyDirection{
	"KeyW":       {keyForward, forwardMultiplier},
	"ArrowUp":    {keyForward, forwardMultiplier},
	"KeyS":       {keyBack, forwardMultiplier},
	"ArrowDown":  {keyBack, forwardMultiplier},
	"KeyA":       {keyLeft, strafeMultiplier},
	"ArrowLeft":  {keyLeft, strafeMultiplier},
	"KeyD":       {keyRight, strafeMultiplier},
	"ArrowRight": {keyRight, strafeMultiplier},
	"KeyQ":       {keyUp, strafeMultiplier},
	"KeyE":       {keyDown, strafeMultiplier},
}

// KeyNavigationEngine moves the eye while navigation keys are held.
// Every held key is applied on its own, in press order, so diagonal motion is
// faster than motion along a single axis.
type KeyNavigationEngine struct {
	clamp Clamp
	frame Frame

	Mode KeyMode
	// Speed is the forward speed in world units per second.
	Speed float64

	held []string
}

func NewKeyNavigationEngine(clamp Clamp, frame Frame) *KeyNavigationEngine {
	return &KeyNavigationEngine{
		clamp: clamp,
		frame: frame,
		Speed: defaultKeySpeed,
	}
}

// Press adds a navigation key to the held set. It returns false for keys
// without a direction.
func (k *KeyNavigationEngine) Press(code string) bool {
	if _, ok := keyDirections[code]; !ok {
		return false
	}
	for _, h := range k.held {
		if h == code {
			return true
		}
	}
	k.held = append(k.held, code)
	return true
}

func (k *KeyNavigationEngine) Release(code string) bool {
	for i, h := range k.held {
		if h == code {
			k.held = append(k.held[:i], k.held[i+1:]...)
			return true
		}
	}
	return false
}

func (k *KeyNavigationEngine) Clear() {
	k.held = k.held[:0]
}

func (k *KeyNavigationEngine) Held() bool {
	return len(k.held) > 0
}

// Tick moves the camera for dt. moved is false if no key could be applied.
func (k *KeyNavigationEngine) Tick(cam Camera, dt time.Duration) (next Camera, moved bool) {
	if dt <= 0 {
		return cam, false
	}
	forward, right, up, ok := k.axes(cam)
	if !ok {
		return cam, false
	}
	step := k.Speed * dt.Seconds()
	eye := cam.Eye
	for _, code := range k.held {
		d := keyDirections[code]
		var dir mgl64.Vec3
		switch d.axis {
		case keyForward:
			dir = forward
		case keyBack:
			dir = forward.Mul(-1)
		case keyLeft:
			dir = right.Mul(-1)
		case keyRight:
			dir = right
		case keyUp:
			dir = up
		case keyDown:
			dir = up.Mul(-1)
		}
		candidate := eye.Add(dir.Mul(step * d.multiplier))
		if k.clamp.Contains(candidate) {
			eye = candidate
			moved = true
		}
	}
	cam.Eye = eye
	return cam, moved
}

func (k *KeyNavigationEngine) axes(cam Camera) (forward, right, up mgl64.Vec3, ok bool) {
	if k.Mode == CameraForward {
		right, ok = cam.Right()
		return cam.Forward, right, cam.Up, ok
	}
	up = k.frame.Up(cam.Eye)
	if right, ok = k.frame.Right(cam.Eye, cam.Forward); !ok {
		// Looking straight up or down: the camera up points forward.
		if right, ok = mat.Normalize(cam.Up.Cross(up)); !ok {
			return
		}
	}
	return up.Cross(right), right, up, true
}
