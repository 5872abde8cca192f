package sim

import (
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/golang/geo/s1"

	"github.com/seqsense/camnav/mat"
	"github.com/seqsense/camnav/nav"
)

// springSettle is the angular frequency times duration of a critically
// damped spring reaching its target within the move duration.
const springSettle = 8.0

type animation struct {
	from, to nav.Move
	omega    float64

	elapsed  time.Duration
	progress float64
	velocity float64
}

// step advances the move by dt and returns true when it is complete.
func (a *animation) step(dt time.Duration) bool {
	a.elapsed += dt
	if a.elapsed >= a.to.Duration {
		a.progress = 1
		return true
	}
	s := harmonica.NewSpring(dt.Seconds(), a.omega, 1)
	a.progress, a.velocity = s.Update(a.progress, a.velocity, 1)
	return false
}

func (a *animation) current() nav.Move {
	t := a.progress
	return nav.Move{
		Eye:   mat.Lerp(a.from.Eye, a.to.Eye, t),
		Yaw:   lerpAngle(a.from.Yaw, a.to.Yaw, t),
		Pitch: lerpAngle(a.from.Pitch, a.to.Pitch, t),
		Roll:  lerpAngle(a.from.Roll, a.to.Roll, t),
	}
}

func lerpAngle(a, b s1.Angle, t float64) s1.Angle {
	return a + s1.Angle(float64(b-a)*t)
}
