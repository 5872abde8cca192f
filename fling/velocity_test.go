package fling

import (
	"testing"
	"time"
)

func TestVelocityTracker(t *testing.T) {
	ms := time.Millisecond
	testCases := map[string]struct {
		samples []sample
		release time.Duration
		touch   bool
		ok      bool
		vx, vy  float64
	}{
		"Mouse": {
			samples: []sample{{0, 0, 0}, {5 * ms, 10, 0}, {10 * ms, 30, 0}, {15 * ms, 60, 0}, {20 * ms, 100, 0}},
			release: 25 * ms,
			ok:      true,
			vx:      (100 - 10) / 3.0 * 20,
		},
		"Touch": {
			samples: []sample{{0, 0, 0}, {5 * ms, 0, -10}, {10 * ms, 0, -30}},
			release: 12 * ms,
			touch:   true,
			ok:      true,
			vy:      -20 * 20,
		},
		"FewSamples": {
			samples: []sample{{0, 0, 0}, {5 * ms, 30, 0}},
			release: 6 * ms,
			ok:      true,
			vx:      30 * 20,
		},
		"Stopped": {
			samples: []sample{{0, 0, 0}, {5 * ms, 30, 0}},
			release: 31 * ms,
		},
		"Single": {
			samples: []sample{{0, 0, 0}},
			release: 1 * ms,
		},
		"NoMotion": {
			samples: []sample{{0, 5, 5}, {5 * ms, 5, 5}},
			release: 6 * ms,
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			v := NewVelocityTracker(DefaultOptions())
			for _, s := range tt.samples {
				v.Add(s.t, s.x, s.y)
			}
			vx, vy, ok := v.Release(tt.release, tt.touch)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if vx != tt.vx || vy != tt.vy {
				t.Errorf("Expected (%f, %f), got (%f, %f)", tt.vx, tt.vy, vx, vy)
			}
		})
	}
}

func TestVelocityTrackerReset(t *testing.T) {
	v := NewVelocityTracker(DefaultOptions())
	for i := 0; i < 20; i++ {
		v.Add(time.Duration(i)*time.Millisecond, float64(i), 0)
	}
	if len(v.samples) != maxSamples {
		t.Fatalf("Expected %d samples kept, got %d", maxSamples, len(v.samples))
	}
	v.Reset()
	if _, _, ok := v.Release(20*time.Millisecond, false); ok {
		t.Error("Reset tracker must not report a velocity")
	}
}
