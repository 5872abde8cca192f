package nav

import (
	"time"
)

const (
	clickGuardDuration         = 100 * time.Millisecond
	defaultDoubleClickInterval = 300 * time.Millisecond
)

// ClickGuard drops clicks fired by the platform at the end of a drag that
// moved, and detects double clicks among the remaining ones.
type ClickGuard struct {
	// DoubleClickInterval is the longest gap between the clicks of a
	// double click.
	DoubleClickInterval time.Duration

	deadline  time.Duration
	dragEnded bool
	moved     bool

	lastClick time.Duration
	hasClick  bool
}

func (c *ClickGuard) Move() {
	c.moved = true
}

func (c *ClickGuard) DragStart() {
	c.moved = false
}

func (c *ClickGuard) DragEnd(now time.Duration) {
	c.deadline = now + clickGuardDuration
	c.dragEnded = true
}

// Click reports whether a click at now is a real click.
func (c *ClickGuard) Click(now time.Duration) bool {
	return !c.dragEnded || !c.moved || c.deadline < now
}

// DoubleClick registers an accepted click at now and reports whether it
// completes a double click.
func (c *ClickGuard) DoubleClick(now time.Duration) bool {
	interval := c.DoubleClickInterval
	if interval == 0 {
		interval = defaultDoubleClickInterval
	}
	if c.hasClick && now-c.lastClick <= interval {
		c.hasClick = false
		return true
	}
	c.lastClick, c.hasClick = now, true
	return false
}
