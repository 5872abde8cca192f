package nav

import (
	"fortio.org/log"

	"github.com/seqsense/camnav/event"
)

// PointerLockCoordinator captures the pointer during rotation drags.
// The lock is requested on the first movement of a drag, never on press, and
// the grant is observed through LockChanged. Drags keep working on absolute
// pointer positions while the lock is pending or denied.
type PointerLockCoordinator struct {
	locker     PointerLocker
	capturable event.Buttons

	draggingButton event.Buttons
	lockAttempt    bool
	hasMouseMoved  bool
	locked         bool
}

func NewPointerLockCoordinator(locker PointerLocker, capturable event.Buttons) *PointerLockCoordinator {
	return &PointerLockCoordinator{
		locker:     locker,
		capturable: capturable,
	}
}

// DragStart arms the lock for drags with a capturable button.
func (p *PointerLockCoordinator) DragStart(buttons event.Buttons, touch bool) {
	p.hasMouseMoved = false
	if touch || buttons&p.capturable == 0 {
		p.draggingButton = 0
		return
	}
	p.draggingButton = buttons
}

// Move records drag motion and returns whether the event carries relative
// motion of a locked pointer.
func (p *PointerLockCoordinator) Move() bool {
	if p.draggingButton != 0 && !p.hasMouseMoved {
		p.hasMouseMoved = true
		if !p.locked && !p.lockAttempt {
			log.Debugf("Requesting pointer lock for %v drag", p.draggingButton)
			p.lockAttempt = true
			p.locker.RequestPointerLock()
		}
	}
	return p.locked
}

// LockChanged is called from the platform lock change notification.
// A grant arriving after the drag ended is released again.
func (p *PointerLockCoordinator) LockChanged(locked bool) {
	p.lockAttempt = false
	if locked && p.draggingButton == 0 {
		log.Debugf("Releasing pointer lock granted after the drag")
		p.locked = false
		p.locker.ExitPointerLock()
		return
	}
	p.locked = locked
	if !locked {
		p.draggingButton = 0
		p.hasMouseMoved = false
	}
}

// Unlock clears all flags and releases the lock.
func (p *PointerLockCoordinator) Unlock() {
	release := p.locked || p.lockAttempt
	p.draggingButton = 0
	p.lockAttempt = false
	p.hasMouseMoved = false
	p.locked = false
	if release {
		p.locker.ExitPointerLock()
	}
}

func (p *PointerLockCoordinator) Locked() bool {
	return p.locked
}

func (p *PointerLockCoordinator) LockAttempt() bool {
	return p.lockAttempt
}
