package box

import (
	"github.com/seqsense/camnav/event"
)

// Focus tracks the one box id drawn as focused among all box controllers
// sharing it.
type Focus struct {
	Changed event.Emitter[int]

	id  int
	set bool
}

func (f *Focus) Set(id int) {
	if f.set && f.id == id {
		return
	}
	f.id, f.set = id, true
	f.Changed.Emit(id)
}

func (f *Focus) Clear() {
	if !f.set {
		return
	}
	f.set = false
	f.Changed.Emit(-1)
}

func (f *Focus) ID() (int, bool) {
	return f.id, f.set
}

func (f *Focus) Is(id int) bool {
	return f.set && f.id == id
}
