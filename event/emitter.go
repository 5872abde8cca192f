package event

type handler[T any] struct {
	id int
	fn func(T)
}

// Emitter calls its handlers synchronously in registration order.
// The zero value is ready to use. It is not safe for concurrent use.
type Emitter[T any] struct {
	handlers []handler[T]
	nextID   int
}

// On registers fn and returns a function removing it.
func (e *Emitter[T]) On(fn func(T)) (off func()) {
	id := e.nextID
	e.nextID++
	e.handlers = append(e.handlers, handler[T]{id: id, fn: fn})
	return func() {
		for i, h := range e.handlers {
			if h.id == id {
				e.handlers = append(e.handlers[:i:i], e.handlers[i+1:]...)
				return
			}
		}
	}
}

func (e *Emitter[T]) Emit(v T) {
	// Handlers registered or removed during emission take effect next time.
	hs := e.handlers
	for _, h := range hs {
		h.fn(v)
	}
}

func (e *Emitter[T]) Len() int {
	return len(e.handlers)
}
