package nav

// Controller is an input consumer in a Stack.
type Controller interface {
	// OnGesture returns true if the gesture is consumed.
	OnGesture(e GestureEvent) bool
	OnDraw(c Canvas)
	Activate()
	Deactivate()
}

// Stack offers gestures to its controllers in order until one consumes it.
type Stack []Controller

func (s Stack) OnGesture(e GestureEvent) bool {
	for _, c := range s {
		if c.OnGesture(e) {
			return true
		}
	}
	return false
}

func (s Stack) OnDraw(cv Canvas) {
	for _, c := range s {
		c.OnDraw(cv)
	}
}

func (s Stack) Activate() {
	for _, c := range s {
		c.Activate()
	}
}

func (s Stack) Deactivate() {
	for i := len(s) - 1; i >= 0; i-- {
		s[i].Deactivate()
	}
}
