package nav

type Cursor string

const (
	CursorAuto      Cursor = "auto"
	CursorDefault   Cursor = "default"
	CursorPointer   Cursor = "pointer"
	CursorCrosshair Cursor = "crosshair"
	CursorMove      Cursor = "move"
	CursorGrabbing  Cursor = "grabbing"
	CursorZoomIn    Cursor = "zoom-in"
	CursorNone      Cursor = "none"
)

// CursorFor returns the pointer style shown during navigation of type t.
// A locked pointer is hidden.
func CursorFor(t NavigationType, locked bool) Cursor {
	if locked {
		return CursorNone
	}
	switch t {
	case Pan:
		return CursorMove
	case Rotation:
		return CursorGrabbing
	case FirstPersonRotation:
		return CursorCrosshair
	case Zoom:
		return CursorZoomIn
	}
	return CursorAuto
}
