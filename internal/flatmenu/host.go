package flatmenu

import "time"

// Button identifies the pointer button of a press or release.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Host is the surface menus are shown on. It owns z-order, converts its
// own input events into the Pointer* calls of the menu under the pointer,
// and asks visible menus to Paint when invalidated.
//
// Schedule and Cancel implement the per-menu dismiss timer. Scheduling a
// key that already has a pending task replaces that task, and callbacks
// run on the host's event loop.
type Host interface {
	Measurer
	Attach(m *Menu)
	Detach(m *Menu)
	Raise(m *Menu)
	Invalidate(m *Menu)
	Schedule(key ID, after time.Duration, fn func())
	Cancel(key ID)
}
