package session

import (
	"context"
	"errors"
)

var (
	ErrNotConnected = errors.New("not connected")
	// ErrUnsupported is returned by sessions that cannot inject keys into
	// the remote desktop.
	ErrUnsupported = errors.New("special keys are not supported by this viewer")
	ErrClosed      = errors.New("session closed")
)

// SpecialKeys is a key chord the local desktop would otherwise intercept.
type SpecialKeys int

const (
	CtrlAltDel SpecialKeys = iota
	AltF4
)

func (k SpecialKeys) String() string {
	switch k {
	case CtrlAltDel:
		return "Ctrl+Alt+Del"
	case AltF4:
		return "Alt+F4"
	default:
		return "unknown"
	}
}

// Kind is the type of a session Event.
type Kind int

const (
	KindConnected Kind = iota
	KindDisconnected
	KindLost
)

// Event reports a change of connection state. Err is set for KindLost
// when the viewer failed.
type Event struct {
	Kind   Kind
	Target Target
	Err    error
}

// Session is a remote desktop connection.
type Session interface {
	// Connect replaces any current connection with one to t.
	Connect(ctx context.Context, t Target) error
	Disconnect() error
	SendSpecialKeys(keys SpecialKeys) error
	SupportsSpecialKeys() bool
	Connected() bool
	// Target returns the target of the current connection.
	Target() (Target, bool)
	Events() <-chan Event
	Close() error
}
