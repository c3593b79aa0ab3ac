package session

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// DefaultPort is the RFB port of display 0.
const DefaultPort = 5900

// ErrInvalidTarget is wrapped by ParseTarget failures.
var ErrInvalidTarget = errors.New("invalid target")

// Target describes a remote desktop to connect to.
type Target struct {
	Host string
	// Port is the TCP port. Zero selects DefaultPort plus Display.
	Port int
	// ProxyID routes the connection through a repeater when non-zero.
	ProxyID  int
	Display  int
	ViewOnly bool
	Scaled   bool
}

// NewTarget returns a target for host on the default port.
func NewTarget(host string) Target {
	return Target{Host: host, Port: DefaultPort}
}

// ParseTarget accepts the viewer address forms "host", "host:display"
// and "host::port".
func ParseTarget(s string) (Target, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Target{}, fmt.Errorf("%w: empty address", ErrInvalidTarget)
	}
	host, rest, found := strings.Cut(s, ":")
	if host == "" {
		return Target{}, fmt.Errorf("%w: missing host in %q", ErrInvalidTarget, s)
	}
	t := NewTarget(host)
	if !found {
		return t, nil
	}
	if port, ok := strings.CutPrefix(rest, ":"); ok {
		n, err := strconv.Atoi(port)
		if err != nil || n <= 0 || n > 65535 {
			return Target{}, fmt.Errorf("%w: bad port in %q", ErrInvalidTarget, s)
		}
		t.Port = n
		return t, nil
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 || DefaultPort+n > 65535 {
		return Target{}, fmt.Errorf("%w: bad display in %q", ErrInvalidTarget, s)
	}
	t.Display = n
	t.Port = DefaultPort + n
	return t, nil
}

// TCPPort resolves the port the viewer will dial.
func (t Target) TCPPort() int {
	if t.Port > 0 {
		return t.Port
	}
	return DefaultPort + t.Display
}

// Address returns host:port.
func (t Target) Address() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.TCPPort()))
}

// String returns the "host::port" form ParseTarget understands.
func (t Target) String() string {
	return fmt.Sprintf("%s::%d", t.Host, t.TCPPort())
}

// Args builds the viewer command line for t after the configured extra
// arguments.
func (t Target) Args(extra []string) []string {
	args := append([]string(nil), extra...)
	if t.ViewOnly {
		args = append(args, "-viewonly")
	}
	if t.Scaled {
		args = append(args, "-autoscaling")
	}
	if t.ProxyID > 0 {
		args = append(args, fmt.Sprintf("-id:%d", t.ProxyID))
	}
	return append(args, t.String())
}
