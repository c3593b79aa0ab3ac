package session

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/sasha-s/go-deadlock"

	"github.com/atomicstack/vnc-launcher/internal/logging/events"
)

// DefaultConnectInterval spaces out viewer launches from repeated clicks.
const DefaultConnectInterval = 500 * time.Millisecond

// Options configures a Process session.
type Options struct {
	// Command is the viewer executable.
	Command string
	// Args are passed to the viewer before the target arguments.
	Args            []string
	ConnectInterval time.Duration
}

// Process is a Session backed by an external viewer process. A connection
// lasts as long as the process runs; a process that exits on its own is
// reported as KindLost.
type Process struct {
	opts     Options
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc
	events chan Event
	wg     sync.WaitGroup

	mu      deadlock.Mutex
	current *viewer
	closed  bool

	// emitMu guards sends on events against Close closing it.
	emitMu     deadlock.RWMutex
	eventsDone bool
}

type viewer struct {
	target   Target
	cmd      *exec.Cmd
	stop     context.CancelFunc
	stopping bool
	done     chan struct{}
}

var _ Session = (*Process)(nil)

func NewProcess(opts Options) *Process {
	ctx, cancel := context.WithCancel(context.Background())
	return &Process{
		opts:     opts,
		throttle: newThrottle(opts.ConnectInterval),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}
}

func (p *Process) Events() <-chan Event {
	return p.events
}

func (p *Process) Connect(ctx context.Context, t Target) error {
	if strings.TrimSpace(t.Host) == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidTarget)
	}
	if err := p.throttle.wait(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	prev := p.current
	p.current = nil
	p.mu.Unlock()
	if prev != nil {
		p.stopViewer(prev)
	}

	args := t.Args(p.opts.Args)
	runCtx, stop := context.WithCancel(p.ctx)
	cmd := exec.CommandContext(runCtx, p.opts.Command, args...)
	if err := cmd.Start(); err != nil {
		stop()
		if p.ctx.Err() != nil {
			return ErrClosed
		}
		return fmt.Errorf("start viewer %s: %w", p.opts.Command, err)
	}
	v := &viewer{target: t, cmd: cmd, stop: stop, done: make(chan struct{})}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		stop()
		_ = cmd.Wait()
		return ErrClosed
	}
	p.current = v
	p.wg.Add(1)
	p.mu.Unlock()

	events.Session.Connect(t.Address(), args)
	p.emit(Event{Kind: KindConnected, Target: t})
	go p.watch(v)
	return nil
}

// watch waits for the viewer to exit and reports how the connection ended.
func (p *Process) watch(v *viewer) {
	defer p.wg.Done()
	err := v.cmd.Wait()
	v.stop()

	p.mu.Lock()
	stopping := v.stopping
	if p.current == v {
		p.current = nil
	}
	p.mu.Unlock()

	if stopping {
		p.emit(Event{Kind: KindDisconnected, Target: v.target})
	} else {
		events.Session.Lost(v.target.Address(), err)
		p.emit(Event{Kind: KindLost, Target: v.target, Err: err})
	}
	close(v.done)
}

func (p *Process) stopViewer(v *viewer) {
	p.mu.Lock()
	v.stopping = true
	p.mu.Unlock()
	v.stop()
	<-v.done
}

// emit drops evt once the session is closing.
func (p *Process) emit(evt Event) {
	p.emitMu.RLock()
	defer p.emitMu.RUnlock()
	if p.eventsDone {
		return
	}
	select {
	case <-p.ctx.Done():
	case p.events <- evt:
	}
}

func (p *Process) Disconnect() error {
	p.mu.Lock()
	v := p.current
	p.current = nil
	p.mu.Unlock()
	if v == nil {
		return ErrNotConnected
	}
	events.Session.Disconnect(v.target.Address())
	p.stopViewer(v)
	return nil
}

// SendSpecialKeys always fails while connected: keys cannot be injected
// into another process's window.
func (p *Process) SendSpecialKeys(keys SpecialKeys) error {
	if !p.Connected() {
		return ErrNotConnected
	}
	events.Session.SpecialKeys(keys.String())
	return fmt.Errorf("send %s: %w", keys, ErrUnsupported)
}

// SupportsSpecialKeys is false: the viewer runs as a separate process with
// its own window, and there is no portable way to inject key chords into
// it. Menus that send keys stay disabled for this session.
func (p *Process) SupportsSpecialKeys() bool { return false }

func (p *Process) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil
}

func (p *Process) Target() (Target, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return Target{}, false
	}
	return p.current.target, true
}

// Close stops any running viewer and closes the event channel.
func (p *Process) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	v := p.current
	p.current = nil
	if v != nil {
		v.stopping = true
	}
	p.mu.Unlock()

	p.cancel()
	if v != nil {
		<-v.done
	}
	p.wg.Wait()
	p.emitMu.Lock()
	p.eventsDone = true
	close(p.events)
	p.emitMu.Unlock()
	return nil
}
