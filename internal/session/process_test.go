package session_test

import (
	"context"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/vnc-launcher/internal/session"
)

// shellViewer runs script with sh; the target arguments land in $0 and up.
func shellViewer(t *testing.T, script string) *session.Process {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	p := session.NewProcess(session.Options{Command: "sh", Args: []string{"-c", script}})
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func nextEvent(t *testing.T, p *session.Process) session.Event {
	t.Helper()
	select {
	case evt, ok := <-p.Events():
		require.True(t, ok, "events channel closed")
		return evt
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for session event")
		return session.Event{}
	}
}

func TestProcessConnectAndDisconnect(t *testing.T) {
	p := shellViewer(t, "sleep 30")
	target := session.NewTarget("desk")
	require.NoError(t, p.Connect(context.Background(), target))

	assert.True(t, p.Connected())
	got, ok := p.Target()
	require.True(t, ok)
	assert.Equal(t, target, got)
	assert.Equal(t, session.KindConnected, nextEvent(t, p).Kind)

	require.NoError(t, p.Disconnect())
	evt := nextEvent(t, p)
	assert.Equal(t, session.KindDisconnected, evt.Kind)
	assert.NoError(t, evt.Err)
	assert.False(t, p.Connected())
	assert.ErrorIs(t, p.Disconnect(), session.ErrNotConnected)
}

func TestProcessExitIsReportedAsLost(t *testing.T) {
	p := shellViewer(t, "exit 3")
	require.NoError(t, p.Connect(context.Background(), session.NewTarget("desk")))
	assert.Equal(t, session.KindConnected, nextEvent(t, p).Kind)

	evt := nextEvent(t, p)
	assert.Equal(t, session.KindLost, evt.Kind)
	assert.Error(t, evt.Err)
	assert.Eventually(t, func() bool { return !p.Connected() }, time.Second, 10*time.Millisecond)
}

func TestProcessReconnectReplacesViewer(t *testing.T) {
	p := shellViewer(t, "sleep 30")
	first := session.NewTarget("one")
	second := session.NewTarget("two")
	require.NoError(t, p.Connect(context.Background(), first))
	require.NoError(t, p.Connect(context.Background(), second))

	kinds := []session.Kind{nextEvent(t, p).Kind, nextEvent(t, p).Kind, nextEvent(t, p).Kind}
	assert.Equal(t, []session.Kind{session.KindConnected, session.KindDisconnected, session.KindConnected}, kinds)
	got, _ := p.Target()
	assert.Equal(t, "two", got.Host)
}

func TestProcessStartFailure(t *testing.T) {
	p := session.NewProcess(session.Options{Command: "/nonexistent/viewer"})
	defer p.Close()
	err := p.Connect(context.Background(), session.NewTarget("desk"))
	assert.Error(t, err)
	assert.False(t, p.Connected())
}

func TestProcessRejectsEmptyHost(t *testing.T) {
	p := session.NewProcess(session.Options{Command: "sh"})
	defer p.Close()
	assert.ErrorIs(t, p.Connect(context.Background(), session.Target{}), session.ErrInvalidTarget)
}

func TestProcessSpecialKeys(t *testing.T) {
	p := shellViewer(t, "sleep 30")
	assert.False(t, p.SupportsSpecialKeys())
	assert.ErrorIs(t, p.SendSpecialKeys(session.CtrlAltDel), session.ErrNotConnected)

	require.NoError(t, p.Connect(context.Background(), session.NewTarget("desk")))
	assert.ErrorIs(t, p.SendSpecialKeys(session.AltF4), session.ErrUnsupported)
}

func TestProcessConnectThrottle(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	p := session.NewProcess(session.Options{
		Command:         "sh",
		Args:            []string{"-c", "sleep 30"},
		ConnectInterval: time.Hour,
	})
	defer p.Close()
	require.NoError(t, p.Connect(context.Background(), session.NewTarget("desk")))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := p.Connect(ctx, session.NewTarget("desk"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	got, _ := p.Target()
	assert.Equal(t, "desk", got.Host)
}

func TestProcessCloseStopsViewerAndEvents(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	p := session.NewProcess(session.Options{Command: "sh", Args: []string{"-c", "sleep 30"}})
	require.NoError(t, p.Connect(context.Background(), session.NewTarget("desk")))
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	assert.False(t, p.Connected())
	assert.ErrorIs(t, p.Connect(context.Background(), session.NewTarget("desk")), session.ErrClosed)
	for range p.Events() {
	}
}

func TestProcessCloseRacingConnect(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	for i := 0; i < 20; i++ {
		p := session.NewProcess(session.Options{Command: "sh", Args: []string{"-c", "sleep 30"}})
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.Connect(context.Background(), session.NewTarget("desk")); err != nil {
				assert.ErrorIs(t, err, session.ErrClosed)
			}
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Close())
		}()
		wg.Wait()

		for range p.Events() {
		}
		assert.False(t, p.Connected())
	}
}
