package command

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type doneMsg struct{ id string }

func TestExecuteRunsHandler(t *testing.T) {
	bus := New()
	cmd := bus.Execute(context.Background(), Request{
		ID:    "connection:disconnect",
		Label: "Disconnect",
		Handler: func(context.Context) tea.Msg {
			return doneMsg{id: "connection:disconnect"}
		},
	})
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	msg, ok := cmd().(doneMsg)
	if !ok {
		t.Fatalf("expected doneMsg, got %T", msg)
	}
	if msg.id != "connection:disconnect" {
		t.Fatalf("expected handler result, got %q", msg.id)
	}
}

func TestExecuteWithoutHandlerYieldsNil(t *testing.T) {
	cmd := New().Execute(context.Background(), Request{ID: "noop"})
	if msg := cmd(); msg != nil {
		t.Fatalf("expected nil message, got %T", msg)
	}
}

func TestExecutePassesContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmd := New().Execute(ctx, Request{ID: "ctx", Handler: func(ctx context.Context) tea.Msg {
		return ctx.Err()
	}})
	if err, _ := cmd().(error); err != context.Canceled {
		t.Fatalf("expected cancelled context, got %v", err)
	}
}
