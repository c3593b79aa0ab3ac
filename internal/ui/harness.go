package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultCommandTimeout bounds how long the harness waits for one batch of
// commands. Commands still running after it, such as long dismiss ticks or
// a session event wait, are abandoned.
const DefaultCommandTimeout = 50 * time.Millisecond

// Harness drives the UI model programmatically for integration tests.
type Harness struct {
	model   *Model
	quit    bool
	Timeout time.Duration
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model, Timeout: DefaultCommandTimeout}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// processCmd runs commands breadth first, feeding their messages back into
// the model until nothing new arrives within the timeout.
func (h *Harness) processCmd(cmd tea.Cmd) {
	pending := []tea.Cmd{cmd}
	for len(pending) > 0 {
		msgs := h.runAll(pending)
		pending = nil
		for _, msg := range msgs {
			switch msg := msg.(type) {
			case nil:
			case tea.BatchMsg:
				pending = append(pending, msg...)
			case tea.QuitMsg:
				h.quit = true
			default:
				mdl, next := h.model.Update(msg)
				if updated, ok := mdl.(*Model); ok {
					h.model = updated
				}
				pending = append(pending, next)
			}
		}
	}
}

func (h *Harness) runAll(cmds []tea.Cmd) []tea.Msg {
	results := make([]chan tea.Msg, len(cmds))
	for i, cmd := range cmds {
		ch := make(chan tea.Msg, 1)
		results[i] = ch
		if cmd == nil {
			ch <- nil
			continue
		}
		go func() { ch <- cmd() }()
	}

	timer := time.NewTimer(h.Timeout)
	defer timer.Stop()
	expired := false
	msgs := make([]tea.Msg, 0, len(cmds))
	for _, ch := range results {
		if !expired {
			select {
			case msg := <-ch:
				msgs = append(msgs, msg)
				continue
			case <-timer.C:
				expired = true
			}
		}
		select {
		case msg := <-ch:
			msgs = append(msgs, msg)
		default:
		}
	}
	return msgs
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}
