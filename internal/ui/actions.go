package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/vnc-launcher/internal/logging/events"
	"github.com/atomicstack/vnc-launcher/internal/session"
	"github.com/atomicstack/vnc-launcher/internal/settings"
	"github.com/atomicstack/vnc-launcher/internal/ui/command"
)

const aboutText = "vnc-launcher: remote desktop launcher with a flat menu bar"

// actionResultMsg reports the outcome of an action run on the command bus.
type actionResultMsg struct {
	id   string
	info string
	err  error
}

// connectPromptMsg asks the model to open the connect prompt.
type connectPromptMsg struct{}

func displayPort(n int) int {
	return session.DefaultPort + n
}

// runAction turns a menu action into a command. Actions that only touch
// model state apply it immediately and persist it on the bus.
func (m *Model) runAction(id string) tea.Cmd {
	switch id {
	case actionConnect:
		return func() tea.Msg { return connectPromptMsg{} }
	case actionReconnect:
		return m.reconnect()
	case actionDisconnect:
		return m.disconnect()
	case actionExit:
		return tea.Quit
	case actionCtrlAltDel:
		return m.sendKeys(id, session.CtrlAltDel)
	case actionAltF4:
		return m.sendKeys(id, session.AltF4)
	case actionViewOnly:
		m.viewer.ViewOnly = !m.viewer.ViewOnly
		return m.persist(id, "View only", toggleInfo("View only", m.viewer.ViewOnly))
	case actionScaled:
		m.viewer.Scaled = !m.viewer.Scaled
		return m.persist(id, "Scaled", toggleInfo("Scaling", m.viewer.Scaled))
	case actionAbout:
		m.setInfo(aboutText)
		return nil
	}
	if n, ok := parseDisplayAction(id); ok {
		m.viewer.Display = n
		m.viewer.Port = displayPort(n)
		label := fmt.Sprintf("Display %d", n)
		return m.persist(id, label, fmt.Sprintf("%s selected for the next connection", label))
	}
	return nil
}

func toggleInfo(name string, on bool) string {
	state := "off"
	if on {
		state = "on"
	}
	return fmt.Sprintf("%s %s for the next connection", name, state)
}

// targetFor resolves an address typed by the user. A bare host picks up
// the selected display; every target carries the viewer preferences.
func (m *Model) targetFor(address string) (session.Target, error) {
	address = strings.TrimSpace(address)
	t, err := session.ParseTarget(address)
	if err != nil {
		return t, err
	}
	if !strings.Contains(address, ":") {
		t.Display = m.viewer.Display
		t.Port = displayPort(m.viewer.Display)
	}
	t.ProxyID = m.viewer.ProxyID
	t.ViewOnly = m.viewer.ViewOnly
	t.Scaled = m.viewer.Scaled
	return t, nil
}

func (m *Model) connect(t session.Target) tea.Cmd {
	if m.session == nil {
		return nil
	}
	m.viewer.Host = t.Host
	m.viewer.Port = t.TCPPort()
	m.viewer.Display = t.Display
	m.viewer.Remember(t.String())
	m.errMsg = ""
	snapshot := m.viewer
	sess, store := m.session, m.settings
	return m.bus.Execute(m.ctx, command.Request{
		ID:    actionConnect,
		Label: t.String(),
		Handler: func(ctx context.Context) tea.Msg {
			if err := sess.Connect(ctx, t); err != nil {
				return actionResultMsg{id: actionConnect, err: fmt.Errorf("connect %s: %w", t, err)}
			}
			if err := saveViewer(store, snapshot); err != nil {
				return actionResultMsg{id: actionConnect, err: err}
			}
			return actionResultMsg{id: actionConnect}
		},
	})
}

func (m *Model) reconnect() tea.Cmd {
	if strings.TrimSpace(m.viewer.Host) == "" {
		return m.runAction(actionConnect)
	}
	t := session.Target{
		Host:     m.viewer.Host,
		Port:     m.viewer.Port,
		Display:  m.viewer.Display,
		ProxyID:  m.viewer.ProxyID,
		ViewOnly: m.viewer.ViewOnly,
		Scaled:   m.viewer.Scaled,
	}
	return m.connect(t)
}

func (m *Model) disconnect() tea.Cmd {
	if m.session == nil {
		return nil
	}
	sess := m.session
	return m.bus.Execute(m.ctx, command.Request{
		ID:    actionDisconnect,
		Label: "Disconnect",
		Handler: func(context.Context) tea.Msg {
			err := sess.Disconnect()
			if errors.Is(err, session.ErrNotConnected) {
				return actionResultMsg{id: actionDisconnect, info: "Not connected"}
			}
			return actionResultMsg{id: actionDisconnect, err: err}
		},
	})
}

func (m *Model) sendKeys(id string, keys session.SpecialKeys) tea.Cmd {
	if m.session == nil {
		return nil
	}
	sess := m.session
	return m.bus.Execute(m.ctx, command.Request{
		ID:    id,
		Label: keys.String(),
		Handler: func(context.Context) tea.Msg {
			if err := sess.SendSpecialKeys(keys); err != nil {
				return actionResultMsg{id: id, err: err}
			}
			return actionResultMsg{id: id, info: fmt.Sprintf("Sent %s", keys)}
		},
	})
}

// persist saves the viewer settings and reports info once written.
func (m *Model) persist(id, label, info string) tea.Cmd {
	snapshot := m.viewer
	store := m.settings
	return m.bus.Execute(m.ctx, command.Request{
		ID:    id,
		Label: label,
		Handler: func(context.Context) tea.Msg {
			if err := saveViewer(store, snapshot); err != nil {
				return actionResultMsg{id: id, err: err}
			}
			return actionResultMsg{id: id, info: info}
		},
	})
}

func saveViewer(store *settings.Store, v settings.Viewer) error {
	if store == nil {
		return nil
	}
	if err := settings.SaveViewer(store, v); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(actionResultMsg)
	if !ok {
		return nil
	}
	if result.err != nil {
		m.errMsg = result.err.Error()
		m.forceClearInfo()
		events.Action.Error(result.err)
		return nil
	}
	m.errMsg = ""
	if result.info != "" {
		m.setInfo(result.info)
	}
	events.Action.Success(result.info)
	return nil
}
