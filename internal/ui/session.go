package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/vnc-launcher/internal/session"
)

func waitForSessionEvent(s session.Session) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-s.Events()
		if !ok {
			return sessionDoneMsg{}
		}
		return sessionEventMsg{event: evt}
	}
}

type sessionEventMsg struct {
	event session.Event
}

type sessionDoneMsg struct{}

func (m *Model) handleSessionEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(sessionEventMsg)
	if !ok {
		return nil
	}
	m.applySessionEvent(eventMsg.event)
	if m.session != nil {
		return waitForSessionEvent(m.session)
	}
	return nil
}

// handleSessionDoneMsg stops listening once the session closed its event
// stream. The session itself stays usable for state queries.
func (m *Model) handleSessionDoneMsg(tea.Msg) tea.Cmd {
	return nil
}

func (m *Model) applySessionEvent(evt session.Event) {
	switch evt.Kind {
	case session.KindConnected:
		m.errMsg = ""
		m.setInfo(fmt.Sprintf("Connected to %s", evt.Target))
	case session.KindDisconnected:
		m.setInfo(fmt.Sprintf("Disconnected from %s", evt.Target))
	case session.KindLost:
		m.forceClearInfo()
		if evt.Err != nil {
			m.errMsg = fmt.Sprintf("Connection to %s lost: %v", evt.Target, evt.Err)
		} else {
			m.errMsg = fmt.Sprintf("Connection to %s lost", evt.Target)
		}
	}
}
