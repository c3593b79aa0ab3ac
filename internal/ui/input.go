package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/vnc-launcher/internal/logging/events"
	"github.com/atomicstack/vnc-launcher/internal/termhost"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "esc":
		m.dismissMenus()
		m.errMsg = ""
		return nil
	case "c":
		m.openConnectForm()
		return nil
	case "r":
		return m.runAction(actionReconnect)
	case "d":
		return m.runAction(actionDisconnect)
	case "v":
		return m.runAction(actionViewOnly)
	case "s":
		return m.runAction(actionScaled)
	}
	return nil
}

// handleMouseMsg gives the menus first pick of mouse input. A right click
// elsewhere opens the context menu and a left click closes open menus.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if m.host.HandleMouse(mouse) {
		return nil
	}
	if mouse.Action != tea.MouseActionPress {
		return nil
	}
	switch mouse.Button {
	case tea.MouseButtonRight:
		m.openContextMenu(mouse.X, mouse.Y)
	case tea.MouseButtonLeft:
		m.dismissMenus()
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	events.UI.Resize(m.width, m.height)
	m.resize()
	return nil
}

func (m *Model) handleTimerMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(termhost.TimerMsg)
	if !ok {
		return nil
	}
	m.host.Fire(tick)
	return nil
}
