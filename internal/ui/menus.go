package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/vnc-launcher/internal/flatmenu"
	"github.com/atomicstack/vnc-launcher/internal/logging/events"
	"github.com/atomicstack/vnc-launcher/internal/termhost"
)

const (
	actionConnect    = "connection:connect"
	actionReconnect  = "connection:reconnect"
	actionDisconnect = "connection:disconnect"
	actionExit       = "connection:exit"
	actionCtrlAltDel = "send:ctrl-alt-del"
	actionAltF4      = "send:alt-f4"
	actionViewOnly   = "view:view-only"
	actionScaled     = "view:scaled"
	actionAbout      = "help:about"

	displayActionPrefix = "view:display:"
	displayCount        = 4
)

var hints = map[string]string{
	actionConnect:    "Connect to a remote desktop",
	actionReconnect:  "Connect again to the last host",
	actionDisconnect: "Close the viewer",
	actionExit:       "Quit the launcher",
	actionCtrlAltDel: "Send Ctrl+Alt+Del to the remote desktop",
	actionAltF4:      "Send Alt+F4 to the remote desktop",
	actionViewOnly:   "Ignore local keyboard and mouse on the next connection",
	actionScaled:     "Scale the remote screen to the viewer window",
	actionAbout:      "About the launcher",
}

func displayAction(n int) string {
	return displayActionPrefix + strconv.Itoa(n)
}

func parseDisplayAction(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, displayActionPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// styleMenu gives a bar or standalone popup the terminal look. Cascaded
// popups inherit it from their owner.
func (m *Model) styleMenu(menu *flatmenu.Menu, opts Options) {
	menu.SetMetrics(termhost.Metrics())
	menu.SetPalette(m.palette)
	if opts.Bold {
		font := menu.Font()
		font.Bold = true
		menu.SetFont(font)
		menu.SetHoverFont(font)
	}
	if opts.DismissInterval > 0 {
		menu.SetDismissInterval(opts.DismissInterval)
	}
}

func (m *Model) buildBar(opts Options) *flatmenu.Bar {
	bar := flatmenu.NewBar()
	m.styleMenu(bar.Menu, opts)
	bar.SetAlwaysShowPopup(opts.AlwaysShowPopup)

	conn := bar.Items().AddText("Connection", nil)
	m.addAction(conn.Children(), "Connect…", actionConnect)
	m.addAction(conn.Children(), "Reconnect", actionReconnect)
	m.addAction(conn.Children(), "Disconnect", actionDisconnect)
	conn.Children().AddSeparator()
	m.addAction(conn.Children(), "Exit", actionExit)

	send := bar.Items().AddText("Send", nil)
	m.addAction(send.Children(), "Ctrl+Alt+Del", actionCtrlAltDel)
	m.addAction(send.Children(), "Alt+F4", actionAltF4)

	view := bar.Items().AddText("View", nil)
	m.addAction(view.Children(), "View only", actionViewOnly).SetStyle(flatmenu.StyleCheck)
	m.addAction(view.Children(), "Scaled", actionScaled).SetStyle(flatmenu.StyleCheck)
	view.Children().AddSeparator()
	display := view.Children().AddText("Display", nil)
	for n := 0; n < displayCount; n++ {
		item := m.addAction(display.Children(), fmt.Sprintf("Display %d", n), displayAction(n))
		item.SetStyle(flatmenu.StyleRadio)
	}

	help := bar.Items().AddText("Help", nil)
	m.addAction(help.Children(), "About", actionAbout)

	bar.OnHighlight(m.highlight)
	bar.Attach(m.host)
	return bar
}

func (m *Model) buildContextMenu(opts Options) *flatmenu.Popup {
	p := flatmenu.NewPopup()
	m.styleMenu(p.Menu, opts)
	m.addAction(p.Items(), "Connect…", actionConnect)
	m.addAction(p.Items(), "Disconnect", actionDisconnect)
	p.Items().AddSeparator()
	m.addAction(p.Items(), "View only", actionViewOnly).SetStyle(flatmenu.StyleCheck)
	m.addAction(p.Items(), "Scaled", actionScaled).SetStyle(flatmenu.StyleCheck)
	p.Items().AddSeparator()
	m.addAction(p.Items(), "Exit", actionExit)
	p.OnHighlight(m.highlight)
	return p
}

func (m *Model) addAction(list *flatmenu.ItemList, label, id string) *flatmenu.Item {
	item := list.AddText(label, m.activate)
	item.Tag = id
	m.items[id] = append(m.items[id], item)
	return item
}

// activate runs inside the menu's pointer handling, so the resulting
// command is queued and returned at the end of the update.
func (m *Model) activate(item *flatmenu.Item) {
	id, _ := item.Tag.(string)
	m.queue(m.runAction(id))
}

func (m *Model) highlight(item *flatmenu.Item) {
	if item == nil {
		m.hint = ""
		return
	}
	id, _ := item.Tag.(string)
	if hint, ok := hints[id]; ok {
		m.hint = hint
		return
	}
	if n, ok := parseDisplayAction(id); ok {
		m.hint = fmt.Sprintf("Connect to display %d (port %d)", n, displayPort(n))
		return
	}
	m.hint = item.Text
}

// syncMenuState mirrors the session and viewer settings into item state.
func (m *Model) syncMenuState() {
	connected := m.session != nil && m.session.Connected()
	keys := connected && m.session.SupportsSpecialKeys()
	m.setEnabled(actionDisconnect, connected)
	m.setEnabled(actionReconnect, strings.TrimSpace(m.viewer.Host) != "")
	m.setEnabled(actionCtrlAltDel, keys)
	m.setEnabled(actionAltF4, keys)
	m.setChecked(actionViewOnly, m.viewer.ViewOnly)
	m.setChecked(actionScaled, m.viewer.Scaled)
	for n := 0; n < displayCount; n++ {
		for _, item := range m.items[displayAction(n)] {
			if item.Radio != (m.viewer.Display == n) {
				item.Radio = m.viewer.Display == n
				m.bar.Invalidate()
			}
		}
	}
}

func (m *Model) setEnabled(id string, enabled bool) {
	for _, item := range m.items[id] {
		if item.Enabled != enabled {
			item.Enabled = enabled
			m.bar.Invalidate()
		}
	}
}

func (m *Model) setChecked(id string, checked bool) {
	for _, item := range m.items[id] {
		if item.Checked != checked {
			item.Checked = checked
			m.bar.Invalidate()
		}
	}
}

// openContextMenu shows the context menu at the pointer, flipping it to
// the other side of the pointer where it would leave the screen.
func (m *Model) openContextMenu(x, y int) {
	m.bar.Dismiss()
	m.syncMenuState()
	m.popup.Layout(m.host)
	b := m.popup.Bounds()
	h, v := flatmenu.AlignLeft, flatmenu.AlignTop
	if x+b.W > m.width {
		h = flatmenu.AlignRight
	}
	if y+b.H > m.height-1 {
		v = flatmenu.AlignBottom
	}
	events.UI.ContextMenu(x, y)
	m.popup.TrackAligned(m.host, h, v, x, y)
}

func (m *Model) dismissMenus() {
	m.bar.Dismiss()
	m.popup.Dismiss()
}
