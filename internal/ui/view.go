package ui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/vnc-launcher/internal/format/table"
	"github.com/atomicstack/vnc-launcher/internal/session"
	"github.com/atomicstack/vnc-launcher/internal/termhost"
)

const infoTTL = 5 * time.Second

var (
	errorInk     = colorful.Color{R: 1, G: 0.42, B: 0.42}
	connectedInk = colorful.Color{R: 0.45, G: 0.85, B: 0.5}
	mutedInk     = colorful.Color{R: 0.6, G: 0.62, B: 0.66}
)

const defaultHint = "Click the menu bar or right-click anywhere. c connects, q quits."

// View renders the bar, body and status line into a cell grid with the
// menus painted on top. The connect prompt replaces the body.
func (m *Model) View() string {
	w, h := m.width, m.height
	if w <= 0 || h <= 0 {
		return ""
	}
	if m.prompt != nil {
		return m.promptView(w, h)
	}
	g := termhost.NewGrid(w, h)
	m.drawBody(g)
	m.drawStatus(g, w, h)
	m.host.Paint(g)
	return g.Render()
}

type bodyLine struct {
	text string
	ink  color.Color
	bold bool
}

func (m *Model) bodyLines() []bodyLine {
	lines := []bodyLine{{text: "vnc-launcher", bold: true}}
	if t, ok := m.connectedTarget(); ok {
		lines = append(lines, bodyLine{text: fmt.Sprintf("Connected to %s", t), ink: connectedInk})
	} else {
		lines = append(lines, bodyLine{text: "Not connected", ink: mutedInk})
	}
	lines = append(lines, bodyLine{text: m.preferencesLine(), ink: mutedInk})
	if len(m.viewer.Recent) > 0 {
		lines = append(lines, bodyLine{}, bodyLine{text: "Recent hosts", bold: true})
		for _, row := range recentRows(m.viewer.Recent) {
			lines = append(lines, bodyLine{text: "  " + row})
		}
	}
	if m.errMsg != "" {
		lines = append(lines, bodyLine{}, bodyLine{text: m.errMsg, ink: errorInk, bold: true})
	}
	return lines
}

// recentRows lines recent addresses up as host, port and display columns.
func recentRows(recent []string) []string {
	rows := make([][]string, 0, len(recent))
	for _, addr := range recent {
		t, err := session.ParseTarget(addr)
		if err != nil {
			rows = append(rows, []string{addr})
			continue
		}
		row := []string{t.Host, strconv.Itoa(t.TCPPort())}
		if n := t.TCPPort() - session.DefaultPort; n >= 0 && n < 100 {
			row = append(row, fmt.Sprintf("display %d", n))
		}
		rows = append(rows, row)
	}
	return table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight})
}

func (m *Model) preferencesLine() string {
	parts := []string{fmt.Sprintf("display %d", m.viewer.Display)}
	if m.viewer.ViewOnly {
		parts = append(parts, "view only")
	}
	if m.viewer.Scaled {
		parts = append(parts, "scaled")
	}
	return "Next connection: " + strings.Join(parts, ", ")
}

func (m *Model) drawBody(g *termhost.Grid) {
	w, h := g.Size()
	row := 2
	for _, line := range m.bodyLines() {
		if row >= h-1 {
			return
		}
		text := line.text
		if ansi.StringWidth(text) > w-4 && w > 5 {
			text = truncate.StringWithTail(text, uint(w-4), "…")
		}
		g.WriteString(2, row, text, line.ink, nil, line.bold)
		row++
	}
}

func (m *Model) drawStatus(g *termhost.Grid, w, h int) {
	left, ink := m.statusMessage()
	right := m.connectionLabel() + " "
	line := fitColumns(" "+left, right, w, nil)
	g.WriteString(0, h-1, line, m.palette.Text, m.palette.Back, false)
	rw := ansi.StringWidth(right)
	if ink != nil {
		lw := min(ansi.StringWidth(" "+left), w-rw)
		g.WriteString(0, h-1, ansi.Truncate(line, lw, ""), ink, m.palette.Back, true)
	}
	if m.connected() && rw < w {
		g.WriteString(w-rw, h-1, right, connectedInk, m.palette.Back, true)
	}
}

// statusMessage picks what the left of the status line shows: an error,
// then a fresh info message, then the hint of the highlighted item.
func (m *Model) statusMessage() (string, color.Color) {
	if m.errMsg != "" {
		return m.errMsg, errorInk
	}
	if info := m.currentInfo(); info != "" {
		return info, nil
	}
	if m.hint != "" {
		return m.hint, nil
	}
	return defaultHint, nil
}

func (m *Model) connected() bool {
	return m.session != nil && m.session.Connected()
}

func (m *Model) connectedTarget() (string, bool) {
	if m.session == nil {
		return "", false
	}
	t, ok := m.session.Target()
	if !ok {
		return "", false
	}
	return t.String(), true
}

func (m *Model) connectionLabel() string {
	if t, ok := m.connectedTarget(); ok {
		return "● " + t
	}
	return "○ offline"
}

// fitColumns lays left and right out on one line of width columns,
// truncating left first. fill styles the padding between them.
func fitColumns(left, right string, width int, fill func(string) string) string {
	if width <= 0 {
		return ""
	}
	if fill == nil {
		fill = func(s string) string { return s }
	}
	rw := ansi.StringWidth(right)
	if rw >= width {
		return truncate.StringWithTail(right, uint(width), "…")
	}
	avail := width - rw
	if ansi.StringWidth(left) > avail {
		left = truncate.StringWithTail(left, uint(avail), "…")
	}
	gap := max(width-ansi.StringWidth(left)-rw, 0)
	return left + fill(strings.Repeat(" ", gap)) + right
}

func (m *Model) promptView(w, h int) string {
	bar := termhost.NewGrid(w, 1)
	m.host.Paint(bar)

	f := m.prompt
	rows := []string{
		styles.PromptTitle.Render("Connect to"),
		f.InputView(),
	}
	for i, s := range f.Suggestions() {
		if i == f.Selected() {
			rows = append(rows, styles.SuggestionOn.Render(" "+s+" "))
		} else {
			rows = append(rows, styles.Suggestion.Render(" "+s+" "))
		}
	}
	if f.Error() != "" {
		rows = append(rows, styles.Error.Render(f.Error()))
	}
	rows = append(rows, styles.PromptHelp.Render("Enter connects · Tab cycles recent · Esc cancels"))
	dialog := styles.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	body := lipgloss.Place(w, max(h-2, 0), lipgloss.Center, lipgloss.Center, dialog)

	left := styles.StatusHint.Render(" Type an address and press Enter")
	right := styles.Status.Render(m.connectionLabel() + " ")
	if m.connected() {
		right = styles.Connected.Render(m.connectionLabel() + " ")
	}
	status := fitColumns(left, right, w, func(s string) string { return styles.Status.Render(s) })

	return lipgloss.JoinVertical(lipgloss.Left, bar.Render(), body, status)
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoTTL)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
