package termhost_test

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/vnc-launcher/internal/flatmenu"
	"github.com/atomicstack/vnc-launcher/internal/termhost"
)

type barFixture struct {
	host      *termhost.Host
	bar       *flatmenu.Bar
	conn      *flatmenu.Item
	activated []string
}

func newBarFixture(t *testing.T) *barFixture {
	t.Helper()
	f := &barFixture{host: termhost.New(40, 6), bar: flatmenu.NewBar()}
	record := func(item *flatmenu.Item) { f.activated = append(f.activated, item.Text) }
	f.bar.SetMetrics(termhost.Metrics())
	f.bar.SetDismissInterval(time.Millisecond)
	f.conn = f.bar.Items().AddText("Connection", nil)
	f.conn.Children().AddText("Connect…", record)
	f.conn.Children().AddText("Exit", record)
	f.bar.Items().AddText("View", record)
	f.bar.Attach(f.host)
	f.bar.SetBounds(flatmenu.Rect{W: 40, H: 1})
	f.bar.Layout(nil)
	return f
}

func (f *barFixture) paint() []string {
	w, h := f.host.Size()
	g := termhost.NewGrid(w, h)
	f.host.Paint(g)
	return strings.Split(g.Plain(), "\n")
}

func mouse(action tea.MouseAction, b tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: b}
}

func (f *barFixture) click(x, y int) {
	f.host.HandleMouse(mouse(tea.MouseActionPress, tea.MouseButtonLeft, x, y))
	f.host.HandleMouse(mouse(tea.MouseActionRelease, tea.MouseButtonLeft, x, y))
}

// drain runs the pending tick commands and collects their messages.
func drain(t *testing.T, h *termhost.Host) []termhost.TimerMsg {
	t.Helper()
	cmd := h.Cmd()
	require.NotNil(t, cmd)
	var out []termhost.TimerMsg
	var run func(tea.Cmd)
	run = func(c tea.Cmd) {
		switch msg := c().(type) {
		case termhost.TimerMsg:
			out = append(out, msg)
		case tea.BatchMsg:
			for _, inner := range msg {
				if inner != nil {
					run(inner)
				}
			}
		}
	}
	run(cmd)
	return out
}

func TestBarPaintsItemsOnOneRow(t *testing.T) {
	f := newBarFixture(t)
	assert.Equal(t, flatmenu.Rect{X: 1, Y: 0, W: 12, H: 1}, f.conn.Bounds())
	lines := f.paint()
	assert.Equal(t, "  Connection  View", lines[0])
}

func TestClickOpensPopupUnderItem(t *testing.T) {
	f := newBarFixture(t)
	f.click(3, 0)

	popup := f.bar.Popup()
	require.NotNil(t, popup)
	require.True(t, popup.Visible())
	assert.Equal(t, flatmenu.Rect{X: 1, Y: 1, W: 14, H: 2}, popup.Bounds())

	lines := f.paint()
	assert.Equal(t, "   Connect…", lines[1])
	assert.Equal(t, "   Exit", lines[2])
	assert.False(t, f.host.Dirty())
}

func TestClickPopupItemActivates(t *testing.T) {
	f := newBarFixture(t)
	f.click(3, 0)
	f.host.HandleMouse(mouse(tea.MouseActionMotion, tea.MouseButtonNone, 4, 2))
	f.click(4, 2)

	assert.Equal(t, []string{"Exit"}, f.activated)
	assert.False(t, f.bar.Popup().Visible())
}

func TestMouseOutsideMenusIsNotConsumed(t *testing.T) {
	f := newBarFixture(t)
	assert.False(t, f.host.HandleMouse(mouse(tea.MouseActionPress, tea.MouseButtonLeft, 10, 4)))
	assert.False(t, f.host.HandleMouse(mouse(tea.MouseActionRelease, tea.MouseButtonLeft, 10, 4)))
	assert.True(t, f.host.HandleMouse(mouse(tea.MouseActionMotion, tea.MouseButtonNone, 3, 0)))
	assert.Same(t, f.conn, f.bar.Highlighted())
}

func TestLeavingMenusDismissesThroughTicks(t *testing.T) {
	f := newBarFixture(t)
	f.click(3, 0)
	popup := f.bar.Popup()
	require.NotNil(t, popup)

	f.host.HandleMouse(mouse(tea.MouseActionMotion, tea.MouseButtonNone, 3, 1))
	assert.True(t, popup.Hovered())
	f.host.HandleMouse(mouse(tea.MouseActionMotion, tea.MouseButtonNone, 30, 5))
	assert.False(t, popup.Hovered())

	fired := 0
	for _, msg := range drain(t, f.host) {
		if f.host.Fire(msg) {
			fired++
		}
	}
	assert.Positive(t, fired)
	assert.False(t, popup.Visible())
	assert.Nil(t, f.bar.Highlighted())
}

func TestCancelledAndReplacedTicksAreIgnored(t *testing.T) {
	h := termhost.New(10, 10)
	calls := 0
	h.Schedule(7, time.Millisecond, func() { calls++ })
	h.Schedule(7, time.Millisecond, func() { calls += 10 })
	msgs := drain(t, h)
	require.Len(t, msgs, 2)

	assert.False(t, h.Fire(msgs[0]))
	assert.True(t, h.Fire(msgs[1]))
	assert.Equal(t, 10, calls)
	assert.False(t, h.Pending(7))

	h.Schedule(8, time.Millisecond, func() { calls++ })
	h.Cancel(8)
	for _, msg := range drain(t, h) {
		assert.False(t, h.Fire(msg))
	}
	assert.Equal(t, 10, calls)
	assert.Nil(t, h.Cmd())
}

func TestMenuAtHonoursZOrder(t *testing.T) {
	h := termhost.New(20, 10)
	low := flatmenu.NewBar()
	high := flatmenu.NewBar()
	low.Attach(h)
	high.Attach(h)
	low.SetBounds(flatmenu.Rect{W: 10, H: 2})
	high.SetBounds(flatmenu.Rect{W: 10, H: 2})

	assert.Same(t, high.Menu, h.MenuAt(1, 1))
	h.Raise(low.Menu)
	assert.Same(t, low.Menu, h.MenuAt(1, 1))
	h.Detach(low.Menu)
	assert.Same(t, high.Menu, h.MenuAt(1, 1))
	assert.Nil(t, h.MenuAt(15, 1))
}

func TestPopupGlyphs(t *testing.T) {
	h := termhost.New(30, 6)
	p := flatmenu.NewPopup()
	p.SetMetrics(termhost.Metrics())
	view := p.Items().AddText("View only", func(*flatmenu.Item) {})
	view.SetStyle(flatmenu.StyleCheck)
	view.Checked = true
	display := p.Items().AddText("Display", nil)
	display.Children().AddText(":0", nil)
	p.Track(h, 1, 1)

	g := termhost.NewGrid(30, 6)
	h.Paint(g)
	b := p.Bounds()
	vr := view.Bounds()
	dr := display.Bounds()
	assert.Equal(t, '✓', g.At(b.X+vr.X-2, b.Y+vr.Y).Rune)
	assert.Equal(t, '▸', g.At(b.X+dr.Right()-2, b.Y+dr.Y).Rune)
}
