package termhost

import (
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/vnc-launcher/internal/flatmenu"
)

// TimerMsg is delivered by the tea.Tick commands returned from Cmd. Pass
// it to Fire.
type TimerMsg struct {
	Key flatmenu.ID
	Gen uint64
}

type timer struct {
	gen uint64
	fn  func()
}

type scheduled struct {
	msg   TimerMsg
	after time.Duration
}

// Host shows menus inside a Bubble Tea program. It keeps their z-order,
// turns mouse messages into menu pointer calls and runs dismiss timers as
// tea.Tick commands. Like the rest of the model it must only be used from
// Update and View.
type Host struct {
	width  int
	height int

	menus   []*flatmenu.Menu
	hover   *flatmenu.Menu
	capture *flatmenu.Menu

	gen     uint64
	timers  map[flatmenu.ID]timer
	pending []scheduled
	dirty   bool
}

var _ flatmenu.Host = (*Host)(nil)

func New(width, height int) *Host {
	return &Host{
		width:  width,
		height: height,
		timers: make(map[flatmenu.ID]timer),
	}
}

// Resize changes the area menus are painted into.
func (h *Host) Resize(width, height int) {
	h.width, h.height = width, height
	h.dirty = true
}

func (h *Host) Size() (int, int) { return h.width, h.height }

func (h *Host) MeasureText(text string, _ flatmenu.Font) (float64, float64) {
	return measure(text)
}

func (h *Host) Attach(m *flatmenu.Menu) {
	if m == nil || slices.Contains(h.menus, m) {
		return
	}
	h.menus = append(h.menus, m)
	h.dirty = true
}

func (h *Host) Detach(m *flatmenu.Menu) {
	i := slices.Index(h.menus, m)
	if i < 0 {
		return
	}
	h.menus = slices.Delete(h.menus, i, i+1)
	delete(h.timers, m.ID())
	if h.hover == m {
		h.hover = nil
	}
	if h.capture == m {
		h.capture = nil
	}
	h.dirty = true
}

// Raise moves m to the top of the z-order.
func (h *Host) Raise(m *flatmenu.Menu) {
	i := slices.Index(h.menus, m)
	if i < 0 {
		return
	}
	h.menus = append(slices.Delete(h.menus, i, i+1), m)
	h.dirty = true
}

func (h *Host) Invalidate(*flatmenu.Menu) { h.dirty = true }

// Dirty reports whether a menu asked for a repaint since the last Paint.
func (h *Host) Dirty() bool { return h.dirty }

func (h *Host) Schedule(key flatmenu.ID, after time.Duration, fn func()) {
	h.gen++
	h.timers[key] = timer{gen: h.gen, fn: fn}
	h.pending = append(h.pending, scheduled{msg: TimerMsg{Key: key, Gen: h.gen}, after: after})
}

// Cancel forgets the task for key. Its tick still arrives but Fire
// ignores it.
func (h *Host) Cancel(key flatmenu.ID) {
	delete(h.timers, key)
}

// Cmd returns tick commands for every task scheduled since the last call.
// Models call it at the end of Update.
func (h *Host) Cmd() tea.Cmd {
	if len(h.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(h.pending))
	for _, p := range h.pending {
		msg := p.msg
		cmds = append(cmds, tea.Tick(p.after, func(time.Time) tea.Msg { return msg }))
	}
	h.pending = nil
	return tea.Batch(cmds...)
}

// Fire runs the task a tick belongs to. It reports false for ticks of
// cancelled or replaced tasks.
func (h *Host) Fire(msg TimerMsg) bool {
	t, ok := h.timers[msg.Key]
	if !ok || t.gen != msg.Gen {
		return false
	}
	delete(h.timers, msg.Key)
	t.fn()
	return true
}

// Pending reports whether a task is scheduled for key.
func (h *Host) Pending(key flatmenu.ID) bool {
	_, ok := h.timers[key]
	return ok
}

// MenuAt returns the topmost visible menu containing (x, y).
func (h *Host) MenuAt(x, y int) *flatmenu.Menu {
	for i := len(h.menus) - 1; i >= 0; i-- {
		m := h.menus[i]
		if m.Visible() && m.Bounds().Contains(x, y) {
			return m
		}
	}
	return nil
}

// HandleMouse routes a mouse message to the menu under the pointer,
// synthesising enter and leave calls as the pointer crosses menus. A
// release goes to the menu that received the press. It reports whether a
// menu consumed the message.
func (h *Host) HandleMouse(msg tea.MouseMsg) bool {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown, tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		return h.MenuAt(msg.X, msg.Y) != nil
	}
	target := h.MenuAt(msg.X, msg.Y)
	if target != h.hover {
		if h.hover != nil && h.hover.Visible() {
			h.hover.PointerLeave()
		}
		if target != nil {
			target.PointerEnter()
		}
		h.hover = target
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if target == nil {
			return false
		}
		x, y := local(target, msg.X, msg.Y)
		target.PointerMove(x, y)
		target.PointerDown(button(msg.Button), x, y)
		h.capture = target
		return true
	case tea.MouseActionRelease:
		m := h.capture
		h.capture = nil
		if m == nil {
			m = target
		}
		if m == nil {
			return false
		}
		x, y := local(m, msg.X, msg.Y)
		m.PointerUp(button(msg.Button), x, y)
		return true
	default:
		if target == nil {
			return false
		}
		x, y := local(target, msg.X, msg.Y)
		target.PointerMove(x, y)
		return true
	}
}

func local(m *flatmenu.Menu, x, y int) (int, int) {
	b := m.Bounds()
	return x - b.X, y - b.Y
}

// button maps a terminal button to a menu button. Releases reported
// without a button count as left releases.
func button(b tea.MouseButton) flatmenu.Button {
	switch b {
	case tea.MouseButtonRight:
		return flatmenu.ButtonRight
	case tea.MouseButtonMiddle:
		return flatmenu.ButtonMiddle
	default:
		return flatmenu.ButtonLeft
	}
}

// Paint draws every visible menu over g in z-order.
func (h *Host) Paint(g *Grid) {
	for _, m := range h.menus {
		if m.Visible() {
			m.Paint(g.Region(m.Bounds()))
		}
	}
	h.dirty = false
}
