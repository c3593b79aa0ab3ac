package testutil

import (
	"sort"
	"time"

	"github.com/atomicstack/vnc-launcher/internal/flatmenu"
)

type task struct {
	due time.Duration
	seq int
	fn  func()
}

// Host is a flatmenu.Host driven by a manual clock. Nothing runs until
// Advance is called.
type Host struct {
	Measurer

	now         time.Duration
	seq         int
	menus       []*flatmenu.Menu
	tasks       map[flatmenu.ID]task
	invalidated map[flatmenu.ID]int
}

func NewHost() *Host {
	return &Host{
		Measurer:    PixelMeasurer,
		tasks:       make(map[flatmenu.ID]task),
		invalidated: make(map[flatmenu.ID]int),
	}
}

func (h *Host) Attach(m *flatmenu.Menu) {
	for _, existing := range h.menus {
		if existing == m {
			return
		}
	}
	h.menus = append(h.menus, m)
}

func (h *Host) Detach(m *flatmenu.Menu) {
	for i, existing := range h.menus {
		if existing == m {
			h.menus = append(h.menus[:i], h.menus[i+1:]...)
			break
		}
	}
	delete(h.tasks, m.ID())
}

func (h *Host) Raise(m *flatmenu.Menu) {
	h.Detach(m)
	h.menus = append(h.menus, m)
}

func (h *Host) Invalidate(m *flatmenu.Menu) {
	h.invalidated[m.ID()]++
}

func (h *Host) Schedule(key flatmenu.ID, after time.Duration, fn func()) {
	h.seq++
	h.tasks[key] = task{due: h.now + after, seq: h.seq, fn: fn}
}

func (h *Host) Cancel(key flatmenu.ID) {
	delete(h.tasks, key)
}

// Pending reports whether a dismiss task is armed for key.
func (h *Host) Pending(key flatmenu.ID) bool {
	_, ok := h.tasks[key]
	return ok
}

// Advance moves the clock forward and runs every task that comes due, in
// due order.
func (h *Host) Advance(d time.Duration) {
	target := h.now + d
	for {
		key, t, ok := h.nextDue(target)
		if !ok {
			break
		}
		delete(h.tasks, key)
		h.now = t.due
		t.fn()
	}
	h.now = target
}

func (h *Host) nextDue(limit time.Duration) (flatmenu.ID, task, bool) {
	keys := make([]flatmenu.ID, 0, len(h.tasks))
	for key, t := range h.tasks {
		if t.due <= limit {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return 0, task{}, false
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := h.tasks[keys[i]], h.tasks[keys[j]]
		if a.due != b.due {
			return a.due < b.due
		}
		return a.seq < b.seq
	})
	return keys[0], h.tasks[keys[0]], true
}

// Menus returns attached menus bottom to top.
func (h *Host) Menus() []*flatmenu.Menu {
	return append([]*flatmenu.Menu(nil), h.menus...)
}

// Top returns the topmost attached menu.
func (h *Host) Top() *flatmenu.Menu {
	if len(h.menus) == 0 {
		return nil
	}
	return h.menus[len(h.menus)-1]
}

// Invalidations returns how often m asked to be repainted.
func (h *Host) Invalidations(m *flatmenu.Menu) int {
	return h.invalidated[m.ID()]
}

// PaintAll paints every visible menu onto a fresh recording canvas.
func (h *Host) PaintAll() map[flatmenu.ID]*Canvas {
	out := make(map[flatmenu.ID]*Canvas, len(h.menus))
	for _, m := range h.menus {
		if !m.Visible() {
			continue
		}
		c := &Canvas{Measurer: h.Measurer}
		m.Paint(c)
		out[m.ID()] = c
	}
	return out
}

// Center returns the menu-local centre of item.
func Center(item *flatmenu.Item) (int, int) {
	r := item.Bounds()
	return r.X + r.W/2, r.Y + r.H/2
}
