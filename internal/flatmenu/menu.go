package flatmenu

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/atomicstack/vnc-launcher/internal/logging/events"
)

// ID identifies a menu for the lifetime of the process.
type ID int64

var lastID atomic.Int64

func nextID() ID {
	return ID(lastID.Add(1))
}

const (
	barDismissInterval   = 500 * time.Millisecond
	popupDismissInterval = 300 * time.Millisecond
)

// HighlightFunc observes highlight changes anywhere in a menu tree. item is
// nil when the highlight was cleared.
type HighlightFunc func(item *Item)

// variant supplies the geometry and painting that differ between a bar and
// a popup. The remaining hooks run after the shared pointer handling.
type variant interface {
	popupStyle() bool
	layout(m *Menu, meas Measurer)
	paint(m *Menu, c Canvas)
	newChild(m *Menu) *Menu
	anchor(m *Menu) Point
	pointerMoved(m *Menu, x, y int)
	pointerPressed(m *Menu, b Button)
}

// arena owns every menu of one tree. Parent and popup links are stored as
// IDs and resolved here, so a closed menu simply stops resolving.
type arena struct {
	menus map[ID]*Menu
}

func newArena() *arena {
	return &arena{menus: make(map[ID]*Menu)}
}

func (a *arena) get(id ID) *Menu {
	if id == 0 {
		return nil
	}
	return a.menus[id]
}

// Menu is the state machine shared by Bar and Popup. All methods must be
// called from the host's event loop.
type Menu struct {
	id    ID
	arena *arena
	kind  variant

	palette            Palette
	font               Font
	hoverFont          Font
	metrics            Metrics
	borderDrawing      bool
	hoverBorderDrawing bool
	hoverBackDrawing   bool
	interval           time.Duration

	host    Host
	bounds  Rect
	visible bool
	closed  bool

	parent     ID
	root       ID
	parentItem *Item
	popup      ID

	items   *ItemList
	current *Item

	hovered         bool
	pressed         bool
	alwaysShowPopup bool
	needShowPopup   bool
	ignoreNextMove  bool

	timerGen   uint64
	timerArmed bool

	onHighlight []HighlightFunc
	placeholder string
}

func newMenu(kind variant, a *arena) *Menu {
	m := &Menu{
		id:               nextID(),
		arena:            a,
		kind:             kind,
		palette:          DefaultPalette(),
		font:             DefaultFont,
		hoverFont:        DefaultFont,
		metrics:          DefaultMetrics(),
		hoverBackDrawing: true,
		interval:         barDismissInterval,
		items:            NewItemList(),
	}
	m.root = m.id
	a.menus[m.id] = m
	return m
}

func newPopupMenu(a *arena) *Menu {
	m := newMenu(popupVariant{}, a)
	m.bounds = Rect{W: 80, H: 10}
	m.alwaysShowPopup = true
	m.interval = popupDismissInterval
	return m
}

func (m *Menu) ID() ID { return m.id }

func (m *Menu) String() string { return fmt.Sprintf("Menu%d", m.id) }

// Items is the list of entries shown by this menu.
func (m *Menu) Items() *ItemList { return m.items }

// Highlighted returns the item under the pointer, or nil.
func (m *Menu) Highlighted() *Item { return m.current }

func (m *Menu) IsPopup() bool { return m.kind.popupStyle() }

func (m *Menu) Hovered() bool { return m.hovered }

func (m *Menu) Pressed() bool { return m.pressed }

func (m *Menu) Visible() bool { return m.visible }

// Bounds is the menu rectangle in host coordinates.
func (m *Menu) Bounds() Rect { return m.bounds }

// SetBounds moves and resizes the menu.
func (m *Menu) SetBounds(r Rect) {
	m.bounds = r
	m.Invalidate()
}

// SetPosition moves the menu without changing its size.
func (m *Menu) SetPosition(p Point) {
	m.bounds.X, m.bounds.Y = p.X, p.Y
	m.Invalidate()
}

// ToHost converts a menu-local point to host coordinates.
func (m *Menu) ToHost(p Point) Point {
	return m.bounds.Location().Add(p)
}

// Host returns the surface the menu is attached to.
func (m *Menu) Host() Host { return m.host }

// Attach places the menu on h.
func (m *Menu) Attach(h Host) {
	if h == nil || m.host == h {
		return
	}
	if m.host != nil {
		m.host.Detach(m)
	}
	m.host = h
	h.Attach(m)
}

// Parent returns the owning menu of a cascaded popup.
func (m *Menu) Parent() *Menu { return m.arena.get(m.parent) }

// ParentItem returns the item whose submenu this popup shows.
func (m *Menu) ParentItem() *Item { return m.parentItem }

// Root returns the top-level menu of the tree.
func (m *Menu) Root() *Menu {
	if root := m.arena.get(m.root); root != nil {
		return root
	}
	return m
}

// Popup returns the cached child popup, or nil before the first submenu
// was opened.
func (m *Menu) Popup() *Menu { return m.arena.get(m.popup) }

func (m *Menu) setParent(p *Menu) {
	if p == nil {
		m.parent = 0
	} else {
		m.parent = p.id
	}
	m.refreshRoot()
}

func (m *Menu) refreshRoot() {
	if parent := m.Parent(); parent != nil {
		m.root = parent.root
	} else {
		m.root = m.id
	}
	if child := m.Popup(); child != nil {
		child.refreshRoot()
	}
}

func (m *Menu) topPopup() *Menu {
	top := m
	for p := top.Parent(); p != nil && p.IsPopup(); p = p.Parent() {
		top = p
	}
	return top
}

func (m *Menu) Palette() Palette { return m.palette }

func (m *Menu) SetPalette(p Palette) {
	m.palette = p
	m.Invalidate()
}

func (m *Menu) Font() Font { return m.font }

func (m *Menu) SetFont(f Font) {
	m.font = f
	m.Invalidate()
}

func (m *Menu) HoverFont() Font { return m.hoverFont }

func (m *Menu) SetHoverFont(f Font) {
	m.hoverFont = f
	m.Invalidate()
}

func (m *Menu) Metrics() Metrics { return m.metrics }

func (m *Menu) SetMetrics(mt Metrics) {
	m.metrics = mt
	m.Invalidate()
}

func (m *Menu) BorderDrawing() bool { return m.borderDrawing }

func (m *Menu) SetBorderDrawing(v bool) {
	m.borderDrawing = v
	m.Invalidate()
}

func (m *Menu) HoverBorderDrawing() bool { return m.hoverBorderDrawing }

func (m *Menu) SetHoverBorderDrawing(v bool) {
	m.hoverBorderDrawing = v
	m.Invalidate()
}

func (m *Menu) HoverBackDrawing() bool { return m.hoverBackDrawing }

func (m *Menu) SetHoverBackDrawing(v bool) {
	m.hoverBackDrawing = v
	m.Invalidate()
}

// DismissInterval is how long the pointer may stay outside the menu chain
// before it closes.
func (m *Menu) DismissInterval() time.Duration { return m.interval }

func (m *Menu) SetDismissInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	m.interval = d
}

// Invalidate asks the host for a repaint.
func (m *Menu) Invalidate() {
	if m.host != nil {
		m.host.Invalidate(m)
	}
}

// SetVisible shows or hides the menu. Any change resets the dismiss timer,
// the hover and press state, and the highlight.
func (m *Menu) SetVisible(v bool) {
	if m.visible == v {
		return
	}
	m.visible = v
	m.stopTimer()
	m.hovered = false
	m.pressed = false
	m.resetHighlight()
	m.ignoreNextMove = false
	m.Invalidate()
}

// Layout positions the items using meas, falling back to the host.
func (m *Menu) Layout(meas Measurer) {
	if meas == nil {
		meas = m.host
	}
	if meas == nil {
		return
	}
	m.kind.layout(m, meas)
}

// Paint lays the menu out and draws it onto c.
func (m *Menu) Paint(c Canvas) {
	m.kind.layout(m, c)
	m.kind.paint(m, c)
}

func (m *Menu) measureItem(meas Measurer, item *Item, x, y int) Rect {
	text := item.Text
	if text == "" {
		text = " "
	}
	w1, h1 := meas.MeasureText(text, m.font)
	w2, h2 := meas.MeasureText(text, m.hoverFont)
	r := Rect{
		X: x,
		Y: y,
		W: int(max(w1, w2) + 0.5),
		H: int(max(h1, h2) + 0.5),
	}
	return r.Inset(m.metrics.ItemPad)
}

// PointerEnter is called by the host when the pointer moves onto the menu.
func (m *Menu) PointerEnter() {
	m.hovered = true
	m.stopTimer()
}

// PointerLeave is called by the host when the pointer leaves the menu.
func (m *Menu) PointerLeave() {
	m.hovered = false
	m.startTimer()
}

// PointerMove updates the highlight from a menu-local pointer position.
// Moving over empty space keeps the current highlight.
func (m *Menu) PointerMove(x, y int) {
	if m.ignoreNextMove {
		m.ignoreNextMove = false
		return
	}
	prev := m.current
	m.updateHighlight(x, y)
	if prev != m.current {
		m.Invalidate()
		if m.needShowPopup || m.alwaysShowPopup {
			m.ShowPopup()
		}
	}
	m.kind.pointerMoved(m, x, y)
}

// PointerDown records a press.
func (m *Menu) PointerDown(b Button, x, y int) {
	if b == ButtonLeft {
		m.pressed = true
	}
	m.kind.pointerPressed(m, b)
}

// PointerUp activates the highlighted leaf item. The menu chain is closed
// before the item's callbacks run.
func (m *Menu) PointerUp(b Button, x, y int) {
	if b != ButtonLeft {
		return
	}
	m.pressed = false
	m.ignoreNextMove = false

	item := m.current
	if item == nil || item.HasChildren() || !item.HasActivate() {
		return
	}
	m.resetHighlight()
	m.Invalidate()

	switch {
	case m.parentItem != nil:
		top := m.topPopup()
		top.HidePopup()
		if !top.requestHide() {
			top.SetVisible(false)
		}
	case m.parent == 0 && m.IsPopup():
		m.HidePopup()
		m.SetVisible(false)
	default:
		m.ignoreNextMove = true
	}

	events.Menu.Activate(m.String(), item.Text)
	item.Activate()
	m.needShowPopup = false
}

func (m *Menu) updateHighlight(x, y int) bool {
	for _, item := range m.items.items {
		if !item.selectable || !item.Enabled || !item.bounds.Contains(x, y) {
			continue
		}
		if item != m.current {
			m.current = item
			m.notifyHighlight()
		}
		return true
	}
	return false
}

func (m *Menu) resetHighlight() {
	if m.current == nil {
		return
	}
	m.current = nil
	m.notifyHighlight()
}

func (m *Menu) notifyHighlight() {
	text := ""
	if m.current != nil {
		text = m.current.Text
	}
	events.Menu.Highlight(m.String(), text)
	root := m.Root()
	for _, fn := range root.onHighlight {
		fn(m.current)
	}
}

// PointerInPopupChain reports whether the pointer is over any open
// descendant popup.
func (m *Menu) PointerInPopupChain() bool {
	p := m.Popup()
	if p == nil {
		return false
	}
	return p.hovered || p.PointerInPopupChain()
}

// ShowPopup opens the submenu of the highlighted item, replacing any open
// popup. It does nothing when the highlight has no enabled submenu or the
// menu has no host.
func (m *Menu) ShowPopup() {
	m.HidePopup()

	item := m.current
	if item == nil || !item.HasChildren() || !item.Enabled || !item.selectable || m.host == nil {
		return
	}

	popup := m.Popup()
	if popup == nil {
		popup = m.kind.newChild(m)
		m.popup = popup.id
	}
	popup.Attach(m.host)
	popup.setParent(m)

	popup.items.Clear()
	for _, child := range item.children.items {
		popup.items.Add(child)
	}

	at := m.kind.anchor(m)
	popup.SetVisible(true)
	popup.parentItem = item
	popup.Layout(m.host)
	popup.SetPosition(at)
	m.host.Raise(popup)
	events.Menu.PopupShow(m.String(), popup.String(), item.Text, popup.items.Len())
}

// HidePopup closes the popup chain below this menu. Popups are emptied and
// hidden but kept for reuse.
func (m *Menu) HidePopup() {
	p := m.Popup()
	if p == nil {
		return
	}
	p.HidePopup()
	if p.visible {
		p.SetVisible(false)
		events.Menu.PopupHide(p.String())
	}
	p.items.Clear()
}

// requestHide asks the owning menu to close this popup. It reports false
// when there is no owner to ask.
func (m *Menu) requestHide() bool {
	parent := m.Parent()
	if parent == nil {
		return false
	}
	parent.childRequestHide(m)
	return true
}

func (m *Menu) childRequestHide(child *Menu) {
	if !m.IsPopup() && m.hovered && child.parentItem == m.current {
		return
	}
	m.needShowPopup = false
	if m.parentItem == nil && !m.IsPopup() {
		m.resetHighlight()
	}
	m.Invalidate()
	m.HidePopup()
	if m.hovered {
		return
	}
	if !m.requestHide() && m.IsPopup() {
		m.SetVisible(false)
	}
}

func (m *Menu) startTimer() {
	m.stopTimer()
	if m.host == nil {
		return
	}
	m.timerArmed = true
	gen := m.timerGen
	m.host.Schedule(m.id, m.interval, func() { m.onTimer(gen) })
}

func (m *Menu) stopTimer() {
	m.timerGen++
	if !m.timerArmed {
		return
	}
	m.timerArmed = false
	if m.host != nil {
		m.host.Cancel(m.id)
	}
}

func (m *Menu) onTimer(gen uint64) {
	if m.closed || !m.timerArmed || gen != m.timerGen {
		return
	}
	m.stopTimer()
	if m.hovered || m.PointerInPopupChain() {
		return
	}
	m.resetHighlight()
	m.needShowPopup = false
	m.Invalidate()
	m.HidePopup()
	events.Menu.Dismiss(m.String())

	if m.parentItem != nil && m.requestHide() {
		return
	}
	if m.IsPopup() {
		m.SetVisible(false)
	}
}

// Dismiss closes the popup chain and clears the highlight at once, the
// way an expired dismiss timer would. A popup also hides itself.
func (m *Menu) Dismiss() {
	if m.closed {
		return
	}
	m.stopTimer()
	m.resetHighlight()
	m.needShowPopup = false
	m.HidePopup()
	m.Invalidate()
	if m.IsPopup() {
		m.SetVisible(false)
	}
}

// Close releases the menu and its popup chain. A closed menu no longer
// resolves as a parent or popup of any other menu.
func (m *Menu) Close() {
	if m.closed {
		return
	}
	if p := m.Popup(); p != nil {
		p.Close()
	}
	m.stopTimer()
	m.visible = false
	m.current = nil
	if m.host != nil {
		m.host.Detach(m)
		m.host = nil
	}
	if parent := m.Parent(); parent != nil && parent.popup == m.id {
		parent.popup = 0
	}
	m.popup = 0
	m.parent = 0
	m.closed = true
	delete(m.arena.menus, m.id)
}
