package flatmenu

import (
	"image/color"

	"github.com/atomicstack/vnc-launcher/internal/logging/events"
)

// Popup is a vertical menu. Used standalone it acts as a context menu;
// bars and other popups create their cascaded popups internally.
type Popup struct {
	*Menu
}

// NewPopup returns a hidden, empty popup.
func NewPopup() *Popup {
	return &Popup{Menu: newPopupMenu(newArena())}
}

// OnHighlight subscribes fn to highlight changes in the popup and every
// popup cascaded from it.
func (p *Popup) OnHighlight(fn HighlightFunc) {
	if fn != nil {
		p.onHighlight = append(p.onHighlight, fn)
	}
}

// Track shows the popup with its top-left corner at (x, y).
func (p *Popup) Track(host Host, x, y int) {
	p.TrackAligned(host, AlignLeft, AlignTop, x, y)
}

// TrackAligned shows the popup on host aligned to (x, y). The aligned edge
// lands one unit outside the point so the pointer starts inside the popup.
// It does nothing without a host or items.
func (p *Popup) TrackAligned(host Host, h HAlign, v VAlign, x, y int) {
	m := p.Menu
	if host == nil || m.items.Len() == 0 {
		return
	}
	m.SetVisible(false)
	m.Attach(host)
	m.setParent(nil)
	m.SetVisible(true)
	m.parentItem = nil
	m.Layout(host)

	w, ht := m.bounds.W, m.bounds.H
	var at Point
	switch h {
	case AlignCenter:
		at.X = x - w/2
	case AlignRight:
		at.X = x - w + 1
	default:
		at.X = x - 1
	}
	switch v {
	case AlignMiddle:
		at.Y = y - ht/2
	case AlignBottom:
		at.Y = y - ht + 1
	default:
		at.Y = y - 1
	}
	m.SetPosition(at)
	host.Raise(m)
	events.Menu.Track(m.String(), at.X, at.Y)
}

type popupVariant struct{}

func (popupVariant) popupStyle() bool { return true }

func (v popupVariant) layout(m *Menu, meas Measurer) {
	mt := m.metrics
	x, y := mt.LeftMargin, mt.TopMargin
	check := m.items.hasCheckOrRadio()
	if check {
		x += mt.CheckArea + mt.GutterGap
	}
	for _, item := range m.items.items {
		r := m.measureItem(meas, item, x, y)
		if item.isSeparator() {
			r = r.Offset(0, -mt.ItemSpacing/2)
			r.H = mt.SeparatorSize
			y += r.H
		} else {
			y += mt.ItemSpacing + r.H
		}
		item.bounds = r
	}
	v.adjustSize(m, check)
	for _, item := range m.items.items {
		item.bounds.W = m.bounds.W - item.bounds.X - mt.RightInset
	}
}

func (popupVariant) adjustSize(m *Menu, check bool) {
	if m.items.Len() == 0 {
		return
	}
	mt := m.metrics
	w := mt.PopupMinWidth
	if parent := m.Parent(); parent != nil && !parent.IsPopup() && m.parentItem != nil {
		w = max(w, m.parentItem.bounds.W+mt.ParentItemExtra)
	}
	padX := mt.PopupPadX
	if check {
		padX += mt.CheckArea + mt.GutterGap
	}
	h := 0
	submenu := false
	for _, item := range m.items.items {
		w = max(w, item.bounds.W+padX)
		h = max(h, item.bounds.Bottom())
		submenu = submenu || item.HasChildren()
	}
	if submenu {
		w += mt.SubmenuExtra
	}
	m.bounds.W = w
	m.bounds.H = h + mt.PopupPadY
}

func (v popupVariant) paint(m *Menu, c Canvas) {
	mt := m.metrics
	pal := m.palette
	client := Rect{W: m.bounds.W, H: m.bounds.H}
	drawBackground(c, client, pal.Back)
	if m.items.hasCheckOrRadio() {
		drawBackground(c, Rect{W: mt.CheckArea + mt.GutterGap + 1, H: client.H}, pal.Back)
	}
	if m.borderDrawing {
		drawBorder(c, client, pal.Border)
		// open the top edge where the popup meets its bar item
		if parent := m.Parent(); parent != nil && !parent.IsPopup() && m.parentItem != nil {
			c.Line(1, 0, m.parentItem.bounds.W-2, 0, pal.Back)
		}
	}
	for _, item := range m.items.items {
		v.drawItem(m, c, item)
	}
}

func (v popupVariant) drawItem(m *Menu, c Canvas, item *Item) {
	r := item.bounds
	if r.W < 2 {
		return
	}
	pal := m.palette
	if item.isSeparator() {
		y := r.Y + r.H/2
		c.Line(r.X, y, r.Right()-1, y, pal.Separator)
		return
	}

	col := pal.Text
	if !item.Enabled {
		col = pal.DisabledText
	}
	v.drawCheck(m, c, item, col)
	v.drawRadio(m, c, item, col)

	indent := m.metrics.TextIndent
	textRect := Rect{X: r.X + indent, Y: r.Y, W: r.W - indent, H: r.H}
	if item == m.current {
		if m.hoverBackDrawing {
			drawBackground(c, r, pal.HoverBack)
		}
		if m.hoverBorderDrawing {
			drawBorder(c, r, pal.HoverBorder)
		}
		c.TextIn(item.Text, m.hoverFont, pal.HoverText, textRect, AlignLeft, AlignMiddle)
		if item.HasChildren() {
			v.drawArrow(c, r, pal.HoverText)
		}
		return
	}
	c.TextIn(item.Text, m.font, col, textRect, AlignLeft, AlignMiddle)
	if item.HasChildren() {
		v.drawArrow(c, r, col)
	}
}

func (popupVariant) drawCheck(m *Menu, c Canvas, item *Item, col color.Color) {
	if item.style != StyleCheck {
		return
	}
	r := item.bounds
	if gp, ok := c.(GlyphPainter); ok {
		g := GlyphCheckBox
		if item.Checked {
			g = GlyphCheckMark
		}
		gp.DrawGlyph(g, r, col)
		return
	}
	const size = 11
	x := r.X - m.metrics.CheckArea - m.metrics.GutterGap
	y := r.Y + r.H/2 - size/2
	box := Rect{X: x, Y: y, W: size, H: size}
	drawBackground(c, box, m.palette.Back)
	drawBorder(c, box, col)
	if item.Checked {
		c.Line(x+2, y+7, x+4, y+9, col)
		c.Line(x+4, y+9, x+9, y+4, col)
	}
}

func (popupVariant) drawRadio(m *Menu, c Canvas, item *Item, col color.Color) {
	if item.style != StyleRadio || !item.Radio {
		return
	}
	r := item.bounds
	if gp, ok := c.(GlyphPainter); ok {
		gp.DrawGlyph(GlyphRadio, r, col)
		return
	}
	const size = 5
	x := r.X - m.metrics.CheckArea/2 - size/2 - 5
	y := r.Y + r.H/2 - 2
	c.FillRect(Rect{X: x, Y: y, W: size, H: size}, col)
}

func (popupVariant) drawArrow(c Canvas, r Rect, col color.Color) {
	if gp, ok := c.(GlyphPainter); ok {
		gp.DrawGlyph(GlyphSubmenuArrow, r, col)
		return
	}
	x := r.Right() - 8
	y := r.Y + r.H/2 - 2
	c.Line(x, y, x, y+4, col)
	c.Line(x+1, y+1, x+1, y+3, col)
	c.Line(x+2, y+2, x+1, y+2, col)
}

// newChild copies the full style of this popup to its cascaded popup.
func (popupVariant) newChild(m *Menu) *Menu {
	p := newPopupMenu(m.arena)
	p.palette = m.palette
	p.font = m.font
	p.hoverFont = m.hoverFont
	p.metrics = m.metrics
	p.borderDrawing = m.borderDrawing
	p.hoverBorderDrawing = m.hoverBorderDrawing
	p.hoverBackDrawing = m.hoverBackDrawing
	p.interval = m.interval
	return p
}

// anchor places a cascaded popup against the right edge, raised so its
// first item lines up with the highlighted one.
func (popupVariant) anchor(m *Menu) Point {
	mt := m.metrics
	x := m.bounds.W - mt.PopupOverlap
	if !m.borderDrawing {
		x += mt.PopupOverlap
	}
	return m.ToHost(Point{X: x, Y: m.current.bounds.Y - mt.SubmenuRise})
}

// pointerMoved reopens a closed submenu when the pointer rests on the
// trailing arrow band of its item.
func (v popupVariant) pointerMoved(m *Menu, x, y int) {
	if !v.nearSubmenuArrow(m, x, y) {
		return
	}
	if p := m.Popup(); p != nil && !p.visible {
		m.ShowPopup()
	}
}

func (popupVariant) nearSubmenuArrow(m *Menu, x, y int) bool {
	item := m.current
	band := m.metrics.ArrowBand
	if item == nil || !item.HasChildren() || item.bounds.W < band {
		return false
	}
	r := item.bounds
	return Rect{X: r.Right() - band, Y: r.Y, W: band, H: r.H}.Contains(x, y)
}

func (popupVariant) pointerPressed(*Menu, Button) {}
