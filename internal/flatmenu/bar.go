package flatmenu

// Bar is a horizontal menu strip. Submenus open on click, or on hover when
// AlwaysShowPopup is set.
type Bar struct {
	*Menu
}

// NewBar returns a visible, empty bar.
func NewBar() *Bar {
	m := newMenu(barVariant{}, newArena())
	m.visible = true
	return &Bar{Menu: m}
}

func (b *Bar) AlwaysShowPopup() bool { return b.alwaysShowPopup }

// SetAlwaysShowPopup makes submenus follow the pointer without a click.
func (b *Bar) SetAlwaysShowPopup(v bool) {
	b.alwaysShowPopup = v
}

// OnHighlight subscribes fn to highlight changes in the bar and every popup
// opened from it.
func (b *Bar) OnHighlight(fn HighlightFunc) {
	if fn != nil {
		b.onHighlight = append(b.onHighlight, fn)
	}
}

// SetPlaceholder sets text drawn while the bar has no items.
func (b *Bar) SetPlaceholder(text string) {
	b.placeholder = text
	b.Invalidate()
}

type barVariant struct{}

func (barVariant) popupStyle() bool { return false }

func (barVariant) layout(m *Menu, meas Measurer) {
	mt := m.metrics
	x, y := mt.LeftMargin, mt.TopMargin
	bold := m.font.Bold || m.hoverFont.Bold
	for _, item := range m.items.items {
		r := m.measureItem(meas, item, x, y)
		if bold {
			r.W += mt.BoldExtra
		}
		if item.isSeparator() {
			r = r.Offset(-mt.ItemSpacing/2, 0)
			r.W = mt.SeparatorSize
			x += r.W
		} else {
			x += mt.ItemSpacing + r.W
		}
		item.bounds = r
	}
}

func (v barVariant) paint(m *Menu, c Canvas) {
	client := Rect{W: m.bounds.W, H: m.bounds.H}
	drawBackground(c, client, m.palette.Back)
	if m.borderDrawing {
		drawBorder(c, client, m.palette.Border)
	}
	if m.items.Len() == 0 && m.placeholder != "" {
		c.Text(m.placeholder, m.font, m.palette.Text, Point{X: m.metrics.LeftMargin, Y: m.metrics.TopMargin})
		return
	}
	for _, item := range m.items.items {
		v.drawItem(m, c, item)
	}
}

func (barVariant) drawItem(m *Menu, c Canvas, item *Item) {
	r := item.bounds
	if r.W < 2 {
		return
	}
	pal := m.palette
	if item.isSeparator() {
		x := (r.X + r.Right()) / 2
		inset := m.metrics.SeparatorInset
		c.Line(x, r.Y+inset, x, r.Bottom()-inset, pal.Separator)
		return
	}

	textRect := r.Offset(m.metrics.BarTextShift, 0)
	if item == m.current && !m.ignoreNextMove {
		if popup := m.Popup(); popup != nil && popup.visible && item.HasChildren() {
			drawBackground(c, r, popup.palette.Back)
			if m.borderDrawing {
				drawBorder(c, r, popup.palette.Border)
			}
			c.TextIn(item.Text, m.font, popup.palette.Text, textRect, AlignCenter, AlignMiddle)
			return
		}
		if m.hoverBackDrawing {
			drawBackground(c, r, pal.HoverBack)
		}
		if m.hoverBorderDrawing {
			drawBorder(c, r, pal.HoverBorder)
		}
		c.TextIn(item.Text, m.hoverFont, pal.HoverText, textRect, AlignCenter, AlignMiddle)
		return
	}

	col := pal.Text
	if !item.Enabled {
		col = pal.DisabledText
	}
	c.TextIn(item.Text, m.font, col, textRect, AlignCenter, AlignMiddle)
}

// newChild styles the bar's popup from the bar's hover colors. The popup
// keeps its own background and border setting.
func (barVariant) newChild(m *Menu) *Menu {
	p := newPopupMenu(m.arena)
	pal := p.palette
	pal.Border = m.palette.HoverBorder
	pal.Separator = m.palette.Separator
	pal.Text = m.palette.Text
	pal.HoverBack = m.palette.HoverBack
	pal.HoverBorder = m.palette.HoverBorder
	pal.HoverText = m.palette.HoverText
	pal.DisabledText = m.palette.DisabledText
	p.palette = pal
	p.font = m.font
	p.hoverFont = m.hoverFont
	p.metrics = m.metrics
	p.hoverBorderDrawing = m.hoverBorderDrawing
	p.hoverBackDrawing = m.hoverBackDrawing
	p.interval = m.interval
	return p
}

// anchor places the popup under the highlighted item, overlapping its
// bottom edge.
func (barVariant) anchor(m *Menu) Point {
	r := m.current.bounds
	return m.ToHost(Point{X: r.X, Y: r.Bottom() - m.metrics.PopupOverlap})
}

func (barVariant) pointerMoved(*Menu, int, int) {}

// pointerPressed toggles the submenu of the highlighted item.
func (barVariant) pointerPressed(m *Menu, b Button) {
	if b != ButtonLeft {
		return
	}
	item := m.current
	if item == nil || !item.HasChildren() || m.alwaysShowPopup {
		return
	}
	if m.needShowPopup {
		m.needShowPopup = false
		m.Invalidate()
		m.HidePopup()
		return
	}
	m.needShowPopup = true
	m.Invalidate()
	m.ShowPopup()
}
