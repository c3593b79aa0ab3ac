package flatmenu

import "image/color"

// HAlign positions text or a popup horizontally relative to a reference.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign positions text or a popup vertically relative to a reference.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// Measurer reports the extent of text rendered in a font.
type Measurer interface {
	MeasureText(text string, font Font) (w, h float64)
}

// Canvas is the drawing surface handed to a menu during paint.
// Coordinates are menu-local. Stroked rectangles cover r exactly; lines
// include both end points.
type Canvas interface {
	Measurer
	FillRect(r Rect, c color.Color)
	StrokeRect(r Rect, c color.Color)
	Line(x1, y1, x2, y2 int, c color.Color)
	Text(s string, font Font, c color.Color, at Point)
	TextIn(s string, font Font, c color.Color, r Rect, h HAlign, v VAlign)
}

// Glyph identifies one of the decorations drawn next to popup items.
type Glyph int

const (
	GlyphCheckBox Glyph = iota
	GlyphCheckMark
	GlyphRadio
	GlyphSubmenuArrow
)

// GlyphPainter is implemented by canvases that draw item decorations
// themselves instead of receiving the line-art fallback. item is the
// menu-local rectangle of the item being decorated.
type GlyphPainter interface {
	DrawGlyph(g Glyph, item Rect, c color.Color)
}

func drawBackground(c Canvas, r Rect, col color.Color) {
	if r.Empty() {
		return
	}
	c.FillRect(r, col)
}

func drawBorder(c Canvas, r Rect, col color.Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	c.StrokeRect(r, col)
}
