package testutil

import (
	"image/color"
	"unicode/utf8"

	"github.com/atomicstack/vnc-launcher/internal/flatmenu"
)

// Measurer measures text as a fixed number of units per rune.
type Measurer struct {
	CharWidth float64
	Height    float64
}

// PixelMeasurer approximates a small proportional UI font.
var PixelMeasurer = Measurer{CharWidth: 7, Height: 13}

func (m Measurer) MeasureText(text string, font flatmenu.Font) (float64, float64) {
	w := float64(utf8.RuneCountInString(text)) * m.CharWidth
	if font.Bold {
		w += float64(utf8.RuneCountInString(text))
	}
	return w, m.Height
}

// Op is one recorded drawing call.
type Op struct {
	Kind  string
	Rect  flatmenu.Rect
	From  flatmenu.Point
	To    flatmenu.Point
	Text  string
	Font  flatmenu.Font
	Color color.Color
}

// Canvas records drawing calls instead of rasterising them.
type Canvas struct {
	Measurer
	Ops []Op
}

func NewCanvas() *Canvas {
	return &Canvas{Measurer: PixelMeasurer}
}

func (c *Canvas) FillRect(r flatmenu.Rect, col color.Color) {
	c.Ops = append(c.Ops, Op{Kind: "fill", Rect: r, Color: col})
}

func (c *Canvas) StrokeRect(r flatmenu.Rect, col color.Color) {
	c.Ops = append(c.Ops, Op{Kind: "stroke", Rect: r, Color: col})
}

func (c *Canvas) Line(x1, y1, x2, y2 int, col color.Color) {
	c.Ops = append(c.Ops, Op{
		Kind:  "line",
		From:  flatmenu.Point{X: x1, Y: y1},
		To:    flatmenu.Point{X: x2, Y: y2},
		Color: col,
	})
}

func (c *Canvas) Text(s string, font flatmenu.Font, col color.Color, at flatmenu.Point) {
	c.Ops = append(c.Ops, Op{Kind: "text", Text: s, Font: font, Color: col, From: at})
}

func (c *Canvas) TextIn(s string, font flatmenu.Font, col color.Color, r flatmenu.Rect, _ flatmenu.HAlign, _ flatmenu.VAlign) {
	c.Ops = append(c.Ops, Op{Kind: "text", Text: s, Font: font, Color: col, Rect: r})
}

// Reset forgets all recorded operations.
func (c *Canvas) Reset() {
	c.Ops = nil
}

// Filter returns the operations of the given kind.
func (c *Canvas) Filter(kind string) []Op {
	var out []Op
	for _, op := range c.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// HasLine reports whether a line between the two points was drawn.
func (c *Canvas) HasLine(x1, y1, x2, y2 int) bool {
	for _, op := range c.Filter("line") {
		if op.From == (flatmenu.Point{X: x1, Y: y1}) && op.To == (flatmenu.Point{X: x2, Y: y2}) {
			return true
		}
	}
	return false
}

// TextOp returns the last text operation drawing s.
func (c *Canvas) TextOp(s string) (Op, bool) {
	var found Op
	ok := false
	for _, op := range c.Filter("text") {
		if op.Text == s {
			found, ok = op, true
		}
	}
	return found, ok
}
