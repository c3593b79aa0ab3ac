package termhost

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/atomicstack/vnc-launcher/internal/flatmenu"
)

// Cell is one character position of a Grid.
type Cell struct {
	Rune rune
	FG   color.Color
	BG   color.Color
	Bold bool

	// wide marks the trailing half of a double width rune.
	wide bool
}

// Grid is a fixed size character canvas. Menus paint into it through a
// Region; the finished frame is rendered with Lip Gloss.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid returns a blank grid. Negative sizes are treated as zero.
func NewGrid(width, height int) *Grid {
	width, height = max(width, 0), max(height, 0)
	g := &Grid{width: width, height: height, cells: make([]Cell, width*height)}
	g.Clear()
	return g
}

func (g *Grid) Size() (int, int) { return g.width, g.height }

// Clear resets every cell to an unstyled space.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Cell{Rune: ' '}
	}
}

// At returns the cell at (x, y), or a zero Cell outside the grid.
func (g *Grid) At(x, y int) Cell {
	if !g.inside(x, y) {
		return Cell{}
	}
	return g.cells[y*g.width+x]
}

func (g *Grid) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

func (g *Grid) cell(x, y int) *Cell {
	return &g.cells[y*g.width+x]
}

// split blanks the other half of a double width rune covering (x, y) so
// the cell can be overwritten without shifting the rest of the row.
func (g *Grid) split(x, y int) {
	c := g.cell(x, y)
	if c.wide {
		if g.inside(x-1, y) {
			g.cell(x-1, y).Rune = ' '
		}
		c.Rune, c.wide = ' ', false
		return
	}
	if runewidth.RuneWidth(c.Rune) == 2 && g.inside(x+1, y) {
		if next := g.cell(x+1, y); next.wide {
			next.Rune, next.wide = ' ', false
		}
	}
}

// WriteString draws s from (x, y) without clipping to anything but the
// grid. A nil bg keeps the existing background.
func (g *Grid) WriteString(x, y int, s string, fg, bg color.Color, bold bool) {
	g.Region(flatmenu.Rect{W: g.width, H: g.height}).write(x, y, s, fg, bg, bold)
}

// Region returns a canvas whose origin is r's top-left corner and whose
// drawing is clipped to r.
func (g *Grid) Region(r flatmenu.Rect) *Region {
	return &Region{grid: g, origin: r.Location(), clip: r}
}

// Plain returns the grid text without styling, one line per row with
// trailing spaces removed.
func (g *Grid) Plain() string {
	lines := make([]string, g.height)
	for y := 0; y < g.height; y++ {
		var b strings.Builder
		for x := 0; x < g.width; x++ {
			c := g.cells[y*g.width+x]
			if c.wide {
				continue
			}
			b.WriteRune(c.Rune)
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n")
}

type cellStyle struct {
	fg, bg string
	bold   bool
}

// Render returns the grid as styled terminal output.
func (g *Grid) Render() string {
	cache := make(map[cellStyle]lipgloss.Style)
	styleFor := func(k cellStyle) lipgloss.Style {
		if s, ok := cache[k]; ok {
			return s
		}
		s := lipgloss.NewStyle().Bold(k.bold)
		if k.fg != "" {
			s = s.Foreground(lipgloss.Color(k.fg))
		}
		if k.bg != "" {
			s = s.Background(lipgloss.Color(k.bg))
		}
		cache[k] = s
		return s
	}

	lines := make([]string, g.height)
	for y := 0; y < g.height; y++ {
		var line strings.Builder
		var run strings.Builder
		var current cellStyle
		flush := func() {
			if run.Len() == 0 {
				return
			}
			line.WriteString(styleFor(current).Render(run.String()))
			run.Reset()
		}
		for x := 0; x < g.width; x++ {
			c := g.cells[y*g.width+x]
			if c.wide {
				continue
			}
			k := cellStyle{fg: hex(c.FG), bg: hex(c.BG), bold: c.Bold}
			if k != current {
				flush()
				current = k
			}
			run.WriteRune(c.Rune)
		}
		flush()
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}

func hex(c color.Color) string {
	if c == nil {
		return ""
	}
	return flatmenu.Hex(c)
}

// Region is a clipped, translated view of a Grid. It implements
// flatmenu.Canvas and flatmenu.GlyphPainter.
type Region struct {
	grid   *Grid
	origin flatmenu.Point
	clip   flatmenu.Rect
}

var (
	_ flatmenu.Canvas       = (*Region)(nil)
	_ flatmenu.GlyphPainter = (*Region)(nil)
)

// MeasureText reports the display width of text in cells and a height of
// one row. Bold text is not wider on a terminal.
func (r *Region) MeasureText(text string, _ flatmenu.Font) (float64, float64) {
	return measure(text)
}

func measure(text string) (float64, float64) {
	return float64(runewidth.StringWidth(text)), 1
}

// put stores one rune at local (x, y). A nil bg keeps the background.
func (r *Region) put(x, y int, ch rune, fg, bg color.Color, bold bool) int {
	gx, gy := x+r.origin.X, y+r.origin.Y
	w := runewidth.RuneWidth(ch)
	if w == 0 {
		return 0
	}
	if !r.clip.Contains(gx, gy) || !r.grid.inside(gx, gy) {
		return w
	}
	if w == 2 && (!r.clip.Contains(gx+1, gy) || !r.grid.inside(gx+1, gy)) {
		ch, w = ' ', 1
	}
	r.grid.split(gx, gy)
	if w == 2 {
		r.grid.split(gx+1, gy)
	}
	c := r.grid.cell(gx, gy)
	c.Rune, c.FG, c.Bold, c.wide = ch, fg, bold, false
	if bg != nil {
		c.BG = bg
	}
	if w == 2 {
		next := r.grid.cell(gx+1, gy)
		next.Rune, next.wide = ' ', true
		next.BG = c.BG
	}
	return w
}

func (r *Region) write(x, y int, s string, fg, bg color.Color, bold bool) {
	for _, ch := range s {
		x += r.put(x, y, ch, fg, bg, bold)
	}
}

func (r *Region) FillRect(rect flatmenu.Rect, col color.Color) {
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			r.put(x, y, ' ', nil, col, false)
		}
	}
}

func (r *Region) StrokeRect(rect flatmenu.Rect, col color.Color) {
	if rect.Empty() {
		return
	}
	right, bottom := rect.Right()-1, rect.Bottom()-1
	if rect.W == 1 || rect.H == 1 {
		r.Line(rect.X, rect.Y, right, bottom, col)
		return
	}
	for x := rect.X + 1; x < right; x++ {
		r.put(x, rect.Y, '─', col, nil, false)
		r.put(x, bottom, '─', col, nil, false)
	}
	for y := rect.Y + 1; y < bottom; y++ {
		r.put(rect.X, y, '│', col, nil, false)
		r.put(right, y, '│', col, nil, false)
	}
	r.put(rect.X, rect.Y, '┌', col, nil, false)
	r.put(right, rect.Y, '┐', col, nil, false)
	r.put(rect.X, bottom, '└', col, nil, false)
	r.put(right, bottom, '┘', col, nil, false)
}

// Line draws horizontal and vertical lines with box characters. Any other
// slope is stepped along its longer axis.
func (r *Region) Line(x1, y1, x2, y2 int, col color.Color) {
	switch {
	case y1 == y2:
		for x := min(x1, x2); x <= max(x1, x2); x++ {
			r.put(x, y1, '─', col, nil, false)
		}
	case x1 == x2:
		for y := min(y1, y2); y <= max(y1, y2); y++ {
			r.put(x1, y, '│', col, nil, false)
		}
	default:
		dx, dy := x2-x1, y2-y1
		steps := max(abs(dx), abs(dy))
		for i := 0; i <= steps; i++ {
			r.put(x1+dx*i/steps, y1+dy*i/steps, '·', col, nil, false)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (r *Region) Text(s string, font flatmenu.Font, col color.Color, at flatmenu.Point) {
	r.write(at.X, at.Y, s, col, nil, font.Bold)
}

// TextIn aligns s inside rect on a single row, truncating with an ellipsis
// when it does not fit.
func (r *Region) TextIn(s string, font flatmenu.Font, col color.Color, rect flatmenu.Rect, h flatmenu.HAlign, v flatmenu.VAlign) {
	if rect.W <= 0 || rect.H <= 0 {
		return
	}
	if runewidth.StringWidth(s) > rect.W {
		s = runewidth.Truncate(s, rect.W, "…")
	}
	w := runewidth.StringWidth(s)
	x := rect.X
	switch h {
	case flatmenu.AlignCenter:
		x += (rect.W - w) / 2
	case flatmenu.AlignRight:
		x += rect.W - w
	}
	y := rect.Y
	switch v {
	case flatmenu.AlignMiddle:
		y += (rect.H - 1) / 2
	case flatmenu.AlignBottom:
		y += rect.H - 1
	}
	r.write(x, y, s, col, nil, font.Bold)
}

// DrawGlyph draws check and radio marks in the gutter left of item and the
// submenu arrow just inside its right edge.
func (r *Region) DrawGlyph(g flatmenu.Glyph, item flatmenu.Rect, col color.Color) {
	switch g {
	case flatmenu.GlyphCheckMark:
		r.put(item.X-2, item.Y, '✓', col, nil, false)
	case flatmenu.GlyphRadio:
		r.put(item.X-2, item.Y, '•', col, nil, false)
	case flatmenu.GlyphSubmenuArrow:
		r.put(item.Right()-2, item.Y, '▸', col, nil, false)
	}
}
