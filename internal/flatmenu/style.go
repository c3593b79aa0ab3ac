package flatmenu

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the colors a menu paints with.
type Palette struct {
	Back         color.Color
	Border       color.Color
	Separator    color.Color
	Text         color.Color
	HoverBack    color.Color
	HoverBorder  color.Color
	HoverText    color.Color
	DisabledText color.Color
}

var (
	defaultBack      = colorful.Color{R: 50.0 / 255, G: 81.0 / 255, B: 118.0 / 255}
	defaultHoverBack = colorful.Color{R: 68.0 / 255, G: 139.0 / 255, B: 186.0 / 255}
	black            = colorful.Color{}
	gray             = colorful.Color{R: 128.0 / 255, G: 128.0 / 255, B: 128.0 / 255}
)

// DefaultPalette returns the stock flat colors: a slate-blue background,
// lighter blue hover and black ink.
func DefaultPalette() Palette {
	return Palette{
		Back:         defaultBack,
		Border:       black,
		Separator:    black,
		Text:         black,
		HoverBack:    defaultHoverBack,
		HoverBorder:  black,
		HoverText:    black,
		DisabledText: gray,
	}
}

// Hex renders c as #rrggbb. A nil color renders as the empty string.
func Hex(c color.Color) string {
	if c == nil {
		return ""
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return ""
	}
	return cf.Hex()
}

// Font describes a typeface. Hosts are free to interpret it loosely; a
// cell host only honours Bold.
type Font struct {
	Family string
	Size   float64
	Bold   bool
}

// DefaultFont is the font used for both normal and hover text.
var DefaultFont = Font{Family: "Segoe UI", Size: 9.75}

// Metrics are the spacing constants used by layout and painting. The
// defaults are expressed in pixels; hosts with coarser units supply their
// own set.
type Metrics struct {
	LeftMargin  int
	TopMargin   int
	ItemSpacing int

	// ItemPad grows the measured text extent into the item rectangle.
	ItemPad Insets
	// BoldExtra widens bar items when either font is bold.
	BoldExtra int

	// TextIndent offsets popup item text from the item's left edge.
	TextIndent int
	// BarTextShift nudges centred bar text horizontally.
	BarTextShift int

	// CheckArea and GutterGap size the check/radio gutter of a popup.
	CheckArea int
	GutterGap int

	SeparatorSize int
	// SeparatorInset trims both ends of a bar separator line.
	SeparatorInset int

	PopupMinWidth   int
	PopupPadX       int
	PopupPadY       int
	SubmenuExtra    int
	ParentItemExtra int
	RightInset      int

	// PopupOverlap is how far a popup overlaps the edge of its owner.
	PopupOverlap int
	// SubmenuRise lifts a cascaded popup above its owning item.
	SubmenuRise int
	// ArrowBand is the width of the trailing hot zone that reopens a
	// submenu.
	ArrowBand int
}

// DefaultMetrics returns the pixel metrics.
func DefaultMetrics() Metrics {
	return Metrics{
		LeftMargin:      7,
		TopMargin:       6,
		ItemSpacing:     4,
		ItemPad:         Insets{Left: 3, Top: 2, Right: 4, Bottom: 2},
		BoldExtra:       3,
		TextIndent:      3,
		BarTextShift:    -1,
		CheckArea:       15,
		GutterGap:       3,
		SeparatorSize:   3,
		SeparatorInset:  3,
		PopupMinWidth:   80,
		PopupPadX:       9,
		PopupPadY:       4,
		SubmenuExtra:    10,
		ParentItemExtra: 10,
		RightInset:      4,
		PopupOverlap:    1,
		SubmenuRise:     4,
		ArrowBand:       15,
	}
}
