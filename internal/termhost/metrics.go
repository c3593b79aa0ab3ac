package termhost

import "github.com/atomicstack/vnc-launcher/internal/flatmenu"

// Metrics returns menu metrics measured in terminal cells. Text is one row
// high and glyphs take the cells Grid draws them in. Popups are laid out
// without a frame, so border drawing should stay off.
func Metrics() flatmenu.Metrics {
	return flatmenu.Metrics{
		LeftMargin:      2,
		TopMargin:       0,
		ItemSpacing:     0,
		ItemPad:         flatmenu.Insets{Left: 1, Right: 1},
		BoldExtra:       0,
		TextIndent:      1,
		BarTextShift:    0,
		CheckArea:       2,
		GutterGap:       1,
		SeparatorSize:   1,
		SeparatorInset:  0,
		PopupMinWidth:   14,
		PopupPadX:       2,
		PopupPadY:       0,
		SubmenuExtra:    2,
		ParentItemExtra: 2,
		RightInset:      1,
		PopupOverlap:    0,
		SubmenuRise:     0,
		ArrowBand:       3,
	}
}
