package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/atomicstack/vnc-launcher/internal/flatmenu"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Status       *lipgloss.Style
	StatusHint   *lipgloss.Style
	Connected    *lipgloss.Style
	Error        *lipgloss.Style
	PromptTitle  *lipgloss.Style
	PromptHelp   *lipgloss.Style
	Suggestion   *lipgloss.Style
	SuggestionOn *lipgloss.Style
	Dialog       *lipgloss.Style
}

var defaultStyles = Styles{
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("#325176")),
	),
	StatusHint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("#325176")).Italic(true),
	),
	Connected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Background(lipgloss.Color("#325176")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	PromptTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	PromptHelp: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Suggestion: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SuggestionOn: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("#448BBA")).Bold(true),
	),
	Dialog: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#448BBA")).Padding(0, 1),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}

// MenuPalette is the stock flat palette with light ink, which reads
// better on a terminal than black text on slate blue.
func MenuPalette() flatmenu.Palette {
	p := flatmenu.DefaultPalette()
	light := colorful.Color{R: 1, G: 1, B: 1}
	p.Text = light
	p.HoverText = light
	p.DisabledText = colorful.Color{R: 0.6, G: 0.65, B: 0.72}
	p.Separator = colorful.Color{R: 0.45, G: 0.55, B: 0.68}
	return p
}

// PaletteKeys lists the names ApplyHex accepts.
var PaletteKeys = []string{
	"back", "border", "separator", "text",
	"hover_back", "hover_border", "hover_text", "disabled_text",
}

// ApplyHex overrides palette entries from "#rrggbb" strings keyed by
// PaletteKeys. Unknown keys and malformed colors are errors.
func ApplyHex(p flatmenu.Palette, overrides map[string]string) (flatmenu.Palette, error) {
	for key, value := range overrides {
		c, err := colorful.Hex(value)
		if err != nil {
			return p, fmt.Errorf("palette %s: %w", key, err)
		}
		switch key {
		case "back":
			p.Back = c
		case "border":
			p.Border = c
		case "separator":
			p.Separator = c
		case "text":
			p.Text = c
		case "hover_back":
			p.HoverBack = c
		case "hover_border":
			p.HoverBorder = c
		case "hover_text":
			p.HoverText = c
		case "disabled_text":
			p.DisabledText = c
		default:
			return p, fmt.Errorf("palette: unknown color %q", key)
		}
	}
	return p, nil
}
