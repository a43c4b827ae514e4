package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorSky      lipgloss.Color = "#89dceb"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
)

var accents = map[string]lipgloss.Color{
	"pink":     colorPink,
	"mauve":    colorMauve,
	"red":      colorRed,
	"peach":    colorPeach,
	"yellow":   colorYellow,
	"green":    colorGreen,
	"teal":     colorTeal,
	"sky":      colorSky,
	"blue":     colorBlue,
	"lavender": colorLavender,
}

// Theme is the set of styles a page render uses.
type Theme struct {
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Heading lipgloss.Style
	Row     lipgloss.Style
	Control lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
}

// ThemeFor builds a theme around a named accent; unknown names fall back to
// pink.
func ThemeFor(accent string) Theme {
	c, ok := accents[strings.ToLower(strings.TrimSpace(accent))]
	if !ok {
		c = colorPink
	}
	return Theme{
		Accent:  c,
		Muted:   colorSurface1,
		Heading: lipgloss.NewStyle().Bold(true).Foreground(colorText),
		Row:     lipgloss.NewStyle().Foreground(colorSubtext0),
		Control: lipgloss.NewStyle().Foreground(c),
		Status:  lipgloss.NewStyle().Foreground(colorOverlay0),
		Error:   lipgloss.NewStyle().Foreground(colorRed),
	}
}

// AccentNames lists the accepted accent names, sorted.
func AccentNames() []string {
	return []string{"blue", "green", "lavender", "mauve", "peach", "pink", "red", "sky", "teal", "yellow"}
}
