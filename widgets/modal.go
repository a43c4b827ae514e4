package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RenderPopup draws popup in a bordered card centred over base. Base cells
// outside the card's columns stay visible.
func RenderPopup(base, popup string, width, height int, border lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(popup)
	placed := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)

	baseLines := canvas(base, width, height)
	topLines := canvas(placed, width, height)
	out := make([]string, height)
	for i := range out {
		start, end, ok := inkBounds(topLines[i])
		if !ok {
			out[i] = baseLines[i]
			continue
		}
		left := ansi.Truncate(baseLines[i], start, "")
		mid := ansi.Truncate(ansi.TruncateLeft(topLines[i], start, ""), end-start, "")
		right := ansi.TruncateLeft(baseLines[i], end, "")
		out[i] = padRight(left+mid+right, width)
	}
	return strings.Join(out, "\n")
}

func canvas(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = padRight(lines[i], width)
	}
	return lines
}

// inkBounds returns the column range holding non-space cells of line.
func inkBounds(line string) (start, end int, ok bool) {
	plain := ansi.Strip(line)
	trimmed := strings.TrimRight(plain, " ")
	if trimmed == "" {
		return 0, 0, false
	}
	start = len(trimmed) - len(strings.TrimLeft(trimmed, " "))
	return start, ansi.StringWidth(trimmed), true
}
