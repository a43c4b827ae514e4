package widgets

import "github.com/charmbracelet/lipgloss"

// Box is a rounded pane with a title line. Focused boxes draw their border
// in Accent.
type Box struct {
	Title   string
	Content string
	Focused bool
	Accent  lipgloss.Color
	Muted   lipgloss.Color
}

func (b Box) Render(width, height int) string {
	if width <= 2 || height <= 2 {
		return ""
	}
	border := b.Muted
	if b.Focused {
		border = b.Accent
	}
	title := "[" + b.Title + "]"
	if b.Focused {
		title = lipgloss.NewStyle().Bold(true).Foreground(b.Accent).Render(title)
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - 2).
		Height(height - 2)
	body := Text(title+"\n"+b.Content).Render(max(1, width-4), height-2)
	return style.Render(body)
}
