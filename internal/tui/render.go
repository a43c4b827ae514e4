package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/panesync/internal/journal"
	"github.com/jask/panesync/internal/page"
	"github.com/jask/panesync/internal/view"
	"github.com/jask/panesync/widgets"
)

const (
	headerPaneHeight  = 8
	siblingPaneHeight = 10
	minPageWidth      = 40
)

var paneTitles = map[page.Target]string{
	page.TargetHeader: "Header",
	page.TargetLeft:   "Left container",
	page.TargetRight:  "Right container",
}

type paneKey struct {
	revision uint64
	width    int
	focused  bool
	accent   lipgloss.Color
}

// renderer draws the page and keeps the last drawing of each pane, which is
// reused until the pane's view revision, width, focus or accent changes.
type renderer struct {
	cache map[page.Target]paneKey
	panes map[page.Target]string
}

func newRenderer() *renderer {
	return &renderer{
		cache: make(map[page.Target]paneKey),
		panes: make(map[page.Target]string),
	}
}

func (r *renderer) pane(p *page.Page, t page.Target, width, height int, focused bool, th Theme) string {
	k := paneKey{revision: p.Revision(t), width: width, focused: focused, accent: th.Accent}
	if prev, ok := r.cache[t]; ok && prev == k {
		return r.panes[t]
	}
	out := widgets.Box{
		Title:   paneTitles[t],
		Content: paneContent(p.Content(t), page.Controls(t), th),
		Focused: focused,
		Accent:  th.Accent,
		Muted:   th.Muted,
	}.Render(width, height)
	r.cache[t] = k
	r.panes[t] = out
	return out
}

func paneContent(c view.Content, controls []page.Event, th Theme) string {
	lines := make([]string, 0, len(c.Rows)+4)
	lines = append(lines, th.Heading.Render(c.Heading))
	for _, row := range c.Rows {
		lines = append(lines, th.Row.Render(row.String()))
	}
	var counters []string
	for _, e := range controls {
		switch e.Control() {
		case page.ControlIncrement, page.ControlDecrement:
			counters = append(counters, th.Control.Render("["+e.Label()+"]"))
		default:
			if len(counters) > 0 {
				lines = append(lines, strings.Join(counters, " "))
				counters = nil
			}
			lines = append(lines, th.Control.Render("["+e.Label()+"]"))
		}
	}
	if len(counters) > 0 {
		lines = append(lines, strings.Join(counters, " "))
	}
	return strings.Join(lines, "\n")
}

// pageLayout is everything a full-page render needs besides the page.
type pageLayout struct {
	width       int
	focus       page.Target
	theme       Theme
	showJournal bool
	journalRows int
	entries     []journal.Entry
}

func (r *renderer) page(p *page.Page, l pageLayout) string {
	width := max(minPageWidth, l.width)
	header := r.pane(p, page.TargetHeader, width, headerPaneHeight, l.focus == page.TargetHeader, l.theme)
	siblings := widgets.HStack{
		Widgets: []widgets.Widget{
			widgets.Text(r.pane(p, page.TargetLeft, (width-1)/2, siblingPaneHeight, l.focus == page.TargetLeft, l.theme)),
			widgets.Text(r.pane(p, page.TargetRight, width-1-(width-1)/2, siblingPaneHeight, l.focus == page.TargetRight, l.theme)),
		},
		Gap: 1,
	}.Render(width, siblingPaneHeight)

	stack := widgets.VStack{
		Widgets: []widgets.Widget{widgets.Text(header), widgets.Text(siblings)},
		Ratios:  []float64{headerPaneHeight, siblingPaneHeight},
	}
	height := headerPaneHeight + siblingPaneHeight
	if l.showJournal {
		rows := max(1, l.journalRows)
		stack.Widgets = append(stack.Widgets, widgets.Text(journalPane(l.entries, width, rows, l.theme)))
		stack.Ratios = append(stack.Ratios, float64(rows+3))
		height += rows + 3
	}
	return stack.Render(width, height)
}

func journalPane(entries []journal.Entry, width, rows int, th Theme) string {
	rows = max(1, rows)
	lines := make([]string, 0, rows)
	for i, e := range entries {
		if i == rows {
			break
		}
		lines = append(lines, th.Row.Render(fmt.Sprintf("%s  %s", e.At.Format("15:04:05"), e.String())))
	}
	if len(lines) == 0 {
		lines = append(lines, th.Status.Render("no dispatches yet"))
	}
	return widgets.Box{
		Title:   "Journal",
		Content: strings.Join(lines, "\n"),
		Accent:  th.Accent,
		Muted:   th.Muted,
	}.Render(width, rows+3)
}

// RenderPage draws p once, without focus highlight or journal. It is what
// the render command prints.
func RenderPage(p *page.Page, width int, th Theme) string {
	return newRenderer().page(p, pageLayout{width: width, theme: th})
}
