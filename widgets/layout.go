package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VStack stacks widgets top to bottom, splitting height by Ratios (equal
// shares when Ratios does not match the widget count).
type VStack struct {
	Widgets []Widget
	Ratios  []float64
	Spacing int
}

func (v VStack) Render(width, height int) string {
	n := len(v.Widgets)
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}
	gaps := max(0, v.Spacing*(n-1))
	heights := splitSizes(max(n, height-gaps), n, v.Ratios)
	var b strings.Builder
	for i, w := range v.Widgets {
		if i > 0 {
			b.WriteString("\n")
			b.WriteString(strings.Repeat("\n", v.Spacing))
		}
		b.WriteString(w.Render(width, heights[i]))
	}
	return b.String()
}

// HStack lays widgets out left to right, line by line.
type HStack struct {
	Widgets []Widget
	Ratios  []float64
	Gap     int
}

func (h HStack) Render(width, height int) string {
	n := len(h.Widgets)
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}
	gaps := max(0, h.Gap*(n-1))
	widths := splitSizes(max(n, width-gaps), n, h.Ratios)
	columns := make([][]string, n)
	rows := 0
	for i, w := range h.Widgets {
		columns[i] = strings.Split(w.Render(widths[i], height), "\n")
		rows = max(rows, len(columns[i]))
	}
	sep := strings.Repeat(" ", h.Gap)
	out := make([]string, rows)
	for r := range out {
		cells := make([]string, n)
		for i, col := range columns {
			cell := ""
			if r < len(col) {
				cell = col[r]
			}
			cells[i] = padRight(cell, widths[i])
		}
		out[r] = strings.Join(cells, sep)
	}
	return strings.Join(out, "\n")
}

// splitSizes divides total into n parts weighted by ratios. Leftover cells
// go to the earliest parts so the sum is always total.
func splitSizes(total, n int, ratios []float64) []int {
	if n <= 0 {
		return nil
	}
	weights := make([]float64, n)
	sum := 0.0
	for i := range weights {
		w := 1.0
		if len(ratios) == n && ratios[i] > 0 {
			w = ratios[i]
		}
		weights[i] = w
		sum += w
	}
	out := make([]int, n)
	used := 0
	for i, w := range weights {
		// the epsilon keeps integral weights exact despite float rounding
		out[i] = int(math.Floor(w/sum*float64(total) + 1e-9))
		used += out[i]
	}
	for i := 0; used < total; i = (i + 1) % n {
		out[i]++
		used++
	}
	return out
}

// padRight clips s to width display cells and pads it with spaces.
func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
