package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// ItemsLeft is the footer counter.
func ItemsLeft(n int) string {
	return fmt.Sprintf("%d items left!", n)
}

// FilterBar lists the filter names, highlighting the selected one.
func FilterBar(names []string, selected string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if n == selected {
			parts = append(parts, C(Current().Accent, "["+n+"]"))
		} else {
			parts = append(parts, C(Current().Muted, n))
		}
	}
	return strings.Join(parts, " ")
}

// Panel draws a framed box using the current theme.
func Panel(w io.Writer, lines []string) {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if vw := visibleWidth(ln); vw > maxw {
			maxw = vw
		}
	}
	pad := func(s string) string {
		if vis := visibleWidth(s); vis < maxw {
			s += strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	fmt.Fprintln(w, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(w, t.V+" "+pad(ln)+" "+t.V)
	}
	fmt.Fprintln(w, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}

// visibleWidth is the terminal cell width of s, ignoring color codes.
func visibleWidth(s string) int { return lipgloss.Width(s) }
