package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PadToWidth fits a line into exactly width columns. Truncation goes
// through ansi.Truncate so escape sequences and double-width runes
// survive the cut.
func PadToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}

	w := lipgloss.Width(s)
	if w > width {
		s = ansi.Truncate(s, width, "")
		w = lipgloss.Width(s)
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// NormalizeLines fits a slice of lines into exactly height entries,
// truncating or padding with blanks.
func NormalizeLines(lines []string, height int) []string {
	if len(lines) > height {
		return lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}
