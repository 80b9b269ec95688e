package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/clipforge-cli/pkg/timeutil"
	"github.com/user/clipforge-cli/timeline"
	"github.com/user/clipforge-cli/tui/styles"
)

// TimelineState is everything the timeline strip needs to draw one frame.
type TimelineState struct {
	Position  float64
	Duration  float64
	Selection timeline.Range
	Segments  []timeline.Range
	CueStarts []float64
	// ActiveHandle highlights the handle being dragged: "start", "end",
	// "playhead", or empty.
	ActiveHandle string
}

const (
	// TimelineHeight is the rendered height of the timeline box.
	TimelineHeight = 6
	// TimelineBarRow is the row of the selection bar inside the box,
	// counted from its top border. Mouse handling targets this row.
	TimelineBarRow = 2

	// barOffsetX is the column of the first bar cell measured from the
	// left edge of the timeline box: border char plus one margin space.
	barOffsetX = 2
)

// timelineBarWidth computes the width of the drawable bar for a given box
// width and duration. The render path and the mouse hit-testing path both
// use it, so they always agree on the mapping between columns and seconds.
func timelineBarWidth(width int, duration float64) int {
	innerWidth := width - 4
	if innerWidth < 10 {
		innerWidth = 10
	}
	timeDisplay := fmt.Sprintf(" %s / %s", timeutil.FormatTime(0), timeutil.FormatTime(duration))
	barWidth := innerWidth - lipgloss.Width(timeDisplay) - 2
	if barWidth < 10 {
		barWidth = 10
	}
	return barWidth
}

// TimelineTimeAt maps a column inside the rendered timeline box to a time
// in seconds. ok is false when x falls outside the bar.
func TimelineTimeAt(x, width int, duration float64) (float64, bool) {
	if duration <= 0 {
		return 0, false
	}
	barWidth := timelineBarWidth(width, duration)
	cell := x - barOffsetX
	if cell < 0 || cell >= barWidth {
		return 0, false
	}
	return duration * float64(cell) / float64(barWidth-1), true
}

// TimelineTolerance returns the hit-test tolerance in seconds: picking a
// handle should work within roughly one bar cell of it.
func TimelineTolerance(width int, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	barWidth := timelineBarWidth(width, duration)
	return 1.5 * duration / float64(barWidth-1)
}

// Timeline renders the interactive timeline strip: a cue marker row, the
// selection bar with both handles and the playhead, and a committed
// segments row, wrapped in the bordered tab-header box. Total height is 6
// lines.
func Timeline(state TimelineState, width int) string {
	if width < 20 {
		return ""
	}

	duration := state.Duration
	barWidth := timelineBarWidth(width, duration)

	col := func(t float64) int {
		if duration <= 0 {
			return -1
		}
		c := int(math.Round(float64(barWidth-1) * t / duration))
		if c < 0 || c >= barWidth {
			return -1
		}
		return c
	}

	selStyle := lipgloss.NewStyle().Foreground(styles.BrightPurple)
	dimStyle := lipgloss.NewStyle().Foreground(styles.Purple)
	handleStyle := lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)
	activeHandleStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	playheadStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	cueStyle := lipgloss.NewStyle().Foreground(styles.Cyan)
	segStyle := lipgloss.NewStyle().Foreground(styles.Green)
	timeStyle := lipgloss.NewStyle().Foreground(styles.LightLavender).Bold(true)

	// Cue marker row.
	cueCells := make([]string, barWidth)
	for i := range cueCells {
		cueCells[i] = " "
	}
	for _, t := range state.CueStarts {
		if c := col(t); c >= 0 {
			cueCells[c] = cueStyle.Render("◆")
		}
	}

	// Selection bar row.
	startCol := col(state.Selection.Start)
	endCol := col(state.Selection.End)
	var barBuilder strings.Builder
	for i := 0; i < barWidth; i++ {
		switch {
		case i == startCol || i == endCol:
			hs := handleStyle
			if (i == startCol && state.ActiveHandle == "start") ||
				(i == endCol && state.ActiveHandle == "end") {
				hs = activeHandleStyle
			}
			barBuilder.WriteString(hs.Render("┃"))
		case i > startCol && i < endCol:
			barBuilder.WriteString(selStyle.Render("━"))
		default:
			barBuilder.WriteString(dimStyle.Render("─"))
		}
	}

	timeDisplay := fmt.Sprintf(" %s / %s",
		timeutil.FormatTime(state.Position),
		timeutil.FormatTime(duration))
	barLine := " " + barBuilder.String() + " " + timeStyle.Render(timeDisplay)

	// Playhead indicator row.
	playCol := col(state.Position)
	var indicatorBuilder strings.Builder
	indicatorBuilder.WriteString(" ")
	for i := 0; i < barWidth; i++ {
		if i == playCol {
			indicatorBuilder.WriteString(playheadStyle.Render("▲"))
		} else {
			indicatorBuilder.WriteString(" ")
		}
	}

	// Committed segments row.
	segCells := make([]string, barWidth)
	for i := range segCells {
		segCells[i] = " "
	}
	for _, seg := range state.Segments {
		from := col(seg.Start)
		to := col(seg.End)
		if from < 0 || to < 0 {
			continue
		}
		for i := from; i <= to && i < barWidth; i++ {
			segCells[i] = segStyle.Render("▂")
		}
	}

	// Bordered box with tab-style header.
	headerStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	borderStyle := lipgloss.NewStyle().Foreground(styles.Purple)

	boxInner := width - 2
	headerText := headerStyle.Render(" Timeline ")
	fillWidth := boxInner - 2 - lipgloss.Width(headerText) - 1 + 2
	if fillWidth < 0 {
		fillWidth = 0
	}
	topLine := borderStyle.Render("╭─") + headerText +
		borderStyle.Render(strings.Repeat("─", fillWidth)) + borderStyle.Render("╮")

	wrapLine := func(content string) string {
		pad := boxInner - lipgloss.Width(content)
		if pad < 0 {
			pad = 0
		}
		return borderStyle.Render("│") + content + strings.Repeat(" ", pad) + borderStyle.Render("│")
	}

	bottomLine := borderStyle.Render("╰" + strings.Repeat("─", boxInner) + "╯")

	return topLine + "\n" +
		wrapLine(" "+strings.Join(cueCells, "")) + "\n" +
		wrapLine(barLine) + "\n" +
		wrapLine(indicatorBuilder.String()) + "\n" +
		wrapLine(" "+strings.Join(segCells, "")) + "\n" +
		bottomLine
}
