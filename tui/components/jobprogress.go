package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/clipforge-cli/tui/styles"
)

// JobProgressState holds the state for the pipeline job progress box.
type JobProgressState struct {
	Active  bool
	Label   string
	Percent int
	// Message is the latest status line: current step, result path, or
	// error text.
	Message string
	Failed  bool
}

// JobProgress renders a bordered box with a progress bar for the running
// pipeline job.
func JobProgress(state JobProgressState, width int) string {
	if !state.Active || width < 10 {
		return ""
	}

	greenStyle := lipgloss.NewStyle().Foreground(styles.Green)
	amberStyle := lipgloss.NewStyle().Foreground(styles.Amber)
	redStyle := lipgloss.NewStyle().Foreground(styles.Red)
	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)

	innerW := width - 4
	if innerW < 6 {
		innerW = 6
	}

	pct := state.Percent
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	barWidth := innerW - 6
	if barWidth < 4 {
		barWidth = 4
	}
	filled := barWidth * pct / 100

	bar := greenStyle.Render(strings.Repeat("█", filled)) +
		amberStyle.Render(strings.Repeat("░", barWidth-filled))

	var contentLines []string
	contentLines = append(contentLines, " "+bar+textStyle.Render(fmt.Sprintf(" %3d%%", pct)))

	if state.Message != "" {
		msg := state.Message
		maxW := innerW - 2
		if lipgloss.Width(msg) > maxW {
			msg = ansi.Truncate(msg, maxW-3, "...")
		}
		style := textStyle
		if state.Failed {
			style = redStyle
		}
		contentLines = append(contentLines, " "+style.Render(msg))
	}

	title := state.Label
	if title == "" {
		title = "Job"
	}
	return RenderInfoBox(title, contentLines, width)
}
