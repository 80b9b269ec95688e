// Package components provides reusable TUI components.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/clipforge-cli/pkg/timeutil"
	"github.com/user/clipforge-cli/tui/styles"
)

// StatusBarState holds the playback and session state shown in the top bar.
type StatusBarState struct {
	// Paused indicates if playback is paused
	Paused bool
	// TimePos is the current playback position in seconds
	TimePos float64
	// Duration is the loaded media duration in seconds
	Duration float64
	// StepSize is the current seek step size in seconds
	StepSize float64
	// Speed is the playback rate multiplier
	Speed float64
	// Looping indicates the selection loop preview is on
	Looping bool
	// JobLabel names the running pipeline job, empty when idle
	JobLabel string
}

// StatusBar renders the top status bar: play state and position on the
// left, step size, speed, loop and job indicators on the right.
func StatusBar(state StatusBarState, width int) string {
	playIcon := "▶"
	if state.Paused {
		playIcon = "⏸"
	}

	leftContent := fmt.Sprintf(" %s %s / %s", playIcon,
		timeutil.FormatTime(state.TimePos),
		timeutil.FormatTime(state.Duration))

	rightContent := fmt.Sprintf("Step: %s", formatStepSize(state.StepSize))
	if state.Speed > 0 && state.Speed != 1 {
		rightContent = fmt.Sprintf("%.2gx  ", state.Speed) + rightContent
	}
	if state.Looping {
		rightContent += "  ⟳ loop"
	}
	if state.JobLabel != "" {
		rightContent += "  ⚙ " + state.JobLabel
	}
	rightContent += " "

	leftWidth := lipgloss.Width(leftContent)
	rightWidth := lipgloss.Width(rightContent)
	padding := width - leftWidth - rightWidth
	if padding < 0 {
		padding = 0
	}

	content := leftContent
	for i := 0; i < padding; i++ {
		content += " "
	}
	content += rightContent

	statusBarStyle := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Foreground(styles.LightLavender).
		Bold(true).
		Width(width)

	return statusBarStyle.Render(content)
}

// formatStepSize formats the step size for display.
// Shows decimal for values less than 1, otherwise whole number.
func formatStepSize(stepSize float64) string {
	if stepSize < 1 {
		return fmt.Sprintf("%.1fs", stepSize)
	}
	return fmt.Sprintf("%.0fs", stepSize)
}
