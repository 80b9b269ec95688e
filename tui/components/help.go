// Package components provides reusable TUI components.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/clipforge-cli/tui/styles"
)

// HelpOverlay renders the help overlay showing all keybindings.
func HelpOverlay(width, height int) string {
	groups := []struct {
		title    string
		bindings []struct {
			key  string
			desc string
		}
	}{
		{
			title: "Playback",
			bindings: []struct {
				key  string
				desc string
			}{
				{"Space", "Toggle play/pause"},
				{"H / ←", "Step backward (by step size)"},
				{"L / →", "Step forward (by step size)"},
				{"<", "Decrease step size"},
				{">", "Increase step size"},
				{"[", "Decrease playback speed"},
				{"]", "Increase playback speed"},
				{"\\", "Reset speed to 1x"},
			},
		},
		{
			title: "Selection",
			bindings: []struct {
				key  string
				desc string
			}{
				{"s", "Set selection start at playhead"},
				{"e", "Set selection end at playhead"},
				{"Mouse drag", "Drag handles or playhead on the timeline"},
				{"Mouse click", "Seek to a timeline position"},
				{"r", "Toggle loop preview of the selection"},
				{"c", "Commit selection as a segment"},
				{"x", "Clear committed segments"},
			},
		},
		{
			title: "Jobs",
			bindings: []struct {
				key  string
				desc string
			}{
				{"M", "Merge committed segments"},
				{"A", "Convert to audio"},
				{"G", "Generate subtitles"},
				{"E", "Export with burned subtitles"},
			},
		},
		{
			title: "Cues",
			bindings: []struct {
				key  string
				desc string
			}{
				{"j / ↑", "Select previous cue"},
				{"k / ↓", "Select next cue"},
				{"Enter", "Jump to selected cue"},
				{"i", "Edit selected cue text"},
			},
		},
		{
			title: "Commands",
			bindings: []struct {
				key  string
				desc string
			}{
				{":", "Enter command mode"},
				{"Esc", "Cancel command mode"},
				{"?", "Show/hide this help"},
				{"q", "Quit application"},
			},
		},
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true).
		Padding(0, 1)
	groupHeaderStyle := lipgloss.NewStyle().
		Foreground(styles.Pink).
		Bold(true).
		MarginTop(1)
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Bold(true).
		Width(13)
	descStyle := lipgloss.NewStyle().
		Foreground(styles.LightLavender)

	var lines []string
	lines = append(lines, titleStyle.Render("Keybindings"))
	lines = append(lines, "")

	for _, group := range groups {
		lines = append(lines, groupHeaderStyle.Render(group.title))
		for _, binding := range group.bindings {
			lines = append(lines, "  "+keyStyle.Render(binding.key)+descStyle.Render(binding.desc))
		}
	}

	lines = append(lines, "")
	footerStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Italic(true)
	lines = append(lines, footerStyle.Render("Press any key to close"))

	content := strings.Join(lines, "\n")

	contentLines := strings.Split(content, "\n")
	contentHeight := len(contentLines)
	contentWidth := 0
	for _, line := range contentLines {
		if w := lipgloss.Width(line); w > contentWidth {
			contentWidth = w
		}
	}

	marginLeft := (width - contentWidth - 4) / 2
	if marginLeft < 0 {
		marginLeft = 0
	}
	marginTop := (height - contentHeight - 2) / 2
	if marginTop < 0 {
		marginTop = 0
	}

	panelStyle := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BrightPurple).
		Padding(1, 2)

	positionedStyle := lipgloss.NewStyle().
		MarginLeft(marginLeft).
		MarginTop(marginTop)

	return positionedStyle.Render(panelStyle.Render(content))
}
