// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/clipforge-cli/tui/styles"
)

// Control represents a single control with its display info.
type Control struct {
	Name     string
	Shortcut string
}

// ControlGroup represents a group of related controls with sub-group
// support. SubGroups let the renderer place dividers between sub-groups.
type ControlGroup struct {
	Name      string
	SubGroups [][]Control
}

// GetControlGroups returns the control groups for display.
func GetControlGroups() []ControlGroup {
	return []ControlGroup{
		{
			Name: "Playback",
			SubGroups: [][]Control{
				{
					{Name: "Play", Shortcut: "Space"},
					{Name: "Back", Shortcut: "H / ←"},
					{Name: "Fwd", Shortcut: "L / →"},
				},
				{
					{Name: "Step -", Shortcut: "<"},
					{Name: "Step +", Shortcut: ">"},
				},
				{
					{Name: "Speed -", Shortcut: "["},
					{Name: "Speed +", Shortcut: "]"},
					{Name: "Speed 1x", Shortcut: "\\"},
				},
			},
		},
		{
			Name: "Selection",
			SubGroups: [][]Control{
				{
					{Name: "Sel start", Shortcut: "s"},
					{Name: "Sel end", Shortcut: "e"},
					{Name: "Loop sel", Shortcut: "r"},
				},
				{
					{Name: "Commit", Shortcut: "c"},
					{Name: "Clear segs", Shortcut: "x"},
				},
			},
		},
		{
			Name: "Jobs",
			SubGroups: [][]Control{
				{
					{Name: "Merge", Shortcut: "M"},
					{Name: "Audio", Shortcut: "A"},
					{Name: "Subtitles", Shortcut: "G"},
					{Name: "Export", Shortcut: "E"},
				},
			},
		},
		{
			Name: "Cues",
			SubGroups: [][]Control{
				{
					{Name: "Prev", Shortcut: "j / ↑"},
					{Name: "Next", Shortcut: "k / ↓"},
					{Name: "Jump", Shortcut: "Enter"},
					{Name: "Edit", Shortcut: "i"},
				},
			},
		},
	}
}

// RenderInfoBox renders a generic bordered box with a tab-style header and
// content lines. Content lines are rendered as-is (caller handles
// styling).
func RenderInfoBox(title string, contentLines []string, width int) string {
	if width < 4 {
		return ""
	}

	innerWidth := width - 2
	if innerWidth < 1 {
		innerWidth = 1
	}

	headerStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	borderStyle := lipgloss.NewStyle().Foreground(styles.Purple)

	// Tab header: ╭─ Title ─────╮
	headerText := headerStyle.Render(" " + title + " ")
	headerTextWidth := lipgloss.Width(headerText)
	fillWidth := innerWidth - 2 - headerTextWidth - 1 + 2
	if fillWidth < 0 {
		fillWidth = 0
	}
	topLine := borderStyle.Render("╭─") + headerText +
		borderStyle.Render(strings.Repeat("─", fillWidth)) + borderStyle.Render("╮")

	var renderedLines []string
	renderedLines = append(renderedLines, topLine)

	for _, line := range contentLines {
		pad := innerWidth - lipgloss.Width(line)
		if pad < 0 {
			pad = 0
		}
		renderedLines = append(renderedLines,
			borderStyle.Render("│")+line+strings.Repeat(" ", pad)+borderStyle.Render("│"))
	}

	bottomLine := borderStyle.Render("╰" + strings.Repeat("─", innerWidth) + "╯")
	renderedLines = append(renderedLines, bottomLine)

	return strings.Join(renderedLines, "\n")
}

// RenderControlBox renders a control group inside a bordered box with tab
// header and horizontal dividers between sub-groups.
//
//	 ┌──────────┐
//	┌┤ Playback ├┐
//	│└──────────┘└────────────┐
//	│ Play    [ Space ]       │
//	├─────────────────────────┤
//	│ Step -  [ < ]           │
//	└─────────────────────────┘
func RenderControlBox(group ControlGroup, width int) string {
	if width < 6 {
		return ""
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Purple)
	headerStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)
	shortcutStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)

	const (
		hBar = "─"
		vBar = "│"
		tl   = "┌"
		tr   = "┐"
		bl   = "└"
		br   = "┘"
		teeL = "├"
		teeR = "┤"
	)

	innerW := width - 2

	tabLabel := " " + group.Name + " "
	tabInnerW := lipgloss.Width(tabLabel)

	line1 := " " + borderStyle.Render(tl+strings.Repeat(hBar, tabInnerW)+tr)
	line2 := borderStyle.Render(tl+teeR) + headerStyle.Render(tabLabel) + borderStyle.Render(teeL+tr)

	remainW := innerW - tabInnerW - 3
	if remainW < 0 {
		remainW = 0
	}
	line3 := borderStyle.Render(vBar + bl + strings.Repeat(hBar, tabInnerW) + br + bl + strings.Repeat(hBar, remainW) + tr)

	var lines []string
	lines = append(lines, line1, line2, line3)

	maxNameW := 0
	for _, sg := range group.SubGroups {
		for _, c := range sg {
			if len(c.Name) > maxNameW {
				maxNameW = len(c.Name)
			}
		}
	}

	for si, subGroup := range group.SubGroups {
		for _, c := range subGroup {
			namePart := nameStyle.Render(fmt.Sprintf("%-*s", maxNameW, c.Name))
			shortcutPart := shortcutStyle.Render("[ " + c.Shortcut + " ]")

			contentStr := namePart + "  " + shortcutPart
			padRight := innerW - 2 - lipgloss.Width(contentStr)
			if padRight < 0 {
				padRight = 0
			}

			row := borderStyle.Render(vBar) + " " + contentStr + strings.Repeat(" ", padRight) + " " + borderStyle.Render(vBar)
			if lipgloss.Width(row) > width {
				row = ansi.Truncate(row, width, "")
			}
			lines = append(lines, row)
		}

		if si < len(group.SubGroups)-1 {
			lines = append(lines, borderStyle.Render(teeL+strings.Repeat(hBar, innerW)+teeR))
		}
	}

	lines = append(lines, borderStyle.Render(bl+strings.Repeat(hBar, innerW)+br))

	return strings.Join(lines, "\n")
}

// ControlsDisplay renders all controls as a single horizontal bar, used
// above full-width overlays.
func ControlsDisplay(width int) string {
	groups := GetControlGroups()

	shortcutStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)
	nameStyle := lipgloss.NewStyle().
		Foreground(styles.LightLavender)

	var groupStrings []string
	for _, group := range groups {
		var controlStrs []string
		for _, subGroup := range group.SubGroups {
			for _, ctrl := range subGroup {
				controlStrs = append(controlStrs, nameStyle.Render(ctrl.Name)+" "+shortcutStyle.Render("["+ctrl.Shortcut+"]"))
			}
		}
		groupStrings = append(groupStrings, strings.Join(controlStrs, "  "))
	}

	allControls := strings.Join(groupStrings, "   ")

	padding := (width - lipgloss.Width(allControls)) / 2
	if padding < 0 {
		padding = 0
	}

	containerStyle := lipgloss.NewStyle().
		Background(styles.DeepPurple).
		Width(width)

	return containerStyle.Render(strings.Repeat(" ", padding) + allControls)
}
