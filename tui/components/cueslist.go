// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/clipforge-cli/pkg/timeutil"
	"github.com/user/clipforge-cli/tui/styles"
)

// CueItem is one subtitle cue row in the list.
type CueItem struct {
	// Index is the cue position in the track, zero-based
	Index int
	// Start and End are the cue range in seconds
	Start float64
	End   float64
	// Text is the cue display text
	Text string
}

// CueListState holds the state for the cue list component.
type CueListState struct {
	Items         []CueItem
	SelectedIndex int
	ScrollOffset  int
}

// CuesList renders the cue table. The cue active at currentTimePos is
// marked with a playhead glyph, and the view follows playback when the
// selection is off screen.
func CuesList(state CueListState, width, height int, currentTimePos float64) string {
	var lines []string

	headerStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Bold(true).
		Underline(true)

	idxWidth := 4
	timeWidth := 18
	textWidth := width - idxWidth - timeWidth - 6
	if textWidth < 10 {
		textWidth = 10
	}

	header := fmt.Sprintf("  %-*s %-*s %-*s",
		idxWidth, "#",
		timeWidth, "Range",
		textWidth, "Text")
	lines = append(lines, headerStyle.Render(header))

	rows := height - 1
	if rows < 3 {
		rows = 3
	}

	if len(state.Items) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.Purple).
			Italic(true)
		lines = append(lines, emptyStyle.Render(" No subtitles loaded. Press G to generate."))
		for i := 1; i < rows; i++ {
			lines = append(lines, "")
		}
		return strings.Join(lines, "\n")
	}

	state.followPlayback(currentTimePos, rows)

	if state.SelectedIndex < state.ScrollOffset {
		state.ScrollOffset = state.SelectedIndex
	} else if state.SelectedIndex >= state.ScrollOffset+rows {
		state.ScrollOffset = state.SelectedIndex - rows + 1
	}
	if state.ScrollOffset < 0 {
		state.ScrollOffset = 0
	}
	maxOffset := len(state.Items) - rows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if state.ScrollOffset > maxOffset {
		state.ScrollOffset = maxOffset
	}

	for row := 0; row < rows; row++ {
		itemIndex := state.ScrollOffset + row
		if itemIndex >= len(state.Items) {
			lines = append(lines, "")
			continue
		}
		item := state.Items[itemIndex]
		active := currentTimePos >= item.Start && currentTimePos < item.End
		lines = append(lines, renderCueRow(item, itemIndex == state.SelectedIndex, active, idxWidth, timeWidth, textWidth, width))
	}

	return strings.Join(lines, "\n")
}

func renderCueRow(item CueItem, selected, active bool, idxWidth, timeWidth, textWidth, fullWidth int) string {
	marker := " "
	if active {
		marker = "▶"
	}

	rangeStr := fmt.Sprintf("%s-%s", timeutil.FormatTime(item.Start), timeutil.FormatTime(item.End))

	text := strings.ReplaceAll(item.Text, "\n", " ")
	if len(text) > textWidth {
		text = text[:textWidth-3] + "..."
	}

	content := fmt.Sprintf("%s %-*d %-*s %-*s",
		marker,
		idxWidth, item.Index+1,
		timeWidth, rangeStr,
		textWidth, text)

	var lineStyle lipgloss.Style
	if selected {
		lineStyle = lipgloss.NewStyle().
			Background(styles.BrightPurple).
			Foreground(styles.LightLavender).
			Bold(true).
			Width(fullWidth)
	} else if active {
		lineStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Width(fullWidth)
	} else {
		lineStyle = lipgloss.NewStyle().
			Foreground(styles.LightLavender).
			Width(fullWidth)
	}

	return lineStyle.Render(content)
}

// followPlayback scrolls toward the cue nearest the playhead when the
// selection is already out of view.
func (s *CueListState) followPlayback(currentTimePos float64, rows int) {
	if len(s.Items) == 0 {
		return
	}

	nearestIndex := 0
	for i, item := range s.Items {
		if item.Start >= currentTimePos {
			nearestIndex = i
			break
		}
		nearestIndex = i
	}

	if s.SelectedIndex < s.ScrollOffset || s.SelectedIndex >= s.ScrollOffset+rows {
		targetOffset := nearestIndex - rows/3
		if targetOffset < 0 {
			targetOffset = 0
		}
		maxOffset := len(s.Items) - rows
		if maxOffset < 0 {
			maxOffset = 0
		}
		if targetOffset > maxOffset {
			targetOffset = maxOffset
		}
		s.ScrollOffset = targetOffset
	}
}

// MoveUp moves the selection up in the list.
func (s *CueListState) MoveUp() {
	if s.SelectedIndex > 0 {
		s.SelectedIndex--
	}
}

// MoveDown moves the selection down in the list.
func (s *CueListState) MoveDown() {
	if s.SelectedIndex < len(s.Items)-1 {
		s.SelectedIndex++
	}
}

// GetSelectedItem returns the currently selected cue, or nil if the list
// is empty.
func (s *CueListState) GetSelectedItem() *CueItem {
	if len(s.Items) == 0 || s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Items) {
		return nil
	}
	return &s.Items[s.SelectedIndex]
}
