// Package components provides reusable TUI components.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/clipforge-cli/pkg/timeutil"
	"github.com/user/clipforge-cli/tui/styles"
)

// CueInputState holds the state for the inline cue text editor.
type CueInputState struct {
	// Active indicates if the cue editor is visible
	Active bool
	// CueIndex is the track index of the cue being edited
	CueIndex int
	// Start and End are the cue range, shown read-only
	Start float64
	End   float64
	// Text is the edit buffer
	Text string
}

// CueInput renders the cue text editor overlay.
func CueInput(state CueInputState, width int) string {
	headerStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	header := headerStyle.Render(fmt.Sprintf("Edit Cue %d  [%s - %s]",
		state.CueIndex+1,
		timeutil.FormatTime(state.Start),
		timeutil.FormatTime(state.End)))

	labelStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Width(6)
	inputStyle := lipgloss.NewStyle().
		Foreground(styles.LightLavender).
		Background(styles.Purple)

	textLine := labelStyle.Render("Text:") + inputStyle.Render(state.Text+"_")

	footerStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Italic(true)
	footer := footerStyle.Render("Enter: save | Esc: cancel")

	content := header + "\n\n" + textLine + "\n\n" + footer

	lineStyle := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Width(width).
		Padding(0, 1)

	return lineStyle.Render(content)
}

// Open initializes the editor for one cue.
func (s *CueInputState) Open(index int, start, end float64, text string) {
	s.Active = true
	s.CueIndex = index
	s.Start = start
	s.End = end
	s.Text = text
}

// Clear resets the editor state.
func (s *CueInputState) Clear() {
	s.Active = false
	s.CueIndex = 0
	s.Start = 0
	s.End = 0
	s.Text = ""
}

// InsertChar appends a character to the edit buffer.
func (s *CueInputState) InsertChar(c rune) {
	s.Text += string(c)
}

// Backspace deletes the last character from the edit buffer.
func (s *CueInputState) Backspace() {
	if len(s.Text) > 0 {
		s.Text = s.Text[:len(s.Text)-1]
	}
}
