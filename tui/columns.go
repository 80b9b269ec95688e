package tui

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/clipforge-cli/pkg/timeutil"
	"github.com/user/clipforge-cli/tui/components"
	"github.com/user/clipforge-cli/tui/layout"
	"github.com/user/clipforge-cli/tui/styles"
)

// renderSessionColumn renders the left column: source info, the job
// progress box when a job is running or just finished, then the control
// groups.
func (m *Model) renderSessionColumn(width, height int) string {
	var sections []string

	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)
	dimStyle := lipgloss.NewStyle().Foreground(styles.Lavender)

	source := "(no source)"
	if m.orc != nil && m.orc.Source() != "" {
		source = filepath.Base(m.orc.Source())
	}
	infoLines := []string{
		" " + textStyle.Render(source),
		" " + dimStyle.Render("Duration: "+timeutil.FormatTime(m.timeline.Duration())),
	}
	sections = append(sections, components.RenderInfoBox("Source", infoLines, width))

	if m.jobProgress.Active {
		sections = append(sections, components.JobProgress(m.jobProgress, width))
	}

	for _, group := range components.GetControlGroups() {
		sections = append(sections, components.RenderControlBox(group, width))
	}

	content := strings.Join(sections, "\n")
	return layout.Container{Width: width, Height: height}.Render(content)
}

// renderCuesColumn renders the middle column: the subtitle cue list.
func (m *Model) renderCuesColumn(width, height int) string {
	// Reserve the info box border rows for the list itself.
	listHeight := height - 2
	if listHeight < 4 {
		listHeight = 4
	}

	list := components.CuesList(m.cueList, width-2, listHeight, m.timeline.Position())
	content := components.RenderInfoBox("Subtitles", strings.Split(list, "\n"), width)
	return layout.Container{Width: width, Height: height}.Render(content)
}

// renderSegmentsColumn renders the right column: current selection plus
// committed segments. Hidden on narrow terminals.
func (m *Model) renderSegmentsColumn(width, height int) string {
	content := components.SegmentsPanel(m.timeline.Selection(), m.timeline.Segments(), width)
	return layout.Container{Width: width, Height: height}.Render(content)
}
