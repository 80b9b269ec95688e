package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/clipforge-cli/pkg/timeutil"
	"github.com/user/clipforge-cli/timeline"
	"github.com/user/clipforge-cli/tui/styles"
)

// SegmentsPanel renders the working selection and the committed segment
// list as a bordered box.
func SegmentsPanel(selection timeline.Range, segments []timeline.Range, width int) string {
	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)
	dimStyle := lipgloss.NewStyle().Foreground(styles.Lavender)
	selStyle := lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)

	var contentLines []string

	contentLines = append(contentLines, selStyle.Render(fmt.Sprintf(
		" Sel: %s - %s (%.1fs)",
		timeutil.FormatTime(selection.Start),
		timeutil.FormatTime(selection.End),
		selection.Span())))
	contentLines = append(contentLines, "")

	if len(segments) == 0 {
		contentLines = append(contentLines, dimStyle.Render(" No segments yet."))
		contentLines = append(contentLines, dimStyle.Render(" Press C to commit the"))
		contentLines = append(contentLines, dimStyle.Render(" selection as a segment."))
	} else {
		var total float64
		for i, seg := range segments {
			contentLines = append(contentLines, textStyle.Render(fmt.Sprintf(
				" %d. %s - %s (%.1fs)",
				i+1,
				timeutil.FormatTime(seg.Start),
				timeutil.FormatTime(seg.End),
				seg.Span())))
			total += seg.Span()
		}
		contentLines = append(contentLines, "")
		contentLines = append(contentLines, dimStyle.Render(fmt.Sprintf(" Total: %.1fs", total)))
	}

	return RenderInfoBox("Segments", contentLines, width)
}
