// Package styles holds the shared colour palette. Components build their
// own lipgloss styles from these constants so the whole UI stays on one
// theme (Ciapre, via Gogh).
package styles

import "github.com/charmbracelet/lipgloss"

const (
	// DeepPurple is the main background (Ciapre background)
	DeepPurple = lipgloss.Color("#191C27")
	// DarkPurple backs the command line and overlays (Ciapre ANSI 0)
	DarkPurple = lipgloss.Color("#181818")
	// Purple draws box borders and the idle timeline track (Ciapre ANSI 6)
	Purple = lipgloss.Color("#5C4F4B")
	// BrightPurple marks the selection span and the selected cue row
	// (Ciapre ANSI 5)
	BrightPurple = lipgloss.Color("#724D7C")
	// Lavender is secondary text: hints, dim labels (Ciapre foreground)
	Lavender = lipgloss.Color("#AEA47A")
	// LightLavender is primary text (Ciapre ANSI 14)
	LightLavender = lipgloss.Color("#F3DBB2")
	// Pink highlights headers, the playhead, and active drag handles
	// (Ciapre ANSI 13)
	Pink = lipgloss.Color("#D33061")
	// Cyan marks interactive hints, cue markers, and the active cue
	// (Ciapre ANSI 12)
	Cyan = lipgloss.Color("#3097C6")
	// Amber colours the idle selection handles (Ciapre derived)
	Amber = lipgloss.Color("#CC8B3F")
	// Red is for failure text (Ciapre ANSI 1)
	Red = lipgloss.Color("#AC3835")
	// Green fills progress bars and the committed segments row (Ciapre
	// ANSI 2)
	Green = lipgloss.Color("#A6A75D")
)
