// Package tui is the interactive editing surface: an mpv preview window
// driven over IPC, a draggable timeline with selection handles, the cue
// list, and one-key launches of the pipeline jobs.
package tui

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/clipforge-cli/db"
	"github.com/user/clipforge-cli/gesture"
	"github.com/user/clipforge-cli/mpv"
	"github.com/user/clipforge-cli/pipeline"
	"github.com/user/clipforge-cli/pkg/timeutil"
	"github.com/user/clipforge-cli/subtitle"
	"github.com/user/clipforge-cli/timeline"
	"github.com/user/clipforge-cli/tui/components"
	"github.com/user/clipforge-cli/tui/layout"
	"github.com/user/clipforge-cli/tui/styles"
)

const (
	// tickInterval is the interval for polling mpv status.
	tickInterval = 100 * time.Millisecond
	// defaultStepSize is the default seek step size in seconds.
	defaultStepSize = 1.0
	// resultDisplayDuration is how long to show command results.
	resultDisplayDuration = 3 * time.Second
	// jobResultDisplayDuration is how long the finished job box lingers.
	jobResultDisplayDuration = 5 * time.Second
)

// stepSizes are the seek step sizes cycled with < and >.
var stepSizes = []float64{0.1, 0.5, 1, 2, 5, 10, 30}

// playbackSpeeds are the rates cycled with [ and ].
var playbackSpeeds = []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5, 2}

// tickMsg is sent on every tick interval to refresh playback status.
type tickMsg time.Time

// clearResultMsg clears the command result message.
type clearResultMsg struct{}

// clearJobMsg hides the finished job progress box.
type clearJobMsg struct{}

// Model is the Bubbletea model for the editor.
type Model struct {
	client   *mpv.Client
	database *sql.DB
	orc      *pipeline.Orchestrator
	timeline *timeline.Model
	track    *subtitle.Track
	gestures *gesture.Controller

	// language is the transcription language used by the subtitles job.
	language string

	quitting bool
	width    int
	height   int

	statusBar    components.StatusBarState
	cueList      components.CueListState
	commandInput components.CommandInputState
	cueInput     components.CueInputState
	jobProgress  components.JobProgressState
	showHelp     bool
	looping      bool

	activeJob *pipeline.Job

	// pressActive tracks a pointer press on the timeline bar, including a
	// bare-timeline press that leaves the gesture controller formally idle.
	pressActive     bool
	dragHandle      gesture.Handle
	lastPointerTime float64
}

// NewModel wires the editing session into a TUI model.
func NewModel(client *mpv.Client, database *sql.DB, orc *pipeline.Orchestrator, tl *timeline.Model, track *subtitle.Track, language string) *Model {
	m := &Model{
		client:   client,
		database: database,
		orc:      orc,
		timeline: tl,
		track:    track,
		language: language,
		statusBar: components.StatusBarState{
			StepSize: defaultStepSize,
			Speed:    1,
		},
	}
	m.gestures = gesture.NewController(tl, func(t float64) {
		if client != nil && client.IsConnected() {
			_ = client.Seek(t)
		}
	})
	return m
}

// Init starts the mpv polling ticker.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.pollPlayer()
		return m, tickCmd()

	case clearResultMsg:
		m.commandInput.ClearResult()
		return m, nil

	case clearJobMsg:
		if m.activeJob == nil {
			m.jobProgress = components.JobProgressState{}
		}
		return m, nil

	case jobProgressMsg:
		if msg.job == m.activeJob {
			m.jobProgress.Percent = msg.percent
		}
		return m, watchJob(msg.job)

	case jobDoneMsg:
		return m.finishJob(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.cueInput.Active {
			return m.handleCueInput(msg)
		}
		if m.commandInput.Active {
			return m.handleCommandInput(msg)
		}
		return m.handleNormalKey(msg)
	}

	return m, nil
}

// handleNormalKey handles key events in the default mode.
func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?":
		m.showHelp = true
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case ":":
		m.commandInput.Active = true
		m.commandInput.Input = ""
		m.commandInput.CursorPos = 0
		m.commandInput.ClearResult()
	case " ":
		if m.client != nil && m.client.IsConnected() {
			_, _ = m.client.TogglePause()
		}
	case "h", "left":
		m.seekTo(m.timeline.Position() - m.statusBar.StepSize)
	case "l", "right":
		m.seekTo(m.timeline.Position() + m.statusBar.StepSize)
	case "<":
		m.cycleStepSize(-1)
	case ">":
		m.cycleStepSize(1)
	case "[":
		m.cycleSpeed(-1)
	case "]":
		m.cycleSpeed(1)
	case "\\":
		m.setSpeed(1)
	case "s":
		if err := m.timeline.SetSelectionStart(m.timeline.Position()); err != nil {
			return m.resultErr(err)
		}
	case "e":
		if err := m.timeline.SetSelectionEnd(m.timeline.Position()); err != nil {
			return m.resultErr(err)
		}
	case "r":
		return m.toggleLoop()
	case "c":
		sel := m.timeline.Selection()
		if err := m.timeline.CommitSegment(sel); err != nil {
			return m.resultErr(err)
		}
		return m.resultOK(fmt.Sprintf("Segment committed: %s - %s",
			timeutil.FormatTime(sel.Start), timeutil.FormatTime(sel.End)))
	case "x":
		m.timeline.ClearSegments()
		return m.resultOK("Segments cleared")
	case "M":
		return m.startJob(pipeline.KindMerge)
	case "A":
		return m.startJob(pipeline.KindExtractAudio)
	case "G":
		return m.startJob(pipeline.KindTranscribe)
	case "E":
		return m.startJob(pipeline.KindBurnSubtitles)
	case "j", "up":
		m.cueList.MoveUp()
	case "k", "down":
		m.cueList.MoveDown()
	case "enter":
		if item := m.cueList.GetSelectedItem(); item != nil {
			m.seekTo(item.Start)
		}
	case "i":
		if item := m.cueList.GetSelectedItem(); item != nil {
			m.cueInput.Open(item.Index, item.Start, item.End, item.Text)
		} else {
			return m.resultErrText("No cue selected")
		}
	}
	return m, nil
}

// handleCueInput handles key events while the cue editor is open.
func (m *Model) handleCueInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.cueInput.Clear()
		return m, nil
	case "enter":
		index := m.cueInput.CueIndex
		text := m.cueInput.Text
		m.cueInput.Clear()
		if err := m.track.SetText(index, text); err != nil {
			return m.resultErr(err)
		}
		m.refreshCues()
		return m.resultOK(fmt.Sprintf("Cue %d updated", index+1))
	case "backspace":
		m.cueInput.Backspace()
		return m, nil
	default:
		if len(msg.String()) == 1 {
			m.cueInput.InsertChar(rune(msg.String()[0]))
		} else if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				m.cueInput.InsertChar(r)
			}
		}
		return m, nil
	}
}

// handleCommandInput handles key events when in command mode.
func (m *Model) handleCommandInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.commandInput.Clear()
		return m, nil
	case "enter":
		cmd := m.commandInput.GetCommand()
		if cmd == "" {
			return m, nil
		}
		result, teaCmd, err := m.executeCommand(cmd)
		if err != nil {
			return m.resultErr(err)
		}
		if result != "" {
			m.commandInput.SetResult(result, false)
			if teaCmd != nil {
				return m, tea.Batch(teaCmd, m.clearResultAfterDelay())
			}
			return m, m.clearResultAfterDelay()
		}
		return m, teaCmd
	case "backspace":
		m.commandInput.Backspace()
		return m, nil
	case "delete":
		m.commandInput.Delete()
		return m, nil
	case "left":
		m.commandInput.MoveCursorLeft()
		return m, nil
	case "right":
		m.commandInput.MoveCursorRight()
		return m, nil
	default:
		if len(msg.String()) == 1 {
			m.commandInput.InsertChar(rune(msg.String()[0]))
		} else if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				m.commandInput.InsertChar(r)
			}
		}
		return m, nil
	}
}

// executeCommand parses and executes a command line. It returns a result
// message and an optional follow-up command.
func (m *Model) executeCommand(cmdStr string) (string, tea.Cmd, error) {
	parts := strings.Fields(cmdStr)
	if len(parts) == 0 {
		return "", nil, nil
	}
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "seek":
		if len(args) < 1 {
			return "", nil, fmt.Errorf("seek requires a time argument (e.g., seek 1:30 or seek 90)")
		}
		seconds, err := timeutil.ParseTimeToSeconds(args[0])
		if err != nil {
			return "", nil, err
		}
		m.seekTo(seconds)
		return fmt.Sprintf("Seeked to %s", timeutil.FormatTime(m.timeline.Position())), nil, nil

	case "speed":
		if len(args) < 1 {
			return fmt.Sprintf("Speed: %.2gx", m.statusBar.Speed), nil, nil
		}
		var speed float64
		if _, err := fmt.Sscanf(args[0], "%f", &speed); err != nil || speed <= 0 {
			return "", nil, fmt.Errorf("invalid speed: %s", args[0])
		}
		m.setSpeed(speed)
		return fmt.Sprintf("Speed set to %.2gx", speed), nil, nil

	case "step":
		if len(args) < 1 {
			return fmt.Sprintf("Step: %.1fs", m.statusBar.StepSize), nil, nil
		}
		var step float64
		if _, err := fmt.Sscanf(args[0], "%f", &step); err != nil || step <= 0 {
			return "", nil, fmt.Errorf("invalid step: %s", args[0])
		}
		m.statusBar.StepSize = step
		return fmt.Sprintf("Step set to %.1fs", step), nil, nil

	case "lang":
		if len(args) < 1 {
			return fmt.Sprintf("Language: %s", m.language), nil, nil
		}
		m.language = args[0]
		if m.database != nil {
			_ = db.SetSetting(m.database, db.KeyLanguage, m.language)
		}
		return fmt.Sprintf("Language set to %s", m.language), nil, nil

	case "play":
		if err := m.client.Play(); err != nil {
			return "", nil, err
		}
		return "Playing", nil, nil

	case "pause", "p":
		if err := m.client.Pause(); err != nil {
			return "", nil, err
		}
		return "Paused", nil, nil

	case "loop":
		_, teaCmd := m.toggleLoop()
		return "", teaCmd, nil

	case "commit":
		if err := m.timeline.CommitSegment(m.timeline.Selection()); err != nil {
			return "", nil, err
		}
		return "Segment committed", nil, nil

	case "clear":
		m.timeline.ClearSegments()
		return "Segments cleared", nil, nil

	case "merge":
		_, teaCmd := m.startJob(pipeline.KindMerge)
		return "", teaCmd, nil
	case "audio":
		_, teaCmd := m.startJob(pipeline.KindExtractAudio)
		return "", teaCmd, nil
	case "subs":
		if len(args) > 0 {
			m.language = args[0]
		}
		_, teaCmd := m.startJob(pipeline.KindTranscribe)
		return "", teaCmd, nil
	case "export":
		_, teaCmd := m.startJob(pipeline.KindBurnSubtitles)
		return "", teaCmd, nil

	case "help", "h":
		return "Commands: seek, speed, step, lang, play, pause, loop, commit, clear, merge, audio, subs, export, quit", nil, nil

	case "q", "quit":
		m.quitting = true
		return "", tea.Quit, nil

	default:
		return "", nil, fmt.Errorf("unknown command: %s", cmd)
	}
}

// startJob launches one pipeline job and bridges it into the message
// stream. A second request while one runs reports the busy rejection.
func (m *Model) startJob(kind pipeline.Kind) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	var job *pipeline.Job
	var err error
	switch kind {
	case pipeline.KindMerge:
		job, err = m.orc.StartMerge(ctx)
	case pipeline.KindExtractAudio:
		job, err = m.orc.StartConvertToAudio(ctx)
	case pipeline.KindTranscribe:
		job, err = m.orc.StartGenerateSubtitles(ctx, m.language)
	case pipeline.KindBurnSubtitles:
		job, err = m.orc.StartExportBurned(ctx)
	default:
		return m, nil
	}
	if err != nil {
		return m.resultErr(err)
	}

	m.activeJob = job
	m.jobProgress = components.JobProgressState{
		Active:  true,
		Label:   jobLabel(kind),
		Message: "Starting...",
	}
	return m, watchJob(job)
}

// finishJob applies a settled job's outcome to the session.
func (m *Model) finishJob(msg jobDoneMsg) (tea.Model, tea.Cmd) {
	if msg.job != m.activeJob {
		return m, nil
	}
	m.activeJob = nil

	if msg.err != nil {
		m.jobProgress.Failed = true
		m.jobProgress.Message = msg.err.Error()
		return m, m.clearJobAfterDelay()
	}

	m.jobProgress.Percent = 100
	m.jobProgress.Failed = false

	switch msg.job.Kind {
	case pipeline.KindMerge:
		// The merged output is the new active source.
		m.looping = false
		if m.client != nil && m.client.IsConnected() {
			_ = m.client.LoadFile(m.orc.Source())
		}
		m.jobProgress.Message = "Merged: " + msg.result.ArtifactPath
	case pipeline.KindExtractAudio:
		m.jobProgress.Message = "Audio: " + m.persistArtifact(msg.result.ArtifactPath)
	case pipeline.KindTranscribe:
		m.refreshCues()
		m.jobProgress.Message = fmt.Sprintf("%d cues generated", len(m.cueList.Items))
	case pipeline.KindBurnSubtitles:
		m.jobProgress.Message = "Exported: " + m.persistArtifact(msg.result.ArtifactPath)
	}

	return m, m.clearJobAfterDelay()
}

// pollPlayer mirrors mpv state into the timeline and status bar. The
// playhead follows mpv except while a drag gesture owns it.
func (m *Model) pollPlayer() {
	if m.client != nil && m.client.IsConnected() {
		if paused, err := m.client.GetPaused(); err == nil {
			m.statusBar.Paused = paused
		}
		if speed, err := m.client.GetSpeed(); err == nil {
			m.statusBar.Speed = speed
		}
		if pos, err := m.client.GetTimePos(); err == nil && m.gestures.State() == gesture.Idle {
			m.timeline.Seek(pos)
		}
	}

	m.statusBar.TimePos = m.timeline.Position()
	m.statusBar.Duration = m.timeline.Duration()
	m.statusBar.Looping = m.looping
	if m.activeJob != nil {
		m.statusBar.JobLabel = jobLabel(m.activeJob.Kind)
	} else {
		m.statusBar.JobLabel = ""
	}
}

// seekTo moves the playhead in the model and the player together.
func (m *Model) seekTo(t float64) {
	pos := m.timeline.Seek(t)
	if m.client != nil && m.client.IsConnected() {
		_ = m.client.Seek(pos)
	}
}

// toggleLoop arms or clears an A-B loop over the current selection.
func (m *Model) toggleLoop() (tea.Model, tea.Cmd) {
	if m.client == nil || !m.client.IsConnected() {
		return m.resultErrText("Not connected to mpv")
	}

	if m.looping {
		_ = m.client.SetProperty("ab-loop-a", "no")
		_ = m.client.SetProperty("ab-loop-b", "no")
		m.looping = false
		return m.resultOK("Loop off")
	}

	sel := m.timeline.Selection()
	if err := m.client.SetProperty("ab-loop-a", sel.Start); err != nil {
		return m.resultErr(err)
	}
	if err := m.client.SetProperty("ab-loop-b", sel.End); err != nil {
		return m.resultErr(err)
	}
	m.seekTo(sel.Start)
	m.looping = true
	return m.resultOK(fmt.Sprintf("Looping %s - %s",
		timeutil.FormatTime(sel.Start), timeutil.FormatTime(sel.End)))
}

func (m *Model) cycleStepSize(dir int) {
	idx := 0
	for i, size := range stepSizes {
		if m.statusBar.StepSize >= size {
			idx = i
		}
	}
	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx > len(stepSizes)-1 {
		idx = len(stepSizes) - 1
	}
	m.statusBar.StepSize = stepSizes[idx]
}

func (m *Model) cycleSpeed(dir int) {
	idx := 0
	for i, speed := range playbackSpeeds {
		if m.statusBar.Speed >= speed {
			idx = i
		}
	}
	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx > len(playbackSpeeds)-1 {
		idx = len(playbackSpeeds) - 1
	}
	m.setSpeed(playbackSpeeds[idx])
}

func (m *Model) setSpeed(speed float64) {
	m.statusBar.Speed = speed
	if m.client != nil && m.client.IsConnected() {
		_ = m.client.SetSpeed(speed)
	}
}

// refreshCues rebuilds the cue list from the subtitle track.
func (m *Model) refreshCues() {
	cues := m.track.Cues()
	items := make([]components.CueItem, 0, len(cues))
	for i, c := range cues {
		items = append(items, components.CueItem{
			Index: i,
			Start: c.Range.Start,
			End:   c.Range.End,
			Text:  c.Text,
		})
	}
	m.cueList.Items = items
	if m.cueList.SelectedIndex >= len(items) {
		m.cueList.SelectedIndex = 0
		m.cueList.ScrollOffset = 0
	}
}

func (m *Model) showResult(msg string, isError bool) {
	m.commandInput.SetResult(msg, isError)
}

func (m *Model) clearResultAfterDelay() tea.Cmd {
	return tea.Tick(resultDisplayDuration, func(time.Time) tea.Msg {
		return clearResultMsg{}
	})
}

func (m *Model) clearJobAfterDelay() tea.Cmd {
	return tea.Tick(jobResultDisplayDuration, func(time.Time) tea.Msg {
		return clearJobMsg{}
	})
}

func (m *Model) resultOK(msg string) (tea.Model, tea.Cmd) {
	m.showResult(msg, false)
	return m, m.clearResultAfterDelay()
}

func (m *Model) resultErr(err error) (tea.Model, tea.Cmd) {
	m.showResult("Error: "+err.Error(), true)
	return m, m.clearResultAfterDelay()
}

func (m *Model) resultErrText(msg string) (tea.Model, tea.Cmd) {
	m.showResult(msg, true)
	return m, m.clearResultAfterDelay()
}

// columnsHeight is the height of the column area between the status bar
// and the timeline strip.
func (m *Model) columnsHeight() int {
	h := m.height - 2 - components.TimelineHeight
	if h < 5 {
		h = 5
	}
	return h
}

// View renders the current state of the model as a string.
func (m *Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if m.showHelp {
		return components.HelpOverlay(m.width, m.height)
	}

	statusBar := components.StatusBar(m.statusBar, m.width)

	if m.cueInput.Active {
		return statusBar + "\n" + components.ControlsDisplay(m.width) + "\n" +
			components.CueInput(m.cueInput, m.width)
	}

	if m.width > 0 && m.width < layout.MinTerminalWidth {
		warningStyle := lipgloss.NewStyle().
			Foreground(styles.Pink).
			Bold(true)
		hintStyle := lipgloss.NewStyle().
			Foreground(styles.Lavender).
			Italic(true)
		return warningStyle.Render(fmt.Sprintf("Terminal too narrow (%d cols)", m.width)) + "\n" +
			hintStyle.Render(fmt.Sprintf("Minimum width: %d columns", layout.MinTerminalWidth)) + "\n" +
			hintStyle.Render("Please resize your terminal.")
	}

	colHeight := m.columnsHeight()
	col1W, col2W, col3W, showCol3 := layout.ComputeColumnWidths(m.width)

	columns := []string{
		m.renderSessionColumn(col1W, colHeight),
		m.renderCuesColumn(col2W, colHeight),
	}
	widths := []int{col1W, col2W}
	if showCol3 {
		columns = append(columns, m.renderSegmentsColumn(col3W, colHeight))
		widths = append(widths, col3W)
	}

	columnsView := layout.JoinColumns(columns, widths, colHeight)

	timelineView := components.Timeline(components.TimelineState{
		Position:     m.timeline.Position(),
		Duration:     m.timeline.Duration(),
		Selection:    m.timeline.Selection(),
		Segments:     m.timeline.Segments(),
		CueStarts:    m.cueStarts(),
		ActiveHandle: m.activeHandleName(),
	}, m.width)

	commandInput := components.CommandInput(m.commandInput, m.width)

	return statusBar + "\n" + columnsView + "\n" + timelineView + "\n" + commandInput
}

func (m *Model) cueStarts() []float64 {
	starts := make([]float64, 0, len(m.cueList.Items))
	for _, item := range m.cueList.Items {
		starts = append(starts, item.Start)
	}
	return starts
}

// Run starts the Bubbletea program for one editing session. Mouse cell
// motion reporting is enabled for the timeline drag gestures.
func Run(client *mpv.Client, database *sql.DB, orc *pipeline.Orchestrator, tl *timeline.Model, track *subtitle.Track, language string) error {
	model := NewModel(client, database, orc, tl, track, language)
	model.refreshCues()
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
