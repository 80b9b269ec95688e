package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/clipforge-cli/gesture"
	"github.com/user/clipforge-cli/tui/components"
)

// timelineTop returns the screen row of the timeline box's top border:
// status bar + columns sit above it.
func (m *Model) timelineTop() int {
	return 1 + m.columnsHeight()
}

// handleMouse translates terminal mouse events on the timeline strip into
// gesture events. A press anywhere on the strip starts a gesture; motion
// and release are forwarded even when the pointer leaves the bar so drags
// keep tracking. The press is tracked here, not via the controller's drag
// state: a bare-timeline press leaves the controller formally idle until
// release decides between click-to-seek and a no-op drag.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionMotion &&
		msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	duration := m.timeline.Duration()
	barRow := m.timelineTop() + components.TimelineBarRow

	switch msg.Action {
	case tea.MouseActionPress:
		// Presses count only on the bar row itself.
		if msg.Y != barRow {
			return m, nil
		}
		t, ok := components.TimelineTimeAt(msg.X, m.width, duration)
		if !ok {
			return m, nil
		}
		tolerance := components.TimelineTolerance(m.width, duration)
		handle := gesture.PickHandle(m.timeline.Selection(), m.timeline.Position(), t, tolerance)
		m.pressActive = true
		m.dragHandle = handle
		m.lastPointerTime = t
		if err := m.gestures.Apply(gesture.Start{Handle: handle, Time: t}); err != nil {
			m.showResult("Error: "+err.Error(), true)
			return m, m.clearResultAfterDelay()
		}

	case tea.MouseActionMotion:
		if !m.pressActive {
			return m, nil
		}
		t, ok := components.TimelineTimeAt(msg.X, m.width, duration)
		if !ok {
			// Off the bar: hold the last known time so the drag survives.
			t = m.lastPointerTime
		}
		m.lastPointerTime = t
		if err := m.gestures.Apply(gesture.Move{Time: t}); err != nil {
			m.showResult("Error: "+err.Error(), true)
			return m, m.clearResultAfterDelay()
		}

	case tea.MouseActionRelease:
		if !m.pressActive {
			return m, nil
		}
		t, ok := components.TimelineTimeAt(msg.X, m.width, duration)
		if !ok {
			t = m.lastPointerTime
		}
		m.pressActive = false
		m.dragHandle = gesture.HandleNone
		if err := m.gestures.Apply(gesture.End{Time: t}); err != nil {
			m.showResult("Error: "+err.Error(), true)
			return m, m.clearResultAfterDelay()
		}
	}

	return m, nil
}

// activeHandleName maps the drag state to the timeline component's
// highlight key.
func (m *Model) activeHandleName() string {
	switch m.gestures.State() {
	case gesture.DraggingStart:
		return "start"
	case gesture.DraggingEnd:
		return "end"
	case gesture.DraggingPlayhead:
		return "playhead"
	default:
		return ""
	}
}
