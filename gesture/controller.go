// Package gesture turns abstract pointer events into timeline mutations.
// The input adapter (the TUI, or anything else that can hit-test a pointer
// against the rendered timeline) produces Start/Move/End events; the
// controller runs the drag state machine and pre-clamps every candidate
// time before touching the model.
package gesture

import (
	"fmt"

	"github.com/user/clipforge-cli/timeline"
)

// Handle identifies what a pointer-down grabbed.
type Handle int

const (
	HandleNone Handle = iota
	HandleSelectionStart
	HandleSelectionEnd
	HandlePlayhead
)

// String returns a short name for logging.
func (h Handle) String() string {
	switch h {
	case HandleSelectionStart:
		return "selection-start"
	case HandleSelectionEnd:
		return "selection-end"
	case HandlePlayhead:
		return "playhead"
	default:
		return "none"
	}
}

// State is the drag state machine position.
type State int

const (
	Idle State = iota
	DraggingStart
	DraggingEnd
	DraggingPlayhead
)

// Event is a tagged gesture variant dispatched with a type switch, keeping
// the controller independent of any concrete UI toolkit.
type Event interface{ gestureEvent() }

// Start is a pointer-down on a handle, or on the bare timeline when Handle
// is HandleNone. Time is the candidate time under the pointer.
type Start struct {
	Handle Handle
	Time   float64
}

// Move is a pointer move while captured. Moves are routed to the controller
// exclusively until End, regardless of where the pointer travels.
type Move struct {
	Time float64
}

// End is a pointer-up anywhere, including outside the tracked region.
type End struct {
	Time float64
}

func (Start) gestureEvent() {}
func (Move) gestureEvent()  {}
func (End) gestureEvent()   {}

// clickThreshold is the time travel in seconds below which a down/up pair
// on the bare timeline counts as a click rather than a drag.
const clickThreshold = 0.25

// Controller interprets gesture events against the timeline model. Playhead
// movement is also forwarded to onSeek so the surrounding player can move
// its decode position.
type Controller struct {
	model  *timeline.Model
	onSeek func(t float64)

	state    State
	downTime float64
	moved    bool
}

// NewController creates an idle controller. onSeek may be nil when no
// playback collaborator is attached.
func NewController(model *timeline.Model, onSeek func(t float64)) *Controller {
	return &Controller{model: model, onSeek: onSeek}
}

// State returns the current drag state.
func (c *Controller) State() State {
	return c.state
}

// Apply feeds one gesture event through the state machine. Model rejections
// are returned as-is; since every candidate is pre-clamped they indicate a
// bug in the adapter, not a user condition.
func (c *Controller) Apply(ev Event) error {
	switch ev := ev.(type) {
	case Start:
		return c.applyStart(ev)
	case Move:
		return c.applyMove(ev)
	case End:
		return c.applyEnd(ev)
	default:
		return fmt.Errorf("gesture: unknown event %T", ev)
	}
}

func (c *Controller) applyStart(ev Start) error {
	switch ev.Handle {
	case HandleSelectionStart:
		c.state = DraggingStart
	case HandleSelectionEnd:
		c.state = DraggingEnd
	case HandlePlayhead:
		c.state = DraggingPlayhead
	default:
		// Bare timeline press: a later End without real movement is a
		// click-to-seek. Stay formally idle but remember the press.
		c.state = Idle
	}
	c.downTime = ev.Time
	c.moved = false
	return nil
}

func (c *Controller) applyMove(ev Move) error {
	if ev.Time < c.downTime-clickThreshold || ev.Time > c.downTime+clickThreshold {
		c.moved = true
	}

	duration := c.model.Duration()
	t := timeline.Clamp(ev.Time, 0, duration)
	sel := c.model.Selection()
	minSpan := c.model.MinSpan()

	switch c.state {
	case DraggingStart:
		upper := sel.End - minSpan
		if upper < 0 {
			// Source shorter than the minimum span: nothing legal to set.
			return nil
		}
		return c.model.SetSelectionStart(timeline.Clamp(t, 0, upper))
	case DraggingEnd:
		lower := sel.Start + minSpan
		if lower > duration {
			return nil
		}
		return c.model.SetSelectionEnd(timeline.Clamp(t, lower, duration))
	case DraggingPlayhead:
		c.seek(t)
		return nil
	default:
		return nil
	}
}

func (c *Controller) applyEnd(ev End) error {
	wasIdle := c.state == Idle
	c.state = Idle

	// Plain click outside a handle seeks directly, never through a drag.
	if wasIdle && !c.moved {
		c.seek(timeline.Clamp(ev.Time, 0, c.model.Duration()))
	}
	c.moved = false
	return nil
}

// seek moves the model cursor and notifies the playback collaborator.
func (c *Controller) seek(t float64) {
	pos := c.model.Seek(t)
	if c.onSeek != nil {
		c.onSeek(pos)
	}
}

// PickHandle hit-tests a pointer time against the selection markers and the
// playhead. When the start and end handles are coincident (span at the
// minimum) the end handle wins, so an ambiguous grab extends the selection
// instead of shrinking it.
func PickHandle(sel timeline.Range, playhead, t, tolerance float64) Handle {
	if t >= sel.End-tolerance && t <= sel.End+tolerance {
		return HandleSelectionEnd
	}
	if t >= sel.Start-tolerance && t <= sel.Start+tolerance {
		return HandleSelectionStart
	}
	if t >= playhead-tolerance && t <= playhead+tolerance {
		return HandlePlayhead
	}
	return HandleNone
}
