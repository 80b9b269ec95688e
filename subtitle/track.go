// Package subtitle owns the cue track of the editing session and the SRT
// interchange text exchanged with the transcription service and the export
// boundary.
package subtitle

import (
	"fmt"
	"sync"

	"github.com/user/clipforge-cli/timeline"
)

// Cue is one subtitle entry: a time range and its display text.
type Cue struct {
	Range timeline.Range
	Text  string
}

// Track is an ordered cue sequence. Cues keep import order and may overlap;
// lookups resolve ties by first match in insertion order.
type Track struct {
	mu   sync.Mutex
	cues []Cue
}

// NewTrack creates an empty track.
func NewTrack() *Track {
	return &Track{}
}

// Len returns the number of cues.
func (tr *Track) Len() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return len(tr.cues)
}

// Cues returns a copy of the cue sequence in stored order.
func (tr *Track) Cues() []Cue {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	out := make([]Cue, len(tr.cues))
	copy(out, tr.cues)
	return out
}

// ActiveCueAt returns the first cue in insertion order whose range contains
// t, along with its index. ok is false when no cue is active.
func (tr *Track) ActiveCueAt(t float64) (cue Cue, index int, ok bool) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.activeCueAtLocked(t)
}

func (tr *Track) activeCueAtLocked(t float64) (Cue, int, bool) {
	for i, c := range tr.cues {
		if c.Range.Contains(t) {
			return c, i, true
		}
	}
	return Cue{}, -1, false
}

// SetText replaces the text of the cue at index. The range is untouched.
func (tr *Track) SetText(index int, text string) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	if index < 0 || index >= len(tr.cues) {
		return fmt.Errorf("subtitle: cue index %d out of range", index)
	}
	tr.cues[index].Text = text
	return nil
}

// SetTextAt replaces the text of the cue active at t. It reports whether a
// cue was edited; with no active cue it is a no-op.
func (tr *Track) SetTextAt(t float64, text string) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	_, i, ok := tr.activeCueAtLocked(t)
	if !ok {
		return false
	}
	tr.cues[i].Text = text
	return true
}

// ReplaceAll swaps the entire cue sequence atomically. Every cue must have
// start strictly before end; if any cue fails validation the previous track
// is retained untouched.
func (tr *Track) ReplaceAll(cues []Cue) error {
	for i, c := range cues {
		if c.Range.Start < 0 || c.Range.Start >= c.Range.End {
			return fmt.Errorf("subtitle: cue %d has invalid range [%g, %g)", i, c.Range.Start, c.Range.End)
		}
	}

	next := make([]Cue, len(cues))
	copy(next, cues)

	tr.mu.Lock()
	tr.cues = next
	tr.mu.Unlock()
	return nil
}

// Clear drops every cue.
func (tr *Track) Clear() {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.cues = nil
}

// SRT serializes the track in stored order, not sorted by start time, so
// that import and export stay symmetric.
func (tr *Track) SRT() string {
	return Marshal(tr.Cues())
}
