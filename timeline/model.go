// Package timeline owns the in-memory editing session state: playback
// position, total duration, the active trim selection, and the ordered list
// of committed segments. All mutators are synchronous and guarded by a
// single mutex so gesture events never interleave mid-update.
package timeline

import (
	"fmt"
	"sync"
)

// DefaultMinSpan is the smallest selection or segment length in seconds.
const DefaultMinSpan = 1.0

// Model is the session-scoped timeline aggregate.
type Model struct {
	mu        sync.Mutex
	minSpan   float64
	duration  float64
	position  float64
	selection Range
	segments  []Range
}

// NewModel creates an empty model. Duration stays zero until the loaded
// source reports its metadata via SetDuration.
func NewModel() *Model {
	return &Model{minSpan: DefaultMinSpan}
}

// MinSpan returns the minimum selection span in seconds.
func (m *Model) MinSpan() float64 {
	return m.minSpan
}

// SetDuration records the source duration once per load. The selection is
// initialized to the full range and the position rewinds to zero. Calling
// it again without a Reset fails with ErrInvalidState.
func (m *Model) SetDuration(d float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.duration > 0 {
		return fmt.Errorf("%w: duration already set", ErrInvalidState)
	}
	if d <= 0 {
		return fmt.Errorf("%w: duration %g", ErrInvalidRange, d)
	}

	m.duration = d
	m.selection = Range{Start: 0, End: d}
	m.position = 0
	return nil
}

// Duration returns the source duration, zero until known.
func (m *Model) Duration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

// Seek clamps t to [0, duration] and moves the playback cursor. It never
// fails and returns the position actually set.
func (m *Model) Seek(t float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.position = Clamp(t, 0, m.duration)
	return m.position
}

// Position returns the current playback cursor.
func (m *Model) Position() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

// SetSelectionStart moves the selection start marker. The value is clamped
// to [0, duration] first; if the clamped value would leave less than the
// minimum span before the current end, the call is rejected. Adjusting the
// other bound is the gesture layer's job, not the model's.
func (m *Model) SetSelectionStart(t float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t = Clamp(t, 0, m.duration)
	if t > m.selection.End-m.minSpan {
		return fmt.Errorf("%w: start %g too close to end %g", ErrInvalidRange, t, m.selection.End)
	}

	m.selection.Start = t
	return nil
}

// SetSelectionEnd moves the selection end marker, symmetric to
// SetSelectionStart.
func (m *Model) SetSelectionEnd(t float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t = Clamp(t, 0, m.duration)
	if t < m.selection.Start+m.minSpan {
		return fmt.Errorf("%w: end %g too close to start %g", ErrInvalidRange, t, m.selection.Start)
	}

	m.selection.End = t
	return nil
}

// Selection returns the active trim markers.
func (m *Model) Selection() Range {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selection
}

// CommitSegment appends a validated range to the committed segments.
// Segments keep insertion order and may overlap; sorting is the merge
// consumer's responsibility.
func (m *Model) CommitSegment(r Range) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.Start < 0 || r.End > m.duration {
		return fmt.Errorf("%w: segment [%g, %g) outside [0, %g]", ErrInvalidRange, r.Start, r.End, m.duration)
	}
	if r.Span() < m.minSpan {
		return fmt.Errorf("%w: segment span %g below minimum %g", ErrInvalidRange, r.Span(), m.minSpan)
	}

	m.segments = append(m.segments, r)
	return nil
}

// Segments returns a copy of the committed segments in insertion order.
// Jobs snapshot this at launch; later mutations do not affect them.
func (m *Model) Segments() []Range {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Range, len(m.segments))
	copy(out, m.segments)
	return out
}

// ClearSegments drops all committed segments.
func (m *Model) ClearSegments() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.segments = nil
}

// Reset returns the model to its initial empty state so a new source can
// be loaded.
func (m *Model) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.duration = 0
	m.position = 0
	m.selection = Range{}
	m.segments = nil
}
