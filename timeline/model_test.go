package timeline

import (
	"errors"
	"testing"
)

func newLoadedModel(t *testing.T, duration float64) *Model {
	t.Helper()
	m := NewModel()
	if err := m.SetDuration(duration); err != nil {
		t.Fatalf("SetDuration: %v", err)
	}
	return m
}

func TestSetDurationOnce(t *testing.T) {
	m := newLoadedModel(t, 100)

	if sel := m.Selection(); sel.Start != 0 || sel.End != 100 {
		t.Fatalf("selection = %+v, want full range", sel)
	}
	if pos := m.Position(); pos != 0 {
		t.Fatalf("position = %g, want 0", pos)
	}

	if err := m.SetDuration(50); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("second SetDuration error = %v, want ErrInvalidState", err)
	}

	m.Reset()
	if err := m.SetDuration(50); err != nil {
		t.Fatalf("SetDuration after Reset: %v", err)
	}
}

func TestSetDurationRejectsNonPositive(t *testing.T) {
	m := NewModel()
	if err := m.SetDuration(0); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("error = %v, want ErrInvalidRange", err)
	}
}

func TestSeekClamps(t *testing.T) {
	m := newLoadedModel(t, 100)

	tests := []struct {
		seek float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{1e9, 100},
	}

	for _, tt := range tests {
		if got := m.Seek(tt.seek); got != tt.want {
			t.Errorf("Seek(%g) = %g, want %g", tt.seek, got, tt.want)
		}
		if got := m.Position(); got != tt.want {
			t.Errorf("Position after Seek(%g) = %g, want %g", tt.seek, got, tt.want)
		}
	}
}

func TestSelectionBoundsEnforceMinSpan(t *testing.T) {
	m := newLoadedModel(t, 100)

	if err := m.SetSelectionStart(40); err != nil {
		t.Fatalf("SetSelectionStart(40): %v", err)
	}
	if err := m.SetSelectionEnd(41.5); err != nil {
		t.Fatalf("SetSelectionEnd(41.5): %v", err)
	}

	// Less than minSpan ahead of the start marker must be rejected.
	if err := m.SetSelectionEnd(40.5); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("SetSelectionEnd(40.5) error = %v, want ErrInvalidRange", err)
	}
	// Less than minSpan behind the end marker must be rejected.
	if err := m.SetSelectionStart(41); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("SetSelectionStart(41) error = %v, want ErrInvalidRange", err)
	}

	sel := m.Selection()
	if sel.Start != 40 || sel.End != 41.5 {
		t.Fatalf("selection = %+v, want [40, 41.5)", sel)
	}
	if sel.Span() < m.MinSpan() {
		t.Fatalf("span %g below minimum %g", sel.Span(), m.MinSpan())
	}
}

func TestSelectionClampsToDomain(t *testing.T) {
	m := newLoadedModel(t, 100)

	// -10 clamps to 0, which is valid against end=100.
	if err := m.SetSelectionStart(-10); err != nil {
		t.Fatalf("SetSelectionStart(-10): %v", err)
	}
	// 500 clamps to 100, valid against start=0.
	if err := m.SetSelectionEnd(500); err != nil {
		t.Fatalf("SetSelectionEnd(500): %v", err)
	}

	sel := m.Selection()
	if sel.Start != 0 || sel.End != 100 {
		t.Fatalf("selection = %+v", sel)
	}
}

func TestCommitSegmentOrderAndClear(t *testing.T) {
	m := newLoadedModel(t, 100)

	// Insertion order is preserved, not sorted.
	ranges := []Range{{Start: 10, End: 20}, {Start: 0, End: 5}, {Start: 50, End: 60}}
	for _, r := range ranges {
		if err := m.CommitSegment(r); err != nil {
			t.Fatalf("CommitSegment(%+v): %v", r, err)
		}
	}

	got := m.Segments()
	if len(got) != len(ranges) {
		t.Fatalf("segments = %d, want %d", len(got), len(ranges))
	}
	for i, r := range ranges {
		if got[i] != r {
			t.Errorf("segments[%d] = %+v, want %+v", i, got[i], r)
		}
	}

	m.ClearSegments()
	if got := m.Segments(); len(got) != 0 {
		t.Fatalf("segments after clear = %v, want empty", got)
	}
}

func TestCommitSegmentValidation(t *testing.T) {
	m := newLoadedModel(t, 100)

	if err := m.CommitSegment(Range{Start: 90, End: 110}); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("out-of-domain error = %v, want ErrInvalidRange", err)
	}
	if err := m.CommitSegment(Range{Start: 10, End: 10.2}); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("below min span error = %v, want ErrInvalidRange", err)
	}
}

func TestSegmentsSnapshotIsIndependent(t *testing.T) {
	m := newLoadedModel(t, 100)
	if err := m.CommitSegment(Range{Start: 10, End: 20}); err != nil {
		t.Fatalf("CommitSegment: %v", err)
	}

	snap := m.Segments()
	m.ClearSegments()

	if len(snap) != 1 || snap[0].Start != 10 {
		t.Fatalf("snapshot mutated by ClearSegments: %v", snap)
	}
}
