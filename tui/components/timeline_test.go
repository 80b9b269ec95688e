package components

import (
	"strings"
	"testing"

	"github.com/user/clipforge-cli/timeline"
)

func TestTimelineTimeAtBounds(t *testing.T) {
	const width = 100
	const duration = 200.0

	barWidth := timelineBarWidth(width, duration)

	tests := []struct {
		name   string
		x      int
		wantOK bool
	}{
		{"left border", 0, false},
		{"margin before bar", 1, false},
		{"first bar cell", barOffsetX, true},
		{"last bar cell", barOffsetX + barWidth - 1, true},
		{"past bar end", barOffsetX + barWidth, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := TimelineTimeAt(tt.x, width, duration)
			if ok != tt.wantOK {
				t.Errorf("TimelineTimeAt(%d) ok = %v, want %v", tt.x, ok, tt.wantOK)
			}
		})
	}
}

func TestTimelineTimeAtEndpoints(t *testing.T) {
	const width = 100
	const duration = 200.0

	barWidth := timelineBarWidth(width, duration)

	got, ok := TimelineTimeAt(barOffsetX, width, duration)
	if !ok || got != 0 {
		t.Errorf("first cell = %v (ok=%v), want 0", got, ok)
	}

	got, ok = TimelineTimeAt(barOffsetX+barWidth-1, width, duration)
	if !ok || got != duration {
		t.Errorf("last cell = %v (ok=%v), want %v", got, ok, duration)
	}
}

func TestTimelineTimeAtZeroDuration(t *testing.T) {
	if _, ok := TimelineTimeAt(barOffsetX, 100, 0); ok {
		t.Error("expected ok=false with zero duration")
	}
}

func TestTimelineToleranceCoversNeighborCell(t *testing.T) {
	const width = 100
	const duration = 200.0

	tol := TimelineTolerance(width, duration)
	if tol <= 0 {
		t.Fatalf("tolerance = %v, want > 0", tol)
	}

	// A press on the cell next to a handle must land inside the tolerance.
	a, _ := TimelineTimeAt(barOffsetX+10, width, duration)
	b, _ := TimelineTimeAt(barOffsetX+11, width, duration)
	if b-a > tol {
		t.Errorf("one cell spans %v seconds, tolerance %v does not cover it", b-a, tol)
	}
}

func TestTimelineRenderHeight(t *testing.T) {
	sel, err := timeline.NewRange(10, 30)
	if err != nil {
		t.Fatal(err)
	}
	out := Timeline(TimelineState{
		Position:  15,
		Duration:  100,
		Selection: sel,
		Segments:  []timeline.Range{sel},
		CueStarts: []float64{5, 50},
	}, 100)

	if lines := strings.Count(out, "\n") + 1; lines != TimelineHeight {
		t.Errorf("rendered %d lines, want %d", lines, TimelineHeight)
	}
}

func TestTimelineRenderTooNarrow(t *testing.T) {
	if out := Timeline(TimelineState{Duration: 100}, 10); out != "" {
		t.Errorf("expected empty render for narrow width, got %q", out)
	}
}
