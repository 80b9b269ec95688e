package subtitle

import (
	"testing"

	"github.com/user/clipforge-cli/timeline"
)

func sampleCues() []Cue {
	return []Cue{
		{Range: timeline.Range{Start: 0, End: 2}, Text: "one"},
		{Range: timeline.Range{Start: 1, End: 3}, Text: "two"}, // overlaps cue 0
		{Range: timeline.Range{Start: 5, End: 6}, Text: "three"},
	}
}

func TestActiveCueAt(t *testing.T) {
	tr := NewTrack()
	if err := tr.ReplaceAll(sampleCues()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	tests := []struct {
		t         float64
		wantText  string
		wantIndex int
		wantOK    bool
	}{
		{0, "one", 0, true},
		{1.5, "one", 0, true}, // overlap: first insertion-order match wins
		{2.5, "two", 1, true},
		{4, "", -1, false},
		{5.5, "three", 2, true},
		{6, "", -1, false}, // half-open end
	}

	for _, tt := range tests {
		cue, i, ok := tr.ActiveCueAt(tt.t)
		if ok != tt.wantOK || i != tt.wantIndex {
			t.Errorf("ActiveCueAt(%g) = (%d, %v), want (%d, %v)", tt.t, i, ok, tt.wantIndex, tt.wantOK)
			continue
		}
		if ok && cue.Text != tt.wantText {
			t.Errorf("ActiveCueAt(%g).Text = %q, want %q", tt.t, cue.Text, tt.wantText)
		}
	}
}

func TestSetTextLeavesRange(t *testing.T) {
	tr := NewTrack()
	if err := tr.ReplaceAll(sampleCues()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	if err := tr.SetText(1, "edited"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	cues := tr.Cues()
	if cues[1].Text != "edited" {
		t.Fatalf("text = %q", cues[1].Text)
	}
	if cues[1].Range != (timeline.Range{Start: 1, End: 3}) {
		t.Fatalf("range mutated: %+v", cues[1].Range)
	}

	if err := tr.SetText(99, "nope"); err == nil {
		t.Fatal("SetText out of range succeeded")
	}
}

func TestSetTextAt(t *testing.T) {
	tr := NewTrack()
	if err := tr.ReplaceAll(sampleCues()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	if !tr.SetTextAt(5.5, "edited") {
		t.Fatal("SetTextAt(5.5) did not match a cue")
	}
	if got := tr.Cues()[2].Text; got != "edited" {
		t.Fatalf("text = %q", got)
	}

	// No active cue: no-op.
	if tr.SetTextAt(4, "ghost") {
		t.Fatal("SetTextAt(4) edited with no active cue")
	}
}

func TestReplaceAllIsAtomic(t *testing.T) {
	tr := NewTrack()
	if err := tr.ReplaceAll(sampleCues()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	bad := []Cue{
		{Range: timeline.Range{Start: 0, End: 1}, Text: "ok"},
		{Range: timeline.Range{Start: 3, End: 3}, Text: "zero span"},
	}
	if err := tr.ReplaceAll(bad); err == nil {
		t.Fatal("ReplaceAll accepted invalid cue")
	}

	// Previous cues retained untouched.
	if got := tr.Len(); got != 3 {
		t.Fatalf("len after rejected replace = %d, want 3", got)
	}
	if got := tr.Cues()[0].Text; got != "one" {
		t.Fatalf("cues mutated: %q", got)
	}
}

func TestReplaceAllCopiesInput(t *testing.T) {
	tr := NewTrack()
	in := sampleCues()
	if err := tr.ReplaceAll(in); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	in[0].Text = "mutated"
	if got := tr.Cues()[0].Text; got != "one" {
		t.Fatalf("track shares caller slice: %q", got)
	}
}

func TestTrackSRTUsesStoredOrder(t *testing.T) {
	tr := NewTrack()
	cues := []Cue{
		{Range: timeline.Range{Start: 10, End: 12}, Text: "later"},
		{Range: timeline.Range{Start: 0, End: 2}, Text: "earlier"},
	}
	if err := tr.ReplaceAll(cues); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	parsed, err := Parse(tr.SRT())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed[0].Text != "later" || parsed[1].Text != "earlier" {
		t.Fatalf("serialization reordered cues: %+v", parsed)
	}
}
