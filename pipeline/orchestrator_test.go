package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/user/clipforge-cli/subtitle"
	"github.com/user/clipforge-cli/timeline"
)

// fakeEngine scripts media operations and records the call order.
type fakeEngine struct {
	mu       sync.Mutex
	calls    []string
	trims    []timeline.Range
	concats  [][]string
	duration float64

	trimErr    error
	concatErr  error
	extractErr error
	burnErr    error
	blockBurn  chan struct{} // when set, BurnSubtitles waits for a signal
}

func (e *fakeEngine) record(call string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, call)
}

func (e *fakeEngine) Trim(ctx context.Context, source string, r timeline.Range) (string, error) {
	e.record(fmt.Sprintf("trim %g-%g", r.Start, r.End))
	e.mu.Lock()
	e.trims = append(e.trims, r)
	e.mu.Unlock()
	if e.trimErr != nil {
		return "", e.trimErr
	}
	return fmt.Sprintf("/tmp/trim-%g-%g.mp4", r.Start, r.End), nil
}

func (e *fakeEngine) Concat(ctx context.Context, parts []string) (string, error) {
	e.record("concat")
	e.mu.Lock()
	e.concats = append(e.concats, append([]string(nil), parts...))
	e.mu.Unlock()
	if e.concatErr != nil {
		return "", e.concatErr
	}
	return "/tmp/merged.mp4", nil
}

func (e *fakeEngine) ExtractAudio(ctx context.Context, source string) (string, error) {
	e.record("extract " + source)
	if e.extractErr != nil {
		return "", e.extractErr
	}
	return "/tmp/audio.wav", nil
}

func (e *fakeEngine) BurnSubtitles(ctx context.Context, source, subtitleText string) (string, error) {
	e.record("burn " + source)
	if e.blockBurn != nil {
		<-e.blockBurn
	}
	if e.burnErr != nil {
		return "", e.burnErr
	}
	return "/tmp/burned.mp4", nil
}

func (e *fakeEngine) Probe(ctx context.Context, source string) (float64, error) {
	e.record("probe " + source)
	if e.duration == 0 {
		return 42, nil
	}
	return e.duration, nil
}

// fakeTranscriber returns scripted SRT text or an error.
type fakeTranscriber struct {
	text     string
	err      error
	language string
}

func (t *fakeTranscriber) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	t.language = language
	if t.err != nil {
		return "", t.err
	}
	return t.text, nil
}

func newSession(t *testing.T) (*Orchestrator, *fakeEngine, *fakeTranscriber, *timeline.Model, *subtitle.Track) {
	t.Helper()

	model := timeline.NewModel()
	if err := model.SetDuration(100); err != nil {
		t.Fatalf("SetDuration: %v", err)
	}
	track := subtitle.NewTrack()
	eng := &fakeEngine{}
	tr := &fakeTranscriber{text: "1\n00:00:00,000 --> 00:00:02,000\ngenerated\n"}

	o := NewOrchestrator(eng, tr, model, track)
	o.SetSource("/videos/source.mp4")
	return o, eng, tr, model, track
}

func waitJob(t *testing.T, job *Job) (Result, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return job.Wait(ctx)
}

func TestMergeSortsSegmentsBeforeTrim(t *testing.T) {
	o, eng, _, model, _ := newSession(t)

	// Committed out of order: (10,20) then (0,5).
	for _, r := range []timeline.Range{{Start: 10, End: 20}, {Start: 0, End: 5}} {
		if err := model.CommitSegment(r); err != nil {
			t.Fatalf("CommitSegment: %v", err)
		}
	}

	job, err := o.StartMerge(context.Background())
	if err != nil {
		t.Fatalf("StartMerge: %v", err)
	}
	result, err := waitJob(t, job)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	// Trim calls happen in start-ascending order.
	if len(eng.trims) != 2 || eng.trims[0].Start != 0 || eng.trims[1].Start != 10 {
		t.Fatalf("trim order = %v", eng.trims)
	}
	// Concat receives the trimmed artifacts in that same order.
	wantParts := []string{"/tmp/trim-0-5.mp4", "/tmp/trim-10-20.mp4"}
	if len(eng.concats) != 1 {
		t.Fatalf("concats = %v", eng.concats)
	}
	for i, p := range wantParts {
		if eng.concats[0][i] != p {
			t.Fatalf("concat parts = %v, want %v", eng.concats[0], wantParts)
		}
	}

	// Source swapped, segments cleared, duration re-queried.
	if result.ArtifactPath != "/tmp/merged.mp4" || o.Source() != "/tmp/merged.mp4" {
		t.Fatalf("source = %q, result = %+v", o.Source(), result)
	}
	if got := model.Segments(); len(got) != 0 {
		t.Fatalf("segments after merge = %v", got)
	}
	if got := model.Duration(); got != 42 {
		t.Fatalf("duration = %g, want re-probed 42", got)
	}
}

func TestMergeSnapshotIgnoresLaterMutations(t *testing.T) {
	o, eng, _, model, _ := newSession(t)

	if err := model.CommitSegment(timeline.Range{Start: 10, End: 20}); err != nil {
		t.Fatalf("CommitSegment: %v", err)
	}

	// StartMerge snapshots the segment list before this mutation.
	job, err := o.StartMerge(context.Background())
	if err != nil {
		t.Fatalf("StartMerge: %v", err)
	}
	_ = model.CommitSegment(timeline.Range{Start: 50, End: 60})

	if _, err := waitJob(t, job); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if len(eng.trims) != 1 || eng.trims[0].Start != 10 {
		t.Fatalf("trims = %v, want only the snapshotted segment", eng.trims)
	}
}

func TestMergeRequiresSegments(t *testing.T) {
	o, _, _, _, _ := newSession(t)
	if _, err := o.StartMerge(context.Background()); !errors.Is(err, ErrNoSegments) {
		t.Fatalf("error = %v, want ErrNoSegments", err)
	}
}

func TestMergeFailureLeavesSourceUntouched(t *testing.T) {
	o, eng, _, model, _ := newSession(t)
	eng.concatErr = errors.New("container mismatch")

	if err := model.CommitSegment(timeline.Range{Start: 0, End: 5}); err != nil {
		t.Fatalf("CommitSegment: %v", err)
	}

	job, err := o.StartMerge(context.Background())
	if err != nil {
		t.Fatalf("StartMerge: %v", err)
	}
	if _, err := waitJob(t, job); err == nil {
		t.Fatal("merge succeeded, want failure")
	}

	if job.Status() != StatusFailed {
		t.Fatalf("status = %s, want failed", job.Status())
	}
	if o.Source() != "/videos/source.mp4" {
		t.Fatalf("source swapped on failure: %q", o.Source())
	}
	if got := model.Segments(); len(got) != 1 {
		t.Fatalf("segments mutated on failure: %v", got)
	}
}

func TestConvertToAudioUsesFullSourceWithoutSegments(t *testing.T) {
	o, eng, _, _, _ := newSession(t)

	job, err := o.StartConvertToAudio(context.Background())
	if err != nil {
		t.Fatalf("StartConvertToAudio: %v", err)
	}
	result, err := waitJob(t, job)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if result.ArtifactPath != "/tmp/audio.wav" {
		t.Fatalf("result = %+v", result)
	}
	if len(eng.trims) != 0 {
		t.Fatalf("unexpected trims: %v", eng.trims)
	}
}

func TestConvertToAudioMergesWithoutSwappingSource(t *testing.T) {
	o, eng, _, model, _ := newSession(t)

	if err := model.CommitSegment(timeline.Range{Start: 5, End: 15}); err != nil {
		t.Fatalf("CommitSegment: %v", err)
	}

	job, err := o.StartConvertToAudio(context.Background())
	if err != nil {
		t.Fatalf("StartConvertToAudio: %v", err)
	}
	if _, err := waitJob(t, job); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	// The temporary merge feeds extraction but the session source stays.
	if len(eng.concats) != 1 {
		t.Fatalf("concats = %v", eng.concats)
	}
	if o.Source() != "/videos/source.mp4" {
		t.Fatalf("source = %q, want untouched", o.Source())
	}
	if got := model.Segments(); len(got) != 1 {
		t.Fatalf("segments = %v, want untouched", got)
	}
}

func TestGenerateSubtitlesReplacesTrack(t *testing.T) {
	o, _, tr, _, track := newSession(t)

	job, err := o.StartGenerateSubtitles(context.Background(), "fr")
	if err != nil {
		t.Fatalf("StartGenerateSubtitles: %v", err)
	}
	if _, err := waitJob(t, job); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if tr.language != "fr" {
		t.Fatalf("language = %q", tr.language)
	}
	cues := track.Cues()
	if len(cues) != 1 || cues[0].Text != "generated" {
		t.Fatalf("cues = %+v", cues)
	}
}

func TestGenerateSubtitlesFailureKeepsTrack(t *testing.T) {
	o, _, tr, _, track := newSession(t)

	existing := []subtitle.Cue{{Range: timeline.Range{Start: 0, End: 1}, Text: "keep me"}}
	if err := track.ReplaceAll(existing); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	tr.err = errors.New("service unreachable")

	job, err := o.StartGenerateSubtitles(context.Background(), "en")
	if err != nil {
		t.Fatalf("StartGenerateSubtitles: %v", err)
	}
	if _, err := waitJob(t, job); err == nil {
		t.Fatal("generate succeeded, want failure")
	}

	if job.Status() != StatusFailed {
		t.Fatalf("status = %s, want failed", job.Status())
	}
	cues := track.Cues()
	if len(cues) != 1 || cues[0].Text != "keep me" {
		t.Fatalf("track mutated on failure: %+v", cues)
	}
}

func TestGenerateSubtitlesMalformedTextKeepsTrack(t *testing.T) {
	o, _, tr, _, track := newSession(t)
	tr.text = "complete garbage"

	job, err := o.StartGenerateSubtitles(context.Background(), "en")
	if err != nil {
		t.Fatalf("StartGenerateSubtitles: %v", err)
	}
	_, err = waitJob(t, job)
	if !errors.Is(err, subtitle.ErrNoParsableCues) {
		t.Fatalf("error = %v, want ErrNoParsableCues", err)
	}
	if track.Len() != 0 {
		t.Fatalf("track mutated: %v", track.Cues())
	}
}

func TestExportRequiresSubtitles(t *testing.T) {
	o, _, _, _, _ := newSession(t)
	if _, err := o.StartExportBurned(context.Background()); !errors.Is(err, ErrNoSubtitles) {
		t.Fatalf("error = %v, want ErrNoSubtitles", err)
	}
}

func TestExportEmitsVideoAndSubtitleText(t *testing.T) {
	o, _, _, _, track := newSession(t)

	cues := []subtitle.Cue{{Range: timeline.Range{Start: 0, End: 2}, Text: "hello"}}
	if err := track.ReplaceAll(cues); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	job, err := o.StartExportBurned(context.Background())
	if err != nil {
		t.Fatalf("StartExportBurned: %v", err)
	}
	result, err := waitJob(t, job)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	if result.ArtifactPath != "/tmp/burned.mp4" {
		t.Fatalf("artifact = %q", result.ArtifactPath)
	}
	if result.SubtitleText != subtitle.Marshal(cues) {
		t.Fatalf("subtitle text = %q", result.SubtitleText)
	}
}

func TestBusyGateRejectsSecondJob(t *testing.T) {
	o, eng, _, _, track := newSession(t)

	if err := track.ReplaceAll([]subtitle.Cue{{Range: timeline.Range{Start: 0, End: 2}, Text: "x"}}); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	eng.blockBurn = make(chan struct{})

	first, err := o.StartExportBurned(context.Background())
	if err != nil {
		t.Fatalf("first export: %v", err)
	}

	// Wait until the flow is actually inside the engine call.
	deadline := time.After(2 * time.Second)
	for {
		eng.mu.Lock()
		started := len(eng.calls) > 0
		eng.mu.Unlock()
		if started {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first job never reached the engine")
		case <-time.After(time.Millisecond):
		}
	}

	// Second request of any kind is rejected, not queued.
	if _, err := o.StartExportBurned(context.Background()); !errors.Is(err, ErrBusy) {
		t.Fatalf("second export error = %v, want ErrBusy", err)
	}
	if _, err := o.StartConvertToAudio(context.Background()); !errors.Is(err, ErrBusy) {
		t.Fatalf("convert during export error = %v, want ErrBusy", err)
	}

	close(eng.blockBurn)
	if _, err := waitJob(t, first); err != nil {
		t.Fatalf("first export failed: %v", err)
	}

	// After settlement a repeat request is admitted again.
	second, err := o.StartExportBurned(context.Background())
	if err != nil {
		t.Fatalf("repeat export after settle: %v", err)
	}
	if _, err := waitJob(t, second); err != nil {
		t.Fatalf("repeat export failed: %v", err)
	}
}

func TestStartRequiresSource(t *testing.T) {
	model := timeline.NewModel()
	track := subtitle.NewTrack()
	o := NewOrchestrator(&fakeEngine{}, &fakeTranscriber{}, model, track)

	if _, err := o.StartConvertToAudio(context.Background()); !errors.Is(err, ErrNoSource) {
		t.Fatalf("error = %v, want ErrNoSource", err)
	}
}

func TestProgressRoutesToActiveJob(t *testing.T) {
	o, eng, _, _, track := newSession(t)
	if err := track.ReplaceAll([]subtitle.Cue{{Range: timeline.Range{Start: 0, End: 2}, Text: "x"}}); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	eng.blockBurn = make(chan struct{})

	job, err := o.StartExportBurned(context.Background())
	if err != nil {
		t.Fatalf("StartExportBurned: %v", err)
	}

	// Wait for the running state so reports are accepted.
	deadline := time.After(2 * time.Second)
	for job.Status() != StatusRunning {
		select {
		case <-deadline:
			t.Fatal("job never started running")
		case <-time.After(time.Millisecond):
		}
	}

	o.ReportProgress(37)
	if got := job.Percent(); got != 37 {
		t.Fatalf("percent = %d, want 37", got)
	}
	select {
	case p := <-job.Progress():
		if p != 37 {
			t.Fatalf("progress value = %d, want 37", p)
		}
	case <-time.After(time.Second):
		t.Fatal("no progress value delivered")
	}

	close(eng.blockBurn)
	if _, err := waitJob(t, job); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	// Progress after settlement is dropped, not sent on a closed channel.
	o.ReportProgress(99)

	events := o.Events().Since(0)
	var sawResult bool
	for _, ev := range events {
		if ev.Type == EventTypeResult && ev.JobID == job.ID {
			sawResult = true
		}
	}
	if !sawResult {
		t.Fatalf("no result event published: %+v", events)
	}
}
