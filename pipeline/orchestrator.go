// Package pipeline sequences the multi-step media flows (merge, audio
// extraction, subtitle generation, burned export) against the media engine
// and the transcription service. Jobs run asynchronously, never block the
// gesture path, and snapshot whatever model state they need at launch.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/user/clipforge-cli/subtitle"
	"github.com/user/clipforge-cli/timeline"
)

var (
	// ErrBusy rejects a job while another is in flight. The request is
	// not queued: the caller retries once the current job settles.
	ErrBusy = errors.New("pipeline: a job is already running")
	// ErrNoSource is returned when no media source is loaded.
	ErrNoSource = errors.New("pipeline: no source loaded")
	// ErrNoSegments is returned when merge is requested without committed
	// segments.
	ErrNoSegments = errors.New("pipeline: no committed segments")
	// ErrNoSubtitles is returned when export is requested with an empty
	// subtitle track.
	ErrNoSubtitles = errors.New("pipeline: subtitle track is empty")
)

// MediaEngine is the consumer-side contract of the media collaborator.
type MediaEngine interface {
	Trim(ctx context.Context, source string, r timeline.Range) (string, error)
	Concat(ctx context.Context, parts []string) (string, error)
	ExtractAudio(ctx context.Context, source string) (string, error)
	BurnSubtitles(ctx context.Context, source, subtitleText string) (string, error)
	Probe(ctx context.Context, source string) (float64, error)
}

// Transcriber is the consumer-side contract of the speech-to-text service.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) (string, error)
}

// Orchestrator admits at most one job at a time over the shared active
// source, runs the composite flows, and writes results back into the
// timeline model and subtitle track only on full success.
type Orchestrator struct {
	engine      MediaEngine
	transcriber Transcriber
	model       *timeline.Model
	track       *subtitle.Track
	events      *EventBus

	mu     sync.Mutex
	source string
	active *Job
}

// NewOrchestrator wires the collaborators for one editing session.
func NewOrchestrator(engine MediaEngine, transcriber Transcriber, model *timeline.Model, track *subtitle.Track) *Orchestrator {
	return &Orchestrator{
		engine:      engine,
		transcriber: transcriber,
		model:       model,
		track:       track,
		events:      NewEventBus(500),
	}
}

// Events exposes the job event stream for UI polling.
func (o *Orchestrator) Events() *EventBus {
	return o.events
}

// SetSource records the active media source artifact.
func (o *Orchestrator) SetSource(path string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.source = path
}

// Source returns the active media source artifact.
func (o *Orchestrator) Source() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.source
}

// ActiveJob returns the in-flight job, or nil when idle.
func (o *Orchestrator) ActiveJob() *Job {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active
}

// ReportProgress routes a collaborator progress value, unmodified, to the
// in-flight job. Values arriving between jobs are dropped.
func (o *Orchestrator) ReportProgress(percent int) {
	o.mu.Lock()
	job := o.active
	o.mu.Unlock()
	if job != nil {
		job.reportProgress(percent)
	}
}

// StartMerge trims the committed segments in start order, concatenates
// them, and swaps the result in as the new active source. The segment list
// resets and the duration is re-queried from the merged output.
func (o *Orchestrator) StartMerge(ctx context.Context) (*Job, error) {
	segments := o.model.Segments()
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}

	return o.start(ctx, KindMerge, func(ctx context.Context) (Result, error) {
		merged, err := o.mergeArtifact(ctx, segments)
		if err != nil {
			return Result{}, err
		}

		duration, err := o.engine.Probe(ctx, merged)
		if err != nil {
			return Result{}, err
		}

		// Swap only after every step succeeded: no partial source swap.
		o.SetSource(merged)
		o.model.Reset()
		if err := o.model.SetDuration(duration); err != nil {
			return Result{}, err
		}
		return Result{ArtifactPath: merged}, nil
	})
}

// StartConvertToAudio extracts a 16 kHz mono audio artifact. With committed
// segments present it merges into a temporary artifact first, without
// touching the active source.
func (o *Orchestrator) StartConvertToAudio(ctx context.Context) (*Job, error) {
	return o.start(ctx, KindExtractAudio, func(ctx context.Context) (Result, error) {
		audio, err := o.audioArtifact(ctx)
		if err != nil {
			return Result{}, err
		}
		return Result{ArtifactPath: audio}, nil
	})
}

// StartGenerateSubtitles runs audio extraction, remote transcription, and
// interchange parsing, replacing the subtitle track only when the whole
// chain succeeded.
func (o *Orchestrator) StartGenerateSubtitles(ctx context.Context, language string) (*Job, error) {
	return o.start(ctx, KindTranscribe, func(ctx context.Context) (Result, error) {
		audio, err := o.audioArtifact(ctx)
		if err != nil {
			return Result{}, err
		}

		text, err := o.transcriber.Transcribe(ctx, audio, language)
		if err != nil {
			return Result{}, err
		}

		cues, err := subtitle.Parse(text)
		if err != nil {
			return Result{}, err
		}
		if err := o.track.ReplaceAll(cues); err != nil {
			return Result{}, err
		}
		return Result{ArtifactPath: audio, SubtitleText: text}, nil
	})
}

// StartExportBurned renders the subtitle track into the active source and
// emits the burned video plus the serialized subtitle text.
func (o *Orchestrator) StartExportBurned(ctx context.Context) (*Job, error) {
	if o.track.Len() == 0 {
		return nil, ErrNoSubtitles
	}

	return o.start(ctx, KindBurnSubtitles, func(ctx context.Context) (Result, error) {
		text := o.track.SRT()
		burned, err := o.engine.BurnSubtitles(ctx, o.Source(), text)
		if err != nil {
			return Result{}, err
		}
		return Result{ArtifactPath: burned, SubtitleText: text}, nil
	})
}

// start admits one job, runs the flow asynchronously, and settles the
// handle exactly once.
func (o *Orchestrator) start(ctx context.Context, kind Kind, flow func(ctx context.Context) (Result, error)) (*Job, error) {
	o.mu.Lock()
	if o.active != nil {
		o.mu.Unlock()
		return nil, ErrBusy
	}
	if o.source == "" {
		o.mu.Unlock()
		return nil, ErrNoSource
	}
	job := newJob(kind)
	o.active = job
	o.mu.Unlock()

	o.events.Publish(Event{
		JobID: job.ID, Kind: kind, Type: EventTypeStatus,
		Status: StatusPending, Message: "Job admitted",
	})

	go func() {
		job.markRunning()
		o.events.Publish(Event{
			JobID: job.ID, Kind: kind, Type: EventTypeStatus,
			Status: StatusRunning, Message: "Job started",
		})

		// Jobs run to completion or failure; no cancellation mid-flight.
		result, err := flow(ctx)

		o.mu.Lock()
		o.active = nil
		o.mu.Unlock()

		job.finish(result, err)
		if err != nil {
			o.events.Publish(Event{
				JobID: job.ID, Kind: kind, Type: EventTypeError,
				Status: StatusFailed, Message: err.Error(),
			})
			return
		}
		o.events.Publish(Event{
			JobID: job.ID, Kind: kind, Type: EventTypeResult,
			Status: StatusSucceeded, Path: result.ArtifactPath,
		})
	}()

	return job, nil
}

// mergeArtifact trims each segment and concatenates the pieces. Segments
// are stably sorted by start time; ties keep their insertion order.
func (o *Orchestrator) mergeArtifact(ctx context.Context, segments []timeline.Range) (string, error) {
	sorted := make([]timeline.Range, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	source := o.Source()
	parts := make([]string, 0, len(sorted))
	for _, seg := range sorted {
		artifact, err := o.engine.Trim(ctx, source, seg)
		if err != nil {
			return "", fmt.Errorf("trim segment [%g, %g): %w", seg.Start, seg.End, err)
		}
		parts = append(parts, artifact)
	}

	return o.engine.Concat(ctx, parts)
}

// audioArtifact runs the convert-to-audio sub-flow: merge into a temporary
// artifact when segments exist (the active source is left alone), then
// extract audio.
func (o *Orchestrator) audioArtifact(ctx context.Context) (string, error) {
	source := o.Source()
	if segments := o.model.Segments(); len(segments) > 0 {
		merged, err := o.mergeArtifact(ctx, segments)
		if err != nil {
			return "", err
		}
		source = merged
	}
	return o.engine.ExtractAudio(ctx, source)
}
