package pipeline

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Kind identifies what a job does against the external collaborators.
type Kind string

const (
	KindMerge         Kind = "merge"
	KindExtractAudio  Kind = "extract-audio"
	KindTranscribe    Kind = "transcribe"
	KindBurnSubtitles Kind = "burn-subtitles"
)

// Status is the job lifecycle position.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Result carries the artifacts a finished job produced.
type Result struct {
	// ArtifactPath is the primary output: merged video, extracted audio,
	// or subtitle-burned export.
	ArtifactPath string
	// SubtitleText is the raw interchange text, set by the transcribe and
	// export flows.
	SubtitleText string
}

// Job is the future-style handle for one orchestrated operation. The
// terminal state is observed exactly once: Done is closed when the job
// settles and Result is stable from then on. Progress is a separate
// channel carrying 0-100 values straight from the collaborators.
type Job struct {
	ID   string
	Kind Kind

	progress chan int
	done     chan struct{}
	settle   sync.Once

	mu       sync.Mutex
	status   Status
	percent  int
	result   Result
	err      error
}

func newJob(kind Kind) *Job {
	return &Job{
		ID:       uuid.NewString(),
		Kind:     kind,
		status:   StatusPending,
		progress: make(chan int, 32),
		done:     make(chan struct{}),
	}
}

// Done is closed when the job reaches Succeeded or Failed.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Progress yields progress values while the job runs and is closed on
// settlement. Slow consumers may miss intermediate values, never the
// terminal state.
func (j *Job) Progress() <-chan int {
	return j.progress
}

// Status returns the current lifecycle position.
func (j *Job) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// Percent returns the last progress value observed.
func (j *Job) Percent() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.percent
}

// Result returns the outcome. It is meaningful only after Done is closed.
func (j *Job) Result() (Result, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result, j.err
}

// Wait blocks until the job settles or ctx expires.
func (j *Job) Wait(ctx context.Context) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-j.done:
		return j.Result()
	}
}

// markRunning flips the job into the running state.
func (j *Job) markRunning() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.status = StatusRunning
}

// reportProgress records and forwards one progress value without blocking.
func (j *Job) reportProgress(percent int) {
	j.mu.Lock()
	if j.status != StatusRunning {
		j.mu.Unlock()
		return
	}
	j.percent = percent
	j.mu.Unlock()

	select {
	case j.progress <- percent:
	default:
	}
}

// finish settles the job exactly once.
func (j *Job) finish(result Result, err error) {
	j.settle.Do(func() {
		j.mu.Lock()
		if err != nil {
			j.status = StatusFailed
			j.err = err
		} else {
			j.status = StatusSucceeded
			j.result = result
			j.percent = 100
		}
		j.mu.Unlock()

		close(j.progress)
		close(j.done)
	})
}
