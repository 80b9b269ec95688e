// Package engine adapts ffmpeg and ffprobe into the media operations the
// editing session needs: trim, concat, audio extraction, subtitle burn-in,
// and duration probing. Commands run through an injectable runner so tests
// never spawn processes.
package engine

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/user/clipforge-cli/timeline"
)

// OpError captures a failed media operation with its command context.
type OpError struct {
	Op       string
	Command  string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

// Error formats the failure for logs and the UI failure line.
func (e *OpError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("engine %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("engine %s: %s exited %d: %s", e.Op, e.Command, e.ExitCode, strings.TrimSpace(e.Stderr))
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *OpError) Unwrap() error {
	return e.Err
}

// runResult is the captured output of one external command.
type runResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// commandRunner abstracts process execution. onStdoutLine, when non-nil,
// receives stdout lines as they arrive so progress can be reported live.
type commandRunner interface {
	Run(ctx context.Context, onStdoutLine func(string), name string, args ...string) (runResult, error)
}

// execRunner executes commands via os/exec, streaming stdout line by line.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, onStdoutLine func(string), name string, args ...string) (runResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return runResult{ExitCode: -1}, err
	}
	if err := cmd.Start(); err != nil {
		return runResult{ExitCode: -1, Stderr: stderr.String()}, err
	}

	var stdout strings.Builder
	scanner := bufio.NewScanner(stdoutPipe)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		stdout.WriteString(line)
		stdout.WriteString("\n")
		if onStdoutLine != nil {
			onStdoutLine(line)
		}
	}

	runErr := cmd.Wait()
	result := runResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if runErr != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, runErr
	}
	return result, nil
}

// FFmpeg runs the real media operations. Artifacts land in a private work
// directory removed by Cleanup.
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	runner      commandRunner
	onProgress  func(percent int)

	workDir   string
	mkdirTemp func(dir, pattern string) (string, error)
	removeAll func(path string) error
	writeFile func(name string, data []byte, perm os.FileMode) error
}

// NewFFmpeg constructs the production adapter with OS dependencies.
func NewFFmpeg() *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  "ffmpeg",
		ffprobePath: "ffprobe",
		runner:      execRunner{},
		mkdirTemp:   os.MkdirTemp,
		removeAll:   os.RemoveAll,
		writeFile:   os.WriteFile,
	}
}

// SetProgressFunc installs the 0-100 progress callback. Values come straight
// from ffmpeg's own reporting against the known output span.
func (f *FFmpeg) SetProgressFunc(fn func(percent int)) {
	f.onProgress = fn
}

// Cleanup removes every artifact produced so far.
func (f *FFmpeg) Cleanup() error {
	if f.workDir == "" {
		return nil
	}
	err := f.removeAll(f.workDir)
	f.workDir = ""
	return err
}

// Trim cuts [r.Start, r.End) out of source into a new artifact.
func (f *FFmpeg) Trim(ctx context.Context, source string, r timeline.Range) (string, error) {
	out, err := f.artifactPath("trim", filepath.Ext(source))
	if err != nil {
		return "", &OpError{Op: "trim", Err: err}
	}

	args := []string{
		"-hide_banner", "-nostdin", "-y",
		"-ss", formatSeconds(r.Start),
		"-i", source,
		"-t", formatSeconds(r.Span()),
		"-c", "copy",
		"-progress", "pipe:1", "-nostats",
		out,
	}
	if err := f.run(ctx, "trim", r.Span(), args); err != nil {
		return "", err
	}
	return out, nil
}

// Concat joins the given artifacts in order using the concat demuxer.
func (f *FFmpeg) Concat(ctx context.Context, parts []string) (string, error) {
	if len(parts) == 0 {
		return "", &OpError{Op: "concat", Err: errors.New("no input artifacts")}
	}

	var list strings.Builder
	for _, p := range parts {
		fmt.Fprintf(&list, "file '%s'\n", p)
	}
	listPath, err := f.artifactPath("concat-list", ".txt")
	if err != nil {
		return "", &OpError{Op: "concat", Err: err}
	}
	if err := f.writeFile(listPath, []byte(list.String()), 0o644); err != nil {
		return "", &OpError{Op: "concat", Err: err}
	}

	out, err := f.artifactPath("merged", filepath.Ext(parts[0]))
	if err != nil {
		return "", &OpError{Op: "concat", Err: err}
	}

	// Total span is only a progress hint; probe failures just mute it.
	var span float64
	for _, p := range parts {
		if d, err := f.Probe(ctx, p); err == nil {
			span += d
		}
	}

	args := []string{
		"-hide_banner", "-nostdin", "-y",
		"-f", "concat", "-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-progress", "pipe:1", "-nostats",
		out,
	}
	if err := f.run(ctx, "concat", span, args); err != nil {
		return "", err
	}
	return out, nil
}

// ExtractAudio converts source into 16 kHz mono PCM WAV, the shape the
// transcription service expects.
func (f *FFmpeg) ExtractAudio(ctx context.Context, source string) (string, error) {
	out, err := f.artifactPath("audio", ".wav")
	if err != nil {
		return "", &OpError{Op: "extract-audio", Err: err}
	}

	span, _ := f.Probe(ctx, source)
	args := []string{
		"-hide_banner", "-nostdin", "-y",
		"-i", source,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		"-progress", "pipe:1", "-nostats",
		out,
	}
	if err := f.run(ctx, "extract-audio", span, args); err != nil {
		return "", err
	}
	return out, nil
}

// BurnSubtitles renders subtitleText (SRT) into the video frames of source.
func (f *FFmpeg) BurnSubtitles(ctx context.Context, source, subtitleText string) (string, error) {
	subsPath, err := f.artifactPath("burn", ".srt")
	if err != nil {
		return "", &OpError{Op: "burn-subtitles", Err: err}
	}
	if err := f.writeFile(subsPath, []byte(subtitleText), 0o644); err != nil {
		return "", &OpError{Op: "burn-subtitles", Err: err}
	}

	out, err := f.artifactPath("burned", filepath.Ext(source))
	if err != nil {
		return "", &OpError{Op: "burn-subtitles", Err: err}
	}

	span, _ := f.Probe(ctx, source)
	args := []string{
		"-hide_banner", "-nostdin", "-y",
		"-i", source,
		"-vf", "subtitles=" + subsPath,
		"-c:a", "copy",
		"-progress", "pipe:1", "-nostats",
		out,
	}
	if err := f.run(ctx, "burn-subtitles", span, args); err != nil {
		return "", err
	}
	return out, nil
}

// Probe returns the container duration of source in seconds.
func (f *FFmpeg) Probe(ctx context.Context, source string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		source,
	}

	result, runErr := f.runner.Run(ctx, nil, f.ffprobePath, args...)
	if runErr != nil {
		return 0, &OpError{
			Op: "probe", Command: f.ffprobePath, Args: args,
			ExitCode: result.ExitCode, Stderr: result.Stderr, Err: runErr,
		}
	}

	d, err := strconv.ParseFloat(strings.TrimSpace(result.Stdout), 64)
	if err != nil {
		return 0, &OpError{
			Op: "probe", Command: f.ffprobePath, Args: args,
			Stderr: result.Stderr, Err: fmt.Errorf("unparsable duration %q", result.Stdout),
		}
	}
	return d, nil
}

// run executes one ffmpeg invocation, forwarding progress against span.
func (f *FFmpeg) run(ctx context.Context, op string, span float64, args []string) error {
	result, runErr := f.runner.Run(ctx, f.progressLine(span), f.ffmpegPath, args...)
	if runErr != nil {
		return &OpError{
			Op: op, Command: f.ffmpegPath, Args: args,
			ExitCode: result.ExitCode, Stderr: result.Stderr, Err: runErr,
		}
	}
	return nil
}

// progressLine parses ffmpeg -progress key=value output into 0-100 values.
// With no known span only the terminal progress=end marker is reported.
func (f *FFmpeg) progressLine(span float64) func(string) {
	if f.onProgress == nil {
		return nil
	}
	return func(line string) {
		if strings.TrimSpace(line) == "progress=end" {
			f.onProgress(100)
			return
		}
		if span <= 0 {
			return
		}
		value, ok := strings.CutPrefix(strings.TrimSpace(line), "out_time_us=")
		if !ok {
			return
		}
		us, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return
		}
		percent := int(float64(us) / 1e6 / span * 100)
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}
		f.onProgress(percent)
	}
}

// artifactPath reserves a unique output path inside the work directory.
func (f *FFmpeg) artifactPath(stem, ext string) (string, error) {
	if f.workDir == "" {
		dir, err := f.mkdirTemp("", "clipforge-*")
		if err != nil {
			return "", err
		}
		f.workDir = dir
	}
	if ext == "" {
		ext = ".mp4"
	}
	name := fmt.Sprintf("%s-%s%s", stem, uuid.NewString()[:8], ext)
	return filepath.Join(f.workDir, name), nil
}

// formatSeconds renders a seconds value for ffmpeg CLI flags.
func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}
