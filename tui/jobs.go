package tui

import (
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/clipforge-cli/db"
	"github.com/user/clipforge-cli/pipeline"
)

// jobProgressMsg carries a progress percentage from the running job.
type jobProgressMsg struct {
	job     *pipeline.Job
	percent int
}

// jobDoneMsg is sent when the job settles.
type jobDoneMsg struct {
	job    *pipeline.Job
	result pipeline.Result
	err    error
}

// watchJob returns a tea.Cmd that relays the next progress value, or the
// terminal state once the progress channel closes. The Update loop
// re-issues it after every jobProgressMsg, so the job stays bridged into
// the message stream until it settles.
func watchJob(job *pipeline.Job) tea.Cmd {
	return func() tea.Msg {
		if percent, ok := <-job.Progress(); ok {
			return jobProgressMsg{job: job, percent: percent}
		}
		<-job.Done()
		result, err := job.Result()
		return jobDoneMsg{job: job, result: result, err: err}
	}
}

// persistArtifact copies an export out of the engine's work directory,
// which is removed on exit, into the configured output directory. It
// falls back to the source's directory and, on copy failure, to the
// original path so the user still sees where the artifact went.
func (m *Model) persistArtifact(artifact string) string {
	destDir := ""
	if m.database != nil {
		destDir, _ = db.GetSetting(m.database, db.KeyOutputDir, "")
	}
	if destDir == "" {
		destDir = filepath.Dir(m.orc.Source())
	}

	dest := filepath.Join(destDir, filepath.Base(artifact))
	if err := copyFile(artifact, dest); err != nil {
		return artifact
	}
	return dest
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// jobLabel is the human name shown in the status bar and progress box.
func jobLabel(kind pipeline.Kind) string {
	switch kind {
	case pipeline.KindMerge:
		return "Merging"
	case pipeline.KindExtractAudio:
		return "Extracting audio"
	case pipeline.KindTranscribe:
		return "Generating subtitles"
	case pipeline.KindBurnSubtitles:
		return "Exporting"
	default:
		return string(kind)
	}
}
