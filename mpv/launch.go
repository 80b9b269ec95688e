package mpv

import (
	"os/exec"

	"github.com/user/clipforge-cli/deps"
)

// Launch starts mpv on the given media file with the IPC socket enabled
// and playback initially paused, so the editor controls when preview
// starts. The returned *exec.Cmd is used for shutdown.
func Launch(mediaPath string) (*exec.Cmd, error) {
	if err := deps.CheckMpv(); err != nil {
		return nil, err
	}

	cmd := exec.Command("mpv",
		"--input-ipc-server="+DefaultSocketPath,
		"--pause",
		"--keep-open=yes",
		mediaPath,
	)

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}
