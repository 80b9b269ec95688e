// Package deps verifies the external tools the editor shells out to.
package deps

import (
	"fmt"
	"os/exec"
)

const (
	MpvInstallURL    = "https://mpv.io/installation/"
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
)

// DependencyError names a missing tool and where to get it.
type DependencyError struct {
	Name       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// CheckMpv checks that mpv is available in PATH.
func CheckMpv() error {
	if _, err := exec.LookPath("mpv"); err != nil {
		return &DependencyError{Name: "mpv", InstallURL: MpvInstallURL}
	}
	return nil
}

// CheckFfmpeg checks that ffmpeg is available in PATH.
func CheckFfmpeg() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return &DependencyError{Name: "ffmpeg", InstallURL: FfmpegInstallURL}
	}
	return nil
}

// CheckFfprobe checks that ffprobe is available in PATH. It ships with
// ffmpeg but some distributions package it separately.
func CheckFfprobe() error {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return &DependencyError{Name: "ffprobe", InstallURL: FfmpegInstallURL}
	}
	return nil
}
