package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/clipforge-cli/db"
	"github.com/user/clipforge-cli/deps"
	"github.com/user/clipforge-cli/engine"
	"github.com/user/clipforge-cli/mpv"
	"github.com/user/clipforge-cli/pipeline"
	"github.com/user/clipforge-cli/subtitle"
	"github.com/user/clipforge-cli/timeline"
	"github.com/user/clipforge-cli/transcribe"
	"github.com/user/clipforge-cli/tui"
)

var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "clipforge-cli",
	Short: "A terminal media clip editor",
	Long: `clipforge-cli is a terminal tool for cutting clips out of media files,
previewed live in mpv and processed with ffmpeg.

Features:
  - Open media files in mpv with a timeline UI in the terminal
  - Select ranges by keyboard or mouse drag, commit them as segments
  - Merge segments, extract audio, generate subtitles, burn them in
  - Edit subtitle cues before export`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("clipforge-cli version %s\n", Version)
	},
}

var openCmd = &cobra.Command{
	Use:   "open <media-file>",
	Short: "Open a media file for editing",
	Long:  `Open a media file in mpv and start the editing session. The player window previews playback while the terminal shows the timeline, subtitle cues, and committed segments.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mediaPath := args[0]

		// Resolve to absolute path
		absPath, err := filepath.Abs(mediaPath)
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}

		info, err := os.Stat(absPath)
		if os.IsNotExist(err) {
			return fmt.Errorf("media file not found: %s", absPath)
		}
		if err != nil {
			return fmt.Errorf("failed to access media file: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("path is a directory, not a media file: %s", absPath)
		}

		if err := deps.CheckFfmpeg(); err != nil {
			return err
		}
		if err := deps.CheckFfprobe(); err != nil {
			return err
		}

		database, err := db.Open()
		if err != nil {
			return fmt.Errorf("failed to open settings database: %w", err)
		}
		defer database.Close()

		fmt.Printf("Opening: %s\n", filepath.Base(absPath))
		process, err := mpv.Launch(absPath)
		if err != nil {
			return fmt.Errorf("failed to launch mpv: %w", err)
		}

		// Wait for the IPC socket to come up
		client := mpv.NewClient("")
		var connectErr error
		for i := 0; i < 50; i++ { // up to 5 seconds
			time.Sleep(100 * time.Millisecond)
			connectErr = client.Connect()
			if connectErr == nil {
				break
			}
		}
		if connectErr != nil {
			if process.Process != nil {
				process.Process.Kill()
			}
			return fmt.Errorf("failed to connect to mpv: %w", connectErr)
		}
		defer client.Close()

		ffmpeg := engine.NewFFmpeg()
		defer ffmpeg.Cleanup()

		duration, err := ffmpeg.Probe(context.Background(), absPath)
		if err != nil {
			// mpv may still know the duration even when ffprobe chokes.
			duration, err = client.GetDuration()
			if err != nil {
				if process.Process != nil {
					process.Process.Kill()
				}
				return fmt.Errorf("failed to determine media duration: %w", err)
			}
		}

		model := timeline.NewModel()
		if err := model.SetDuration(duration); err != nil {
			return fmt.Errorf("invalid media duration %g: %w", duration, err)
		}
		track := subtitle.NewTrack()

		baseURL, err := db.GetSetting(database, db.KeyTranscribeURL, transcribe.DefaultBaseURL)
		if err != nil {
			return err
		}
		language, err := db.GetSetting(database, db.KeyLanguage, "en")
		if err != nil {
			return err
		}

		orc := pipeline.NewOrchestrator(ffmpeg, transcribe.NewClient(baseURL), model, track)
		orc.SetSource(absPath)
		ffmpeg.SetProgressFunc(orc.ReportProgress)

		err = tui.Run(client, database, orc, model, track, language)

		if process.Process != nil {
			process.Process.Kill()
		}
		return err
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that all required system dependencies (mpv, ffmpeg, ffprobe) are installed and available.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Checking dependencies...")
		fmt.Println()

		checks := []struct {
			name  string
			check func() error
		}{
			{"mpv", deps.CheckMpv},
			{"ffmpeg", deps.CheckFfmpeg},
			{"ffprobe", deps.CheckFfprobe},
		}

		allGood := true
		for _, c := range checks {
			if err := c.check(); err != nil {
				fmt.Printf("✗ %s: NOT FOUND\n", c.name)
				if depErr, ok := err.(*deps.DependencyError); ok {
					fmt.Printf("  Install from: %s\n", depErr.InstallURL)
				}
				allGood = false
			} else {
				fmt.Printf("✓ %s: OK\n", c.name)
			}
		}

		fmt.Println()
		if allGood {
			fmt.Println("All dependencies are installed!")
		} else {
			fmt.Println("Some dependencies are missing. Please install them to use all features.")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(doctorCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
