package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/user/clipforge-cli/db"
	"github.com/user/clipforge-cli/deps"
	"github.com/user/clipforge-cli/engine"
	"github.com/user/clipforge-cli/subtitle"
	"github.com/user/clipforge-cli/transcribe"
	"github.com/user/clipforge-cli/tui/forms"
)

var (
	transcribeLanguage string
	transcribeURL      string
	transcribeOutput   string
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <media-file>",
	Short: "Generate an SRT subtitle file without opening the editor",
	Long: `Extract the audio track from a media file, send it to the transcription
service, and write the resulting subtitles next to the input as an .srt file.

The service URL is taken from --url, the TRANSCRIBE_URL environment variable,
or the stored transcribe_url setting, in that order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// A .env next to the binary may carry TRANSCRIBE_URL.
		_ = godotenv.Load()

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		absPath, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}
		if _, err := os.Stat(absPath); err != nil {
			return fmt.Errorf("media file not found: %s", absPath)
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

		baseURL := transcribeURL
		if baseURL == "" {
			baseURL = os.Getenv("TRANSCRIBE_URL")
		}
		if baseURL == "" {
			baseURL, err = db.GetSetting(database, db.KeyTranscribeURL, transcribe.DefaultBaseURL)
			if err != nil {
				return err
			}
		}

		language := transcribeLanguage
		if language == "" {
			language, err = db.GetSetting(database, db.KeyLanguage, "")
			if err != nil {
				return err
			}
		}
		if language == "" {
			if err := forms.NewLanguageForm(&language).Run(); err != nil {
				return err
			}
		}

		ffmpeg := engine.NewFFmpeg()
		defer ffmpeg.Cleanup()

		ctx := context.Background()

		logger.Info("extracting audio", "source", filepath.Base(absPath))
		audio, err := ffmpeg.ExtractAudio(ctx, absPath)
		if err != nil {
			return err
		}

		logger.Info("transcribing", "url", baseURL, "language", language)
		text, err := transcribe.NewClient(baseURL).Transcribe(ctx, audio, language)
		if err != nil {
			return err
		}

		// Round-trip through the cue model so malformed service output is
		// rejected here rather than written to disk.
		cues, err := subtitle.Parse(text)
		if err != nil {
			return err
		}

		outPath := transcribeOutput
		if outPath == "" {
			base := strings.TrimSuffix(absPath, filepath.Ext(absPath))
			outPath = base + ".srt"
		}
		if _, err := os.Stat(outPath); err == nil {
			overwrite := false
			if err := forms.NewConfirmOverwriteForm(outPath, &overwrite).Run(); err != nil {
				return err
			}
			if !overwrite {
				return fmt.Errorf("aborted: %s already exists", outPath)
			}
		}
		if err := os.WriteFile(outPath, []byte(subtitle.Marshal(cues)), 0o644); err != nil {
			return fmt.Errorf("failed to write subtitles: %w", err)
		}

		logger.Info("subtitles written", "path", outPath, "cues", len(cues))
		fmt.Printf("Wrote %d cues to %s\n", len(cues), outPath)
		return nil
	},
}

func init() {
	transcribeCmd.Flags().StringVarP(&transcribeLanguage, "language", "l", "", "transcription language code (e.g. en, es)")
	transcribeCmd.Flags().StringVarP(&transcribeURL, "url", "u", "", "transcription service base URL")
	transcribeCmd.Flags().StringVarP(&transcribeOutput, "output", "o", "", "output .srt path (default: next to the input)")
	rootCmd.AddCommand(transcribeCmd)
}
