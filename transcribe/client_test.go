package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeAudioFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, []byte("RIFF fake wav"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestTranscribeUploadsMultipart(t *testing.T) {
	const srt = "1\n00:00:00,000 --> 00:00:01,000\nhello\n"

	var gotPath, gotFilename string
	var gotSize int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		buf := make([]byte, 64)
		n, _ := file.Read(buf)
		gotSize = n

		json.NewEncoder(w).Encode(map[string]string{
			"transcription":     "hello",
			"detected_language": "en",
			"srt_subtitles":     srt,
		})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	got, err := c.Transcribe(context.Background(), writeAudioFixture(t), "fr")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if got != srt {
		t.Fatalf("srt = %q, want %q", got, srt)
	}
	if gotPath != "/transcription/v2/transcribe/fr" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotFilename != "clip.wav" || gotSize == 0 {
		t.Fatalf("upload file = %q (%d bytes)", gotFilename, gotSize)
	}
}

func TestTranscribeDefaultsLanguage(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]string{"srt_subtitles": "1\n00:00:00,000 --> 00:00:01,000\nx\n"})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	if _, err := c.Transcribe(context.Background(), writeAudioFixture(t), ""); err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if gotPath != "/transcription/v2/transcribe/en" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestTranscribeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL)
	_, err := c.Transcribe(context.Background(), writeAudioFixture(t), "en")

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error = %v, want RequestError", err)
	}
	if reqErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d", reqErr.StatusCode)
	}
}

func TestTranscribeMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	c := NewClient(server.URL)
	if _, err := c.Transcribe(context.Background(), writeAudioFixture(t), "en"); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestTranscribeEmptySubtitles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"transcription": "text only"})
	}))
	defer server.Close()

	c := NewClient(server.URL)
	if _, err := c.Transcribe(context.Background(), writeAudioFixture(t), "en"); err == nil {
		t.Fatal("expected error when no srt_subtitles returned")
	}
}
