// Package transcribe talks to the remote speech-to-text service. One call:
// upload an audio artifact, get SRT interchange text back.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultBaseURL is the local transcription server default.
const DefaultBaseURL = "http://127.0.0.1:8000"

// RequestError reports a non-2xx response from the transcription service.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("transcribe: HTTP %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// response mirrors the service's JSON body.
type response struct {
	Transcription    string `json:"transcription"`
	DetectedLanguage string `json:"detected_language"`
	SRTSubtitles     string `json:"srt_subtitles"`
}

// Client uploads audio to the transcription endpoint. A handle is passed
// into the session explicitly; there is no shared process-wide instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL, falling back to
// DefaultBaseURL when empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Minute,
		},
	}
}

// Transcribe sends the audio artifact as a multipart upload to the
// language-parameterized endpoint and returns the SRT text the service
// produced. Timeouts are the service's concern; failures are surfaced as-is.
func (c *Client) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("transcribe: open audio: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("transcribe: build upload: %w", err)
	}
	if _, err := io.Copy(fw, f); err != nil {
		return "", fmt.Errorf("transcribe: read audio: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("transcribe: build upload: %w", err)
	}

	if language == "" {
		language = "en"
	}
	endpoint := fmt.Sprintf("%s/transcription/v2/transcribe/%s", c.baseURL, url.PathEscape(language))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("transcribe: create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcribe: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &RequestError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var parsed response
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("transcribe: malformed response: %w", err)
	}
	if strings.TrimSpace(parsed.SRTSubtitles) == "" {
		return "", fmt.Errorf("transcribe: response carries no subtitles")
	}
	return parsed.SRTSubtitles, nil
}
