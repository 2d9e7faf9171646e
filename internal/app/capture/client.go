package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"
	"stt-relay/internal/app/api/provider"
)

// Messages shown to the user in place of a transcript
const (
	MsgNoTranscript   = "No transcript returned"
	MsgFailed         = "Failed to transcribe"
	MsgNoAudioCapture = "No audio captured"
)

const (
	transcribePath    = "/api/transcribe"
	defaultTimeout    = 2 * time.Minute
	maxResponseBytes  = 1 << 20
	languageHeaderKey = "x-language"
)

// ErrRequestFailed marks a submission that produced no usable response:
// the relay was unreachable or answered with something other than JSON
var ErrRequestFailed = errors.New("capture: transcription request failed")

// Result is the relay's answer to one submission
type Result struct {
	Transcript string
	// Present is false when the response carried no transcript field
	Present    bool
	StatusCode int
	// Error is the relay's error string for non-2xx responses
	Error string
}

// DisplayText is what the client shows for this result
func (r *Result) DisplayText() string {
	if r == nil || r.Transcript == "" {
		return MsgNoTranscript
	}
	return r.Transcript
}

// DisplayError maps a submission error to the text shown to the user
func DisplayError(err error) string {
	if errors.Is(err, ErrEmptyCapture) {
		return MsgNoAudioCapture
	}
	return MsgFailed
}

// Client submits audio to a relay
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a relay client for baseURL, e.g. http://localhost:3000
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

// Transcribe posts one payload with the language hint. The hint is sent on
// every submission regardless of where the audio came from.
func (c *Client) Transcribe(ctx context.Context, payload *provider.AudioPayload, lang provider.Language) (*Result, error) {
	if payload == nil || payload.Size() == 0 {
		return nil, ErrEmptyCapture
	}

	body, contentType, err := encodeUpload(payload)
	if err != nil {
		return nil, fmt.Errorf("encode upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+transcribePath, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(languageHeaderKey, string(lang))

	c.logger.Debug("Submitting audio",
		zap.String("url", req.URL.String()),
		zap.String("filename", payload.Filename),
		zap.Int("bytes", payload.Size()),
		zap.String("language", string(lang)),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrRequestFailed, err)
	}

	var decoded struct {
		Transcript *string `json:"transcript"`
		Error      string  `json:"error"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: status %d: invalid JSON: %v", ErrRequestFailed, resp.StatusCode, err)
	}

	result := &Result{StatusCode: resp.StatusCode, Error: decoded.Error}
	if decoded.Transcript != nil {
		result.Transcript = *decoded.Transcript
		result.Present = true
	}
	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Debug("Relay returned an error",
			zap.Int("status", resp.StatusCode),
			zap.String("error", decoded.Error),
		)
	}
	return result, nil
}

// SubmitRecording stops session and submits what it captured. An empty
// capture is returned as ErrEmptyCapture without contacting the relay.
func (c *Client) SubmitRecording(ctx context.Context, session *Session, lang provider.Language) (*Result, error) {
	payload, err := session.Stop()
	if err != nil {
		return nil, err
	}
	return c.Transcribe(ctx, payload, lang)
}

func encodeUpload(payload *provider.AudioPayload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	filename := payload.Filename
	if filename == "" {
		filename = "audio"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	header.Set("Content-Type", payload.MimeType())

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(payload.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
