package provider

import (
	"path/filepath"
	"strings"
	"time"
)

// AudioFormat defines supported audio formats
type AudioFormat string

const (
	FormatWAV  AudioFormat = "wav"
	FormatMP3  AudioFormat = "mp3"
	FormatM4A  AudioFormat = "m4a"
	FormatFLAC AudioFormat = "flac"
	FormatOGG  AudioFormat = "ogg"
	FormatWEBM AudioFormat = "webm"
)

// ProviderType defines the type of transcription provider
type ProviderType string

const (
	ProviderTypeLocal  ProviderType = "local"
	ProviderTypeRemote ProviderType = "remote"
)

// AudioPayload is the audio of a single transcription attempt. It lives for
// one request and is never persisted.
type AudioPayload struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Size returns the payload length in bytes.
func (p *AudioPayload) Size() int {
	if p == nil {
		return 0
	}
	return len(p.Data)
}

// MimeType returns the declared content type, falling back to one derived
// from the filename extension.
func (p *AudioPayload) MimeType() string {
	ct := strings.TrimSpace(p.ContentType)
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	return ContentTypeFor(GetAudioFormatFromFilename(p.Filename))
}

// TranscriptionRequest is one relay call to a provider.
type TranscriptionRequest struct {
	Audio    *AudioPayload
	Language Language
	Options  Options
}

// TranscriptionResponse represents the response from a transcription provider
type TranscriptionResponse struct {
	// Text is empty when the provider result carried no transcript.
	Text string `json:"text"`

	Language   string        `json:"language,omitempty"`
	Duration   time.Duration `json:"duration,omitempty"`
	Confidence float64       `json:"confidence,omitempty"`

	ProviderMetadata map[string]interface{} `json:"provider_metadata,omitempty"`

	ProcessingTime time.Duration `json:"processing_time,omitempty"`
	ModelUsed      string        `json:"model_used,omitempty"`
}

// ProviderInfo contains metadata about a transcription provider
type ProviderInfo struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"display_name"`
	Type        ProviderType `json:"type"`
	Version     string       `json:"version,omitempty"`

	SupportedFormats   []AudioFormat `json:"supported_formats"`
	SupportedLanguages []Language    `json:"supported_languages,omitempty"`
	MaxFileSizeMB      int           `json:"max_file_size_mb,omitempty"`

	RequiresInternet bool   `json:"requires_internet"`
	RequiresAPIKey   bool   `json:"requires_api_key"`
	DefaultModel     string `json:"default_model,omitempty"`
}

// TranscriptionError represents provider-specific errors
type TranscriptionError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Provider  string `json:"provider"`
	Retryable bool   `json:"retryable"`
	Err       error  `json:"-"`
}

func (e *TranscriptionError) Error() string {
	return e.Message
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

// IsValidAudioFormat checks if the given format is supported
func IsValidAudioFormat(format string) bool {
	switch AudioFormat(format) {
	case FormatWAV, FormatMP3, FormatM4A, FormatFLAC, FormatOGG, FormatWEBM:
		return true
	default:
		return false
	}
}

// GetAudioFormatFromFilename extracts audio format from filename
func GetAudioFormatFromFilename(filename string) AudioFormat {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if !IsValidAudioFormat(ext) {
		return ""
	}
	return AudioFormat(ext)
}

// ContentTypeFor maps an audio format to the MIME type providers expect.
func ContentTypeFor(format AudioFormat) string {
	switch format {
	case FormatWAV:
		return "audio/wav"
	case FormatMP3:
		return "audio/mpeg"
	case FormatM4A:
		return "audio/mp4"
	case FormatFLAC:
		return "audio/flac"
	case FormatOGG:
		return "audio/ogg"
	case FormatWEBM:
		return "audio/webm"
	default:
		return "application/octet-stream"
	}
}
