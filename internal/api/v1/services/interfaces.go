package services

import (
	"context"

	"stt-relay/internal/api/v1/dto"
)

// Client-facing messages. Causes are logged, never returned.
const (
	MsgNoFileUploaded      = "No file uploaded"
	MsgTranscriptionFailed = "Transcription failed"
	MsgProviderUnavailable = "Transcription provider unavailable"
)

// TranscriptionService defines the interface for transcription operations
type TranscriptionService interface {
	Transcribe(ctx context.Context, req *dto.TranscribeRequest) (*dto.TranscriptResponse, error)
	SupportedLanguages(ctx context.Context) *dto.LanguagesResponse
	ProviderName() string
	// CheckProvider verifies the provider is reachable with its credential
	CheckProvider(ctx context.Context) error
}
