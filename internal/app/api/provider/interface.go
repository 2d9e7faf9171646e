package provider

import (
	"context"
	"time"
)

// TranscriptionProvider is a hosted or local speech-to-text backend.
// Implementations are stateless per call and safe for concurrent use.
type TranscriptionProvider interface {
	// TranscribeAudio sends one audio payload and returns the extracted transcript.
	TranscribeAudio(ctx context.Context, request *TranscriptionRequest) (*TranscriptionResponse, error)

	// Provider metadata and capabilities
	GetProviderInfo() ProviderInfo

	// ValidateConfiguration reports a missing credential or malformed setting
	// without performing network calls.
	ValidateConfiguration() error

	// HealthCheck verifies the provider is reachable with the configured credential.
	HealthCheck(ctx context.Context) error
}

// ProviderMetrics records the outcome of provider calls.
type ProviderMetrics interface {
	// Record a successful transcription
	RecordSuccess(provider string, latency time.Duration, audioBytes int)

	// Record a failed transcription
	RecordFailure(provider string, errorType string)
}
