package whisper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"stt-relay/internal/app/api/provider"
)

const (
	providerName   = "openai"
	defaultTimeout = 120 * time.Second
)

// Config represents configuration specific to the OpenAI Whisper provider
type Config struct {
	APIKey  string
	Model   string
	Prompt  string
	BaseURL string
	Timeout time.Duration
}

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client *openai.Client
	config Config
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(config Config) *RemoteTranscriber {
	if config.Model == "" {
		config.Model = openai.Whisper1
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(config.BaseURL, "/")
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout: config.Timeout,
	}

	return &RemoteTranscriber{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}
}

// TranscribeAudio uploads the payload to the audio transcription endpoint.
// The language hint is passed through; Deepgram-specific options are ignored.
func (rt *RemoteTranscriber) TranscribeAudio(ctx context.Context, request *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	startTime := time.Now()

	if rt.config.APIKey == "" {
		return nil, &provider.TranscriptionError{
			Code:     "missing_credentials",
			Message:  "OpenAI API key is not configured",
			Provider: providerName,
		}
	}
	if request == nil || request.Audio == nil {
		return nil, &provider.TranscriptionError{
			Code:     "invalid_input",
			Message:  "audio payload is required",
			Provider: providerName,
		}
	}

	filename := request.Audio.Filename
	if filename == "" {
		filename = "audio"
	}

	req := openai.AudioRequest{
		Model:    rt.config.Model,
		Reader:   bytes.NewReader(request.Audio.Data),
		FilePath: filename,
		Prompt:   rt.config.Prompt,
		Language: string(request.Language),
	}

	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, convertError(err)
	}

	return &provider.TranscriptionResponse{
		Text:           resp.Text,
		Language:       string(request.Language),
		Duration:       time.Duration(resp.Duration * float64(time.Second)),
		ProcessingTime: time.Since(startTime),
		ModelUsed:      rt.config.Model,
	}, nil
}

func convertError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		code := "api_error"
		retryable := false
		switch {
		case apiErr.HTTPStatusCode == http.StatusUnauthorized:
			code = "authentication_failed"
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			code, retryable = "rate_limit_exceeded", true
		case apiErr.HTTPStatusCode >= http.StatusInternalServerError:
			code, retryable = "server_error", true
		}
		return &provider.TranscriptionError{
			Code:      code,
			Message:   fmt.Sprintf("OpenAI transcription failed: %s", apiErr.Message),
			Provider:  providerName,
			Retryable: retryable,
			Err:       err,
		}
	}

	return &provider.TranscriptionError{
		Code:      "network_error",
		Message:   fmt.Sprintf("createTranscription failed: %v", err),
		Provider:  providerName,
		Retryable: true,
		Err:       err,
	}
}

// GetProviderInfo returns provider metadata
func (rt *RemoteTranscriber) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:        providerName,
		DisplayName: "OpenAI Whisper API",
		Type:        provider.ProviderTypeRemote,
		Version:     "v1",
		SupportedFormats: []provider.AudioFormat{
			provider.FormatWAV,
			provider.FormatMP3,
			provider.FormatM4A,
			provider.FormatFLAC,
			provider.FormatOGG,
			provider.FormatWEBM,
		},
		SupportedLanguages: provider.SupportedLanguages(),
		MaxFileSizeMB:      25,
		RequiresInternet:   true,
		RequiresAPIKey:     true,
		DefaultModel:       openai.Whisper1,
	}
}

// ValidateConfiguration validates the provider configuration
func (rt *RemoteTranscriber) ValidateConfiguration() error {
	if rt.config.APIKey == "" {
		return fmt.Errorf("OpenAI API key is required")
	}
	if rt.config.Timeout < 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// HealthCheck lists models to verify the credential
func (rt *RemoteTranscriber) HealthCheck(ctx context.Context) error {
	if err := rt.ValidateConfiguration(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if _, err := rt.client.ListModels(ctx); err != nil {
		return fmt.Errorf("OpenAI API health check failed: %w", err)
	}
	return nil
}
