package deepgram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stt-relay/internal/app/api/provider"
)

const (
	providerName      = "deepgram"
	DefaultBaseURL    = "https://api.deepgram.com"
	defaultTimeout    = 120 * time.Second
	maxErrorBodyBytes = 4 << 10
)

// Config represents configuration for the Deepgram prerecorded provider
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Provider implements provider.TranscriptionProvider against the Deepgram
// prerecorded listen API.
type Provider struct {
	config Config
	client *http.Client
}

// NewProvider creates a new Deepgram provider
func NewProvider(config Config) *Provider {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	return &Provider{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// NewProviderFromConfig creates a provider from the relay's provider section
func NewProviderFromConfig(cfg provider.ProviderConfig) *Provider {
	return NewProvider(Config{
		APIKey:  strings.TrimSpace(cfg.Auth.APIKey),
		BaseURL: cfg.Auth.BaseURL,
		Timeout: cfg.Timeout(defaultTimeout),
	})
}

// TranscribeAudio posts the payload to /v1/listen with the request options
// encoded as query parameters.
func (p *Provider) TranscribeAudio(ctx context.Context, request *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	startTime := time.Now()

	if p.config.APIKey == "" {
		return nil, &provider.TranscriptionError{
			Code:     "missing_credentials",
			Message:  "Deepgram API key is not configured",
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

	httpReq, err := p.createHTTPRequest(ctx, request)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:      "network_error",
			Message:   fmt.Sprintf("failed to call Deepgram API: %v", err),
			Provider:  providerName,
			Retryable: true,
			Err:       err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, p.handleHTTPError(resp)
	}

	listenResp, err := DecodeListenResponse(resp.Body)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:     "response_parse_error",
			Message:  fmt.Sprintf("failed to parse API response: %v", err),
			Provider: providerName,
			Err:      err,
		}
	}

	text, found := listenResp.Transcript()

	response := &provider.TranscriptionResponse{
		Text:           text,
		Language:       listenResp.DetectedLanguage(),
		Confidence:     listenResp.Confidence(),
		ProcessingTime: time.Since(startTime),
		ModelUsed:      request.Options.Model,
		ProviderMetadata: map[string]interface{}{
			"transcript_present": found,
			"file_size":          request.Audio.Size(),
		},
	}
	if response.Language == "" {
		response.Language = request.Options.Language
	}
	if md := listenResp.Metadata; md != nil {
		response.Duration = time.Duration(md.Duration * float64(time.Second))
		response.ProviderMetadata["request_id"] = md.RequestID
	}

	return response, nil
}

// createHTTPRequest creates the HTTP request for the listen endpoint
func (p *Provider) createHTTPRequest(ctx context.Context, request *provider.TranscriptionRequest) (*http.Request, error) {
	endpoint := p.config.BaseURL + "/v1/listen?" + request.Options.Query().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(request.Audio.Data))
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:     "request_creation_error",
			Message:  fmt.Sprintf("failed to create HTTP request: %v", err),
			Provider: providerName,
			Err:      err,
		}
	}

	req.Header.Set("Authorization", "Token "+p.config.APIKey)
	req.Header.Set("Content-Type", request.Audio.MimeType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "stt-relay/1.0")

	return req, nil
}

// handleHTTPError handles HTTP error responses
func (p *Provider) handleHTTPError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &provider.TranscriptionError{
			Code:     "authentication_failed",
			Message:  "Deepgram API key is invalid or missing",
			Provider: providerName,
		}
	case http.StatusPaymentRequired:
		return &provider.TranscriptionError{
			Code:     "insufficient_credits",
			Message:  "Deepgram project has insufficient credits",
			Provider: providerName,
		}
	case http.StatusTooManyRequests:
		return &provider.TranscriptionError{
			Code:      "rate_limit_exceeded",
			Message:   "Deepgram API rate limit exceeded",
			Provider:  providerName,
			Retryable: true,
		}
	case http.StatusRequestEntityTooLarge:
		return &provider.TranscriptionError{
			Code:     "file_too_large",
			Message:  "Audio file is too large",
			Provider: providerName,
		}
	case http.StatusBadRequest:
		return &provider.TranscriptionError{
			Code:     "invalid_request",
			Message:  fmt.Sprintf("Invalid request: %s", strings.TrimSpace(string(body))),
			Provider: providerName,
		}
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return &provider.TranscriptionError{
			Code:      "server_error",
			Message:   "Deepgram server error",
			Provider:  providerName,
			Retryable: true,
		}
	default:
		return &provider.TranscriptionError{
			Code:      "unknown_error",
			Message:   fmt.Sprintf("Unexpected HTTP status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			Provider:  providerName,
			Retryable: true,
		}
	}
}

// GetProviderInfo returns provider metadata
func (p *Provider) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:        providerName,
		DisplayName: "Deepgram Speech-to-Text",
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
		MaxFileSizeMB:      2048,
		RequiresInternet:   true,
		RequiresAPIKey:     true,
		DefaultModel:       provider.ModelLatestGeneral,
	}
}

// ValidateConfiguration validates the provider configuration
func (p *Provider) ValidateConfiguration() error {
	if p.config.APIKey == "" {
		return fmt.Errorf("Deepgram API key is required")
	}

	u, err := url.Parse(p.config.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid Deepgram base URL: %q", p.config.BaseURL)
	}

	if p.config.Timeout < 0 {
		return fmt.Errorf("timeout must be positive")
	}

	return nil
}

// HealthCheck performs a lightweight authenticated request
func (p *Provider) HealthCheck(ctx context.Context) error {
	if err := p.ValidateConfiguration(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.BaseURL+"/v1/projects", nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("Deepgram API health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("Deepgram API authentication failed")
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("Deepgram API unavailable: status %d", resp.StatusCode)
	}

	return nil
}
