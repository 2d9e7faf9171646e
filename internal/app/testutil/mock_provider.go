package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"stt-relay/internal/app/api/provider"
)

// MockTranscriptionProvider is a mock implementation of provider.TranscriptionProvider.
// Only TranscribeAudio goes through testify expectations; the descriptive
// methods answer from fields so tests do not have to stub them.
type MockTranscriptionProvider struct {
	mock.Mock

	Name        string
	ConfigError error
	HealthError error
}

// NewMockTranscriptionProvider creates a mock bound to t
func NewMockTranscriptionProvider(t *testing.T, name string) *MockTranscriptionProvider {
	m := &MockTranscriptionProvider{Name: name}
	m.Test(t)
	return m
}

func (m *MockTranscriptionProvider) TranscribeAudio(ctx context.Context, request *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.TranscriptionResponse), args.Error(1)
}

func (m *MockTranscriptionProvider) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:               m.Name,
		DisplayName:        "Mock " + m.Name,
		Type:               provider.ProviderTypeRemote,
		SupportedLanguages: provider.SupportedLanguages(),
	}
}

func (m *MockTranscriptionProvider) ValidateConfiguration() error {
	return m.ConfigError
}

func (m *MockTranscriptionProvider) HealthCheck(ctx context.Context) error {
	return m.HealthError
}

// RequestWithLanguage matches a TranscriptionRequest resolved to lang
func RequestWithLanguage(lang provider.Language) interface{} {
	return mock.MatchedBy(func(req *provider.TranscriptionRequest) bool {
		return req != nil && req.Language == lang && req.Options == provider.OptionsFor(lang)
	})
}
