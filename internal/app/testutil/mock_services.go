package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"stt-relay/internal/api/v1/dto"
)

// MockTranscriptionService is a mock implementation of TranscriptionService
type MockTranscriptionService struct {
	mock.Mock
}

func NewMockTranscriptionService(t *testing.T) *MockTranscriptionService {
	m := &MockTranscriptionService{}
	m.Test(t)
	return m
}

func (m *MockTranscriptionService) Transcribe(ctx context.Context, req *dto.TranscribeRequest) (*dto.TranscriptResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranscriptResponse), args.Error(1)
}

func (m *MockTranscriptionService) SupportedLanguages(ctx context.Context) *dto.LanguagesResponse {
	args := m.Called(ctx)
	return args.Get(0).(*dto.LanguagesResponse)
}

func (m *MockTranscriptionService) ProviderName() string {
	return "mock"
}

func (m *MockTranscriptionService) CheckProvider(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
