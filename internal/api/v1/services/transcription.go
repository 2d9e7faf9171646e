package services

import (
	"context"

	"go.uber.org/zap"
	"stt-relay/internal/api/errors"
	"stt-relay/internal/api/v1/dto"
	"stt-relay/internal/app/api/provider"
)

// TranscriptionServiceImpl implements TranscriptionService
type TranscriptionServiceImpl struct {
	provider provider.TranscriptionProvider
	logger   *zap.Logger
}

// NewTranscriptionService creates a new transcription service
func NewTranscriptionService(p provider.TranscriptionProvider, logger *zap.Logger) TranscriptionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptionServiceImpl{
		provider: p,
		logger:   logger,
	}
}

// Transcribe resolves the language hint, selects provider options and
// forwards the payload. Every provider failure becomes the same generic
// internal error.
func (s *TranscriptionServiceImpl) Transcribe(ctx context.Context, req *dto.TranscribeRequest) (*dto.TranscriptResponse, error) {
	if req == nil || req.Audio == nil {
		return nil, errors.NewBadRequestError(MsgNoFileUploaded)
	}

	lang := provider.ParseLanguage(req.LanguageHint)
	providerReq := &provider.TranscriptionRequest{
		Audio:    req.Audio,
		Language: lang,
		Options:  provider.OptionsFor(lang),
	}

	s.logger.Debug("Forwarding audio to provider",
		zap.String("provider", s.ProviderName()),
		zap.String("language", string(lang)),
		zap.String("model", providerReq.Options.Model),
		zap.String("filename", req.Audio.Filename),
		zap.Int("bytes", req.Audio.Size()),
	)

	resp, err := s.provider.TranscribeAudio(ctx, providerReq)
	if err != nil {
		return nil, errors.WrapError(err, errors.KindInternal, MsgTranscriptionFailed)
	}
	if resp == nil {
		return &dto.TranscriptResponse{}, nil
	}

	s.logger.Debug("Provider returned transcript",
		zap.String("provider", s.ProviderName()),
		zap.String("model", resp.ModelUsed),
		zap.String("language", resp.Language),
		zap.Int("chars", len(resp.Text)),
		zap.Float64("confidence", resp.Confidence),
		zap.Duration("audio_duration", resp.Duration),
		zap.Duration("processing_time", resp.ProcessingTime),
		zap.Any("metadata", resp.ProviderMetadata),
	)

	return &dto.TranscriptResponse{Transcript: resp.Text}, nil
}

// SupportedLanguages lists the accepted language hints
func (s *TranscriptionServiceImpl) SupportedLanguages(ctx context.Context) *dto.LanguagesResponse {
	langs := provider.SupportedLanguages()
	out := make([]dto.LanguageResponse, 0, len(langs))
	for _, l := range langs {
		out = append(out, dto.LanguageResponse{Code: string(l), Name: l.DisplayName()})
	}
	return &dto.LanguagesResponse{
		Languages: out,
		Default:   string(provider.DefaultLanguage),
	}
}

// ProviderName reports which backend requests are relayed to
func (s *TranscriptionServiceImpl) ProviderName() string {
	return s.provider.GetProviderInfo().Name
}

// CheckProvider runs the provider's health check. Failures are reported as
// service unavailable with the cause kept for the log.
func (s *TranscriptionServiceImpl) CheckProvider(ctx context.Context) error {
	if err := s.provider.HealthCheck(ctx); err != nil {
		return errors.NewServiceUnavailableError(MsgProviderUnavailable, err)
	}
	return nil
}
