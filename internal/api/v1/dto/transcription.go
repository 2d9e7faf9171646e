package dto

import (
	"stt-relay/internal/app/api/provider"
)

// TranscribeRequest is the decoded form of a POST /api/transcribe call
type TranscribeRequest struct {
	Audio *provider.AudioPayload
	// LanguageHint is the raw x-language header value, possibly empty
	LanguageHint string
}

// TranscriptResponse is the success body of the transcription endpoint.
// Transcript is always present, empty when the provider returned nothing.
type TranscriptResponse struct {
	Transcript string `json:"transcript" example:"Cholesterol and bilirubin are high."`
}

// LanguageResponse describes one supported language hint
type LanguageResponse struct {
	Code string `json:"code" example:"ko"`
	Name string `json:"name" example:"한국어"`
}

// LanguagesResponse lists every accepted x-language value
type LanguagesResponse struct {
	Languages []LanguageResponse `json:"languages"`
	Default   string             `json:"default" example:"en"`
}

// HealthResponse is returned by the liveness probe
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Provider  string `json:"provider" example:"deepgram"`
	Timestamp int64  `json:"timestamp"`
}
