package whisper

import (
	"strings"

	"stt-relay/internal/app/api/provider"
)

func init() {
	// Register openai provider with the factory
	provider.RegisterProvider(providerName, createOpenAIProvider)
}

// createOpenAIProvider creates an OpenAI Whisper provider from configuration
func createOpenAIProvider(config provider.ProviderConfig) (provider.TranscriptionProvider, error) {
	return NewRemoteTranscriber(Config{
		APIKey:  strings.TrimSpace(config.Auth.APIKey),
		Model:   config.StringSetting("model"),
		Prompt:  config.StringSetting("prompt"),
		BaseURL: config.Auth.BaseURL,
		Timeout: config.Timeout(defaultTimeout),
	}), nil
}
