package deepgram

import (
	"stt-relay/internal/app/api/provider"
)

func init() {
	provider.RegisterProvider(providerName, createDeepgramProvider)
}

// A missing API key is not a creation error: the relay must still start and
// fail each request instead.
func createDeepgramProvider(config provider.ProviderConfig) (provider.TranscriptionProvider, error) {
	return NewProviderFromConfig(config), nil
}
