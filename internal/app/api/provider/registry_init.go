package provider

import (
	"fmt"
	"sort"
	"sync"
)

// ProviderCreator is a function that creates a provider from configuration
type ProviderCreator func(config ProviderConfig) (TranscriptionProvider, error)

// providerRegistry stores provider creation functions
var (
	providerRegistry = make(map[string]ProviderCreator)
	registryMutex    sync.RWMutex
)

// RegisterProvider registers a provider creator function
func RegisterProvider(providerType string, creator ProviderCreator) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	providerRegistry[providerType] = creator
}

// GetProviderCreator returns the creator function for a provider type
func GetProviderCreator(providerType string) (ProviderCreator, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	creator, ok := providerRegistry[providerType]
	if !ok {
		return nil, fmt.Errorf("provider type %s not registered", providerType)
	}
	return creator, nil
}

// ListRegisteredProviders returns all registered provider types, sorted
func ListRegisteredProviders() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, providerType)
	}
	sort.Strings(providers)
	return providers
}

// CreateProvider builds the provider named by config.Type.
func CreateProvider(config ProviderConfig) (TranscriptionProvider, error) {
	creator, err := GetProviderCreator(config.Type)
	if err != nil {
		return nil, fmt.Errorf("%s provider not registered: %w", config.Type, err)
	}
	p, err := creator(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", config.Type, err)
	}
	return p, nil
}
