package provider

import (
	"os"
	"time"
)

// ProviderConfig represents configuration for the relay's provider
type ProviderConfig struct {
	// Provider type (deepgram, openai)
	Type string `yaml:"type" validate:"required"`

	// Provider-specific settings
	Settings map[string]interface{} `yaml:"settings,omitempty"`

	Auth AuthConfig `yaml:"auth,omitempty"`

	Performance PerformanceConfig `yaml:"performance,omitempty"`
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	// API key, may reference the environment like ${DEEPGRAM_API_KEY}
	APIKey string `yaml:"api_key,omitempty"`

	BaseURL string `yaml:"base_url,omitempty" validate:"omitempty,url"`
}

// PerformanceConfig represents performance-related configuration
type PerformanceConfig struct {
	// Timeout for transcription requests, 0 uses the provider default
	TimeoutSec int `yaml:"timeout_sec,omitempty" validate:"gte=0"`
}

// ExpandEnvironment resolves ${VAR} references in the auth section.
func (c *ProviderConfig) ExpandEnvironment() {
	c.Auth.APIKey = os.ExpandEnv(c.Auth.APIKey)
	c.Auth.BaseURL = os.ExpandEnv(c.Auth.BaseURL)
}

// Timeout returns the configured timeout or fallback when unset.
func (c ProviderConfig) Timeout(fallback time.Duration) time.Duration {
	if c.Performance.TimeoutSec > 0 {
		return time.Duration(c.Performance.TimeoutSec) * time.Second
	}
	return fallback
}

// StringSetting returns a string setting or an empty string.
func (c ProviderConfig) StringSetting(key string) string {
	if v, ok := c.Settings[key].(string); ok {
		return v
	}
	return ""
}
