package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables holding provider credentials
const (
	DeepgramAPIKeyEnv = "DEEPGRAM_API_KEY"
	OpenAIAPIKeyEnv   = "OPENAI_API_KEY"
)

// APIKeys holds all API keys loaded from environment
type APIKeys struct {
	Deepgram string
	OpenAI   string
}

// ForProvider returns the key used by the named provider type
func (k *APIKeys) ForProvider(providerType string) string {
	if k == nil {
		return ""
	}
	switch providerType {
	case "deepgram":
		return k.Deepgram
	case "openai":
		return k.OpenAI
	default:
		return ""
	}
}

// envPaths are tried in order; the first existing file wins
var envPaths = []string{
	".env",
	".env.local",
	"../.env",
	"../../.env",
}

// LoadEnv loads environment variables from a .env file if one exists.
// Variables already set in the process environment take precedence.
func LoadEnv(out io.Writer) error {
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			fmt.Fprintf(out, "✅ Loaded environment variables from %s\n", envPath)
			break
		}
	}

	return nil
}

// GetAPIKeys retrieves API keys from environment variables. Missing or
// malformed keys are not an error here; see CheckAPIKeyFormat.
func GetAPIKeys() *APIKeys {
	return &APIKeys{
		Deepgram: strings.TrimSpace(os.Getenv(DeepgramAPIKeyEnv)),
		OpenAI:   strings.TrimSpace(os.Getenv(OpenAIAPIKeyEnv)),
	}
}

// CheckAPIKeyFormat rejects a key that is obviously malformed for the
// provider type. An empty key passes.
func CheckAPIKeyFormat(providerType, key string) error {
	if key == "" {
		return nil
	}

	switch providerType {
	case "deepgram":
		if strings.ContainsAny(key, " \t\r\n") {
			return fmt.Errorf("invalid %s format: contains whitespace", DeepgramAPIKeyEnv)
		}
		if len(key) < 20 {
			return fmt.Errorf("invalid %s format: too short", DeepgramAPIKeyEnv)
		}
	case "openai":
		if !strings.HasPrefix(key, "sk-") {
			return fmt.Errorf("invalid %s format: must start with 'sk-'", OpenAIAPIKeyEnv)
		}
		if len(key) < 20 {
			return fmt.Errorf("invalid %s format: too short", OpenAIAPIKeyEnv)
		}
	}
	return nil
}

// ValidateAPIKeys reports which keys are available and which look malformed
// without failing
func ValidateAPIKeys(out io.Writer, apiKeys *APIKeys) {
	var availableKeys []string
	if apiKeys.Deepgram != "" {
		availableKeys = append(availableKeys, "Deepgram")
	}
	if apiKeys.OpenAI != "" {
		availableKeys = append(availableKeys, "OpenAI")
	}

	if len(availableKeys) > 0 {
		fmt.Fprintf(out, "✅ API keys available: %s\n", strings.Join(availableKeys, ", "))
	} else {
		fmt.Fprintf(out, "ℹ️  No API keys configured (every transcription request will fail)\n")
	}

	for _, providerType := range []string{"deepgram", "openai"} {
		if err := CheckAPIKeyFormat(providerType, apiKeys.ForProvider(providerType)); err != nil {
			fmt.Fprintf(out, "⚠️  %v\n", err)
		}
	}
}

// InitializeConfig loads the environment and reads API keys.
// This is the main entry point for configuration loading.
func InitializeConfig(out io.Writer) (*APIKeys, error) {
	if err := LoadEnv(out); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	apiKeys := GetAPIKeys()
	ValidateAPIKeys(out, apiKeys)

	return apiKeys, nil
}
