package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "stt-relay/internal/app/api/deepgram"
	_ "stt-relay/internal/app/api/openai/whisper"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "relay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadServerConfig_Defaults(t *testing.T) {
	cfg, err := LoadServerConfig("", &APIKeys{Deepgram: "dg-key"})
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Address())
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, int64(25<<20), cfg.MaxUploadBytes())
	assert.Equal(t, "deepgram", cfg.Provider.Type)
	assert.Equal(t, "dg-key", cfg.Provider.Auth.APIKey)
	assert.Equal(t, 150*time.Second, cfg.WriteTimeout())
	assert.False(t, cfg.IsProduction())
}

func TestLoadServerConfig_MissingKeyStillLoads(t *testing.T) {
	cfg, err := LoadServerConfig("", nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Provider.Auth.APIKey)
}

func TestLoadServerConfig_File(t *testing.T) {
	t.Setenv("RELAY_TEST_OPENAI_KEY", "sk-from-env-0123456789abcdef")

	path := writeConfig(t, `
host: 127.0.0.1
port: 8088
environment: production
max_upload_mb: 10
cors_origins:
  - https://example.com
provider:
  type: OpenAI
  settings:
    model: whisper-1
  auth:
    api_key: ${RELAY_TEST_OPENAI_KEY}
  performance:
    timeout_sec: 45
`)

	cfg, err := LoadServerConfig(path, &APIKeys{OpenAI: "sk-ignored"})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8088", cfg.Address())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
	assert.Equal(t, []string{"https://example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "openai", cfg.Provider.Type)
	assert.Equal(t, "sk-from-env-0123456789abcdef", cfg.Provider.Auth.APIKey)
	assert.Equal(t, "whisper-1", cfg.Provider.StringSetting("model"))
	assert.Equal(t, 45*time.Second, cfg.Provider.Timeout(time.Minute))
	// untouched fields keep their defaults
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout())
}

func TestLoadServerConfig_FallsBackToEnvironmentKey(t *testing.T) {
	path := writeConfig(t, "provider:\n  type: openai\n")

	cfg, err := LoadServerConfig(path, &APIKeys{Deepgram: "dg", OpenAI: "sk-env"})
	require.NoError(t, err)
	assert.Equal(t, "sk-env", cfg.Provider.Auth.APIKey)
}

func TestLoadServerConfig_Errors(t *testing.T) {
	testCases := []struct {
		name          string
		content       string
		errorContains string
	}{
		{
			name:          "port out of range",
			content:       "port: 70000\n",
			errorContains: "Port",
		},
		{
			name:          "unknown environment",
			content:       "environment: staging\n",
			errorContains: "Environment",
		},
		{
			name:          "negative upload cap",
			content:       "max_upload_mb: -1\n",
			errorContains: "MaxUploadMB",
		},
		{
			name:          "unregistered provider",
			content:       "provider:\n  type: carrier-pigeon\n",
			errorContains: "provider type carrier-pigeon not registered",
		},
		{
			name:          "bad base url",
			content:       "provider:\n  type: deepgram\n  auth:\n    base_url: not a url\n",
			errorContains: "BaseURL",
		},
		{
			name:          "malformed yaml",
			content:       "port: [\n",
			errorContains: "failed to parse YAML",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadServerConfig(writeConfig(t, tc.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errorContains)
		})
	}
}

func TestLoadServerConfig_MissingFile(t *testing.T) {
	_, err := LoadServerConfig(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadServerConfig_UnrelatedMalformedKeyIgnored(t *testing.T) {
	t.Setenv(DeepgramAPIKeyEnv, "0123456789abcdef0123456789abcdef01234567")
	t.Setenv(OpenAIAPIKeyEnv, "not-an-openai-key-but-unused-here")

	cfg, err := LoadServerConfig("", GetAPIKeys())
	require.NoError(t, err)
	assert.Equal(t, "deepgram", cfg.Provider.Type)
	assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", cfg.Provider.Auth.APIKey)
	assert.NoError(t, CheckAPIKeyFormat(cfg.Provider.Type, cfg.Provider.Auth.APIKey))
}

func TestLoadServerConfig_MalformedProviderKeyStillLoads(t *testing.T) {
	t.Setenv(DeepgramAPIKeyEnv, "short")

	cfg, err := LoadServerConfig("", GetAPIKeys())
	require.NoError(t, err)
	assert.Equal(t, "short", cfg.Provider.Auth.APIKey)
	assert.Error(t, CheckAPIKeyFormat(cfg.Provider.Type, cfg.Provider.Auth.APIKey))
}

func TestServerConfig_ValidateNamesRegisteredProviders(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Provider.Type = "carrier-pigeon"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider type carrier-pigeon not registered")
	assert.Contains(t, err.Error(), "registered: deepgram, openai")
}
