package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"stt-relay/internal/app/testutil"
	"stt-relay/internal/config"
)

func TestInitializeServer_MissingKeyStartsAndFailsPerRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)

	cfg := config.DefaultServerConfig()
	srv, err := InitializeServer(cfg, zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("Provider is not fully configured, transcription requests will fail").Len())

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"provider":"deepgram"`)

	body, contentType := testutil.MultipartAudio(t, "file", "clip.wav", testutil.WAVFixture(1024))
	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", body)
	req.Header.Set("Content-Type", contentType)
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Transcription failed", resp["error"])

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `stt_relay_provider_requests_total{outcome="missing_credentials",provider="deepgram"} 1`)
}

func TestInitializeServer_ServesBrowserClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv, err := InitializeServer(config.DefaultServerConfig(), zap.NewNop())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<html")

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sample.wav", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio/wav", w.Header().Get("Content-Type"))
}

func TestInitializeServer_MalformedKeyWarnsAndStarts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)

	cfg := config.DefaultServerConfig()
	cfg.Provider.Auth.APIKey = "short"

	srv, err := InitializeServer(cfg, zap.New(core))
	require.NoError(t, err)
	require.NotNil(t, srv)
	assert.Equal(t, 1, logs.FilterMessage("Provider API key looks malformed, requests may be rejected").Len())
	assert.Zero(t, logs.FilterMessage("Provider is not fully configured, transcription requests will fail").Len())
}

func TestInitializeServer_UnknownProvider(t *testing.T) {
	cfg := config.DefaultServerConfig()
	cfg.Provider.Type = "carrier-pigeon"

	_, err := InitializeServer(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestInitializeServer_DeepHealthWithoutKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv, err := InitializeServer(config.DefaultServerConfig(), zap.NewNop())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health?deep=1", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Transcription provider unavailable", resp["error"])
}
