package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	apierrors "stt-relay/internal/api/errors"
	"stt-relay/internal/api/v1/dto"
	"stt-relay/internal/app/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*Server, *testutil.MockTranscriptionService) {
	t.Helper()
	service := testutil.NewMockTranscriptionService(t)
	srv := NewServer(Config{
		Address:        "127.0.0.1:0",
		Environment:    "test",
		MaxUploadBytes: 1 << 20,
		Static: fstest.MapFS{
			"index.html": {Data: []byte("<html>relay</html>")},
		},
	}, service, prometheus.NewRegistry(), zap.NewNop())
	return srv, service
}

func serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body dto.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "mock", body.Provider)
	assert.NotZero(t, body.Timestamp)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestServer_Transcribe(t *testing.T) {
	srv, service := newTestServer(t)
	service.On("Transcribe", mock.Anything, mock.MatchedBy(func(req *dto.TranscribeRequest) bool {
		return req.LanguageHint == "ko" && len(req.Audio.Data) == 2048
	})).Return(&dto.TranscriptResponse{Transcript: testutil.KoreanTranscript}, nil)

	body, contentType := testutil.MultipartAudio(t, "file", "clip.wav", testutil.WAVFixture(2048))
	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-language", "ko")

	w := serve(srv, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"transcript":"`+testutil.KoreanTranscript+`"}`, w.Body.String())
	service.AssertExpectations(t)
}

func TestServer_Metrics(t *testing.T) {
	srv, _ := newTestServer(t)
	serve(srv, httptest.NewRequest(http.MethodGet, "/health", nil))

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `stt_relay_http_requests_total{method="GET",path_pattern="/health",status_code="200"} 1`)
}

func TestServer_StaticFallback(t *testing.T) {
	srv, _ := newTestServer(t)

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "relay")

	w = serve(srv, httptest.NewRequest(http.MethodPost, "/api/unknown", strings.NewReader("x")))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Route not found")
}

func TestServer_CORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/transcribe", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Headers", "x-language")

	w := serve(srv, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Language")
}

func TestServer_Swagger(t *testing.T) {
	srv, _ := newTestServer(t)

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/transcribe")
}

func TestServer_StartAndShutdown(t *testing.T) {
	srv, _ := newTestServer(t)

	serveErr, err := srv.Start()
	require.NoError(t, err)

	resp, err := http.Get("http://" + srv.Addr() + "/health")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	_, open := <-serveErr
	assert.False(t, open)
}

func TestServer_StartFailsOnBusyAddress(t *testing.T) {
	first, _ := newTestServer(t)
	_, err := first.Start()
	require.NoError(t, err)
	defer first.Shutdown(context.Background())

	second := NewServer(Config{Address: first.Addr()}, testutil.NewMockTranscriptionService(t), prometheus.NewRegistry(), zap.NewNop())
	_, err = second.Start()
	assert.Error(t, err)
}

func TestServer_DeepHealth(t *testing.T) {
	srv, service := newTestServer(t)
	service.On("CheckProvider", mock.Anything).Return(nil).Once()

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/health?deep=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)

	service.On("CheckProvider", mock.Anything).
		Return(apierrors.NewServiceUnavailableError("Transcription provider unavailable", stderrors.New("401 INVALID_AUTH"))).Once()

	w = serve(srv, httptest.NewRequest(http.MethodGet, "/health?deep=true", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"Transcription provider unavailable"`)
	assert.NotContains(t, w.Body.String(), "INVALID_AUTH")

	// the plain probe never contacts the provider
	w = serve(srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}
