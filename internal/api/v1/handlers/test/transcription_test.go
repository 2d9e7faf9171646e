package test

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"stt-relay/internal/api/middleware"
	"stt-relay/internal/api/v1/dto"
	"stt-relay/internal/api/v1/routes"
	"stt-relay/internal/api/v1/services"
	"stt-relay/internal/app/api/provider"
	"stt-relay/internal/app/testutil"
)

type testRelay struct {
	router   *gin.Engine
	provider *testutil.MockTranscriptionProvider
	logs     *observer.ObservedLogs
}

func setupTestRouter(t *testing.T, maxUploadBytes int64) *testRelay {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	p := testutil.NewMockTranscriptionProvider(t, "deepgram")

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger, middleware.DefaultErrorMessage))
	routes.RegisterRoutes(router.Group("/api"), &routes.ServiceContainer{
		TranscriptionService: services.NewTranscriptionService(p, logger),
		Logger:               logger,
		MaxUploadBytes:       maxUploadBytes,
	})

	return &testRelay{router: router, provider: p, logs: logs}
}

func (r *testRelay) post(t *testing.T, body *bytes.Buffer, contentType, language string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if language != "" {
		req.Header.Set("x-language", language)
	}

	w := httptest.NewRecorder()
	r.router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), w.Body.String())
	return w, decoded
}

func TestTranscribe_KoreanScenario(t *testing.T) {
	relay := setupTestRouter(t, 0)
	wav := testutil.WAVFixture(16 * 1024)

	relay.provider.On("TranscribeAudio", mock.Anything, mock.MatchedBy(func(req *provider.TranscriptionRequest) bool {
		return req.Language == provider.LanguageKorean &&
			req.Options.Model == "general" &&
			req.Options.Language == "ko" &&
			req.Options.Tier == "enhanced" &&
			req.Options.Version == "beta" &&
			req.Options.SmartFormat &&
			bytes.Equal(req.Audio.Data, wav)
	})).Return(&provider.TranscriptionResponse{Text: testutil.KoreanTranscript}, nil).Once()

	body, contentType := testutil.MultipartAudio(t, "file", "sample.wav", wav)
	w, decoded := relay.post(t, body, contentType, "ko")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"transcript": testutil.KoreanTranscript}, decoded)
	relay.provider.AssertExpectations(t)
}

func TestTranscribe_LanguageFallback(t *testing.T) {
	for _, language := range []string{"", "en", "de", "kor"} {
		t.Run("x-language="+language, func(t *testing.T) {
			relay := setupTestRouter(t, 0)
			relay.provider.On("TranscribeAudio", mock.Anything, testutil.RequestWithLanguage(provider.LanguageEnglish)).
				Return(&provider.TranscriptionResponse{Text: testutil.EnglishTranscript}, nil).Once()

			body, contentType := testutil.MultipartAudio(t, "file", "clip.wav", testutil.WAVFixture(2048))
			w, decoded := relay.post(t, body, contentType, language)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, testutil.EnglishTranscript, decoded["transcript"])
			relay.provider.AssertExpectations(t)
		})
	}
}

func TestTranscribe_SniffsMissingContentType(t *testing.T) {
	relay := setupTestRouter(t, 0)
	relay.provider.On("TranscribeAudio", mock.Anything, mock.MatchedBy(func(req *provider.TranscriptionRequest) bool {
		return req.Audio.ContentType == "audio/wav" && req.Audio.Filename == "blob"
	})).Return(&provider.TranscriptionResponse{Text: "ok"}, nil).Once()

	// multipart.CreateFormFile declares application/octet-stream
	body, contentType := testutil.MultipartAudio(t, "file", "blob", testutil.WAVFixture(1024))
	w, _ := relay.post(t, body, contentType, "en")

	assert.Equal(t, http.StatusOK, w.Code)
	relay.provider.AssertExpectations(t)
}

func TestTranscribe_EmptyTranscript(t *testing.T) {
	relay := setupTestRouter(t, 0)
	relay.provider.On("TranscribeAudio", mock.Anything, mock.Anything).
		Return(&provider.TranscriptionResponse{Text: ""}, nil).Once()

	body, contentType := testutil.MultipartAudio(t, "file", "silence.wav", testutil.WAVFixture(1024))
	w, decoded := relay.post(t, body, contentType, "en")

	assert.Equal(t, http.StatusOK, w.Code)
	transcript, present := decoded["transcript"]
	assert.True(t, present)
	assert.Equal(t, "", transcript)
}

func TestTranscribe_NoFileUploaded(t *testing.T) {
	testCases := []struct {
		name           string
		body           func(t *testing.T) (*bytes.Buffer, string)
		maxUploadBytes int64
	}{
		{
			name: "wrong field name",
			body: func(t *testing.T) (*bytes.Buffer, string) {
				return testutil.MultipartAudio(t, "audio", "clip.wav", testutil.WAVFixture(1024))
			},
		},
		{
			name: "text fields only",
			body: func(t *testing.T) (*bytes.Buffer, string) {
				return testutil.MultipartFields(t, map[string]string{"language": "ko"})
			},
		},
		{
			name: "not multipart",
			body: func(t *testing.T) (*bytes.Buffer, string) {
				return bytes.NewBufferString(`{"file":"nope"}`), "application/json"
			},
		},
		{
			name: "empty body",
			body: func(t *testing.T) (*bytes.Buffer, string) {
				return &bytes.Buffer{}, ""
			},
		},
		{
			name: "body over the upload limit",
			body: func(t *testing.T) (*bytes.Buffer, string) {
				return testutil.MultipartAudio(t, "file", "big.wav", testutil.WAVFixture(64*1024))
			},
			maxUploadBytes: 16 * 1024,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			relay := setupTestRouter(t, tc.maxUploadBytes)

			body, contentType := tc.body(t)
			w, decoded := relay.post(t, body, contentType, "ko")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, services.MsgNoFileUploaded, decoded["error"])
			relay.provider.AssertNotCalled(t, "TranscribeAudio", mock.Anything, mock.Anything)
		})
	}
}

func TestTranscribe_ProviderFailure(t *testing.T) {
	relay := setupTestRouter(t, 0)
	relay.provider.On("TranscribeAudio", mock.Anything, mock.Anything).
		Return(nil, &provider.TranscriptionError{
			Code:     "authentication_failed",
			Message:  "Deepgram API authentication failed: INVALID_AUTH key abc123",
			Provider: "deepgram",
		}).Once()

	body, contentType := testutil.MultipartAudio(t, "file", "clip.wav", testutil.WAVFixture(1024))
	w, decoded := relay.post(t, body, contentType, "en")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, services.MsgTranscriptionFailed, decoded["error"])
	assert.NotContains(t, w.Body.String(), "INVALID_AUTH")
	assert.NotContains(t, w.Body.String(), "abc123")

	// the cause stays in the server log
	logged := relay.logs.FilterMessage(services.MsgTranscriptionFailed).All()
	require.Len(t, logged, 1)
	assert.Contains(t, logged[0].ContextMap()["error"], "INVALID_AUTH")
}

func TestTranscribe_ProviderPanic(t *testing.T) {
	relay := setupTestRouter(t, 0)
	relay.provider.On("TranscribeAudio", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			panic(stderrors.New("nil map write in decoder"))
		}).Return(nil, nil).Once()

	body, contentType := testutil.MultipartAudio(t, "file", "clip.wav", testutil.WAVFixture(1024))
	w, decoded := relay.post(t, body, contentType, "en")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, services.MsgTranscriptionFailed, decoded["error"])
	assert.False(t, strings.Contains(w.Body.String(), "decoder"))
}

func TestLanguages(t *testing.T) {
	relay := setupTestRouter(t, 0)

	w := httptest.NewRecorder()
	relay.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/languages", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.LanguagesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "en", resp.Default)
	require.Len(t, resp.Languages, 2)
	assert.Equal(t, "ko", resp.Languages[1].Code)
}
