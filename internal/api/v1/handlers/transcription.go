package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"stt-relay/internal/api/errors"
	"stt-relay/internal/api/middleware"
	"stt-relay/internal/api/v1/dto"
	"stt-relay/internal/api/v1/services"
	"stt-relay/internal/app/api/provider"
	"stt-relay/internal/app/audio"
)

const (
	// FileField is the multipart field carrying the audio
	FileField = "file"
	// LanguageHeader carries the language hint
	LanguageHeader = "X-Language"
)

// TranscriptionHandler handles transcription-related API endpoints
type TranscriptionHandler struct {
	service        services.TranscriptionService
	logger         *zap.Logger
	maxUploadBytes int64
}

// NewTranscriptionHandler creates a new transcription handler. A
// maxUploadBytes of zero disables the body limit.
func NewTranscriptionHandler(service services.TranscriptionService, logger *zap.Logger, maxUploadBytes int64) *TranscriptionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptionHandler{
		service:        service,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// Transcribe handles POST /api/transcribe
//
// @Summary Transcribe an audio clip
// @Description Forwards the uploaded audio to the speech-to-text provider and returns the transcript. The x-language header selects provider options; absent or unknown values fall back to English.
// @Tags transcription
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio clip"
// @Param x-language header string false "Language hint" Enums(en,ko) default(en)
// @Success 200 {object} dto.TranscriptResponse "Transcript, empty when the provider returned none"
// @Failure 400 {object} errors.APIError "No file uploaded"
// @Failure 500 {object} errors.APIError "Transcription failed"
// @Router /transcribe [post]
func (h *TranscriptionHandler) Transcribe(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	payload, err := h.readUpload(c)
	if err != nil {
		h.logger.Debug("Rejected upload",
			zap.Error(err),
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		)
		middleware.HandleError(c, h.logger, errors.NewBadRequestError(services.MsgNoFileUploaded))
		return
	}

	response, err := h.service.Transcribe(c.Request.Context(), &dto.TranscribeRequest{
		Audio:        payload,
		LanguageHint: c.GetHeader(LanguageHeader),
	})
	if err != nil {
		middleware.HandleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// readUpload pulls the audio part out of the multipart body
func (h *TranscriptionHandler) readUpload(c *gin.Context) (*provider.AudioPayload, error) {
	fileHeader, err := c.FormFile(FileField)
	if err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	contentType := strings.TrimSpace(fileHeader.Header.Get("Content-Type"))
	if (contentType == "" || contentType == "application/octet-stream") && audio.IsAudio(data) {
		contentType, _ = audio.Sniff(data)
	}

	return &provider.AudioPayload{
		Data:        data,
		Filename:    fileHeader.Filename,
		ContentType: contentType,
	}, nil
}

// Languages handles GET /api/languages
//
// @Summary List language hints
// @Description Lists the values accepted in the x-language header
// @Tags transcription
// @Produce json
// @Success 200 {object} dto.LanguagesResponse
// @Router /languages [get]
func (h *TranscriptionHandler) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.SupportedLanguages(c.Request.Context()))
}
