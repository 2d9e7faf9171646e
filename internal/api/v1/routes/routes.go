package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"stt-relay/internal/api/middleware"
	"stt-relay/internal/api/v1/handlers"
	"stt-relay/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	TranscriptionService services.TranscriptionService
	Logger               *zap.Logger
	MaxUploadBytes       int64
}

// RegisterRoutes registers the relay API under router
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	transcriptionHandler := handlers.NewTranscriptionHandler(
		container.TranscriptionService,
		container.Logger,
		container.MaxUploadBytes,
	)

	logger := container.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Panics while relaying report the same message as provider failures
	router.POST("/transcribe",
		middleware.ErrorHandler(logger, services.MsgTranscriptionFailed),
		transcriptionHandler.Transcribe,
	)
	router.GET("/languages", transcriptionHandler.Languages)
}
