//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"
	"stt-relay/internal/api/server"
	"stt-relay/internal/api/v1/services"
	"stt-relay/internal/config"
)

// InitializeServer builds the relay server from its configuration
func InitializeServer(cfg *config.ServerConfig, logger *zap.Logger) (*server.Server, error) {
	wire.Build(
		provideRegistry,
		provideTranscriptionProvider,
		provideServerConfig,
		services.NewTranscriptionService,
		server.NewServer,
	)
	return &server.Server{}, nil
}
